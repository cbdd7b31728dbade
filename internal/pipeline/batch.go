package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pagelint/pagelint/internal/browser"
	"github.com/pagelint/pagelint/internal/config"
	"github.com/pagelint/pagelint/internal/model"
)

// BatchProcessor validates multiple targets concurrently over a shared
// browser session. Each target gets its own page and a fresh pipeline.
//
// Design decision: one browser, many pages. Launching a browser per
// target costs seconds each; browser contexts share the process but
// isolate cookies and cache well enough for read-mostly validation.
type BatchProcessor struct {
	session *browser.Session

	// pipelineFactory builds a fresh pipeline per target, so step state
	// never leaks between pages.
	pipelineFactory func(target config.Target) *Pipeline

	concurrency int
	logger      *slog.Logger

	results []*model.PageReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets the batch-level logger.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithBatchConcurrency caps how many pages are validated at once.
// Default is 4: pages are heavyweight, unlike plain HTTP requests.
func WithBatchConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor over an open session.
func NewBatchProcessor(session *browser.Session, factory func(target config.Target) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		session:         session,
		pipelineFactory: factory,
		concurrency:     4,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch validates every target, at most concurrency at a time.
// Results come back in target order, one report per target, with
// per-target failures recorded in the report rather than failing the
// batch. The error return reports cancellation only.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, targets []config.Target) ([]*model.PageReport, error) {
	bp.logger.Info("starting batch validation",
		"targets", len(targets),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	bp.results = make([]*model.PageReport, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("validating page",
				"url", target.URL,
				"index", i+1,
				"total", len(targets),
			)

			report := model.NewPageReport(target.URL, target.Locale)
			bp.validate(ctx, target, report)

			bp.mu.Lock()
			bp.results[i] = report
			bp.mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	bp.logger.Info("batch validation complete",
		"targets", len(targets),
		"elapsed", time.Since(start),
	)
	return bp.results, err
}

// validate runs one target through a fresh page and pipeline. Failures
// land in the report; the batch keeps going.
func (bp *BatchProcessor) validate(ctx context.Context, target config.Target, report *model.PageReport) {
	defer func() {
		report.Duration = time.Since(report.DateScanned)
	}()

	page, err := bp.session.NewPage()
	if err != nil {
		report.Error = err.Error()
		bp.logger.Error("open page failed", "url", target.URL, "error", err)
		return
	}
	defer func() {
		if err := page.Close(); err != nil {
			bp.logger.Warn("close page failed", "url", target.URL, "error", err)
		}
	}()

	if err := bp.pipelineFactory(target).Execute(ctx, page, report); err != nil {
		bp.logger.Warn("validation failed", "url", target.URL, "error", err)
		return
	}
	bp.logger.Info("validation completed", "url", target.URL)
}
