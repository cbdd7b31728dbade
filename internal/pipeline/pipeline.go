package pipeline

import (
	"context"
	"log/slog"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/model"
)

// Step is one stage of a page validation. Steps execute in sequence,
// each receiving the live page and the report accumulated so far.
//
// Design decision: an interface rather than function types because steps
// carry configuration (selectors, wait budgets, filter values) and a
// Name() for logging and the performed-probes list.
type Step interface {
	// Do executes the step. A returned error is a step-level failure;
	// component findings belong in the report, not in the error.
	Do(ctx context.Context, page playwright.Page, report *model.PageReport) error

	// Name returns the step's name for logging and report output.
	Name() string
}

// Pipeline runs an ordered list of steps against one page.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps later steps running after one fails.
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError controls whether the pipeline keeps going after a
// step fails.
//
// Design decision: the default is true, the opposite of a conventional
// fail-fast pipeline. A carousel probe blowing up should not cost the
// link check and the rest of the report; partial findings are the whole
// point of a validation run. The first step (navigation) is the
// exception and is handled by Execute: nothing downstream is meaningful
// when the page never loaded.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a Pipeline. Add steps with AddStep or AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:           make([]Step, 0),
		continueOnError: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step. Steps execute in the order added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step in order. Cancellation is checked between
// steps; a cancelled run marks the report timed out and returns.
//
// A failing first step aborts the run regardless of continueOnError:
// the first step is always navigation, and probing a page that never
// loaded only produces noise.
func (p *Pipeline) Execute(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	for i, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"url", report.URL,
				"reason", ctx.Err(),
			)
			report.TimedOut = true
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step", "step", step.Name(), "url", report.URL)

		if err := step.Do(ctx, page, report); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"url", report.URL,
				"error", err,
			)
			report.Error = err.Error()

			if i == 0 || !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("step completed", "step", step.Name(), "url", report.URL)
		}

		report.PerformedProbes = append(report.PerformedProbes, step.Name())
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
