package main

import (
	"fmt"
	"time"

	"github.com/pagelint/pagelint/internal/config"
	"github.com/pagelint/pagelint/internal/pipeline"
	"github.com/pagelint/pagelint/internal/report"
	"github.com/spf13/cobra"
)

// defaultBatchConcurrency bounds simultaneous page validations. Each one
// holds a browser page; four keeps memory use reasonable on a laptop.
const defaultBatchConcurrency = 4

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <targets-file>",
		Short: "Validate every page in a target list",
		Long: `Batch validates each page listed in a targets file.

The file holds one URL per line, an optional "| locale" suffix, and
#-prefixed comments:

  # production pages
  https://www.solidigm.com/ | US/EN
  https://www.solidigm.com/products.html

Pages run concurrently up to --concurrency, each in its own browser
page. Per-page report files are written as they finish and an aggregate
summary is printed at the end.

Examples:
  # Validate a target list with the default concurrency
  pagelint batch targets.txt

  # One page at a time, JSON reports only
  pagelint batch --concurrency 1 -f json targets.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runBatchCmd,
	}

	registerCommonFlags(cmd)

	cmd.Flags().IntP("concurrency", "C", defaultBatchConcurrency,
		"Number of pages validated at the same time")

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	formatsFlag, _ := cmd.Flags().GetString("formats")
	formats, err := report.ParseFormats(formatsFlag)
	if err != nil {
		return err
	}

	retries, _ := cmd.Flags().GetInt("retries")
	skipLinks, _ := cmd.Flags().GetBool("skip-links")
	save, _ := cmd.Flags().GetBool("save")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	verbose := getVerboseFlag(cmd)
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	logger := setupLogger(verbose, jsonLogs)

	targets, err := config.LoadTargets(args[0])
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets in %s", args[0])
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	db, err := openRunDB(cfg, save, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	session, err := newSession(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("failed to close browser session", "error", err)
		}
	}()

	bp := pipeline.NewBatchProcessor(
		session,
		func(target config.Target) *pipeline.Pipeline {
			steps := homepageSteps(session, cfg, target.URL, retries, logger)
			steps = append(steps, newLinkCheckStep(cfg, skipLinks))
			return newPipeline(logger, steps...)
		},
		pipeline.WithBatchConcurrency(concurrency),
		pipeline.WithBatchLogger(logger),
	)

	fmt.Printf("Validating %d page(s) (concurrency: %d)...\n\n", len(targets), concurrency)
	start := time.Now()

	reports, err := bp.ProcessBatch(ctx, targets)
	if err != nil {
		logger.Error("batch run interrupted", "error", err)
	}

	passed := 0
	for i, rep := range reports {
		summary := rep.Summarize()
		status := "FAIL"
		if summary.Passed() && rep.Error == "" {
			status = "PASS"
			passed++
		}
		fmt.Printf("[%d/%d] %s  %s (%d links, %d broken, %d component errors)\n",
			i+1, len(reports), status, rep.URL,
			summary.TotalLinks, summary.BrokenLinks, summary.ComponentErrors)

		paths, werr := report.WriteFiles(rep, cfg.ReportDir, formats)
		if werr != nil {
			logger.Error("failed to write report files", "url", rep.URL, "error", werr)
			continue
		}
		for _, p := range paths {
			logger.Info("report written", "path", p)
		}
		saveRun(ctx, db, rep, logger)
	}

	fmt.Printf("\nBatch completed in %s: %d/%d passed\n",
		time.Since(start).Round(time.Millisecond), passed, len(reports))

	if err != nil {
		return err
	}
	return validationError(reports...)
}
