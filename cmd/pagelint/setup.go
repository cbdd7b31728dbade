package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pagelint/pagelint/internal/browser"
	"github.com/pagelint/pagelint/internal/config"
	"github.com/pagelint/pagelint/internal/database"
	"github.com/pagelint/pagelint/internal/linkcheck"
	"github.com/pagelint/pagelint/internal/log"
	"github.com/pagelint/pagelint/internal/model"
	"github.com/pagelint/pagelint/internal/pipeline"
	"github.com/pagelint/pagelint/internal/probe"
	"github.com/pagelint/pagelint/internal/report"
	"github.com/spf13/cobra"
)

// defaultNavigateRetries is how many times a failed page load is retried
// before the run is abandoned.
const defaultNavigateRetries = 2

// registerCommonFlags adds the flags shared by every validation command.
func registerCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Site configuration file path (default: .pagelint in current or home directory)")
	cmd.Flags().String("locale", "",
		"Locale label attached to reports (default: US/EN)")
	cmd.Flags().Bool("headless", true,
		"Run the browser without a window")
	cmd.Flags().StringP("formats", "f", "txt,json",
		"Comma-separated report formats: txt, json, md, html, xlsx")
	cmd.Flags().StringP("output-dir", "o", "",
		"Directory for report files (default: ./reports)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultNavigationTimeout,
		"Page navigation timeout")
	cmd.Flags().Duration("link-timeout", config.DefaultLinkTimeout,
		"Per-request timeout for link status checks")
	cmd.Flags().Int("retries", defaultNavigateRetries,
		"Navigation retries before a page load is abandoned")
	cmd.Flags().Bool("skip-links", false,
		"Skip the HTTP link status check")
	cmd.Flags().Bool("save", true,
		"Persist the run to the history database")
	cmd.Flags().Bool("log-json", false,
		"Emit logs as JSON instead of text")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the site
// configuration file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.New()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	if locale, _ := cmd.Flags().GetString("locale"); locale != "" {
		if err := config.ValidateLocale(locale); err != nil {
			return nil, err
		}
		cfg.Locale = locale
	}

	cfg.Headless, err = cmd.Flags().GetBool("headless")
	if err != nil {
		return nil, err
	}

	cfg.NavigationTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.LinkTimeout, err = cmd.Flags().GetDuration("link-timeout")
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.ReportDir = dir
	}

	// Load site-specific configuration.
	// If the user explicitly named a config file, a missing file is an
	// error. Without an explicit path a missing file is the normal case.
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath := config.FindConfigFile(explicit)
	switch {
	case configPath != "":
		cfg.Sites, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case explicit != "":
		return nil, fmt.Errorf("configuration file not found: %s", explicit)
	default:
		cfg.Sites = &config.File{Sites: make(map[string]config.SiteConfig)}
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Attribute values are truncated so page-derived text (DOM snippets,
// long URLs) cannot flood the log. JSON output is for runs whose logs
// feed an aggregator.
func setupLogger(verbose, jsonLogs bool) *slog.Logger {
	if jsonLogs {
		return log.NewJSONLogger(os.Stderr, verbose)
	}
	return log.NewLogger(os.Stderr, verbose)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM so an
// in-flight validation shuts the browser down cleanly.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// newSession launches the browser with the configured viewport and
// timeouts.
func newSession(cfg *config.Config, logger *slog.Logger) (*browser.Session, error) {
	return browser.NewSession(browser.Options{
		Headless:          cfg.Headless,
		ViewportWidth:     cfg.ViewportWidth,
		ViewportHeight:    cfg.ViewportHeight,
		NavigationTimeout: cfg.NavigationTimeout,
		ActionTimeout:     cfg.ActionTimeout,
		Logger:            logger,
	})
}

// probeSettings builds the shared probe settings for a target URL,
// resolving per-site selector overrides from the config file.
func probeSettings(cfg *config.Config, url string, logger *slog.Logger) probe.Settings {
	return probe.Settings{
		Site:         cfg.SiteFor(url),
		PollInterval: cfg.PollInterval,
		PollTimeout:  cfg.PollTimeout,
		Logger:       logger,
	}
}

// expectedNavigation resolves the expected top-level menu labels,
// preferring the per-site override.
func expectedNavigation(cfg *config.Config, url string) []string {
	if site := cfg.SiteFor(url); site != nil && len(site.ExpectedNavigation) > 0 {
		return site.ExpectedNavigation
	}
	return cfg.ExpectedNavigation
}

// homepageSteps assembles the probe sequence for a general marketing
// page: chrome, navigation, hero, carousels, article lists, blades, and
// featured products.
func homepageSteps(session *browser.Session, cfg *config.Config, url string, retries int, logger *slog.Logger) []pipeline.Step {
	set := probeSettings(cfg, url, logger)
	return []pipeline.Step{
		&pipeline.NavigateStep{Session: session, MaxRetries: retries},
		&pipeline.ChromeStep{Probe: &probe.Chrome{Settings: set}},
		&pipeline.NavigationStep{Probe: &probe.Navigation{Settings: set, Expected: expectedNavigation(cfg, url)}},
		&pipeline.HeroStep{Probe: &probe.Hero{Settings: set}},
		&pipeline.CarouselStep{Probe: &probe.Carousel{Settings: set}},
		&pipeline.ArticleListStep{Probe: &probe.ArticleList{Settings: set}},
		&pipeline.BladeStep{Probe: &probe.Blade{Settings: set}},
		&pipeline.FeaturedStep{Probe: &probe.Featured{Settings: set}},
	}
}

// newLinkCheckStep builds the HTTP link check step. It returns nil when
// link checking is disabled.
func newLinkCheckStep(cfg *config.Config, skip bool) pipeline.Step {
	if skip {
		return nil
	}
	checker := linkcheck.New(
		linkcheck.WithTimeout(cfg.LinkTimeout),
		linkcheck.WithConcurrency(cfg.LinkConcurrency),
	)
	return &pipeline.LinkCheckStep{Checker: checker}
}

// newPipeline assembles a pipeline from steps, dropping nil entries.
func newPipeline(logger *slog.Logger, steps ...pipeline.Step) *pipeline.Pipeline {
	p := pipeline.New(pipeline.WithLogger(logger))
	for _, step := range steps {
		if step != nil {
			p.AddStep(step)
		}
	}
	return p
}

// emitReport writes the report files, prints their paths, and renders
// the human-readable report to stdout.
func emitReport(rep *model.PageReport, cfg *config.Config, formats []report.Format, verbose bool) error {
	paths, err := report.WriteFiles(rep, cfg.ReportDir, formats)
	if err != nil {
		return fmt.Errorf("failed to write report files: %w", err)
	}

	var opts []report.TextWriterOption
	if verbose {
		opts = append(opts, report.WithVerbose())
	}
	if _, err := report.NewTextWriter(os.Stdout, opts...).Write(rep); err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Printf("Report written: %s\n", p)
	}
	return nil
}

// openRunDB opens the run-history database, creating it on first use.
// Returns nil when saving is disabled; saveRun treats nil as a no-op.
func openRunDB(cfg *config.Config, save bool, logger *slog.Logger) (*database.RunDB, error) {
	if !save {
		return nil, nil
	}
	db, err := database.Open(cfg.DatabaseDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open run database: %w", err)
	}
	logger.Info("run database opened", "dir", cfg.DatabaseDir)
	return db, nil
}

// saveRun persists a completed run. If db is nil, this is a no-op.
func saveRun(ctx context.Context, db *database.RunDB, rep *model.PageReport, logger *slog.Logger) {
	if db == nil {
		return
	}
	id, err := db.SaveRun(ctx, rep)
	if err != nil {
		logger.Error("failed to save run", "url", rep.URL, "error", err)
		return
	}
	logger.Info("run saved", "url", rep.URL, "runID", id)
}

// validationError converts a failed report into a CLI error so the
// process exits non-zero. A passing report returns nil.
func validationError(reports ...*model.PageReport) error {
	failed := 0
	brokenLinks := 0
	componentErrors := 0
	for _, rep := range reports {
		summary := rep.Summarize()
		if summary.Passed() && rep.Error == "" {
			continue
		}
		failed++
		brokenLinks += summary.BrokenLinks
		componentErrors += summary.ComponentErrors
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("validation failed: %d of %d page(s) failed (%d broken link(s), %d component error(s))",
		failed, len(reports), brokenLinks, componentErrors)
}
