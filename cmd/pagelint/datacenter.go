package main

import (
	"fmt"
	"time"

	"github.com/pagelint/pagelint/internal/model"
	"github.com/pagelint/pagelint/internal/pipeline"
	"github.com/pagelint/pagelint/internal/probe"
	"github.com/pagelint/pagelint/internal/report"
	"github.com/spf13/cobra"
)

// defaultDataCenterURL is the data-center landing page validated when no
// URL argument is given.
const defaultDataCenterURL = "https://www.solidigm.com/products/data-center.html"

// NewDataCenterCmd creates the datacenter command.
func NewDataCenterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datacenter [url]",
		Short: "Validate the data-center landing page",
		Long: `Datacenter validates the data-center product landing page.

On top of the standard component probes it verifies:
- The D7/D5/D3 series cards, each linking to a well-formed series URL
- The model list and its dependent filter dropdowns
  (Interface, Form Factor, Capacity)
- The related-articles strip

The --filters flag drives the dropdowns. It takes one value per
dropdown, comma separated, in Interface, Form Factor, Capacity order.
A value is a 1-based option index, a quoted option text (quotes allow
embedded commas), or "none" to skip that dropdown. Dropdown options are
re-read from the live page before every selection, so an index always
refers to the options visible at that moment.

Examples:
  # Probe the page without filtering
  pagelint datacenter

  # Select the second Interface, second Form Factor, first Capacity
  pagelint datacenter --filters "2,2,1"

  # Select by option text; quotes protect embedded commas
  pagelint datacenter --filters '"PCIe 5.0 x4, NVMe","E1.S 9.5mm","15.36TB"'

  # Skip the Form Factor dropdown
  pagelint datacenter --filters '1,none,3'`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDataCenterCmd,
	}

	registerCommonFlags(cmd)

	cmd.Flags().String("filters", "",
		"Dropdown selections: index, quoted text, or none, one per dropdown")
	cmd.Flags().Int("max-articles", 0,
		"Cap on related-article cards probed in depth (0 means all)")

	return cmd
}

// runDataCenterCmd executes the datacenter command.
func runDataCenterCmd(cmd *cobra.Command, args []string) error {
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

	filterSpec, _ := cmd.Flags().GetString("filters")
	var filter []probe.FilterValue
	if filterSpec != "" {
		filter, err = probe.ParseFilterSpec(filterSpec)
		if err != nil {
			return fmt.Errorf("invalid --filters value: %w", err)
		}
	}

	retries, _ := cmd.Flags().GetInt("retries")
	skipLinks, _ := cmd.Flags().GetBool("skip-links")
	save, _ := cmd.Flags().GetBool("save")
	maxArticles, _ := cmd.Flags().GetInt("max-articles")

	url := defaultDataCenterURL
	if len(args) == 1 {
		url = args[0]
	}

	verbose := getVerboseFlag(cmd)
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	logger := setupLogger(verbose, jsonLogs)

	ctx, cancel := signalContext(logger)
	defer cancel()

	logger.Info("starting data-center validation", "url", url, "filters", filterSpec)

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

	set := probeSettings(cfg, url, logger)
	p := newPipeline(logger,
		&pipeline.NavigateStep{Session: session, MaxRetries: retries},
		&pipeline.ChromeStep{Probe: &probe.Chrome{Settings: set}},
		&pipeline.NavigationStep{Probe: &probe.Navigation{Settings: set, Expected: expectedNavigation(cfg, url)}},
		&pipeline.HeroStep{Probe: &probe.Hero{Settings: set}},
		&pipeline.SeriesCardsStep{Probe: &probe.SeriesCards{Settings: set}},
		&pipeline.ModelListStep{Probe: &probe.ModelList{
			Settings: set,
			Filter:   filter,
			Articles: &probe.ArticleList{Settings: set, MaxCards: maxArticles},
		}},
		newLinkCheckStep(cfg, skipLinks),
	)

	page, err := session.NewPage()
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	defer func() {
		_ = page.Close() //nolint:errcheck // session close tears the context down anyway
	}()

	rep := model.NewPageReport(url, cfg.Locale)
	start := time.Now()
	fmt.Printf("Validating %s...\n", url)

	if err := p.Execute(ctx, page, rep); err != nil {
		logger.Error("validation aborted", "url", url, "error", err)
	}
	rep.Duration = time.Since(start)
	fmt.Printf("Validation completed in %s\n\n", rep.Duration.Round(time.Millisecond))

	if err := emitReport(rep, cfg, formats, verbose); err != nil {
		return err
	}
	saveRun(ctx, db, rep, logger)

	return validationError(rep)
}
