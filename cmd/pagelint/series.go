package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pagelint/pagelint/internal/browser"
	"github.com/pagelint/pagelint/internal/config"
	"github.com/pagelint/pagelint/internal/model"
	"github.com/pagelint/pagelint/internal/pipeline"
	"github.com/pagelint/pagelint/internal/probe"
	"github.com/pagelint/pagelint/internal/report"
	"github.com/spf13/cobra"
)

// defaultSeriesDataFile is the series data file used when neither the
// flag nor the site configuration names one.
const defaultSeriesDataFile = "product_series.yaml"

// NewSeriesCmd creates the series command.
func NewSeriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series [D3|D5|D7]",
		Short: "Validate the product-series pages",
		Long: `Series validates each product-series landing page from a series data
file. For every page it probes the hero banner (and checks the page
identifies as the right series), the featured product cards, the model
list, and the series-to-series navigation links, clicking through to
each sibling series page and back.

The data file lists the series pages:

  product_series:
    - series: D7
      url: https://www.solidigm.com/products/data-center/d7.html
      expected_models: [D7-PS1010, D7-PS1030]
    - series: D5
      url: https://www.solidigm.com/products/data-center/d5.html
    - series: D3
      url: https://www.solidigm.com/products/data-center/d3.html

Examples:
  # Validate every series page
  pagelint series

  # Validate just the D7 page
  pagelint series D7

  # Use a custom data file
  pagelint series --data ./my_series.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSeriesCmd,
	}

	registerCommonFlags(cmd)

	cmd.Flags().String("data", "",
		"Series data file path (default: series_data from .pagelint, else "+defaultSeriesDataFile+")")

	return cmd
}

// runSeriesCmd executes the series command.
func runSeriesCmd(cmd *cobra.Command, args []string) error {
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

	dataPath, _ := cmd.Flags().GetString("data")
	if dataPath == "" && cfg.Sites != nil && cfg.Sites.SeriesData != "" {
		dataPath = cfg.Sites.SeriesData
	}
	if dataPath == "" {
		dataPath = defaultSeriesDataFile
	}

	seriesFile, err := config.LoadSeriesFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to load series data %s: %w", dataPath, err)
	}

	pages := seriesFile.ProductSeries
	if len(args) == 1 {
		want := strings.ToUpper(strings.TrimSpace(args[0]))
		pages = nil
		for _, page := range seriesFile.ProductSeries {
			if strings.EqualFold(page.Series, want) {
				pages = append(pages, page)
			}
		}
		if len(pages) == 0 {
			return fmt.Errorf("series %q not found in %s", want, dataPath)
		}
	}
	if len(pages) == 0 {
		return fmt.Errorf("no series pages in %s", dataPath)
	}

	verbose := getVerboseFlag(cmd)
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	logger := setupLogger(verbose, jsonLogs)

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

	// Series pages run sequentially: the series-navigation probe drives
	// the page away and back, which does not tolerate a shared browser
	// context being torn down mid-hop.
	reports := make([]*model.PageReport, 0, len(pages))
	for _, page := range pages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rep, err := validateSeriesPage(ctx, session, cfg, page, seriesFile.ProductSeries, retries, skipLinks, logger)
		if err != nil {
			return err
		}
		reports = append(reports, rep)

		fmt.Printf("Validated %s (%s) in %s\n", page.Series, page.URL, rep.Duration.Round(time.Millisecond))
		if err := emitReport(rep, cfg, formats, verbose); err != nil {
			return err
		}
		saveRun(ctx, db, rep, logger)
	}

	return validationError(reports...)
}

// validateSeriesPage runs the series-page pipeline against one page.
func validateSeriesPage(ctx context.Context, session *browser.Session, cfg *config.Config, sp config.SeriesPage, all []config.SeriesPage, retries int, skipLinks bool, logger *slog.Logger) (*model.PageReport, error) {
	set := probeSettings(cfg, sp.URL, logger)
	p := newPipeline(logger,
		&pipeline.NavigateStep{Session: session, MaxRetries: retries},
		&pipeline.ChromeStep{Probe: &probe.Chrome{Settings: set}},
		&pipeline.HeroStep{Probe: &probe.Hero{Settings: set}},
		&pipeline.FeaturedStep{Probe: &probe.Featured{Settings: set}},
		&pipeline.ModelListStep{Probe: &probe.ModelList{Settings: set}},
		&pipeline.SeriesNavStep{Probe: &probe.SeriesNav{Settings: set, From: sp.Series, Pages: all}},
		newLinkCheckStep(cfg, skipLinks),
	)

	page, err := session.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() {
		_ = page.Close() //nolint:errcheck // session close tears the context down anyway
	}()

	rep := model.NewPageReport(sp.URL, cfg.Locale)
	start := time.Now()

	if err := p.Execute(ctx, page, rep); err != nil {
		logger.Error("series validation aborted", "series", sp.Series, "url", sp.URL, "error", err)
	}
	rep.Duration = time.Since(start)

	checkSeriesIdentity(rep, sp)
	checkExpectedModels(rep, sp)

	return rep, nil
}

// checkSeriesIdentity records an error on the hero snapshot when the
// page does not identify as the series it was loaded for.
func checkSeriesIdentity(rep *model.PageReport, sp config.SeriesPage) {
	if rep.Hero == nil || !rep.Hero.Found {
		return
	}
	if rep.Hero.IdentifiedSeries == "" || strings.EqualFold(rep.Hero.IdentifiedSeries, sp.Series) {
		return
	}
	if rep.Hero.Error == "" {
		rep.Hero.Error = fmt.Sprintf("page identifies as series %s, expected %s", rep.Hero.IdentifiedSeries, sp.Series)
	}
}

// checkExpectedModels records an error on the model-list snapshot when
// an expected model name is missing from the probed cards.
func checkExpectedModels(rep *model.PageReport, sp config.SeriesPage) {
	if len(sp.ExpectedModels) == 0 || rep.ModelList == nil || !rep.ModelList.Found {
		return
	}

	var missing []string
	for _, want := range sp.ExpectedModels {
		found := false
		for _, card := range rep.ModelList.DefaultCards {
			if strings.Contains(strings.ToLower(card.Title.Text), strings.ToLower(want)) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 && rep.ModelList.Error == "" {
		rep.ModelList.Error = "missing expected models: " + strings.Join(missing, ", ")
	}
}
