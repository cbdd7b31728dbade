package main

import (
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

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <url>",
		Short: "Validate a single page",
		Long: `Scan loads a page in a headless browser and validates its UI components.

It probes:
- Page chrome (header and footer presence)
- Navigation menu (expected labels, sub-menu links, language switcher)
- Hero banner (background image, breadcrumbs, title, series)
- Carousels (chevron navigation, active-slide tracking, progress bar)
- Article lists, blades, and featured product cards
- Every link's HTTP status (valid / broken / not checked / skipped)

The run exits non-zero when any link is broken or any component probe
records an error.

Examples:
  # Validate the homepage, writing text and JSON reports
  pagelint scan https://www.solidigm.com/

  # All report formats, custom output directory
  pagelint scan -f txt,json,md,html,xlsx -o ./out https://www.solidigm.com/

  # Click-test carousel CTA buttons (costs a page load per button)
  pagelint scan --test-buttons https://www.solidigm.com/

  # Use a custom site configuration file
  pagelint scan -c mysite.yaml https://www.solidigm.com/

Configuration file (.pagelint) example:
  sites:
    www.solidigm.com:
      expected_navigation: [Product, Insights, Support, Partner, Company]
      selectors:
        carousel: ".cmp-carousel, .carousel"`,
		Args: cobra.ExactArgs(1),
		RunE: runScanCmd,
	}

	registerCommonFlags(cmd)

	cmd.Flags().String("components", defaultScanComponents,
		"Comma-separated components to probe: nav, hero, carousel, articles, blades, featured, modellist, seriescards, pdp")
	cmd.Flags().Int("chevron-clicks", 0,
		"Carousel chevron clicks per direction (0 uses the default)")
	cmd.Flags().Bool("test-buttons", false,
		"Click-test carousel CTA buttons (navigates away and back)")

	return cmd
}

// defaultScanComponents is the probe set for a general marketing page.
const defaultScanComponents = "nav,hero,carousel,articles,blades,featured"

// componentSteps maps the --components flag to probe steps. The page
// chrome check always runs; the rest follow the requested order.
func componentSteps(components string, session *browser.Session, cfg *config.Config, url string, retries, chevronClicks int, testButtons bool, logger *slog.Logger) ([]pipeline.Step, error) {
	set := probeSettings(cfg, url, logger)
	steps := []pipeline.Step{
		&pipeline.NavigateStep{Session: session, MaxRetries: retries},
		&pipeline.ChromeStep{Probe: &probe.Chrome{Settings: set}},
	}

	for _, name := range strings.Split(components, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
			continue
		case "nav", "navigation":
			steps = append(steps, &pipeline.NavigationStep{Probe: &probe.Navigation{Settings: set, Expected: expectedNavigation(cfg, url)}})
		case "hero":
			steps = append(steps, &pipeline.HeroStep{Probe: &probe.Hero{Settings: set}})
		case "carousel":
			steps = append(steps, &pipeline.CarouselStep{Probe: &probe.Carousel{
				Settings:           set,
				ClicksPerDirection: chevronClicks,
				TestButtons:        testButtons,
			}})
		case "articles":
			steps = append(steps, &pipeline.ArticleListStep{Probe: &probe.ArticleList{Settings: set}})
		case "blades":
			steps = append(steps, &pipeline.BladeStep{Probe: &probe.Blade{Settings: set}})
		case "featured":
			steps = append(steps, &pipeline.FeaturedStep{Probe: &probe.Featured{Settings: set}})
		case "modellist":
			steps = append(steps, &pipeline.ModelListStep{Probe: &probe.ModelList{
				Settings: set,
				Articles: &probe.ArticleList{Settings: set},
			}})
		case "seriescards":
			steps = append(steps, &pipeline.SeriesCardsStep{Probe: &probe.SeriesCards{Settings: set}})
		case "pdp":
			steps = append(steps, &pipeline.PDPStep{Probe: &probe.PDP{Settings: set}})
		default:
			return nil, fmt.Errorf("unknown component %q (valid: nav, hero, carousel, articles, blades, featured, modellist, seriescards, pdp)", strings.TrimSpace(name))
		}
	}
	return steps, nil
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
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
	chevronClicks, _ := cmd.Flags().GetInt("chevron-clicks")
	testButtons, _ := cmd.Flags().GetBool("test-buttons")

	verbose := getVerboseFlag(cmd)
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	logger := setupLogger(verbose, jsonLogs)

	ctx, cancel := signalContext(logger)
	defer cancel()

	url := args[0]
	logger.Info("starting scan", "url", url, "locale", cfg.Locale, "headless", cfg.Headless)

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

	components, _ := cmd.Flags().GetString("components")
	steps, err := componentSteps(components, session, cfg, url, retries, chevronClicks, testButtons, logger)
	if err != nil {
		return err
	}
	steps = append(steps, newLinkCheckStep(cfg, skipLinks))
	p := newPipeline(logger, steps...)

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
