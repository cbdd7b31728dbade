package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/pagelint/pagelint/internal/config"
	"github.com/pagelint/pagelint/internal/database"
	"github.com/pagelint/pagelint/internal/model"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [url]",
		Short: "Compare stored validation runs",
		Long: `Compare diffs the two most recent stored runs of a page: links that
broke since the previous run, links that recovered, and component
errors that appeared or disappeared.

Runs are stored automatically by scan, batch, datacenter, and series
unless --save=false was given.

Examples:
  # Compare the last two runs of a page
  pagelint compare https://www.solidigm.com/

  # Compare the latest run against a specific stored run
  pagelint compare -i 42 https://www.solidigm.com/

  # List the stored runs for a page
  pagelint compare --list https://www.solidigm.com/

  # List every page with stored runs
  pagelint compare --list-urls

  # Compare two stored runs by ID
  pagelint compare 41 42

  # Machine-readable diff
  pagelint compare --json https://www.solidigm.com/`,
		Args: cobra.MaximumNArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List stored runs for the given URL")
	cmd.Flags().BoolP("list-urls", "L", false,
		"List every URL with stored runs")
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare the latest run against this stored run ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output the diff as JSON")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listRuns, _ := cmd.Flags().GetBool("list")
	listURLs, _ := cmd.Flags().GetBool("list-urls")
	withRunID, _ := cmd.Flags().GetInt64("with-run-id")
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx := context.Background()

	// Compare never touches the browser or network; it only needs the
	// database directory from the standard configuration.
	cfg := config.New()
	db, err := database.Open(cfg.DatabaseDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no run history available: %w", err)
	}
	defer db.Close()

	if listURLs {
		return printValidatedURLs(ctx, db, cmd)
	}

	// Two numeric arguments compare the named runs directly.
	if len(args) == 2 {
		return compareByIDs(ctx, db, cmd, args, asJSON)
	}

	if len(args) != 1 {
		return fmt.Errorf("a URL argument is required (or use --list-urls)")
	}
	url := args[0]

	if listRuns {
		return printRunHistory(ctx, db, cmd, url)
	}

	var latest, previous *model.PageReport
	if withRunID > 0 {
		latest, err = db.LatestRun(ctx, url)
		if err != nil {
			return err
		}
		if latest == nil {
			return fmt.Errorf("no stored runs for %s", url)
		}
		previous, err = db.RunByID(ctx, withRunID)
		if err != nil {
			return err
		}
		if previous == nil {
			return fmt.Errorf("no stored run with ID %d", withRunID)
		}
	} else {
		latest, previous, err = db.LastTwoRuns(ctx, url)
		if err != nil {
			return err
		}
	}

	diff := diffRuns(latest, previous)

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(diff)
	}
	printDiff(cmd, diff)
	return nil
}

// compareByIDs diffs two stored runs named by ID. The first argument is
// treated as the older run.
func compareByIDs(ctx context.Context, db *database.RunDB, cmd *cobra.Command, args []string, asJSON bool) error {
	previousID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("run ID %q is not a number", args[0])
	}
	latestID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("run ID %q is not a number", args[1])
	}

	previous, err := db.RunByID(ctx, previousID)
	if err != nil {
		return err
	}
	if previous == nil {
		return fmt.Errorf("no stored run with ID %d", previousID)
	}
	latest, err := db.RunByID(ctx, latestID)
	if err != nil {
		return err
	}
	if latest == nil {
		return fmt.Errorf("no stored run with ID %d", latestID)
	}
	if previous.URL != latest.URL {
		return fmt.Errorf("runs %d and %d are for different pages (%s vs %s)",
			previousID, latestID, previous.URL, latest.URL)
	}

	diff := diffRuns(latest, previous)
	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(diff)
	}
	printDiff(cmd, diff)
	return nil
}

// printValidatedURLs lists every URL that has stored runs.
func printValidatedURLs(ctx context.Context, db *database.RunDB, cmd *cobra.Command) error {
	urls, err := db.ValidatedURLs(ctx)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored runs.")
		return nil
	}
	for _, u := range urls {
		fmt.Fprintln(cmd.OutOrStdout(), u)
	}
	return nil
}

// printRunHistory lists the stored runs for one URL, newest first.
func printRunHistory(ctx context.Context, db *database.RunDB, cmd *cobra.Command, url string) error {
	history, err := db.History(ctx, url)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No stored runs for %s\n", url)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stored runs for %s:\n\n", url)
	fmt.Fprintf(cmd.OutOrStdout(), "%6s  %-20s  %-6s  %7s  %7s  %7s\n",
		"ID", "TIMESTAMP", "RESULT", "LINKS", "BROKEN", "ERRORS")
	for _, run := range history {
		result := "FAIL"
		if run.Passed {
			result = "PASS"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%6d  %-20s  %-6s  %7d  %7d  %7d\n",
			run.ID, run.Timestamp.Format("2006-01-02 15:04:05"), result,
			run.TotalLinks, run.BrokenLinks, run.ComponentErrors)
	}
	return nil
}

// RunDiff is the difference between two stored runs of the same page.
type RunDiff struct {
	URL string `json:"url"`

	LatestScanned   time.Time `json:"latest_scanned"`
	PreviousScanned time.Time `json:"previous_scanned"`

	Latest   model.Summary `json:"latest"`
	Previous model.Summary `json:"previous"`

	// NewBroken lists links broken now that were not broken before.
	NewBroken []model.LinkCheck `json:"new_broken,omitempty"`

	// Recovered lists links broken before that are not broken now.
	Recovered []string `json:"recovered,omitempty"`

	// NewComponentErrors and FixedComponentErrors track per-component
	// error strings that appeared or disappeared.
	NewComponentErrors   []string `json:"new_component_errors,omitempty"`
	FixedComponentErrors []string `json:"fixed_component_errors,omitempty"`
}

// diffRuns computes the diff between the latest and previous runs.
func diffRuns(latest, previous *model.PageReport) *RunDiff {
	diff := &RunDiff{
		URL:             latest.URL,
		LatestScanned:   latest.DateScanned,
		PreviousScanned: previous.DateScanned,
		Latest:          latest.Summarize(),
		Previous:        previous.Summarize(),
	}

	prevBroken := brokenByURL(previous)
	latestBroken := brokenByURL(latest)

	for url, check := range latestBroken {
		if _, was := prevBroken[url]; !was {
			diff.NewBroken = append(diff.NewBroken, check)
		}
	}
	sort.Slice(diff.NewBroken, func(i, j int) bool {
		return diff.NewBroken[i].URL < diff.NewBroken[j].URL
	})

	for url := range prevBroken {
		if _, still := latestBroken[url]; !still {
			diff.Recovered = append(diff.Recovered, url)
		}
	}
	sort.Strings(diff.Recovered)

	prevErrs := componentErrors(previous)
	latestErrs := componentErrors(latest)
	for key := range latestErrs {
		if _, was := prevErrs[key]; !was {
			diff.NewComponentErrors = append(diff.NewComponentErrors, key)
		}
	}
	sort.Strings(diff.NewComponentErrors)
	for key := range prevErrs {
		if _, still := latestErrs[key]; !still {
			diff.FixedComponentErrors = append(diff.FixedComponentErrors, key)
		}
	}
	sort.Strings(diff.FixedComponentErrors)

	return diff
}

// brokenByURL indexes a report's broken links by URL.
func brokenByURL(rep *model.PageReport) map[string]model.LinkCheck {
	broken := make(map[string]model.LinkCheck)
	for _, check := range rep.AllLinks() {
		if check.State == model.LinkStateBroken {
			broken[check.URL] = check
		}
	}
	return broken
}

// componentErrors collects "component: error" keys from every snapshot.
func componentErrors(rep *model.PageReport) map[string]struct{} {
	errs := make(map[string]struct{})
	add := func(name, msg string) {
		if msg != "" {
			errs[name+": "+msg] = struct{}{}
		}
	}
	if rep.Navigation != nil {
		add("navigation", rep.Navigation.Error)
	}
	if rep.Hero != nil {
		add("hero", rep.Hero.Error)
	}
	if rep.Carousels != nil {
		add("carousel", rep.Carousels.Error)
	}
	if rep.ArticleList != nil {
		add("article_list", rep.ArticleList.Error)
	}
	if rep.Blades != nil {
		add("blade", rep.Blades.Error)
	}
	if rep.FeaturedProducts != nil {
		add("featured_products", rep.FeaturedProducts.Error)
	}
	if rep.ModelList != nil {
		add("model_list", rep.ModelList.Error)
		add("model_list filter", rep.ModelList.Filter.ErrorCode)
	}
	if rep.SeriesCards != nil {
		add("series_cards", rep.SeriesCards.Error)
	}
	if rep.PDP != nil {
		add("pdp", rep.PDP.Error)
	}
	if rep.SeriesNav != nil {
		add("series_nav", rep.SeriesNav.Error)
	}
	add("run", rep.Error)
	return errs
}

// printDiff renders the diff for terminals.
func printDiff(cmd *cobra.Command, diff *RunDiff) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Comparing runs of %s\n", diff.URL)
	fmt.Fprintf(out, "  previous: %s  (%d broken, %d component errors)\n",
		diff.PreviousScanned.Format("2006-01-02 15:04:05"),
		diff.Previous.BrokenLinks, diff.Previous.ComponentErrors)
	fmt.Fprintf(out, "  latest:   %s  (%d broken, %d component errors)\n\n",
		diff.LatestScanned.Format("2006-01-02 15:04:05"),
		diff.Latest.BrokenLinks, diff.Latest.ComponentErrors)

	if len(diff.NewBroken) == 0 && len(diff.Recovered) == 0 &&
		len(diff.NewComponentErrors) == 0 && len(diff.FixedComponentErrors) == 0 {
		fmt.Fprintln(out, "No changes between the two runs.")
		return
	}

	if len(diff.NewBroken) > 0 {
		fmt.Fprintf(out, "Newly broken links (%d):\n", len(diff.NewBroken))
		for _, check := range diff.NewBroken {
			fmt.Fprintf(out, "  [%d] %s\n", check.StatusCode, check.URL)
		}
		fmt.Fprintln(out)
	}
	if len(diff.Recovered) > 0 {
		fmt.Fprintf(out, "Recovered links (%d):\n", len(diff.Recovered))
		for _, url := range diff.Recovered {
			fmt.Fprintf(out, "  %s\n", url)
		}
		fmt.Fprintln(out)
	}
	if len(diff.NewComponentErrors) > 0 {
		fmt.Fprintf(out, "New component errors (%d):\n", len(diff.NewComponentErrors))
		for _, e := range diff.NewComponentErrors {
			fmt.Fprintf(out, "  %s\n", e)
		}
		fmt.Fprintln(out)
	}
	if len(diff.FixedComponentErrors) > 0 {
		fmt.Fprintf(out, "Fixed component errors (%d):\n", len(diff.FixedComponentErrors))
		for _, e := range diff.FixedComponentErrors {
			fmt.Fprintf(out, "  %s\n", e)
		}
	}
}
