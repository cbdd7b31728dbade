package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Default configuration values. These carry over the thresholds the
// validation suite was tuned with against real marketing pages.
const (
	// DefaultViewportWidth and DefaultViewportHeight match a common
	// desktop breakpoint. Component layouts (mega-menus, carousels)
	// collapse to mobile variants below ~1200px, which would change
	// every selector the probes rely on.
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080

	// DefaultNavigationTimeout is the page navigation timeout. Marketing
	// pages are heavy (tag managers, video, web fonts); 60 seconds avoids
	// false failures on slow first loads.
	DefaultNavigationTimeout = 60 * time.Second

	// DefaultActionTimeout is the timeout for individual element
	// operations (click, read attribute).
	DefaultActionTimeout = 30 * time.Second

	// DefaultLinkTimeout is the per-request timeout for link status
	// probes. Short on purpose: a status check should not wait out a
	// full page render.
	DefaultLinkTimeout = 5 * time.Second

	// DefaultLinkConcurrency bounds simultaneous link probes per page.
	// High enough to finish large navigation menus quickly, low enough
	// not to look like a flood to the target CDN.
	DefaultLinkConcurrency = 8

	// DefaultPollInterval and DefaultPollTimeout drive condition-based
	// waits (carousel animation settling, dropdown options appearing).
	// These replace the fixed sleeps the probes previously relied on.
	DefaultPollInterval = 100 * time.Millisecond
	DefaultPollTimeout  = 3 * time.Second

	// DefaultChevronClicks is how many times each carousel chevron is
	// clicked during the navigation probe.
	DefaultChevronClicks = 2

	// AppName is used for XDG directory paths and report file prefixes.
	AppName = "pagelint"
)

// DefaultExpectedNavigation is the set of top-level menu labels the
// navigation probe checks for when the site config doesn't override it.
var DefaultExpectedNavigation = []string{
	"Product", "Insights", "Support", "Partner", "Company",
}

// Config holds all runtime options.
//
// Design decision: A single flat struct populated from defaults, file,
// env, and flags, passed by dependency injection. The option count is
// manageable; nested sub-structs would add indirection without benefit.
type Config struct {
	// BaseURL is the site under validation.
	BaseURL string

	// Locale is the default locale label attached to reports ("US/EN").
	Locale string

	// Headless controls whether the browser runs without a window.
	Headless bool

	// ViewportWidth and ViewportHeight set the browser viewport.
	ViewportWidth  int
	ViewportHeight int

	// NavigationTimeout applies to page loads, ActionTimeout to element
	// operations, LinkTimeout to link status probes.
	NavigationTimeout time.Duration
	ActionTimeout     time.Duration
	LinkTimeout       time.Duration

	// LinkConcurrency bounds simultaneous link probes.
	LinkConcurrency int

	// PollInterval and PollTimeout drive condition-based waits.
	PollInterval time.Duration
	PollTimeout  time.Duration

	// ReportDir is where report files are written.
	ReportDir string

	// DatabaseDir is where the run-history database lives.
	DatabaseDir string

	// ExpectedNavigation is the list of expected top-level menu labels.
	ExpectedNavigation []string

	// Sites holds per-site configuration loaded from the .pagelint file.
	Sites *File

	// Verbose enables debug-level logging.
	Verbose bool
}

// New returns a Config populated with defaults. A .env file in the
// working directory is loaded first so environment overrides apply.
func New() *Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	c := &Config{
		Locale:             "US/EN",
		Headless:           envBool("PAGELINT_HEADLESS", true),
		ViewportWidth:      DefaultViewportWidth,
		ViewportHeight:     DefaultViewportHeight,
		NavigationTimeout:  DefaultNavigationTimeout,
		ActionTimeout:      DefaultActionTimeout,
		LinkTimeout:        DefaultLinkTimeout,
		LinkConcurrency:    DefaultLinkConcurrency,
		PollInterval:       DefaultPollInterval,
		PollTimeout:        DefaultPollTimeout,
		ReportDir:          defaultReportDir(),
		DatabaseDir:        defaultDatabaseDir(),
		ExpectedNavigation: append([]string(nil), DefaultExpectedNavigation...),
	}

	if base := os.Getenv("PAGELINT_BASE_URL"); base != "" {
		c.BaseURL = base
	}
	if dir := os.Getenv("PAGELINT_REPORT_DIR"); dir != "" {
		c.ReportDir = dir
	}

	return c
}

// Validate checks the configuration for values that would make a run
// fail in confusing ways later.
func (c *Config) Validate() error {
	if c.NavigationTimeout <= 0 || c.ActionTimeout <= 0 || c.LinkTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.LinkConcurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.PollInterval <= 0 || c.PollTimeout <= 0 || c.PollInterval > c.PollTimeout {
		return ErrInvalidPoll
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return ErrInvalidViewport
	}
	return nil
}

// SiteFor returns the per-site configuration for a URL, or nil when the
// .pagelint file has no entry for its host.
func (c *Config) SiteFor(url string) *SiteConfig {
	if c.Sites == nil {
		return nil
	}
	return c.Sites.Lookup(url)
}

// defaultReportDir returns ./reports, matching where operators expect
// output; the XDG data dir is only used for the run-history database.
func defaultReportDir() string {
	return "reports"
}

// defaultDatabaseDir returns the XDG data directory for pagelint.
func defaultDatabaseDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// envBool reads a boolean environment variable with a default.
func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
