package config

import "net/url"

// File is the parsed .pagelint site configuration file.
//
// Example:
//
//	sites:
//	  www.solidigm.com:
//	    expected_navigation: [Product, Insights, Support, Partner, Company]
//	    selectors:
//	      carousel: ".cmp-carousel, .carousel"
//	      hero: ".cmp-hero, .hero"
//	series_data: product_series.yaml
type File struct {
	// Sites maps a hostname to its site-specific configuration.
	Sites map[string]SiteConfig `yaml:"sites"`

	// SeriesData is the path to the product-series data file used by
	// the series subcommand.
	SeriesData string `yaml:"series_data,omitempty"`
}

// SiteConfig holds per-site overrides.
//
// Selectors are configuration rather than code: the defaults are tied to
// one site's markup and the first thing a new deployment changes.
type SiteConfig struct {
	// ExpectedNavigation overrides the expected top-level menu labels.
	ExpectedNavigation []string `yaml:"expected_navigation,omitempty"`

	// Selectors maps component name ("carousel", "hero", "navigation",
	// "article_list", "blade", "featured_products", "model_list",
	// "series_cards") to a CSS selector overriding the built-in default.
	Selectors map[string]string `yaml:"selectors,omitempty"`

	// Locale is the default locale label for this site.
	Locale string `yaml:"locale,omitempty"`
}

// Lookup returns the site configuration matching a URL's host, or nil.
func (f *File) Lookup(rawURL string) *SiteConfig {
	if f == nil || len(f.Sites) == 0 {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	if sc, ok := f.Sites[u.Host]; ok {
		return &sc
	}
	return nil
}

// Selector returns the configured selector for a component, or the given
// fallback when no override exists.
func (s *SiteConfig) Selector(component, fallback string) string {
	if s == nil || s.Selectors == nil {
		return fallback
	}
	if sel, ok := s.Selectors[component]; ok && sel != "" {
		return sel
	}
	return fallback
}

// SeriesPage is one entry in the product-series data file.
type SeriesPage struct {
	// Series is the series label ("D3", "D5", "D7").
	Series string `yaml:"series"`

	// URL is the series landing page.
	URL string `yaml:"url"`

	// ExpectedModels optionally lists model names the page must show.
	ExpectedModels []string `yaml:"expected_models,omitempty"`
}

// SeriesFile is the parsed product-series data file.
type SeriesFile struct {
	ProductSeries []SeriesPage `yaml:"product_series"`
}
