package model

import "time"

// PageReport is the complete result of validating one page.
// Probes attach their snapshots as they run; nil pointers mean the probe
// was not part of this run (as opposed to a probe that ran and found
// nothing, which leaves a snapshot with Found=false).
type PageReport struct {
	// URL is the page that was validated.
	URL string `json:"url"`

	// Locale is the locale label supplied with the target ("US/EN").
	Locale string `json:"locale,omitempty"`

	// Title is the loaded page's document title.
	Title string `json:"title,omitempty"`

	// DateScanned is when the validation started.
	DateScanned time.Time `json:"date_scanned"`

	// Duration is how long the whole validation took.
	Duration time.Duration `json:"duration"`

	// === Component snapshots ===

	Navigation       *NavigationSnapshot       `json:"navigation,omitempty"`
	Hero             *HeroSnapshot             `json:"hero,omitempty"`
	Carousels        *CarouselSnapshot         `json:"carousels,omitempty"`
	ArticleList      *ArticleListSnapshot      `json:"article_list,omitempty"`
	Blades           *BladeSnapshot            `json:"blades,omitempty"`
	FeaturedProducts *FeaturedProductsSnapshot `json:"featured_products,omitempty"`
	ModelList        *ModelListSnapshot        `json:"model_list,omitempty"`
	SeriesCards      *SeriesCardsSnapshot      `json:"series_cards,omitempty"`
	PDP              *PDPSnapshot              `json:"pdp,omitempty"`
	SeriesNav        *SeriesNavSnapshot        `json:"series_nav,omitempty"`

	// HeaderFound and FooterFound record the page-chrome presence check.
	HeaderFound bool `json:"header_found"`
	FooterFound bool `json:"footer_found"`

	// PageLinks are the page-wide link checks (every anchor on the page),
	// separate from the per-component link records.
	PageLinks []LinkCheck `json:"page_links,omitempty"`

	// PerformedProbes lists the probe names that ran, in order.
	PerformedProbes []string `json:"performed_probes,omitempty"`

	// TimedOut is true when the run was cancelled before completing.
	TimedOut bool `json:"timed_out,omitempty"`

	// Error carries a fatal, run-level failure (e.g. navigation failed).
	// Component-level failures live in each snapshot's Error field.
	Error string `json:"error,omitempty"`
}

// NewPageReport creates a report for the given target URL with the scan
// time set to now.
func NewPageReport(url, locale string) *PageReport {
	return &PageReport{
		URL:         url,
		Locale:      locale,
		DateScanned: time.Now(),
	}
}

// AllLinks gathers every link check in the report: page-wide checks plus
// the per-component records.
func (r *PageReport) AllLinks() []LinkCheck {
	all := make([]LinkCheck, 0, len(r.PageLinks))
	all = append(all, r.PageLinks...)
	if r.Navigation != nil {
		all = append(all, r.Navigation.AllLinks()...)
	}
	if r.Carousels != nil {
		for _, c := range r.Carousels.Carousels {
			for _, s := range c.Slides {
				all = append(all, s.Links...)
			}
		}
	}
	if r.ArticleList != nil {
		for _, card := range r.ArticleList.Cards {
			if card.Link.URL != "" {
				all = append(all, card.Link)
			}
		}
	}
	if r.Blades != nil {
		for _, b := range r.Blades.Blades {
			all = append(all, b.CTAs...)
		}
	}
	if r.FeaturedProducts != nil {
		for _, card := range r.FeaturedProducts.Cards {
			if card.DetailsLink.URL != "" {
				all = append(all, card.DetailsLink)
			}
		}
	}
	if r.ModelList != nil {
		for _, card := range r.ModelList.DefaultCards {
			if card.DetailsLink.URL != "" {
				all = append(all, card.DetailsLink)
			}
		}
		for _, card := range r.ModelList.Filter.Cards {
			if card.DetailsLink.URL != "" {
				all = append(all, card.DetailsLink)
			}
		}
		for _, card := range r.ModelList.RelatedArticles.Cards {
			if card.Link.URL != "" {
				all = append(all, card.Link)
			}
		}
	}
	if r.PDP != nil {
		all = append(all, r.PDP.DownloadLinks...)
	}
	return all
}

// Summary is the roll-up counts rendered at the top of every report.
type Summary struct {
	ComponentsProbed int `json:"components_probed"`
	ComponentsFound  int `json:"components_found"`
	ComponentErrors  int `json:"component_errors"`

	TotalLinks     int `json:"total_links"`
	ValidLinks     int `json:"valid_links"`
	BrokenLinks    int `json:"broken_links"`
	UncheckedLinks int `json:"unchecked_links"`
	SkippedLinks   int `json:"skipped_links"`
}

// Passed reports whether the run found no broken links and no component
// errors. Unchecked links do not fail a run.
func (s Summary) Passed() bool {
	return s.BrokenLinks == 0 && s.ComponentErrors == 0
}

// Summarize computes the roll-up counts for a report.
func (r *PageReport) Summarize() Summary {
	var s Summary

	type component struct {
		found bool
		err   string
	}
	var components []component
	if r.Navigation != nil {
		components = append(components, component{r.Navigation.Found, r.Navigation.Error})
	}
	if r.Hero != nil {
		components = append(components, component{r.Hero.Found, r.Hero.Error})
	}
	if r.Carousels != nil {
		components = append(components, component{r.Carousels.Found, r.Carousels.Error})
	}
	if r.ArticleList != nil {
		components = append(components, component{r.ArticleList.Found, r.ArticleList.Error})
	}
	if r.Blades != nil {
		components = append(components, component{r.Blades.Found, r.Blades.Error})
	}
	if r.FeaturedProducts != nil {
		components = append(components, component{r.FeaturedProducts.Found, r.FeaturedProducts.Error})
	}
	if r.ModelList != nil {
		components = append(components, component{r.ModelList.Found, r.ModelList.Error})
	}
	if r.SeriesCards != nil {
		components = append(components, component{r.SeriesCards.Found, r.SeriesCards.Error})
	}
	if r.PDP != nil {
		components = append(components, component{r.PDP.Found, r.PDP.Error})
	}
	if r.SeriesNav != nil {
		components = append(components, component{r.SeriesNav.Found, r.SeriesNav.Error})
	}

	s.ComponentsProbed = len(components)
	for _, c := range components {
		if c.found {
			s.ComponentsFound++
		}
		if c.err != "" {
			s.ComponentErrors++
		}
	}

	counts := CountLinkStates(r.AllLinks())
	s.ValidLinks = counts[LinkStateValid]
	s.BrokenLinks = counts[LinkStateBroken]
	s.UncheckedLinks = counts[LinkStateNotChecked]
	s.SkippedLinks = counts[LinkStateSkipped]
	s.TotalLinks = s.ValidLinks + s.BrokenLinks + s.UncheckedLinks + s.SkippedLinks

	return s
}
