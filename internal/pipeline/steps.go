package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/browser"
	"github.com/pagelint/pagelint/internal/linkcheck"
	"github.com/pagelint/pagelint/internal/model"
	"github.com/pagelint/pagelint/internal/probe"
)

// NavigateStep loads the report's URL into the page. It is always the
// first step; a navigation failure aborts the rest of the pipeline.
type NavigateStep struct {
	Session    *browser.Session
	MaxRetries int
}

// Name returns the step name.
func (s *NavigateStep) Name() string { return "navigate" }

// Do navigates the page to the report URL and records the page title.
func (s *NavigateStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Session.Navigate(page, report.URL, s.MaxRetries); err != nil {
		return fmt.Errorf("navigate to %s: %w", report.URL, err)
	}
	if title, err := page.Title(); err == nil {
		report.Title = title
	}
	return nil
}

// ChromeStep records header and footer presence.
type ChromeStep struct {
	Probe *probe.Chrome
}

// Name returns the step name.
func (s *ChromeStep) Name() string { return s.Probe.Name() }

// Do runs the page-chrome check.
func (s *ChromeStep) Do(_ context.Context, page playwright.Page, report *model.PageReport) error {
	report.HeaderFound, report.FooterFound = s.Probe.Probe(page)
	return nil
}

// NavigationStep attaches the navigation snapshot.
type NavigationStep struct {
	Probe *probe.Navigation
}

// Name returns the step name.
func (s *NavigationStep) Name() string { return s.Probe.Name() }

// Do runs the navigation probe.
func (s *NavigationStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	report.Navigation = s.Probe.Probe(ctx, page)
	return nil
}

// HeroStep attaches the hero snapshot.
type HeroStep struct {
	Probe *probe.Hero
}

// Name returns the step name.
func (s *HeroStep) Name() string { return s.Probe.Name() }

// Do runs the hero probe.
func (s *HeroStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	report.Hero = s.Probe.Probe(ctx, page)
	return nil
}

// CarouselStep attaches the carousel snapshot.
type CarouselStep struct {
	Probe *probe.Carousel
}

// Name returns the step name.
func (s *CarouselStep) Name() string { return s.Probe.Name() }

// Do runs the carousel probe.
func (s *CarouselStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	report.Carousels = s.Probe.Probe(ctx, page)
	return nil
}

// ArticleListStep attaches the article-list snapshot.
type ArticleListStep struct {
	Probe *probe.ArticleList
}

// Name returns the step name.
func (s *ArticleListStep) Name() string { return s.Probe.Name() }

// Do runs the article-list probe.
func (s *ArticleListStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	report.ArticleList = s.Probe.Probe(ctx, page)
	return nil
}

// BladeStep attaches the blade snapshot.
type BladeStep struct {
	Probe *probe.Blade
}

// Name returns the step name.
func (s *BladeStep) Name() string { return s.Probe.Name() }

// Do runs the blade probe.
func (s *BladeStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	report.Blades = s.Probe.Probe(ctx, page)
	return nil
}

// FeaturedStep attaches the featured-products snapshot.
type FeaturedStep struct {
	Probe *probe.Featured
}

// Name returns the step name.
func (s *FeaturedStep) Name() string { return s.Probe.Name() }

// Do runs the featured-products probe.
func (s *FeaturedStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	report.FeaturedProducts = s.Probe.Probe(ctx, page)
	return nil
}

// ModelListStep attaches the model-list snapshot, including the
// dependent-dropdown filter result.
type ModelListStep struct {
	Probe *probe.ModelList
}

// Name returns the step name.
func (s *ModelListStep) Name() string { return s.Probe.Name() }

// Do runs the model-list probe.
func (s *ModelListStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	report.ModelList = s.Probe.Probe(ctx, page)
	return nil
}

// SeriesCardsStep attaches the series-cards snapshot.
type SeriesCardsStep struct {
	Probe *probe.SeriesCards
}

// Name returns the step name.
func (s *SeriesCardsStep) Name() string { return s.Probe.Name() }

// Do runs the series-cards probe.
func (s *SeriesCardsStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	report.SeriesCards = s.Probe.Probe(ctx, page)
	return nil
}

// PDPStep attaches the product-detail snapshot.
type PDPStep struct {
	Probe *probe.PDP
}

// Name returns the step name.
func (s *PDPStep) Name() string { return s.Probe.Name() }

// Do runs the product-detail probe.
func (s *PDPStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	report.PDP = s.Probe.Probe(ctx, page)
	return nil
}

// SeriesNavStep attaches the series-to-series navigation snapshot.
// It navigates away from and back to the page, so it runs after the
// in-place probes.
type SeriesNavStep struct {
	Probe *probe.SeriesNav
}

// Name returns the step name.
func (s *SeriesNavStep) Name() string { return s.Probe.Name() }

// Do runs the series-navigation probe.
func (s *SeriesNavStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	report.SeriesNav = s.Probe.Probe(ctx, page)
	return nil
}

// LinkCheckStep extracts every link from the rendered page, probes each
// one over HTTP, and back-fills the per-component link records collected
// by earlier steps. It runs last so it sees the final DOM.
type LinkCheckStep struct {
	Checker *linkcheck.Checker
}

// Name returns the step name.
func (s *LinkCheckStep) Name() string { return "link_check" }

// Do checks every page link and fills in component link states.
func (s *LinkCheckStep) Do(ctx context.Context, page playwright.Page, report *model.PageReport) error {
	body, err := page.Content()
	if err != nil {
		return fmt.Errorf("read page content: %w", err)
	}

	pageLinks, err := linkcheck.ExtractLinks(strings.NewReader(body), page.URL())
	if err != nil {
		return fmt.Errorf("extract links: %w", err)
	}

	urls := make([]string, 0, len(pageLinks))
	for _, l := range pageLinks {
		urls = append(urls, l.URL)
	}
	// Component probes may have collected anchors the static pass missed,
	// e.g. sub-menus injected into the DOM only on hover.
	for _, l := range report.AllLinks() {
		if resolved, err := linkcheck.Resolve(page.URL(), l.URL); err == nil {
			urls = append(urls, resolved)
		}
	}

	checks := s.Checker.CheckAll(ctx, urls)

	byURL := make(map[string]model.LinkCheck, len(checks))
	for _, c := range checks {
		byURL[c.URL] = c
	}

	report.PageLinks = report.PageLinks[:0]
	for _, l := range pageLinks {
		c := byURL[l.URL]
		c.Text = l.Text
		report.PageLinks = append(report.PageLinks, c)
	}

	fillComponentLinks(report, page.URL(), byURL)
	return nil
}

// fillComponentLinks copies checked states onto the link records the
// component probes collected.
func fillComponentLinks(report *model.PageReport, base string, byURL map[string]model.LinkCheck) {
	fill := func(l *model.LinkCheck) {
		if l.URL == "" {
			return
		}
		resolved, err := linkcheck.Resolve(base, l.URL)
		if err != nil {
			return
		}
		if c, ok := byURL[resolved]; ok {
			l.StatusCode = c.StatusCode
			l.State = c.State
			l.Message = c.Message
		}
	}

	if report.Navigation != nil {
		for mi := range report.Navigation.Menus {
			for li := range report.Navigation.Menus[mi].Links {
				fill(&report.Navigation.Menus[mi].Links[li])
			}
		}
	}
	if report.Carousels != nil {
		for ci := range report.Carousels.Carousels {
			for si := range report.Carousels.Carousels[ci].Slides {
				for li := range report.Carousels.Carousels[ci].Slides[si].Links {
					fill(&report.Carousels.Carousels[ci].Slides[si].Links[li])
				}
			}
		}
	}
	if report.ArticleList != nil {
		for i := range report.ArticleList.Cards {
			fill(&report.ArticleList.Cards[i].Link)
		}
	}
	if report.Blades != nil {
		for bi := range report.Blades.Blades {
			for li := range report.Blades.Blades[bi].CTAs {
				fill(&report.Blades.Blades[bi].CTAs[li])
			}
		}
	}
	if report.FeaturedProducts != nil {
		for i := range report.FeaturedProducts.Cards {
			fill(&report.FeaturedProducts.Cards[i].DetailsLink)
		}
	}
	if report.ModelList != nil {
		for i := range report.ModelList.DefaultCards {
			fill(&report.ModelList.DefaultCards[i].DetailsLink)
		}
		for i := range report.ModelList.Filter.Cards {
			fill(&report.ModelList.Filter.Cards[i].DetailsLink)
		}
		for i := range report.ModelList.RelatedArticles.Cards {
			fill(&report.ModelList.RelatedArticles.Cards[i].Link)
		}
	}
	if report.PDP != nil {
		for i := range report.PDP.DownloadLinks {
			fill(&report.PDP.DownloadLinks[i])
		}
	}
}
