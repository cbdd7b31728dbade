package probe

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/browser"
	"github.com/pagelint/pagelint/internal/config"
	"github.com/pagelint/pagelint/internal/model"
)

// SeriesNav probes navigation between product-series pages: from the
// current series page it clicks the link to each sibling series and
// confirms the browser lands on the expected URL, navigating back after
// every hop.
type SeriesNav struct {
	Settings

	// From is the series label of the page under test ("D7").
	From string

	// Pages lists every series page, including the current one.
	Pages []config.SeriesPage
}

// Name identifies the probe in report output.
func (s *SeriesNav) Name() string { return "series_nav" }

// Probe clicks through to each sibling series page and back.
func (s *SeriesNav) Probe(ctx context.Context, page playwright.Page) *model.SeriesNavSnapshot {
	snap := &model.SeriesNavSnapshot{}
	if len(s.Pages) == 0 {
		return snap
	}
	snap.Found = true

	for _, target := range s.Pages {
		if strings.EqualFold(target.Series, s.From) {
			continue
		}
		if err := ctx.Err(); err != nil {
			snap.Error = err.Error()
			return snap
		}
		snap.Hops = append(snap.Hops, s.hop(ctx, page, target))
	}

	s.logger().Debug("series navigation probed", "hops", len(snap.Hops))
	return snap
}

// hop performs one navigation attempt: find the link pointing at the
// target series page, click it, wait for the URL to move, verify the
// landing page, and navigate back.
func (s *SeriesNav) hop(ctx context.Context, page playwright.Page, target config.SeriesPage) model.SeriesNavHop {
	h := model.SeriesNavHop{From: s.From, To: target.Series}

	link := s.findSeriesLink(page, target)
	if link == nil {
		h.Error = fmt.Sprintf("no link to %s series page found", target.Series)
		return h
	}

	fromURL := page.URL()
	scrollTo(link)
	if err := safeClick(link); err != nil {
		h.Error = fmt.Sprintf("click %s link: %v", target.Series, err)
		return h
	}
	h.Clicked = true

	landed, err := browser.PollValue(ctx, s.pollInterval(), s.pollTimeout(), fromURL, func() (string, error) {
		return page.URL(), nil
	})
	if err != nil && ctx.Err() != nil {
		h.Error = ctx.Err().Error()
		return h
	}
	h.LandedURL = landed
	h.Success = sameSeriesPage(landed, target.URL)

	if landed != fromURL {
		if _, err := page.GoBack(playwright.PageGoBackOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		}); err != nil {
			h.Error = fmt.Sprintf("navigate back: %v", err)
		}
	}
	return h
}

// findSeriesLink locates an anchor pointing at the target series page,
// matching on the target URL's path so relative and absolute hrefs both
// resolve. Returns nil when no such anchor exists.
func (s *SeriesNav) findSeriesLink(page playwright.Page, target config.SeriesPage) playwright.Locator {
	tu, err := url.Parse(target.URL)
	if err != nil || tu.Path == "" {
		return nil
	}
	loc := page.Locator(fmt.Sprintf(`a[href*="%s"]`, tu.Path)).First()
	if !exists(loc) {
		return nil
	}
	return loc
}

// sameSeriesPage reports whether a landed URL is the expected series
// page, comparing hosts when both are absolute and always the path.
func sameSeriesPage(landed, expected string) bool {
	lu, err := url.Parse(landed)
	if err != nil {
		return false
	}
	eu, err := url.Parse(expected)
	if err != nil {
		return false
	}
	if lu.Host != "" && eu.Host != "" && !strings.EqualFold(lu.Host, eu.Host) {
		return false
	}
	return strings.EqualFold(strings.TrimSuffix(lu.Path, "/"), strings.TrimSuffix(eu.Path, "/"))
}
