package probe

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/model"
)

// DefaultExpectedSeries are the product series the data-center landing
// page is expected to link to.
var DefaultExpectedSeries = []string{"D7", "D5", "D3"}

// SeriesCards probes the series teaser cards on the data-center landing
// page and verifies each expected series is present with a well-formed
// destination URL.
type SeriesCards struct {
	Settings

	// Expected lists the series labels that must each have a card.
	// Empty means DefaultExpectedSeries.
	Expected []string
}

// Name identifies the probe in report output.
func (s *SeriesCards) Name() string { return "series_cards" }

func (s *SeriesCards) expected() []string {
	if len(s.Expected) > 0 {
		return s.Expected
	}
	return DefaultExpectedSeries
}

// Probe inspects the series cards section.
func (s *SeriesCards) Probe(ctx context.Context, page playwright.Page) *model.SeriesCardsSnapshot {
	snap := &model.SeriesCardsSnapshot{ExpectedSeries: s.expected()}

	section := page.Locator(s.selector("series_cards", defaultSeriesCardsSelector)).First()
	if !exists(section) {
		return snap
	}
	snap.Found = true
	scrollTo(section)

	cards, err := section.Locator(s.selector("series_card", defaultSeriesCardSelector)).All()
	if err != nil {
		snap.Error = fmt.Sprintf("list series cards: %v", err)
		return snap
	}

	for _, card := range cards {
		if err := ctx.Err(); err != nil {
			snap.Error = err.Error()
			return snap
		}
		snap.Cards = append(snap.Cards, s.probeCard(card))
	}

	snap.AllPresent = true
	for _, want := range snap.ExpectedSeries {
		if !hasSeries(snap.Cards, want) {
			snap.AllPresent = false
			break
		}
	}

	s.logger().Debug("series cards probed",
		"cards", len(snap.Cards),
		"all_present", snap.AllPresent)
	return snap
}

func (s *SeriesCards) probeCard(card playwright.Locator) model.SeriesCard {
	sc := model.SeriesCard{}

	sc.Href = attribute(card, "href")
	if sc.Href == "" {
		sc.Href = attribute(card.Locator("a[href]").First(), "href")
	}

	sc.Title = textStyleOf(card.Locator(".series-list__serie__text__title, h3").First(), "title")
	sc.Description = trimmedText(card.Locator(".series-list__serie__text__description, p").First())

	img := card.Locator(".series-list__serie__image, img").First()
	if exists(img) {
		sc.Image = imageInfoOf(img)
	}

	sc.Series = IdentifySeries(sc.Title.Text, sc.Href)
	sc.URLFormatValid = ValidSeriesURL(sc.Href)
	return sc
}

// ValidSeriesURL reports whether an href matches the expected series page
// shape: a /products/data-center/ path ending in d3.html, d5.html, or
// d7.html.
func ValidSeriesURL(href string) bool {
	if href == "" {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	p := strings.ToLower(u.Path)
	if !strings.Contains(p, "/products/data-center/") {
		return false
	}
	for _, suffix := range []string{"/d3.html", "/d5.html", "/d7.html"} {
		if strings.HasSuffix(p, suffix) {
			return true
		}
	}
	return false
}

func hasSeries(cards []model.SeriesCard, series string) bool {
	for _, c := range cards {
		if strings.EqualFold(c.Series, series) {
			return true
		}
	}
	return false
}
