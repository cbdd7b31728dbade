package probe

import (
	"context"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/model"
)

// Hero probes the page's hero banner: background image, breadcrumb
// trail, title, and description, and infers the product series the page
// belongs to from its text.
type Hero struct {
	Settings
}

// Name identifies the probe in report output.
func (h *Hero) Name() string { return "hero" }

// Probe inspects the page's hero banner.
func (h *Hero) Probe(ctx context.Context, page playwright.Page) *model.HeroSnapshot {
	snap := &model.HeroSnapshot{}
	if err := ctx.Err(); err != nil {
		snap.Error = err.Error()
		return snap
	}

	hero := page.Locator(h.selector("hero", defaultHeroSelector)).First()
	if !exists(hero) {
		return snap
	}
	snap.Found = true
	snap.Container = box(hero)

	snap.Background = h.probeBackground(hero)
	snap.Breadcrumbs = h.probeBreadcrumbs(page)
	snap.Title = textStyleOf(hero.Locator("h1, .cmp-hero__title, .cmp-teaser__title").First(), "title")
	snap.Description = textStyleOf(hero.Locator("p, .cmp-hero__description, .cmp-teaser__description").First(), "description")

	snap.IdentifiedSeries = IdentifySeries(snap.Title.Text, breadcrumbTexts(snap.Breadcrumbs)...)

	h.logger().Debug("hero probed",
		"title", snap.Title.Text,
		"series", snap.IdentifiedSeries)
	return snap
}

// probeBackground prefers the hero's computed background-image and falls
// back to a nested picture/img element.
func (h *Hero) probeBackground(hero playwright.Locator) model.ImageInfo {
	if url := backgroundImageURL(hero); url != "" {
		return model.ImageInfo{Src: url, Loaded: true}
	}
	img := hero.Locator("picture img, img").First()
	if exists(img) {
		return imageInfoOf(img)
	}
	return model.ImageInfo{}
}

func (h *Hero) probeBreadcrumbs(page playwright.Page) []model.Breadcrumb {
	items, err := page.Locator(h.selector("breadcrumb", defaultBreadcrumbSelector)).All()
	if err != nil {
		return nil
	}
	var crumbs []model.Breadcrumb
	for i, item := range items {
		link := item.Locator("a").First()
		crumb := model.Breadcrumb{
			Text: trimmedText(item),
			Href: attribute(link, "href"),
		}
		crumb.Current = i == len(items)-1 && crumb.Href == ""
		crumbs = append(crumbs, crumb)
	}
	return crumbs
}

var seriesPattern = regexp.MustCompile(`\b(D[357])\b`)

// IdentifySeries infers the product series ("D3", "D5", "D7") from page
// text, checking the title first and then each fallback in order. The
// match is a standalone token, so "D5-P5430" matches but "SSD7" does not.
func IdentifySeries(title string, fallbacks ...string) string {
	for _, text := range append([]string{title}, fallbacks...) {
		if m := seriesPattern.FindString(strings.ToUpper(text)); m != "" {
			return m
		}
	}
	return ""
}

func breadcrumbTexts(crumbs []model.Breadcrumb) []string {
	texts := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		texts = append(texts, c.Text)
	}
	return texts
}
