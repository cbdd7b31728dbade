package probe

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/model"
)

// ArticleList probes an article-list section: the teaser cards, their
// images, categories, titles, and link destinations.
type ArticleList struct {
	Settings

	// MaxCards caps how many cards get the full per-card treatment.
	// Zero means all.
	MaxCards int
}

// Name identifies the probe in report output.
func (a *ArticleList) Name() string { return "article_list" }

// Probe inspects the page's article-list section.
func (a *ArticleList) Probe(ctx context.Context, page playwright.Page) *model.ArticleListSnapshot {
	section := page.Locator(a.selector("article_list", defaultArticleListSelector)).First()
	return a.ProbeSection(ctx, section)
}

// ProbeSection inspects an article list rooted at the given container.
// The model-list probe reuses this for its related-articles section.
func (a *ArticleList) ProbeSection(ctx context.Context, section playwright.Locator) *model.ArticleListSnapshot {
	snap := &model.ArticleListSnapshot{}
	if !exists(section) {
		return snap
	}
	snap.Found = true

	cards, err := section.Locator(a.selector("article_card", defaultArticleCardSelector)).All()
	if err != nil {
		snap.Error = fmt.Sprintf("list article cards: %v", err)
		return snap
	}
	if len(cards) == 0 {
		// Some deployments nest the cards in a slider; fall back to the
		// slide wrappers.
		cards, _ = section.Locator(".splide__list .splide__slide").All()
	}
	snap.CardCount = len(cards)

	limit := len(cards)
	if a.MaxCards > 0 && limit > a.MaxCards {
		limit = a.MaxCards
	}
	for i := 0; i < limit; i++ {
		if err := ctx.Err(); err != nil {
			snap.Error = err.Error()
			return snap
		}
		snap.Cards = append(snap.Cards, a.probeCard(cards[i], i+1))
	}

	a.logger().Debug("article list probed", "cards", snap.CardCount)
	return snap
}

func (a *ArticleList) probeCard(card playwright.Locator, index int) model.ArticleCard {
	ac := model.ArticleCard{Index: index}

	inner := card.Locator(".cmp-article-list__article").First()
	if !exists(inner) {
		inner = card
	}

	ac.Container = box(inner)
	img := inner.Locator(".cmp-article-list__article-image img, img").First()
	if exists(img) {
		ac.Image = imageInfoOf(img)
	}
	ac.Category = trimmedText(inner.Locator(".cmp-article-list__article-category, .category").First())
	ac.Title = textStyleOf(inner.Locator(".cmp-article-list__article-title, h3").First(), "title")

	link := inner.Locator("a[href]").First()
	if exists(link) {
		ac.Link = model.LinkCheck{
			URL:     attribute(link, "href"),
			Text:    ac.Title.Text,
			Visible: visible(link),
		}
		ac.URLFormatValid = ValidArticleURL(ac.Link.URL)
		ac.URLMatchesTitle = SlugMatchesTitle(ac.Link.URL, ac.Title.Text)
	}
	return ac
}

// ValidArticleURL reports whether an href matches the expected article
// shape: a /products/ path ending in .html. Relative and absolute URLs
// both qualify.
func ValidArticleURL(href string) bool {
	if href == "" {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	p := u.Path
	return strings.Contains(p, "/products/") && strings.HasSuffix(p, ".html")
}

var slugToken = regexp.MustCompile(`[a-z0-9]+`)

// SlugMatchesTitle reports whether an article URL's trailing slug
// resembles the card title. At least half of the title's significant
// words (longer than two characters) must appear in the slug; short
// titles require every word. An empty title or slug never matches.
func SlugMatchesTitle(href, title string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	slug := strings.TrimSuffix(path.Base(u.Path), ".html")
	if slug == "" || slug == "." || title == "" {
		return false
	}

	slugWords := map[string]bool{}
	for _, w := range slugToken.FindAllString(strings.ToLower(slug), -1) {
		slugWords[w] = true
	}

	var significant, matched int
	for _, w := range slugToken.FindAllString(strings.ToLower(title), -1) {
		if len(w) <= 2 {
			continue
		}
		significant++
		if slugWords[w] {
			matched++
		}
	}
	if significant == 0 {
		return false
	}
	if significant <= 2 {
		return matched == significant
	}
	return matched*2 >= significant
}
