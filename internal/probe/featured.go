package probe

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/model"
)

// Featured probes a featured-products grid: the section title and each
// product card's image, title, description, and details link.
type Featured struct {
	Settings
}

// Name identifies the probe in report output.
func (f *Featured) Name() string { return "featured_products" }

// Probe inspects the page's featured-products section.
func (f *Featured) Probe(ctx context.Context, page playwright.Page) *model.FeaturedProductsSnapshot {
	snap := &model.FeaturedProductsSnapshot{}

	section := page.Locator(f.selector("featured_products", defaultFeaturedSelector)).First()
	if !exists(section) {
		return snap
	}
	snap.Found = true
	scrollTo(section)

	snap.Title = textStyleOf(section.Locator("h2, .cmp-product-cards__title").First(), "title")

	cards, err := section.Locator(f.selector("product_card", defaultProductCardSelector)).All()
	if err != nil {
		snap.Error = fmt.Sprintf("list product cards: %v", err)
		return snap
	}
	snap.CardCount = len(cards)

	for i, card := range cards {
		if err := ctx.Err(); err != nil {
			snap.Error = err.Error()
			return snap
		}
		snap.Cards = append(snap.Cards, probeProductCard(card, i+1))
	}

	f.logger().Debug("featured products probed", "cards", snap.CardCount)
	return snap
}

// probeProductCard reads one product card. Shared with the model-list
// probe, whose cards carry the same structure plus spec attributes.
func probeProductCard(card playwright.Locator, index int) model.ProductCard {
	pc := model.ProductCard{Index: index}

	pc.Container = box(card)
	img := card.Locator("img").First()
	if exists(img) {
		pc.Image = imageInfoOf(img)
	}
	pc.Title = textStyleOf(card.Locator("h3, h4, .cmp-product-card__title").First(), "title")
	pc.Description = textStyleOf(card.Locator("p, .cmp-product-card__description").First(), "description")

	pc.Interface = textStyleOf(card.Locator(".cmp-product-card__interface, [data-attr=interface]").First(), "interface")
	pc.FormFactor = textStyleOf(card.Locator(".cmp-product-card__form-factor, [data-attr=form-factor]").First(), "form_factor")
	pc.Capacity = textStyleOf(card.Locator(".cmp-product-card__capacity, [data-attr=capacity]").First(), "capacity")

	link := card.Locator("a[href]").First()
	if exists(link) {
		pc.DetailsLink = model.LinkCheck{
			URL:     attribute(link, "href"),
			Text:    trimmedText(link),
			Visible: visible(link),
		}
	}
	return pc
}
