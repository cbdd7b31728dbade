package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/model"
)

// Blade probes the page's blade sections: full-width bands carrying a
// title, description, media, and call-to-action buttons.
type Blade struct {
	Settings
}

// Name identifies the probe in report output.
func (b *Blade) Name() string { return "blade" }

// Probe inspects every blade section on the page.
func (b *Blade) Probe(ctx context.Context, page playwright.Page) *model.BladeSnapshot {
	snap := &model.BladeSnapshot{}

	blades, err := page.Locator(b.selector("blade", defaultBladeSelector)).All()
	if err != nil {
		snap.Error = fmt.Sprintf("list blades: %v", err)
		return snap
	}
	if len(blades) == 0 {
		return snap
	}
	snap.Found = true

	for i, blade := range blades {
		if err := ctx.Err(); err != nil {
			snap.Error = err.Error()
			return snap
		}
		snap.Blades = append(snap.Blades, b.probeOne(blade, i+1))
	}

	b.logger().Debug("blades probed", "count", len(snap.Blades))
	return snap
}

func (b *Blade) probeOne(blade playwright.Locator, index int) model.Blade {
	bl := model.Blade{Index: index}

	scrollTo(blade)
	bl.Container = box(blade)
	bl.Title = textStyleOf(blade.Locator("h2, h3, .cmp-blade__title").First(), "title")
	bl.Description = textStyleOf(blade.Locator("p, .cmp-blade__description").First(), "description")

	img := blade.Locator("img").First()
	if exists(img) {
		bl.Image = imageInfoOf(img)
	}

	ctas, err := blade.Locator("a.cmp-button, .cta a, a[href]").All()
	if err == nil {
		for _, cta := range ctas {
			href := attribute(cta, "href")
			if href == "" || strings.HasPrefix(href, "#") {
				continue
			}
			bl.CTAs = append(bl.CTAs, model.LinkCheck{
				URL:     href,
				Text:    trimmedText(cta),
				Visible: visible(cta),
			})
		}
	}
	return bl
}
