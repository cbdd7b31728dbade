package probe

import (
	"context"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/model"
)

// PDP probes a product detail page: title, product image, the
// specification table, breadcrumbs, and download links.
type PDP struct {
	Settings
}

// Name identifies the probe in report output.
func (p *PDP) Name() string { return "pdp" }

// Probe inspects a product detail page.
func (p *PDP) Probe(ctx context.Context, page playwright.Page) *model.PDPSnapshot {
	snap := &model.PDPSnapshot{}
	if err := ctx.Err(); err != nil {
		snap.Error = err.Error()
		return snap
	}

	root := page.Locator(p.selector("pdp", defaultPDPSelector)).First()
	if !exists(root) {
		return snap
	}

	snap.Title = textStyleOf(root.Locator("h1, .cmp-product-detail__title").First(), "title")
	if !snap.Title.Found {
		return snap
	}
	snap.Found = true

	img := root.Locator(".cmp-product-detail__image img, .product-image img, img").First()
	if exists(img) {
		snap.Image = imageInfoOf(img)
	}

	snap.Specs = p.probeSpecs(root)
	snap.Breadcrumbs = (&Hero{Settings: p.Settings}).probeBreadcrumbs(page)
	snap.DownloadLinks = p.probeDownloads(root)

	p.logger().Debug("pdp probed",
		"title", snap.Title.Text,
		"specs", len(snap.Specs),
		"downloads", len(snap.DownloadLinks))
	return snap
}

// probeSpecs reads the specification table as label/value rows. Tables
// and definition lists both occur in the wild.
func (p *PDP) probeSpecs(root playwright.Locator) []model.SpecRow {
	var specs []model.SpecRow

	rows, err := root.Locator(".cmp-product-detail__specs tr, .specs-table tr").All()
	if err == nil {
		for _, row := range rows {
			label := trimmedText(row.Locator("th, td").First())
			value := trimmedText(row.Locator("td").Last())
			if label != "" && value != "" && label != value {
				specs = append(specs, model.SpecRow{Label: label, Value: value})
			}
		}
	}
	if len(specs) > 0 {
		return specs
	}

	terms, err := root.Locator("dl dt").All()
	if err != nil {
		return specs
	}
	values, err := root.Locator("dl dd").All()
	if err != nil {
		return specs
	}
	for i := range terms {
		if i >= len(values) {
			break
		}
		label := trimmedText(terms[i])
		value := trimmedText(values[i])
		if label != "" && value != "" {
			specs = append(specs, model.SpecRow{Label: label, Value: value})
		}
	}
	return specs
}

func (p *PDP) probeDownloads(root playwright.Locator) []model.LinkCheck {
	anchors, err := root.Locator(`a[href$=".pdf"], .downloads a[href], a[download]`).All()
	if err != nil {
		return nil
	}
	var links []model.LinkCheck
	for _, a := range anchors {
		href := attribute(a, "href")
		if href == "" || strings.HasPrefix(href, "#") {
			continue
		}
		links = append(links, model.LinkCheck{
			URL:     href,
			Text:    trimmedText(a),
			Visible: visible(a),
		})
	}
	return links
}
