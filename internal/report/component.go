package report

import (
	"fmt"
	"time"

	"github.com/pagelint/pagelint/internal/model"
)

// timeRounding trims durations to something readable in reports.
const timeRounding = time.Millisecond

// componentRow is one line of the per-component breakdown shared by the
// text, markdown, HTML, and Excel writers.
type componentRow struct {
	name   string
	status string
	detail string
}

// componentRows flattens the report's snapshots into display rows.
// Probes that did not run produce no row.
func componentRows(report *model.PageReport) []componentRow {
	var rows []componentRow

	add := func(name string, found bool, errText, detail string) {
		row := componentRow{name: name, detail: detail}
		switch {
		case errText != "":
			row.status = "ERROR"
			if detail == "" {
				row.detail = errText
			}
		case found:
			row.status = "found"
		default:
			row.status = "not found"
		}
		rows = append(rows, row)
	}

	if n := report.Navigation; n != nil {
		detail := fmt.Sprintf("%d menus", len(n.Menus))
		if len(n.MissingLabels) > 0 {
			detail = fmt.Sprintf("%d menus, missing: %v", len(n.Menus), n.MissingLabels)
		}
		add("navigation", n.Found, n.Error, detail)
	}
	if h := report.Hero; h != nil {
		detail := ""
		if h.IdentifiedSeries != "" {
			detail = "series " + h.IdentifiedSeries
		}
		add("hero", h.Found, h.Error, detail)
	}
	if c := report.Carousels; c != nil {
		working := 0
		for _, car := range c.Carousels {
			if car.Chevrons.Working() {
				working++
			}
		}
		add("carousels", c.Found, c.Error,
			fmt.Sprintf("%d found, %d with working chevrons", len(c.Carousels), working))
	}
	if a := report.ArticleList; a != nil {
		add("article_list", a.Found, a.Error, fmt.Sprintf("%d cards", a.CardCount))
	}
	if b := report.Blades; b != nil {
		add("blades", b.Found, b.Error, fmt.Sprintf("%d blades", len(b.Blades)))
	}
	if f := report.FeaturedProducts; f != nil {
		add("featured_products", f.Found, f.Error, fmt.Sprintf("%d cards", f.CardCount))
	}
	if m := report.ModelList; m != nil {
		detail := fmt.Sprintf("%d default cards", len(m.DefaultCards))
		if m.Filter.Applied {
			if m.Filter.Works {
				detail = fmt.Sprintf("filter ok, %d cards", m.Filter.CardCount)
			} else {
				detail = fmt.Sprintf("filter failed: %s", m.Filter.ErrorCode)
			}
		}
		add("model_list", m.Found, m.Error, detail)
	}
	if s := report.SeriesCards; s != nil {
		detail := fmt.Sprintf("%d cards", len(s.Cards))
		if !s.AllPresent {
			detail += ", expected series missing"
		}
		add("series_cards", s.Found, s.Error, detail)
	}
	if p := report.PDP; p != nil {
		add("pdp", p.Found, p.Error, fmt.Sprintf("%d spec rows", len(p.Specs)))
	}
	if s := report.SeriesNav; s != nil {
		ok := 0
		for _, h := range s.Hops {
			if h.Success {
				ok++
			}
		}
		add("series_nav", s.Found, s.Error, fmt.Sprintf("%d/%d hops ok", ok, len(s.Hops)))
	}
	return rows
}
