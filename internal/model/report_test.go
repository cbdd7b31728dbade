package model

import "testing"

// TestChevronProbeClicksFor verifies per-direction click accounting.
func TestChevronProbeClicksFor(t *testing.T) {
	t.Parallel()

	probe := ChevronProbe{
		Clicks: []ChevronClick{
			{Direction: ChevronNext, Attempt: 1, Before: 0, After: 1, Changed: true},
			{Direction: ChevronNext, Attempt: 2, Before: 1, After: 1, Changed: false},
			{Direction: ChevronPrev, Attempt: 1, Before: 1, After: 0, Changed: true},
		},
	}

	tested, successful := probe.ClicksFor(ChevronNext)
	if tested != 2 || successful != 1 {
		t.Errorf("next: tested=%d successful=%d, want 2/1", tested, successful)
	}

	tested, successful = probe.ClicksFor(ChevronPrev)
	if tested != 1 || successful != 1 {
		t.Errorf("prev: tested=%d successful=%d, want 1/1", tested, successful)
	}

	if !probe.Working() {
		t.Error("probe with a successful click should report working")
	}
}

// TestChevronProbeNotWorking verifies that clicks which never move the
// active slide yield a not-working verdict.
func TestChevronProbeNotWorking(t *testing.T) {
	t.Parallel()

	probe := ChevronProbe{
		Clicks: []ChevronClick{
			{Direction: ChevronNext, Attempt: 1, Before: 0, After: 0},
			{Direction: ChevronNext, Attempt: 2, Before: 0, After: 0},
		},
	}
	if probe.Working() {
		t.Error("probe with no slide changes should not report working")
	}
}

// TestSummarize verifies component and link roll-up counts.
func TestSummarize(t *testing.T) {
	t.Parallel()

	r := NewPageReport("https://example.com/", "US/EN")
	r.Navigation = &NavigationSnapshot{
		Found: true,
		Menus: []MenuItem{
			{Name: "Product", Visible: true, Links: []LinkCheck{
				{URL: "https://example.com/p", StatusCode: 200, State: LinkStateValid},
				{URL: "https://example.com/q", StatusCode: 404, State: LinkStateBroken},
			}},
		},
	}
	r.Hero = &HeroSnapshot{Found: true}
	r.Carousels = &CarouselSnapshot{Found: false, Error: "carousel probe failed"}
	r.PageLinks = []LinkCheck{
		{URL: "https://example.com/", StatusCode: 200, State: LinkStateValid},
		{URL: "https://other.example.com/", StatusCode: 0, State: LinkStateNotChecked},
	}

	s := r.Summarize()

	if s.ComponentsProbed != 3 {
		t.Errorf("ComponentsProbed = %d, want 3", s.ComponentsProbed)
	}
	if s.ComponentsFound != 2 {
		t.Errorf("ComponentsFound = %d, want 2", s.ComponentsFound)
	}
	if s.ComponentErrors != 1 {
		t.Errorf("ComponentErrors = %d, want 1", s.ComponentErrors)
	}
	if s.TotalLinks != 4 {
		t.Errorf("TotalLinks = %d, want 4", s.TotalLinks)
	}
	if s.ValidLinks != 2 || s.BrokenLinks != 1 || s.UncheckedLinks != 1 {
		t.Errorf("link counts = %d/%d/%d, want 2/1/1", s.ValidLinks, s.BrokenLinks, s.UncheckedLinks)
	}
	if s.Passed() {
		t.Error("summary with broken links should not pass")
	}
}

// TestAllLinks verifies every per-component link record is gathered,
// including product-card details links and PDP downloads, and that
// linkless cards are skipped.
func TestAllLinks(t *testing.T) {
	t.Parallel()

	link := func(url string) LinkCheck {
		return LinkCheck{URL: url, StatusCode: 200, State: LinkStateValid}
	}

	r := NewPageReport("https://example.com/", "US/EN")
	r.PageLinks = []LinkCheck{link("https://example.com/a")}
	r.FeaturedProducts = &FeaturedProductsSnapshot{
		Found: true,
		Cards: []ProductCard{
			{Title: TextStyle{Text: "D7-PS1010"}, DetailsLink: link("https://example.com/d7.html")},
			{Title: TextStyle{Text: "no details link"}},
		},
	}
	r.ModelList = &ModelListSnapshot{
		Found:        true,
		DefaultCards: []ProductCard{{DetailsLink: link("https://example.com/d5.html")}},
		Filter: FilterResult{
			Cards: []ProductCard{{DetailsLink: link("https://example.com/d5-filtered.html")}},
		},
		RelatedArticles: ArticleListSnapshot{
			Cards: []ArticleCard{{Link: link("https://example.com/article")}},
		},
	}
	r.PDP = &PDPSnapshot{
		Found:         true,
		DownloadLinks: []LinkCheck{link("https://example.com/spec.pdf")},
	}

	all := r.AllLinks()
	if len(all) != 6 {
		t.Fatalf("got %d links, want 6: %+v", len(all), all)
	}
	want := map[string]bool{
		"https://example.com/a":                false,
		"https://example.com/d7.html":          false,
		"https://example.com/d5.html":          false,
		"https://example.com/d5-filtered.html": false,
		"https://example.com/article":          false,
		"https://example.com/spec.pdf":         false,
	}
	for _, l := range all {
		if _, ok := want[l.URL]; !ok {
			t.Errorf("unexpected link %q", l.URL)
			continue
		}
		want[l.URL] = true
	}
	for url, seen := range want {
		if !seen {
			t.Errorf("missing link %q", url)
		}
	}
}

// TestSummaryPassed verifies unchecked links alone do not fail a run.
func TestSummaryPassed(t *testing.T) {
	t.Parallel()

	s := Summary{TotalLinks: 3, ValidLinks: 2, UncheckedLinks: 1}
	if !s.Passed() {
		t.Error("unchecked links should not fail a run")
	}
}

// TestBoundingBoxRendered verifies the zero-size visibility fallback.
func TestBoundingBoxRendered(t *testing.T) {
	t.Parallel()

	if (BoundingBox{Width: 0, Height: 300}).Rendered() {
		t.Error("zero-width box should not be rendered")
	}
	if !(BoundingBox{X: 10, Y: 20, Width: 1200, Height: 480}).Rendered() {
		t.Error("non-zero box should be rendered")
	}
}
