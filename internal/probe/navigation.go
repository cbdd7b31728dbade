package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/model"
)

// Navigation probes the site's main menu: top-level entries against the
// expected labels, the sub-menu links each entry reveals on hover, the
// language switcher, and the search control.
type Navigation struct {
	Settings

	// Expected lists the top-level labels the menu must contain.
	Expected []string
}

// Name identifies the probe in report output.
func (n *Navigation) Name() string { return "navigation" }

// Probe walks the navigation menu. Sub-menu links are collected with
// their visibility but not status-checked here; link checking happens in
// a separate pass so probes stay offline-testable.
func (n *Navigation) Probe(ctx context.Context, page playwright.Page) *model.NavigationSnapshot {
	snap := &model.NavigationSnapshot{}

	nav := page.Locator(n.selector("navigation", defaultNavigationSelector)).First()
	if !exists(nav) {
		return snap
	}
	snap.Found = true

	items, err := nav.Locator(n.selector("menu_item", defaultMenuItemSelector)).All()
	if err != nil {
		snap.Error = fmt.Sprintf("list menu items: %v", err)
		return snap
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			snap.Error = err.Error()
			return snap
		}
		snap.Menus = append(snap.Menus, n.probeMenuItem(item))
	}

	snap.MissingLabels = missingLabels(n.Expected, snap.Menus)
	for i := range snap.Menus {
		snap.Menus[i].Expected = labelExpected(n.Expected, snap.Menus[i].Name)
	}

	snap.LanguageSwitcher = n.probeLanguageSwitcher(page)
	snap.Search = n.probeSearch(page)

	if len(items) > 0 {
		snap.FontStyles = append(snap.FontStyles, fontStyleOf(items[0].Locator("a, span").First(), "menu_item"))
	}

	n.logger().Debug("navigation probed",
		"menus", len(snap.Menus),
		"missing", len(snap.MissingLabels))
	return snap
}

// probeMenuItem reads one top-level entry and the links its panel reveals.
// Hovering is best effort: sites that open panels on click still expose
// the anchors in the DOM, just hidden, and visibility is recorded per link.
func (n *Navigation) probeMenuItem(item playwright.Locator) model.MenuItem {
	label := item.Locator("a, button, span").First()
	menu := model.MenuItem{
		Name:    trimmedText(label),
		Visible: visible(item),
	}
	if menu.Name == "" {
		menu.Name = trimmedText(item)
	}

	_ = item.Hover(playwright.LocatorHoverOptions{Timeout: playwright.Float(readTimeoutMS)})

	panel := item.Locator(".cmp-navigation__group, .mega-menu, ul").First()
	if exists(panel) {
		menu.HasMegaMenu = elementCount(panel.Locator("ul, .cmp-navigation__item--level-1")) > 1

		anchors, err := panel.Locator("a[href]").All()
		if err == nil {
			for _, a := range anchors {
				href := attribute(a, "href")
				if href == "" || strings.HasPrefix(href, "#") {
					continue
				}
				menu.Links = append(menu.Links, model.LinkCheck{
					URL:     href,
					Text:    trimmedText(a),
					Visible: visible(a),
				})
			}
		}
	}
	return menu
}

func (n *Navigation) probeLanguageSwitcher(page playwright.Page) model.LanguageSwitcher {
	sel := n.selector("language_switcher", ".cmp-languagenavigation, .language-selector, .locale-selector")
	loc := page.Locator(sel).First()
	if !exists(loc) {
		return model.LanguageSwitcher{}
	}
	ls := model.LanguageSwitcher{
		Found:   true,
		Visible: visible(loc),
		Current: trimmedText(loc.Locator(".cmp-languagenavigation__switcher, button, .current").First()),
	}
	options, err := loc.Locator("a, li").All()
	if err == nil {
		for _, opt := range options {
			if text := trimmedText(opt); text != "" {
				ls.Locales = append(ls.Locales, text)
			}
		}
	}
	return ls
}

func (n *Navigation) probeSearch(page playwright.Page) model.SearchBox {
	sel := n.selector("search", ".cmp-search, .search-box, input[type=search], [role=search]")
	loc := page.Locator(sel).First()
	if !exists(loc) {
		return model.SearchBox{}
	}
	return model.SearchBox{Found: true, Visible: visible(loc)}
}

// missingLabels returns the expected labels with no matching menu entry.
// Matching is case-insensitive on the trimmed label.
func missingLabels(expected []string, menus []model.MenuItem) []string {
	var missing []string
	for _, want := range expected {
		found := false
		for _, m := range menus {
			if strings.EqualFold(strings.TrimSpace(m.Name), want) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	return missing
}

func labelExpected(expected []string, name string) bool {
	for _, want := range expected {
		if strings.EqualFold(strings.TrimSpace(name), want) {
			return true
		}
	}
	return false
}
