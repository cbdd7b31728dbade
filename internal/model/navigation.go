package model

// NavigationSnapshot describes the site's main navigation menu.
type NavigationSnapshot struct {
	Found bool `json:"found"`

	// Menus are the top-level menu entries in document order.
	Menus []MenuItem `json:"menus,omitempty"`

	// MissingLabels lists expected top-level labels (from configuration)
	// that were not found among the observed menus.
	MissingLabels []string `json:"missing_labels,omitempty"`

	// LanguageSwitcher describes the locale selector, if present.
	LanguageSwitcher LanguageSwitcher `json:"language_switcher"`

	// Search describes the site search control, if present.
	Search SearchBox `json:"search"`

	// FontStyles are the computed font properties of menu text elements.
	FontStyles []FontStyle `json:"font_styles,omitempty"`

	// Error carries a probe-level failure. The rest of the snapshot is
	// still meaningful as a partial observation.
	Error string `json:"error,omitempty"`
}

// MenuItem is one top-level navigation entry.
type MenuItem struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`

	// HasMegaMenu is true when hovering/clicking the item reveals a
	// multi-column panel rather than a plain dropdown list.
	HasMegaMenu bool `json:"has_mega_menu"`

	// Expected is true when the item matches one of the configured
	// expected top-level labels.
	Expected bool `json:"expected"`

	// Links are the sub-menu links revealed under this item.
	Links []LinkCheck `json:"links,omitempty"`
}

// LanguageSwitcher describes the locale selection control.
type LanguageSwitcher struct {
	Found   bool     `json:"found"`
	Visible bool     `json:"visible"`
	Current string   `json:"current,omitempty"`
	Locales []string `json:"locales,omitempty"`
}

// SearchBox describes the site search control.
type SearchBox struct {
	Found   bool `json:"found"`
	Visible bool `json:"visible"`
}

// BrokenLinks returns the sub-menu links classified as broken.
func (n *NavigationSnapshot) BrokenLinks() []LinkCheck {
	var broken []LinkCheck
	for _, m := range n.Menus {
		for _, l := range m.Links {
			if l.State == LinkStateBroken {
				broken = append(broken, l)
			}
		}
	}
	return broken
}

// AllLinks returns every sub-menu link across all menus.
func (n *NavigationSnapshot) AllLinks() []LinkCheck {
	var all []LinkCheck
	for _, m := range n.Menus {
		all = append(all, m.Links...)
	}
	return all
}
