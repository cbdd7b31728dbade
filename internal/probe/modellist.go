package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/browser"
	"github.com/pagelint/pagelint/internal/model"
)

// modelListDropdowns are the three dependent filter dropdowns in the
// order selections must be applied. Selecting in an earlier dropdown
// rewrites the option lists of the later ones.
var modelListDropdowns = []struct {
	Name     string
	LabelFor string
}{
	{"Interface", "interface"},
	{"Form Factor", "form-factor"},
	{"Capacity", "capacity"},
}

// ModelList probes the model-list section: title, the three dependent
// filter dropdowns, the unfiltered product cards, the filter interaction
// itself, and the related-articles strip beneath it.
//
// Design decision: option lists are read from the live page immediately
// before every selection, never cached. The dropdowns are dependent, so
// an option text captured before an earlier selection may no longer
// exist when its turn comes. Staleness here was the single largest
// source of flakes in the predecessor of this tool.
type ModelList struct {
	Settings

	// Filter holds the requested selections, one per dropdown in
	// modelListDropdowns order. Missing positions are skipped.
	Filter []FilterValue

	// Articles probes the related-articles strip. Nil skips it.
	Articles *ArticleList
}

// Name identifies the probe in report output.
func (m *ModelList) Name() string { return "model_list" }

// Probe inspects the model-list section and, when filter values are
// configured, exercises the dependent dropdowns.
func (m *ModelList) Probe(ctx context.Context, page playwright.Page) *model.ModelListSnapshot {
	snap := &model.ModelListSnapshot{}

	section := page.Locator(m.selector("model_list", defaultModelListSelector)).First()
	if !exists(section) {
		return snap
	}
	snap.Found = true
	scrollTo(section)

	snap.Title = textStyleOf(section.Locator(".model-list__title, h2").First(), "title")

	for _, d := range modelListDropdowns {
		snap.Dropdowns = append(snap.Dropdowns, m.probeDropdown(section, d.Name, d.LabelFor))
	}

	snap.DefaultCards = m.probeCards(section)

	if len(m.Filter) > 0 {
		snap.Filter = m.applyFilter(ctx, page, section)
	}

	if m.Articles != nil {
		related := page.Locator(m.selector("article_list", defaultArticleListSelector)).First()
		snap.RelatedArticles = *m.Articles.ProbeSection(ctx, related)
	}

	m.logger().Debug("model list probed",
		"dropdowns", len(snap.Dropdowns),
		"default_cards", len(snap.DefaultCards),
		"filter_applied", snap.Filter.Applied)
	return snap
}

func (m *ModelList) dropdownLocator(section playwright.Locator, labelFor string) playwright.Locator {
	sel := fmt.Sprintf(`%s:has(label[for="%s"])`, m.selector("dropdown", defaultDropdownSelector), labelFor)
	return section.Locator(sel).First()
}

// probeDropdown reads one dropdown's placeholder, current value, and
// option texts without interacting with it.
func (m *ModelList) probeDropdown(section playwright.Locator, name, labelFor string) model.Dropdown {
	dd := model.Dropdown{Name: name}

	dropdown := m.dropdownLocator(section, labelFor)
	if !exists(dropdown) {
		return dd
	}

	input := dropdown.Locator(".cmp-custom-select__input").First()
	if exists(input) {
		dd.Found = true
		dd.Placeholder = attribute(input, "placeholder")
		dd.Selected = attribute(input, "value")
	}

	options, err := dropdown.Locator(".cmp-custom-select__option").All()
	if err == nil {
		for _, opt := range options {
			text := trimmedText(opt)
			if text == "" {
				continue
			}
			dd.Options = append(dd.Options, model.DropdownOption{
				Text: text,
				Font: fontStyleOf(opt, "option"),
			})
		}
	}
	return dd
}

func (m *ModelList) probeCards(section playwright.Locator) []model.ProductCard {
	cards, err := section.Locator(m.selector("product_card", defaultProductCardSelector)).All()
	if err != nil {
		return nil
	}
	out := make([]model.ProductCard, 0, len(cards))
	for i, card := range cards {
		out = append(out, probeProductCard(card, i+1))
	}
	return out
}

// applyFilter walks the dropdowns in order and applies the requested
// selection to each. Any failure records an error code plus a message
// naming the dropdown and returns immediately; a partial filter result
// is not meaningful because later option lists depend on earlier picks.
func (m *ModelList) applyFilter(ctx context.Context, page playwright.Page, section playwright.Locator) model.FilterResult {
	result := model.FilterResult{Selected: map[string]string{}}

	for i, d := range modelListDropdowns {
		if i >= len(m.Filter) || m.Filter[i].Skip {
			continue
		}
		result.Applied = true

		selected, code, err := m.selectOption(ctx, page, section, d.Name, d.LabelFor, m.Filter[i])
		if err != nil {
			result.ErrorCode = code
			result.ErrorMessage = err.Error()
			return result
		}
		result.Selected[d.Name] = selected
		m.logger().Debug("filter selection applied", "dropdown", d.Name, "option", selected)
	}

	result.Works = result.Applied
	result.Cards = m.probeCards(section)
	result.CardCount = len(result.Cards)
	return result
}

// selectOption applies one dropdown selection, with a single
// re-open-and-click fallback: a click can land while the option list is
// mid-rewrite and close it without registering. It returns the option
// text actually selected, or a filter error code and an error whose
// message names the dropdown.
func (m *ModelList) selectOption(ctx context.Context, page playwright.Page, section playwright.Locator, name, labelFor string, value FilterValue) (string, string, error) {
	selected, kind, err := selectWithRetry(
		func() (string, string, error) {
			return m.trySelectOption(ctx, page, section, name, labelFor, value)
		},
		func() {
			m.logger().Debug("retrying filter selection", "dropdown", name)
			m.closeDropdown(page)
		},
	)
	if err != nil {
		return "", model.FilterCode(name, kind), err
	}
	return selected, "", nil
}

// selectWithRetry runs one selection attempt and, when the failure is in
// the selection mechanics, resets and tries once more. Definitive misses
// (dropdown absent, option not listed, index out of range) are returned
// as-is: a second look will not make them appear.
func selectWithRetry(attempt func() (string, string, error), reset func()) (string, string, error) {
	selected, kind, err := attempt()
	if err == nil || kind != model.FilterErrSelectionFailed {
		return selected, kind, err
	}
	reset()
	return attempt()
}

// trySelectOption opens the dropdown, reads its visible options,
// resolves the requested value against them, clicks the match, and
// waits for the input to carry the chosen text. On failure it returns
// the filter error kind, not the full code.
func (m *ModelList) trySelectOption(ctx context.Context, page playwright.Page, section playwright.Locator, name, labelFor string, value FilterValue) (string, string, error) {
	dropdown := m.dropdownLocator(section, labelFor)
	if !exists(dropdown) {
		return "", model.FilterErrDropdownNotFound,
			fmt.Errorf("%s dropdown not found", name)
	}

	input := dropdown.Locator(".cmp-custom-select__input").First()
	if err := m.openDropdown(ctx, dropdown, input); err != nil {
		return "", model.FilterErrSelectionFailed,
			fmt.Errorf("%s dropdown would not open: %w", name, err)
	}

	texts, options, err := m.visibleOptions(dropdown)
	if err != nil {
		return "", model.FilterErrSelectionFailed,
			fmt.Errorf("%s dropdown options unreadable: %w", name, err)
	}

	var (
		target     playwright.Locator
		targetText string
	)
	switch {
	case value.Text != "":
		for i, text := range texts {
			if strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(value.Text)) {
				target, targetText = options[i], text
				break
			}
		}
		if target == nil {
			m.closeDropdown(page)
			return "", model.FilterErrOptionNotFound,
				fmt.Errorf("%s option %q not among visible options [%s]",
					name, value.Text, strings.Join(texts, ", "))
		}
	case value.Index >= 1 && value.Index <= len(texts):
		target, targetText = options[value.Index-1], texts[value.Index-1]
	default:
		m.closeDropdown(page)
		return "", model.FilterErrIndexOutOfRange,
			fmt.Errorf("%s option index %d out of range: %d visible options [%s]",
				name, value.Index, len(texts), strings.Join(texts, ", "))
	}

	if err := safeClick(target); err != nil {
		return "", model.FilterErrSelectionFailed,
			fmt.Errorf("%s option %q click failed: %w", name, targetText, err)
	}

	// The selection took when the input carries the chosen text. This is
	// also the moment the dependent dropdowns rewrite their options.
	err = browser.Poll(ctx, m.pollInterval(), m.pollTimeout(), func() (bool, error) {
		v, verr := input.InputValue(playwright.LocatorInputValueOptions{
			Timeout: playwright.Float(readTimeoutMS),
		})
		if verr != nil {
			return false, verr
		}
		return strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(targetText)), nil
	})
	if err != nil {
		return "", model.FilterErrSelectionFailed,
			fmt.Errorf("%s selection %q did not register: %w", name, targetText, err)
	}
	return targetText, "", nil
}

// openDropdown clicks the input unless the option list is already
// showing. A second click on an open dropdown closes it again.
func (m *ModelList) openDropdown(ctx context.Context, dropdown, input playwright.Locator) error {
	first := dropdown.Locator(".cmp-custom-select__option").First()
	if exists(first) && visible(first) {
		return nil
	}
	if err := safeClick(input); err != nil {
		return err
	}
	return browser.Poll(ctx, m.pollInterval(), m.pollTimeout(), func() (bool, error) {
		return exists(first) && visible(first), nil
	})
}

// closeDropdown clicks empty page margin to dismiss an open option list,
// leaving the page clean for the next probe.
func (m *ModelList) closeDropdown(page playwright.Page) {
	_ = page.Mouse().Click(10, 10)
}

// visibleOptions returns the dropdown's currently visible, selectable
// option texts and locators. The catch-all "Any" entry is excluded
// because selecting it clears rather than applies a filter.
func (m *ModelList) visibleOptions(dropdown playwright.Locator) ([]string, []playwright.Locator, error) {
	all, err := dropdown.Locator(".cmp-custom-select__option").All()
	if err != nil {
		return nil, nil, err
	}
	var (
		texts    []string
		locators []playwright.Locator
	)
	for _, opt := range all {
		text := trimmedText(opt)
		if text == "" || strings.EqualFold(text, "any") || !visible(opt) {
			continue
		}
		texts = append(texts, text)
		locators = append(locators, opt)
	}
	return texts, locators, nil
}
