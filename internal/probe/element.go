package probe

import (
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagelint/pagelint/internal/model"
)

// readTimeoutMS caps every element read. Locator reads otherwise wait the
// page's full action timeout, which turns one missing node into a
// 30-second stall.
const readTimeoutMS = 2000

// exists reports whether the locator matches at least one node.
// Count does not wait, so this is safe to call on selectors that miss.
func exists(loc playwright.Locator) bool {
	n, err := loc.Count()
	return err == nil && n > 0
}

func elementCount(loc playwright.Locator) int {
	n, err := loc.Count()
	if err != nil {
		return 0
	}
	return n
}

func visible(loc playwright.Locator) bool {
	v, err := loc.IsVisible()
	return err == nil && v
}

func enabled(loc playwright.Locator) bool {
	v, err := loc.IsEnabled(playwright.LocatorIsEnabledOptions{
		Timeout: playwright.Float(readTimeoutMS),
	})
	return err == nil && v
}

// trimmedText returns the locator's text content, trimmed. Missing
// elements and read errors come back as "".
func trimmedText(loc playwright.Locator) string {
	if !exists(loc) {
		return ""
	}
	text, err := loc.TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(readTimeoutMS),
	})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func attribute(loc playwright.Locator, name string) string {
	if !exists(loc) {
		return ""
	}
	v, err := loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(readTimeoutMS),
	})
	if err != nil {
		return ""
	}
	return v
}

// box returns the element's bounding rectangle, or the zero box when the
// element is absent or not rendered.
func box(loc playwright.Locator) model.BoundingBox {
	if !exists(loc) {
		return model.BoundingBox{}
	}
	rect, err := loc.BoundingBox()
	if err != nil || rect == nil {
		return model.BoundingBox{}
	}
	return model.BoundingBox{
		X:      rect.X,
		Y:      rect.Y,
		Width:  rect.Width,
		Height: rect.Height,
	}
}

// fontStyleOf reads the computed font properties of an element.
// The element label names what carried the style in the report.
func fontStyleOf(loc playwright.Locator, element string) model.FontStyle {
	style := model.FontStyle{Element: element}
	if !exists(loc) {
		return style
	}
	raw, err := loc.Evaluate(`el => {
		const cs = window.getComputedStyle(el);
		return {
			size: cs.fontSize,
			color: cs.color,
			family: cs.fontFamily,
			weight: cs.fontWeight,
		};
	}`, nil)
	if err != nil {
		return style
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return style
	}
	style.Size = asString(m["size"])
	style.Color = asString(m["color"])
	style.Family = asString(m["family"])
	style.Weight = asString(m["weight"])
	return style
}

// textStyleOf pairs an element's trimmed text with its computed font.
func textStyleOf(loc playwright.Locator, element string) model.TextStyle {
	if !exists(loc) {
		return model.TextStyle{}
	}
	return model.TextStyle{
		Found: true,
		Text:  trimmedText(loc),
		Font:  fontStyleOf(loc, element),
	}
}

// imageInfoOf reads an <img> element's source and natural dimensions.
// Loaded requires complete=true and a non-zero natural height, which is
// how the browser distinguishes a rendered image from a broken one.
func imageInfoOf(loc playwright.Locator) model.ImageInfo {
	if !exists(loc) {
		return model.ImageInfo{}
	}
	raw, err := loc.Evaluate(`el => ({
		src: el.currentSrc || el.src || el.getAttribute("data-src") || "",
		alt: el.alt || "",
		width: el.naturalWidth || 0,
		height: el.naturalHeight || 0,
		complete: !!el.complete,
	})`, nil)
	if err != nil {
		return model.ImageInfo{Src: attribute(loc, "src"), Alt: attribute(loc, "alt")}
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return model.ImageInfo{}
	}
	info := model.ImageInfo{
		Src:    asString(m["src"]),
		Alt:    asString(m["alt"]),
		Width:  asInt(m["width"]),
		Height: asInt(m["height"]),
	}
	complete, _ := m["complete"].(bool)
	info.Loaded = complete && info.Height > 0
	return info
}

// backgroundImageURL extracts the URL from an element's computed
// background-image, or "" when none is set.
func backgroundImageURL(loc playwright.Locator) string {
	if !exists(loc) {
		return ""
	}
	raw, err := loc.Evaluate(`el => window.getComputedStyle(el).backgroundImage`, nil)
	if err != nil {
		return ""
	}
	return parseBackgroundImage(asString(raw))
}

// parseBackgroundImage pulls the URL out of a CSS background-image value
// like `url("https://example.com/a.jpg")`.
func parseBackgroundImage(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		return ""
	}
	start := strings.Index(value, "url(")
	if start < 0 {
		return ""
	}
	rest := value[start+len("url("):]
	end := strings.Index(rest, ")")
	if end < 0 {
		return ""
	}
	return strings.Trim(rest[:end], `"' `)
}

// safeClick clicks with a bounded timeout, returning the error instead of
// letting the page's default timeout stretch the whole probe.
func safeClick(loc playwright.Locator) error {
	return loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(5000),
	})
}

func scrollTo(loc playwright.Locator) {
	if !exists(loc) {
		return
	}
	_ = loc.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(readTimeoutMS),
	})
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asInt converts the number types the Playwright bridge may hand back.
func asInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
