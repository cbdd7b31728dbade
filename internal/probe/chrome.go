package probe

import (
	"github.com/playwright-community/playwright-go"
)

// Chrome checks the page's shared furniture: header and footer presence.
type Chrome struct {
	Settings
}

// Name identifies the probe in report output.
func (c *Chrome) Name() string { return "chrome" }

// Probe reports whether the page renders a header and a footer.
func (c *Chrome) Probe(page playwright.Page) (headerFound, footerFound bool) {
	header := page.Locator(c.selector("header", defaultHeaderSelector)).First()
	footer := page.Locator(c.selector("footer", defaultFooterSelector)).First()
	return exists(header) && visible(header), exists(footer) && visible(footer)
}
