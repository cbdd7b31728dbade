package linkcheck

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageLink is an anchor or image reference extracted from static HTML.
type PageLink struct {
	// URL is the href/src, resolved against the page base.
	URL string

	// Text is the trimmed anchor text, or the alt text for images.
	Text string

	// Kind is "anchor" or "image".
	Kind string
}

// ExtractLinks parses HTML and returns every anchor href and image src,
// resolved against baseURL. The link-check pipeline step feeds it the
// rendered page content so that JS-injected navigation is included.
func ExtractLinks(body io.Reader, baseURL string) ([]PageLink, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var links []PageLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		resolved, err := Resolve(baseURL, href)
		if err != nil {
			resolved = href
		}
		links = append(links, PageLink{
			URL:  resolved,
			Text: strings.TrimSpace(sel.Text()),
			Kind: "anchor",
		})
	})

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		resolved, err := Resolve(baseURL, src)
		if err != nil {
			resolved = src
		}
		alt, _ := sel.Attr("alt")
		links = append(links, PageLink{
			URL:  resolved,
			Text: strings.TrimSpace(alt),
			Kind: "image",
		})
	})

	return links, nil
}
