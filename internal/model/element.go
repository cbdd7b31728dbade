package model

// BoundingBox is an element's rendered rectangle in CSS pixels,
// as returned by getBoundingClientRect.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rendered reports whether the element occupies any space on the page.
// Elements collapsed to zero width or height are treated as not visible;
// this is the fallback used for active-slide detection when no CSS class
// marks the active slide.
func (b BoundingBox) Rendered() bool {
	return b.Width > 0 && b.Height > 0
}

// FontStyle holds the resolved font properties of one text element.
// Values are raw computed-style strings ("32px", "rgb(0, 0, 0)") so the
// report shows exactly what the browser resolved.
type FontStyle struct {
	// Element names what carried the style: "title", "description", etc.
	Element string `json:"element,omitempty"`

	Size   string `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
	Family string `json:"family,omitempty"`
	Weight string `json:"weight,omitempty"`
}

// TextStyle pairs an element's text content with its font properties.
type TextStyle struct {
	Found bool      `json:"found"`
	Text  string    `json:"text,omitempty"`
	Font  FontStyle `json:"font,omitempty"`
}

// ImageInfo describes an image element and whether it actually loaded.
type ImageInfo struct {
	Src string `json:"src,omitempty"`
	Alt string `json:"alt,omitempty"`

	// Width and Height are the natural pixel dimensions reported by the
	// browser, which are 0 until the image finishes loading.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Loaded is true when the browser reports the image complete with a
	// non-zero natural height.
	Loaded bool `json:"loaded"`
}
