package model

// HeroSnapshot describes a page's hero banner.
type HeroSnapshot struct {
	Found bool `json:"found"`

	Container BoundingBox `json:"container"`

	// Background is the hero's background image, from the computed
	// background-image or a nested picture/img element.
	Background ImageInfo `json:"background,omitempty"`

	Breadcrumbs []Breadcrumb `json:"breadcrumbs,omitempty"`
	Title       TextStyle    `json:"title"`
	Description TextStyle    `json:"description"`

	// IdentifiedSeries is the product series ("D3", "D5", "D7") inferred
	// from the title or breadcrumb text, empty when none matched.
	IdentifiedSeries string `json:"identified_series,omitempty"`

	Error string `json:"error,omitempty"`
}

// Breadcrumb is one entry in a hero breadcrumb trail.
type Breadcrumb struct {
	Text string `json:"text"`
	Href string `json:"href,omitempty"`

	// Current is true for the trailing, non-linked entry.
	Current bool `json:"current"`
}
