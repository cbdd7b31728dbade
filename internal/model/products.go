package model

// FeaturedProductsSnapshot describes a featured-products grid.
type FeaturedProductsSnapshot struct {
	Found     bool          `json:"found"`
	Title     TextStyle     `json:"title"`
	CardCount int           `json:"card_count"`
	Cards     []ProductCard `json:"cards,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// ProductCard is one product card: in a featured grid, a model list,
// or a series page.
type ProductCard struct {
	// Index is the 1-based card position.
	Index int `json:"index"`

	Container   BoundingBox `json:"container"`
	Image       ImageInfo   `json:"image,omitempty"`
	Title       TextStyle   `json:"title"`
	Description TextStyle   `json:"description"`

	// Interface, FormFactor, and Capacity are the spec attributes shown
	// on model-list cards; empty on cards that don't carry them.
	Interface  TextStyle `json:"interface,omitempty"`
	FormFactor TextStyle `json:"form_factor,omitempty"`
	Capacity   TextStyle `json:"capacity,omitempty"`

	// DetailsLink is the card's view-details destination.
	DetailsLink LinkCheck `json:"details_link,omitempty"`

	Error string `json:"error,omitempty"`
}

// ModelListSnapshot describes the model-list section: a title, three
// dependent filter dropdowns, and the product cards they control.
type ModelListSnapshot struct {
	Found bool `json:"found"`

	Title     TextStyle  `json:"title"`
	Dropdowns []Dropdown `json:"dropdowns,omitempty"`

	// DefaultCards is the unfiltered card set observed before any
	// dropdown interaction.
	DefaultCards []ProductCard `json:"default_cards,omitempty"`

	// Filter is the outcome of the dependent-dropdown filter probe.
	Filter FilterResult `json:"filter"`

	RelatedArticles ArticleListSnapshot `json:"related_articles"`

	Error string `json:"error,omitempty"`
}

// Dropdown describes one filter dropdown and its visible options.
// Option lists are re-read after every interaction because later
// dropdowns mutate when earlier selections change.
type Dropdown struct {
	Name        string           `json:"name"`
	Found       bool             `json:"found"`
	Placeholder string           `json:"placeholder,omitempty"`
	Selected    string           `json:"selected,omitempty"`
	Options     []DropdownOption `json:"options,omitempty"`
}

// DropdownOption is one visible option in a filter dropdown.
type DropdownOption struct {
	Text string    `json:"text"`
	Font FontStyle `json:"font,omitempty"`
}

// Filter error kinds. A filter probe that cannot complete records an
// error code built by FilterCode and returns early; the human-readable
// detail goes in ErrorMessage.
const (
	FilterErrDropdownNotFound = "Dropdown Not Found"
	FilterErrOptionNotFound   = "Option Not Found"
	FilterErrIndexOutOfRange  = "Index Out of Range"
	FilterErrSelectionFailed  = "Selection Failed"
)

// FilterCode builds the error code recorded when a selection fails on
// the named dropdown, e.g. "Interface Option Not Found".
func FilterCode(dropdown, kind string) string {
	return dropdown + " " + kind
}

// FilterResult is the outcome of the dependent-dropdown filter probe.
type FilterResult struct {
	// Applied is true when at least one selection was attempted.
	Applied bool `json:"applied"`

	// Works is true when every requested selection succeeded.
	Works bool `json:"works"`

	// Selected maps dropdown name to the option text actually chosen.
	Selected map[string]string `json:"selected,omitempty"`

	CardCount int           `json:"card_count"`
	Cards     []ProductCard `json:"cards,omitempty"`

	// ErrorCode is a FilterCode value naming the dropdown and the
	// failure kind, empty on success. ErrorMessage carries the
	// human-readable detail, including the options that were visible
	// at the time.
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// SeriesCardsSnapshot describes the series cards (D7, D5, D3) on the
// data-center landing page.
type SeriesCardsSnapshot struct {
	Found bool `json:"found"`

	Cards []SeriesCard `json:"cards,omitempty"`

	// ExpectedSeries lists the series the page should link to.
	ExpectedSeries []string `json:"expected_series"`

	// AllPresent is true when every expected series has a card.
	AllPresent bool `json:"all_present"`

	Error string `json:"error,omitempty"`
}

// SeriesCard is one series teaser card.
type SeriesCard struct {
	Series      string    `json:"series"`
	Title       TextStyle `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       ImageInfo `json:"image,omitempty"`
	Href        string    `json:"href,omitempty"`

	// URLFormatValid is true when the href matches the expected
	// /products/data-center/d{3,5,7}.html shape.
	URLFormatValid bool `json:"url_format_valid"`
}

// PDPSnapshot describes a product detail page.
type PDPSnapshot struct {
	Found bool `json:"found"`

	Title         TextStyle    `json:"title"`
	Image         ImageInfo    `json:"image,omitempty"`
	Specs         []SpecRow    `json:"specs,omitempty"`
	Breadcrumbs   []Breadcrumb `json:"breadcrumbs,omitempty"`
	DownloadLinks []LinkCheck  `json:"download_links,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// SpecRow is one label/value pair from a PDP specification table.
type SpecRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SeriesNavSnapshot describes the series-to-series navigation probe:
// from each series page, follow the links to the sibling series and
// confirm the landing URL.
type SeriesNavSnapshot struct {
	Found bool           `json:"found"`
	Hops  []SeriesNavHop `json:"hops,omitempty"`
	Error string         `json:"error,omitempty"`
}

// SeriesNavHop is one navigation attempt between series pages.
type SeriesNavHop struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Clicked   bool   `json:"clicked"`
	LandedURL string `json:"landed_url,omitempty"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}
