package model

// CarouselSnapshot describes every carousel found on a page.
type CarouselSnapshot struct {
	Found     bool       `json:"found"`
	Carousels []Carousel `json:"carousels,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Carousel is one carousel component: its slides, chevron navigation,
// and progress indicators.
type Carousel struct {
	// Index is the 1-based position of this carousel on the page.
	Index int `json:"index"`

	Container  BoundingBox  `json:"container"`
	SlideCount int          `json:"slide_count"`
	Slides     []Slide      `json:"slides,omitempty"`
	Chevrons   ChevronProbe `json:"chevrons"`
	Progress   ProgressBar  `json:"progress"`
	FontStyles []FontStyle  `json:"font_styles,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// Slide is one carousel slide or card.
type Slide struct {
	// Index is the 1-based slide position.
	Index int `json:"index"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// BackgroundImage is the URL extracted from the slide's computed
	// background-image, empty when none is set.
	BackgroundImage string `json:"background_image,omitempty"`

	// Image is the first <img> inside the slide, if any.
	Image ImageInfo `json:"image,omitempty"`

	ButtonCount int           `json:"button_count"`
	Buttons     []ButtonProbe `json:"buttons,omitempty"`
	Links       []LinkCheck   `json:"links,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// ButtonProbe records a click test against a slide CTA button.
type ButtonProbe struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
	Enabled bool   `json:"enabled"`

	// ClickTested is true when the button was actually clicked.
	ClickTested bool `json:"click_tested"`

	// Navigated is true when the click changed the page URL.
	Navigated bool   `json:"navigated"`
	FromURL   string `json:"from_url,omitempty"`
	ToURL     string `json:"to_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ChevronDirection identifies a carousel navigation control.
type ChevronDirection string

const (
	// ChevronPrev is the previous-slide control.
	ChevronPrev ChevronDirection = "prev"
	// ChevronNext is the next-slide control.
	ChevronNext ChevronDirection = "next"
)

// ChevronProbe records click tests against the carousel's prev/next controls.
// A click is successful when the active-slide index changed afterwards.
type ChevronProbe struct {
	HasPrev     bool `json:"has_prev"`
	HasNext     bool `json:"has_next"`
	PrevVisible bool `json:"prev_visible"`
	NextVisible bool `json:"next_visible"`

	Clicks []ChevronClick `json:"clicks,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// ChevronClick is one observed click on a chevron.
type ChevronClick struct {
	Direction ChevronDirection `json:"direction"`

	// Attempt is the 1-based click number for this direction.
	Attempt int `json:"attempt"`

	// Before and After are the active-slide indexes observed around the
	// click. Changed is true when they differ.
	Before  int  `json:"before"`
	After   int  `json:"after"`
	Changed bool `json:"changed"`
}

// ClicksFor returns tested and successful click counts for one direction.
func (c ChevronProbe) ClicksFor(dir ChevronDirection) (tested, successful int) {
	for _, click := range c.Clicks {
		if click.Direction != dir {
			continue
		}
		tested++
		if click.Changed {
			successful++
		}
	}
	return tested, successful
}

// Working reports whether at least one tested click in either direction
// moved the active slide.
func (c ChevronProbe) Working() bool {
	for _, click := range c.Clicks {
		if click.Changed {
			return true
		}
	}
	return false
}

// ProgressBar describes the carousel's progress/pagination indicators.
type ProgressBar struct {
	Exists         bool `json:"exists"`
	Visible        bool `json:"visible"`
	IndicatorCount int  `json:"indicator_count,omitempty"`
}
