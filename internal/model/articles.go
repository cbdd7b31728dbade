package model

// ArticleListSnapshot describes an article-list or related-articles section.
type ArticleListSnapshot struct {
	Found     bool          `json:"found"`
	CardCount int           `json:"card_count"`
	Cards     []ArticleCard `json:"cards,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// ArticleCard is one article teaser card.
type ArticleCard struct {
	// Index is the 1-based card position.
	Index int `json:"index"`

	Container BoundingBox `json:"container"`
	Image     ImageInfo   `json:"image,omitempty"`
	Category  string      `json:"category,omitempty"`
	Title     TextStyle   `json:"title"`
	Link      LinkCheck   `json:"link,omitempty"`

	// URLFormatValid is true when the card's href matches the expected
	// article URL shape (a /products/ path ending in .html).
	URLFormatValid bool `json:"url_format_valid"`

	// URLMatchesTitle is true when the href slug resembles the card title.
	URLMatchesTitle bool `json:"url_matches_title"`

	Error string `json:"error,omitempty"`
}

// BladeSnapshot describes the page's blade sections: full-width bands of
// text, media, and call-to-action buttons.
type BladeSnapshot struct {
	Found  bool    `json:"found"`
	Blades []Blade `json:"blades,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Blade is one blade section.
type Blade struct {
	// Index is the 1-based blade position.
	Index int `json:"index"`

	Container   BoundingBox `json:"container"`
	Title       TextStyle   `json:"title"`
	Description TextStyle   `json:"description"`
	Image       ImageInfo   `json:"image,omitempty"`
	CTAs        []LinkCheck `json:"ctas,omitempty"`
	Error       string      `json:"error,omitempty"`
}
