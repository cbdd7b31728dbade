package model

// LinkState classifies the outcome of probing a single URL.
//
// Design decision: Transport failures (timeout, DNS error, connection refused)
// get their own bucket instead of being folded into "broken". A 404 is a fact
// about the site; a timeout is a fact about the probe. Reports count them
// separately so a flaky network doesn't inflate the broken-link count.
type LinkState string

const (
	// LinkStateValid means the URL answered with a 2xx or 3xx status.
	LinkStateValid LinkState = "valid"

	// LinkStateBroken means the URL answered with a 4xx or 5xx status.
	LinkStateBroken LinkState = "broken"

	// LinkStateNotChecked means the request failed before a status was
	// received (timeout, DNS failure, connection error).
	LinkStateNotChecked LinkState = "not_checked"

	// LinkStateSkipped means the URL uses a non-HTTP scheme
	// (mailto:, tel:, javascript:, fragment-only) and was not probed.
	LinkStateSkipped LinkState = "skipped"
)

// ClassifyStatus maps an HTTP status code to a LinkState.
// Codes in [200, 400) are valid, [400, 600) are broken, and anything
// else (including 0, the "no response" sentinel) is not checked.
func ClassifyStatus(status int) LinkState {
	switch {
	case status >= 200 && status < 400:
		return LinkStateValid
	case status >= 400 && status < 600:
		return LinkStateBroken
	default:
		return LinkStateNotChecked
	}
}

// LinkCheck records the observed state of one outbound link.
type LinkCheck struct {
	// URL is the absolute URL that was probed.
	URL string `json:"url"`

	// Text is the anchor text the link carried on the page, trimmed.
	Text string `json:"text,omitempty"`

	// StatusCode is the HTTP status received, or 0 if no response arrived.
	StatusCode int `json:"status_code"`

	// State is the classification of this check.
	State LinkState `json:"state"`

	// Visible reports whether the element was visible when observed.
	Visible bool `json:"visible,omitempty"`

	// Message is a human-readable description of the outcome, primarily
	// useful for not_checked links where it carries the transport error.
	Message string `json:"message,omitempty"`
}

// Valid reports whether the link resolved to a non-error status.
func (l LinkCheck) Valid() bool { return l.State == LinkStateValid }

// CountLinkStates tallies link checks by state.
// The returned map always contains all four states, so report writers
// can index it without existence checks.
func CountLinkStates(links []LinkCheck) map[LinkState]int {
	counts := map[LinkState]int{
		LinkStateValid:      0,
		LinkStateBroken:     0,
		LinkStateNotChecked: 0,
		LinkStateSkipped:    0,
	}
	for _, l := range links {
		counts[l.State]++
	}
	return counts
}
