package probe

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterValue is one requested dropdown selection: either a 1-based index
// into the visible options, or a literal option text. Skip marks a
// position the caller chose not to filter on.
type FilterValue struct {
	// Index is the 1-based option position. 0 when Text is set or the
	// value is skipped.
	Index int

	// Text is the literal option text to select. Takes precedence over
	// Index when both could apply.
	Text string

	// Skip is true when this dropdown should be left untouched.
	Skip bool
}

// ByIndex reports whether this value selects by position.
func (v FilterValue) ByIndex() bool { return !v.Skip && v.Text == "" && v.Index > 0 }

func (v FilterValue) String() string {
	switch {
	case v.Skip:
		return "none"
	case v.Text != "":
		return strconv.Quote(v.Text)
	default:
		return strconv.Itoa(v.Index)
	}
}

// ParseFilterSpec parses a comma-separated filter argument into one value
// per dropdown, in dropdown order.
//
// Each position is a bare 1-based index, a quoted or unquoted option
// text, or the word "none" (or an empty position) to skip that dropdown.
// Quoting protects commas inside option texts, so
//
//	2,2,1
//	"PCIe 5.0 x4, NVMe","E1.S 9.5mm","15.36TB"
//	1,"E1.S 9.5mm",none
//
// all parse to three values. Unbalanced quotes are an error.
func ParseFilterSpec(spec string) ([]FilterValue, error) {
	parts, err := splitQuoted(spec)
	if err != nil {
		return nil, err
	}

	values := make([]FilterValue, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), `"'`)
		switch {
		case part == "" || strings.EqualFold(part, "none"):
			values = append(values, FilterValue{Skip: true})
		case isDigits(part):
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("parse filter index %q: %w", part, err)
			}
			values = append(values, FilterValue{Index: n})
		default:
			values = append(values, FilterValue{Text: part})
		}
	}
	return values, nil
}

// splitQuoted splits on commas that are outside single or double quotes.
// The quote characters stay in the output; the caller strips them.
func splitQuoted(s string) ([]string, error) {
	var (
		parts   []string
		current strings.Builder
		quote   rune
	)
	for _, r := range s {
		switch {
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
			current.WriteRune(r)
		case r == quote:
			quote = 0
			current.WriteRune(r)
		case r == ',' && quote == 0:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unbalanced quote in filter spec %q", s)
	}
	if current.Len() > 0 || len(parts) > 0 {
		parts = append(parts, current.String())
	}
	return parts, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
