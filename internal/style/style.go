package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Default tolerances for style comparisons. These match the thresholds the
// validation suite was originally tuned with: sub-pixel font rendering and
// anti-aliasing make exact matches unreliable.
const (
	// DefaultFontSizeTolerance is the allowed font-size deviation in pixels.
	DefaultFontSizeTolerance = 2.0

	// DefaultColorTolerance is the allowed per-channel RGB deviation.
	DefaultColorTolerance = 10

	// DefaultSizeTolerance is the allowed container dimension deviation
	// in pixels.
	DefaultSizeTolerance = 5.0
)

// RGB is a parsed color value.
type RGB struct {
	R, G, B int
}

// numberRe extracts the first decimal number from a CSS length value.
var numberRe = regexp.MustCompile(`-?\d+\.?\d*`)

// digitsRe extracts the integer channel values from an rgb()/rgba() string.
var digitsRe = regexp.MustCompile(`\d+`)

// namedColors covers the handful of CSS keywords the probed sites use.
// Anything else falls back to black, matching the comparison behavior the
// validators were tuned against.
var namedColors = map[string]RGB{
	"black": {0, 0, 0},
	"white": {255, 255, 255},
	"red":   {255, 0, 0},
	"green": {0, 128, 0},
	"blue":  {0, 0, 255},
}

// ParseColor parses a CSS color string into an RGB value.
// It accepts "rgb(r, g, b)", "rgba(r, g, b, a)" (alpha ignored),
// "#rrggbb", "#rgb", and a few named colors. Equivalent colors in
// different notations parse to the same RGB: "rgb(0,0,0)" == "#000000".
func ParseColor(color string) (RGB, error) {
	color = strings.TrimSpace(strings.ToLower(color))

	switch {
	case strings.HasPrefix(color, "rgb"):
		channels := digitsRe.FindAllString(color, 4)
		if len(channels) < 3 {
			return RGB{}, fmt.Errorf("malformed rgb color %q", color)
		}
		r, _ := strconv.Atoi(channels[0])
		g, _ := strconv.Atoi(channels[1])
		b, _ := strconv.Atoi(channels[2])
		return RGB{R: r, G: g, B: b}, nil

	case strings.HasPrefix(color, "#"):
		hex := strings.TrimPrefix(color, "#")
		// Expand shorthand #rgb to #rrggbb.
		if len(hex) == 3 {
			hex = strings.Join([]string{
				string(hex[0]), string(hex[0]),
				string(hex[1]), string(hex[1]),
				string(hex[2]), string(hex[2]),
			}, "")
		}
		if len(hex) < 6 {
			return RGB{}, fmt.Errorf("malformed hex color %q", color)
		}
		r, err := strconv.ParseUint(hex[0:2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("malformed hex color %q: %w", color, err)
		}
		g, err := strconv.ParseUint(hex[2:4], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("malformed hex color %q: %w", color, err)
		}
		b, err := strconv.ParseUint(hex[4:6], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("malformed hex color %q: %w", color, err)
		}
		return RGB{R: int(r), G: int(g), B: int(b)}, nil

	default:
		if rgb, ok := namedColors[color]; ok {
			return rgb, nil
		}
		return RGB{}, fmt.Errorf("unrecognized color %q", color)
	}
}

// ColorsMatch reports whether two colors match within a per-channel
// tolerance: true iff every channel difference is <= tolerance.
func ColorsMatch(a, b RGB, tolerance int) bool {
	return abs(a.R-b.R) <= tolerance &&
		abs(a.G-b.G) <= tolerance &&
		abs(a.B-b.B) <= tolerance
}

// ParsePixels extracts the numeric pixel value from a CSS length such as
// "32.0001px" or "1200px". Returns an error when no number is present.
func ParsePixels(value string) (float64, error) {
	m := numberRe.FindString(value)
	if m == "" {
		return 0, fmt.Errorf("no numeric value in %q", value)
	}
	return strconv.ParseFloat(m, 64)
}

// FormatFontSize normalizes a computed font-size for display: numeric
// pixel values are rounded to two decimals ("32.0001px" -> "32.00px").
// Non-numeric input passes through unchanged.
func FormatFontSize(value string) string {
	trimmed := strings.TrimSuffix(strings.TrimSpace(value), "px")
	px, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%.2fpx", px)
}

// SizesMatch reports whether two pixel lengths match within tolerance.
func SizesMatch(a, b, tolerance float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
