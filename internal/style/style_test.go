package style

import "testing"

// TestParseColorEquivalence verifies that the same color in rgb() and hex
// notation parses to the same RGB value.
func TestParseColorEquivalence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
	}{
		{name: "black", a: "rgb(0,0,0)", b: "#000000"},
		{name: "white", a: "rgb(255, 255, 255)", b: "#ffffff"},
		{name: "mid gray with spaces", a: "rgb(64, 64, 64)", b: "#404040"},
		{name: "shorthand hex", a: "rgb(255, 255, 255)", b: "#fff"},
		{name: "rgba alpha ignored", a: "rgba(16, 32, 48, 0.5)", b: "#102030"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseColor(tt.a)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.a, err)
			}
			want, err := ParseColor(tt.b)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.b, err)
			}
			if got != want {
				t.Errorf("ParseColor(%q) = %v, ParseColor(%q) = %v; want equal", tt.a, got, tt.b, want)
			}
		})
	}
}

// TestParseColorValues verifies concrete channel values.
func TestParseColorValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  RGB
	}{
		{input: "rgb(12, 34, 56)", want: RGB{12, 34, 56}},
		{input: "#0a141e", want: RGB{10, 20, 30}},
		{input: "white", want: RGB{255, 255, 255}},
		{input: "green", want: RGB{0, 128, 0}},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.input)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// TestParseColorErrors verifies malformed input returns an error instead
// of a silent zero value.
func TestParseColorErrors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "rgb()", "#zz0000", "#12", "chartreuse-ish"} {
		if _, err := ParseColor(input); err == nil {
			t.Errorf("ParseColor(%q) expected error, got nil", input)
		}
	}
}

// TestColorsMatch verifies the per-channel tolerance rule.
func TestColorsMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		a, b      RGB
		tolerance int
		want      bool
	}{
		{name: "identical", a: RGB{0, 0, 0}, b: RGB{0, 0, 0}, tolerance: 0, want: true},
		{name: "within tolerance", a: RGB{0, 0, 0}, b: RGB{5, 5, 5}, tolerance: 10, want: true},
		{name: "outside tolerance", a: RGB{0, 0, 0}, b: RGB{5, 5, 5}, tolerance: 2, want: false},
		{name: "exactly at tolerance", a: RGB{100, 100, 100}, b: RGB{110, 90, 100}, tolerance: 10, want: true},
		{name: "one channel over", a: RGB{100, 100, 100}, b: RGB{111, 100, 100}, tolerance: 10, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ColorsMatch(tt.a, tt.b, tt.tolerance); got != tt.want {
				t.Errorf("ColorsMatch(%v, %v, %d) = %v, want %v", tt.a, tt.b, tt.tolerance, got, tt.want)
			}
		})
	}
}

// TestParsePixels verifies numeric extraction from CSS lengths.
func TestParsePixels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  float64
	}{
		{input: "32px", want: 32},
		{input: "32.0001px", want: 32.0001},
		{input: "1200.5px", want: 1200.5},
		{input: "0px", want: 0},
	}

	for _, tt := range tests {
		got, err := ParsePixels(tt.input)
		if err != nil {
			t.Errorf("ParsePixels(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePixels(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParsePixels("auto"); err == nil {
		t.Error("ParsePixels(\"auto\") expected error, got nil")
	}
}

// TestFormatFontSize verifies two-decimal normalization and non-numeric
// passthrough.
func TestFormatFontSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "32.0001px", want: "32.00px"},
		{input: "32px", want: "32.00px"},
		{input: "14.4px", want: "14.40px"},
		{input: "inherit", want: "inherit"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := FormatFontSize(tt.input); got != tt.want {
			t.Errorf("FormatFontSize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
