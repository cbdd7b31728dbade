package probe

import "testing"

func TestIdentifySeries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		title     string
		fallbacks []string
		want      string
	}{
		{
			name:  "series in title",
			title: "D7 Series SSDs for Data Centers",
			want:  "D7",
		},
		{
			name:  "model number in title",
			title: "Solidigm D5-P5430",
			want:  "D5",
		},
		{
			name:      "series from breadcrumb fallback",
			title:     "Essential Endurance",
			fallbacks: []string{"Home", "Data Center", "D3 Series"},
			want:      "D3",
		},
		{
			name:      "title wins over fallback",
			title:     "D5 Series",
			fallbacks: []string{"D7 Series"},
			want:      "D5",
		},
		{
			name:  "lowercase input",
			title: "the d7 series",
			want:  "D7",
		},
		{
			name:  "embedded token does not match",
			title: "SSD7 performance guide",
			want:  "",
		},
		{
			name:  "no series anywhere",
			title: "About Us",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IdentifySeries(tt.title, tt.fallbacks...); got != tt.want {
				t.Errorf("IdentifySeries(%q, %v) = %q, want %q", tt.title, tt.fallbacks, got, tt.want)
			}
		})
	}
}
