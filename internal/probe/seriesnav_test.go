package probe

import "testing"

func TestSameSeriesPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		landed   string
		expected string
		want     bool
	}{
		{
			name:     "identical absolute",
			landed:   "https://www.solidigm.com/products/data-center/d7.html",
			expected: "https://www.solidigm.com/products/data-center/d7.html",
			want:     true,
		},
		{
			name:     "landed carries query",
			landed:   "https://www.solidigm.com/products/data-center/d7.html?ref=nav",
			expected: "https://www.solidigm.com/products/data-center/d7.html",
			want:     true,
		},
		{
			name:     "relative expected",
			landed:   "https://www.solidigm.com/products/data-center/d5.html",
			expected: "/products/data-center/d5.html",
			want:     true,
		},
		{
			name:     "wrong series",
			landed:   "https://www.solidigm.com/products/data-center/d5.html",
			expected: "https://www.solidigm.com/products/data-center/d7.html",
			want:     false,
		},
		{
			name:     "different host",
			landed:   "https://example.com/products/data-center/d7.html",
			expected: "https://www.solidigm.com/products/data-center/d7.html",
			want:     false,
		},
		{
			name:     "trailing slash tolerated",
			landed:   "https://www.solidigm.com/products/data-center/",
			expected: "/products/data-center",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sameSeriesPage(tt.landed, tt.expected); got != tt.want {
				t.Errorf("sameSeriesPage(%q, %q) = %v, want %v", tt.landed, tt.expected, got, tt.want)
			}
		})
	}
}
