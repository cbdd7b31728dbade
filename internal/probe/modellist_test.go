package probe

import (
	"errors"
	"testing"

	"github.com/pagelint/pagelint/internal/model"
)

// TestSelectWithRetry verifies the single re-open-and-click fallback:
// failures in the selection mechanics get exactly one more attempt,
// definitive misses get none.
func TestSelectWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("second attempt can succeed", func(t *testing.T) {
		t.Parallel()
		attempts, resets := 0, 0
		selected, kind, err := selectWithRetry(func() (string, string, error) {
			attempts++
			if attempts == 1 {
				return "", model.FilterErrSelectionFailed, errors.New("click failed")
			}
			return "E1.S 9.5mm", "", nil
		}, func() { resets++ })
		if err != nil {
			t.Fatalf("selectWithRetry() error = %v", err)
		}
		if selected != "E1.S 9.5mm" || kind != "" {
			t.Errorf("got (%q, %q), want selected text with empty kind", selected, kind)
		}
		if attempts != 2 || resets != 1 {
			t.Errorf("attempts = %d, resets = %d, want 2 and 1", attempts, resets)
		}
	})

	t.Run("fallback is bounded to one retry", func(t *testing.T) {
		t.Parallel()
		attempts := 0
		_, kind, err := selectWithRetry(func() (string, string, error) {
			attempts++
			return "", model.FilterErrSelectionFailed, errors.New("did not register")
		}, func() {})
		if err == nil {
			t.Fatal("selectWithRetry() expected error")
		}
		if attempts != 2 {
			t.Errorf("attempts = %d, want 2", attempts)
		}
		if kind != model.FilterErrSelectionFailed {
			t.Errorf("kind = %q, want %q", kind, model.FilterErrSelectionFailed)
		}
	})

	t.Run("definitive misses are not retried", func(t *testing.T) {
		t.Parallel()
		for _, kind := range []string{
			model.FilterErrDropdownNotFound,
			model.FilterErrOptionNotFound,
			model.FilterErrIndexOutOfRange,
		} {
			attempts := 0
			_, got, err := selectWithRetry(func() (string, string, error) {
				attempts++
				return "", kind, errors.New("miss")
			}, func() { t.Errorf("reset called for kind %q", kind) })
			if err == nil {
				t.Fatalf("selectWithRetry() expected error for kind %q", kind)
			}
			if attempts != 1 {
				t.Errorf("kind %q: attempts = %d, want 1", kind, attempts)
			}
			if got != kind {
				t.Errorf("kind = %q, want %q", got, kind)
			}
		}
	})
}

// TestFilterErrorCodes verifies the exact codes a failed selection
// records, dropdown name first.
func TestFilterErrorCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dropdown string
		kind     string
		want     string
	}{
		{dropdown: "Interface", kind: model.FilterErrDropdownNotFound, want: "Interface Dropdown Not Found"},
		{dropdown: "Interface", kind: model.FilterErrOptionNotFound, want: "Interface Option Not Found"},
		{dropdown: "Form Factor", kind: model.FilterErrIndexOutOfRange, want: "Form Factor Index Out of Range"},
		{dropdown: "Capacity", kind: model.FilterErrSelectionFailed, want: "Capacity Selection Failed"},
	}
	for _, tt := range tests {
		if got := model.FilterCode(tt.dropdown, tt.kind); got != tt.want {
			t.Errorf("FilterCode(%q, %q) = %q, want %q", tt.dropdown, tt.kind, got, tt.want)
		}
	}
}
