package probe

import (
	"testing"

	"github.com/pagelint/pagelint/internal/model"
)

func TestMissingLabels(t *testing.T) {
	t.Parallel()

	expected := []string{"Product", "Insights", "Support", "Partner", "Company"}

	t.Run("all present", func(t *testing.T) {
		t.Parallel()
		menus := []model.MenuItem{
			{Name: "Product"}, {Name: "Insights"}, {Name: "Support"},
			{Name: "Partner"}, {Name: "Company"},
		}
		if got := missingLabels(expected, menus); len(got) != 0 {
			t.Errorf("missingLabels() = %v, want none", got)
		}
	})

	t.Run("case insensitive with whitespace", func(t *testing.T) {
		t.Parallel()
		menus := []model.MenuItem{
			{Name: "  product  "}, {Name: "INSIGHTS"}, {Name: "Support"},
			{Name: "partner"}, {Name: "Company"},
		}
		if got := missingLabels(expected, menus); len(got) != 0 {
			t.Errorf("missingLabels() = %v, want none", got)
		}
	})

	t.Run("reports missing in expected order", func(t *testing.T) {
		t.Parallel()
		menus := []model.MenuItem{{Name: "Product"}, {Name: "Company"}}
		got := missingLabels(expected, menus)
		want := []string{"Insights", "Support", "Partner"}
		if len(got) != len(want) {
			t.Fatalf("missingLabels() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("missingLabels()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})
}

func TestLabelExpected(t *testing.T) {
	t.Parallel()

	expected := []string{"Product", "Insights"}
	if !labelExpected(expected, " product ") {
		t.Error("labelExpected() = false for case/space variant, want true")
	}
	if labelExpected(expected, "Careers") {
		t.Error("labelExpected() = true for unexpected label, want false")
	}
}
