package model

import "testing"

// TestClassifyStatus verifies the three-way status partition:
// 2xx/3xx valid, 4xx/5xx broken, anything else not checked.
func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   LinkState
	}{
		{name: "ok", status: 200, want: LinkStateValid},
		{name: "created", status: 201, want: LinkStateValid},
		{name: "moved permanently", status: 301, want: LinkStateValid},
		{name: "found redirect", status: 302, want: LinkStateValid},
		{name: "not modified", status: 304, want: LinkStateValid},
		{name: "bad request", status: 400, want: LinkStateBroken},
		{name: "not found", status: 404, want: LinkStateBroken},
		{name: "gone", status: 410, want: LinkStateBroken},
		{name: "server error", status: 500, want: LinkStateBroken},
		{name: "bad gateway", status: 502, want: LinkStateBroken},
		{name: "no response", status: 0, want: LinkStateNotChecked},
		{name: "negative sentinel", status: -1, want: LinkStateNotChecked},
		{name: "informational", status: 100, want: LinkStateNotChecked},
		{name: "out of range", status: 600, want: LinkStateNotChecked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ClassifyStatus(tt.status); got != tt.want {
				t.Errorf("ClassifyStatus(%d) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

// TestCountLinkStates verifies that transport failures are counted
// separately from broken links.
func TestCountLinkStates(t *testing.T) {
	t.Parallel()

	links := []LinkCheck{
		{URL: "https://example.com/a", StatusCode: 200, State: LinkStateValid},
		{URL: "https://example.com/b", StatusCode: 301, State: LinkStateValid},
		{URL: "https://example.com/c", StatusCode: 404, State: LinkStateBroken},
		{URL: "https://example.com/d", StatusCode: 0, State: LinkStateNotChecked},
		{URL: "mailto:info@example.com", State: LinkStateSkipped},
	}

	counts := CountLinkStates(links)

	if counts[LinkStateValid] != 2 {
		t.Errorf("valid = %d, want 2", counts[LinkStateValid])
	}
	if counts[LinkStateBroken] != 1 {
		t.Errorf("broken = %d, want 1", counts[LinkStateBroken])
	}
	if counts[LinkStateNotChecked] != 1 {
		t.Errorf("not_checked = %d, want 1", counts[LinkStateNotChecked])
	}
	if counts[LinkStateSkipped] != 1 {
		t.Errorf("skipped = %d, want 1", counts[LinkStateSkipped])
	}
}

// TestCountLinkStatesEmpty verifies all buckets exist for an empty input,
// so report writers can index the map unconditionally.
func TestCountLinkStatesEmpty(t *testing.T) {
	t.Parallel()

	counts := CountLinkStates(nil)
	for _, state := range []LinkState{LinkStateValid, LinkStateBroken, LinkStateNotChecked, LinkStateSkipped} {
		if n, ok := counts[state]; !ok || n != 0 {
			t.Errorf("counts[%q] = %d (present=%v), want 0 and present", state, n, ok)
		}
	}
}
