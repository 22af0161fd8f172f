package monitor

import (
	"fmt"
	"testing"

	"jobmatch/monitor-service/internal/model"
)

func namedSources(n int) []model.Source {
	out := make([]model.Source, n)
	for i := range out {
		out[i] = model.Source{ID: fmt.Sprintf("s%d", i), Name: fmt.Sprintf("Source %d", i)}
	}
	return out
}

func TestRotateSources_FewerThanCapReturnsAll(t *testing.T) {
	sources := namedSources(2)
	got := rotateSources(sources, 3, 17)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestRotateSources_WindowWrapsAround(t *testing.T) {
	sources := namedSources(5)
	got := rotateSources(sources, 3, 3) // start at (3×3) mod 5 = 4, wraps to 0, 1
	want := []string{"s4", "s0", "s1"}
	for i, s := range got {
		if s.ID != want[i] {
			t.Errorf("window[%d] = %s, want %s", i, s.ID, want[i])
		}
	}
}

// With N sources and a window of C, ceil(N/C) consecutive hourly runs must
// visit every source at least once.
func TestRotateSources_CoverageWithinCeilRuns(t *testing.T) {
	const n, c = 7, 3
	sources := namedSources(n)
	runs := (n + c - 1) / c

	visited := make(map[string]bool)
	// Start mid-day: the guarantee holds for any consecutive window.
	for hour := 9; hour < 9+runs; hour++ {
		for _, s := range rotateSources(sources, c, hour) {
			visited[s.ID] = true
		}
	}

	if len(visited) != n {
		t.Errorf("visited %d of %d sources in %d runs: %v", len(visited), n, runs, visited)
	}
}

func TestRotateSources_ZeroCap(t *testing.T) {
	if got := rotateSources(namedSources(3), 0, 1); got != nil {
		t.Errorf("expected nil for zero cap, got %v", got)
	}
}
