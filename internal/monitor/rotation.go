package monitor

import "jobmatch/monitor-service/internal/model"

// rotateSources picks a contiguous window of at most max sources, wrapping
// around, with the window advancing by max positions each hour. Any
// ceil(N/max) consecutive hourly runs therefore visit every source at
// least once, without persisted rotation state, and load spreads evenly
// across the day.
func rotateSources(sources []model.Source, max, hour int) []model.Source {
	if max <= 0 || len(sources) == 0 {
		return nil
	}
	if len(sources) <= max {
		return sources
	}

	start := (hour * max) % len(sources)
	window := make([]model.Source, 0, max)
	for i := 0; i < max; i++ {
		window = append(window, sources[(start+i)%len(sources)])
	}
	return window
}
