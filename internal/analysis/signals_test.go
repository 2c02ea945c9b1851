package analysis

import (
	"math"
	"testing"
	"time"
)

func week(t *testing.T, ds string) time.Time {
	t.Helper()
	w, err := time.Parse("2006-01-02", ds)
	if err != nil {
		t.Fatalf("time.Parse(%q): %v", ds, err)
	}
	return w
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		current  int64
		previous int64
		want     float64
	}{
		{0, 0, 0},
		{5, 0, 100},
		{150, 100, 50},
		{50, 100, -50},
		{100, 100, 0},
		{0, 100, -100},
		{1000, 10, 9900},
	}

	for _, tc := range tests {
		got := GrowthRate(tc.current, tc.previous)
		if !approxEqual(got, tc.want) {
			t.Errorf("GrowthRate(%d, %d) = %v; want %v", tc.current, tc.previous, got, tc.want)
		}
	}
}

func TestCalculateSignalsInsufficientData(t *testing.T) {
	for _, n := range []int{0, 1} {
		artist := ArtistRecord{ID: "a", Name: "A"}
		for i := 0; i < n; i++ {
			artist.WeeklyMetrics = append(artist.WeeklyMetrics, WeeklyMetric{
				Week:    week(t, "2024-01-01"),
				Streams: 10,
			})
		}
		if _, ok := CalculateSignals(artist); ok {
			t.Errorf("CalculateSignals with %d snapshots should report insufficient data", n)
		}
	}
}

func TestCalculateSignalsUsesMostRecentWeeks(t *testing.T) {
	artist := ArtistRecord{
		ID:   "a1",
		Name: "Artist",
		WeeklyMetrics: []WeeklyMetric{
			{Week: week(t, "2024-01-01"), Streams: 100, PlaylistAdds: 1, Listeners: 1},
			{Week: week(t, "2024-01-15"), Streams: 300, PlaylistAdds: 30, Listeners: 0},
			{Week: week(t, "2024-01-08"), Streams: 200, PlaylistAdds: 20, Listeners: 0},
		},
	}

	signals, ok := CalculateSignals(artist)
	if !ok {
		t.Fatalf("CalculateSignals should succeed with 3 snapshots")
	}
	if !approxEqual(signals.StreamGrowthRate, 50) {
		t.Errorf("StreamGrowthRate = %v; want 50", signals.StreamGrowthRate)
	}
	if !approxEqual(signals.PlaylistGrowthRate, 50) {
		t.Errorf("PlaylistGrowthRate = %v; want 50", signals.PlaylistGrowthRate)
	}
	if signals.ListenerGrowthRate != 0 {
		t.Errorf("ListenerGrowthRate = %v; want 0", signals.ListenerGrowthRate)
	}
}

func TestCalculateSignalsDoesNotMutateInput(t *testing.T) {
	artist := ArtistRecord{
		WeeklyMetrics: []WeeklyMetric{
			{Week: week(t, "2024-01-01"), Streams: 1},
			{Week: week(t, "2024-01-15"), Streams: 3},
			{Week: week(t, "2024-01-08"), Streams: 2},
		},
	}

	CalculateSignals(artist)

	wantOrder := []int64{1, 3, 2}
	for i, m := range artist.WeeklyMetrics {
		if m.Streams != wantOrder[i] {
			t.Fatalf("WeeklyMetrics[%d].Streams = %d after CalculateSignals; want %d", i, m.Streams, wantOrder[i])
		}
	}
}

func TestCalculateSignalsSameWeekKeepsArrivalOrder(t *testing.T) {
	artist := ArtistRecord{
		WeeklyMetrics: []WeeklyMetric{
			{Week: week(t, "2024-01-01"), Streams: 100},
			{Week: week(t, "2024-01-08"), Streams: 200},
			{Week: week(t, "2024-01-08"), Streams: 400},
		},
	}

	// Both 2024-01-08 entries tie; the earlier arrival sorts first and is
	// treated as current, the later one as previous.
	signals, _ := CalculateSignals(artist)
	if !approxEqual(signals.StreamGrowthRate, -50) {
		t.Errorf("StreamGrowthRate = %v; want -50", signals.StreamGrowthRate)
	}

	again, _ := CalculateSignals(artist)
	if again != signals {
		t.Errorf("CalculateSignals is not deterministic: %+v vs %+v", signals, again)
	}
}
