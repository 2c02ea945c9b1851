package analysis

import "sort"

// GrowthRate returns the percentage change from previous to current.
// A zero previous value yields 100 if current is positive, otherwise 0.
func GrowthRate(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// CalculateSignals computes growth signals from the two most recent weeks of
// the record. It returns false when fewer than two snapshots exist.
func CalculateSignals(artist ArtistRecord) (SignalSet, bool) {
	metrics := artist.WeeklyMetrics
	if len(metrics) < 2 {
		return SignalSet{}, false
	}

	// Most recent first. Stable, so snapshots sharing a week keep arrival order.
	sorted := make([]WeeklyMetric, len(metrics))
	copy(sorted, metrics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Week.After(sorted[j].Week)
	})

	current, previous := sorted[0], sorted[1]
	return SignalSet{
		StreamGrowthRate:   GrowthRate(current.Streams, previous.Streams),
		PlaylistGrowthRate: GrowthRate(current.PlaylistAdds, previous.PlaylistAdds),
		ListenerGrowthRate: GrowthRate(current.Listeners, previous.Listeners),
	}, true
}
