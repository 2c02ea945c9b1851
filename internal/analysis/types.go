package analysis

import "time"

// WeeklyMetric is one dated snapshot of an artist's counters.
type WeeklyMetric struct {
	Week         time.Time
	Streams      int64
	PlaylistAdds int64
	Listeners    int64
}

// ArtistRecord is an artist with its weekly snapshots, in the order the
// source delivered them (not necessarily sorted by week).
type ArtistRecord struct {
	ID            string
	Name          string
	Genre         string
	WeeklyMetrics []WeeklyMetric
}

// SignalSet holds growth rates as percentages. Negative values are declines.
type SignalSet struct {
	StreamGrowthRate   float64
	PlaylistGrowthRate float64
	ListenerGrowthRate float64
}

type ScoredArtist struct {
	Artist         ArtistRecord
	Signals        SignalSet
	EmergenceScore float64
}

type ExclusionReason string

const (
	// InsufficientData means fewer than two weekly snapshots were available.
	InsufficientData ExclusionReason = "insufficient data"
)

type Exclusion struct {
	Artist ArtistRecord
	Reason ExclusionReason
}

// Result is the full outcome of a scoring pass: the ranking plus the artists
// that could not be scored.
type Result struct {
	Ranked   []ScoredArtist
	Excluded []Exclusion
}
