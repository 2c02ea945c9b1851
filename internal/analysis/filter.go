package analysis

import (
	"strings"
	"time"
)

// AsOf returns the records as they would have looked just before cutoff:
// each record keeps only the snapshots whose week is before cutoff. A zero
// cutoff returns artists unchanged. The input is not modified.
func AsOf(artists []ArtistRecord, cutoff time.Time) []ArtistRecord {
	if cutoff.IsZero() {
		return artists
	}

	out := make([]ArtistRecord, 0, len(artists))
	for _, artist := range artists {
		kept := make([]WeeklyMetric, 0, len(artist.WeeklyMetrics))
		for _, m := range artist.WeeklyMetrics {
			if m.Week.Before(cutoff) {
				kept = append(kept, m)
			}
		}
		artist.WeeklyMetrics = kept
		out = append(out, artist)
	}
	return out
}

// FilterGenre keeps artists whose genre matches, ignoring case. An empty genre
// keeps everything.
func FilterGenre(artists []ArtistRecord, genre string) []ArtistRecord {
	if genre == "" {
		return artists
	}

	var out []ArtistRecord
	for _, artist := range artists {
		if strings.EqualFold(artist.Genre, genre) {
			out = append(out, artist)
		}
	}
	return out
}
