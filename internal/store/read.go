package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/emergence/internal/analysis"
)

// GetArtists returns every stored artist in import order, each with its
// weekly metrics in the order they were imported.
func (s *Store) GetArtists() ([]analysis.ArtistRecord, error) {
	rows, err := s.db.Query("SELECT id, name, genre FROM Artist ORDER BY ordinal ASC")
	if err != nil {
		return nil, fmt.Errorf("querying artists: %w", err)
	}
	defer rows.Close()

	var artists []analysis.ArtistRecord
	index := make(map[string]int)
	for rows.Next() {
		var a analysis.ArtistRecord
		if err := rows.Scan(&a.ID, &a.Name, &a.Genre); err != nil {
			return nil, err
		}
		index[a.ID] = len(artists)
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	metricRows, err := s.db.Query(`
		SELECT artist, week, streams, playlist_adds, listeners
		FROM WeeklyMetric
		ORDER BY artist, ordinal ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying weekly metrics: %w", err)
	}
	defer metricRows.Close()

	for metricRows.Next() {
		var artistID, weekStr string
		var m analysis.WeeklyMetric
		if err := metricRows.Scan(&artistID, &weekStr, &m.Streams, &m.PlaylistAdds, &m.Listeners); err != nil {
			return nil, err
		}
		i, ok := index[artistID]
		if !ok {
			continue
		}
		m.Week, err = parseDate(weekStr)
		if err != nil {
			return nil, fmt.Errorf("artist %q: %w", artistID, err)
		}
		artists[i].WeeklyMetrics = append(artists[i].WeeklyMetrics, m)
	}
	return artists, metricRows.Err()
}

// CountArtists returns the number of stored artists.
func (s *Store) CountArtists() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM Artist").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting artists: %w", err)
	}
	return count, nil
}

// ImportedAt returns when the stored snapshot was imported, or the zero time
// if the database is empty.
func (s *Store) ImportedAt() (time.Time, error) {
	row := s.db.QueryRow("SELECT imported_at FROM Artist ORDER BY imported_at DESC LIMIT 1")
	var t sql.NullTime
	err := row.Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("getting import time: %w", err)
	}
	return t.Time, nil
}

func parseDate(dateStr string) (time.Time, error) {
	// Handles RFC3339, as written by formatWeek, and plain dates
	t, err := time.Parse(time.RFC3339, dateStr)
	if err == nil {
		return t.UTC(), nil
	}

	t, err = time.Parse("2006-01-02", dateStr)
	if err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("parsing date %q: %w", dateStr, err)
}
