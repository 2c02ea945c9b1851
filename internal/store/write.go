package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/emergence/internal/analysis"
)

// ImportArtists replaces the stored snapshot with artists, transactionally.
// Artists missing from the new snapshot are removed, so the database always
// holds exactly the last imported dataset.
func (s *Store) ImportArtists(artists []analysis.ArtistRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clearSnapshot(tx); err != nil {
		return err
	}

	now := time.Now().UTC()
	for i, artist := range artists {
		if err := insertArtist(tx, artist, i+1, now); err != nil {
			return err
		}
		if err := insertMetrics(tx, artist); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func clearSnapshot(tx *sql.Tx) error {
	if _, err := tx.Exec("DELETE FROM WeeklyMetric"); err != nil {
		return fmt.Errorf("clearing weekly metrics: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM Artist"); err != nil {
		return fmt.Errorf("clearing artists: %w", err)
	}
	return nil
}

func insertArtist(tx *sql.Tx, artist analysis.ArtistRecord, ordinal int, importedAt time.Time) error {
	_, err := tx.Exec("INSERT INTO Artist (id, name, genre, ordinal, imported_at) VALUES (?, ?, ?, ?, ?)",
		artist.ID, artist.Name, artist.Genre, ordinal, importedAt)
	if err != nil {
		return fmt.Errorf("inserting artist %q: %w", artist.ID, err)
	}
	return nil
}

func insertMetrics(tx *sql.Tx, artist analysis.ArtistRecord) error {
	for i, m := range artist.WeeklyMetrics {
		_, err := tx.Exec(`
			INSERT INTO WeeklyMetric (artist, ordinal, week, streams, playlist_adds, listeners)
			VALUES (?, ?, ?, ?, ?, ?)`,
			artist.ID, i, formatWeek(m.Week), m.Streams, m.PlaylistAdds, m.Listeners)
		if err != nil {
			return fmt.Errorf("inserting metric %d for %q: %w", i, artist.ID, err)
		}
	}
	return nil
}

func formatWeek(week time.Time) string {
	return week.UTC().Format(time.RFC3339)
}
