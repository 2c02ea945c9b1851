// Package loader reads artist metric fixtures from disk and turns them into
// analysis records, rejecting files whose shape the scorer cannot use.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ademuri/emergence/internal/analysis"
)

var ErrInvalidFixture = errors.New("invalid fixture format")

type fixtureFile struct {
	Artists *[]fixtureArtist `json:"artists" yaml:"artists"`
}

type fixtureArtist struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	Genre         string          `json:"genre" yaml:"genre"`
	WeeklyMetrics *[]fixtureMetric `json:"weeklyMetrics" yaml:"weeklyMetrics"`
}

// Counters are pointers so an absent field can be told apart from a zero.
type fixtureMetric struct {
	Week         string `json:"week" yaml:"week"`
	Streams      *int64 `json:"streams" yaml:"streams"`
	PlaylistAdds *int64 `json:"playlistAdds" yaml:"playlistAdds"`
	Listeners    *int64 `json:"listeners" yaml:"listeners"`
}

// Load reads the fixture at path. Files ending in .yaml or .yml are parsed as
// YAML, anything else as JSON.
func Load(path string) ([]analysis.ArtistRecord, error) {
	fullPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", path, err)
	}

	content, err := os.ReadFile(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("fixture file not found: %s", fullPath)
	}
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}

	var file fixtureFile
	switch strings.ToLower(filepath.Ext(fullPath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &file)
	default:
		err = json.Unmarshal(content, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}

	return convert(file)
}

// convert validates a decoded fixture and builds analysis records from it.
func convert(file fixtureFile) ([]analysis.ArtistRecord, error) {
	if file.Artists == nil {
		return nil, fmt.Errorf("%w: expected { artists: [...] }", ErrInvalidFixture)
	}

	artists := make([]analysis.ArtistRecord, 0, len(*file.Artists))
	for i, fa := range *file.Artists {
		record, err := fa.toRecord()
		if err != nil {
			return nil, fmt.Errorf("%w: artist %d (%q): %w", ErrInvalidFixture, i, fa.ID, err)
		}
		artists = append(artists, record)
	}
	return artists, nil
}

func (fa fixtureArtist) toRecord() (analysis.ArtistRecord, error) {
	if fa.ID == "" {
		return analysis.ArtistRecord{}, errors.New("missing id")
	}
	if fa.Name == "" {
		return analysis.ArtistRecord{}, errors.New("missing name")
	}

	if fa.WeeklyMetrics == nil {
		return analysis.ArtistRecord{}, errors.New("missing weeklyMetrics")
	}

	record := analysis.ArtistRecord{
		ID:            fa.ID,
		Name:          fa.Name,
		Genre:         fa.Genre,
		WeeklyMetrics: make([]analysis.WeeklyMetric, 0, len(*fa.WeeklyMetrics)),
	}
	for j, fm := range *fa.WeeklyMetrics {
		m, err := fm.toMetric()
		if err != nil {
			return analysis.ArtistRecord{}, fmt.Errorf("weeklyMetrics[%d]: %w", j, err)
		}
		record.WeeklyMetrics = append(record.WeeklyMetrics, m)
	}
	return record, nil
}

func (fm fixtureMetric) toMetric() (analysis.WeeklyMetric, error) {
	week, err := ParseWeek(fm.Week)
	if err != nil {
		return analysis.WeeklyMetric{}, err
	}

	m := analysis.WeeklyMetric{Week: week}
	counters := []struct {
		name  string
		value *int64
		dest  *int64
	}{
		{"streams", fm.Streams, &m.Streams},
		{"playlistAdds", fm.PlaylistAdds, &m.PlaylistAdds},
		{"listeners", fm.Listeners, &m.Listeners},
	}
	for _, c := range counters {
		if c.value == nil {
			return analysis.WeeklyMetric{}, fmt.Errorf("missing %s", c.name)
		}
		if *c.value < 0 {
			return analysis.WeeklyMetric{}, fmt.Errorf("negative %s (%s)", c.name, fm.Week)
		}
		*c.dest = *c.value
	}
	return m, nil
}

// ParseWeek accepts a calendar date (yyyy-mm-dd) or an RFC3339 timestamp and
// returns it in UTC.
func ParseWeek(ws string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", ws)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(time.RFC3339, ws)
	if err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("parsing week %q: %w", ws, err)
}
