/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ademuri/emergence/internal/analysis"
)

const testFixture = `{
  "artists": [
    {
      "id": "a",
      "name": "Nova Lane",
      "genre": "indie pop",
      "weeklyMetrics": [
        {"week": "2024-01-01", "streams": 100, "playlistAdds": 10, "listeners": 5},
        {"week": "2024-01-08", "streams": 150, "playlistAdds": 10, "listeners": 5}
      ]
    },
    {
      "id": "b",
      "name": "Single Week",
      "genre": "ambient",
      "weeklyMetrics": [
        {"week": "2024-01-08", "streams": 10, "playlistAdds": 1, "listeners": 1}
      ]
    }
  ]
}`

func writeTestFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artists.json")
	if err := os.WriteFile(path, []byte(testFixture), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestPrintRankingFromFixture(t *testing.T) {
	out := new(bytes.Buffer)
	err := printRanking(out, RankConfig{
		FixturePath:  writeTestFixture(t),
		Weights:      analysis.DefaultWeights(),
		ShowExcluded: true,
	})
	if err != nil {
		t.Fatalf("printRanking error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Loaded 2 artists",
		"Nova Lane",
		"20.00",
		"50.0%",
		"Scored 1 of 2 artists (1 excluded: insufficient data)",
		"excluded Single Week (b): insufficient data",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintRankingAsOf(t *testing.T) {
	out := new(bytes.Buffer)
	err := printRanking(out, RankConfig{
		FixturePath: writeTestFixture(t),
		Weights:     analysis.DefaultWeights(),
		Cutoff:      time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("printRanking error: %v", err)
	}

	if !strings.Contains(out.String(), "Scored 0 of 2 artists (2 excluded") {
		t.Errorf("expected every artist to be excluded before 2024-01-08:\n%s", out.String())
	}
}

func TestPrintRankingGenre(t *testing.T) {
	out := new(bytes.Buffer)
	err := printRanking(out, RankConfig{
		FixturePath: writeTestFixture(t),
		Weights:     analysis.DefaultWeights(),
		Genre:       "Ambient",
	})
	if err != nil {
		t.Fatalf("printRanking error: %v", err)
	}

	got := out.String()
	if strings.Contains(got, "Nova Lane") {
		t.Errorf("genre filter should drop Nova Lane:\n%s", got)
	}
	if !strings.Contains(got, "Scored 0 of 1 artists") {
		t.Errorf("expected summary over the filtered artist:\n%s", got)
	}
}

func TestPrintRankingMissingFixture(t *testing.T) {
	err := printRanking(new(bytes.Buffer), RankConfig{
		FixturePath: filepath.Join(t.TempDir(), "nope.json"),
		Weights:     analysis.DefaultWeights(),
	})
	if err == nil {
		t.Fatalf("printRanking should have errored with no fixture")
	}
	if !strings.Contains(err.Error(), "fixture file not found") {
		t.Fatalf("printRanking should have said the fixture is missing: %v", err)
	}
}

func TestPrintRankingDatabaseDoesntExist(t *testing.T) {
	err := printRanking(new(bytes.Buffer), RankConfig{
		DbPath:  filepath.Join(t.TempDir(), "emergence.db"),
		Weights: analysis.DefaultWeights(),
	})
	if err == nil {
		t.Fatalf("printRanking should have errored with no database")
	}
	if !strings.Contains(err.Error(), "doesn't exist") {
		t.Fatalf("printRanking should have said the db doesn't exist: %v", err)
	}
}

func TestImportThenRankFromDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "emergence.db")
	fixture := writeTestFixture(t)

	out := new(bytes.Buffer)
	if err := importFixture(out, fixture, dbPath); err != nil {
		t.Fatalf("importFixture error: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 2 artists") {
		t.Errorf("unexpected import output: %s", out.String())
	}

	// Importing again leaves the snapshot unchanged.
	out.Reset()
	if err := importFixture(out, fixture, dbPath); err != nil {
		t.Fatalf("importFixture (repeat) error: %v", err)
	}
	if !strings.Contains(out.String(), "(snapshot of 2 artists,") {
		t.Errorf("unexpected repeat import output: %s", out.String())
	}

	out.Reset()
	err := printRanking(out, RankConfig{
		DbPath:  dbPath,
		Weights: analysis.DefaultWeights(),
	})
	if err != nil {
		t.Fatalf("printRanking error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Nova Lane") || !strings.Contains(got, "Scored 1 of 2 artists") {
		t.Errorf("unexpected ranking from database:\n%s", got)
	}
}

func TestRankingAnalysisLimit(t *testing.T) {
	result := analysis.Result{
		Ranked: []analysis.ScoredArtist{
			{Artist: analysis.ArtistRecord{Name: "First"}, EmergenceScore: 3},
			{Artist: analysis.ArtistRecord{Name: "Second"}, EmergenceScore: 2},
			{Artist: analysis.ArtistRecord{Name: "Third"}, EmergenceScore: 1},
		},
	}

	a := newRankingAnalysis(result, 3, 2, false)
	if len(a.results) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d rows", len(a.results))
	}
	if a.results[2][0] != "2" || a.results[2][1] != "Second" {
		t.Errorf("unexpected second row: %v", a.results[2])
	}
}
