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
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ademuri/emergence/internal/analysis"
)

type Analysis struct {
	results [][]string
	summary string
}

var rankingHeader = []string{
	"Rank", "Artist", "Genre", "Emergence Score", "Stream Growth", "Playlist Growth", "Listener Growth",
}

// newRankingAnalysis lays out a scoring result as table rows. numToReturn
// limits the ranked rows, 0 means all of them.
func newRankingAnalysis(result analysis.Result, total int, numToReturn int, showExcluded bool) Analysis {
	a := Analysis{results: [][]string{rankingHeader}}
	for i, scored := range result.Ranked {
		if numToReturn > 0 && i >= numToReturn {
			break
		}
		a.results = append(a.results, []string{
			strconv.Itoa(i + 1),
			scored.Artist.Name,
			scored.Artist.Genre,
			fmt.Sprintf("%.2f", scored.EmergenceScore),
			formatGrowth(scored.Signals.StreamGrowthRate),
			formatGrowth(scored.Signals.PlaylistGrowthRate),
			formatGrowth(scored.Signals.ListenerGrowthRate),
		})
	}

	a.summary = fmt.Sprintf("Scored %d of %d artists (%d excluded: %s)",
		len(result.Ranked), total, len(result.Excluded), analysis.InsufficientData)
	if showExcluded {
		for _, e := range result.Excluded {
			a.summary += fmt.Sprintf("\n  excluded %s (%s): %s", e.Artist.Name, e.Artist.ID, e.Reason)
		}
	}
	return a
}

func formatGrowth(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}
