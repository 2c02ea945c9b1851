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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/emergence/internal/analysis"
	"github.com/ademuri/emergence/internal/loader"
	"github.com/ademuri/emergence/internal/store"
)

type RankConfig struct {
	FixturePath  string
	DbPath       string
	Genre        string
	NumToReturn  int
	ShowExcluded bool
	Weights      analysis.Weights

	// Snapshots on or after Cutoff are ignored. Zero means no cutoff.
	Cutoff time.Time
}

var rankNumber int
var rankCmd = &cobra.Command{
	Use:   "rank [as-of (optional)]",
	Short: "Ranks artists by emergence score",
	Long: `Ranks artists by a weighted combination of stream, playlist-add and listener growth.
An optional as-of date ('yyyy', 'yyyy-mm', 'yyyy-mm-dd', or relative like '4w') ranks
artists using only the snapshots from before the end of that period.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cutoff, err := parseCutoffFromArgs(args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		config := RankConfig{
			FixturePath:  viper.GetString("fixture"),
			DbPath:       viper.GetString("database"),
			Genre:        viper.GetString("genre"),
			NumToReturn:  rankNumber,
			ShowExcluded: viper.GetBool("show-excluded"),
			Weights:      weightsFromConfig(),
			Cutoff:       cutoff,
		}

		err = printRanking(os.Stdout, config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().IntVarP(&rankNumber, "number", "n", 0, "number of results to return (0 for all)")

	var genre string
	rankCmd.Flags().StringVar(&genre, "genre", "", "Only rank artists in this genre (case-insensitive)")
	viper.BindPFlag("genre", rankCmd.Flags().Lookup("genre"))

	var showExcluded bool
	rankCmd.Flags().BoolVar(&showExcluded, "show-excluded", false, "List artists that could not be scored")
	viper.BindPFlag("show-excluded", rankCmd.Flags().Lookup("show-excluded"))

	defaults := analysis.DefaultWeights()
	var streamWeight, playlistWeight, listenerWeight float64
	rankCmd.Flags().Float64Var(&streamWeight, "stream-weight", defaults.Stream, "Weight of stream growth")
	viper.BindPFlag("weights.stream", rankCmd.Flags().Lookup("stream-weight"))
	rankCmd.Flags().Float64Var(&playlistWeight, "playlist-weight", defaults.Playlist, "Weight of playlist-add growth")
	viper.BindPFlag("weights.playlist", rankCmd.Flags().Lookup("playlist-weight"))
	rankCmd.Flags().Float64Var(&listenerWeight, "listener-weight", defaults.Listener, "Weight of listener growth")
	viper.BindPFlag("weights.listener", rankCmd.Flags().Lookup("listener-weight"))
}

func printRanking(out io.Writer, config RankConfig) error {
	artists, err := loadArtists(config.FixturePath, config.DbPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Loaded %d artists\n\n", len(artists))

	w := config.Weights
	if sum := w.Stream + w.Playlist + w.Listener; math.Abs(sum-1) > 1e-9 {
		fmt.Fprintf(os.Stderr, "Weights sum to %.2f; scores are not normalized\n", sum)
	}

	artists = analysis.FilterGenre(artists, config.Genre)
	artists = analysis.AsOf(artists, config.Cutoff)

	result := analysis.NewScorer(config.Weights).Evaluate(artists)
	fmt.Fprint(out, newRankingAnalysis(result, len(artists), config.NumToReturn, config.ShowExcluded))
	return nil
}

// loadArtists reads from the snapshot database when one is configured, and
// from the fixture file otherwise.
func loadArtists(fixture, dbPath string) ([]analysis.ArtistRecord, error) {
	if dbPath == "" {
		artists, err := loader.Load(fixture)
		if err != nil {
			return nil, fmt.Errorf("loading fixture: %w", err)
		}
		return artists, nil
	}

	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("Database doesn't exist - run import first.")
	}

	db, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	artists, err := db.GetArtists()
	if err != nil {
		return nil, fmt.Errorf("reading artists: %w", err)
	}
	return artists, nil
}
