package analysis

import "sort"

// Weights sets how much each growth signal contributes to the emergence
// score. Values are used as given; they are not normalized.
type Weights struct {
	Stream   float64
	Playlist float64
	Listener float64
}

func DefaultWeights() Weights {
	return Weights{
		Stream:   0.4,
		Playlist: 0.3,
		Listener: 0.3,
	}
}

// Score returns the weighted sum of the signals.
func (w Weights) Score(s SignalSet) float64 {
	return s.StreamGrowthRate*w.Stream +
		s.PlaylistGrowthRate*w.Playlist +
		s.ListenerGrowthRate*w.Listener
}

type Scorer struct {
	Weights Weights
}

func NewScorer(weights Weights) Scorer {
	return Scorer{Weights: weights}
}

// Evaluate scores every artist that has enough data and ranks them by
// emergence score, highest first. Equal scores keep their input order.
// Artists that cannot be scored are reported in Result.Excluded, in input
// order.
func (s Scorer) Evaluate(artists []ArtistRecord) Result {
	var result Result
	for _, artist := range artists {
		signals, ok := CalculateSignals(artist)
		if !ok {
			result.Excluded = append(result.Excluded, Exclusion{
				Artist: artist,
				Reason: InsufficientData,
			})
			continue
		}
		result.Ranked = append(result.Ranked, ScoredArtist{
			Artist:         artist,
			Signals:        signals,
			EmergenceScore: s.Weights.Score(signals),
		})
	}

	sort.SliceStable(result.Ranked, func(i, j int) bool {
		return result.Ranked[i].EmergenceScore > result.Ranked[j].EmergenceScore
	})
	return result
}

// Rank is Evaluate without the exclusion details.
func (s Scorer) Rank(artists []ArtistRecord) []ScoredArtist {
	return s.Evaluate(artists).Ranked
}

// ScoreArtists ranks artists using DefaultWeights.
func ScoreArtists(artists []ArtistRecord) []ScoredArtist {
	return NewScorer(DefaultWeights()).Rank(artists)
}
