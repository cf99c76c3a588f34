package game

import "threes/meta"

// Outcome is one possible value of the next spawned tile.
type Outcome struct {
	Value       int
	Probability float64
}

var fallbackOutcomes = []Outcome{
	{Value: 1, Probability: 0.33},
	{Value: 2, Probability: 0.33},
	{Value: 3, Probability: 0.34},
}

// TileProbabilities returns the distribution of the next tile's value.
//
// A known, non-bonus preview is certain. Otherwise the normal cards 1-3 are
// weighted by what is left in the deck, over a total of DeckSize when the deck
// is empty; an empty deck therefore yields the fixed fallback split. Only when
// no preview is known and the max tile has reached the bonus threshold does a
// bonus tile take (1/21)*(threes/total) of the mass, split evenly over the
// bonus candidates. A bonus preview gets the plain deck distribution.
func TileProbabilities(counts DeckCounts, preview *Preview, maxTile int) []Outcome {
	if preview != nil && !preview.IsBonus {
		return []Outcome{{Value: preview.Value, Probability: 1.0}}
	}

	total := float64(counts.Total())
	if total == 0 {
		total = DeckSize
	}

	var outcomes []Outcome
	bonus := 0.0
	if preview == nil && BonusEligible(maxTile) {
		bonus = (1.0 / meta.BONUS_ODDS) * (float64(counts.Threes) / total)
		if bonus > 0 {
			candidates := BonusCandidates(maxTile)
			share := bonus / float64(len(candidates))
			for _, v := range candidates {
				outcomes = append(outcomes, Outcome{Value: v, Probability: share})
			}
		}
	}

	normal := 1.0 - bonus
	for _, v := range []int{1, 2, 3} {
		p := float64(counts.Of(v)) / total * normal
		if p > 0 {
			outcomes = append(outcomes, Outcome{Value: v, Probability: p})
		}
	}

	if len(outcomes) == 0 {
		return append([]Outcome(nil), fallbackOutcomes...)
	}
	return outcomes
}

// Forecast holds the spawn distributions a search uses for one decision: Next
// for the tile placed right after the root move, Later for any spawn after that,
// when the preview has been consumed.
type Forecast struct {
	Next  []Outcome
	Later []Outcome
}

func NewForecast(counts DeckCounts, preview Preview, maxTile int) Forecast {
	return Forecast{
		Next:  TileProbabilities(counts, &preview, maxTile),
		Later: TileProbabilities(counts, nil, maxTile),
	}
}
