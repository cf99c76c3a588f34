package game

import (
	"threes/meta"

	"golang.org/x/exp/rand"
)

// deckCards is the multiset every fresh deck starts from.
var deckCards = []int{
	1, 1, 1, 1,
	2, 2, 2, 2,
	3, 3, 3, 3,
}

// DeckSize is the number of cards in a fresh deck.
const DeckSize = 12

// DeckCounts tallies the cards left in a deck by value.
type DeckCounts struct {
	Ones   int
	Twos   int
	Threes int
}

func (c DeckCounts) Total() int {
	return c.Ones + c.Twos + c.Threes
}

// Of returns the count for a normal card value, 0 for anything else.
func (c DeckCounts) Of(value int) int {
	switch value {
	case 1:
		return c.Ones
	case 2:
		return c.Twos
	case 3:
		return c.Threes
	default:
		return 0
	}
}

// FreshDeckCounts returns the counts of a full deck.
func FreshDeckCounts() DeckCounts {
	return countCards(deckCards)
}

// Preview is the tile that will be placed after the next successful move.
type Preview struct {
	Value   int
	IsBonus bool
}

// Deck is the draw pile for new tiles. It is refilled and reshuffled whenever
// it runs out, so a draw never fails.
type Deck struct {
	cards []int
	rng   *rand.Rand
}

func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset refills the deck with the fresh multiset and shuffles it.
func (d *Deck) Reset() {
	d.cards = append(d.cards[:0], deckCards...)
	d.Shuffle()
}

// Shuffle applies a uniform Fisher-Yates permutation to the remaining cards.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the last card, refilling first if the deck is empty.
func (d *Deck) Draw() int {
	if len(d.cards) == 0 {
		d.Reset()
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card
}

func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) Counts() DeckCounts {
	return countCards(d.cards)
}

// DrawPreview draws the next tile. A drawn 3 becomes a bonus tile with odds
// 1 in BONUS_ODDS once the board's max tile has reached BONUS_THRESHOLD.
func (d *Deck) DrawPreview(maxTile int) Preview {
	card := d.Draw()
	if card == 3 && BonusEligible(maxTile) && d.rng.Float64() < 1.0/meta.BONUS_ODDS {
		candidates := BonusCandidates(maxTile)
		return Preview{Value: candidates[d.rng.Intn(len(candidates))], IsBonus: true}
	}
	return Preview{Value: card}
}

// BonusEligible reports whether bonus tiles can appear with maxTile on the board.
func BonusEligible(maxTile int) bool {
	return maxTile >= meta.BONUS_THRESHOLD
}

// BonusCandidates lists the bonus values 6, 12, 24, ... up to maxTile/8. It
// always contains at least 6.
func BonusCandidates(maxTile int) []int {
	limit := maxTile / 8
	candidates := []int{}
	for v := 6; v <= limit; v *= 2 {
		candidates = append(candidates, v)
	}
	if len(candidates) == 0 {
		candidates = append(candidates, 6)
	}
	return candidates
}

func countCards(cards []int) DeckCounts {
	var counts DeckCounts
	for _, card := range cards {
		switch card {
		case 1:
			counts.Ones++
		case 2:
			counts.Twos++
		case 3:
			counts.Threes++
		}
	}
	return counts
}
