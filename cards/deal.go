package cards

import (
	"fmt"
)

// Deal is the private card held by each player. A valid Deal never gives
// both players the same card.
type Deal struct {
	P1 Card
	P2 Card
}

func (d Deal) String() string {
	return fmt.Sprintf("(%v, %v)", d.P1, d.P2)
}

// Deals enumerates every ordered Deal from an n-card deck: Player 1's card
// ascending, then Player 2's card ascending. Decks with fewer than
// MinDeckSize cards have no deals.
func Deals(n int) []Deal {
	if n < MinDeckSize {
		return nil
	}

	result := make([]Deal, 0, NumDeals(n))
	for _, c1 := range Deck(n) {
		for _, c2 := range Deck(n) {
			if c1 == c2 {
				continue
			}

			result = append(result, Deal{P1: c1, P2: c2})
		}
	}

	return result
}

// NumDeals is the size of the deal space for an n-card deck.
func NumDeals(n int) int {
	if n < MinDeckSize {
		return 0
	}

	return n * (n - 1)
}

// DealProbability is the chance of any single Deal. Every deal is equally likely.
func DealProbability(n int) float64 {
	if n < MinDeckSize {
		return 0
	}

	return 1.0 / float64(NumDeals(n))
}
