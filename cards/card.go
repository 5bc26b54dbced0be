package cards

import (
	"strconv"
)

// Card represents one card of the Kuhn poker deck. Cards carry no suit;
// a Card is its rank, in [1, n] for a deck of n cards.
type Card uint8

// DefaultDeckSize is the number of cards in 5-card Kuhn poker.
const DefaultDeckSize = 5

// MinDeckSize is the smallest deck that can deal two distinct cards.
const MinDeckSize = 2

// Beats returns true if c wins a showdown against other.
func (c Card) Beats(other Card) bool {
	return c > other
}

// Index returns the zero-based position of c within a deck.
func (c Card) Index() int {
	return int(c) - 1
}

// String implements Stringer.
func (c Card) String() string {
	return strconv.Itoa(int(c))
}

// Deck returns the cards of an n-card deck in ascending rank.
func Deck(n int) []Card {
	if n <= 0 {
		return nil
	}

	result := make([]Card, n)
	for i := range result {
		result[i] = Card(i + 1)
	}

	return result
}
