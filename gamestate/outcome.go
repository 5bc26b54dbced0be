package gamestate

import (
	"github.com/timpalpant/kuhn5/cards"
)

const (
	// Ante is contributed by each player before the cards are dealt.
	Ante = 1.0
	// BetSize is the amount of a bet or a call.
	BetSize = 1.0
)

// Payoff returns the net amount won by Player 1 when the given deal is
// played out along the given path. Player 2 wins the negation.
// The path must be terminal; actions at unreached nodes are ignored.
func Payoff(deal cards.Deal, path Path) float64 {
	if path[P1Open] == Bet {
		if path[P2AfterBet] == Fold {
			return Ante
		}

		return showdown(deal, Ante+BetSize)
	}

	if path[P2AfterCheck] != Bet {
		return showdown(deal, Ante)
	}

	if path[P1Closing] == Fold {
		return -Ante
	}

	return showdown(deal, Ante+BetSize)
}

// PayoffTo returns the payoff of the given player.
func PayoffTo(player Player, deal cards.Deal, path Path) float64 {
	if player == Player2 {
		return -Payoff(deal, path)
	}

	return Payoff(deal, path)
}

// showdown awards each player's stake to the holder of the higher card.
func showdown(deal cards.Deal, stake float64) float64 {
	if deal.P1.Beats(deal.P2) {
		return stake
	}

	return -stake
}
