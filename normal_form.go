package kuhn5

import (
	"github.com/pkg/errors"

	"github.com/timpalpant/kuhn5/cards"
	"github.com/timpalpant/kuhn5/gamestate"
)

// MaxNormalFormCards is the largest deck NewNormalForm accepts. Each player
// has 4^n pure strategies, so the payoff matrix grows as 16^n.
const MaxNormalFormCards = 5

// NormalForm is the matrix representation of Kuhn poker: every pure
// strategy of each player and Player 1's expected value for each pairing.
// It provides an independent route to the game value for small decks.
type NormalForm struct {
	NumCards int
	Pure1    []*Strategy
	Pure2    []*Strategy
	// Payoffs[i][j] is Player 1's expected value when playing Pure1[i]
	// against Pure2[j].
	Payoffs [][]float64
}

// NewNormalForm enumerates the pure strategies of an n-card game and
// evaluates every pairing.
func NewNormalForm(n int) (*NormalForm, error) {
	if n < cards.MinDeckSize || n > MaxNormalFormCards {
		return nil, errors.Wrapf(ErrInvalidConfig, "normal form needs between %d and %d cards, got %d",
			cards.MinDeckSize, MaxNormalFormCards, n)
	}

	nf := &NormalForm{
		NumCards: n,
		Pure1:    PureStrategies(gamestate.Player1, n),
		Pure2:    PureStrategies(gamestate.Player2, n),
	}

	nf.Payoffs = make([][]float64, len(nf.Pure1))
	for i, s1 := range nf.Pure1 {
		nf.Payoffs[i] = make([]float64, len(nf.Pure2))
		for j, s2 := range nf.Pure2 {
			nf.Payoffs[i][j], _ = Evaluate(s1, s2)
		}
	}

	return nf, nil
}

// PureStrategies enumerates every deterministic strategy of the given
// player for an n-card deck. Bit (card-1)*k + i of the index selects the
// aggressive action at the player's i-th node for that card.
func PureStrategies(player gamestate.Player, n int) []*Strategy {
	nodes := gamestate.NodesOwnedBy(player)
	k := len(nodes)
	total := 1 << uint(k*n)
	result := make([]*Strategy, total)
	for idx := range result {
		s := NewStrategy(player, n)
		for _, card := range cards.Deck(n) {
			for i, node := range nodes {
				bit := uint(card.Index()*k + i)
				if idx&(1<<bit) != 0 {
					s.set(card, node, 1)
				}
			}
		}
		result[idx] = s
	}

	return result
}

// Value returns Player 1's expected value when each player randomizes over
// their pure strategies with the given weights.
func (nf *NormalForm) Value(mixture1, mixture2 []float64) float64 {
	total := 0.0
	for i, w1 := range mixture1 {
		if w1 == 0 {
			continue
		}

		for j, w2 := range mixture2 {
			total += w1 * w2 * nf.Payoffs[i][j]
		}
	}

	return total
}

// Behavior converts a mixture over the player's pure strategies into the
// behavior strategy that plays identically against any opponent.
//
// Player 2's decisions lie on disjoint branches, so each is the total weight
// of pure strategies taking the aggressive action there. Player 1's closing
// decision is only reached after checking, so it is conditioned on the
// pure strategies that check with the card; if none do, the unconditional
// weight is used.
func (nf *NormalForm) Behavior(player gamestate.Player, mixture []float64) *Strategy {
	pure := nf.Pure1
	if player == gamestate.Player2 {
		pure = nf.Pure2
	}

	result := NewStrategy(player, nf.NumCards)
	for _, card := range cards.Deck(nf.NumCards) {
		for _, node := range gamestate.NodesOwnedBy(player) {
			var aggressive, reached, aggressiveWhenReached float64
			for i, w := range mixture {
				s := pure[i]
				isAggressive := s.Aggressive(card, node) == 1
				if isAggressive {
					aggressive += w
				}

				if node != gamestate.P1Closing || s.Aggressive(card, gamestate.P1Open) == 0 {
					reached += w
					if isAggressive {
						aggressiveWhenReached += w
					}
				}
			}

			p := aggressive
			if reached > 0 {
				p = aggressiveWhenReached / reached
			}
			result.set(card, node, clampProbability(p))
		}
	}

	return result
}

func clampProbability(p float64) float64 {
	if p < 0 {
		return 0
	} else if p > 1 {
		return 1
	}

	return p
}
