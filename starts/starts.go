// Package starts supplies initial strategy pairs for the solver.
//
// The solver only requires valid strategies; how they were produced does
// not affect its correctness, only which equilibrium it finds and how quickly.
package starts

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/timpalpant/kuhn5"
	"github.com/timpalpant/kuhn5/cards"
	"github.com/timpalpant/kuhn5/gamestate"
)

// Heuristic returns the hand-tuned 5-card starting point: always bet and
// call with the best card, never call with the worst, and mixed guesses in
// between.
func Heuristic() (*kuhn5.Strategy, *kuhn5.Strategy) {
	return mustFromColumns(
		map[gamestate.DecisionNode][]float64{
			gamestate.P1Open:    {0, 0.69, 0.51, 1, 1},
			gamestate.P1Closing: {0, 0.09, 0.49, 0.95, 1},
		},
		map[gamestate.DecisionNode][]float64{
			gamestate.P2AfterBet:   {0, 0.21, 0.49, 0.89, 1},
			gamestate.P2AfterCheck: {0.81, 0.21, 0.61, 0.91, 1},
		},
	)
}

// Thesis returns the 5-card starting point that was observed to converge
// well in earlier experiments.
func Thesis() (*kuhn5.Strategy, *kuhn5.Strategy) {
	return mustFromColumns(
		map[gamestate.DecisionNode][]float64{
			gamestate.P1Open:    {0.336, 1, 1, 0.561, 0.543},
			gamestate.P1Closing: {0, 0.129, 0.866, 1, 1},
		},
		map[gamestate.DecisionNode][]float64{
			gamestate.P2AfterBet:   {0, 0.126, 0.64, 1, 1},
			gamestate.P2AfterCheck: {0.244, 1, 1, 0, 0},
		},
	)
}

// Classical returns the textbook equilibrium of 3-card Kuhn poker, with
// Player 1 bluffing the lowest card with probability alpha in [0, 1/3].
// Player 1's expected value is -1/18 for every alpha.
func Classical(alpha float64) (*kuhn5.Strategy, *kuhn5.Strategy, error) {
	if alpha < 0 || alpha > 1.0/3 {
		return nil, nil, errors.Wrapf(kuhn5.ErrInvalidStrategy, "alpha must be in [0, 1/3], got %v", alpha)
	}

	return fromColumns(3,
		map[gamestate.DecisionNode][]float64{
			gamestate.P1Open:    {alpha, 0, 3 * alpha},
			gamestate.P1Closing: {0, alpha + 1.0/3, 1},
		},
		map[gamestate.DecisionNode][]float64{
			gamestate.P2AfterBet:   {0, 1.0 / 3, 1},
			gamestate.P2AfterCheck: {1.0 / 3, 0, 1},
		},
	)
}

// Linear returns a start for any deck in which the aggressive action is
// taken with probability (rank-1)/(n-1) at every node.
func Linear(n int) (*kuhn5.Strategy, *kuhn5.Strategy, error) {
	if n < cards.MinDeckSize {
		return nil, nil, errors.Wrapf(kuhn5.ErrInvalidConfig, "need at least %d cards, got %d", cards.MinDeckSize, n)
	}

	return build(n, func(card cards.Card, _ gamestate.DecisionNode) float64 {
		return float64(card.Index()) / float64(n-1)
	})
}

// Uniform returns a start for any deck in which every action is taken with
// probability 1/2.
func Uniform(n int) (*kuhn5.Strategy, *kuhn5.Strategy, error) {
	if n < cards.MinDeckSize {
		return nil, nil, errors.Wrapf(kuhn5.ErrInvalidConfig, "need at least %d cards, got %d", cards.MinDeckSize, n)
	}

	return build(n, func(cards.Card, gamestate.DecisionNode) float64 {
		return 0.5
	})
}

// Random returns a start drawn uniformly from the strategy space using rng,
// so the same seed always gives the same strategies.
func Random(n int, rng *rand.Rand) (*kuhn5.Strategy, *kuhn5.Strategy, error) {
	if n < cards.MinDeckSize {
		return nil, nil, errors.Wrapf(kuhn5.ErrInvalidConfig, "need at least %d cards, got %d", cards.MinDeckSize, n)
	}

	return build(n, func(cards.Card, gamestate.DecisionNode) float64 {
		return rng.Float64()
	})
}

// DominatedCells returns the cells whose optimal choice never depends on the
// opponent: Player 1 folds the lowest card and calls with the highest when
// facing a bet, Player 2 folds the lowest card to a bet and always bets and
// calls with the highest. Pinning them keeps the search from wasting steps.
func DominatedCells(n int) []kuhn5.Cell {
	lowest, highest := cards.Card(1), cards.Card(n)
	return []kuhn5.Cell{
		{Card: lowest, Node: gamestate.P1Closing},
		{Card: highest, Node: gamestate.P1Closing},
		{Card: lowest, Node: gamestate.P2AfterBet},
		{Card: highest, Node: gamestate.P2AfterBet},
		{Card: highest, Node: gamestate.P2AfterCheck},
	}
}

// build fills both players' strategies in canonical order, so a stateful
// source such as an rng is always consumed in the same sequence.
func build(n int, prob func(cards.Card, gamestate.DecisionNode) float64) (*kuhn5.Strategy, *kuhn5.Strategy, error) {
	var result [gamestate.NumPlayers]*kuhn5.Strategy
	for _, player := range []gamestate.Player{gamestate.Player1, gamestate.Player2} {
		s := kuhn5.NewStrategy(player, n)
		for _, cell := range s.Cells() {
			if err := s.SetAggressive(cell.Card, cell.Node, prob(cell.Card, cell.Node)); err != nil {
				return nil, nil, err
			}
		}
		result[player] = s
	}

	return result[gamestate.Player1], result[gamestate.Player2], nil
}

// fromColumns builds strategies from one column of aggressive probabilities
// per decision node, indexed by card.
func fromColumns(n int, p1, p2 map[gamestate.DecisionNode][]float64) (*kuhn5.Strategy, *kuhn5.Strategy, error) {
	return build(n, func(card cards.Card, node gamestate.DecisionNode) float64 {
		column := p1[node]
		if node.Owner() == gamestate.Player2 {
			column = p2[node]
		}

		return column[card.Index()]
	})
}

func mustFromColumns(p1, p2 map[gamestate.DecisionNode][]float64) (*kuhn5.Strategy, *kuhn5.Strategy) {
	s1, s2, err := fromColumns(cards.DefaultDeckSize, p1, p2)
	if err != nil {
		panic(err)
	}

	return s1, s2
}
