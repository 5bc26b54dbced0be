package kuhn5

import (
	"expvar"
	"fmt"

	"github.com/timpalpant/kuhn5/cards"
	"github.com/timpalpant/kuhn5/gamestate"
)

var (
	evaluations = expvar.NewInt("kuhn5/evaluations")
)

var terminalPaths = gamestate.TerminalPaths()

// Evaluate returns the expected value of each player when Player 1 plays s1
// and Player 2 plays s2, averaged over every deal and every terminal path.
// Accumulation order is fixed, so the result is reproducible bit-for-bit.
// The game is zero-sum: ev2 is always exactly -ev1.
func Evaluate(s1, s2 *Strategy) (ev1, ev2 float64) {
	mustBePair(s1, s2)
	evaluations.Add(1)

	n := s1.NumCards()
	pDeal := cards.DealProbability(n)
	for _, deal := range cards.Deals(n) {
		for _, path := range terminalPaths {
			p := pathProbability(s1, s2, deal, path)
			if p == 0 {
				continue
			}

			ev1 += pDeal * p * gamestate.Payoff(deal, path)
		}
	}

	return ev1, -ev1
}

// EvaluateFor returns only the given player's expected value.
func EvaluateFor(player gamestate.Player, s1, s2 *Strategy) float64 {
	ev1, ev2 := Evaluate(s1, s2)
	if player == gamestate.Player2 {
		return ev2
	}

	return ev1
}

// pathProbability is the chance that both players take the actions along
// the given path, given the dealt cards. Only nodes reached on the path
// contribute.
func pathProbability(s1, s2 *Strategy, deal cards.Deal, path gamestate.Path) float64 {
	p := 1.0
	for _, node := range gamestate.AllDecisionNodes() {
		if !path.Reached(node) {
			continue
		}

		if node.Owner() == gamestate.Player1 {
			p *= s1.Probability(deal.P1, node, path[node])
		} else {
			p *= s2.Probability(deal.P2, node, path[node])
		}
	}

	return p
}

// mustBePair panics unless s1 and s2 are strategies for Player 1 and
// Player 2 over the same deck. Solve validates its inputs, so this only
// fires on programming errors.
func mustBePair(s1, s2 *Strategy) {
	if s1.Player() != gamestate.Player1 || s2.Player() != gamestate.Player2 {
		panic(fmt.Errorf("expected strategies for (Player1, Player2), got (%v, %v)",
			s1.Player(), s2.Player()))
	}

	if s1.NumCards() != s2.NumCards() {
		panic(fmt.Errorf("strategies are for different decks: %d and %d cards",
			s1.NumCards(), s2.NumCards()))
	}
}

// arrange orders a strategy and its opponent as (Player 1, Player 2).
func arrange(s, opponent *Strategy) (s1, s2 *Strategy) {
	if s.Player() == gamestate.Player1 {
		return s, opponent
	}

	return opponent, s
}
