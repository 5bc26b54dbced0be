package kuhn5

import (
	"expvar"

	"github.com/golang/glog"

	"github.com/timpalpant/kuhn5/cards"
	"github.com/timpalpant/kuhn5/gamestate"
)

var (
	candidatesTried = expvar.NewInt("kuhn5/search/candidates_tried")
	searchMoves  = expvar.NewInt("kuhn5/search/moves")
)

// boundSlack absorbs floating-point drift when a step lands just outside
// [0, 1], e.g. after many additions of 0.01.
const boundSlack = 1e-9

// SearchOptions control one local-search pass.
type SearchOptions struct {
	// StepSize is how far a probability is perturbed in each direction.
	StepSize float64
	// Tolerance is the expected-value gain a perturbation must exceed
	// before it replaces the current probability.
	Tolerance float64
	// Pinned cells are never changed.
	Pinned map[Cell]bool
}

// DefaultSearchOptions returns the options used by DefaultConfig.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		StepSize:  DefaultStepSize,
		Tolerance: DefaultTolerance,
	}
}

// Pass is one local-search sweep over some of a player's decision nodes.
type Pass struct {
	Player gamestate.Player
	Nodes  []gamestate.DecisionNode
}

// Schedule returns the passes performed by every solver iteration, in order:
// Player 1's opening decision, then both of Player 2's decisions,
// then Player 1's closing decision. The order determines which local
// optimum is reached, so it is fixed.
func Schedule() []Pass {
	return []Pass{
		{Player: gamestate.Player1, Nodes: []gamestate.DecisionNode{gamestate.P1Open}},
		{Player: gamestate.Player2, Nodes: []gamestate.DecisionNode{gamestate.P2AfterCheck, gamestate.P2AfterBet}},
		{Player: gamestate.Player1, Nodes: []gamestate.DecisionNode{gamestate.P1Closing}},
	}
}

// Improve performs one pass of coordinate-wise hill climbing on target's
// strategy against a fixed opponent. For each card (ascending) and each of
// the given nodes (in order) that target's player owns, the probability p
// is compared against p+step and p-step, holding everything else fixed,
// and the value giving target's player the highest expected value is kept.
// The unchanged value wins ties. Neither input is modified.
func Improve(target, opponent *Strategy, nodes []gamestate.DecisionNode, opts SearchOptions) *Strategy {
	result := target.Clone()
	s1, s2 := arrange(result, opponent)
	mustBePair(s1, s2)

	moves := 0
	for _, card := range cards.Deck(result.NumCards()) {
		for _, node := range nodes {
			cell := Cell{card, node}
			if node.Owner() != result.Player() || opts.Pinned[cell] {
				continue
			}

			if improveCell(result, s1, s2, cell, opts) {
				moves++
			}
		}
	}

	glog.V(3).Infof("%v pass over %v moved %d cells", result.Player(), nodes, moves)
	return result
}

// improveCell tries both steps on one cell of target, which must be one of s1 or s2,
// and leaves it at the best of the three candidate values.
func improveCell(target, s1, s2 *Strategy, cell Cell, opts SearchOptions) bool {
	player := target.Player()
	current := target.Get(cell)
	currentEV := EvaluateFor(player, s1, s2)

	best, bestEV := current, currentEV
	for _, step := range [...]float64{opts.StepSize, -opts.StepSize} {
		candidate, ok := snapToUnitInterval(current + step)
		if !ok || candidate == current {
			continue
		}

		candidatesTried.Add(1)
		target.set(cell.Card, cell.Node, candidate)
		ev := EvaluateFor(player, s1, s2)
		if ev > currentEV+opts.Tolerance && ev > bestEV {
			best, bestEV = candidate, ev
		}
	}

	target.set(cell.Card, cell.Node, best)
	if best != current {
		searchMoves.Add(1)
		return true
	}

	return false
}

// snapToUnitInterval discards probabilities outside [0, 1], except those
// within boundSlack of a bound, which are moved onto it.
func snapToUnitInterval(p float64) (float64, bool) {
	switch {
	case p < -boundSlack || p > 1+boundSlack:
		return 0, false
	case p < 0:
		return 0, true
	case p > 1:
		return 1, true
	default:
		return p, true
	}
}

// Round runs every pass of the Schedule once and returns the updated
// strategies. Each pass sees the result of the previous one.
func Round(s1, s2 *Strategy, opts SearchOptions) (*Strategy, *Strategy) {
	for _, pass := range Schedule() {
		if pass.Player == gamestate.Player1 {
			s1 = Improve(s1, s2, pass.Nodes, opts)
		} else {
			s2 = Improve(s2, s1, pass.Nodes, opts)
		}
	}

	return s1, s2
}
