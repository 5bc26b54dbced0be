package gamestate

import (
	"fmt"
	"strings"
)

// Path records the action taken at each DecisionNode during one hand.
// Nodes that were not reached hold NoAction.
type Path [NumDecisionNodes]Action

// terminalPaths are the five ways a hand can end, in canonical order.
var terminalPaths = []Path{
	{P1Open: Bet, P2AfterBet: Call},
	{P1Open: Bet, P2AfterBet: Fold},
	{P1Open: Check, P2AfterCheck: Bet, P1Closing: Call},
	{P1Open: Check, P2AfterCheck: Bet, P1Closing: Fold},
	{P1Open: Check, P2AfterCheck: Check},
}

// TerminalPaths returns every complete action path through the game tree,
// always in the same order.
func TerminalPaths() []Path {
	result := make([]Path, len(terminalPaths))
	copy(result, terminalPaths)
	return result
}

// Reached returns true if the given node is visited along this path.
// Actions recorded at unreached nodes are ignored.
func (p Path) Reached(node DecisionNode) bool {
	switch node {
	case P1Open:
		return true
	case P2AfterBet:
		return p[P1Open] == Bet
	case P2AfterCheck:
		return p[P1Open] == Check
	case P1Closing:
		return p[P1Open] == Check && p[P2AfterCheck] == Bet
	default:
		panic(fmt.Errorf("invalid decision node: %d", node))
	}
}

// Next returns the decision node that must be decided next along this
// path, or false if the hand is over.
func (p Path) Next() (DecisionNode, bool) {
	for _, node := range allDecisionNodes {
		if p.Reached(node) && !node.IsValid(p[node]) {
			return node, true
		}
	}

	return 0, false
}

// Apply returns the path extended by taking the given action at the next
// decision node.
func (p Path) Apply(action Action) Path {
	node, ok := p.Next()
	if !ok {
		panic(fmt.Errorf("cannot apply %v to finished path %v", action, p))
	}
	if !node.IsValid(action) {
		panic(fmt.Errorf("invalid action %v at %v", action, node))
	}

	p[node] = action
	return p
}

// IsTerminal returns true if the hand is over.
func (p Path) IsTerminal() bool {
	_, ok := p.Next()
	return !ok
}

// IsShowdown returns true if neither player folded.
func (p Path) IsShowdown() bool {
	for _, node := range allDecisionNodes {
		if p.Reached(node) && p[node] == Fold {
			return false
		}
	}

	return true
}

func (p Path) String() string {
	var parts []string
	for _, node := range allDecisionNodes {
		if p.Reached(node) && p[node] != NoAction {
			parts = append(parts, p[node].String())
		}
	}

	return strings.Join(parts, "/")
}
