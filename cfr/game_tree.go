// Package cfr solves Kuhn poker in its extensive form with counterfactual
// regret minimization. It provides a reference value and strategy pair that
// are independent of the local search.
package cfr

import (
	"expvar"
	"fmt"

	"github.com/pkg/errors"

	"github.com/timpalpant/kuhn5"
	"github.com/timpalpant/kuhn5/cards"
	"github.com/timpalpant/kuhn5/gamestate"
)

var (
	nodesVisited         = expvar.NewInt("kuhn5/cfr/nodes_visited")
	terminalNodesVisited = expvar.NewInt("kuhn5/cfr/nodes_visited/terminal")
	playerNodesVisited   = expvar.NewInt("kuhn5/cfr/nodes_visited/player")
	chanceNodesVisited   = expvar.NewInt("kuhn5/cfr/nodes_visited/chance")
)

// NodeType is the kind of a node in the game tree.
type NodeType uint8

const (
	ChanceNodeType NodeType = iota
	TerminalNodeType
	PlayerNodeType
)

var nodeTypeStr = [...]string{
	"Chance",
	"Terminal",
	"Player",
}

func (t NodeType) String() string {
	return nodeTypeStr[t]
}

// GameNode is a state of play in the extensive-form game tree: the root
// deals the cards, each player node is one DecisionNode for a known deal,
// and each terminal node is a complete Path.
type GameNode struct {
	numCards int
	deals    []cards.Deal
	dealt    bool
	deal     cards.Deal
	path     gamestate.Path
}

// NewGame returns the root (chance) node of the n-card game.
func NewGame(n int) (*GameNode, error) {
	if n < cards.MinDeckSize {
		return nil, errors.Wrapf(kuhn5.ErrInvalidConfig, "need at least %d cards, got %d", cards.MinDeckSize, n)
	}

	return &GameNode{numCards: n, deals: cards.Deals(n)}, nil
}

// NumCards returns the size of the deck being played.
func (gn *GameNode) NumCards() int {
	return gn.numCards
}

// Type returns the kind of node.
func (gn *GameNode) Type() NodeType {
	switch {
	case !gn.dealt:
		return ChanceNodeType
	case gn.path.IsTerminal():
		return TerminalNodeType
	default:
		return PlayerNodeType
	}
}

// Player returns the index of the player to act (0 for Player 1).
func (gn *GameNode) Player() int {
	return int(gn.decisionNode().Owner())
}

// Deal returns the cards dealt, once the root has been passed.
func (gn *GameNode) Deal() cards.Deal {
	return gn.deal
}

// Path returns the actions taken so far.
func (gn *GameNode) Path() gamestate.Path {
	return gn.path
}

// NumChildren returns the number of deals at the root, 2 at player nodes
// and 0 at terminal nodes.
func (gn *GameNode) NumChildren() int {
	switch gn.Type() {
	case ChanceNodeType:
		return len(gn.deals)
	case PlayerNodeType:
		return 2
	default:
		return 0
	}
}

// Action returns the action leading to the i'th child of a player node.
// Child 0 is the aggressive action and child 1 the passive one.
func (gn *GameNode) Action(i int) gamestate.Action {
	node := gn.decisionNode()
	if i == 0 {
		return node.Aggressive()
	}

	return node.Passive()
}

// GetChild returns the i'th child of this node.
func (gn *GameNode) GetChild(i int) *GameNode {
	child := *gn
	if gn.Type() == ChanceNodeType {
		child.dealt = true
		child.deal = gn.deals[i]
		return &child
	}

	child.path = gn.path.Apply(gn.Action(i))
	return &child
}

// GetChildProbability returns the chance of the i'th deal at the root.
func (gn *GameNode) GetChildProbability(i int) float64 {
	if gn.Type() != ChanceNodeType {
		panic("cannot get the probability of a non-chance node")
	}

	return 1.0 / float64(len(gn.deals))
}

// InfoSet returns what the given player knows at this node: their own card
// and the decision being made.
func (gn *GameNode) InfoSet(player int) kuhn5.Cell {
	card := gn.deal.P1
	if gamestate.Player(player) == gamestate.Player2 {
		card = gn.deal.P2
	}

	return kuhn5.Cell{Card: card, Node: gn.decisionNode()}
}

// Utility returns the given player's payoff at a terminal node.
func (gn *GameNode) Utility(player int) float64 {
	if gn.Type() != TerminalNodeType {
		panic("cannot get the utility of a non-terminal node")
	}

	return gamestate.PayoffTo(gamestate.Player(player), gn.deal, gn.path)
}

// Close records that traversal of this node has finished.
func (gn *GameNode) Close() {
	nodesVisited.Add(1)
	switch gn.Type() {
	case TerminalNodeType:
		terminalNodesVisited.Add(1)
	case PlayerNodeType:
		playerNodesVisited.Add(1)
	case ChanceNodeType:
		chanceNodesVisited.Add(1)
	}
}

func (gn *GameNode) String() string {
	switch gn.Type() {
	case ChanceNodeType:
		return fmt.Sprintf("deal of %d cards", gn.NumCards())
	case TerminalNodeType:
		return fmt.Sprintf("%v: %v", gn.deal, gn.path)
	default:
		return fmt.Sprintf("%v: %v at %v", gn.deal, gamestate.Player(gn.Player()), gn.decisionNode())
	}
}

func (gn *GameNode) decisionNode() gamestate.DecisionNode {
	node, ok := gn.path.Next()
	if !gn.dealt || !ok {
		panic(fmt.Errorf("no decision at %v node", gn.Type()))
	}

	return node
}
