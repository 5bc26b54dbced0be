package gamestate

// Action is a choice a player makes at a DecisionNode.
type Action uint8

const (
	// NoAction marks a decision node that was not reached.
	NoAction Action = iota
	Bet
	Check
	Call
	Fold
)

var actionStr = [...]string{
	"NoAction",
	"Bet",
	"Check",
	"Call",
	"Fold",
}

func (a Action) String() string {
	return actionStr[a]
}

// DecisionNode identifies one of the four points in the game tree
// at which a player must choose between an aggressive and a passive action.
type DecisionNode uint8

const (
	// P1Open is the root: Player 1 bets or checks.
	P1Open DecisionNode = iota
	// P2AfterBet is reached when Player 1 bet: Player 2 calls or folds.
	P2AfterBet
	// P2AfterCheck is reached when Player 1 checked: Player 2 bets or checks.
	P2AfterCheck
	// P1Closing is reached when Player 1 checked and Player 2 bet:
	// Player 1 calls or folds.
	P1Closing
)

// NumDecisionNodes is the number of decision points in the game tree.
const NumDecisionNodes = 4

var allDecisionNodes = [NumDecisionNodes]DecisionNode{P1Open, P2AfterBet, P2AfterCheck, P1Closing}

// AllDecisionNodes returns every decision node in canonical order. The
// result is a copy.
func AllDecisionNodes() [NumDecisionNodes]DecisionNode {
	return allDecisionNodes
}

var decisionNodeStr = [...]string{
	"P1-open",
	"P2-after-bet",
	"P2-after-check",
	"P1-closing",
}

func (n DecisionNode) String() string {
	return decisionNodeStr[n]
}

// Owner returns the player who acts at this node.
func (n DecisionNode) Owner() Player {
	switch n {
	case P2AfterBet, P2AfterCheck:
		return Player2
	default:
		return Player1
	}
}

// Aggressive returns the action whose probability a strategy stores
// for this node (Bet or Call).
func (n DecisionNode) Aggressive() Action {
	switch n {
	case P1Open, P2AfterCheck:
		return Bet
	default:
		return Call
	}
}

// Passive returns the complement of the aggressive action (Check or Fold).
func (n DecisionNode) Passive() Action {
	switch n {
	case P1Open, P2AfterCheck:
		return Check
	default:
		return Fold
	}
}

// IsValid returns true if a is one of the two choices available at this node.
func (n DecisionNode) IsValid(a Action) bool {
	return a == n.Aggressive() || a == n.Passive()
}

// NodesOwnedBy returns the decision nodes at which the given player acts,
// in canonical order.
func NodesOwnedBy(p Player) []DecisionNode {
	var result []DecisionNode
	for _, node := range allDecisionNodes {
		if node.Owner() == p {
			result = append(result, node)
		}
	}

	return result
}
