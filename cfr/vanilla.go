package cfr

import (
	"github.com/golang/glog"

	"github.com/timpalpant/kuhn5"
	"github.com/timpalpant/kuhn5/gamestate"
)

// Vanilla is full-tree counterfactual regret minimization. Every iteration
// walks the whole game tree once; the average strategy over all iterations
// converges to a Nash equilibrium.
type Vanilla struct {
	regrets     map[kuhn5.Cell]*[2]float64
	strategySum map[kuhn5.Cell]*[2]float64
	iter        int
}

// NewVanilla returns a solver with no accumulated regret.
func NewVanilla() *Vanilla {
	return &Vanilla{
		regrets:     make(map[kuhn5.Cell]*[2]float64),
		strategySum: make(map[kuhn5.Cell]*[2]float64),
	}
}

// Iterations returns the number of completed iterations.
func (c *Vanilla) Iterations() int {
	return c.iter
}

// Run performs one iteration of CFR on the given game tree and returns
// Player 1's expected value under the current strategies.
func (c *Vanilla) Run(root *GameNode) float64 {
	c.iter++
	return c.runHelper(root, [gamestate.NumPlayers]float64{1, 1})
}

// Train runs nIter iterations and returns the average strategy pair.
func (c *Vanilla) Train(root *GameNode, nIter int) (*kuhn5.Strategy, *kuhn5.Strategy) {
	logEvery := nIter / 10
	if logEvery == 0 {
		logEvery = 1
	}

	for i := 1; i <= nIter; i++ {
		ev := c.Run(root)
		if i%logEvery == 0 {
			glog.V(1).Infof("CFR iteration %d: current EV = %.6f", i, ev)
		}
	}

	return c.AverageStrategy(gamestate.Player1, root.NumCards()),
		c.AverageStrategy(gamestate.Player2, root.NumCards())
}

// runHelper returns Player 1's expected value below node. reach holds the
// probability of each player's own actions leading to node, including chance.
func (c *Vanilla) runHelper(node *GameNode, reach [gamestate.NumPlayers]float64) float64 {
	defer node.Close()

	switch node.Type() {
	case TerminalNodeType:
		return node.Utility(int(gamestate.Player1))
	case ChanceNodeType:
		return c.handleChanceNode(node, reach)
	default:
		return c.handlePlayerNode(node, reach)
	}
}

func (c *Vanilla) handleChanceNode(node *GameNode, reach [gamestate.NumPlayers]float64) float64 {
	var ev float64
	for i := 0; i < node.NumChildren(); i++ {
		p := node.GetChildProbability(i)
		childReach := reach
		for player := range childReach {
			childReach[player] *= p
		}

		ev += p * c.runHelper(node.GetChild(i), childReach)
	}

	return ev
}

func (c *Vanilla) handlePlayerNode(node *GameNode, reach [gamestate.NumPlayers]float64) float64 {
	player := node.Player()
	infoSet := node.InfoSet(player)
	policy := c.currentPolicy(infoSet)

	var values [2]float64
	var ev float64
	for i := range values {
		childReach := reach
		childReach[player] *= policy[i]
		values[i] = c.runHelper(node.GetChild(i), childReach)
		ev += policy[i] * values[i]
	}

	// Values are Player 1's; Player 2 regrets the negation.
	sign := 1.0
	if gamestate.Player(player) == gamestate.Player2 {
		sign = -1.0
	}

	opponentReach := reach[gamestate.Player(player).Opponent()]
	regrets := c.entry(c.regrets, infoSet)
	strategySum := c.entry(c.strategySum, infoSet)
	for i := range values {
		regrets[i] += opponentReach * sign * (values[i] - ev)
		strategySum[i] += reach[player] * policy[i]
	}

	return ev
}

// currentPolicy is regret matching: each action is played in proportion to
// its positive cumulative regret, or uniformly if there is none.
func (c *Vanilla) currentPolicy(infoSet kuhn5.Cell) [2]float64 {
	regrets := c.entry(c.regrets, infoSet)
	var policy [2]float64
	total := 0.0
	for i, r := range regrets {
		if r > 0 {
			policy[i] = r
			total += r
		}
	}

	if total == 0 {
		return [2]float64{0.5, 0.5}
	}

	for i := range policy {
		policy[i] /= total
	}

	return policy
}

// AverageStrategy returns the given player's average strategy over all
// iterations. Information sets never reached keep an even split.
func (c *Vanilla) AverageStrategy(player gamestate.Player, n int) *kuhn5.Strategy {
	result := kuhn5.NewStrategy(player, n)
	for _, cell := range result.Cells() {
		p := 0.5
		if sum, ok := c.strategySum[cell]; ok && sum[0]+sum[1] > 0 {
			p = sum[0] / (sum[0] + sum[1])
		}

		if err := result.SetAggressive(cell.Card, cell.Node, p); err != nil {
			panic(err)
		}
	}

	return result
}

func (c *Vanilla) entry(table map[kuhn5.Cell]*[2]float64, infoSet kuhn5.Cell) *[2]float64 {
	v, ok := table[infoSet]
	if !ok {
		v = &[2]float64{}
		table[infoSet] = v
	}

	return v
}
