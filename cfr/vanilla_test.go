package cfr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/kuhn5"
	"github.com/timpalpant/kuhn5/cards"
	"github.com/timpalpant/kuhn5/gamestate"
)

func TestNewGameRejectsSmallDecks(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		_, err := NewGame(n)
		assert.True(t, kuhn5.IsInvalidConfig(err), "n = %d: %v", n, err)
	}
}

func TestGameTree(t *testing.T) {
	n := 3
	root, err := NewGame(n)
	require.NoError(t, err)
	require.Equal(t, ChanceNodeType, root.Type())
	require.Equal(t, cards.NumDeals(n), root.NumChildren())

	var nTerminal int
	var totalProbability float64
	for i := 0; i < root.NumChildren(); i++ {
		p := root.GetChildProbability(i)
		totalProbability += p
		child := root.GetChild(i)
		assert.Equal(t, cards.Deals(n)[i], child.Deal())
		walk(t, child, func(terminal *GameNode) {
			nTerminal++
			u1, u2 := terminal.Utility(0), terminal.Utility(1)
			assert.Equal(t, -u1, u2)
			assert.Equal(t, gamestate.Payoff(terminal.Deal(), terminal.Path()), u1)
		})
	}

	assert.Equal(t, len(gamestate.TerminalPaths())*cards.NumDeals(n), nTerminal)
	assert.InDelta(t, 1.0, totalProbability, 1e-12)
}

func walk(t *testing.T, node *GameNode, visit func(*GameNode)) {
	switch node.Type() {
	case TerminalNodeType:
		assert.Equal(t, 0, node.NumChildren())
		visit(node)
	case PlayerNodeType:
		require.Equal(t, 2, node.NumChildren())
		next, _ := node.Path().Next()
		infoSet := node.InfoSet(node.Player())
		assert.Equal(t, next, infoSet.Node)
		assert.Equal(t, int(next.Owner()), node.Player())
		if next.Owner() == gamestate.Player1 {
			assert.Equal(t, node.Deal().P1, infoSet.Card)
		} else {
			assert.Equal(t, node.Deal().P2, infoSet.Card)
		}

		assert.Equal(t, next.Aggressive(), node.Action(0))
		assert.Equal(t, next.Passive(), node.Action(1))
		for i := 0; i < node.NumChildren(); i++ {
			walk(t, node.GetChild(i), visit)
		}
	default:
		t.Fatalf("unexpected %v node below the root", node.Type())
	}
}

func TestChildProbabilityOnlyAtChanceNodes(t *testing.T) {
	root, err := NewGame(3)
	require.NoError(t, err)

	child := root.GetChild(0)
	assert.Equal(t, PlayerNodeType, child.Type())
	assert.Panics(t, func() { child.GetChildProbability(0) })
	assert.Panics(t, func() { child.Utility(0) })
	assert.Panics(t, func() { root.Player() })
}

func TestVanillaThreeCards(t *testing.T) {
	root, err := NewGame(3)
	require.NoError(t, err)

	solver := NewVanilla()
	s1, s2 := solver.Train(root, 2000)
	assert.Equal(t, 2000, solver.Iterations())
	require.NoError(t, s1.Validate())
	require.NoError(t, s2.Validate())

	ev1, _ := kuhn5.Evaluate(s1, s2)
	assert.InDelta(t, -1.0/18, ev1, 0.005)

	e1, e2 := kuhn5.Exploitability(s1, s2)
	assert.True(t, e1 < 0.01, "player 1 exploitability %v", e1)
	assert.True(t, e2 < 0.01, "player 2 exploitability %v", e2)
}

func TestVanillaFiveCards(t *testing.T) {
	root, err := NewGame(cards.DefaultDeckSize)
	require.NoError(t, err)

	s1, s2 := NewVanilla().Train(root, 1000)
	ev1, _ := kuhn5.Evaluate(s1, s2)
	assert.InDelta(t, -0.0667, ev1, 0.002)

	e1, e2 := kuhn5.Exploitability(s1, s2)
	assert.True(t, e1 < 0.01, "player 1 exploitability %v", e1)
	assert.True(t, e2 < 0.01, "player 2 exploitability %v", e2)
}

func TestAverageStrategyBeforeTraining(t *testing.T) {
	s := NewVanilla().AverageStrategy(gamestate.Player2, 4)
	for _, cell := range s.Cells() {
		assert.Equal(t, 0.5, s.Get(cell), "%v", cell)
	}
}

func BenchmarkVanillaRun(b *testing.B) {
	root, err := NewGame(cards.DefaultDeckSize)
	require.NoError(b, err)
	solver := NewVanilla()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		solver.Run(root)
	}
}
