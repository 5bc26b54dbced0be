package kuhn5_test

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/kuhn5"
	"github.com/timpalpant/kuhn5/cards"
	"github.com/timpalpant/kuhn5/gamestate"
	"github.com/timpalpant/kuhn5/starts"
)

func searchOptions(step float64) kuhn5.SearchOptions {
	opts := kuhn5.DefaultSearchOptions()
	opts.StepSize = step
	return opts
}

func TestScheduleOrder(t *testing.T) {
	expected := []kuhn5.Pass{
		{Player: gamestate.Player1, Nodes: []gamestate.DecisionNode{gamestate.P1Open}},
		{Player: gamestate.Player2, Nodes: []gamestate.DecisionNode{gamestate.P2AfterCheck, gamestate.P2AfterBet}},
		{Player: gamestate.Player1, Nodes: []gamestate.DecisionNode{gamestate.P1Closing}},
	}

	if schedule := kuhn5.Schedule(); !reflect.DeepEqual(schedule, expected) {
		t.Errorf("expected schedule %v, got %v", expected, schedule)
	}
}

func TestImproveMovesTowardsBetterResponse(t *testing.T) {
	// Against an opponent who always folds and never bets, betting wins the
	// ante with every card. With the highest card checking wins it too, so
	// that probability must stay put.
	n := cards.DefaultDeckSize
	s1, _, err := starts.Uniform(n)
	require.NoError(t, err)
	s2 := pure(t, gamestate.Player2, n)

	improved := kuhn5.Improve(s1, s2, []gamestate.DecisionNode{gamestate.P1Open}, searchOptions(0.1))
	for _, card := range cards.Deck(n - 1) {
		assert.InDelta(t, 0.6, improved.Aggressive(card, gamestate.P1Open), 1e-12, "card %v", card)
	}
	assert.Equal(t, 0.5, improved.Aggressive(cards.Card(n), gamestate.P1Open))

	// Closing decisions were not in scope.
	for _, card := range cards.Deck(n) {
		assert.Equal(t, 0.5, improved.Aggressive(card, gamestate.P1Closing))
	}

	before, _ := kuhn5.Evaluate(s1, s2)
	after, _ := kuhn5.Evaluate(improved, s2)
	assert.Greater(t, after, before)
}

func TestImproveDoesNotModifyInputs(t *testing.T) {
	s1, s2 := starts.Heuristic()
	c1, c2 := s1.Clone(), s2.Clone()

	kuhn5.Improve(s1, s2, []gamestate.DecisionNode{gamestate.P1Open, gamestate.P1Closing}, searchOptions(0.05))
	kuhn5.Improve(s2, s1, []gamestate.DecisionNode{gamestate.P2AfterCheck, gamestate.P2AfterBet}, searchOptions(0.05))
	assert.True(t, s1.Equal(c1))
	assert.True(t, s2.Equal(c2))
}

func TestImproveDiscardsOutOfRangeSteps(t *testing.T) {
	// Betting is strictly better with every card but the highest, but a
	// step from 0.95 would leave [0, 1], so the probability stays.
	n := 3
	s1 := kuhn5.NewStrategy(gamestate.Player1, n)
	for _, card := range cards.Deck(n) {
		require.NoError(t, s1.SetAggressive(card, gamestate.P1Open, 0.95))
	}
	s2 := pure(t, gamestate.Player2, n)

	improved := kuhn5.Improve(s1, s2, []gamestate.DecisionNode{gamestate.P1Open}, searchOptions(0.1))
	for _, card := range cards.Deck(n) {
		assert.Equal(t, 0.95, improved.Aggressive(card, gamestate.P1Open), "card %v", card)
	}

	// A step that lands on the bound is taken.
	improved = kuhn5.Improve(s1, s2, []gamestate.DecisionNode{gamestate.P1Open}, searchOptions(0.05))
	for _, card := range cards.Deck(n - 1) {
		assert.Equal(t, 1.0, improved.Aggressive(card, gamestate.P1Open), "card %v", card)
	}
}

func TestImproveRespectsPinnedCells(t *testing.T) {
	n := 3
	s1, _, err := starts.Uniform(n)
	require.NoError(t, err)
	s2 := pure(t, gamestate.Player2, n)

	opts := searchOptions(0.1)
	opts.Pinned = map[kuhn5.Cell]bool{{Card: 1, Node: gamestate.P1Open}: true}
	improved := kuhn5.Improve(s1, s2, []gamestate.DecisionNode{gamestate.P1Open}, opts)
	assert.Equal(t, 0.5, improved.Aggressive(1, gamestate.P1Open))
	assert.InDelta(t, 0.6, improved.Aggressive(2, gamestate.P1Open), 1e-12)
}

func TestImproveIgnoresOpponentNodes(t *testing.T) {
	s1, s2 := starts.Heuristic()
	improved := kuhn5.Improve(s1, s2, []gamestate.DecisionNode{gamestate.P2AfterBet, gamestate.P2AfterCheck}, searchOptions(0.1))
	assert.True(t, improved.Equal(s1))
}

func TestImprovePreservesSimplex(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		s1, s2, err := starts.Random(4, rng)
		require.NoError(t, err)

		r1, r2 := kuhn5.Round(s1, s2, searchOptions(0.3))
		for _, s := range []*kuhn5.Strategy{r1, r2} {
			require.NoError(t, s.Validate())
			for _, cell := range s.Cells() {
				sum := s.Aggressive(cell.Card, cell.Node) + s.Passive(cell.Card, cell.Node)
				if math.Abs(sum-1) > 1e-9 {
					t.Errorf("%v %v: probabilities sum to %v", s.Player(), cell, sum)
				}
			}
		}

		if d := r1.MaxAbsDiff(s1); d > 0.3+1e-12 {
			t.Errorf("Player1 moved by %v, more than one step", d)
		}
		if d := r2.MaxAbsDiff(s2); d > 0.3+1e-12 {
			t.Errorf("Player2 moved by %v, more than one step", d)
		}
	}
}

func TestRoundFollowsSchedule(t *testing.T) {
	s1, s2 := starts.Heuristic()
	opts := searchOptions(0.01)

	r1, r2 := kuhn5.Round(s1, s2, opts)

	e1 := kuhn5.Improve(s1, s2, []gamestate.DecisionNode{gamestate.P1Open}, opts)
	e2 := kuhn5.Improve(s2, e1, []gamestate.DecisionNode{gamestate.P2AfterCheck, gamestate.P2AfterBet}, opts)
	e1 = kuhn5.Improve(e1, e2, []gamestate.DecisionNode{gamestate.P1Closing}, opts)
	assert.True(t, r1.Equal(e1))
	assert.True(t, r2.Equal(e2))
}

func TestClassicalEquilibriumIsFixedPoint(t *testing.T) {
	for _, alpha := range []float64{0, 1.0 / 6, 1.0 / 3} {
		s1, s2, err := starts.Classical(alpha)
		require.NoError(t, err)

		r1, r2 := kuhn5.Round(s1, s2, searchOptions(0.01))
		before, _ := kuhn5.Evaluate(s1, s2)
		after, _ := kuhn5.Evaluate(r1, r2)
		assert.InDelta(t, before, after, 1e-6, "alpha = %v", alpha)
		assert.True(t, r1.Equal(s1), "alpha = %v: Player1 moved to %v", alpha, r1)
		assert.True(t, r2.Equal(s2), "alpha = %v: Player2 moved to %v", alpha, r2)
	}
}

func BenchmarkRound(b *testing.B) {
	s1, s2 := starts.Heuristic()
	opts := kuhn5.DefaultSearchOptions()
	for i := 0; i < b.N; i++ {
		s1, s2 = kuhn5.Round(s1, s2, opts)
	}
}
