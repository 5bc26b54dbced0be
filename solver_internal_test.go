package kuhn5

import (
	"math"
	"testing"

	"github.com/timpalpant/kuhn5/gamestate"
)

func TestNewSolverRejectsOutOfRangeProbabilities(t *testing.T) {
	for _, p := range []float64{1.5, -0.25, math.NaN()} {
		s1 := NewStrategy(gamestate.Player1, 3)
		s2 := NewStrategy(gamestate.Player2, 3)
		s1.set(2, gamestate.P1Open, p)

		_, err := NewSolver(s1, s2, DefaultConfig())
		if !IsInvalidStrategy(err) {
			t.Errorf("p = %v: expected invalid strategy error, got %v", p, err)
		}
	}
}

func TestNewSolverRejectsOpponentProbabilities(t *testing.T) {
	s1 := NewStrategy(gamestate.Player1, 3)
	s2 := NewStrategy(gamestate.Player2, 3)
	s2.set(1, gamestate.P1Open, 0.5)

	if _, err := NewSolver(s1, s2, DefaultConfig()); !IsInvalidStrategy(err) {
		t.Errorf("expected invalid strategy error, got %v", err)
	}
}

func TestSearchOptionsFromConfig(t *testing.T) {
	config := DefaultConfig()
	config.Pinned = []Cell{
		{Card: 1, Node: gamestate.P1Closing},
		{Card: 3, Node: gamestate.P2AfterBet},
	}

	opts := config.searchOptions()
	if opts.StepSize != DefaultStepSize || opts.Tolerance != DefaultTolerance {
		t.Errorf("unexpected search options: %+v", opts)
	}
	if len(opts.Pinned) != 2 || !opts.Pinned[config.Pinned[0]] || !opts.Pinned[config.Pinned[1]] {
		t.Errorf("expected both cells pinned, got %v", opts.Pinned)
	}
}
