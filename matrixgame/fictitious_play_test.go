package matrixgame

import (
	"math"
	"math/rand"
	"testing"
)

func TestFictitiousPlay_RockPaperScissors(t *testing.T) {
	winRateMatrix := [][]float64{
		[]float64{0, 1, -1}, // Player 0 plays rock.
		[]float64{-1, 0, 1}, // Player 0 plays scissors.
		[]float64{1, -1, 0}, // Player 0 plays paper.
	}

	rng := rand.New(rand.NewSource(1234))
	p0, p1 := FictitiousPlay(winRateMatrix, 10000, 0, rng)
	t.Logf("Player 0 Nash equilibrium policy: %v", p0)
	t.Logf("Player 1 Nash equilibrium policy: %v", p1)

	for i := range p0 {
		if math.Abs(p0[i]-1.0/3) > 0.1 {
			t.Errorf("player 0 weight %d: expected ~1/3, got %v", i, p0[i])
		}
		if math.Abs(p1[i]-1.0/3) > 0.1 {
			t.Errorf("player 1 weight %d: expected ~1/3, got %v", i, p1[i])
		}
	}

	if v := Value(winRateMatrix, p0, p1); math.Abs(v) > 0.1 {
		t.Errorf("expected value ~0, got %v", v)
	}
}

func TestFictitiousPlay_Deterministic(t *testing.T) {
	payoffs := [][]float64{
		{3, -1},
		{-2, 1},
	}

	a0, a1 := FictitiousPlay(payoffs, 1000, 0.1, rand.New(rand.NewSource(7)))
	b0, b1 := FictitiousPlay(payoffs, 1000, 0.1, rand.New(rand.NewSource(7)))
	for i := range a0 {
		if a0[i] != b0[i] || a1[i] != b1[i] {
			t.Fatalf("same seed gave different policies: %v %v vs %v %v", a0, a1, b0, b1)
		}
	}
}

func TestFictitiousPlay_DominantStrategy(t *testing.T) {
	// Row 0 dominates row 1 and column 1 dominates column 0 for player 1.
	payoffs := [][]float64{
		{2, 1},
		{0, -1},
	}

	p0, p1 := FictitiousPlay(payoffs, 100, 0, rand.New(rand.NewSource(1)))
	if p0[0] < 0.95 {
		t.Errorf("expected player 0 to play the dominant row, got %v", p0)
	}
	if p1[1] < 0.95 {
		t.Errorf("expected player 1 to play the dominant column, got %v", p1)
	}
}

func TestGap(t *testing.T) {
	matchingPennies := [][]float64{
		{1, -1},
		{-1, 1},
	}

	if gap := Gap(matchingPennies, []float64{0.5, 0.5}, []float64{0.5, 0.5}); math.Abs(gap) > 1e-12 {
		t.Errorf("expected zero gap at equilibrium, got %v", gap)
	}

	if gap := Gap(matchingPennies, []float64{1, 0}, []float64{0.5, 0.5}); math.Abs(gap-1) > 1e-12 {
		t.Errorf("expected gap 1, got %v", gap)
	}
}
