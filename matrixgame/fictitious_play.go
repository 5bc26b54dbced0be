// Package matrixgame solves two-player zero-sum games given in normal form.
package matrixgame

import (
	"math"
	"math/rand"

	"github.com/golang/glog"
)

// FictitiousPlay approximates a Nash equilibrium of the zero-sum matrix game
// in which payoffs[i][j] is won by player 0 (rows) from player 1 (columns).
// In each iteration both players best-respond to the empirical mixture of
// the other's past plays; with probability mixingLambda a player instead
// plays uniformly at random. The empirical mixtures are returned.
// All randomness, including tie-breaking, comes from rng.
func FictitiousPlay(payoffs [][]float64, nIter int, mixingLambda float64, rng *rand.Rand) ([]float64, []float64) {
	nRows, nCols := len(payoffs), len(payoffs[0])
	p0PlayCounts := make([]int, nRows)
	p1PlayCounts := make([]int, nCols)
	// Cumulative utility of each pure strategy against the opponent's plays so far.
	p0Utilities := make([]float64, nRows)
	p1Utilities := make([]float64, nCols)
	logEvery := nIter / 10
	if logEvery == 0 {
		logEvery = 1
	}

	for i := 1; i <= nIter; i++ {
		var p0Selected int
		if rng.Float64() < mixingLambda {
			p0Selected = rng.Intn(nRows)
		} else {
			_, p0Selected = argMax(p0Utilities, rng)
		}

		var p1Selected int
		if rng.Float64() < mixingLambda {
			p1Selected = rng.Intn(nCols)
		} else {
			_, p1Selected = argMax(p1Utilities, rng)
		}

		p0PlayCounts[p0Selected]++
		p1PlayCounts[p1Selected]++
		for row := range p0Utilities {
			p0Utilities[row] += payoffs[row][p1Selected]
		}
		for col := range p1Utilities {
			p1Utilities[col] -= payoffs[p0Selected][col]
		}

		if i%logEvery == 0 {
			p0, p1 := normalize(p0PlayCounts), normalize(p1PlayCounts)
			glog.V(1).Infof("After %d iterations, value = %.6f, gap = %.6f",
				i, Value(payoffs, p0, p1), Gap(payoffs, p0, p1))
		}
	}

	return normalize(p0PlayCounts), normalize(p1PlayCounts)
}

// Value returns player 0's expected payoff when both players use the given
// mixed strategies.
func Value(payoffs [][]float64, p0, p1 []float64) float64 {
	total := 0.0
	for i, w0 := range p0 {
		for j, w1 := range p1 {
			total += w0 * w1 * payoffs[i][j]
		}
	}

	return total
}

// Gap returns the sum of both players' best-response gains against the
// given mixed strategies. It is zero exactly at a Nash equilibrium.
func Gap(payoffs [][]float64, p0, p1 []float64) float64 {
	value := Value(payoffs, p0, p1)

	rowValues := make([]float64, len(payoffs))
	for i := range payoffs {
		for j, w1 := range p1 {
			rowValues[i] += w1 * payoffs[i][j]
		}
	}

	colValues := make([]float64, len(payoffs[0]))
	for i, w0 := range p0 {
		for j := range colValues {
			colValues[j] -= w0 * payoffs[i][j]
		}
	}

	bestRow, _ := argMaxFirst(rowValues)
	bestCol, _ := argMaxFirst(colValues)
	return (bestRow - value) + (bestCol + value)
}

func normalize(counts []int) []float64 {
	total := 0
	for _, v := range counts {
		total += v
	}

	result := make([]float64, len(counts))
	if total == 0 {
		return result
	}

	for i, v := range counts {
		result[i] = float64(v) / float64(total)
	}
	return result
}

// argMax returns the maximum value and its index, breaking ties at random.
func argMax(vs []float64, rng *rand.Rand) (float64, int) {
	best := -math.MaxFloat64
	bestIdx := 0
	nTied := 0
	for i, v := range vs {
		if v > best {
			best = v
			bestIdx = i
			nTied = 1
		} else if v == best {
			// Reservoir sampling keeps each tied index equally likely.
			nTied++
			if rng.Intn(nTied) == 0 {
				bestIdx = i
			}
		}
	}

	return best, bestIdx
}

func argMaxFirst(vs []float64) (float64, int) {
	best := -math.MaxFloat64
	bestIdx := 0
	for i, v := range vs {
		if v > best {
			best = v
			bestIdx = i
		}
	}

	return best, bestIdx
}
