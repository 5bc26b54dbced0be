package kuhn5

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/timpalpant/kuhn5/cards"
)

// BestResponse returns a best response of current's player to the fixed
// opponent strategy, together with its expected value.
//
// A player's expected value is a sum of independent terms, one per card
// held, so the best response is found card by card: every pure
// combination of the player's choices for that card is tried and the
// highest-valued one is kept. A card whose current choices are already
// optimal is left untouched, so the returned value is never below the
// value of current.
func BestResponse(current, opponent *Strategy) (*Strategy, float64) {
	br := current.Clone()
	s1, s2 := arrange(br, opponent)
	mustBePair(s1, s2)

	player := br.Player()
	nodes := br.Nodes()
	bestEV := EvaluateFor(player, s1, s2)
	for _, card := range cards.Deck(br.NumCards()) {
		bestRow := br.probs[card.Index()]
		for _, choice := range pureChoices(len(nodes)) {
			for i, node := range nodes {
				br.set(card, node, choice[i])
			}

			if ev := EvaluateFor(player, s1, s2); ev > bestEV {
				bestEV = ev
				bestRow = br.probs[card.Index()]
			}
		}

		br.probs[card.Index()] = bestRow
	}

	return br, bestEV
}

// Exploitability returns how much each player could gain by switching to a
// best response against the other's strategy. Both values are >= 0.
func Exploitability(s1, s2 *Strategy) (e1, e2 float64) {
	ev1, ev2 := Evaluate(s1, s2)
	br1, br2 := bestResponseValues(s1, s2)
	return br1 - ev1, br2 - ev2
}

// bestResponseValues computes both players' best-response values. The two
// searches only read s1 and s2, so they run concurrently. A panic in either
// search is re-raised on the calling goroutine.
func bestResponseValues(s1, s2 *Strategy) (br1, br2 float64) {
	var g errgroup.Group
	g.Go(func() (err error) {
		defer recoverAsError(&err)
		_, br1 = BestResponse(s1, s2)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverAsError(&err)
		_, br2 = BestResponse(s2, s1)
		return nil
	})

	if err := g.Wait(); err != nil {
		panic(err)
	}

	return br1, br2
}

func recoverAsError(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = e
		} else {
			*err = errors.Errorf("%v", r)
		}
	}
}

// pureChoices enumerates every assignment of 0 or 1 to k decisions.
func pureChoices(k int) [][]float64 {
	result := make([][]float64, 0, 1<<uint(k))
	for bits := 0; bits < 1<<uint(k); bits++ {
		choice := make([]float64, k)
		for i := range choice {
			if bits&(1<<uint(i)) != 0 {
				choice[i] = 1
			}
		}
		result = append(result, choice)
	}

	return result
}
