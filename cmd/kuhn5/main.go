// Solve n-card Kuhn poker by local search and print the equilibrium found.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof"

	"github.com/golang/glog"

	"github.com/timpalpant/kuhn5"
	"github.com/timpalpant/kuhn5/cards"
	"github.com/timpalpant/kuhn5/cfr"
	"github.com/timpalpant/kuhn5/gamestate"
	"github.com/timpalpant/kuhn5/internal/envflag"
	"github.com/timpalpant/kuhn5/matrixgame"
	"github.com/timpalpant/kuhn5/policyio"
	"github.com/timpalpant/kuhn5/report"
	"github.com/timpalpant/kuhn5/starts"
)

func main() {
	envflag.Load()
	numCards := flag.Int("num_cards", envflag.Int("NUM_CARDS", cards.DefaultDeckSize), "Number of cards in the deck")
	start := flag.String("start", envflag.String("START", "heuristic"),
		"Starting strategies: heuristic, thesis, linear, uniform, random or a policy file")
	seed := flag.Int64("seed", envflag.Int64("SEED", 1234), "Random seed for -start=random and -reference")
	maxIterations := flag.Int("max_iterations", envflag.Int("MAX_ITERATIONS", kuhn5.DefaultMaxIterations),
		"Maximum number of rounds of local search")
	epsilon := flag.Float64("epsilon", envflag.Float("EPSILON", kuhn5.DefaultEpsilon),
		"Exploitability below which the strategies are an equilibrium")
	checkFrequency := flag.Int("check_frequency", envflag.Int("CHECK_FREQUENCY", kuhn5.DefaultCheckFrequency),
		"Iterations between equilibrium checks")
	stepSize := flag.Float64("step_size", envflag.Float("STEP_SIZE", kuhn5.DefaultStepSize),
		"Local-search probability step")
	pinDominated := flag.Bool("pin_dominated", envflag.Bool("PIN_DOMINATED", false),
		"Never update cells whose best choice is fixed")
	reference := flag.Int("reference", envflag.Int("REFERENCE", 0),
		"If > 0, also compute the game value by this many iterations of fictitious play")
	cfrIterations := flag.Int("cfr_iterations", envflag.Int("CFR_ITERATIONS", 0),
		"If > 0, also solve the game by this many iterations of CFR")
	output := flag.String("output", envflag.String("OUTPUT", ""), "File to save the result to")
	pprofAddr := flag.String("pprof_addr", envflag.String("PPROF_ADDR", ""), "Address to serve pprof on")
	flag.Parse()

	if *pprofAddr != "" {
		go http.ListenAndServe(*pprofAddr, nil)
	}

	rng := rand.New(rand.NewSource(*seed))
	s1, s2, err := startingStrategies(*start, *numCards, rng)
	if err != nil {
		glog.Fatal(err)
	}

	config := kuhn5.DefaultConfig()
	config.MaxIterations = *maxIterations
	config.Epsilon = *epsilon
	config.CheckFrequency = *checkFrequency
	config.StepSize = *stepSize
	if *pinDominated {
		config.Pinned = starts.DominatedCells(s1.NumCards())
	}

	initial, err := report.RenderStrategy(s1)
	if err != nil {
		glog.Fatal(err)
	}
	glog.V(1).Infof("Initial %v strategy:\n%s", s1.Player(), initial)

	result, err := kuhn5.Solve(s1, s2, config)
	if err != nil {
		glog.Fatal(err)
	}

	summary, err := report.Summary(result)
	if err != nil {
		glog.Fatal(err)
	}
	fmt.Print(summary)

	records, err := report.RenderRecords(result.Records)
	if err != nil {
		glog.Fatal(err)
	}
	fmt.Printf("\nEquilibrium checks:\n%s", records)

	if *reference > 0 {
		printReferenceValue(s1.NumCards(), *reference, rng)
	}

	if *cfrIterations > 0 {
		printCFRValue(s1.NumCards(), *cfrIterations)
	}

	if *output != "" {
		if err := policyio.Save(*output, policyio.FromResult(result, s1, s2)); err != nil {
			glog.Fatal(err)
		}
	}
}

func startingStrategies(start string, n int, rng *rand.Rand) (*kuhn5.Strategy, *kuhn5.Strategy, error) {
	switch start {
	case "heuristic", "thesis":
		if n != cards.DefaultDeckSize {
			return nil, nil, fmt.Errorf("-start=%s requires -num_cards=%d", start, cards.DefaultDeckSize)
		}

		if start == "thesis" {
			s1, s2 := starts.Thesis()
			return s1, s2, nil
		}

		s1, s2 := starts.Heuristic()
		return s1, s2, nil
	case "linear":
		return starts.Linear(n)
	case "uniform":
		return starts.Uniform(n)
	case "random":
		return starts.Random(n, rng)
	default:
		return policyio.LoadStrategies(start)
	}
}

func printReferenceValue(n, nIter int, rng *rand.Rand) {
	glog.Infof("Building normal form of %d-card game", n)
	nf, err := kuhn5.NewNormalForm(n)
	if err != nil {
		glog.Warningf("Skipping reference value: %v", err)
		return
	}

	glog.Infof("Running %d iterations of fictitious play on %dx%d matrix",
		nIter, len(nf.Pure1), len(nf.Pure2))
	mix1, mix2 := matrixgame.FictitiousPlay(nf.Payoffs, nIter, 0, rng)
	b1 := nf.Behavior(gamestate.Player1, mix1)
	b2 := nf.Behavior(gamestate.Player2, mix2)
	ev1, _ := kuhn5.Evaluate(b1, b2)
	e1, e2 := kuhn5.Exploitability(b1, b2)
	fmt.Printf("\nFictitious play reference: EV Player1 = %.6f (exploitability %.6f, %.6f)\n", ev1, e1, e2)
}

func printCFRValue(n, nIter int) {
	root, err := cfr.NewGame(n)
	if err != nil {
		glog.Warningf("Skipping CFR: %v", err)
		return
	}

	glog.Infof("Running %d iterations of CFR on %d-card game", nIter, n)
	b1, b2 := cfr.NewVanilla().Train(root, nIter)
	ev1, _ := kuhn5.Evaluate(b1, b2)
	e1, e2 := kuhn5.Exploitability(b1, b2)
	fmt.Printf("CFR reference: EV Player1 = %.6f (exploitability %.6f, %.6f)\n", ev1, e1, e2)
}
