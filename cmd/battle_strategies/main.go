// Compute the exact expected value of two saved strategies played against
// each other, and how exploitable each one is.
package main

import (
	"flag"
	"fmt"

	"github.com/golang/glog"
	"github.com/pterm/pterm"

	"github.com/timpalpant/kuhn5"
	"github.com/timpalpant/kuhn5/internal/envflag"
	"github.com/timpalpant/kuhn5/policyio"
	"github.com/timpalpant/kuhn5/report"
)

func main() {
	envflag.Load()
	strat0 := flag.String("strategy0", envflag.String("STRATEGY0", ""), "File with the policy to play as Player1")
	strat1 := flag.String("strategy1", envflag.String("STRATEGY1", ""), "File with the policy to play as Player2")
	flag.Parse()

	f0, err := policyio.Load(*strat0)
	if err != nil {
		glog.Fatal(err)
	}

	f1, err := policyio.Load(*strat1)
	if err != nil {
		glog.Fatal(err)
	}

	s1, s2 := f0.Strategy1, f1.Strategy2
	if s1.NumCards() != s2.NumCards() {
		glog.Fatalf("Policies are for different decks: %d and %d cards", s1.NumCards(), s2.NumCards())
	}

	ev1, ev2 := kuhn5.Evaluate(s1, s2)
	e1, e2 := kuhn5.Exploitability(s1, s2)
	glog.Infof("Player1 (%v) EV: %.6f", *strat0, ev1)
	glog.Infof("Player2 (%v) EV: %.6f", *strat1, ev2)

	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Player", "Policy", "EV", "Exploitability"},
		{s1.Player().String(), *strat0, fmt.Sprintf("%.6f", ev1), fmt.Sprintf("%.6f", e1)},
		{s2.Player().String(), *strat1, fmt.Sprintf("%.6f", ev2), fmt.Sprintf("%.6f", e2)},
	}).Srender()
	if err != nil {
		glog.Fatal(err)
	}
	fmt.Println(table)

	for _, s := range []*kuhn5.Strategy{s1, s2} {
		rendered, err := report.RenderStrategy(s)
		if err != nil {
			glog.Fatal(err)
		}
		fmt.Printf("\n%v strategy:\n%s", s.Player(), rendered)
	}
}
