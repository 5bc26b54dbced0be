// Package report renders solver output as terminal tables.
package report

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/timpalpant/kuhn5"
	"github.com/timpalpant/kuhn5/cards"
)

// StrategyTable lays out a strategy with one row per card and, for each
// decision node, the probability of the aggressive and passive actions.
func StrategyTable(s *kuhn5.Strategy) pterm.TableData {
	nodes := s.Nodes()
	header := []string{"Card"}
	for _, node := range nodes {
		header = append(header,
			fmt.Sprintf("%v P(%v)", node, node.Aggressive()),
			fmt.Sprintf("%v P(%v)", node, node.Passive()))
	}

	data := pterm.TableData{header}
	for _, card := range cards.Deck(s.NumCards()) {
		row := []string{card.String()}
		for _, node := range nodes {
			row = append(row,
				formatProbability(s.Aggressive(card, node)),
				formatProbability(s.Passive(card, node)))
		}
		data = append(data, row)
	}

	return data
}

// RecordsTable lays out the expected values and exploitabilities of each
// equilibrium check.
func RecordsTable(records []kuhn5.Record) pterm.TableData {
	data := pterm.TableData{
		{"Iteration", "EV Player1", "EV Player2", "Exploitability Player1", "Exploitability Player2"},
	}

	for _, r := range records {
		data = append(data, []string{
			fmt.Sprint(r.Iteration),
			fmt.Sprintf("%.6f", r.EV1),
			fmt.Sprintf("%.6f", r.EV2),
			fmt.Sprintf("%.6f", r.Exploitability1),
			fmt.Sprintf("%.6f", r.Exploitability2),
		})
	}

	return data
}

// RenderStrategy returns the strategy as a printable table.
func RenderStrategy(s *kuhn5.Strategy) (string, error) {
	return render(StrategyTable(s))
}

// RenderRecords returns the record log as a printable table.
func RenderRecords(records []kuhn5.Record) (string, error) {
	return render(RecordsTable(records))
}

// Summary describes the outcome of a solve and its final strategies.
func Summary(result *kuhn5.Result) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v after %d iterations (%d checks)\n",
		result.State, result.Iterations, len(result.Records))

	last, ok := result.Last()
	if !ok {
		return sb.String(), nil
	}

	fmt.Fprintf(&sb, "EVs: Player1 = %.6f, Player2 = %.6f\n", last.EV1, last.EV2)
	fmt.Fprintf(&sb, "Exploitability: Player1 = %.6f, Player2 = %.6f\n",
		last.Exploitability1, last.Exploitability2)
	for _, s := range []*kuhn5.Strategy{last.Strategy1, last.Strategy2} {
		table, err := RenderStrategy(s)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&sb, "\n%v strategy:\n%s", s.Player(), table)
	}

	return sb.String(), nil
}

func render(data pterm.TableData) (string, error) {
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func formatProbability(p float64) string {
	return fmt.Sprintf("%.4f", p)
}
