package report

import (
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/kuhn5"
	"github.com/timpalpant/kuhn5/starts"
)

func TestStrategyTable(t *testing.T) {
	s1, s2 := starts.Heuristic()

	data := StrategyTable(s1)
	require.Len(t, data, 6)
	assert.Equal(t, []string{"Card", "P1-open P(Bet)", "P1-open P(Check)", "P1-closing P(Call)", "P1-closing P(Fold)"}, data[0])
	assert.Equal(t, []string{"3", "0.5100", "0.4900", "0.4900", "0.5100"}, data[3])

	data = StrategyTable(s2)
	assert.Equal(t, []string{"Card", "P2-after-bet P(Call)", "P2-after-bet P(Fold)", "P2-after-check P(Bet)", "P2-after-check P(Check)"}, data[0])
	assert.Equal(t, []string{"1", "0.0000", "1.0000", "0.8100", "0.1900"}, data[1])
}

func TestRecordsTable(t *testing.T) {
	records := []kuhn5.Record{
		{Iteration: 100, EV1: 0.03, EV2: -0.03, Exploitability1: 0.005, Exploitability2: 0.002},
	}

	data := RecordsTable(records)
	require.Len(t, data, 2)
	assert.Equal(t, []string{"100", "0.030000", "-0.030000", "0.005000", "0.002000"}, data[1])
}

func TestSummary(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	s1, s2 := starts.Heuristic()
	result := &kuhn5.Result{
		State:      kuhn5.Converged,
		Iterations: 100,
		Records: []kuhn5.Record{
			{Iteration: 100, Strategy1: s1, Strategy2: s2, EV1: 0.03, EV2: -0.03},
		},
	}

	summary, err := Summary(result)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(summary, "Converged after 100 iterations (1 checks)"), summary)
	assert.Contains(t, summary, "P1-open P(Bet)")
	assert.Contains(t, summary, "P2-after-check P(Bet)")
	assert.Contains(t, summary, "0.6900")
}

func TestSummaryWithoutRecords(t *testing.T) {
	summary, err := Summary(&kuhn5.Result{State: kuhn5.IterationLimitReached, Iterations: 5})
	require.NoError(t, err)
	assert.Equal(t, "IterationLimitReached after 5 iterations (0 checks)\n", summary)
}
