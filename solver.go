package kuhn5

import (
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/kuhn5/cards"
	"github.com/timpalpant/kuhn5/gamestate"
)

const (
	DefaultMaxIterations  = 10000
	DefaultEpsilon        = 0.01
	DefaultCheckFrequency = 100
	DefaultStepSize       = 0.01
	DefaultTolerance      = 1e-12
)

// Config holds the parameters of a solve.
type Config struct {
	// MaxIterations bounds the number of rounds of local search.
	MaxIterations int
	// Epsilon is the exploitability both players must fall below
	// for the strategies to count as an equilibrium.
	Epsilon float64
	// CheckFrequency is the number of iterations between equilibrium checks.
	CheckFrequency int
	// StepSize is the local-search perturbation. It is independent of Epsilon.
	StepSize float64
	// Tolerance is the minimum gain for a local-search move to be accepted.
	Tolerance float64
	// Pinned cells keep their starting probability for the whole solve.
	Pinned []Cell
}

// DefaultConfig returns the parameters used for 5-card Kuhn poker.
func DefaultConfig() Config {
	return Config{
		MaxIterations:  DefaultMaxIterations,
		Epsilon:        DefaultEpsilon,
		CheckFrequency: DefaultCheckFrequency,
		StepSize:       DefaultStepSize,
		Tolerance:      DefaultTolerance,
	}
}

// Validate returns an error caused by ErrInvalidConfig if any parameter
// is out of range.
func (c Config) Validate() error {
	switch {
	case c.MaxIterations <= 0:
		return errors.Wrapf(ErrInvalidConfig, "max iterations must be positive, got %d", c.MaxIterations)
	case !(c.Epsilon > 0):
		return errors.Wrapf(ErrInvalidConfig, "epsilon must be positive, got %v", c.Epsilon)
	case c.CheckFrequency <= 0:
		return errors.Wrapf(ErrInvalidConfig, "check frequency must be positive, got %d", c.CheckFrequency)
	case c.CheckFrequency > c.MaxIterations:
		return errors.Wrapf(ErrInvalidConfig, "check frequency %d exceeds max iterations %d",
			c.CheckFrequency, c.MaxIterations)
	case !(c.StepSize > 0 && c.StepSize <= 1):
		return errors.Wrapf(ErrInvalidConfig, "step size must be in (0, 1], got %v", c.StepSize)
	case !(c.Tolerance >= 0):
		return errors.Wrapf(ErrInvalidConfig, "tolerance must be non-negative, got %v", c.Tolerance)
	}

	return nil
}

func (c Config) searchOptions() SearchOptions {
	pinned := make(map[Cell]bool, len(c.Pinned))
	for _, cell := range c.Pinned {
		pinned[cell] = true
	}

	return SearchOptions{
		StepSize:  c.StepSize,
		Tolerance: c.Tolerance,
		Pinned:    pinned,
	}
}

// SolverState is the phase of a solve.
type SolverState uint8

const (
	Initializing SolverState = iota
	Running
	CheckingEquilibrium
	Converged
	IterationLimitReached
)

var solverStateStr = [...]string{
	"Initializing",
	"Running",
	"CheckingEquilibrium",
	"Converged",
	"IterationLimitReached",
}

func (s SolverState) String() string {
	return solverStateStr[s]
}

// IsTerminal returns true once the solve has finished.
func (s SolverState) IsTerminal() bool {
	return s == Converged || s == IterationLimitReached
}

// Record is a snapshot taken at an equilibrium check.
// Records own private copies of the strategies and are never modified.
type Record struct {
	Iteration       int
	Strategy1       *Strategy
	Strategy2       *Strategy
	EV1             float64
	EV2             float64
	Exploitability1 float64
	Exploitability2 float64
}

// IsEquilibrium returns true if neither player could gain epsilon or more
// by deviating.
func (r Record) IsEquilibrium(epsilon float64) bool {
	return r.Exploitability1 < epsilon && r.Exploitability2 < epsilon
}

// Result is the outcome of a solve.
type Result struct {
	// Records holds one entry per equilibrium check, oldest first.
	Records []Record
	// State is Converged or IterationLimitReached.
	State SolverState
	// Iterations is the number of rounds of local search performed.
	Iterations int
}

// Last returns the most recent record, or false if no check was performed.
func (r *Result) Last() (Record, bool) {
	if len(r.Records) == 0 {
		return Record{}, false
	}

	return r.Records[len(r.Records)-1], true
}

// Solver searches for an approximate Nash equilibrium by repeated rounds of
// local search. It owns its working strategies; callers' strategies are
// never modified.
type Solver struct {
	config Config
	opts   SearchOptions
	state  SolverState

	s1, s2    *Strategy
	iteration int
	records   []Record
}

// NewSolver validates the configuration and starting strategies and
// returns a Solver ready to run.
func NewSolver(s1, s2 *Strategy, config Config) (*Solver, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := validateStartingStrategies(s1, s2, config); err != nil {
		return nil, err
	}

	return &Solver{
		config: config,
		opts:   config.searchOptions(),
		state:  Running,
		s1:     s1.Clone(),
		s2:     s2.Clone(),
	}, nil
}

func validateStartingStrategies(s1, s2 *Strategy, config Config) error {
	if s1 == nil || s2 == nil {
		return errors.Wrap(ErrInvalidStrategy, "missing starting strategy")
	}

	if s1.Player() != gamestate.Player1 || s2.Player() != gamestate.Player2 {
		return errors.Wrapf(ErrInvalidStrategy, "expected strategies for (Player1, Player2), got (%v, %v)",
			s1.Player(), s2.Player())
	}

	if s1.NumCards() != s2.NumCards() {
		return errors.Wrapf(ErrInvalidConfig, "strategies are for different decks: %d and %d cards",
			s1.NumCards(), s2.NumCards())
	}

	if n := s1.NumCards(); n < cards.MinDeckSize {
		return errors.Wrapf(ErrInvalidConfig, "need at least %d cards, got %d", cards.MinDeckSize, n)
	}

	for _, cell := range config.Pinned {
		if cell.Card < 1 || int(cell.Card) > s1.NumCards() {
			return errors.Wrapf(ErrInvalidConfig, "pinned cell %v not in a %d-card deck", cell, s1.NumCards())
		}
	}

	if err := s1.Validate(); err != nil {
		return err
	}

	return s2.Validate()
}

// State returns the current phase of the solve.
func (s *Solver) State() SolverState {
	return s.state
}

// Iteration returns the number of completed rounds.
func (s *Solver) Iteration() int {
	return s.iteration
}

// Strategies returns copies of the current working strategies.
func (s *Solver) Strategies() (*Strategy, *Strategy) {
	return s.s1.Clone(), s.s2.Clone()
}

// Step performs one round of local search, followed by an equilibrium
// check when one is due, and returns the resulting state.
func (s *Solver) Step() SolverState {
	if s.state.IsTerminal() {
		return s.state
	}

	s.iteration++
	s.s1, s.s2 = Round(s.s1, s.s2, s.opts)
	if s.iteration%s.config.CheckFrequency == 0 {
		s.state = CheckingEquilibrium
		if s.check() {
			s.state = Converged
			return s.state
		}

		s.state = Running
	}

	if s.iteration >= s.config.MaxIterations {
		s.state = IterationLimitReached
	}

	return s.state
}

// check measures both players' exploitability, appends a Record and
// returns true if the strategies form an epsilon-equilibrium.
func (s *Solver) check() bool {
	ev1, ev2 := Evaluate(s.s1, s.s2)
	br1, br2 := bestResponseValues(s.s1, s.s2)
	record := Record{
		Iteration:       s.iteration,
		Strategy1:       s.s1.Clone(),
		Strategy2:       s.s2.Clone(),
		EV1:             ev1,
		EV2:             ev2,
		Exploitability1: br1 - ev1,
		Exploitability2: br2 - ev2,
	}
	s.records = append(s.records, record)

	glog.V(1).Infof("Iteration %d: EV = (%.6f, %.6f), exploitability = (%.6f, %.6f)",
		s.iteration, ev1, ev2, record.Exploitability1, record.Exploitability2)
	return record.IsEquilibrium(s.config.Epsilon)
}

// Run steps until the solve converges or exhausts its iterations.
func (s *Solver) Run() *Result {
	start := time.Now()
	for !s.Step().IsTerminal() {
	}

	elapsed := time.Since(start)
	result := s.Result()
	if last, ok := result.Last(); ok && result.State == Converged {
		glog.Infof("Equilibrium found after %d iterations (took %v): EV = (%.6f, %.6f)",
			s.iteration, elapsed, last.EV1, last.EV2)
	} else {
		glog.Infof("No equilibrium within %d iterations (took %v, %d checks)",
			s.iteration, elapsed, len(result.Records))
	}

	return result
}

// Result returns the records collected so far.
func (s *Solver) Result() *Result {
	records := make([]Record, len(s.records))
	copy(records, s.records)
	return &Result{
		Records:    records,
		State:      s.state,
		Iterations: s.iteration,
	}
}

// Solve runs the equilibrium search from the given starting strategies.
// Exhausting MaxIterations is not an error: the result's State is then
// IterationLimitReached and its Records hold every check performed.
func Solve(s1, s2 *Strategy, config Config) (*Result, error) {
	solver, err := NewSolver(s1, s2, config)
	if err != nil {
		return nil, err
	}

	glog.Infof("Solving %d-card Kuhn poker: max %d iterations, epsilon %v, step %v, checking every %d",
		s1.NumCards(), config.MaxIterations, config.Epsilon, config.StepSize, config.CheckFrequency)
	return solver.Run(), nil
}
