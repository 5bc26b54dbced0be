package kuhn5

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfig is the cause of every error returned for bad solver
	// parameters, including decks too small to deal.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidStrategy is the cause of every error returned for strategy
	// tables that are not valid probability distributions.
	ErrInvalidStrategy = errors.New("invalid strategy")
)

// IsInvalidConfig returns true if err was caused by ErrInvalidConfig.
func IsInvalidConfig(err error) bool {
	return errors.Cause(err) == ErrInvalidConfig
}

// IsInvalidStrategy returns true if err was caused by ErrInvalidStrategy.
func IsInvalidStrategy(err error) bool {
	return errors.Cause(err) == ErrInvalidStrategy
}
