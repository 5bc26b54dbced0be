// Package policyio saves and loads solver output as gzip-compressed gob files.
package policyio

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/golang/glog"
	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/timpalpant/kuhn5"
	"github.com/timpalpant/kuhn5/gamestate"
)

// File is the saved form of a solve: the final strategy pair and the
// record of every equilibrium check.
type File struct {
	Strategy1 *kuhn5.Strategy
	Strategy2 *kuhn5.Strategy
	Records   []kuhn5.Record
	State     kuhn5.SolverState
}

// FromResult captures a solve result. The final strategies are those of the
// most recent record, if any, and otherwise the given fallbacks.
func FromResult(result *kuhn5.Result, s1, s2 *kuhn5.Strategy) *File {
	f := &File{
		Strategy1: s1,
		Strategy2: s2,
		Records:   result.Records,
		State:     result.State,
	}

	if last, ok := result.Last(); ok {
		f.Strategy1 = last.Strategy1
		f.Strategy2 = last.Strategy2
	}

	return f
}

// Write encodes f to w.
func Write(w io.Writer, f *File) error {
	gw := gzip.NewWriter(w)
	if err := gob.NewEncoder(gw).Encode(f); err != nil {
		gw.Close()
		return errors.Wrap(err, "encoding policy file")
	}

	return errors.Wrap(gw.Close(), "flushing policy file")
}

// Read decodes a File from r and checks that it holds a Player 1 and a
// Player 2 strategy for the same deck.
func Read(r io.Reader) (*File, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening policy file")
	}
	defer gr.Close()

	var f File
	if err := gob.NewDecoder(gr).Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decoding policy file")
	}

	if f.Strategy1 == nil || f.Strategy2 == nil {
		return nil, errors.Wrap(kuhn5.ErrInvalidStrategy, "policy file is missing a strategy")
	}

	if f.Strategy1.Player() != gamestate.Player1 || f.Strategy2.Player() != gamestate.Player2 {
		return nil, errors.Wrapf(kuhn5.ErrInvalidStrategy, "policy file holds strategies for (%v, %v)",
			f.Strategy1.Player(), f.Strategy2.Player())
	}

	if f.Strategy1.NumCards() != f.Strategy2.NumCards() {
		return nil, errors.Wrapf(kuhn5.ErrInvalidStrategy, "policy file strategies are for %d and %d cards",
			f.Strategy1.NumCards(), f.Strategy2.NumCards())
	}

	return &f, nil
}

// Save writes f to the named file, replacing it if it exists.
func Save(filename string, f *File) error {
	glog.Infof("Saving strategies to: %v", filename)
	out, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %v", filename)
	}

	if err := Write(out, f); err != nil {
		out.Close()
		return errors.Wrapf(err, "writing %v", filename)
	}

	return errors.Wrapf(out.Close(), "closing %v", filename)
}

// Load reads a File saved by Save.
func Load(filename string) (*File, error) {
	glog.Infof("Loading strategies from: %v", filename)
	in, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", filename)
	}
	defer in.Close()

	f, err := Read(in)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %v", filename)
	}

	return f, nil
}

// LoadStrategies returns the final strategy pair saved in the named file,
// for use as a starting point.
func LoadStrategies(filename string) (*kuhn5.Strategy, *kuhn5.Strategy, error) {
	f, err := Load(filename)
	if err != nil {
		return nil, nil, err
	}

	return f.Strategy1, f.Strategy2, nil
}
