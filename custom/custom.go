// Package custom provides user-defined beam rule overrides keyed by time
// signature.
package custom

import (
	"github.com/jsphweid/rebeam/model"
)

// Source looks up the override for a time signature.
type Source interface {
	Lookup(ts model.TimeSignature) (model.Sequences, bool)
}

// Static is an in-memory Source keyed by "n/d".
type Static map[string]model.Sequences

func (s Static) Lookup(ts model.TimeSignature) (model.Sequences, bool) {
	seqs, ok := s[ts.String()]
	if !ok || seqs.Empty() {
		return model.Sequences{}, false
	}
	return seqs, true
}

// Chain asks each source in turn and returns the first hit.
type Chain []Source

func (c Chain) Lookup(ts model.TimeSignature) (model.Sequences, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if seqs, ok := src.Lookup(ts); ok {
			return seqs, true
		}
	}
	return model.Sequences{}, false
}
