// Package tuplet derives beaming rules inside a single tuplet group.
package tuplet

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/util"
)

// Unit durations with dedicated rules, in quarter notes.
const (
	Eighth       = 0.5 // eighth notes and longer share one rule
	Sixteenth    = 0.25
	ThirtySecond = 0.125
	SixtyFourth  = 0.0625
)

// Limits enforced by Check.
const (
	MaxCount = 255
	// quarter notes, four 4/4 bars
	MaxSpan = 16.0
)

// Derive returns the rules for a tuplet of count notes, each unit quarter
// notes long. Every treatment is Both: tuplets beam as one group unless the
// caller narrows them.
func Derive(count int, unit float64) model.TupletBeamRuleSet {
	n := float64(count)
	span := n * unit

	r := model.TupletBeamRuleSet{
		BeamRuleSet: model.BeamRuleSet{
			Beam:               model.Both,
			Sub8In16Treatment:  model.Both,
			Sub8In32Treatment:  model.Both,
			Sub16In32Treatment: model.Both,
		},
		SimplifyBrackets:   true,
		BeamAcrossBoundary: true,
		BeamWithinTuplet:   true,
	}

	switch {
	case unit >= Eighth:
		// one split per quarter note's worth of the tuplet
		r.Split8 = util.Steps(span*2, 4)
		r.Split16 = util.Steps(span*4, 4)
		r.Split32 = util.Steps(span*4, 8)
		r.Sub8In16 = util.Steps(span*8, 2)
		r.Sub8In32 = util.Steps(span*8, 4)
		r.Sub16In32 = util.Steps(span*16, 2)

	case unit == Sixteenth:
		r.Split8 = util.Steps(n, 2)
		r.Split16 = util.Steps(n, 4)
		r.Split32 = util.Steps(n, 8)
		r.Sub8In16 = util.Steps(n*2, 2)
		r.Sub8In32 = util.Steps(n*2, 4)
		r.Sub16In32 = util.Steps(n*4, 2)

	case unit == ThirtySecond:
		r.Split8 = util.Boundary(n)
		r.Split16 = util.Boundary(n * 2)
		r.Split32 = util.Boundary(n * 4)
		r.Sub8In16 = util.Steps(n, 2)
		r.Sub8In32 = util.Steps(n, 4)
		r.Sub16In32 = util.Steps(n*2, 1)

	case unit == SixtyFourth:
		r.Split8 = util.Boundary(n / 2)
		r.Split16 = util.Boundary(n)
		r.Sub8In16 = util.Boundary(n)
		r.Split32 = util.Boundary(n * 2)
		r.Sub8In32 = util.Boundary(n * 2)
		r.Sub16In32 = util.Steps(n, 1)

	default:
		r.Split8 = util.Boundary(span * 8)
		r.Split16 = util.Boundary(span * 16)
		r.Sub8In16 = util.Boundary(span * 16)
		r.Split32 = util.Boundary(span * 32)
		r.Sub8In32 = util.Boundary(span * 32)
		r.Sub16In32 = util.Boundary(span * 32)
	}
	return r
}

// ParseUnit reads a unit duration in quarter notes, written as a fraction
// ("1/2", "3/4") or a decimal ("0.125").
func ParseUnit(s string) (float64, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return 0, fmt.Errorf("bad unit duration %q", s)
	}
	if r.Sign() <= 0 {
		return 0, fmt.Errorf("unit duration %q must be positive", s)
	}
	f, _ := r.Float64()
	if f == 0 || math.IsInf(f, 0) {
		return 0, fmt.Errorf("unit duration %q is out of range", s)
	}
	return f, nil
}

// Check rejects tuplets Derive should not be asked for.
func Check(count int, unit float64) error {
	if count < 1 || count > MaxCount {
		return fmt.Errorf("tuplet count must be between 1 and %d", MaxCount)
	}
	if !(unit > 0) || math.IsInf(unit, 0) {
		return fmt.Errorf("unit duration must be positive and finite")
	}
	if float64(count)*unit > MaxSpan {
		return fmt.Errorf("tuplet of %d x %v quarter notes is longer than %v quarter notes", count, unit, MaxSpan)
	}
	return nil
}
