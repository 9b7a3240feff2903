// Package timesig derives the beaming rules of a whole measure from its time
// signature.
package timesig

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/rebeam/custom"
	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/util"
)

// FatalError means the measure's time signature has a denominator the
// deriver has no rules for. Processing of the score must stop.
type FatalError struct {
	// 0-based
	Measure     int
	Numerator   int
	Denominator int
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("unrecognised time signature %d/%d at measure %d", e.Numerator, e.Denominator, e.Measure+1)
}

// Denominators lists every denominator with rules, in ascending order.
var Denominators = []int{1, 2, 4, 8, 16, 32, 64}

// MaxNumerator is the largest numerator a MIDI time signature can carry.
const MaxNumerator = 255

func Supported(denominator int) bool {
	for _, d := range Denominators {
		if d == denominator {
			return true
		}
	}
	return false
}

type Request struct {
	Numerator   int
	Denominator int
	// apply overrides and force full measure coverage
	Custom bool
	// 0-based index, only used to label errors
	Measure         int
	ScoreNumerators model.NumeratorSet
}

type Deriver struct {
	// consulted for custom requests; may be nil
	Overrides custom.Source

	// NumeratorDriven counts compound /8 and /16 groups, and the /32
	// sixteenth display, from the numerator. By default the denominator
	// drives them, which only matches the measure length for 6/8.
	NumeratorDriven bool

	Logger *slog.Logger
}

var defaultDeriver = &Deriver{}

// Derive is Deriver.Derive with no overrides and legacy group counts.
func Derive(numerator, denominator int, custom bool, scoreNumerators model.NumeratorSet) (model.BeamRuleSet, error) {
	return defaultDeriver.Derive(Request{
		Numerator:       numerator,
		Denominator:     denominator,
		Custom:          custom,
		ScoreNumerators: scoreNumerators,
	})
}

func (d *Deriver) Derive(req Request) (model.BeamRuleSet, error) {
	if !Supported(req.Denominator) {
		return model.BeamRuleSet{}, &FatalError{
			Measure:     req.Measure,
			Numerator:   req.Numerator,
			Denominator: req.Denominator,
		}
	}
	n := float64(req.Numerator)
	den := float64(req.Denominator)

	r := model.BeamRuleSet{
		Beam:               model.Both,
		Sub8In16Treatment:  model.RestsOnly,
		Sub8In32Treatment:  model.Both,
		Sub16In32Treatment: model.RestsOnly,
	}

	switch req.Denominator {
	case 1:
		r.Split8 = util.Steps(n*2, 4)
		r.Split16 = util.Steps(n*4, 4)
		r.Split32 = util.Steps(n*4, 8)
		r.Sub8In16 = util.Steps(n*8, 2)
		r.Sub8In32 = util.Steps(n*8, 4)
		r.Sub16In32 = util.Steps(n*16, 2)

	case 2:
		r.Split8 = util.Steps(n, 4)
		r.Split16 = util.Steps(n*2, 4)
		r.Split32 = util.Steps(n*2, 8)
		r.Sub8In16 = util.Steps(n*4, 2)
		r.Sub8In32 = util.Steps(n*4, 4)
		r.Sub16In32 = util.Steps(n*8, 2)

	case 4:
		r.Split8 = quarterSplit8(req.Numerator, req.ScoreNumerators)
		r.Split16 = util.Steps(n, 4)
		r.Split32 = util.Steps(n, 8)
		r.Sub8In16 = util.Steps(n*2, 2)
		r.Sub8In32 = util.Steps(n*2, 4)
		r.Sub16In32 = util.Steps(n*4, 2)

	case 8:
		if req.Numerator%3 == 0 {
			// compound: dotted quarter groups, always show the eighths
			r.Sub8In16Treatment = model.Both
			groups, count := den/3, den
			if d.NumeratorDriven {
				groups, count = n/3, n
			}
			r.Split8 = util.Steps(groups, 3)
			r.Split16 = util.Steps(groups, 6)
			r.Split32 = util.Steps(groups, 12)
			r.Sub8In16 = util.Steps(count, 2)
			r.Sub8In32 = util.Steps(count, 4)
			r.Sub16In32 = util.Steps(count*2, 2)
		} else {
			r.Split8 = util.Steps(n, 1)
			r.Split16 = util.Steps(n, 2)
			r.Split32 = util.Steps(n, 4)
			r.Sub8In16 = util.Steps(n*2, 1)
			r.Sub8In32 = util.Steps(n*2, 2)
			r.Sub16In32 = util.Steps(n*4, 1)
		}

	case 16:
		r.Split8 = util.Boundary(n / 2)
		if req.Numerator%3 == 0 {
			groups, count := den/3, den
			if d.NumeratorDriven {
				groups, count = n/3, n
			}
			r.Split16 = util.Steps(groups, 3)
			r.Split32 = util.Steps(groups, 6)
			r.Sub8In16 = util.Steps(count, 1)
			r.Sub8In32 = util.Steps(count, 2)
			r.Sub16In32 = util.Steps(count*2, 1)
		} else {
			r.Split16 = util.Steps(n, 1)
			r.Split32 = util.Steps(n, 2)
			r.Sub8In16 = util.Steps(n*2, 1)
			r.Sub8In32 = util.Steps(n*2, 2)
			r.Sub16In32 = util.Steps(n*4, 1)
		}

	case 32:
		r.Split8 = util.Boundary(n / 4)
		r.Split16 = util.Boundary(n / 2)
		r.Sub8In16 = util.Boundary(n / 2)
		r.Split32 = util.Boundary(n)
		r.Sub8In32 = util.Boundary(n)
		count := den
		if d.NumeratorDriven {
			count = n
		}
		r.Sub16In32 = util.Steps(count, 1)

	case 64:
		r.Split8 = util.Boundary(n / 8)
		r.Split16 = util.Boundary(n / 4)
		r.Sub8In16 = util.Boundary(n / 4)
		r.Split32 = util.Boundary(n / 2)
		r.Sub8In32 = util.Boundary(n / 2)
		r.Sub16In32 = util.Boundary(n / 2)
	}

	if req.Custom {
		r = d.applyCustom(req, r)
	}
	return r, nil
}

// quarterSplit8 groups eighths in x/4 measures.
func quarterSplit8(numerator int, scoreNumerators model.NumeratorSet) model.Positions {
	switch numerator {
	case 4:
		return model.Positions{0, 4, 8}
	case 5:
		// 3+2: the last two beats stay joined
		return model.Positions{0, 2, 4, 6, 10}
	case 6:
		// beam like 3/2 when the score also uses 4/4
		if scoreNumerators.Contains(4) {
			return model.Positions{0, 4, 8, 12}
		}
	}
	return util.Steps(float64(numerator), 2)
}

func (d *Deriver) applyCustom(req Request, r model.BeamRuleSet) model.BeamRuleSet {
	ts := model.TimeSignature{Numerator: req.Numerator, Denominator: req.Denominator}
	if d.Overrides != nil {
		if seqs, ok := d.Overrides.Lookup(ts); ok {
			d.logger().Debug("Applying custom beam rules", slog.String("timesig", ts.String()), slog.Int("measure", req.Measure+1))
			r = r.Apply(seqs)
		}
	}
	return CoverMeasure(ts, r)
}

// CoverMeasure prepends 0 and appends the measure length to every sequence
// so even malformed custom data spans the whole measure.
func CoverMeasure(ts model.TimeSignature, r model.BeamRuleSet) model.BeamRuleSet {
	length := ts.Length()
	cover := func(p model.Positions, units float64) model.Positions {
		res := make(model.Positions, 0, len(p)+2)
		res = append(res, 0)
		res = append(res, p...)
		return append(res, length*units)
	}
	r.Split8 = cover(r.Split8, model.EighthUnits)
	r.Split16 = cover(r.Split16, model.SixteenthUnits)
	r.Sub8In16 = cover(r.Sub8In16, model.SixteenthUnits)
	r.Split32 = cover(r.Split32, model.ThirtySecondUnits)
	r.Sub8In32 = cover(r.Sub8In32, model.ThirtySecondUnits)
	r.Sub16In32 = cover(r.Sub16In32, model.ThirtySecondUnits)
	return r
}

func (d *Deriver) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
