// Package score lays a MIDI file out as measures and derives beaming rules
// for each of them.
package score

import (
	"fmt"
	"sort"

	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/sample"
	"github.com/jsphweid/rebeam/timesig"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Measure struct {
	// absolute tick of the downbeat
	Start         uint64
	TimeSignature model.TimeSignature
}

type Score struct {
	Measures   []Measure
	numerators model.NumeratorSet
}

// Deriver is satisfied by *timesig.Deriver.
type Deriver interface {
	Derive(req timesig.Request) (model.BeamRuleSet, error)
}

func New(measures []Measure) *Score {
	var nums []int
	for _, m := range measures {
		nums = append(nums, m.TimeSignature.Numerator)
	}
	return &Score{Measures: measures, numerators: model.NewNumeratorSet(nums...)}
}

// Numerators is the snapshot handed to the deriver for every measure.
func (s *Score) Numerators() model.NumeratorSet {
	return s.numerators
}

// Rules derives every measure's rules. The first unrecognised time
// signature aborts the whole score; its error names the measure.
func (s *Score) Rules(d Deriver, custom bool) ([]model.MeasureRules, error) {
	res := make([]model.MeasureRules, 0, len(s.Measures))
	for i, m := range s.Measures {
		rules, err := d.Derive(timesig.Request{
			Numerator:       m.TimeSignature.Numerator,
			Denominator:     m.TimeSignature.Denominator,
			Custom:          custom,
			Measure:         i,
			ScoreNumerators: s.numerators,
		})
		if err != nil {
			return nil, err
		}
		res = append(res, model.MeasureRules{Index: i, TimeSignature: m.TimeSignature, Rules: rules})
	}
	return res, nil
}

type timeSigEvent struct {
	tick uint64
	ts   model.TimeSignature
}

// FromSMF reads the time signature changes of every track. A file without
// any is 4/4 throughout. A change that lands mid-measure starts a new
// measure there.
func FromSMF(s *smf.SMF) (*Score, error) {
	res, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v, need metric ticks", s.TimeFormat)
	}

	var events []timeSigEvent
	var end uint64
	for _, track := range s.Tracks {
		var absTicks uint64
		for _, event := range track {
			absTicks += uint64(event.Delta)
			var num, den uint8
			if event.Message.GetMetaMeter(&num, &den) {
				events = append(events, timeSigEvent{
					tick: absTicks,
					ts:   model.TimeSignature{Numerator: int(num), Denominator: int(den)},
				})
			}
		}
		if absTicks > end {
			end = absTicks
		}
	}

	// later tracks win ties
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	current := model.TimeSignature{Numerator: 4, Denominator: 4}
	var measures []Measure
	var cursor uint64
	next := 0
	for len(measures) == 0 || cursor < end {
		for next < len(events) && events[next].tick <= cursor {
			current = events[next].ts
			next++
		}
		length := sample.MeasureTicks(res, current)
		if length == 0 {
			return nil, fmt.Errorf("time signature %v at tick %d has no length", current, cursor)
		}
		measures = append(measures, Measure{Start: cursor, TimeSignature: current})
		stop := cursor + length
		if next < len(events) && events[next].tick < stop {
			stop = events[next].tick
		}
		cursor = stop
	}
	return New(measures), nil
}
