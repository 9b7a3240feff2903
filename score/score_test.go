package score

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jsphweid/rebeam/midi"
	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/sample"
	"github.com/jsphweid/rebeam/timesig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ts(num, den int) model.TimeSignature {
	return model.TimeSignature{Numerator: num, Denominator: den}
}

func roundTrip(t *testing.T, signatures []model.TimeSignature, measuresEach int) *Score {
	t.Helper()
	s, err := sample.Create(signatures, measuresEach)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = s.WriteTo(&buf)
	require.NoError(t, err)

	parsed, err := midi.Parse(buf.Bytes())
	require.NoError(t, err)

	sc, err := FromSMF(parsed)
	require.NoError(t, err)
	return sc
}

func TestFromSMFLaysOutMeasures(t *testing.T) {
	sc := roundTrip(t, []model.TimeSignature{ts(4, 4), ts(6, 8)}, 2)

	assert := assert.New(t)
	require.Len(t, sc.Measures, 4)
	assert.Equal(Measure{Start: 0, TimeSignature: ts(4, 4)}, sc.Measures[0])
	assert.Equal(Measure{Start: 3840, TimeSignature: ts(4, 4)}, sc.Measures[1])
	assert.Equal(Measure{Start: 7680, TimeSignature: ts(6, 8)}, sc.Measures[2])
	assert.Equal(Measure{Start: 10560, TimeSignature: ts(6, 8)}, sc.Measures[3])
	assert.Equal([]int{4, 6}, sc.Numerators().Sorted())
}

func TestSixFourBeamsLikeThreeTwoNextToFourFour(t *testing.T) {
	sc := roundTrip(t, []model.TimeSignature{ts(4, 4), ts(6, 4)}, 1)
	rules, err := sc.Rules(&timesig.Deriver{}, false)
	require.NoError(t, err)

	require.Len(t, rules, 2)
	assert.Equal(t, model.Positions{0, 4, 8, 12}, rules[1].Rules.Split8)

	alone := roundTrip(t, []model.TimeSignature{ts(6, 4)}, 1)
	rules, err = alone.Rules(&timesig.Deriver{}, false)
	require.NoError(t, err)
	assert.Equal(t, model.Positions{0, 2, 4, 6, 8, 10, 12}, rules[0].Rules.Split8)
}

func TestMidMeasureChangeStartsNewMeasure(t *testing.T) {
	var track smf.Track
	track.Add(0, smf.MetaTimeSig(4, 4, 24, 8))
	track.Add(1920, smf.MetaTimeSig(3, 4, 24, 8))
	track.Close(2880)
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)
	require.NoError(t, s.Add(track))

	sc, err := FromSMF(s)
	require.NoError(t, err)
	assert.Equal(t, []Measure{
		{Start: 0, TimeSignature: ts(4, 4)},
		{Start: 1920, TimeSignature: ts(3, 4)},
	}, sc.Measures)
}

func TestRulesAbortOnUnknownDenominator(t *testing.T) {
	sc := New([]Measure{
		{Start: 0, TimeSignature: ts(4, 4)},
		{Start: 3840, TimeSignature: ts(3, 128)},
		{Start: 3930, TimeSignature: ts(4, 4)},
	})
	rules, err := sc.Rules(&timesig.Deriver{}, false)

	var fatal *timesig.FatalError
	require.True(t, errors.As(err, &fatal))
	assert.Equal(t, 1, fatal.Measure)
	assert.Contains(t, err.Error(), "measure 2")
	assert.Nil(t, rules)
}

func TestEmptyFileIsOneBarOfFourFour(t *testing.T) {
	sc := roundTrip(t, nil, 1)
	require.Len(t, sc.Measures, 1)
	assert.Equal(t, ts(4, 4), sc.Measures[0].TimeSignature)
}

func TestSampleRejectsUnstorableDenominators(t *testing.T) {
	_, err := sample.Create([]model.TimeSignature{ts(3, 7)}, 1)
	assert.Error(t, err)
	_, err = sample.Create([]model.TimeSignature{ts(4, 4)}, 0)
	assert.Error(t, err)
}
