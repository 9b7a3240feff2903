package sample

import (
	"fmt"
	"math/bits"

	"github.com/jsphweid/rebeam/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

const Resolution = smf.MetricTicks(960)

// MeasureTicks is the length of one measure of ts at the given resolution.
func MeasureTicks(res smf.MetricTicks, ts model.TimeSignature) uint64 {
	return uint64(res.Ticks4th()) * 4 * uint64(ts.Numerator) / uint64(ts.Denominator)
}

// Create builds a single-track SMF holding measuresEach measures of every
// signature in order. MIDI can only store power-of-two denominators.
func Create(signatures []model.TimeSignature, measuresEach int) (*smf.SMF, error) {
	if measuresEach < 1 {
		return nil, fmt.Errorf("need at least one measure per time signature")
	}
	res := smf.New()
	res.TimeFormat = Resolution

	var track smf.Track
	var delta uint64
	for _, ts := range signatures {
		if ts.Numerator < 1 || ts.Numerator > 255 {
			return nil, fmt.Errorf("numerator of %v does not fit in a MIDI file", ts)
		}
		if ts.Denominator < 1 || ts.Denominator > 128 || bits.OnesCount(uint(ts.Denominator)) != 1 {
			return nil, fmt.Errorf("denominator of %v is not a power of two MIDI can store", ts)
		}
		track.Add(uint32(delta), smf.MetaTimeSig(uint8(ts.Numerator), uint8(ts.Denominator), 24, 8))
		delta = MeasureTicks(Resolution, ts) * uint64(measuresEach)
	}
	track.Close(uint32(delta))

	if err := res.Add(track); err != nil {
		return nil, fmt.Errorf("could not add track: %w", err)
	}
	return res, nil
}
