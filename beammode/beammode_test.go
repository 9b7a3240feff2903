package beammode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertTable(t *testing.T) {
	want := map[int]int{0: 0, 1: 2, 2: 5, 3: 6, 4: 1, 5: 3, 6: 4}
	for in, out := range want {
		assert.Equal(t, out, Convert(in), "legacy %d", in)
	}
}

func TestConvertUnknownIsAuto(t *testing.T) {
	for _, in := range []int{7, 8, 100, -1} {
		assert.Equal(t, 0, Convert(in), "legacy %d", in)
	}
}

func TestConvertIsStable(t *testing.T) {
	for in := -2; in < 10; in++ {
		assert.Equal(t, Convert(in), Convert(in))
	}
}

func TestConvertModeNames(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Mid, ConvertMode(LegacyMid))
	assert.Equal("no-beam", ConvertMode(LegacyNoBeam).String())
	assert.Equal("begin16", ConvertMode(LegacyBegin32).String())
	assert.Equal("Mode(9)", Mode(9).String())
	assert.Equal("Legacy(-1)", Legacy(-1).String())
}
