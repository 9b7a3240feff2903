package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNarrow(t *testing.T) {
	cases := []struct {
		beam, sub, want Treatment
	}{
		{Both, RestsOnly, RestsOnly},
		{Both, Both, Both},
		{NotesOnly, Both, NotesOnly},
		{NotesOnly, RestsOnly, None},
		{RestsOnly, Both, RestsOnly},
		{RestsOnly, NotesOnly, None},
		{None, Both, None},
	}
	for _, c := range cases {
		got := Narrow(c.beam, c.sub)
		assert.Equal(t, c.want, got, "%v narrows %v", c.beam, c.sub)
		assert.True(t, got.AtMost(c.beam))
		assert.True(t, got.AtMost(c.sub))
	}
}

func TestTreatmentLattice(t *testing.T) {
	assert := assert.New(t)
	assert.True(None.AtMost(RestsOnly))
	assert.True(RestsOnly.AtMost(Both))
	assert.False(RestsOnly.AtMost(NotesOnly))
	assert.False(Both.AtMost(NotesOnly))
	assert.True(Both.Rests() && Both.Notes())
	assert.False(NotesOnly.Rests())
}

func TestNarrowedLeavesDerivedDataAlone(t *testing.T) {
	r := BeamRuleSet{
		Split8:             Positions{0, 4},
		Beam:               NotesOnly,
		Sub8In16Treatment:  RestsOnly,
		Sub8In32Treatment:  Both,
		Sub16In32Treatment: NotesOnly,
	}
	n := r.Narrowed()

	assert := assert.New(t)
	assert.Equal(None, n.Sub8In16Treatment)
	assert.Equal(NotesOnly, n.Sub8In32Treatment)
	assert.Equal(NotesOnly, n.Sub16In32Treatment)
	assert.Equal(RestsOnly, r.Sub8In16Treatment)
	assert.Equal(r.Split8, n.Split8)
}

func TestTreatmentJSON(t *testing.T) {
	data, err := json.Marshal(BeamRuleSet{Beam: Both, Sub8In16Treatment: RestsOnly})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"beam":"both"`)
	assert.Contains(t, string(data), `"sub8in16Treatment":"rests"`)

	var tr Treatment
	require.NoError(t, json.Unmarshal([]byte(`"notes"`), &tr))
	assert.Equal(t, NotesOnly, tr)
	require.NoError(t, json.Unmarshal([]byte(`1`), &tr))
	assert.Equal(t, RestsOnly, tr)
	assert.Error(t, json.Unmarshal([]byte(`7`), &tr))
	assert.Error(t, json.Unmarshal([]byte(`"sometimes"`), &tr))
}

func TestTreatmentYAML(t *testing.T) {
	var v struct {
		T Treatment `yaml:"t"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("t: NotesOnly\n"), &v))
	assert.Equal(t, NotesOnly, v.T)
}

func TestApply(t *testing.T) {
	r := BeamRuleSet{Split8: Positions{0, 4, 8}, Split16: Positions{0, 16}}
	src := Positions{2}
	out := r.Apply(Sequences{Split8: src})
	src[0] = 99

	assert := assert.New(t)
	assert.Equal(Positions{2}, out.Split8)
	assert.Equal(Positions{0, 16}, out.Split16)
	assert.Equal(Positions{0, 4, 8}, r.Split8)
}

func TestParseTimeSignature(t *testing.T) {
	ts, err := ParseTimeSignature(" 6/8 ")
	require.NoError(t, err)
	assert.Equal(t, TimeSignature{Numerator: 6, Denominator: 8}, ts)
	assert.Equal(t, "6/8", ts.String())
	assert.Equal(t, 0.75, ts.Length())

	for _, bad := range []string{"6", "a/8", "6/b", "0/4", "3/-4"} {
		_, err := ParseTimeSignature(bad)
		assert.Error(t, err, bad)
	}
}

func TestNumeratorSet(t *testing.T) {
	s := NewNumeratorSet(6, 4, 4)

	assert := assert.New(t)
	assert.True(s.Contains(4))
	assert.False(s.Contains(3))
	assert.Equal(2, s.Len())
	assert.Equal([]int{4, 6}, s.Sorted())
	assert.False(NumeratorSet{}.Contains(4))
}
