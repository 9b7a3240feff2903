package model

// Positions are elapsed counts of one subdivision (eighths, sixteenths or
// thirty-seconds) since the start of a measure or tuplet. They are float64
// because short denominators put splits mid-unit, e.g. 3/16 splits its
// eighth beam at 1.5.
type Positions = []float64

// Units per whole note for each beaming level.
const (
	EighthUnits       = 8
	SixteenthUnits    = 16
	ThirtySecondUnits = 32
)

type BeamRuleSet struct {
	// beam breaks after these counts at each level
	Split8  Positions `json:"split8" yaml:"split8"`
	Split16 Positions `json:"split16" yaml:"split16"`
	Split32 Positions `json:"split32" yaml:"split32"`

	// where coarser subdivisions are shown inside finer beams
	Sub8In16  Positions `json:"sub8in16" yaml:"sub8in16"`
	Sub8In32  Positions `json:"sub8in32" yaml:"sub8in32"`
	Sub16In32 Positions `json:"sub16in32" yaml:"sub16in32"`

	Beam               Treatment `json:"beam" yaml:"beam"`
	Sub8In16Treatment  Treatment `json:"sub8in16Treatment" yaml:"sub8in16Treatment"`
	Sub8In32Treatment  Treatment `json:"sub8in32Treatment" yaml:"sub8in32Treatment"`
	Sub16In32Treatment Treatment `json:"sub16in32Treatment" yaml:"sub16in32Treatment"`
}

// Narrowed returns a copy whose sub-treatments never exceed Beam. Derivers
// never call this themselves; callers opt in.
func (r BeamRuleSet) Narrowed() BeamRuleSet {
	r.Sub8In16Treatment = Narrow(r.Beam, r.Sub8In16Treatment)
	r.Sub8In32Treatment = Narrow(r.Beam, r.Sub8In32Treatment)
	r.Sub16In32Treatment = Narrow(r.Beam, r.Sub16In32Treatment)
	return r
}

// Apply replaces every sequence that s defines.
func (r BeamRuleSet) Apply(s Sequences) BeamRuleSet {
	pick := func(dst *Positions, src Positions) {
		if src != nil {
			*dst = append(Positions{}, src...)
		}
	}
	pick(&r.Split8, s.Split8)
	pick(&r.Split16, s.Split16)
	pick(&r.Split32, s.Split32)
	pick(&r.Sub8In16, s.Sub8In16)
	pick(&r.Sub8In32, s.Sub8In32)
	pick(&r.Sub16In32, s.Sub16In32)
	return r
}

type TupletBeamRuleSet struct {
	BeamRuleSet `yaml:",inline"`

	// hide the bracket when the beams already show the grouping
	SimplifyBrackets bool `json:"simplifyBrackets" yaml:"simplifyBrackets"`
	// not configurable yet
	BeamAcrossBoundary bool `json:"beamAcrossBoundary" yaml:"beamAcrossBoundary"`
	BeamWithinTuplet   bool `json:"beamWithinTuplet" yaml:"beamWithinTuplet"`
}

func (r TupletBeamRuleSet) Narrowed() TupletBeamRuleSet {
	r.BeamRuleSet = r.BeamRuleSet.Narrowed()
	return r
}

// Sequences is a user-supplied replacement for some or all of a rule set's
// sequences. A nil field keeps the derived value.
type Sequences struct {
	Split8    Positions `json:"split8,omitempty" yaml:"split8,omitempty"`
	Split16   Positions `json:"split16,omitempty" yaml:"split16,omitempty"`
	Split32   Positions `json:"split32,omitempty" yaml:"split32,omitempty"`
	Sub8In16  Positions `json:"sub8in16,omitempty" yaml:"sub8in16,omitempty"`
	Sub8In32  Positions `json:"sub8in32,omitempty" yaml:"sub8in32,omitempty"`
	Sub16In32 Positions `json:"sub16in32,omitempty" yaml:"sub16in32,omitempty"`
}

func (s Sequences) Empty() bool {
	return s.Split8 == nil && s.Split16 == nil && s.Split32 == nil &&
		s.Sub8In16 == nil && s.Sub8In32 == nil && s.Sub16In32 == nil
}
