package model

// MeasureRules is the rule set derived for one measure of a score.
type MeasureRules struct {
	// 0-based
	Index         int
	TimeSignature TimeSignature
	Rules         BeamRuleSet
}

// RuleTable holds every measure's rules for one MIDI file.
type RuleTable struct {
	FileNum  uint32
	Path     string
	Measures []MeasureRules
}

type FileNumToMidiPath = map[uint32]string
