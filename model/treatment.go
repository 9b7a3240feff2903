package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Treatment says which note categories a beam rule applies to. The numeric
// values are a bitmask (rests = 1, notes = 2) so the lattice meet is a
// bitwise and.
type Treatment uint8

const (
	None      Treatment = 0
	RestsOnly Treatment = 1
	NotesOnly Treatment = 2
	Both      Treatment = 3
)

var treatmentNames = map[Treatment]string{
	None:      "none",
	RestsOnly: "rests",
	NotesOnly: "notes",
	Both:      "both",
}

func (t Treatment) String() string {
	if name, ok := treatmentNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Treatment(%d)", uint8(t))
}

func (t Treatment) Valid() bool {
	return t <= Both
}

func (t Treatment) Rests() bool {
	return t&RestsOnly != 0
}

func (t Treatment) Notes() bool {
	return t&NotesOnly != 0
}

// AtMost reports whether t is no more permissive than other.
func (t Treatment) AtMost(other Treatment) bool {
	return t&other == t
}

// Narrow clips sub so it never applies to a category that beam excludes.
func Narrow(beam Treatment, sub Treatment) Treatment {
	return beam & sub
}

func ParseTreatment(s string) (Treatment, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range treatmentNames {
		if n == name {
			return t, nil
		}
	}
	switch name {
	case "restsonly":
		return RestsOnly, nil
	case "notesonly":
		return NotesOnly, nil
	}
	return None, fmt.Errorf("unknown treatment %q", s)
}

func (t Treatment) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Treatment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseTreatment(s)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}
	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("treatment must be a name or 0-3: %w", err)
	}
	if !Treatment(n).Valid() {
		return fmt.Errorf("treatment %d out of range", n)
	}
	*t = Treatment(n)
	return nil
}

func (t Treatment) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *Treatment) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseTreatment(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
