package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type TimeSignature struct {
	Numerator   int `json:"numerator" yaml:"numerator"`
	Denominator int `json:"denominator" yaml:"denominator"`
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Numerator, ts.Denominator)
}

// Length is the measure length in whole notes.
func (ts TimeSignature) Length() float64 {
	return float64(ts.Numerator) / float64(ts.Denominator)
}

func ParseTimeSignature(s string) (TimeSignature, error) {
	num, den, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return TimeSignature{}, fmt.Errorf("time signature %q is not of the form N/D", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return TimeSignature{}, fmt.Errorf("bad numerator in %q: %w", s, err)
	}
	d, err := strconv.Atoi(strings.TrimSpace(den))
	if err != nil {
		return TimeSignature{}, fmt.Errorf("bad denominator in %q: %w", s, err)
	}
	if n <= 0 || d <= 0 {
		return TimeSignature{}, fmt.Errorf("time signature %q must be positive", s)
	}
	return TimeSignature{Numerator: n, Denominator: d}, nil
}

// NumeratorSet is a read-only snapshot of every time signature numerator in
// a score.
type NumeratorSet struct {
	set map[int]struct{}
}

func NewNumeratorSet(numerators ...int) NumeratorSet {
	set := make(map[int]struct{}, len(numerators))
	for _, n := range numerators {
		set[n] = struct{}{}
	}
	return NumeratorSet{set: set}
}

func (s NumeratorSet) Contains(n int) bool {
	_, ok := s.set[n]
	return ok
}

func (s NumeratorSet) Len() int {
	return len(s.set)
}

// Sorted returns the numerators in ascending order.
func (s NumeratorSet) Sorted() []int {
	res := make([]int, 0, len(s.set))
	for n := range s.set {
		res = append(res, n)
	}
	sort.Ints(res)
	return res
}
