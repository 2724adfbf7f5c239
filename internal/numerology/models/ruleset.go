package models

import (
	"fmt"
	"slices"
)

// NormalizationMode selects how raw names are folded before classification.
type NormalizationMode int

const (
	NormalizationASCIIFold NormalizationMode = iota + 1
	NormalizationNone
)

// ParseNormalizationMode accepts the stored spellings. "ascii" is the legacy
// name of ascii_fold.
func ParseNormalizationMode(s string) (NormalizationMode, error) {
	switch s {
	case "ascii_fold", "ascii":
		return NormalizationASCIIFold, nil
	case "none":
		return NormalizationNone, nil
	default:
		return 0, fmt.Errorf("unknown normalization mode %q", s)
	}
}

func (m NormalizationMode) String() string {
	switch m {
	case NormalizationASCIIFold:
		return "ascii_fold"
	case NormalizationNone:
		return "none"
	default:
		return "unknown"
	}
}

// ReductionMethod selects the digit-reduction algorithm.
type ReductionMethod int

const (
	ReductionClassic ReductionMethod = iota + 1
	ReductionDigitalRoot
)

func ParseReductionMethod(s string) (ReductionMethod, error) {
	switch s {
	case "classic":
		return ReductionClassic, nil
	case "digital_root":
		return ReductionDigitalRoot, nil
	default:
		return 0, fmt.Errorf("unknown reduction method %q", s)
	}
}

func (m ReductionMethod) String() string {
	switch m {
	case ReductionClassic:
		return "classic"
	case ReductionDigitalRoot:
		return "digital_root"
	default:
		return "unknown"
	}
}

// RuleSetParams carries already-validated values into NewRuleSet.
type RuleSetParams struct {
	ID              string
	Name            string
	CharMap         map[rune]int
	MasterNumbers   []int
	KeepMaster      bool
	ReduceMaster    bool
	Vowels          []rune
	IncludeYAsVowel bool
	Normalization   NormalizationMode
	Reduction       ReductionMethod
}

// RuleSet is the compiled, immutable letter-to-value mapping and reduction
// policy of one numerology system.
//
// Invariants:
//   - every character map key is a single uppercase rune with a positive value
//   - the value is never mutated after construction; it is safe to share
//     across goroutines and to cache
type RuleSet struct {
	id              string
	name            string
	charMap         map[rune]int
	masters         map[int]struct{}
	keepMaster      bool
	reduceMaster    bool
	vowels          map[rune]struct{}
	includeYAsVowel bool
	normalization   NormalizationMode
	reduction       ReductionMethod
}

// NewRuleSet copies params into an immutable RuleSet.
func NewRuleSet(p RuleSetParams) *RuleSet {
	rs := &RuleSet{
		id:              p.ID,
		name:            p.Name,
		charMap:         make(map[rune]int, len(p.CharMap)),
		masters:         make(map[int]struct{}, len(p.MasterNumbers)),
		keepMaster:      p.KeepMaster,
		reduceMaster:    p.ReduceMaster,
		vowels:          make(map[rune]struct{}, len(p.Vowels)),
		includeYAsVowel: p.IncludeYAsVowel,
		normalization:   p.Normalization,
		reduction:       p.Reduction,
	}
	for r, v := range p.CharMap {
		rs.charMap[r] = v
	}
	for _, n := range p.MasterNumbers {
		rs.masters[n] = struct{}{}
	}
	for _, r := range p.Vowels {
		rs.vowels[r] = struct{}{}
	}
	return rs
}

func (rs *RuleSet) ID() string { return rs.id }
func (rs *RuleSet) Name() string { return rs.name }

// Value returns the mapped value of an uppercase letter.
func (rs *RuleSet) Value(r rune) (int, bool) {
	v, ok := rs.charMap[r]
	return v, ok
}

// Maps reports whether the letter has a character map entry.
func (rs *RuleSet) Maps(r rune) bool {
	_, ok := rs.charMap[r]
	return ok
}

// IsMaster reports whether n is a configured master number.
func (rs *RuleSet) IsMaster(n int) bool {
	_, ok := rs.masters[n]
	return ok
}

// PreservesMasters reports whether reduction stops at master numbers:
// keep_master is set and reduce_master is not.
func (rs *RuleSet) PreservesMasters() bool {
	return rs.keepMaster && !rs.reduceMaster
}

func (rs *RuleSet) KeepMaster() bool { return rs.keepMaster }
func (rs *RuleSet) ReduceMaster() bool { return rs.reduceMaster }

// IsVowelLetter applies the generic vowel-set test. The letter Y is decided
// by IncludeYAsVowel instead; see the engine classifier.
func (rs *RuleSet) IsVowelLetter(r rune) bool {
	_, ok := rs.vowels[r]
	return ok
}

func (rs *RuleSet) IncludeYAsVowel() bool { return rs.includeYAsVowel }
func (rs *RuleSet) Normalization() NormalizationMode { return rs.normalization }
func (rs *RuleSet) Reduction() ReductionMethod { return rs.reduction }

// MasterNumbers returns the configured master numbers in ascending order.
func (rs *RuleSet) MasterNumbers() []int {
	out := make([]int, 0, len(rs.masters))
	for n := range rs.masters {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
