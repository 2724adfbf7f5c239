package engine

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"numerus/internal/numerology/models"
)

// ClassifiedName is a name reduced to the letters a rule-set can value,
// split into vowels and consonants. It is immutable once built: accessors
// return copies.
type ClassifiedName struct {
	vowels     []rune
	consonants []rune
	all        []rune
}

func (c ClassifiedName) Vowels() []rune { return slices.Clone(c.vowels) }
func (c ClassifiedName) Consonants() []rune { return slices.Clone(c.consonants) }
func (c ClassifiedName) All() []rune { return slices.Clone(c.all) }

// IsEmpty reports whether no letter of the name survived classification.
func (c ClassifiedName) IsEmpty() bool {
	return len(c.all) == 0
}

// Classify normalizes a raw name under rs and splits it into vowels,
// consonants and all letters, preserving order.
//
// Steps: trim; fold diacritics when the rule-set asks for ascii_fold;
// uppercase; keep only characters of the rule-set's alphabet (its character
// map keys), silently dropping digits, punctuation, spaces and unmapped
// letters; classify each letter. Y follows include_y_as_vowel rather than
// the vowel set.
func Classify(name string, rs *models.RuleSet) ClassifiedName {
	s := strings.TrimSpace(name)
	if rs.Normalization() == models.NormalizationASCIIFold {
		s = foldDiacritics(s)
	}
	s = strings.ToUpper(s)

	var c ClassifiedName
	for _, r := range s {
		if !rs.Maps(r) {
			continue
		}
		c.all = append(c.all, r)
		if isVowel(r, rs) {
			c.vowels = append(c.vowels, r)
		} else {
			c.consonants = append(c.consonants, r)
		}
	}
	return c
}

func isVowel(r rune, rs *models.RuleSet) bool {
	if r == 'Y' {
		return rs.IncludeYAsVowel()
	}
	return rs.IsVowelLetter(r)
}

// foldDiacritics decomposes s (NFKD) and strips combining marks, so "Trần"
// becomes "Tran". Letters without a decomposition (Đ, Ø) pass through.
func foldDiacritics(s string) string {
	// transform.Chain keeps state between calls, so build one per use.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// letterSum totals the mapped values of letters; unmapped letters add 0.
func letterSum(letters []rune, rs *models.RuleSet) int {
	total := 0
	for _, r := range letters {
		if v, ok := rs.Value(r); ok {
			total += v
		}
	}
	return total
}

func letterStrings(letters []rune) []string {
	out := make([]string, len(letters))
	for i, r := range letters {
		out[i] = string(r)
	}
	return out
}
