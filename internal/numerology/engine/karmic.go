package engine

import "numerus/internal/numerology/models"

// KarmicLessons returns the digits 1-9 that no letter of the name maps to, in
// ascending order. It is empty, never nil, when every digit is present.
//
// Karmic debts are not computed here: they are detected from raw values by
// the Recorder, see Recorder.DebtHits.
func KarmicLessons(c ClassifiedName, rs *models.RuleSet) []int {
	var seen [10]bool
	for _, r := range c.all {
		if v, ok := rs.Value(r); ok && v >= 1 && v <= 9 {
			seen[v] = true
		}
	}
	lessons := []int{}
	for d := 1; d <= 9; d++ {
		if !seen[d] {
			lessons = append(lessons, d)
		}
	}
	return lessons
}
