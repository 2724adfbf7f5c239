package engine

import "numerus/internal/numerology/models"

type ruleSetOption func(*models.RuleSetParams)

func withKeepMaster(v bool) ruleSetOption {
	return func(p *models.RuleSetParams) { p.KeepMaster = v }
}

func withReduceMaster(v bool) ruleSetOption {
	return func(p *models.RuleSetParams) { p.ReduceMaster = v }
}

func withYAsVowel(v bool) ruleSetOption {
	return func(p *models.RuleSetParams) { p.IncludeYAsVowel = v }
}

func withNormalization(m models.NormalizationMode) ruleSetOption {
	return func(p *models.RuleSetParams) { p.Normalization = m }
}

func withReduction(m models.ReductionMethod) ruleSetOption {
	return func(p *models.RuleSetParams) { p.Reduction = m }
}

// pythagorean builds the classic A=1..I=9 cycle over the Latin alphabet.
func pythagorean(opts ...ruleSetOption) *models.RuleSet {
	charMap := make(map[rune]int, 26)
	for i, r := range "ABCDEFGHIJKLMNOPQRSTUVWXYZ" {
		charMap[r] = i%9 + 1
	}
	p := models.RuleSetParams{
		ID:              "pythagorean",
		Name:            "Pythagorean",
		CharMap:         charMap,
		MasterNumbers:   []int{11, 22, 33},
		KeepMaster:      true,
		Vowels:          []rune("AEIOU"),
		IncludeYAsVowel: true,
		Normalization:   models.NormalizationASCIIFold,
		Reduction:       models.ReductionClassic,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return models.NewRuleSet(p)
}

// greek builds a minimal isopsephy map covering the test names.
func greek() *models.RuleSet {
	return models.NewRuleSet(models.RuleSetParams{
		ID:   "greek_isopsephy",
		Name: "Greek Isopsephy",
		CharMap: map[rune]int{
			'Α': 1, 'Ε': 5, 'Η': 8, 'Ι': 10, 'Ν': 50, 'Ο': 70, 'Σ': 200, 'Υ': 400, 'Ω': 800,
		},
		MasterNumbers: []int{11, 22, 33},
		KeepMaster:    true,
		Vowels:        []rune("ΑΕΗΙΟΥΩ"),
		Normalization: models.NormalizationASCIIFold,
		Reduction:     models.ReductionClassic,
	})
}
