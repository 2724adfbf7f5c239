package models

import "encoding/json"

// Trace exposes every pre-reduction quantity of an analysis. The zero value is
// a disabled trace and serializes as {"enabled": false}.
type Trace struct {
	Enabled        bool         `json:"enabled"`
	DOB            DateTrace    `json:"dob"`
	Name           NameTrace    `json:"name"`
	PreReduction   PreReduction `json:"pre_reduction"`
	PinnaclesRaw   CycleTrace   `json:"pinnacles_raw"`
	KarmicDebtHits []DebtHit    `json:"karmic_debt_hits"`
}

type DateTrace struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	Day          int `json:"day"`
	SumAllDigits int `json:"sum_all_digits"`
}

type NameTrace struct {
	VowelsSum         int      `json:"vowels_sum"`
	ConsonantsSum     int      `json:"consonants_sum"`
	AllSum            int      `json:"all_sum"`
	VowelsLetters     []string `json:"vowels_letters"`
	ConsonantsLetters []string `json:"consonants_letters"`
	AllLetters        []string `json:"all_letters"`
}

// PreReduction holds the operand handed to the reducer for each core number.
type PreReduction struct {
	LifePathTotal     int `json:"life_path_total"`
	BirthdayDay       int `json:"birthday_day"`
	ExpressionTotal   int `json:"expression_total"`
	SoulUrgeTotal     int `json:"soul_urge_total"`
	PersonalityTotal  int `json:"personality_total"`
	MaturityTotal     int `json:"maturity_total"`
	PersonalYearTotal int `json:"personal_year_total"`
}

// CycleTrace holds the reduced month/day/year and the raw pinnacle and
// challenge operands.
type CycleTrace struct {
	RM    int `json:"rm"`
	RD    int `json:"rd"`
	RY    int `json:"ry"`
	P1Raw int `json:"p1_raw"`
	P2Raw int `json:"p2_raw"`
	P3Raw int `json:"p3_raw"`
	P4Raw int `json:"p4_raw"`
	C1Raw int `json:"c1_raw"`
	C2Raw int `json:"c2_raw"`
	C3Raw int `json:"c3_raw"`
	C4Raw int `json:"c4_raw"`
}

// DebtHit is a site where a raw value equalled a karmic-debt number.
type DebtHit struct {
	Where string `json:"where"`
	Value int    `json:"value"`
}

type traceAlias Trace

func (t Trace) MarshalJSON() ([]byte, error) {
	if !t.Enabled {
		return []byte(`{"enabled":false}`), nil
	}
	return json.Marshal(traceAlias(t))
}
