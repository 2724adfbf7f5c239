package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Disclaimer is echoed with every analysis.
const Disclaimer = "Numerology is not science. Treat this as entertainment and reflective prompts, not factual claims. " +
	"We do not use gender in calculations unless a system explicitly defines it."

// BirthDate is a validated proleptic Gregorian calendar date.
type BirthDate struct {
	Year  int
	Month int
	Day   int
}

// String formats the date as YYYY-MM-DD.
func (d BirthDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Digits returns the date as the eight-digit string YYYYMMDD.
func (d BirthDate) Digits() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// AnalysisInput echoes what the caller asked for. Gender is carried verbatim
// and never read by any calculation.
type AnalysisInput struct {
	FullName    string  `json:"full_name"`
	DateOfBirth string  `json:"date_of_birth"`
	Gender      *string `json:"gender"`
	System      string  `json:"system"`
	TargetYear  int     `json:"target_year"`
}

// AnalysisResult is the immutable aggregate of one analysis.
type AnalysisResult struct {
	System     string        `json:"system"`
	Input      AnalysisInput `json:"input"`
	Numbers    Numbers       `json:"numbers"`
	Trace      Trace         `json:"trace"`
	Disclaimer string        `json:"disclaimer"`
}

// Numbers holds every derived value of an analysis.
type Numbers struct {
	LifePath          int               `json:"life_path"`
	Birthday          int               `json:"birthday"`
	Expression        int               `json:"expression"`
	SoulUrge          int               `json:"soul_urge"`
	Personality       int               `json:"personality"`
	Maturity          int               `json:"maturity"`
	Pinnacles         [4]int            `json:"pinnacles"`
	Challenges        [4]int            `json:"challenges"`
	TransitionAges    [4]int            `json:"transition_ages"`
	PersonalYear      int               `json:"personal_year"`
	LoShu             LoShuGrid         `json:"lo_shu"`
	LifePyramid       Pyramid           `json:"life_pyramid"`
	PinnaclesDetailed [4]PinnaclePeriod `json:"pinnacles_detailed"`
	KarmicLessons     []int             `json:"karmic_lessons"`
}

// Pyramid is the three-row structure built from reduced month, day and year.
type Pyramid struct {
	Base [3]int `json:"base"`
	Mid  [2]int `json:"mid"`
	Apex int    `json:"apex"`
}

// PinnaclePeriod pairs a pinnacle with its challenge and the age span it covers.
// AgeFrom is nil for the first period, which starts at birth.
type PinnaclePeriod struct {
	Index     int  `json:"index"`
	Number    int  `json:"number"`
	Challenge int  `json:"challenge"`
	AgeFrom   *int `json:"age_from"`
	AgeTo     int  `json:"age_to"`
}

// LoShuGrid counts occurrences of the digits 1-9. Index 0 holds digit 1.
type LoShuGrid [9]int

// Count returns the occurrences of digit d (1-9); other digits count 0.
func (g LoShuGrid) Count(d int) int {
	if d < 1 || d > 9 {
		return 0
	}
	return g[d-1]
}

// MarshalJSON renders the grid as {"1": n, ..., "9": n} in digit order.
func (g LoShuGrid) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `"%d":%d`, i+1, n)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (g *LoShuGrid) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*g = LoShuGrid{}
	for k, n := range raw {
		d, err := strconv.Atoi(k)
		if err != nil || d < 1 || d > 9 {
			return fmt.Errorf("lo shu grid: unexpected key %q", k)
		}
		g[d-1] = n
	}
	return nil
}
