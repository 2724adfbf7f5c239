package engine

import (
	"strings"

	"numerus/internal/numerology/models"
)

// Input is a fully resolved analysis request: the rule-set is loaded and the
// target year is already defaulted by the caller.
type Input struct {
	FullName    string
	DateOfBirth string
	Gender      *string
	TargetYear  int
	Trace       bool
}

// Analyze validates the date and computes the full result under rs.
//
// Date validation is the only failure path; everything after it is total.
// Enabling the trace never changes Numbers: the recorder only observes.
func Analyze(in Input, rs *models.RuleSet) (*models.AnalysisResult, error) {
	dob := strings.TrimSpace(in.DateOfBirth)
	date, err := Decompose(dob)
	if err != nil {
		return nil, err
	}

	var rec *Recorder
	if in.Trace {
		rec = NewRecorder()
	}

	name := Classify(in.FullName, rs)
	core := ComputeCore(date, name, rs, rec)
	personalYear := PersonalYear(date, in.TargetYear, rs, rec)
	cycles := ComputeCycles(date, core.LifePath, rs, rec)

	return &models.AnalysisResult{
		System: rs.Name(),
		Input: models.AnalysisInput{
			FullName:    in.FullName,
			DateOfBirth: dob,
			Gender:      in.Gender,
			System:      rs.ID(),
			TargetYear:  in.TargetYear,
		},
		Numbers: models.Numbers{
			LifePath:          core.LifePath,
			Birthday:          core.Birthday,
			Expression:        core.Expression,
			SoulUrge:          core.SoulUrge,
			Personality:       core.Personality,
			Maturity:          core.Maturity,
			Pinnacles:         cycles.Pinnacles,
			Challenges:        cycles.Challenges,
			TransitionAges:    cycles.TransitionAges,
			PersonalYear:      personalYear,
			LoShu:             LoShu(dob),
			LifePyramid:       cycles.Pyramid,
			PinnaclesDetailed: cycles.Periods,
			KarmicLessons:     KarmicLessons(name, rs),
		},
		Trace:      rec.Trace(),
		Disclaimer: models.Disclaimer,
	}, nil
}
