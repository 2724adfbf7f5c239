// Package engine is the pure computation core of numerology analyses.
//
// Every function here is a deterministic function of its arguments and a
// compiled *models.RuleSet: no I/O, no clocks, no shared mutable state. The
// service layer resolves rule-sets and defaults before calling Analyze.
//
// Pipeline:
//
//	Decompose(dob) ──► LifePath, Birthday, Cycles, PersonalYear, LoShu
//	Classify(name) ──► Expression, SoulUrge, Personality, KarmicLessons
//	LifePath + Expression ──► Maturity
//
// Every pre-reduction operand passes through an optional *Recorder, which is
// the only source of trace output and karmic-debt hits.
package engine
