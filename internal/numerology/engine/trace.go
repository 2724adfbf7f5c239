package engine

import (
	"slices"

	"numerus/internal/numerology/models"
)

// Pre-reduction sites scanned for karmic debt, in the order they are recorded
// and reported. The personal-year total depends on the target year, not on the
// person, so it is traced but never scanned.
const (
	siteLifePath     = "life_path_total"
	siteBirthday     = "birthday_day"
	siteExpression   = "expression_total"
	siteSoulUrge     = "soul_urge_total"
	sitePersonality  = "personality_total"
	siteMaturity     = "maturity_total"
	siteP1           = "p1_raw"
	siteP2           = "p2_raw"
	siteP3           = "p3_raw"
	siteP4           = "p4_raw"
	siteC1           = "c1_raw"
	siteC2           = "c2_raw"
	siteC3           = "c3_raw"
	siteC4           = "c4_raw"
)

var karmicDebtNumbers = []int{13, 14, 16, 19}

// KarmicDebtNumbers returns the alert set compared against raw values.
func KarmicDebtNumbers() []int {
	return slices.Clone(karmicDebtNumbers)
}

// IsKarmicDebt reports whether a raw value is a karmic-debt number.
func IsKarmicDebt(n int) bool {
	return slices.Contains(karmicDebtNumbers, n)
}

type site struct {
	label string
	value int
}

// Recorder captures pre-reduction values as calculators produce them. A nil
// *Recorder is valid and records nothing, so calculators call it
// unconditionally and never read from it.
type Recorder struct {
	sites        []site
	personalYear int
	date   models.DateTrace
	name   models.NameTrace
	cycles models.CycleTrace
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) raw(label string, value int) {
	if r == nil {
		return
	}
	r.sites = append(r.sites, site{label: label, value: value})
}

func (r *Recorder) recordPersonalYear(total int) {
	if r == nil {
		return
	}
	r.personalYear = total
}

func (r *Recorder) recordDate(d models.BirthDate, sum int) {
	if r == nil {
		return
	}
	r.date = models.DateTrace{Year: d.Year, Month: d.Month, Day: d.Day, SumAllDigits: sum}
}

func (r *Recorder) recordName(c ClassifiedName, rs *models.RuleSet) {
	if r == nil {
		return
	}
	r.name = models.NameTrace{
		VowelsSum:         letterSum(c.vowels, rs),
		ConsonantsSum:     letterSum(c.consonants, rs),
		AllSum:            letterSum(c.all, rs),
		VowelsLetters:     letterStrings(c.vowels),
		ConsonantsLetters: letterStrings(c.consonants),
		AllLetters:        letterStrings(c.all),
	}
}

func (r *Recorder) recordReducedDate(rm, rd, ry int) {
	if r == nil {
		return
	}
	r.cycles.RM, r.cycles.RD, r.cycles.RY = rm, rd, ry
}

// Value returns the last value recorded at label.
func (r *Recorder) Value(label string) (int, bool) {
	if r == nil {
		return 0, false
	}
	for i := len(r.sites) - 1; i >= 0; i-- {
		if r.sites[i].label == label {
			return r.sites[i].value, true
		}
	}
	return 0, false
}

// DebtHits lists every recorded site whose raw value is a karmic-debt number,
// in recording order.
func (r *Recorder) DebtHits() []models.DebtHit {
	hits := []models.DebtHit{}
	if r == nil {
		return hits
	}
	for _, s := range r.sites {
		if IsKarmicDebt(s.value) {
			hits = append(hits, models.DebtHit{Where: s.label, Value: s.value})
		}
	}
	return hits
}

// Trace assembles the recorded values into an enabled models.Trace.
func (r *Recorder) Trace() models.Trace {
	if r == nil {
		return models.Trace{}
	}
	v := func(label string) int {
		n, _ := r.Value(label)
		return n
	}
	cycles := r.cycles
	cycles.P1Raw, cycles.P2Raw, cycles.P3Raw, cycles.P4Raw = v(siteP1), v(siteP2), v(siteP3), v(siteP4)
	cycles.C1Raw, cycles.C2Raw, cycles.C3Raw, cycles.C4Raw = v(siteC1), v(siteC2), v(siteC3), v(siteC4)

	return models.Trace{
		Enabled: true,
		DOB:     r.date,
		Name:    r.name,
		PreReduction: models.PreReduction{
			LifePathTotal:     v(siteLifePath),
			BirthdayDay:       v(siteBirthday),
			ExpressionTotal:   v(siteExpression),
			SoulUrgeTotal:     v(siteSoulUrge),
			PersonalityTotal:  v(sitePersonality),
			MaturityTotal:     v(siteMaturity),
			PersonalYearTotal: r.personalYear,
		},
		PinnaclesRaw:   cycles,
		KarmicDebtHits: r.DebtHits(),
	}
}
