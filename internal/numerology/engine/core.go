package engine

import "numerus/internal/numerology/models"

// CoreNumbers are the six numbers derived directly from the name and date.
type CoreNumbers struct {
	LifePath    int
	Birthday    int
	Expression  int
	SoulUrge    int
	Personality int
	Maturity    int
}

// LifePath reduces the sum of every digit of YYYYMMDD.
func LifePath(d models.BirthDate, rs *models.RuleSet, rec *Recorder) int {
	total := digitSumString(d.Digits())
	rec.recordDate(d, total)
	rec.raw(siteLifePath, total)
	return Reduce(total, rs)
}

// Birthday reduces the day of month.
func Birthday(d models.BirthDate, rs *models.RuleSet, rec *Recorder) int {
	rec.raw(siteBirthday, d.Day)
	return Reduce(d.Day, rs)
}

// Expression reduces the sum over all classified letters.
func Expression(c ClassifiedName, rs *models.RuleSet, rec *Recorder) int {
	total := letterSum(c.all, rs)
	rec.raw(siteExpression, total)
	return Reduce(total, rs)
}

// SoulUrge reduces the sum over vowels only.
func SoulUrge(c ClassifiedName, rs *models.RuleSet, rec *Recorder) int {
	total := letterSum(c.vowels, rs)
	rec.raw(siteSoulUrge, total)
	return Reduce(total, rs)
}

// Personality reduces the sum over consonants only.
func Personality(c ClassifiedName, rs *models.RuleSet, rec *Recorder) int {
	total := letterSum(c.consonants, rs)
	rec.raw(sitePersonality, total)
	return Reduce(total, rs)
}

// Maturity is a second-order reduction of the already reduced life path and
// expression numbers.
func Maturity(lifePath, expression int, rs *models.RuleSet, rec *Recorder) int {
	total := lifePath + expression
	rec.raw(siteMaturity, total)
	return Reduce(total, rs)
}

// ComputeCore derives the six core numbers in a fixed order.
func ComputeCore(d models.BirthDate, c ClassifiedName, rs *models.RuleSet, rec *Recorder) CoreNumbers {
	rec.recordName(c, rs)
	var n CoreNumbers
	n.LifePath = LifePath(d, rs, rec)
	n.Birthday = Birthday(d, rs, rec)
	n.Expression = Expression(c, rs, rec)
	n.SoulUrge = SoulUrge(c, rs, rec)
	n.Personality = Personality(c, rs, rec)
	n.Maturity = Maturity(n.LifePath, n.Expression, rs, rec)
	return n
}
