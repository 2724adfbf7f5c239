package engine

import (
	"fmt"

	"numerus/internal/numerology/models"
)

// Cycles holds the period-based derivations of a birth date.
type Cycles struct {
	Pinnacles      [4]int
	Challenges     [4]int
	TransitionAges [4]int
	Pyramid        models.Pyramid
	Periods        [4]models.PinnaclePeriod
}

// ComputeCycles derives pinnacles, challenges, transition ages and the pyramid.
// Month, day and year are each reduced on their own before being combined.
func ComputeCycles(d models.BirthDate, lifePath int, rs *models.RuleSet, rec *Recorder) Cycles {
	rm := Reduce(d.Month, rs)
	rd := Reduce(d.Day, rs)
	ry := Reduce(d.Year, rs)
	rec.recordReducedDate(rm, rd, ry)

	var c Cycles

	p1Raw := rm + rd
	rec.raw(siteP1, p1Raw)
	p2Raw := rd + ry
	rec.raw(siteP2, p2Raw)
	c.Pinnacles[0] = Reduce(p1Raw, rs)
	c.Pinnacles[1] = Reduce(p2Raw, rs)
	// The third pinnacle combines the two derived pinnacles, not rm/rd/ry.
	p3Raw := c.Pinnacles[0] + c.Pinnacles[1]
	rec.raw(siteP3, p3Raw)
	c.Pinnacles[2] = Reduce(p3Raw, rs)
	p4Raw := rm + ry
	rec.raw(siteP4, p4Raw)
	c.Pinnacles[3] = Reduce(p4Raw, rs)

	c1 := absInt(rm - rd)
	c2 := absInt(rd - ry)
	c3 := absInt(c1 - c2)
	c4 := absInt(rm - ry)
	for i, raw := range [4]int{c1, c2, c3, c4} {
		rec.raw(challengeSites[i], raw)
		c.Challenges[i] = Reduce(raw, rs)
	}

	c.TransitionAges = TransitionAges(lifePath)

	mid0 := Reduce(rm+rd, rs)
	mid1 := Reduce(rd+ry, rs)
	c.Pyramid = models.Pyramid{
		Base: [3]int{rm, rd, ry},
		Mid:  [2]int{mid0, mid1},
		Apex: Reduce(mid0+mid1, rs),
	}

	for i := range c.Periods {
		p := models.PinnaclePeriod{
			Index:     i + 1,
			Number:    c.Pinnacles[i],
			Challenge: c.Challenges[i],
			AgeTo:     c.TransitionAges[i],
		}
		if i > 0 {
			from := c.TransitionAges[i-1]
			p.AgeFrom = &from
		}
		c.Periods[i] = p
	}
	return c
}

var challengeSites = [4]string{siteC1, siteC2, siteC3, siteC4}

// TransitionAges returns the four period boundaries: 36 - lifePath, then
// every nine years.
func TransitionAges(lifePath int) [4]int {
	first := 36 - lifePath
	return [4]int{first, first + 9, first + 18, first + 27}
}

// PersonalYear applies the life-path formula with targetYear in place of the
// birth year.
func PersonalYear(d models.BirthDate, targetYear int, rs *models.RuleSet, rec *Recorder) int {
	total := digitSumString(fmt.Sprintf("%04d%02d%02d", absInt(targetYear), d.Month, d.Day))
	rec.recordPersonalYear(total)
	return Reduce(total, rs)
}

// LoShu counts each non-zero digit of the raw date string.
func LoShu(raw string) models.LoShuGrid {
	var g models.LoShuGrid
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '1' && c <= '9' {
			g[c-'1']++
		}
	}
	return g
}
