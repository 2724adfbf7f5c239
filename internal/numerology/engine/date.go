package engine

import (
	"regexp"
	"strconv"

	"numerus/internal/numerology/models"
)

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Decompose parses "YYYY-MM-DD" into a BirthDate. It fails with
// *models.InvalidDateError unless the string has exactly four, two and two
// digits and names a real proleptic Gregorian date.
func Decompose(s string) (models.BirthDate, error) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return models.BirthDate{}, &models.InvalidDateError{Value: s, Reason: "expected YYYY-MM-DD"}
	}
	// The pattern guarantees short ASCII digit runs, so Atoi cannot fail.
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	if year < 1 {
		return models.BirthDate{}, &models.InvalidDateError{Value: s, Reason: "year must be between 0001 and 9999"}
	}
	if month < 1 || month > 12 {
		return models.BirthDate{}, &models.InvalidDateError{Value: s, Reason: "month must be between 01 and 12"}
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return models.BirthDate{}, &models.InvalidDateError{Value: s, Reason: "day is out of range for month"}
	}
	return models.BirthDate{Year: year, Month: month, Day: day}, nil
}

// IsLeapYear applies the Gregorian rule: divisible by 4, except centuries not
// divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of month (1-12) in year.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
