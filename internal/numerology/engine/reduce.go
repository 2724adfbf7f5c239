package engine

import "numerus/internal/numerology/models"

// Reduce collapses n to a single digit or a preserved master number.
//
// Values below 10 (including 0) are returned unchanged. When the rule-set
// preserves masters (keep_master without reduce_master), a master n is
// returned as is, and the classic method stops at the first digit sum that is
// a master. The digital_root method jumps straight to 1 + (n-1) % 9.
//
// Reduce is idempotent and terminates: the digit sum of any n >= 10 is
// strictly smaller than n. Callers never pass negative values.
func Reduce(n int, rs *models.RuleSet) int {
	if n < 10 {
		return n
	}
	preserve := rs.PreservesMasters()
	if preserve && rs.IsMaster(n) {
		return n
	}
	if rs.Reduction() == models.ReductionDigitalRoot {
		return 1 + (n-1)%9
	}

	s := digitSum(n)
	for s >= 10 {
		if preserve && rs.IsMaster(s) {
			return s
		}
		s = digitSum(s)
	}
	return s
}

func digitSum(n int) int {
	if n < 0 {
		n = -n
	}
	s := 0
	for n > 0 {
		s += n % 10
		n /= 10
	}
	return s
}

// digitSumString sums the ASCII digits of s, ignoring every other character.
func digitSumString(s string) int {
	total := 0
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			total += int(c - '0')
		}
	}
	return total
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
