// Package validate holds the field-level syntactic rules applied to user
// input before it reaches persistence. All checks are pure functions over
// their arguments; none touch the filesystem.
package validate

import (
	"regexp"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+\d{10,15}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern  = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Email reports whether s looks like a well-formed email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Password reports whether s is 8-16 characters long and contains at least
// one uppercase letter, one lowercase letter, and one digit.
func Password(s string) bool {
	if len(s) < 8 || len(s) > 16 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// Phone reports whether s is a '+' followed by 10-15 digits.
func Phone(s string) bool {
	return phonePattern.MatchString(s)
}

// Date reports whether s has the YYYY-MM-DD shape. Only the shape is
// checked; calendar validity (month 13, day 32) is not.
func Date(s string) bool {
	return datePattern.MatchString(s)
}

// ClockTime reports whether s has the HH:MM shape.
func ClockTime(s string) bool {
	return timePattern.MatchString(s)
}

// Name reports whether s is 3-50 characters, the rule shared by income
// sources and budget categories.
func Name(s string) bool {
	return len(s) >= 3 && len(s) <= 50
}

// PositiveAmount reports whether d is strictly greater than zero.
func PositiveAmount(d decimal.Decimal) bool {
	return d.IsPositive()
}
