// Package record defines the tracker's entity types and the delimited-line
// codec used to persist them. Every entity serializes to a single line with
// comma-separated positional fields; the field orders here are the storage
// contract and must not change.
package record

import (
	"github.com/shopspring/decimal"

	"github.com/anoudmohamed/budget-manager/internal/validate"
)

// User is one registered account. Password holds a bcrypt hash, never the
// raw secret. Email is the natural key; uniqueness is enforced by the
// sign-up flow, not by storage.
type User struct {
	Username string
	Email    string
	Password string
	Phone    string
}

// Expense is one recorded spend. Category and PaymentMethod are free text.
type Expense struct {
	Amount        decimal.Decimal
	Category      string
	PaymentMethod string
	Date          string
}

// Reminder is a dated note with a clock time.
type Reminder struct {
	Title string
	Date  string
	Time  string
}

// Valid reports whether the reminder may be persisted: non-empty title,
// YYYY-MM-DD date, HH:MM time.
func (r Reminder) Valid() bool {
	return r.Title != "" && validate.Date(r.Date) && validate.ClockTime(r.Time)
}

// Goal is a savings target.
type Goal struct {
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      string
}

// Completed reports whether the saved amount has reached the target.
func (g Goal) Completed() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Income is one recorded earning.
type Income struct {
	Source string
	Amount decimal.Decimal
	Date   string
}

// Budget is a spending cap for one category. Setting a category again
// appends a new record; aggregation treats the last one as current.
type Budget struct {
	Category string
	Amount   decimal.Decimal
}
