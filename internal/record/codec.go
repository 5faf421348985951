package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Delimiter separates fields within a stored line. Field values are not
// escaped: a value containing the delimiter corrupts that record's shape
// and the line is skipped on the next load.
const Delimiter = ","

// ErrMalformed marks a stored line that cannot be decoded, either because
// its field count does not match the entity's arity or because a numeric
// field fails to parse. Callers skip malformed lines; they never abort a load.
var ErrMalformed = errors.New("malformed record line")

// Kind names an entity type and doubles as the per-owner file suffix.
type Kind string

const (
	KindUsers     Kind = "users"
	KindExpenses  Kind = "expenses"
	KindReminders Kind = "reminders"
	KindGoals     Kind = "goals"
	KindIncomes   Kind = "incomes"
	KindBudgets   Kind = "budgets"
)

// Codec converts one entity type to and from its stored line form.
// The zero value is not usable; use the package-level codec variables.
type Codec[T any] struct {
	Kind   Kind
	arity  int
	encode func(T) []string
	decode func([]string) (T, error)
}

// EncodeLine renders rec as a single delimited line without a terminator.
func (c Codec[T]) EncodeLine(rec T) string {
	return strings.Join(c.encode(rec), Delimiter)
}

// DecodeLine parses a stored line back into a record. A wrong field count
// or an unparsable amount yields an error wrapping ErrMalformed.
func (c Codec[T]) DecodeLine(line string) (T, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != c.arity {
		var zero T
		return zero, fmt.Errorf("%w: got %d fields, want %d", ErrMalformed, len(fields), c.arity)
	}
	return c.decode(fields)
}

// Users encodes User as username,email,password,phone.
var Users = Codec[User]{
	Kind:  KindUsers,
	arity: 4,
	encode: func(u User) []string {
		return []string{u.Username, u.Email, u.Password, u.Phone}
	},
	decode: func(f []string) (User, error) {
		return User{Username: f[0], Email: f[1], Password: f[2], Phone: f[3]}, nil
	},
}

// Expenses encodes Expense as amount,category,paymentMethod,date.
var Expenses = Codec[Expense]{
	Kind:  KindExpenses,
	arity: 4,
	encode: func(e Expense) []string {
		return []string{e.Amount.String(), e.Category, e.PaymentMethod, e.Date}
	},
	decode: func(f []string) (Expense, error) {
		amount, err := parseAmount(f[0])
		if err != nil {
			return Expense{}, err
		}
		return Expense{Amount: amount, Category: f[1], PaymentMethod: f[2], Date: f[3]}, nil
	},
}

// Reminders encodes Reminder as title,date,time.
var Reminders = Codec[Reminder]{
	Kind:  KindReminders,
	arity: 3,
	encode: func(r Reminder) []string {
		return []string{r.Title, r.Date, r.Time}
	},
	decode: func(f []string) (Reminder, error) {
		return Reminder{Title: f[0], Date: f[1], Time: f[2]}, nil
	},
}

// Goals encodes Goal as title,targetAmount,currentAmount,deadline.
var Goals = Codec[Goal]{
	Kind:  KindGoals,
	arity: 4,
	encode: func(g Goal) []string {
		return []string{g.Title, g.TargetAmount.String(), g.CurrentAmount.String(), g.Deadline}
	},
	decode: func(f []string) (Goal, error) {
		target, err := parseAmount(f[1])
		if err != nil {
			return Goal{}, err
		}
		current, err := parseAmount(f[2])
		if err != nil {
			return Goal{}, err
		}
		return Goal{Title: f[0], TargetAmount: target, CurrentAmount: current, Deadline: f[3]}, nil
	},
}

// Incomes encodes Income as source,amount,date.
var Incomes = Codec[Income]{
	Kind:  KindIncomes,
	arity: 3,
	encode: func(i Income) []string {
		return []string{i.Source, i.Amount.String(), i.Date}
	},
	decode: func(f []string) (Income, error) {
		amount, err := parseAmount(f[1])
		if err != nil {
			return Income{}, err
		}
		return Income{Source: f[0], Amount: amount, Date: f[2]}, nil
	},
}

// Budgets encodes Budget as category,amount.
var Budgets = Codec[Budget]{
	Kind:  KindBudgets,
	arity: 2,
	encode: func(b Budget) []string {
		return []string{b.Category, b.Amount.String()}
	},
	decode: func(f []string) (Budget, error) {
		amount, err := parseAmount(f[1])
		if err != nil {
			return Budget{}, err
		}
		return Budget{Category: f[0], Amount: amount}, nil
	},
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: bad amount %q", ErrMalformed, s)
	}
	return d, nil
}
