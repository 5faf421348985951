// Package report derives expense reports for one owner. The two variants
// are a tagged Kind dispatched to pure functions over the loaded expense
// slice; rendering is owned here, not by the CLI.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/anoudmohamed/budget-manager/internal/record"
	"github.com/anoudmohamed/budget-manager/internal/store"
)

// noExpenses is the outcome for a missing or empty expense file. It is
// an answer, not an error.
const noExpenses = "No expenses found."

// Kind selects a report variant.
type Kind string

const (
	Summary  Kind = "summary"
	Detailed Kind = "detailed"
)

// ParseKind returns the Kind for a user-supplied name.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "summary":
		return Summary, nil
	case "detailed":
		return Detailed, nil
	default:
		return "", fmt.Errorf("unknown report kind %q: valid kinds are summary, detailed", name)
	}
}

// Generate loads owner's expenses and renders the requested report.
func Generate(s *store.Store, kind Kind, owner string) (string, error) {
	expenses, err := store.LoadAll(s, owner, record.Expenses)
	if err != nil {
		return "", fmt.Errorf("loading expenses: %w", err)
	}
	if len(expenses) == 0 {
		return noExpenses, nil
	}
	switch kind {
	case Summary:
		return summary(expenses), nil
	case Detailed:
		return detailed(expenses), nil
	default:
		return "", fmt.Errorf("unknown report kind %q", kind)
	}
}

func summary(expenses []record.Expense) string {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	var sb strings.Builder
	sb.WriteString("Summary Report:\n")
	fmt.Fprintf(&sb, "- Total Expenses: $%s\n", total)
	fmt.Fprintf(&sb, "- Number of Transactions: %d\n", len(expenses))
	return sb.String()
}

func detailed(expenses []record.Expense) string {
	var sb strings.Builder
	sb.WriteString("Detailed Report:\n")
	for _, e := range expenses {
		fmt.Fprintf(&sb, "Category: %s, Amount: $%s, Method: %s, Date: %s\n",
			e.Category, e.Amount, e.PaymentMethod, e.Date)
	}
	return sb.String()
}
