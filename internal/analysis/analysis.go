// Package analysis compares an owner's spending against their category
// budgets. Expenses are summed per category; budgets are keyed by
// category with the last stored record winning. Categories with a budget
// but no spending do not appear in the output.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/anoudmohamed/budget-manager/internal/record"
	"github.com/anoudmohamed/budget-manager/internal/store"
)

// noData is the outcome when neither expenses nor budgets exist.
const noData = "No data available for analysis."

// Row is the comparison for one category with recorded spending.
// Difference is budget minus spent; negative means overspent.
type Row struct {
	Category   string
	Spent      decimal.Decimal
	Budget     decimal.Decimal
	Difference decimal.Decimal
}

// Analyze loads owner's expenses and budgets and returns one Row per
// category with spending, sorted by category name. A missing file of
// either kind contributes an empty mapping, not an error.
func Analyze(s *store.Store, owner string) ([]Row, error) {
	expenses, err := store.LoadAll(s, owner, record.Expenses)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}
	budgetRecs, err := store.LoadAll(s, owner, record.Budgets)
	if err != nil {
		return nil, fmt.Errorf("loading budgets: %w", err)
	}

	spent := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		spent[e.Category] = spent[e.Category].Add(e.Amount)
	}
	budgeted := make(map[string]decimal.Decimal)
	for _, b := range budgetRecs {
		budgeted[b.Category] = b.Amount
	}

	if len(spent) == 0 && len(budgeted) == 0 {
		return nil, nil
	}

	categories := make([]string, 0, len(spent))
	for c := range spent {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	rows := make([]Row, 0, len(categories))
	for _, c := range categories {
		budget := budgeted[c] // zero when no budget is set
		rows = append(rows, Row{
			Category:   c,
			Spent:      spent[c],
			Budget:     budget,
			Difference: budget.Sub(spent[c]),
		})
	}
	return rows, nil
}

// Report renders the spending analysis for owner. Both stores absent or
// empty yields the no-data outcome. Note that budgets alone, with no
// spending, render the table header with no rows.
func Report(s *store.Store, owner string) (string, error) {
	rows, err := Analyze(s, owner)
	if err != nil {
		return "", err
	}
	if rows == nil {
		// Distinguish "no data at all" from "budgets but no spending":
		// Analyze returns a non-nil empty slice in the latter case.
		return noData, nil
	}
	return Render(rows), nil
}

// Render formats analysis rows as the tab-separated table the dashboard
// prints.
func Render(rows []Row) string {
	var sb strings.Builder
	sb.WriteString("--- Spending Analysis ---\n")
	sb.WriteString("Category\tSpent\tBudget\tDifference\n")
	sb.WriteString("----------------------------------\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "%-10s\t$%s\t$%s\t$%s\n",
			r.Category, r.Spent.StringFixed(2), r.Budget.StringFixed(2), r.Difference.StringFixed(2))
	}
	return sb.String()
}
