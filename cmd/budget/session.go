package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/anoudmohamed/budget-manager/internal/analysis"
	"github.com/anoudmohamed/budget-manager/internal/auth"
	"github.com/anoudmohamed/budget-manager/internal/record"
	"github.com/anoudmohamed/budget-manager/internal/report"
	"github.com/anoudmohamed/budget-manager/internal/store"
	"github.com/anoudmohamed/budget-manager/internal/validate"
)

// session drives the interactive menus. All prompt text, input retry, and
// result display live here; the packages under internal own the rules.
type session struct {
	in    *bufio.Scanner
	out   io.Writer
	auth  *auth.Manager
	store *store.Store
}

func newSession(in io.Reader, out io.Writer, mgr *auth.Manager, st *store.Store) *session {
	return &session{
		in:    bufio.NewScanner(in),
		out:   out,
		auth:  mgr,
		store: st,
	}
}

// run loops the welcome menu until the user exits or input ends.
func (s *session) run() error {
	for {
		fmt.Fprintln(s.out, "************* Welcome *************")
		fmt.Fprintln(s.out, "1. Sign Up\n2. Login\n3. Exit")

		choice, ok := s.readLine("")
		if !ok {
			return nil
		}
		switch strings.TrimSpace(choice) {
		case "1":
			if err := s.signUp(); err != nil {
				return err
			}
		case "2":
			if err := s.logIn(); err != nil {
				return err
			}
		case "3":
			fmt.Fprintln(s.out, "Exiting program...")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option. Please choose 1, 2, or 3.")
		}
	}
}

// signUp collects and pre-validates the registration fields, then drives
// the two-phase sign-up: begin (validate, uniqueness, passcode issue) and
// complete (passcode check, persist).
func (s *session) signUp() error {
	username := s.promptUntil("Username: ", func(v string) bool { return v != "" },
		"Username cannot be empty. Please try again.")
	email := s.promptUntil("Email: ", validate.Email,
		"Invalid email format. Must be like user@example.com")
	password := s.promptUntil("Password: ", validate.Password,
		"Invalid password. Must be 8-16 characters with an uppercase letter, a lowercase letter, and a number.")
	phone := s.promptUntil("Phone Number (e.g., +201234567890): ", validate.Phone,
		"Invalid phone number. Must start with '+' and contain 10-15 digits.")

	challengeID, err := s.auth.BeginSignUp(username, email, password, phone)
	if err != nil {
		fmt.Fprintln(s.out, capitalize(err.Error()))
		return nil
	}

	code, _ := s.readLine("Enter the OTP sent to your email: ")
	if err := s.auth.CompleteSignUp(challengeID, code); err != nil {
		if errors.Is(err, auth.ErrCodeMismatch) {
			fmt.Fprintln(s.out, "Invalid OTP. Registration canceled.")
			return nil
		}
		return err
	}

	fmt.Fprintln(s.out, "User registered successfully! You are now logged in.")
	return s.dashboard(store.OwnerKey(email))
}

// logIn checks credentials and opens the dashboard on success.
func (s *session) logIn() error {
	email := s.promptUntil("Email: ", validate.Email,
		"Invalid email format. Must be like user@example.com")
	password, _ := s.readLine("Password: ")

	if err := s.auth.Login(email, password); err != nil {
		switch {
		case errors.Is(err, auth.ErrWrongPassword):
			fmt.Fprintln(s.out, "Wrong password.")
		case errors.Is(err, auth.ErrUserNotFound):
			fmt.Fprintln(s.out, "Email not found.")
		default:
			return err
		}
		fmt.Fprintln(s.out, "Login failed. Check your credentials.")
		return nil
	}

	fmt.Fprintln(s.out, "Login successful!")
	return s.dashboard(store.OwnerKey(email))
}

// dashboard loops the post-login menu for one owner until logout.
func (s *session) dashboard(owner string) error {
	for {
		fmt.Fprintln(s.out, "\n--- Dashboard ---")
		fmt.Fprintln(s.out, "1. Add Expense")
		fmt.Fprintln(s.out, "2. Display Expenses")
		fmt.Fprintln(s.out, "3. Add Reminder")
		fmt.Fprintln(s.out, "4. Add Goal")
		fmt.Fprintln(s.out, "5. Display Goals")
		fmt.Fprintln(s.out, "6. View Financial Report")
		fmt.Fprintln(s.out, "7. Track My Income")
		fmt.Fprintln(s.out, "8. Budgeting & Analysing")
		fmt.Fprintln(s.out, "9. Logout")

		choice, ok := s.readLine("")
		if !ok {
			return nil
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			err = s.addExpense(owner)
		case "2":
			err = s.displayExpenses(owner)
		case "3":
			err = s.addReminder(owner)
		case "4":
			err = s.addGoal(owner)
		case "5":
			err = s.displayGoals(owner)
		case "6":
			err = s.financialReport(owner)
		case "7":
			err = s.trackIncome(owner)
		case "8":
			err = s.budgeting(owner)
		case "9":
			fmt.Fprintln(s.out, "Logging out...")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *session) addExpense(owner string) error {
	amount := s.promptAmount("Amount: ")
	category, _ := s.readLine("Category: ")
	method, _ := s.readLine("Payment Method: ")
	date, _ := s.readLine("Date (YYYY-MM-DD): ")

	e := record.Expense{Amount: amount, Category: category, PaymentMethod: method, Date: date}
	if err := store.Append(s.store, owner, record.Expenses, e); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Expense added successfully!")
	return nil
}

func (s *session) displayExpenses(owner string) error {
	out, err := report.Generate(s.store, report.Detailed, owner)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(s.out)
	}
	return nil
}

func (s *session) addReminder(owner string) error {
	title, _ := s.readLine("Reminder Title: ")
	date, _ := s.readLine("Date (YYYY-MM-DD): ")
	tm, _ := s.readLine("Time (HH:MM): ")

	r := record.Reminder{Title: title, Date: date, Time: tm}
	if !r.Valid() {
		fmt.Fprintln(s.out, "Invalid reminder data.")
		return nil
	}
	if err := store.Append(s.store, owner, record.Reminders, r); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Reminder saved successfully!")
	fmt.Fprintf(s.out, "Notification will be sent at: %s %s\n", r.Date, r.Time)
	return nil
}

func (s *session) addGoal(owner string) error {
	title, _ := s.readLine("Goal Title: ")
	target := s.promptAmount("Target Amount: ")
	current := s.promptAmount("Current Amount: ")
	deadline, _ := s.readLine("Deadline (YYYY-MM-DD): ")

	g := record.Goal{Title: title, TargetAmount: target, CurrentAmount: current, Deadline: deadline}
	if err := store.Append(s.store, owner, record.Goals, g); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Goal saved successfully!")
	return nil
}

func (s *session) displayGoals(owner string) error {
	goals, err := store.LoadAll(s.store, owner, record.Goals)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Fprintln(s.out, "No goals found.")
		return nil
	}
	for _, g := range goals {
		status := ""
		if g.Completed() {
			status = " [completed]"
		}
		fmt.Fprintf(s.out, "Goal: %s | Target: $%s | Saved: $%s | Deadline: %s%s\n",
			g.Title, g.TargetAmount, g.CurrentAmount, g.Deadline, status)
	}
	return nil
}

func (s *session) financialReport(owner string) error {
	fmt.Fprintln(s.out, "Choose report type:")
	fmt.Fprintln(s.out, "1. Summary Report")
	fmt.Fprintln(s.out, "2. Detailed Report")

	choice, _ := s.readLine("")
	kind := report.Summary
	if strings.TrimSpace(choice) == "2" {
		kind = report.Detailed
	}

	out, err := report.Generate(s.store, kind, owner)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(s.out)
	}
	return nil
}

func (s *session) trackIncome(owner string) error {
	source := s.promptUntil("Income Source (e.g., salary, freelance): ", validate.Name,
		"Invalid source (3-50 chars). Enter again:")
	amount := s.promptAmount("Amount: ")
	date := s.promptUntil("Date (YYYY-MM-DD): ", validate.Date,
		"Invalid date format. Enter again (YYYY-MM-DD):")

	in := record.Income{Source: source, Amount: amount, Date: date}
	if err := store.Append(s.store, owner, record.Incomes, in); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Income added successfully!")
	return nil
}

func (s *session) budgeting(owner string) error {
	fmt.Fprintln(s.out, "\nBudgeting Options:")
	fmt.Fprintln(s.out, "1. Set Budget")
	fmt.Fprintln(s.out, "2. View Budgets")
	fmt.Fprintln(s.out, "3. Spending Analysis")

	choice, _ := s.readLine("Choose an option: ")
	switch strings.TrimSpace(choice) {
	case "1":
		category := s.promptUntil("Category (e.g., groceries, rent): ", validate.Name,
			"Invalid category (3-50 chars). Enter again:")
		amount := s.promptAmount("Budget Amount: ")

		b := record.Budget{Category: category, Amount: amount}
		if err := store.Append(s.store, owner, record.Budgets, b); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Budget set successfully!")
	case "2":
		budgets, err := store.LoadAll(s.store, owner, record.Budgets)
		if err != nil {
			return err
		}
		if len(budgets) == 0 {
			fmt.Fprintln(s.out, "No budgets set yet.")
			return nil
		}
		fmt.Fprintln(s.out, "\n--- Your Budgets ---")
		for _, b := range budgets {
			fmt.Fprintf(s.out, "Category: %s, Budget: $%s\n", b.Category, b.Amount)
		}
	case "3":
		out, err := analysis.Report(s.store, owner)
		if err != nil {
			return err
		}
		fmt.Fprint(s.out, out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Fprintln(s.out)
		}
	default:
		fmt.Fprintln(s.out, "Invalid option.")
	}
	return nil
}

// readLine prints prompt and returns the next trimmed input line. The
// second result is false when input is exhausted.
func (s *session) readLine(prompt string) (string, bool) {
	if prompt != "" {
		fmt.Fprint(s.out, prompt)
	}
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptUntil re-prompts until valid accepts the input or input ends.
func (s *session) promptUntil(prompt string, valid func(string) bool, msg string) string {
	for {
		v, ok := s.readLine(prompt)
		if !ok {
			return v
		}
		if valid(v) {
			return v
		}
		fmt.Fprintln(s.out, msg)
	}
}

// promptAmount re-prompts until the input parses as a positive decimal.
func (s *session) promptAmount(prompt string) decimal.Decimal {
	for {
		v, ok := s.readLine(prompt)
		if !ok {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(v)
		if err != nil || !validate.PositiveAmount(d) {
			fmt.Fprintln(s.out, "Amount must be a positive number. Enter again:")
			continue
		}
		return d
	}
}

// capitalize upper-cases the first byte for display of sentinel errors.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
