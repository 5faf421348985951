package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anoudmohamed/budget-manager/internal/auth"
	"github.com/anoudmohamed/budget-manager/internal/config"
	"github.com/anoudmohamed/budget-manager/internal/otp"
	"github.com/anoudmohamed/budget-manager/internal/store"
	"github.com/anoudmohamed/budget-manager/internal/userdir"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// consoleDeliverer stands in for a real notification channel: it prints
// the passcode to the terminal the user is already looking at.
type consoleDeliverer struct{}

func (consoleDeliverer) Deliver(destination, code string) {
	fmt.Printf("OTP sent to %s: %s\n", destination, code)
}

func main() {
	var dataDir string

	root := &cobra.Command{
		Use:     "budget",
		Short:   "Track expenses, income, goals, and budgets from the terminal",
		Long:    "budget is a personal finance tracker. Accounts and records persist as flat files under the data directory.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataDir == "" {
				dataDir = config.Load().DataDir
			}

			st := store.New(dataDir)
			users := userdir.New(dataDir)
			codes := otp.NewIssuer(consoleDeliverer{})
			mgr := auth.NewManager(users, codes)

			s := newSession(os.Stdin, os.Stdout, mgr, st)
			return s.run()
		},
	}
	root.Flags().StringVar(&dataDir, "data-dir", "", "Directory for account and record files (default: $"+config.EnvDataDir+" or ./data)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
