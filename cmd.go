package main

import (
	"context"
	"fmt"
	"os"
	"time"

	semver "github.com/Masterminds/semver/v3"
	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ac000/itsa/mtd"
	"github.com/ac000/itsa/tax"
)

// spin runs f under a progress spinner when stdout is a terminal.
func (a *app) spin(description string, f func() error) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return f()
	}

	options := []string{"|", "/", "-", "\\"}
	for i, o := range options {
		options[i] = o + " " + description
	}
	s := spinner.New(options, time.Millisecond*250,
		spinner.WithHiddenCursor(true))
	s.Start()
	err := f()
	s.Stop()

	return err
}

func optionalDateRangeArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("expected either no dates or both a start and end date")
	}
	return nil
}

func (a *app) listPeriodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-periods [<start> <end>]",
		Short: "List income and expenditure update obligations",
		Args:  optionalDateRangeArgs,
		Run: func(_ *cobra.Command, args []string) {
			a.exitOnError(a.setup())

			var from, to string
			if len(args) == 2 {
				from, to = args[0], args[1]
			}

			var obs []mtd.Obligation
			err := a.spin("Fetching obligations", func() error {
				var err error
				obs, err = a.client.Obligations(context.Background(), from, to)
				return err
			})
			if err != nil {
				a.errOut.Errorf("Couldn't get list of obligations. (%s)\n", err)
				os.Exit(1)
			}

			a.renderPeriods(obs)
		},
	}
}

func (a *app) renderPeriods(obs []mtd.Obligation) {
	now := tax.Now()

	a.out.Printf("#CHARC#  %14s %18s %11s %12s %8s#RST#\n",
		"period_id", "start", "end", "due", "met")
	a.out.Printf("#CHARC# ------------------------------------------" +
		"---------------------------#RST#\n")
	for _, o := range obs {
		color := "#CHARC#"
		start, serr := tax.ParseDate(o.Start)
		end, eerr := tax.ParseDate(o.End)
		due, derr := tax.ParseDate(o.Due)
		if serr == nil && eerr == nil && derr == nil {
			color = tax.PeriodColor(start, end, due, o.Met(), now)
		}

		a.out.Printf("%s  %s_%-14s %-12s %-12s %-12s#RST# %s\n",
			color, o.Start, o.End, o.Start, o.End, o.Due,
			tax.FormatBool(o.Met()))
	}
}

func (a *app) listCalculationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-calculations [tax_year]",
		Short: "List self-assessment calculations",
		Args:  cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			a.exitOnError(a.setup())

			var taxYear string
			if len(args) == 1 {
				taxYear = args[0]
			}

			var calcs []mtd.Calculation
			err := a.spin("Fetching calculations", func() error {
				var err error
				calcs, err = a.client.Calculations(context.Background(), taxYear)
				return err
			})
			if err != nil {
				a.errOut.Errorf("Couldn't get calculations list. (%s)\n", err)
				os.Exit(1)
			}

			a.out.Successf("Got list of calculations\n")
			a.renderCalculations(calcs)
		},
	}
}

func (a *app) renderCalculations(calcs []mtd.Calculation) {
	a.out.Printf("#CHARC#  %3s %26s %24s %14s #RST#\n",
		"idx", "calculation_id", "timestamp", "type")
	a.out.Printf("#CHARC# ------------------------------------------" +
		"-----------------------------------#RST#\n")
	for i, c := range calcs {
		date, stime := splitTimestamp(c.Timestamp)
		a.out.Printf("  #BOLD#%2d#RST#%39s %11s %s %11s\n",
			i+1, c.ID, date, stime, c.Type)
	}
}

// splitTimestamp breaks an RFC 3339 timestamp into its date and hh:mm
// parts for display.
func splitTimestamp(ts string) (string, string) {
	if len(ts) < 16 {
		return ts, ""
	}
	return ts[:10], ts[11:16]
}

func (a *app) viewSavingsAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view-savings-accounts [tax_year]",
		Short: "List savings accounts",
		Args:  cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			a.exitOnError(a.setup())

			tyear := tax.Year(tax.Now())
			if len(args) == 1 {
				tyear = args[0]
			}

			var accounts []mtd.SavingsAccount
			err := a.spin("Fetching savings accounts", func() error {
				var err error
				accounts, err = a.client.SavingsAccounts(context.Background())
				return err
			})
			if err != nil {
				a.errOut.Errorf("Couldn't get list of savings accounts. (%s)\n", err)
				os.Exit(1)
			}

			a.out.Successf("Savings Accounts for #BOLD#%s#RST#\n", tyear)
			a.renderSavingsAccounts(accounts)
		},
	}
}

func (a *app) renderSavingsAccounts(accounts []mtd.SavingsAccount) {
	a.out.Printf("\n#CHARC#  %8s %26s#RST#\n", "id", "name")
	a.out.Printf("#CHARC# ------------------------------------------" +
		"------------------#RST#\n")
	for _, acc := range accounts {
		a.out.Printf("  %-25s %-34s\n", acc.ID, acc.Name)
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the itsa version",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			v, err := semver.NewVersion(mtd.Version)
			a.exitOnError(err)
			a.out.Printf("itsa #BOLD#v%s#RST#\n", v)
		},
	}
}
