package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type expenseCmd struct {
	date   string
	amount string
	reason string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record an operating cost debited from cash" }
func (*expenseCmd) Usage() string {
	return `mip -as <ops> expense -m <amount> [-r <reason>] [-d <date>]

  Debits an operating cost from the cash balance. A negative amount
  reverses a previous expense. The date must be a past UTC midnight and
  defaults to yesterday.
`
}

func (p *expenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Bookkeeping date (YYYY-MM-DD). Defaults to yesterday.")
	f.StringVar(&p.amount, "m", "", "Amount of cash debited.")
	f.StringVar(&p.reason, "r", "", "Free-form note for reconciliation.")
}

func (p *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	caller, err := requireCaller()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	day, err := parseDay(p.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	amount, err := parseWad("m", p.amount)
	if err != nil {
		return subcommands.ExitUsageError
	}

	r, err := DecodeRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	e, err := ledger.Expense(caller, day, amount, p.reason)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return EncodeEntry(e)
}

type incomeCmd struct {
	date   string
	amount string
	reason string
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "record revenue credited to cash" }
func (*incomeCmd) Usage() string {
	return `mip -as <ops> income -m <amount> [-r <reason>] [-d <date>]

  Credits revenue to the cash balance. A negative amount reverses a
  previous income entry. The date must be a past UTC midnight and defaults
  to yesterday.
`
}

func (p *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Bookkeeping date (YYYY-MM-DD). Defaults to yesterday.")
	f.StringVar(&p.amount, "m", "", "Amount of cash credited.")
	f.StringVar(&p.reason, "r", "", "Free-form note for reconciliation.")
}

func (p *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	caller, err := requireCaller()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	day, err := parseDay(p.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	amount, err := parseWad("m", p.amount)
	if err != nil {
		return subcommands.ExitUsageError
	}

	r, err := DecodeRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	e, err := ledger.Income(caller, day, amount, p.reason)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return EncodeEntry(e)
}
