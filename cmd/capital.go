package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type addCapitalCmd struct {
	date   string
	amount string
}

func (*addCapitalCmd) Name() string     { return "add-capital" }
func (*addCapitalCmd) Synopsis() string { return "record external capital added to cash" }
func (*addCapitalCmd) Usage() string {
	return `mip -as <ops> add-capital -m <amount> [-d <date>]

  Credits external capital to the cash balance. A negative amount reverses
  a previous addition. The date must be a past UTC midnight and defaults
  to yesterday.
`
}

func (p *addCapitalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Bookkeeping date (YYYY-MM-DD). Defaults to yesterday.")
	f.StringVar(&p.amount, "m", "", "Amount of cash added.")
}

func (p *addCapitalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	e, err := ledger.AddCapital(caller, day, amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return EncodeEntry(e)
}

type removeCapitalCmd struct {
	date   string
	amount string
}

func (*removeCapitalCmd) Name() string     { return "remove-capital" }
func (*removeCapitalCmd) Synopsis() string { return "record capital returned out of cash" }
func (*removeCapitalCmd) Usage() string {
	return `mip -as <ops> remove-capital -m <amount> [-d <date>]

  Debits returned capital from the cash balance. A negative amount
  reverses a previous removal. The date must be a past UTC midnight and
  defaults to yesterday.
`
}

func (p *removeCapitalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Bookkeeping date (YYYY-MM-DD). Defaults to yesterday.")
	f.StringVar(&p.amount, "m", "", "Amount of cash removed.")
}

func (p *removeCapitalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	e, err := ledger.RemoveCapital(caller, day, amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return EncodeEntry(e)
}
