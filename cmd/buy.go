package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type buyCmd struct {
	asset string
	date  string
	qty   string
	price string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase of an asset" }
func (*buyCmd) Usage() string {
	return `mip -as <ops> buy -a <asset> -q <quantity> -p <price> [-d <date>]

  Adds the quantity to the asset's position and debits cash by quantity
  times price. Negative figures reverse a previous purchase. The date must
  be a past UTC midnight and defaults to yesterday.
`
}

func (p *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.asset, "a", "", "Asset identifier.")
	f.StringVar(&p.date, "d", "", "Bookkeeping date (YYYY-MM-DD). Defaults to yesterday.")
	f.StringVar(&p.qty, "q", "", "Quantity of units bought.")
	f.StringVar(&p.price, "p", "", "Unit price paid.")
}

func (p *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	qty, err := parseWad("q", p.qty)
	if err != nil {
		return subcommands.ExitUsageError
	}
	price, err := parseWad("p", p.price)
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

	e, err := ledger.Buy(caller, p.asset, day, qty, price)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return EncodeEntry(e)
}
