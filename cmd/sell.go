package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type sellCmd struct {
	asset string
	date  string
	qty   string
	price string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale of an asset" }
func (*sellCmd) Usage() string {
	return `mip -as <ops> sell -a <asset> -q <quantity> -p <price> [-d <date>]

  Removes the quantity from the asset's position and credits cash by
  quantity times price. Negative figures reverse a previous sale. The date
  must be a past UTC midnight and defaults to yesterday.
`
}

func (p *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.asset, "a", "", "Asset identifier.")
	f.StringVar(&p.date, "d", "", "Bookkeeping date (YYYY-MM-DD). Defaults to yesterday.")
	f.StringVar(&p.qty, "q", "", "Quantity of units sold.")
	f.StringVar(&p.price, "p", "", "Unit price received.")
}

func (p *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	e, err := ledger.Sell(caller, p.asset, day, qty, price)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return EncodeEntry(e)
}
