package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type updateCmd struct {
	asset    string
	date     string
	nav      string
	yield    string
	duration string
	maturity string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "record a valuation update for an asset" }
func (*updateCmd) Usage() string {
	return `mip -as <data> update -a <asset> -nav <value> [-yield <v>] [-duration <v>] [-maturity <v>] [-d <date>]

  Overwrites the asset's valuation fields, last write wins. Omitted fields
  default to zero, not to their previous value; repeat them to carry them
  forward. The date must be a past UTC midnight and defaults to yesterday.
`
}

func (p *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.asset, "a", "", "Asset identifier.")
	f.StringVar(&p.date, "d", "", "Bookkeeping date (YYYY-MM-DD). Defaults to yesterday.")
	f.StringVar(&p.nav, "nav", "0", "Net asset value per unit.")
	f.StringVar(&p.yield, "yield", "0", "Yield figure.")
	f.StringVar(&p.duration, "duration", "0", "Duration figure.")
	f.StringVar(&p.maturity, "maturity", "0", "Maturity figure.")
}

func (p *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	nav, err := parseWad("nav", p.nav)
	if err != nil {
		return subcommands.ExitUsageError
	}
	yield, err := parseWad("yield", p.yield)
	if err != nil {
		return subcommands.ExitUsageError
	}
	duration, err := parseWad("duration", p.duration)
	if err != nil {
		return subcommands.ExitUsageError
	}
	maturity, err := parseWad("maturity", p.maturity)
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

	e, err := ledger.Update(caller, p.asset, day, nav, yield, duration, maturity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return EncodeEntry(e)
}
