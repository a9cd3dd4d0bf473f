package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rwafoundation/mip65/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the portfolio's current state" }
func (*summaryCmd) Usage() string {
	return `mip summary

  Replays the audit log and prints one row per asset, the cash balance,
  and the net asset value.
`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (p *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.Summary(ledger))
	return subcommands.ExitSuccess
}
