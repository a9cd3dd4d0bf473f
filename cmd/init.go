package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type initCmd struct {
	asset string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "register a new asset identifier" }
func (*initCmd) Usage() string {
	return `mip -as <guardian> init -a <asset>

  Registers a new asset with a zero position and zero valuation. Fails if
  the identifier already exists; positions are corrected with signed buy
  and sell entries, never by re-initializing.
`
}

func (p *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.asset, "a", "", "Asset identifier to register.")
}

func (p *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	caller, err := requireCaller()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if p.asset == "" {
		fmt.Fprintln(os.Stderr, "Error: missing -a flag")
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

	e, err := ledger.Init(caller, p.asset)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return EncodeEntry(e)
}
