package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	mip65 "github.com/rwafoundation/mip65"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `mip fmt

  Validates the ledger file and rewrites it in canonical JSONL form:
  stable key order, explicit sequence numbers filled in, one entry per
  line. The log is replayed first, so a file that does not reconstruct a
  valid state is left untouched.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	out, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not rewrite ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := mip65.EncodeLog(out, ledger.Entries()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not rewrite ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Finished formatting %q.\n", *ledgerFile)
	return subcommands.ExitSuccess
}
