package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rwafoundation/mip65/renderer"
	"github.com/google/subcommands"
)

type logCmd struct {
	head int
	tail int
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list all entries in the audit trail" }
func (*logCmd) Usage() string {
	return `mip log [-head <n>] [-tail <n>]

  Lists audit entries in emission order, with options for limiting the
  output.
`
}

func (p *logCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.head, "head", 0, "Show only the first N entries.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N entries.")
}

func (p *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
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

	entries := ledger.Entries()
	if p.head > 0 && len(entries) > p.head {
		entries = entries[:p.head]
	}
	if p.tail > 0 && len(entries) > p.tail {
		entries = entries[len(entries)-p.tail:]
	}

	printMarkdown(renderer.Log(entries))
	return subcommands.ExitSuccess
}
