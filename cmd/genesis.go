package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	mip65 "github.com/rwafoundation/mip65"
	"github.com/google/subcommands"
)

type genesisCmd struct {
	force bool
}

func (*genesisCmd) Name() string     { return "genesis" }
func (*genesisCmd) Synopsis() string { return "create the access-control registry with a root principal" }
func (*genesisCmd) Usage() string {
	return `mip -as <root> genesis [-force]

  Creates the roles file with the genesis hierarchy: the root principal
  holds ADMIN and GUARDIAN, ADMIN administers ADMIN and GUARDIAN, and
  GUARDIAN administers DATA and OPS.
`
}

func (p *genesisCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.force, "force", false, "Overwrite an existing roles file.")
}

func (p *genesisCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	root, err := requireCaller()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	if _, err := os.Stat(*rolesFile); err == nil && !p.force {
		fmt.Fprintf(os.Stderr, "Error: roles file %q already exists, use -force to overwrite\n", *rolesFile)
		return subcommands.ExitFailure
	}

	r := mip65.NewRegistry(root)
	if err := mip65.SaveRegistry(*rolesFile, r); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created %s with root principal %q\n", *rolesFile, root)
	return subcommands.ExitSuccess
}
