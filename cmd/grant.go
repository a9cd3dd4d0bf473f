package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	mip65 "github.com/rwafoundation/mip65"
	"github.com/google/subcommands"
)

type grantCmd struct {
	role      string
	principal string
}

func (*grantCmd) Name() string     { return "grant" }
func (*grantCmd) Synopsis() string { return "grant a role to a principal" }
func (*grantCmd) Usage() string {
	return `mip -as <caller> grant -role <ADMIN|GUARDIAN|DATA|OPS> -to <principal>

  Adds the principal to the role. The caller must hold the role's admin
  role: ADMIN administers ADMIN and GUARDIAN, GUARDIAN administers DATA
  and OPS.
`
}

func (p *grantCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.role, "role", "", "Role to grant.")
	f.StringVar(&p.principal, "to", "", "Principal receiving the role.")
}

func (p *grantCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	caller, err := requireCaller()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	role, err := mip65.ParseRole(p.role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if p.principal == "" {
		fmt.Fprintln(os.Stderr, "Error: missing -to flag")
		return subcommands.ExitUsageError
	}

	r, err := DecodeRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := r.GrantRole(caller, role, p.principal); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := mip65.SaveRegistry(*rolesFile, r); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Granted %s to %q\n", role, p.principal)
	return subcommands.ExitSuccess
}

type revokeCmd struct {
	role      string
	principal string
}

func (*revokeCmd) Name() string     { return "revoke" }
func (*revokeCmd) Synopsis() string { return "revoke a role from a principal" }
func (*revokeCmd) Usage() string {
	return `mip -as <caller> revoke -role <ADMIN|GUARDIAN|DATA|OPS> -from <principal>

  Removes the principal from the role. The caller must hold the role's
  admin role. There is no self-revocation guard.
`
}

func (p *revokeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.role, "role", "", "Role to revoke.")
	f.StringVar(&p.principal, "from", "", "Principal losing the role.")
}

func (p *revokeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	caller, err := requireCaller()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	role, err := mip65.ParseRole(p.role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if p.principal == "" {
		fmt.Fprintln(os.Stderr, "Error: missing -from flag")
		return subcommands.ExitUsageError
	}

	r, err := DecodeRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := r.RevokeRole(caller, role, p.principal); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := mip65.SaveRegistry(*rolesFile, r); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Revoked %s from %q\n", role, p.principal)
	return subcommands.ExitSuccess
}
