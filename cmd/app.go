// Package cmd implements the CLI application to manage the MIP65 ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	mip65 "github.com/rwafoundation/mip65"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the mip binary. A main package
// registers them on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&genesisCmd{},
	&grantCmd{},
	&revokeCmd{},

	&initCmd{},
	&buyCmd{},
	&sellCmd{},
	&updateCmd{},
	&feedCmd{},

	&addCapitalCmd{},
	&removeCapitalCmd{},
	&expenseCmd{},
	&incomeCmd{},

	&summaryCmd{},
	&logCmd{},
	&fmtCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "mip65.jsonl", "Path to the ledger file containing audit entries (JSONL format)")
var rolesFile = flag.String("roles-file", "roles.json", "Path to the access-control registry file")
var caller = flag.String("as", "", "Principal submitting the operation")

// DecodeRegistry loads the app access-control registry.
func DecodeRegistry() (*mip65.Registry, error) {
	r, err := mip65.LoadRegistry(*rolesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("roles file %q does not exist, run 'genesis' first", *rolesFile)
	}
	return r, err
}

// DecodeLedger loads the app ledger, replaying the audit log against the
// given registry. A missing log file yields an empty ledger.
func DecodeLedger(auth mip65.Authorizer) (*mip65.Ledger, error) {
	return mip65.LoadLedger(*ledgerFile, auth)
}

// EncodeEntry appends a single audit entry into the app default ledger file.
func EncodeEntry(e mip65.Entry) subcommands.ExitStatus {
	filename := *ledgerFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := mip65.EncodeEntry(f, e); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended entry #%d to %s\n", e.Seq(), filename)
	return subcommands.ExitSuccess
}

// requireCaller checks the global -as flag, mandatory on every mutation.
func requireCaller() (string, error) {
	if *caller == "" {
		return "", errors.New("missing -as flag: every mutation names its principal")
	}
	return *caller, nil
}

// parseDay parses a -d flag, defaulting to yesterday, the most recently
// completed bookkeeping day.
func parseDay(s string) (mip65.Date, error) {
	if s == "" {
		return mip65.Today() - 86400, nil
	}
	return mip65.ParseDate(s)
}

// parseWad parses a decimal flag value, logging the flag name on failure.
func parseWad(name, s string) (mip65.Wad, error) {
	w, err := mip65.ParseWad(s)
	if err != nil {
		log.Printf("invalid -%s value %q", name, s)
		return mip65.Wad{}, err
	}
	return w, nil
}
