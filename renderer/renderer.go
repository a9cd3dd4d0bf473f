// Package renderer turns ledger state and audit entries into markdown
// reports for the CLI.
package renderer

import (
	"fmt"
	"strings"

	mip65 "github.com/rwafoundation/mip65"
)

// Summary renders the current portfolio state: one row per asset in init
// order, the cash balance, and the net asset value.
func Summary(l *mip65.Ledger) string {
	var b strings.Builder

	b.WriteString("# Portfolio Summary\n\n")

	assets := l.Assets()
	if len(assets) > 0 {
		b.WriteString("| Asset | Quantity | NAV | Yield | Duration | Maturity | Updated |\n")
		b.WriteString("|---|---:|---:|---:|---:|---:|---|\n")
		for _, name := range assets {
			d := l.Details(name)
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				name, d.Quantity, mip65.USD(d.NAV), d.Yield, d.Duration, d.Maturity,
				orDash(l.LastUpdate(name).String()))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "- Cash: %s\n", mip65.USD(l.Cash()))
	fmt.Fprintf(&b, "- Total value: %s\n", mip65.USD(l.Value()))
	return b.String()
}

// Log renders the audit trail as a markdown table, one row per entry in
// emission order.
func Log(entries []mip65.Entry) string {
	var b strings.Builder

	b.WriteString("# Audit Trail\n\n")
	b.WriteString("| Seq | Date | Entry |\n")
	b.WriteString("|---:|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", e.Seq(), orDash(e.When().String()), Entry(e))
	}
	return b.String()
}

// Entry renders a single audit entry to a one-line description.
func Entry(e mip65.Entry) string {
	switch v := e.(type) {
	case mip65.AssetInit:
		return fmt.Sprintf("Initialized asset %s", v.Asset)
	case mip65.AssetBuy:
		return fmt.Sprintf("Bought %s of %s at %s", v.Quantity, v.Asset, mip65.USD(v.Price))
	case mip65.AssetSell:
		return fmt.Sprintf("Sold %s of %s at %s", v.Quantity, v.Asset, mip65.USD(v.Price))
	case mip65.AssetUpdate:
		return fmt.Sprintf("Updated %s: nav %s, yield %s, duration %s, maturity %s",
			v.Asset, mip65.USD(v.NAV), v.Yield, v.Duration, v.Maturity)
	case mip65.CapitalIn:
		return fmt.Sprintf("Added capital %s", mip65.USD(v.Amount))
	case mip65.CapitalOut:
		return fmt.Sprintf("Removed capital %s", mip65.USD(v.Amount))
	case mip65.Expense:
		return fmt.Sprintf("Expense %s%s", mip65.USD(v.Amount), reason(v.Reason))
	case mip65.Income:
		return fmt.Sprintf("Income %s%s", mip65.USD(v.Amount), reason(v.Reason))
	default:
		return string(e.What())
	}
}

func reason(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
