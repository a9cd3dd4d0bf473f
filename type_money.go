package mip65

import (
	"github.com/Rhymond/go-money"
)

// USD renders a fixed-point figure as a formatted US dollar amount, for
// display only. The ledger itself is currency-less: cash is a bare
// 18-decimal scalar, and this formatting rounds to cents.
func USD(w Wad) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, money.USD).Currency()
	cents := w.Decimal().Shift(int32(cur.Fraction))
	return cur.Formatter().Format(cents.IntPart())
}
