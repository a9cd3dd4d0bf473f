package mip65

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// wadScale is the number of implied fractional digits carried by a Wad.
const wadScale = 18

// Wad is a signed fixed-point number with 18 fractional digits. It is the
// unit for every quantity, price, cash amount, and valuation figure in the
// ledger. Negative values are legal everywhere: submitting the negation of
// a previous figure is how corrections are expressed.
type Wad struct {
	value decimal.Decimal
}

// W builds a Wad from common numeric types, truncating to 18 fractional digits.
func W[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Wad {
	var d decimal.Decimal
	switch v := any(value).(type) {
	case decimal.Decimal:
		d = v
	case float32:
		d = decimal.NewFromFloat32(v)
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int32:
		d = decimal.NewFromInt32(v)
	case int64:
		d = decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
	return Wad{value: d.Truncate(wadScale)}
}

// ParseWad parses a decimal string into a Wad, truncating digits beyond the
// 18th fractional place.
func ParseWad(s string) (Wad, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Wad{}, fmt.Errorf("invalid fixed-point value %q: %w", s, err)
	}
	return Wad{value: d.Truncate(wadScale)}, nil
}

// MustParseWad is like ParseWad but panics on error.
func MustParseWad(s string) Wad {
	w, err := ParseWad(s)
	if err != nil {
		panic(err.Error())
	}
	return w
}

func (w Wad) Add(o Wad) Wad      { return Wad{value: w.value.Add(o.value)} }
func (w Wad) Sub(o Wad) Wad      { return Wad{value: w.value.Sub(o.value)} }
func (w Wad) Neg() Wad           { return Wad{value: w.value.Neg()} }
func (w Wad) Equal(o Wad) bool   { return w.value.Equal(o.value) }
func (w Wad) LessThan(o Wad) bool { return w.value.LessThan(o.value) }
func (w Wad) IsZero() bool       { return w.value.IsZero() }
func (w Wad) IsNegative() bool   { return w.value.IsNegative() }
func (w Wad) IsPositive() bool   { return w.value.IsPositive() }
func (w Wad) String() string     { return w.value.String() }

// Mul multiplies two 18-digit fixed-point values and renormalizes the
// product back to 18 fractional digits, truncating toward zero. The
// truncation is a deliberate, accepted rounding-error source.
func (w Wad) Mul(o Wad) Wad {
	return Wad{value: w.value.Mul(o.value).Truncate(wadScale)}
}

// Decimal returns the underlying decimal value, for display formatting.
func (w Wad) Decimal() decimal.Decimal { return w.value }

// MarshalJSON implements the json.Marshaler interface for Wad.
func (w Wad) MarshalJSON() ([]byte, error) {
	return w.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Wad.
func (w *Wad) UnmarshalJSON(decimalBytes []byte) error {
	if err := w.value.UnmarshalJSON(decimalBytes); err != nil {
		return err
	}
	w.value = w.value.Truncate(wadScale)
	return nil
}
