package mip65

import "testing"

func TestParseWad(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "0", want: "0"},
		{in: "1000", want: "1000"},
		{in: "-42.5", want: "-42.5"},
		{in: "0.000000000000000001", want: "0.000000000000000001"},
		// the 19th fractional digit is truncated, not rounded
		{in: "0.0000000000000000019", want: "0.000000000000000001"},
		{in: "-0.0000000000000000019", want: "-0.000000000000000001"},
		{in: "not-a-number", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseWad(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseWad(%q): want error, got %s", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWad(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseWad(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWadMulTruncates(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{a: "2", b: "100", want: "200"},
		{a: "1.5", b: "1.5", want: "2.25"},
		// product has 19 fractional digits, renormalized by truncation toward zero
		{a: "0.000000000000000003", b: "0.5", want: "0.000000000000000001"},
		{a: "-0.000000000000000003", b: "0.5", want: "-0.000000000000000001"},
		{a: "0.000000000000000001", b: "0.1", want: "0"},
	}
	for _, tt := range tests {
		got := MustParseWad(tt.a).Mul(MustParseWad(tt.b))
		if got.String() != tt.want {
			t.Errorf("%s * %s = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWadArithmetic(t *testing.T) {
	a, b := W(10), MustParseWad("2.5")
	if got := a.Add(b); !got.Equal(MustParseWad("12.5")) {
		t.Errorf("10 + 2.5 = %s", got)
	}
	if got := a.Sub(b); !got.Equal(MustParseWad("7.5")) {
		t.Errorf("10 - 2.5 = %s", got)
	}
	if got := b.Neg(); !got.Equal(MustParseWad("-2.5")) {
		t.Errorf("-(2.5) = %s", got)
	}
	if !b.Neg().IsNegative() || !b.IsPositive() || !W(0).IsZero() {
		t.Error("sign predicates disagree")
	}
	if !b.LessThan(a) || a.LessThan(b) {
		t.Error("LessThan disagrees")
	}
}
