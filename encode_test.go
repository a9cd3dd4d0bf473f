package mip65

import (
	"bytes"
	"strings"
	"testing"
)

// buildTestLog runs one of every operation against a fresh ledger.
func buildTestLog(t *testing.T) *Ledger {
	t.Helper()
	l := newTestLedger(t)

	ops := []func() error{
		func() error { _, err := l.AddCapital("oscar", testDay, W(1000)); return err },
		func() error { _, err := l.Init("root", "RWA007"); return err },
		func() error { _, err := l.Buy("oscar", "RWA007", testDay, W(2), W(100)); return err },
		func() error {
			_, err := l.Update("dana", "RWA007", testDay, MustParseWad("101.25"), MustParseWad("4.5"), W(0), W(0))
			return err
		},
		func() error { _, err := l.Expense("oscar", testDay, W(25), "audit fee"); return err },
		func() error { _, err := l.Income("oscar", testDay, W(10), ""); return err },
		func() error { _, err := l.Sell("oscar", "RWA007", testDay, W(1), W(110)); return err },
		func() error { _, err := l.RemoveCapital("oscar", testDay, W(50)); return err },
	}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
	}
	return l
}

func TestEncodeLogGolden(t *testing.T) {
	l := buildTestLog(t)

	var buf bytes.Buffer
	if err := EncodeLog(&buf, l.Entries()); err != nil {
		t.Fatalf("encode: %v", err)
	}

	// canonical form: stable key order, unquoted decimals, ISO dates,
	// optional fields omitted when empty
	want := strings.Join([]string{
		`{"command":"capital-in","seq":1,"date":"2025-06-01","amount":1000}`,
		`{"command":"asset-init","seq":2,"asset":"RWA007"}`,
		`{"command":"asset-buy","seq":3,"date":"2025-06-01","asset":"RWA007","qty":2,"price":100}`,
		`{"command":"asset-update","seq":4,"date":"2025-06-01","asset":"RWA007","nav":101.25,"yield":4.5,"duration":0,"maturity":0}`,
		`{"command":"expense","seq":5,"date":"2025-06-01","amount":25,"reason":"audit fee"}`,
		`{"command":"income","seq":6,"date":"2025-06-01","amount":10}`,
		`{"command":"asset-sell","seq":7,"date":"2025-06-01","asset":"RWA007","qty":1,"price":110}`,
		`{"command":"capital-out","seq":8,"date":"2025-06-01","amount":50}`,
	}, "\n") + "\n"

	if got := buf.String(); got != want {
		t.Errorf("encoded log mismatch:\ngot:\n%swant:\n%s", got, want)
	}
}

func TestLogRoundTripReplay(t *testing.T) {
	l := buildTestLog(t)

	var buf bytes.Buffer
	if err := EncodeLog(&buf, l.Entries()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeLog(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	original := l.Entries()
	if len(decoded) != len(original) {
		t.Fatalf("decoded %d entries, want %d", len(decoded), len(original))
	}
	for i := range original {
		if !original[i].Equal(decoded[i]) {
			t.Errorf("entry %d does not survive the round trip:\n  %#v\n  %#v", i, original[i], decoded[i])
		}
	}

	// replaying the decoded log reconstructs the exact same state
	replayed, err := Replay(NewRegistry("root"), decoded)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !replayed.Cash().Equal(l.Cash()) {
		t.Errorf("replayed cash %s, want %s", replayed.Cash(), l.Cash())
	}
	if !replayed.Value().Equal(l.Value()) {
		t.Errorf("replayed value %s, want %s", replayed.Value(), l.Value())
	}
	if got, want := replayed.Assets(), l.Assets(); len(got) != len(want) || got[0] != want[0] {
		t.Errorf("replayed assets %v, want %v", got, want)
	}
	d, want := replayed.Details("RWA007"), l.Details("RWA007")
	if !d.Quantity.Equal(want.Quantity) || !d.NAV.Equal(want.NAV) ||
		!d.Yield.Equal(want.Yield) || !d.Duration.Equal(want.Duration) ||
		!d.Maturity.Equal(want.Maturity) {
		t.Errorf("replayed details %+v, want %+v", d, want)
	}
}

func TestDecodeLogFillsMissingSeq(t *testing.T) {
	in := strings.Join([]string{
		`{"command":"asset-init","asset":"RWA007"}`,
		``,
		`{"command":"capital-in","date":"2025-06-01","amount":100}`,
	}, "\n")

	entries, err := DecodeLog(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("decoded %d entries, want 2 (empty line skipped)", len(entries))
	}
	if entries[0].Seq() != 1 || entries[1].Seq() != 2 {
		t.Errorf("seqs = %d, %d, want 1, 2", entries[0].Seq(), entries[1].Seq())
	}
}

func TestDecodeLogRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown command", `{"command":"asset-burn","asset":"RWA007"}`},
		{"seq out of order", `{"command":"asset-init","seq":7,"asset":"RWA007"}`},
		{"not json", `asset-init RWA007`},
		{"bad date", `{"command":"capital-in","seq":1,"date":"june first","amount":1}`},
	}
	for _, tt := range tests {
		if _, err := DecodeLog(strings.NewReader(tt.in)); err == nil {
			t.Errorf("%s: want error, got none", tt.name)
		}
	}
}

func TestReplayRejectsInvalidLog(t *testing.T) {
	// a buy for an asset that was never initialized cannot replay
	entries := []Entry{
		NewAssetBuy(testDay, "GHOST", W(1), W(1)),
	}
	if _, err := Replay(NewRegistry("root"), entries); err == nil {
		t.Error("want error, got none")
	}
}
