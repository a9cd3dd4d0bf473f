package mip65

import (
	"errors"
	"testing"
	"time"
)

// newTestLedger builds a ledger with a fixed clock and three principals:
// root (ADMIN, GUARDIAN), dana (DATA) and oscar (OPS).
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	r := NewRegistry("root")
	if err := r.GrantRole("root", Data, "dana"); err != nil {
		t.Fatal(err)
	}
	if err := r.GrantRole("root", Ops, "oscar"); err != nil {
		t.Fatal(err)
	}
	l := NewLedger(r)
	l.now = func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) }
	return l
}

var testDay = NewDate(2025, 6, 1)

func TestInit(t *testing.T) {
	l := newTestLedger(t)

	e, err := l.Init("root", "RWA007")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if e.Seq() != 1 || e.Asset != "RWA007" || !e.When().IsZero() {
		t.Errorf("unexpected entry: %+v", e)
	}
	if got := l.Assets(); len(got) != 1 || got[0] != "RWA007" {
		t.Errorf("Assets() = %v", got)
	}

	// registration is permanent, a second init is rejected
	if _, err := l.Init("root", "RWA007"); !errors.Is(err, ErrAssetExists) {
		t.Errorf("duplicate init: want ErrAssetExists, got %v", err)
	}
	if got := len(l.Entries()); got != 1 {
		t.Errorf("failed init appended an entry: log has %d", got)
	}
}

func TestRoleGating(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.Init("root", "RWA007"); err != nil {
		t.Fatal(err)
	}

	// every mutation, invoked by a caller lacking the required role
	tests := []struct {
		name string
		call func(caller string) error
	}{
		{"init", func(c string) error { _, err := l.Init(c, "OTHER"); return err }},
		{"buy", func(c string) error { _, err := l.Buy(c, "RWA007", testDay, W(1), W(1)); return err }},
		{"sell", func(c string) error { _, err := l.Sell(c, "RWA007", testDay, W(1), W(1)); return err }},
		{"update", func(c string) error { _, err := l.Update(c, "RWA007", testDay, W(1), W(0), W(0), W(0)); return err }},
		{"add-capital", func(c string) error { _, err := l.AddCapital(c, testDay, W(1)); return err }},
		{"remove-capital", func(c string) error { _, err := l.RemoveCapital(c, testDay, W(1)); return err }},
		{"expense", func(c string) error { _, err := l.Expense(c, testDay, W(1), ""); return err }},
		{"income", func(c string) error { _, err := l.Income(c, testDay, W(1), ""); return err }},
	}

	// dana holds DATA only, oscar holds OPS only
	outsiders := map[string]string{
		"init":           "oscar",
		"buy":            "dana",
		"sell":           "dana",
		"update":         "oscar",
		"add-capital":    "dana",
		"remove-capital": "dana",
		"expense":        "dana",
		"income":         "dana",
	}

	before := len(l.Entries())
	cash := l.Cash()
	for _, tt := range tests {
		if err := tt.call(outsiders[tt.name]); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("%s as %q: want ErrUnauthorized, got %v", tt.name, outsiders[tt.name], err)
		}
	}
	if got := len(l.Entries()); got != before {
		t.Errorf("unauthorized calls appended entries: %d -> %d", before, got)
	}
	if !l.Cash().Equal(cash) {
		t.Error("unauthorized calls changed the cash balance")
	}

	// root holds ADMIN and GUARDIAN but neither DATA nor OPS
	if _, err := l.Buy("root", "RWA007", testDay, W(1), W(1)); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("buy as root: want ErrUnauthorized, got %v", err)
	}
}

func TestDateDiscipline(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.Init("root", "RWA007"); err != nil {
		t.Fatal(err)
	}

	for name, day := range map[string]Date{
		"zero":       0,
		"misaligned": testDay + 1,
		"future":     NewDate(2025, 6, 3),
	} {
		if _, err := l.Buy("oscar", "RWA007", day, W(1), W(1)); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("buy with %s date: want ErrInvalidDate, got %v", name, err)
		}
	}
	if got := len(l.Entries()); got != 1 {
		t.Errorf("invalid dates appended entries: log has %d", got)
	}
}

func TestUnknownAsset(t *testing.T) {
	l := newTestLedger(t)

	if _, err := l.Buy("oscar", "GHOST", testDay, W(1), W(1)); !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("buy: want ErrUnknownAsset, got %v", err)
	}
	if _, err := l.Sell("oscar", "GHOST", testDay, W(1), W(1)); !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("sell: want ErrUnknownAsset, got %v", err)
	}
	if _, err := l.Update("dana", "GHOST", testDay, W(1), W(0), W(0), W(0)); !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("update: want ErrUnknownAsset, got %v", err)
	}

	// reads stay soft: unknown identifiers yield zero values, not errors
	if d := l.Details("GHOST"); d != (AssetDetails{}) {
		t.Errorf("Details of unknown asset = %+v", d)
	}
	if d := l.LastUpdate("GHOST"); !d.IsZero() {
		t.Errorf("LastUpdate of unknown asset = %s", d)
	}
}

func TestCashAndValue(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.AddCapital("oscar", testDay, W(1000)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Init("root", "RWA007"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Init("root", "RWA008"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Buy("oscar", "RWA007", testDay, W(2), W(100)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Buy("oscar", "RWA008", testDay, W(3), W(50)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Update("dana", "RWA007", testDay, W(100), W(0), W(0), W(0)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Update("dana", "RWA008", testDay, W(50), W(0), W(0), W(0)); err != nil {
		t.Fatal(err)
	}

	// 1000 - 200 - 150 spent, positions worth 200 + 150 at NAV
	if got := l.Cash(); !got.Equal(W(650)) {
		t.Errorf("Cash() = %s, want 650", got)
	}
	if got := l.Value(); !got.Equal(W(1000)) {
		t.Errorf("Value() = %s, want 1000", got)
	}

	if _, err := l.Sell("oscar", "RWA008", testDay, W(1), W(60)); err != nil {
		t.Fatal(err)
	}
	if got := l.Cash(); !got.Equal(W(710)) {
		t.Errorf("Cash() after sell = %s, want 710", got)
	}
	// 710 cash + 2*100 + 2*50
	if got := l.Value(); !got.Equal(W(1010)) {
		t.Errorf("Value() after sell = %s, want 1010", got)
	}
}

func TestCorrectionByNegation(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.Init("root", "RWA007"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Buy("oscar", "RWA007", testDay, W(5), W(10)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Buy("oscar", "RWA007", testDay, W(-5), W(10)); err != nil {
		t.Fatal(err)
	}

	if got := l.Details("RWA007").Quantity; !got.IsZero() {
		t.Errorf("quantity after correction = %s, want 0", got)
	}
	if got := l.Cash(); !got.IsZero() {
		t.Errorf("cash after correction = %s, want 0", got)
	}
	// both records stay in the log, the correction does not erase its target
	if got := len(l.Entries()); got != 3 {
		t.Errorf("log has %d entries, want 3", got)
	}
}

func TestUpdateLastWriteWins(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.Init("root", "RWA007"); err != nil {
		t.Fatal(err)
	}
	earlier := NewDate(2025, 5, 1)
	if _, err := l.Update("dana", "RWA007", testDay, W(100), W(4), W(2), W(365)); err != nil {
		t.Fatal(err)
	}
	// a correction with an earlier date is legal and still wins, emission order rules
	if _, err := l.Update("dana", "RWA007", earlier, W(99), W(0), W(0), W(0)); err != nil {
		t.Fatal(err)
	}

	d := l.Details("RWA007")
	if !d.NAV.Equal(W(99)) || !d.Yield.IsZero() || !d.Duration.IsZero() || !d.Maturity.IsZero() {
		t.Errorf("details = %+v, want the second update's figures", d)
	}
	if got := l.LastUpdate("RWA007"); got != earlier {
		t.Errorf("LastUpdate = %s, want %s", got, earlier)
	}
}

func TestAssetsOrderIsStable(t *testing.T) {
	l := newTestLedger(t)
	names := []string{"ZULU", "ALFA", "MIKE"}
	for _, n := range names {
		if _, err := l.Init("root", n); err != nil {
			t.Fatal(err)
		}
	}
	// mutations never reshuffle the registration order
	if _, err := l.Buy("oscar", "ALFA", testDay, W(1), W(1)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Update("dana", "MIKE", testDay, W(1), W(0), W(0), W(0)); err != nil {
		t.Fatal(err)
	}

	got := l.Assets()
	if len(got) != len(names) {
		t.Fatalf("Assets() = %v", got)
	}
	for i := range names {
		if got[i] != names[i] {
			t.Fatalf("Assets() = %v, want %v", got, names)
		}
	}
}

func TestSequenceNumbers(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.Init("root", "RWA007"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddCapital("oscar", testDay, W(100)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Expense("oscar", testDay, W(10), "audit fee"); err != nil {
		t.Fatal(err)
	}

	for i, e := range l.Entries() {
		if want := uint64(i) + 1; e.Seq() != want {
			t.Errorf("entry %d has seq %d, want %d", i, e.Seq(), want)
		}
	}
}
