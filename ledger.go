package mip65

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrUnknownAsset reports an operation against an asset identifier that was
// never initialized.
var ErrUnknownAsset = errors.New("unknown asset")

// ErrAssetExists reports an init call for an asset identifier that already
// exists. Registration is distinguishable from reset on purpose: resetting a
// position is expressed with signed corrections, never by re-initializing.
var ErrAssetExists = errors.New("asset already exists")

// Asset is one tradable position in the portfolio. Quantity is mutated only
// by buy and sell; the valuation fields only by update, last write wins.
type Asset struct {
	Name       string
	Quantity   Wad
	LastUpdate Date
	NAV        Wad
	Yield      Wad
	Duration   Wad
	Maturity   Wad
}

// AssetDetails is the read-only valuation tuple returned by Details. The
// zero value is returned for an unknown asset identifier.
type AssetDetails struct {
	Quantity Wad
	NAV      Wad
	Yield    Wad
	Duration Wad
	Maturity Wad
}

// Ledger is the portfolio's ledger engine. It owns the asset registry, the
// insertion order of assets, the cash balance, and the audit log; the
// injected Authorizer owns role membership.
//
// Every mutation is atomic: role check first, then date validation, then
// asset lookup, and only then a state change paired with exactly one
// appended audit entry. A failed call has no observable effect. A single
// mutex serializes mutations; queries observe a consistent snapshot.
type Ledger struct {
	mu   sync.RWMutex
	auth Authorizer
	now  func() time.Time

	assets  map[string]*Asset
	order   []string // asset identifiers in init order, append-only
	cash    Wad
	entries []Entry
}

// NewLedger creates an empty ledger gated by the given authorizer.
func NewLedger(auth Authorizer) *Ledger {
	return &Ledger{
		auth:   auth,
		now:    time.Now,
		assets: make(map[string]*Asset),
	}
}

// apply folds one audit entry into aggregate state and appends it to the
// log. It is the single mutation path shared by the operations and by
// Replay, which keeps the replay-equivalence invariant by construction.
// Role and date checks belong to the operations; apply treats entries as
// established facts.
func (l *Ledger) apply(e Entry) error {
	switch v := e.(type) {
	case AssetInit:
		if _, ok := l.assets[v.Asset]; ok {
			return fmt.Errorf("init %q: %w", v.Asset, ErrAssetExists)
		}
		l.assets[v.Asset] = &Asset{Name: v.Asset}
		l.order = append(l.order, v.Asset)
	case AssetBuy:
		a, ok := l.assets[v.Asset]
		if !ok {
			return fmt.Errorf("buy %q: %w", v.Asset, ErrUnknownAsset)
		}
		a.Quantity = a.Quantity.Add(v.Quantity)
		l.cash = l.cash.Sub(v.Quantity.Mul(v.Price))
	case AssetSell:
		a, ok := l.assets[v.Asset]
		if !ok {
			return fmt.Errorf("sell %q: %w", v.Asset, ErrUnknownAsset)
		}
		a.Quantity = a.Quantity.Sub(v.Quantity)
		l.cash = l.cash.Add(v.Quantity.Mul(v.Price))
	case AssetUpdate:
		a, ok := l.assets[v.Asset]
		if !ok {
			return fmt.Errorf("update %q: %w", v.Asset, ErrUnknownAsset)
		}
		a.NAV = v.NAV
		a.Yield = v.Yield
		a.Duration = v.Duration
		a.Maturity = v.Maturity
		a.LastUpdate = v.Date
	case CapitalIn:
		l.cash = l.cash.Add(v.Amount)
	case CapitalOut:
		l.cash = l.cash.Sub(v.Amount)
	case Expense:
		l.cash = l.cash.Sub(v.Amount)
	case Income:
		l.cash = l.cash.Add(v.Amount)
	default:
		return fmt.Errorf("unhandled entry type: %T", e)
	}
	l.entries = append(l.entries, e)
	return nil
}

// requireRole is the capability check every mutation runs first.
func (l *Ledger) requireRole(role Role, caller string, op string) error {
	if !l.auth.HasRole(role, caller) {
		return fmt.Errorf("%s as %q requires %s: %w", op, caller, role, ErrUnauthorized)
	}
	return nil
}

// nextSeq returns the emission order of the next entry, starting at 1.
func (l *Ledger) nextSeq() uint64 { return uint64(len(l.entries)) + 1 }

// Init registers a new asset identifier with a zero position and zero
// valuation. GUARDIAN only. Fails with ErrAssetExists if the identifier is
// already known; once registered an identifier persists for the ledger's
// lifetime.
func (l *Ledger) Init(caller, asset string) (AssetInit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(Guardian, caller, "init"); err != nil {
		return AssetInit{}, err
	}
	e := NewAssetInit(asset)
	e.Sequence = l.nextSeq()
	if err := l.apply(e); err != nil {
		return AssetInit{}, err
	}
	return e, nil
}

// Buy adds qty to the asset's position and debits cash by qty times price.
// OPS only. Negative figures are corrections.
func (l *Ledger) Buy(caller, asset string, day Date, qty, price Wad) (AssetBuy, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(Ops, caller, "buy"); err != nil {
		return AssetBuy{}, err
	}
	if err := day.Validate(l.now()); err != nil {
		return AssetBuy{}, fmt.Errorf("buy %q: %w", asset, err)
	}
	e := NewAssetBuy(day, asset, qty, price)
	e.Sequence = l.nextSeq()
	if err := l.apply(e); err != nil {
		return AssetBuy{}, err
	}
	return e, nil
}

// Sell removes qty from the asset's position and credits cash by qty times
// price. OPS only. Negative figures are corrections.
func (l *Ledger) Sell(caller, asset string, day Date, qty, price Wad) (AssetSell, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(Ops, caller, "sell"); err != nil {
		return AssetSell{}, err
	}
	if err := day.Validate(l.now()); err != nil {
		return AssetSell{}, fmt.Errorf("sell %q: %w", asset, err)
	}
	e := NewAssetSell(day, asset, qty, price)
	e.Sequence = l.nextSeq()
	if err := l.apply(e); err != nil {
		return AssetSell{}, err
	}
	return e, nil
}

// Update overwrites the asset's valuation fields and its last-update date.
// DATA only.
func (l *Ledger) Update(caller, asset string, day Date, nav, yield, duration, maturity Wad) (AssetUpdate, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(Data, caller, "update"); err != nil {
		return AssetUpdate{}, err
	}
	if err := day.Validate(l.now()); err != nil {
		return AssetUpdate{}, fmt.Errorf("update %q: %w", asset, err)
	}
	e := NewAssetUpdate(day, asset, nav, yield, duration, maturity)
	e.Sequence = l.nextSeq()
	if err := l.apply(e); err != nil {
		return AssetUpdate{}, err
	}
	return e, nil
}

// AddCapital credits external capital to the cash balance. OPS only.
func (l *Ledger) AddCapital(caller string, day Date, amount Wad) (CapitalIn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(Ops, caller, "add-capital"); err != nil {
		return CapitalIn{}, err
	}
	if err := day.Validate(l.now()); err != nil {
		return CapitalIn{}, fmt.Errorf("add-capital: %w", err)
	}
	e := NewCapitalIn(day, amount)
	e.Sequence = l.nextSeq()
	if err := l.apply(e); err != nil {
		return CapitalIn{}, err
	}
	return e, nil
}

// RemoveCapital debits returned capital from the cash balance. OPS only.
func (l *Ledger) RemoveCapital(caller string, day Date, amount Wad) (CapitalOut, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(Ops, caller, "remove-capital"); err != nil {
		return CapitalOut{}, err
	}
	if err := day.Validate(l.now()); err != nil {
		return CapitalOut{}, fmt.Errorf("remove-capital: %w", err)
	}
	e := NewCapitalOut(day, amount)
	e.Sequence = l.nextSeq()
	if err := l.apply(e); err != nil {
		return CapitalOut{}, err
	}
	return e, nil
}

// Expense debits an operating cost from the cash balance. OPS only.
func (l *Ledger) Expense(caller string, day Date, amount Wad, reason string) (Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(Ops, caller, "expense"); err != nil {
		return Expense{}, err
	}
	if err := day.Validate(l.now()); err != nil {
		return Expense{}, fmt.Errorf("expense: %w", err)
	}
	e := NewExpense(day, amount, reason)
	e.Sequence = l.nextSeq()
	if err := l.apply(e); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// Income credits revenue to the cash balance. OPS only.
func (l *Ledger) Income(caller string, day Date, amount Wad, reason string) (Income, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(Ops, caller, "income"); err != nil {
		return Income{}, err
	}
	if err := day.Validate(l.now()); err != nil {
		return Income{}, fmt.Errorf("income: %w", err)
	}
	e := NewIncome(day, amount, reason)
	e.Sequence = l.nextSeq()
	if err := l.apply(e); err != nil {
		return Income{}, err
	}
	return e, nil
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() Wad {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cash
}

// Value returns the portfolio's net asset value: cash plus the sum over all
// assets, in init order, of quantity times NAV.
func (l *Ledger) Value() Wad {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := l.cash
	for _, name := range l.order {
		a := l.assets[name]
		total = total.Add(a.Quantity.Mul(a.NAV))
	}
	return total
}

// Assets returns the asset identifiers in the exact order init was called.
// The order never reshuffles, including across corrections and updates.
func (l *Ledger) Assets() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Details returns the asset's position and valuation tuple. An unknown
// identifier yields the zero tuple rather than an error; callers that need
// to distinguish should consult Assets.
func (l *Ledger) Details(asset string) AssetDetails {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.assets[asset]
	if !ok {
		return AssetDetails{}
	}
	return AssetDetails{
		Quantity: a.Quantity,
		NAV:      a.NAV,
		Yield:    a.Yield,
		Duration: a.Duration,
		Maturity: a.Maturity,
	}
}

// LastUpdate returns the bookkeeping date of the asset's most recent
// valuation update, zero for an unknown or never-updated asset.
func (l *Ledger) LastUpdate(asset string) Date {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.assets[asset]
	if !ok {
		return 0
	}
	return a.LastUpdate
}

// Entries returns a copy of the audit log in emission order.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
