package mip65

// EntryType is a typed string identifying the operation an audit entry records.
type EntryType string

// Entry types used for identifying audit records.
const (
	TypeAssetInit   EntryType = "asset-init"
	TypeAssetBuy    EntryType = "asset-buy"
	TypeAssetSell   EntryType = "asset-sell"
	TypeAssetUpdate EntryType = "asset-update"
	TypeCapitalIn   EntryType = "capital-in"
	TypeCapitalOut  EntryType = "capital-out"
	TypeExpense     EntryType = "expense"
	TypeIncome      EntryType = "income"
)

// Entry is the common interface of all audit records. An entry is immutable
// once appended: it is never edited or deleted, and aggregate state is
// always reconstructible by replaying all entries in emission order.
//
// Quantities and amounts are signed by convention: resubmitting the negation
// of a previous entry's figure reverses its aggregate effect. There is no
// automatic linkage between a correction and the record it corrects;
// reconciliation is external.
type Entry interface {
	What() EntryType // What returns the operation this entry records.
	When() Date      // When returns the bookkeeping date (zero for asset-init).
	Seq() uint64     // Seq returns the emission order, starting at 1.
	Equal(Entry) bool
}

type baseEntry struct {
	Command  EntryType `json:"command"` // Command identifies the operation.
	Sequence uint64    `json:"seq"`     // Sequence is the emission order, assigned at append time.
	Date     Date      `json:"date"`    // Date is the bookkeeping date supplied by the caller.
}

func (e baseEntry) What() EntryType { return e.Command }
func (e baseEntry) When() Date      { return e.Date }
func (e baseEntry) Seq() uint64     { return e.Sequence }

// MarshalJSON implements the json.Marshaler interface for baseEntry.
func (e baseEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", e.Command)
	w.Append("seq", e.Sequence)
	w.Optional("date", e.Date)
	return w.MarshalJSON()
}

// assetEntry is a component for asset-scoped entries (init, buy, sell, update).
type assetEntry struct {
	baseEntry
	Asset string `json:"asset"` // Asset is the identifier of the asset involved.
}

// MarshalJSON implements the json.Marshaler interface for assetEntry.
func (e assetEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEntry)
	w.Append("asset", e.Asset)
	return w.MarshalJSON()
}

// AssetInit records the registration of a new asset identifier. It is the
// only entry without a bookkeeping date.
type AssetInit struct {
	assetEntry
}

// NewAssetInit creates a new AssetInit entry.
func NewAssetInit(asset string) AssetInit {
	return AssetInit{
		assetEntry: assetEntry{baseEntry: baseEntry{Command: TypeAssetInit}, Asset: asset},
	}
}

func (e AssetInit) Equal(other Entry) bool {
	o, ok := other.(AssetInit)
	return ok && e.assetEntry == o.assetEntry
}

// AssetBuy records a purchase: quantity added to the position, quantity
// times price debited from cash.
type AssetBuy struct {
	assetEntry
	Quantity Wad `json:"qty"`   // Quantity is the number of units bought (signed).
	Price    Wad `json:"price"` // Price is the unit price paid (signed).
}

// NewAssetBuy creates a new AssetBuy entry.
func NewAssetBuy(day Date, asset string, qty, price Wad) AssetBuy {
	return AssetBuy{
		assetEntry: assetEntry{baseEntry: baseEntry{Command: TypeAssetBuy, Date: day}, Asset: asset},
		Quantity:   qty,
		Price:      price,
	}
}

// MarshalJSON implements the json.Marshaler interface for AssetBuy.
func (e AssetBuy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.assetEntry)
	w.Append("qty", e.Quantity)
	w.Append("price", e.Price)
	return w.MarshalJSON()
}

func (e AssetBuy) Equal(other Entry) bool {
	o, ok := other.(AssetBuy)
	return ok && e.assetEntry == o.assetEntry && e.Quantity.Equal(o.Quantity) && e.Price.Equal(o.Price)
}

// AssetSell records a sale: quantity removed from the position, quantity
// times price credited to cash.
type AssetSell struct {
	assetEntry
	Quantity Wad `json:"qty"`   // Quantity is the number of units sold (signed).
	Price    Wad `json:"price"` // Price is the unit price received (signed).
}

// NewAssetSell creates a new AssetSell entry.
func NewAssetSell(day Date, asset string, qty, price Wad) AssetSell {
	return AssetSell{
		assetEntry: assetEntry{baseEntry: baseEntry{Command: TypeAssetSell, Date: day}, Asset: asset},
		Quantity:   qty,
		Price:      price,
	}
}

// MarshalJSON implements the json.Marshaler interface for AssetSell.
func (e AssetSell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.assetEntry)
	w.Append("qty", e.Quantity)
	w.Append("price", e.Price)
	return w.MarshalJSON()
}

func (e AssetSell) Equal(other Entry) bool {
	o, ok := other.(AssetSell)
	return ok && e.assetEntry == o.assetEntry && e.Quantity.Equal(o.Quantity) && e.Price.Equal(o.Price)
}

// AssetUpdate records a valuation refresh. Valuation fields are
// last-write-wins on the asset.
type AssetUpdate struct {
	assetEntry
	NAV      Wad `json:"nav"` // NAV is the net asset value per unit.
	Yield    Wad `json:"yield"`
	Duration Wad `json:"duration"`
	Maturity Wad `json:"maturity"`
}

// NewAssetUpdate creates a new AssetUpdate entry.
func NewAssetUpdate(day Date, asset string, nav, yield, duration, maturity Wad) AssetUpdate {
	return AssetUpdate{
		assetEntry: assetEntry{baseEntry: baseEntry{Command: TypeAssetUpdate, Date: day}, Asset: asset},
		NAV:        nav,
		Yield:      yield,
		Duration:   duration,
		Maturity:   maturity,
	}
}

// MarshalJSON implements the json.Marshaler interface for AssetUpdate.
func (e AssetUpdate) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.assetEntry)
	w.Append("nav", e.NAV)
	w.Append("yield", e.Yield)
	w.Append("duration", e.Duration)
	w.Append("maturity", e.Maturity)
	return w.MarshalJSON()
}

func (e AssetUpdate) Equal(other Entry) bool {
	o, ok := other.(AssetUpdate)
	return ok && e.assetEntry == o.assetEntry &&
		e.NAV.Equal(o.NAV) && e.Yield.Equal(o.Yield) &&
		e.Duration.Equal(o.Duration) && e.Maturity.Equal(o.Maturity)
}

// CapitalIn records external capital added to the cash balance.
type CapitalIn struct {
	baseEntry
	Amount Wad `json:"amount"` // Amount is the cash added (signed).
}

// NewCapitalIn creates a new CapitalIn entry.
func NewCapitalIn(day Date, amount Wad) CapitalIn {
	return CapitalIn{baseEntry: baseEntry{Command: TypeCapitalIn, Date: day}, Amount: amount}
}

// MarshalJSON implements the json.Marshaler interface for CapitalIn.
func (e CapitalIn) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEntry)
	w.Append("amount", e.Amount)
	return w.MarshalJSON()
}

func (e CapitalIn) Equal(other Entry) bool {
	o, ok := other.(CapitalIn)
	return ok && e.baseEntry == o.baseEntry && e.Amount.Equal(o.Amount)
}

// CapitalOut records capital returned out of the cash balance.
type CapitalOut struct {
	baseEntry
	Amount Wad `json:"amount"` // Amount is the cash removed (signed).
}

// NewCapitalOut creates a new CapitalOut entry.
func NewCapitalOut(day Date, amount Wad) CapitalOut {
	return CapitalOut{baseEntry: baseEntry{Command: TypeCapitalOut, Date: day}, Amount: amount}
}

// MarshalJSON implements the json.Marshaler interface for CapitalOut.
func (e CapitalOut) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEntry)
	w.Append("amount", e.Amount)
	return w.MarshalJSON()
}

func (e CapitalOut) Equal(other Entry) bool {
	o, ok := other.(CapitalOut)
	return ok && e.baseEntry == o.baseEntry && e.Amount.Equal(o.Amount)
}

// Expense records an operating cost debited from cash.
type Expense struct {
	baseEntry
	Amount Wad    `json:"amount"` // Amount is the cash debited (signed).
	Reason string `json:"reason,omitempty"` // Reason is a free-form note for reconciliation.
}

// NewExpense creates a new Expense entry.
func NewExpense(day Date, amount Wad, reason string) Expense {
	return Expense{baseEntry: baseEntry{Command: TypeExpense, Date: day}, Amount: amount, Reason: reason}
}

// MarshalJSON implements the json.Marshaler interface for Expense.
func (e Expense) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEntry)
	w.Append("amount", e.Amount)
	w.Optional("reason", e.Reason)
	return w.MarshalJSON()
}

func (e Expense) Equal(other Entry) bool {
	o, ok := other.(Expense)
	return ok && e.baseEntry == o.baseEntry && e.Amount.Equal(o.Amount) && e.Reason == o.Reason
}

// Income records revenue credited to cash.
type Income struct {
	baseEntry
	Amount Wad    `json:"amount"` // Amount is the cash credited (signed).
	Reason string `json:"reason,omitempty"` // Reason is a free-form note for reconciliation.
}

// NewIncome creates a new Income entry.
func NewIncome(day Date, amount Wad, reason string) Income {
	return Income{baseEntry: baseEntry{Command: TypeIncome, Date: day}, Amount: amount, Reason: reason}
}

// MarshalJSON implements the json.Marshaler interface for Income.
func (e Income) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEntry)
	w.Append("amount", e.Amount)
	w.Optional("reason", e.Reason)
	return w.MarshalJSON()
}

func (e Income) Equal(other Entry) bool {
	o, ok := other.(Income)
	return ok && e.baseEntry == o.baseEntry && e.Amount.Equal(o.Amount) && e.Reason == o.Reason
}
