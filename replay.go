package mip65

import "fmt"

// Replay rebuilds a ledger's aggregate state by folding an audit record
// sequence, in emission order, into an empty ledger. Entries are established
// facts: no role or date checks are re-run. For any sequence of successful
// operations, Replay over the resulting log yields the same aggregate state
// the operations produced.
func Replay(auth Authorizer, entries []Entry) (*Ledger, error) {
	l := NewLedger(auth)
	for i, e := range entries {
		if err := l.apply(e); err != nil {
			return nil, fmt.Errorf("replay entry %d (seq %d): %w", i, e.Seq(), err)
		}
	}
	return l, nil
}
