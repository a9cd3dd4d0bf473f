package mip65

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeEntry marshals a single audit entry to JSON and writes it to the
// writer, followed by a newline, in JSONL format. Keys are written in a
// stable order so the log is canonical and diff-friendly.
func EncodeEntry(w io.Writer, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// EncodeLog persists the audit log to an io.Writer in JSONL format, one
// entry per line, in emission order.
func EncodeLog(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if err := EncodeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLog reads a JSONL stream of audit entries. Each line is identified
// by its command field and decoded into the matching entry type. The
// emission order is the line order; a seq recorded on a line must agree
// with it, and a missing seq (0) is filled in from the line order.
func DecodeLog(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command EntryType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		var decoded Entry
		var err error

		switch identifier.Command {
		case TypeAssetInit:
			var e AssetInit
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case TypeAssetBuy:
			var e AssetBuy
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case TypeAssetSell:
			var e AssetSell
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case TypeAssetUpdate:
			var e AssetUpdate
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case TypeCapitalIn:
			var e CapitalIn
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case TypeCapitalOut:
			var e CapitalOut
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case TypeExpense:
			var e Expense
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case TypeIncome:
			var e Income
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		default:
			err = fmt.Errorf("unknown entry command: %q", identifier.Command)
		}
		if err != nil {
			return nil, err
		}

		want := uint64(len(entries)) + 1
		if got := decoded.Seq(); got != 0 && got != want {
			return nil, fmt.Errorf("entry %q out of order: seq %d at position %d", identifier.Command, got, want)
		}
		decoded = withSeq(decoded, want)
		entries = append(entries, decoded)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return entries, nil
}

// withSeq returns a copy of the entry carrying the given emission order.
func withSeq(e Entry, seq uint64) Entry {
	switch v := e.(type) {
	case AssetInit:
		v.Sequence = seq
		return v
	case AssetBuy:
		v.Sequence = seq
		return v
	case AssetSell:
		v.Sequence = seq
		return v
	case AssetUpdate:
		v.Sequence = seq
		return v
	case CapitalIn:
		v.Sequence = seq
		return v
	case CapitalOut:
		v.Sequence = seq
		return v
	case Expense:
		v.Sequence = seq
		return v
	case Income:
		v.Sequence = seq
		return v
	default:
		return e
	}
}

// LoadLedger decodes the audit log at path and replays it into a ledger
// gated by auth. A missing file yields an empty ledger: the log is created
// by the first appended entry.
func LoadLedger(path string, auth Authorizer) (*Ledger, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(auth), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	entries, err := DecodeLog(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	return Replay(auth, entries)
}

// LoadRegistry decodes the access-control registry at path.
func LoadRegistry(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open roles file %q: %w", path, err)
	}
	defer f.Close()
	return DecodeRegistry(f)
}

// SaveRegistry writes the access-control registry to path.
func SaveRegistry(path string, r *Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create roles file %q: %w", path, err)
	}
	defer f.Close()
	return EncodeRegistry(f, r)
}
