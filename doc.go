// Package mip65 implements an append-only accounting ledger for the MIP65
// real-world-asset portfolio. It is designed to be local-first, auditable,
// and replayable: the audit trail is the authoritative historical source,
// and every aggregate figure is a cache derived from it.
//
// The core functionalities include:
//   - Ledger Engine: role-gated mutations (init, buy, sell, update, capital
//     movements, expenses, income) applied to aggregate state and recorded
//     as immutable, totally ordered audit entries.
//   - Access Control Registry: a small role hierarchy (ADMIN, GUARDIAN,
//     DATA, OPS) answering who may invoke which operation, injected into
//     the engine as a capability check.
//   - Fixed-Point Arithmetic: all quantities, prices, and valuation figures
//     carry 18 implied fractional digits; multiplication truncates toward
//     zero on renormalization.
//   - Data Persistence: encoding and decoding of the audit log to and from
//     a human-readable, version-controllable JSONL format, and replay of
//     that log back into aggregate state.
//
// Corrections never rewrite history: any entry is reversed by resubmitting
// its negative, which is itself a new audit entry.
//
// This package serves as the foundational logic for the `mip` command-line
// tool.
package mip65
