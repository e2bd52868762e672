// Package transactions implements the transaction engine: the only write
// path into the inventory ledger.
//
// A transaction is either a sale (customer buys from the store, stock
// decrements) or a purchase (store buys from a provider, stock increments).
// The type is fixed at creation and the total price is always derived from
// the committed lines, both are rejected on update.
//
// # Commit pipeline
//
// Create resolves the counterparty (DNI for sales, CIF for purchases),
// then resolves the furniture lines strictly in order. Sale lines carry
// the (name, material, color) lookup tuple and take the catalog's current
// unit price; purchase lines carry a full item description and either top
// up an existing tuple at the catalog price or create a new catalog entry
// at the line's price. Resolution is all-or-nothing: the first failing
// line rolls back every stock delta the batch already applied, newest
// first, and catalog entries created by the batch are removed again.
//
// # Reversal
//
// Deleting a transaction reverses its stock effect before the record goes
// away. Replacing a transaction's furniture list reverses the old effect,
// resolves the new lines and re-derives the price, restoring the original
// state when anything fails. Reversing a purchase can itself fail with
// insufficient stock when the purchased units were already sold on.
//
// # Archival
//
// When object storage is configured, committed snapshots are written to
// the archive bucket as JSON documents, best effort.
package transactions
