// Package audit re-verifies the invariants the transaction engine maintains.
//
// The write paths already enforce non-negative stock and derived totals;
// the audit exists for belt-and-braces verification after migrations,
// manual database surgery or bugs. It reads, never repairs.
package audit
