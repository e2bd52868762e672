// Package catalog implements the furniture catalog and the inventory ledger.
//
// The catalog is the only shared mutable resource the transaction engine
// touches. Catalog identity is the (name, material, color) tuple, enforced
// by a unique index, two entries may share a name as long as material or
// color differ.
//
// # Inventory Ledger
//
// The Ledger owns the quantity column. Every stock movement is a single
// conditional UPDATE ("quantity = quantity + delta" guarded by
// "quantity + delta >= 0") so concurrent transactions on the same item
// cannot lose updates or drive the stock negative. Nothing else in the
// repository writes quantity, the catalog's own create and patch surfaces
// reject it.
//
// # Components
//
//   - Store: tuple/id lookups, search, create, update, delete.
//   - Ledger: atomic signed stock adjustments.
//   - Service: CRUD orchestration and field validation.
//   - Handler: HTTP endpoints under /furnitures.
package catalog
