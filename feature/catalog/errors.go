package catalog

import "errors"

var (
	// ErrNotFound is returned when no catalog entry matches the lookup.
	ErrNotFound = errors.New("furniture not found")
	// ErrInsufficientStock is returned by the ledger when a decrement
	// would drive the on-hand quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicateTuple is returned when a create collides with an
	// existing (name, material, color) tuple.
	ErrDuplicateTuple = errors.New("furniture with this name, material and color already exists")
	// ErrQuantityReadOnly is returned when a caller tries to set the stock
	// quantity directly. Stock only moves through transactions.
	ErrQuantityReadOnly = errors.New("quantity can only be modified through transactions")
	// ErrInvalidFurniture is returned when the submitted furniture fails
	// field validation. It is wrapped with the concrete reason.
	ErrInvalidFurniture = errors.New("invalid furniture")
	// ErrInvalidQuery is returned for search filters outside the schema.
	ErrInvalidQuery = errors.New("invalid search parameters, possible fields are: name, description, material and color")
)
