package transactions

import "errors"

// The transaction engine surfaces every failure as one of these kinds.
// Resolution failures are returned to the caller verbatim, anything else
// coming out of the storage layer is reported as an internal fault by the
// handler without leaking details.
var (
	// ErrInvalidType is returned when the submitted type is neither Sale
	// nor Purchase.
	ErrInvalidType = errors.New("invalid transaction type")
	// ErrMissingCounterparty is returned when a sale lacks a dni or a
	// purchase lacks a cif.
	ErrMissingCounterparty = errors.New("missing counterparty identifier")
	// ErrCustomerNotFound is returned when the sale's DNI is not registered.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProviderNotFound is returned when the purchase's CIF is not registered.
	ErrProviderNotFound = errors.New("provider not found")
	// ErrTransactionNotFound is returned when no transaction matches the id.
	ErrTransactionNotFound = errors.New("transaction not found")

	// The furniture lookup reports the deepest matching prefix of the
	// (name, material, color) tuple so callers can pinpoint the mismatch.
	ErrFurnitureNameNotFound     = errors.New("furniture name not found")
	ErrFurnitureMaterialNotFound = errors.New("furniture material not found")
	ErrFurnitureColorNotFound    = errors.New("furniture color not found")

	// ErrInvalidQuantity is returned for a line quantity of zero or less.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrInsufficientStock is returned when a sale asks for more units than
	// are on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidLine is returned when a purchase line describing a new
	// catalog entry fails field validation.
	ErrInvalidLine = errors.New("invalid furniture line")

	// ErrTypeImmutable is returned when an update tries to change the type.
	ErrTypeImmutable = errors.New("transaction type cannot be modified")
	// ErrPriceImmutable is returned when an update tries to set the price
	// directly, it is only a derived effect of changing the furniture lines.
	ErrPriceImmutable = errors.New("transaction price is derived and cannot be set")
	// ErrInvalidUpdate is returned when a patch carries fields outside
	// {date, customer, provider, furniture}.
	ErrInvalidUpdate = errors.New("update is not permitted")
	// ErrConfirmationRequired gates the bulk delete of all transactions.
	ErrConfirmationRequired = errors.New("bulk delete requires confirmation")
)
