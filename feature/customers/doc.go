// Package customers implements the customer registry.
//
// Customers are identified by DNI (checksum-validated). The transaction
// engine resolves a sale's DNI to the internal customer id at creation
// time and stores only the id, customer records are read-only from its
// perspective.
package customers
