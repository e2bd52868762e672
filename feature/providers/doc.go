// Package providers implements the provider registry.
//
// Providers are identified by CIF (checksum-validated). The transaction
// engine resolves a purchase's CIF to the internal provider id at creation
// time and stores only the id, provider records are read-only from its
// perspective.
package providers
