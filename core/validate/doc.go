// Package validate holds format validators for Spanish identifiers.
//
// Customers are identified by DNI and providers by CIF, both of which carry
// a checksum character that is verified here, not just the shape. Contact
// phone numbers and postal codes are validated by shape and range.
package validate
