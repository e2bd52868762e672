// Package server holds the HTTP server configuration.
//
// While the cmd package handles the server startup, this package defines the
// configuration structure for server settings (listen port, API key).
//
// It is primarily consumed by core/config, which embeds the server settings
// into the application-wide configuration.
package server
