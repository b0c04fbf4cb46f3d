// Package server holds the HTTP server configuration.
//
// The serve command owns the server lifecycle; this package only defines the
// settings it needs (listen port and API key) so that core/config can embed them.
package server
