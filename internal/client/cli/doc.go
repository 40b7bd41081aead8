// Package cli provides the interactive catalog command-line client.
//
// It wires configuration, the HTTP client, the caching store and the catalog
// service, then runs a REPL that browses and edits models, tests, results and
// comments. Reads are served from the store's cache unless refresh mode is
// on (toggle it with the "refresh" command).
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// ctx is canceled. See runREPL for the command set.
package cli
