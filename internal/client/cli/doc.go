// Package cli implements the interactive terminal client for cartsync.
//
// The CLI is a small REPL: the user authenticates, selects (or creates) a
// shopping list, and then edits it with short commands. Every edit is applied
// to the local database immediately and synchronized with the server in the
// background, so the CLI stays fully usable while offline.
package cli
