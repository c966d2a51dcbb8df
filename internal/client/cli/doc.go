// Package cli provides the interactive featurevote command-line client.
//
// It wires configuration, the local session store, API services and an
// interactive REPL. Typical flow: restore a cached session (or log in),
// start a background connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout, with the session token cached locally
//   - List features by votes or recency, show a single feature
//   - Propose a feature, toggle a vote, delete an owned feature
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
