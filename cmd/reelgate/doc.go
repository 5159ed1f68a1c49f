// Package main hosts the reelgate CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the bot daemon, scaffolds and validates
// configuration, and performs offline catalog and sponsor-list maintenance
// against the same SQLite store the daemon uses. Keep this package lean: add
// new functionality in the internal packages first, then surface it here.
package main
