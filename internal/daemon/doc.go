// Package daemon orchestrates the long-running process: a single-instance
// file lock, the Bot API long-poll loop with per-update fault isolation, and
// the periodic sweep of idle authoring sessions.
package daemon
