// Package telegram is a minimal Bot API client covering the handful of
// methods the daemon needs: long-polling for updates, sending messages with
// optional inline keyboards, answering callback queries, and membership
// lookups used for subscription gating.
package telegram
