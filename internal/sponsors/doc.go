// Package sponsors maintains the gating list of sponsor channels and the
// cached subscription verdicts computed against it.
//
// The list is the universe every gating decision is evaluated over, so any
// mutation (add or remove, whoever triggered it) resets the cached verdict
// of every user. The cache has no TTL of its own; list-version invalidation
// is the only path from a stored true back to false besides an explicit
// recheck.
package sponsors
