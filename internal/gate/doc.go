// Package gate decides whether a user may be served, combining the sponsor
// gating list, the cached per-user verdict, and the external membership
// oracle.
//
// Evaluate is the hot path: privilege bypasses everything, a cached true
// verdict answers without an oracle round trip, and a fresh pass is a
// fail-fast conjunction over the gating list in stored order. Only a fully
// positive pass writes to the cache; denials leave it alone. Recheck is the
// user-initiated slow path that bypasses the cache and always records the
// outcome, in both directions.
//
// Oracle transport failures surface as ErrOracleUnavailable and never count
// as non-membership.
package gate
