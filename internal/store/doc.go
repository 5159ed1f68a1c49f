// Package store persists the film catalog, the sponsor gating list, and the
// per-user subscription cache in SQLite.
//
// The Store owns schema initialization (ordered embedded migrations tracked in
// schema_migrations), connection pragmas, and all SQL. Rows are scanned into
// typed records at this boundary; nothing above this package sees raw rows.
// Point-lookup misses map to ErrNotFound and uniqueness violations to
// ErrDuplicate so callers classify with errors.Is.
//
// Gate-list mutations pair the insert or delete with a full reset of the
// subscription cache inside one transaction: the gating universe and the
// cached verdicts must never drift apart. Everything else is a
// single-statement transaction; no operation spans a user turn.
package store
