// Package services holds cross-cutting helpers for external collaborators:
// the sentinel error taxonomy every client and service wraps failures with,
// and context annotations that tie log records back to the inbound update.
//
// The sentinels separate confirmed negatives (ErrNotFound, ErrValidation)
// from conditions worth retrying (ErrTransient, ErrExternalService); callers
// classify with errors.Is rather than string matching.
package services
