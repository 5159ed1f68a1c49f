package services

import "context"

type contextKey string

const updateIDKey contextKey = "update_id"

// WithUpdateID annotates context with the inbound update identifier so
// downstream log records can be correlated with the poll turn.
func WithUpdateID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, updateIDKey, id)
}

// UpdateIDFromContext extracts the update identifier if present.
func UpdateIDFromContext(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(updateIDKey).(int64)
	return v, ok
}
