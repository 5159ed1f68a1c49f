package store

import "time"

// CatalogEntry is one film row, keyed by its numeric lookup code.
type CatalogEntry struct {
	Code        int64
	Title       string
	Director    string
	Year        int
	Description string
	CreatedAt   time.Time
}

// SponsorChannel is one entry of the gating list.
type SponsorChannel struct {
	Name      string
	CreatedAt time.Time
}

// SubscriptionStatus is a cached membership verdict for one user. It is an
// approximation of current membership, valid until the gating list changes.
type SubscriptionStatus struct {
	UserID     int64
	Subscribed bool
	UpdatedAt  time.Time
}
