package testsupport

import (
	"context"
	"testing"

	"reelgate/internal/config"
	"reelgate/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// AddFilm inserts a catalog entry for tests using the provided store.
func AddFilm(t testing.TB, st *store.Store, code int64, title string) store.CatalogEntry {
	t.Helper()

	entry := store.CatalogEntry{
		Code:        code,
		Title:       title,
		Director:    "Test Director",
		Year:        2001,
		Description: "Test description",
	}
	if err := st.InsertFilm(context.Background(), entry); err != nil {
		t.Fatalf("store.InsertFilm: %v", err)
	}
	return entry
}

// AddChannel appends a sponsor channel for tests.
func AddChannel(t testing.TB, st *store.Store, name string) {
	t.Helper()

	if _, err := st.AddChannel(context.Background(), name); err != nil {
		t.Fatalf("store.AddChannel: %v", err)
	}
}
