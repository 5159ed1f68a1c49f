package store_test

import (
	"context"
	"errors"
	"testing"

	"reelgate/internal/store"
	"reelgate/internal/testsupport"
)

func TestOpenAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	entry := testsupport.AddFilm(t, st, 42, "Stalker")

	fetched, err := st.FilmByCode(ctx, 42)
	if err != nil {
		t.Fatalf("FilmByCode failed: %v", err)
	}
	if fetched.Title != entry.Title || fetched.Director != entry.Director {
		t.Fatalf("unexpected fetched entry: %#v", fetched)
	}
	if fetched.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be recorded")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.AddFilm(t, st, 7, "Solaris")
	if err := st.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	if _, err := reopened.FilmByCode(context.Background(), 7); err != nil {
		t.Fatalf("expected entry to survive reopen: %v", err)
	}
}

func TestFilmByCodeMiss(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	_, err := st.FilmByCode(context.Background(), 404)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertFilmDuplicateLeavesRowUntouched(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.AddFilm(t, st, 42, "Original")

	err := st.InsertFilm(ctx, store.CatalogEntry{
		Code:        42,
		Title:       "Imposter",
		Director:    "Nobody",
		Year:        1999,
		Description: "Should not land",
	})
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	existing, err := st.FilmByCode(ctx, 42)
	if err != nil {
		t.Fatalf("FilmByCode failed: %v", err)
	}
	if existing.Title != "Original" {
		t.Fatalf("existing entry was modified: %#v", existing)
	}
}

func TestDeleteFilmReportsMiss(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.DeleteFilm(ctx, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent film, got %v", err)
	}

	testsupport.AddFilm(t, st, 1, "Mirror")
	if err := st.DeleteFilm(ctx, 1); err != nil {
		t.Fatalf("DeleteFilm failed: %v", err)
	}
	if _, err := st.FilmByCode(ctx, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected film to be gone, got %v", err)
	}
}

func TestFilmCodesInsertionOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	for _, code := range []int64{30, 10, 20} {
		testsupport.AddFilm(t, st, code, "Film")
	}

	codes, err := st.FilmCodes(context.Background())
	if err != nil {
		t.Fatalf("FilmCodes failed: %v", err)
	}
	want := []int64{30, 10, 20}
	if len(codes) != len(want) {
		t.Fatalf("unexpected codes: %v", codes)
	}
	for i, code := range want {
		if codes[i] != code {
			t.Fatalf("expected insertion order %v, got %v", want, codes)
		}
	}
}

func TestChannelsEmptyIsEmptySlice(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	channels, err := st.Channels(context.Background())
	if err != nil {
		t.Fatalf("Channels failed: %v", err)
	}
	if channels == nil || len(channels) != 0 {
		t.Fatalf("expected empty slice, got %#v", channels)
	}
}

func TestChannelMutationInvalidatesAllVerdicts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	for _, userID := range []int64{1, 2, 3} {
		if err := st.SetSubscribed(ctx, userID, true); err != nil {
			t.Fatalf("SetSubscribed failed: %v", err)
		}
	}

	invalidated, err := st.AddChannel(ctx, "@first")
	if err != nil {
		t.Fatalf("AddChannel failed: %v", err)
	}
	if invalidated != 3 {
		t.Fatalf("expected 3 invalidated verdicts, got %d", invalidated)
	}
	for _, userID := range []int64{1, 2, 3} {
		status, err := st.Subscription(ctx, userID)
		if err != nil {
			t.Fatalf("Subscription failed: %v", err)
		}
		if status.Subscribed {
			t.Fatalf("user %d should have been invalidated", userID)
		}
	}

	// Removal invalidates too, for users re-verified in between.
	if err := st.SetSubscribed(ctx, 2, true); err != nil {
		t.Fatalf("SetSubscribed failed: %v", err)
	}
	if _, err := st.DeleteChannel(ctx, "@first"); err != nil {
		t.Fatalf("DeleteChannel failed: %v", err)
	}
	status, err := st.Subscription(ctx, 2)
	if err != nil {
		t.Fatalf("Subscription failed: %v", err)
	}
	if status.Subscribed {
		t.Fatal("removal should reset cached verdicts")
	}
}

func TestAddChannelDuplicate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.AddChannel(t, st, "@sponsor")
	if _, err := st.AddChannel(ctx, "@sponsor"); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	known, err := st.HasChannel(ctx, "@sponsor")
	if err != nil || !known {
		t.Fatalf("expected channel to remain known: %v %v", known, err)
	}
}

func TestDeleteChannelMiss(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	if _, err := st.DeleteChannel(context.Background(), "@ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChannelsStoredOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	names := []string{"@c", "@a", "@b"}
	for _, name := range names {
		testsupport.AddChannel(t, st, name)
	}

	channels, err := st.Channels(context.Background())
	if err != nil {
		t.Fatalf("Channels failed: %v", err)
	}
	if len(channels) != len(names) {
		t.Fatalf("unexpected channel count: %d", len(channels))
	}
	for i, name := range names {
		if channels[i].Name != name {
			t.Fatalf("expected stored order %v, got %#v", names, channels)
		}
	}
}

func TestSubscriptionMissingRow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	if _, err := st.Subscription(context.Background(), 99); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a user with no verdict, got %v", err)
	}
}

func TestSubscriptionRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.SetSubscribed(ctx, 7, true); err != nil {
		t.Fatalf("SetSubscribed failed: %v", err)
	}

	status, err := st.Subscription(ctx, 7)
	if err != nil {
		t.Fatalf("Subscription failed: %v", err)
	}
	if status.UserID != 7 || !status.Subscribed {
		t.Fatalf("unexpected status %#v", status)
	}
	if status.UpdatedAt.IsZero() {
		t.Fatal("expected the verdict timestamp to be populated")
	}
}
