package gate_test

import (
	"context"
	"errors"
	"testing"

	"reelgate/internal/gate"
	"reelgate/internal/logging"
	"reelgate/internal/services"
	"reelgate/internal/sponsors"
	"reelgate/internal/testsupport"
)

type fixture struct {
	gate     *gate.Gate
	sponsors *sponsors.Service
	oracle   *testsupport.FakeOracle
}

func newFixture(t *testing.T, privileged ...int64) *fixture {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithAdmins(privileged...))
	st := testsupport.MustOpenStore(t, cfg)
	svc := sponsors.NewService(st, logging.NewNop())
	oracle := testsupport.NewFakeOracle()
	return &fixture{
		gate:     gate.New(svc, oracle, cfg.IsAdmin, logging.NewNop()),
		sponsors: svc,
		oracle:   oracle,
	}
}

func (f *fixture) addChannels(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := f.sponsors.Add(context.Background(), name); err != nil {
			t.Fatalf("add channel %s: %v", name, err)
		}
	}
}

func TestEvaluatePrivilegeBypassesGating(t *testing.T) {
	f := newFixture(t, 99)
	f.addChannels(t, "@a", "@b")
	// No scripted memberships: any oracle pass would deny.

	decision, err := f.gate.Evaluate(context.Background(), 99)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != gate.Allowed {
		t.Fatalf("expected Allowed for privileged user, got %s", decision)
	}
	if f.oracle.CallCount() != 0 {
		t.Fatalf("privileged evaluation must not consult the oracle, made %d calls", f.oracle.CallCount())
	}
}

func TestEvaluateCacheHitSkipsOracle(t *testing.T) {
	f := newFixture(t)
	f.addChannels(t, "@a")
	ctx := context.Background()

	if err := f.sponsors.StoreVerdict(ctx, 5, true); err != nil {
		t.Fatalf("StoreVerdict failed: %v", err)
	}

	decision, err := f.gate.Evaluate(ctx, 5)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != gate.Allowed {
		t.Fatalf("expected Allowed from cache, got %s", decision)
	}
	if f.oracle.CallCount() != 0 {
		t.Fatalf("cache hit must not consult the oracle, made %d calls", f.oracle.CallCount())
	}
}

func TestEvaluateShortCircuitsOnFirstNegative(t *testing.T) {
	f := newFixture(t)
	f.addChannels(t, "@a", "@b", "@c")
	f.oracle.Set("@a", gate.NotMember)
	f.oracle.Set("@b", gate.Member)
	f.oracle.Set("@c", gate.Member)

	decision, err := f.gate.Evaluate(context.Background(), 5)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != gate.Denied {
		t.Fatalf("expected Denied, got %s", decision)
	}
	calls := f.oracle.Calls()
	if len(calls) != 1 || calls[0] != "@a" {
		t.Fatalf("expected a single call for @a, got %v", calls)
	}
}

func TestEvaluatePartialSubscriptionDenies(t *testing.T) {
	// Gating list [@a, @b]; user subscribed to @a only. The pass checks @a
	// (member), then @b (not member) and stops there.
	f := newFixture(t)
	f.addChannels(t, "@a", "@b")
	f.oracle.Set("@a", gate.Member)
	f.oracle.Set("@b", gate.NotMember)
	ctx := context.Background()

	decision, err := f.gate.Evaluate(ctx, 5)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != gate.Denied {
		t.Fatalf("expected Denied, got %s", decision)
	}
	calls := f.oracle.Calls()
	if len(calls) != 2 || calls[0] != "@a" || calls[1] != "@b" {
		t.Fatalf("expected calls [@a @b], got %v", calls)
	}

	// A denial must not write the cache.
	cached, err := f.sponsors.CachedVerdict(ctx, 5)
	if err != nil {
		t.Fatalf("CachedVerdict failed: %v", err)
	}
	if cached {
		t.Fatal("denied evaluation must not persist a verdict")
	}
}

func TestEvaluateFullPassPersistsTrue(t *testing.T) {
	f := newFixture(t)
	f.addChannels(t, "@a", "@b")
	f.oracle.Set("@a", gate.Member)
	f.oracle.Set("@b", gate.Member)
	ctx := context.Background()

	decision, err := f.gate.Evaluate(ctx, 5)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != gate.Allowed {
		t.Fatalf("expected Allowed, got %s", decision)
	}
	cached, err := f.sponsors.CachedVerdict(ctx, 5)
	if err != nil {
		t.Fatalf("CachedVerdict failed: %v", err)
	}
	if !cached {
		t.Fatal("full pass must persist a true verdict")
	}

	// Second evaluation rides the cache.
	f.oracle.Reset()
	if _, err := f.gate.Evaluate(ctx, 5); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if f.oracle.CallCount() != 0 {
		t.Fatalf("expected cache hit, oracle made %d calls", f.oracle.CallCount())
	}
}

func TestEvaluateUnknownUserDenies(t *testing.T) {
	f := newFixture(t)
	f.addChannels(t, "@a", "@b")
	f.oracle.Set("@a", gate.UnknownUser)

	decision, err := f.gate.Evaluate(context.Background(), 5)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != gate.Denied {
		t.Fatalf("expected Denied for unknown user, got %s", decision)
	}
	if f.oracle.CallCount() != 1 {
		t.Fatalf("expected short circuit after @a, got %d calls", f.oracle.CallCount())
	}
}

func TestEvaluateOracleOutageIsNotDenial(t *testing.T) {
	f := newFixture(t)
	f.addChannels(t, "@a")
	f.oracle.Fail(errors.New("connection refused"))
	ctx := context.Background()

	_, err := f.gate.Evaluate(ctx, 5)
	if !errors.Is(err, gate.ErrOracleUnavailable) {
		t.Fatalf("expected ErrOracleUnavailable, got %v", err)
	}
	if !services.IsRetryable(err) {
		t.Fatalf("an oracle outage should classify as retryable, got %v", err)
	}

	// An aborted pass leaves the cache untouched.
	cached, cacheErr := f.sponsors.CachedVerdict(ctx, 5)
	if cacheErr != nil {
		t.Fatalf("CachedVerdict failed: %v", cacheErr)
	}
	if cached {
		t.Fatal("outage must not record a verdict")
	}
}

func TestListMutationInvalidatesVerifiedUsers(t *testing.T) {
	f := newFixture(t)
	f.addChannels(t, "@a")
	f.oracle.Set("@a", gate.Member)
	ctx := context.Background()

	if _, err := f.gate.Evaluate(ctx, 5); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	// New sponsor arrives; the earlier verification no longer covers the list.
	f.addChannels(t, "@b")
	f.oracle.Reset()

	decision, err := f.gate.Evaluate(ctx, 5)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != gate.Denied {
		t.Fatalf("expected Denied after list change, got %s", decision)
	}
	if f.oracle.CallCount() == 0 {
		t.Fatal("expected a fresh oracle pass after invalidation")
	}
}

func TestRecheckWritesOutcomeBothWays(t *testing.T) {
	f := newFixture(t)
	f.addChannels(t, "@a")
	f.oracle.Set("@a", gate.Member)
	ctx := context.Background()

	decision, err := f.gate.Recheck(ctx, 5)
	if err != nil {
		t.Fatalf("Recheck failed: %v", err)
	}
	if decision != gate.Allowed {
		t.Fatalf("expected Allowed, got %s", decision)
	}
	cached, err := f.sponsors.CachedVerdict(ctx, 5)
	if err != nil || !cached {
		t.Fatalf("expected cached true after positive recheck: %v %v", cached, err)
	}

	// User unsubscribes; a failed recheck must overwrite the stale true.
	f.oracle.Set("@a", gate.NotMember)
	decision, err = f.gate.Recheck(ctx, 5)
	if err != nil {
		t.Fatalf("Recheck failed: %v", err)
	}
	if decision != gate.Denied {
		t.Fatalf("expected Denied, got %s", decision)
	}
	cached, err = f.sponsors.CachedVerdict(ctx, 5)
	if err != nil {
		t.Fatalf("CachedVerdict failed: %v", err)
	}
	if cached {
		t.Fatal("failed recheck must write a false verdict")
	}
}

func TestRecheckBypassesCache(t *testing.T) {
	f := newFixture(t)
	f.addChannels(t, "@a")
	f.oracle.Set("@a", gate.Member)
	ctx := context.Background()

	if err := f.sponsors.StoreVerdict(ctx, 5, true); err != nil {
		t.Fatalf("StoreVerdict failed: %v", err)
	}
	if _, err := f.gate.Recheck(ctx, 5); err != nil {
		t.Fatalf("Recheck failed: %v", err)
	}
	if f.oracle.CallCount() == 0 {
		t.Fatal("recheck must consult the oracle despite a cached true")
	}
}

func TestEmptyGatingListAllows(t *testing.T) {
	f := newFixture(t)

	decision, err := f.gate.Evaluate(context.Background(), 5)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != gate.Allowed {
		t.Fatalf("expected Allowed with no sponsors configured, got %s", decision)
	}
	if f.oracle.CallCount() != 0 {
		t.Fatal("no channels means no oracle calls")
	}
}
