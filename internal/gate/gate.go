package gate

import (
	"context"
	"fmt"
	"log/slog"

	"reelgate/internal/logging"
	"reelgate/internal/services"
	"reelgate/internal/sponsors"
)

// Membership is the oracle's answer for one (channel, user) pair.
type Membership int

const (
	// Member means the user currently belongs to the channel.
	Member Membership = iota
	// NotMember is a confirmed negative.
	NotMember
	// UnknownUser means the channel has never seen this user identifier.
	// Treated as a negative, but kept distinct for logging.
	UnknownUser
)

func (m Membership) String() string {
	switch m {
	case Member:
		return "member"
	case NotMember:
		return "not_member"
	case UnknownUser:
		return "unknown_user"
	default:
		return fmt.Sprintf("membership(%d)", int(m))
	}
}

// Oracle is the external authority for real-time channel membership.
// Transport failures return a non-nil error; they must never be reported as
// NotMember.
type Oracle interface {
	Member(ctx context.Context, channel string, userID int64) (Membership, error)
}

// ErrOracleUnavailable marks a gating decision that could not be completed
// because the oracle failed transiently. It carries services.ErrTransient so
// services.IsRetryable classifies it; callers should tell the user to try
// again rather than treat it as a confirmed denial.
var ErrOracleUnavailable = fmt.Errorf("%w: membership oracle unavailable", services.ErrTransient)

// Decision is the outcome of a gating check.
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Gate composes the gating list, the cached verdicts, and the membership
// oracle into a single per-user decision.
type Gate struct {
	sponsors     *sponsors.Service
	oracle       Oracle
	isPrivileged func(userID int64) bool
	logger       *slog.Logger
}

// New constructs a gate. isPrivileged is the externally supplied operator
// predicate; privileged users bypass gating entirely.
func New(svc *sponsors.Service, oracle Oracle, isPrivileged func(int64) bool, logger *slog.Logger) *Gate {
	if isPrivileged == nil {
		isPrivileged = func(int64) bool { return false }
	}
	return &Gate{
		sponsors:     svc,
		oracle:       oracle,
		isPrivileged: isPrivileged,
		logger:       logging.NewComponentLogger(logger, "gate"),
	}
}

// Evaluate decides whether a user may be served. A cached true verdict
// short-circuits without consulting the oracle. A fresh all-member pass
// persists true; a denial writes nothing, leaving the one-way cache to
// list-version invalidation.
func (g *Gate) Evaluate(ctx context.Context, userID int64) (Decision, error) {
	if g.isPrivileged(userID) {
		return Allowed, nil
	}

	cached, err := g.sponsors.CachedVerdict(ctx, userID)
	if err != nil {
		return Denied, err
	}
	if cached {
		return Allowed, nil
	}

	verdict, err := g.consultOracle(ctx, userID)
	if err != nil {
		return Denied, err
	}
	if !verdict {
		return Denied, nil
	}
	if err := g.sponsors.StoreVerdict(ctx, userID, true); err != nil {
		return Denied, err
	}
	g.logger.Info("subscription verified", logging.Int64("user_id", userID))
	return Allowed, nil
}

// Recheck re-evaluates against the oracle unconditionally and always writes
// the outcome, so a user who unsubscribed loses a stale cached true here
// rather than waiting for the next gating-list change.
func (g *Gate) Recheck(ctx context.Context, userID int64) (Decision, error) {
	if g.isPrivileged(userID) {
		return Allowed, nil
	}

	verdict, err := g.consultOracle(ctx, userID)
	if err != nil {
		return Denied, err
	}
	if err := g.sponsors.StoreVerdict(ctx, userID, verdict); err != nil {
		return Denied, err
	}
	g.logger.Info("subscription rechecked",
		logging.Int64("user_id", userID),
		logging.Bool("subscribed", verdict),
	)
	if verdict {
		return Allowed, nil
	}
	return Denied, nil
}

// consultOracle runs the fail-fast conjunction over the gating list in stored
// order. The first negative answer ends the pass; an oracle failure aborts it
// without recording anything.
func (g *Gate) consultOracle(ctx context.Context, userID int64) (bool, error) {
	channels, err := g.sponsors.List(ctx)
	if err != nil {
		return false, err
	}

	for _, channel := range channels {
		membership, err := g.oracle.Member(ctx, channel, userID)
		if err != nil {
			return false, fmt.Errorf("%w: check %s: %w", ErrOracleUnavailable, channel, err)
		}
		if membership != Member {
			g.logger.Debug("membership check failed",
				logging.Int64("user_id", userID),
				logging.String("channel", channel),
				logging.String("membership", membership.String()),
			)
			return false, nil
		}
	}
	return true, nil
}
