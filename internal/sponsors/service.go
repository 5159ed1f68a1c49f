package sponsors

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"reelgate/internal/logging"
	"reelgate/internal/services"
	"reelgate/internal/store"
)

// channelPattern matches public channel handles as operators type them.
var channelPattern = regexp.MustCompile(`^@\w+$`)

// Service owns the sponsor gating list and the per-user subscription cache.
// Every mutation of the list resets the cache for all users; that pairing is
// transactional in the store and never optional here.
type Service struct {
	store  *store.Store
	logger *slog.Logger
}

// NewService constructs a gate-list service.
func NewService(st *store.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  st,
		logger: logging.NewComponentLogger(logger, "sponsors"),
	}
}

// NormalizeChannel trims and validates a channel handle. Rejections carry
// services.ErrValidation.
func NormalizeChannel(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if !channelPattern.MatchString(trimmed) {
		return "", services.Wrap(services.ErrValidation, "sponsors", "normalize", `channel must look like "@name"`, nil)
	}
	return trimmed, nil
}

// List returns channel handles in stored order. An unconfigured gate list is
// an empty slice; the "no sponsors" placeholder is a presentation concern.
func (s *Service) List(ctx context.Context) ([]string, error) {
	channels, err := s.store.Channels(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(channels))
	for _, channel := range channels {
		names = append(names, channel.Name)
	}
	return names, nil
}

// IsKnown reports whether a channel is already on the gating list.
func (s *Service) IsKnown(ctx context.Context, name string) (bool, error) {
	normalized, err := NormalizeChannel(name)
	if err != nil {
		return false, err
	}
	return s.store.HasChannel(ctx, normalized)
}

// Add appends a channel to the gating list. A repeat surfaces as
// store.ErrDuplicate. On success every cached verdict has been reset.
func (s *Service) Add(ctx context.Context, name string) error {
	normalized, err := NormalizeChannel(name)
	if err != nil {
		return err
	}
	invalidated, err := s.store.AddChannel(ctx, normalized)
	if err != nil {
		return err
	}
	s.logger.Info("sponsor channel added",
		logging.String("channel", normalized),
		logging.Int64("verdicts_invalidated", invalidated),
	)
	return nil
}

// Remove deletes a channel from the gating list. An absent channel surfaces
// as store.ErrNotFound. On success every cached verdict has been reset.
func (s *Service) Remove(ctx context.Context, name string) error {
	normalized, err := NormalizeChannel(name)
	if err != nil {
		return err
	}
	invalidated, err := s.store.DeleteChannel(ctx, normalized)
	if err != nil {
		return err
	}
	s.logger.Info("sponsor channel removed",
		logging.String("channel", normalized),
		logging.Int64("verdicts_invalidated", invalidated),
	)
	return nil
}

// CachedVerdict reads the stored subscription verdict for a user; a missing
// row reads as unsubscribed.
func (s *Service) CachedVerdict(ctx context.Context, userID int64) (bool, error) {
	status, err := s.store.Subscription(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status.Subscribed, nil
}

// StoreVerdict records the latest verdict for a user.
func (s *Service) StoreVerdict(ctx context.Context, userID int64, subscribed bool) error {
	return s.store.SetSubscribed(ctx, userID, subscribed)
}

// InvalidateAll resets every cached verdict. The gate-list mutations already
// do this transactionally; this entry point exists for operator tooling.
func (s *Service) InvalidateAll(ctx context.Context) (int64, error) {
	invalidated, err := s.store.InvalidateSubscriptions(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("subscription cache invalidated", logging.Int64("verdicts_invalidated", invalidated))
	return invalidated, nil
}
