package catalog

import (
	"context"
	"log/slog"
	"strings"

	"reelgate/internal/logging"
	"reelgate/internal/services"
	"reelgate/internal/store"
)

// Service owns the semantic rules for the film catalog: uniqueness on create,
// accurate miss reporting on removal, stable enumeration.
type Service struct {
	store  *store.Store
	logger *slog.Logger
}

// NewService constructs a catalog service.
func NewService(st *store.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  st,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// Lookup fetches an entry by code. Misses surface as store.ErrNotFound.
func (s *Service) Lookup(ctx context.Context, code int64) (store.CatalogEntry, error) {
	return s.store.FilmByCode(ctx, code)
}

// Create validates and persists a new entry. A taken code surfaces as
// store.ErrDuplicate and leaves the existing entry unmodified.
func (s *Service) Create(ctx context.Context, entry store.CatalogEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	if err := s.store.InsertFilm(ctx, entry); err != nil {
		return err
	}
	s.logger.Info("film added",
		logging.Int64("code", entry.Code),
		logging.String("title", entry.Title),
	)
	return nil
}

// Remove deletes an entry by code, reporting store.ErrNotFound when absent so
// callers never claim success for a no-op.
func (s *Service) Remove(ctx context.Context, code int64) error {
	if err := s.store.DeleteFilm(ctx, code); err != nil {
		return err
	}
	s.logger.Info("film removed", logging.Int64("code", code))
	return nil
}

// Codes enumerates catalog codes in insertion order.
func (s *Service) Codes(ctx context.Context) ([]int64, error) {
	return s.store.FilmCodes(ctx)
}

// Entries returns the full catalog in insertion order.
func (s *Service) Entries(ctx context.Context) ([]store.CatalogEntry, error) {
	return s.store.Films(ctx)
}

func validateEntry(entry store.CatalogEntry) error {
	if entry.Code <= 0 {
		return services.Wrap(services.ErrValidation, "catalog", "create", "code must be a positive number", nil)
	}
	if strings.TrimSpace(entry.Title) == "" {
		return services.Wrap(services.ErrValidation, "catalog", "create", "title must not be empty", nil)
	}
	if strings.TrimSpace(entry.Director) == "" {
		return services.Wrap(services.ErrValidation, "catalog", "create", "director must not be empty", nil)
	}
	if entry.Year <= 0 {
		return services.Wrap(services.ErrValidation, "catalog", "create", "year must be a positive number", nil)
	}
	if strings.TrimSpace(entry.Description) == "" {
		return services.Wrap(services.ErrValidation, "catalog", "create", "description must not be empty", nil)
	}
	return nil
}
