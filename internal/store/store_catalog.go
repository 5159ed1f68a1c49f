package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const filmColumns = "code, title, director, year, description, created_at"

// FilmByCode fetches a catalog entry by lookup code.
func (s *Store) FilmByCode(ctx context.Context, code int64) (CatalogEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+filmColumns+` FROM films WHERE code = ?`, code)
	entry, err := scanFilm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return CatalogEntry{}, ErrNotFound
	}
	if err != nil {
		return CatalogEntry{}, fmt.Errorf("get film: %w", err)
	}
	return entry, nil
}

// InsertFilm persists a new catalog entry. The existing row is left untouched
// when the code is already taken.
func (s *Store) InsertFilm(ctx context.Context, entry CatalogEntry) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO films (code, title, director, year, description, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Code,
		entry.Title,
		entry.Director,
		entry.Year,
		entry.Description,
		timestamp(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("insert film %d: %w", entry.Code, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("insert film: %w", err)
	}
	return nil
}

// DeleteFilm removes a catalog entry by code, reporting ErrNotFound when no
// such entry exists so callers can surface an accurate outcome.
func (s *Store) DeleteFilm(ctx context.Context, code int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM films WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("delete film: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete film %d: %w", code, ErrNotFound)
	}
	return nil
}

// FilmCodes enumerates catalog codes in insertion order.
func (s *Store) FilmCodes(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code FROM films ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list film codes: %w", err)
	}
	defer rows.Close()

	codes := make([]int64, 0)
	for rows.Next() {
		var code int64
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// Films returns every catalog entry in insertion order.
func (s *Store) Films(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+filmColumns+` FROM films ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	defer rows.Close()

	entries := make([]CatalogEntry, 0)
	for rows.Next() {
		entry, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanFilm(scanner interface{ Scan(dest ...any) error }) (CatalogEntry, error) {
	var (
		entry      CatalogEntry
		createdRaw string
	)
	if err := scanner.Scan(
		&entry.Code,
		&entry.Title,
		&entry.Director,
		&entry.Year,
		&entry.Description,
		&createdRaw,
	); err != nil {
		return CatalogEntry{}, err
	}
	entry.CreatedAt = parseTimeString(createdRaw)
	return entry, nil
}
