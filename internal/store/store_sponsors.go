package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Channels returns the gating list in stored order. The slice is empty, never
// nil-with-error, when no channels are configured.
func (s *Store) Channels(ctx context.Context) ([]SponsorChannel, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT channel_name, created_at FROM sponsor_channels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()

	channels := make([]SponsorChannel, 0)
	for rows.Next() {
		var (
			channel    SponsorChannel
			createdRaw string
		)
		if err := rows.Scan(&channel.Name, &createdRaw); err != nil {
			return nil, err
		}
		channel.CreatedAt = parseTimeString(createdRaw)
		channels = append(channels, channel)
	}
	return channels, rows.Err()
}

// HasChannel reports whether a channel is part of the gating list.
func (s *Store) HasChannel(ctx context.Context, name string) (bool, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM sponsor_channels WHERE channel_name = ?`, name)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("check channel: %w", err)
	}
	return count > 0, nil
}

// AddChannel appends a channel to the gating list and, in the same
// transaction, resets every cached subscription verdict. Any change to the
// gating universe invalidates all previously verified users.
func (s *Store) AddChannel(ctx context.Context, name string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin add channel tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO sponsor_channels (channel_name, created_at) VALUES (?, ?)`,
		name,
		timestamp(),
	); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("add channel %s: %w", name, ErrDuplicate)
		}
		return 0, fmt.Errorf("add channel: %w", err)
	}

	invalidated, err := invalidateSubscriptions(ctx, tx)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit add channel: %w", err)
	}
	return invalidated, nil
}

// DeleteChannel removes a channel from the gating list with the same
// transactional cache invalidation as AddChannel.
func (s *Store) DeleteChannel(ctx context.Context, name string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete channel tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM sponsor_channels WHERE channel_name = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("delete channel: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("delete channel %s: %w", name, ErrNotFound)
	}

	invalidated, err := invalidateSubscriptions(ctx, tx)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete channel: %w", err)
	}
	return invalidated, nil
}

// Subscription reads the cached verdict row for a user. ErrNotFound means no
// verdict has ever been stored; the caller decides what a missing row means.
func (s *Store) Subscription(ctx context.Context, userID int64) (SubscriptionStatus, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT user_id, subscribed, updated_at FROM subscription_status WHERE user_id = ?`,
		userID,
	)
	var status SubscriptionStatus
	var subscribed int
	var updatedAt string
	if err := row.Scan(&status.UserID, &subscribed, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SubscriptionStatus{}, ErrNotFound
		}
		return SubscriptionStatus{}, fmt.Errorf("get cached verdict: %w", err)
	}
	status.Subscribed = subscribed != 0
	status.UpdatedAt = parseTimeString(updatedAt)
	return status, nil
}

// SetSubscribed stores the verdict for a user, creating the row on first use.
func (s *Store) SetSubscribed(ctx context.Context, userID int64, subscribed bool) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO subscription_status (user_id, subscribed, updated_at) VALUES (?, ?, ?)`,
		userID,
		boolToInt(subscribed),
		timestamp(),
	)
	if err != nil {
		return fmt.Errorf("set verdict: %w", err)
	}
	return nil
}

// InvalidateSubscriptions resets every cached verdict to unsubscribed and
// returns the number of rows touched.
func (s *Store) InvalidateSubscriptions(ctx context.Context) (int64, error) {
	return invalidateSubscriptions(ctx, s.db)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func invalidateSubscriptions(ctx context.Context, db execer) (int64, error) {
	res, err := db.ExecContext(
		ctx,
		`UPDATE subscription_status SET subscribed = 0, updated_at = ? WHERE subscribed != 0`,
		timestamp(),
	)
	if err != nil {
		return 0, fmt.Errorf("invalidate verdicts: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}
