package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"reelgate/internal/config"
	"reelgate/internal/logging"
	"reelgate/internal/services/telegram"
	"reelgate/internal/session"
	"reelgate/internal/store"
)

// UpdateSource is the inbound half of the Bot API the daemon polls.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]telegram.Update, error)
}

// Handler processes one update.
type Handler interface {
	HandleUpdate(ctx context.Context, upd telegram.Update) error
}

// Daemon runs the long-poll loop and the session sweeper, and enforces
// single-instance execution through a file lock.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	updates  UpdateSource
	handler  Handler
	sessions *session.Engine

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New constructs a daemon with initialized dependencies. Every log record
// this run emits carries a fresh run ID.
func New(
	cfg *config.Config,
	st *store.Store,
	updates UpdateSource,
	handler Handler,
	sessions *session.Engine,
	logger *slog.Logger,
) (*Daemon, error) {
	if cfg == nil || st == nil || updates == nil || handler == nil || sessions == nil {
		return nil, errors.New("daemon requires config, store, update source, handler, and sessions")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	runLogger := logging.NewComponentLogger(logger, "daemon").
		With(logging.String("run_id", uuid.NewString()))

	lockPath := filepath.Join(cfg.Paths.DataDir, "reelgate.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   runLogger,
		store:    st,
		updates:  updates,
		handler:  handler,
		sessions: sessions,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and launches the background loops.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another reelgate instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.running.Store(true)

	d.wg.Add(2)
	go func() {
		defer d.wg.Done()
		d.pollLoop(runCtx)
	}()
	go func() {
		defer d.wg.Done()
		d.sweepLoop(runCtx)
	}()

	d.logger.Info("daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop cancels the loops, waits for them to drain, and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release instance lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped")
}

// Close stops the daemon and closes the store.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Running reports whether the loops are active.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// LockPath returns the instance lock file path.
func (d *Daemon) LockPath() string {
	return d.lockPath
}
