package daemon

import (
	"context"
	"time"

	"reelgate/internal/logging"
	"reelgate/internal/services"
	"reelgate/internal/services/telegram"
)

const pollRetryDelay = 3 * time.Second

// pollLoop drives getUpdates. The offset advances past every update the
// batch delivered, handled or not, so one bad turn never wedges the stream.
func (d *Daemon) pollLoop(ctx context.Context) {
	var offset int64
	for {
		if ctx.Err() != nil {
			return
		}
		updates, err := d.updates.GetUpdates(ctx, offset, d.cfg.Telegram.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			d.logger.Warn("poll failed", logging.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(pollRetryDelay):
			}
			continue
		}
		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			d.dispatch(ctx, upd)
		}
	}
}

// dispatch handles one update, confining failures and panics to this turn.
func (d *Daemon) dispatch(ctx context.Context, upd telegram.Update) {
	ctx = services.WithUpdateID(ctx, upd.UpdateID)
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("update handler panicked",
				logging.Int64("update_id", upd.UpdateID),
				logging.Any("panic", r),
			)
		}
	}()
	if err := d.handler.HandleUpdate(ctx, upd); err != nil {
		d.logger.Error("update failed",
			logging.Int64("update_id", upd.UpdateID),
			logging.Error(err),
		)
	}
}

// sweepLoop periodically expires idle authoring sessions.
func (d *Daemon) sweepLoop(ctx context.Context) {
	interval := time.Duration(d.cfg.Workflow.SweepInterval) * time.Second
	timeout := time.Duration(d.cfg.Workflow.SessionTimeout) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.sessions.Sweep(time.Now().Add(-timeout))
		}
	}
}
