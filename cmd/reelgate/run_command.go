package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reelgate/internal/catalog"
	"reelgate/internal/daemon"
	"reelgate/internal/gate"
	"reelgate/internal/logging"
	"reelgate/internal/router"
	"reelgate/internal/services/telegram"
	"reelgate/internal/session"
	"reelgate/internal/sponsors"
	"reelgate/internal/store"
)

func newRunCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the bot daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			st, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}

			// The HTTP timeout has to outlast a full long-poll hold.
			httpTimeout := time.Duration(cfg.Telegram.PollTimeout+cfg.Telegram.RequestTimeout) * time.Second
			client, err := telegram.NewClient(cfg.Telegram.Token,
				telegram.WithBaseURL(cfg.Telegram.BaseURL),
				telegram.WithHTTPClient(&http.Client{Timeout: httpTimeout}),
			)
			if err != nil {
				st.Close()
				return fmt.Errorf("telegram client: %w", err)
			}

			cat := catalog.NewService(st, logger)
			spon := sponsors.NewService(st, logger)
			g := gate.New(spon, telegram.NewMembershipOracle(client), cfg.IsAdmin, logger)
			sessions := session.NewEngine(cat, spon, cfg, logger)
			rt := router.New(client, cat, spon, g, sessions, cfg.IsAdmin, logger)

			d, err := daemon.New(cfg, st, client, rt, sessions, logger)
			if err != nil {
				st.Close()
				return fmt.Errorf("daemon: %w", err)
			}
			defer d.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := d.Start(ctx); err != nil {
				return fmt.Errorf("start daemon: %w", err)
			}
			<-ctx.Done()
			d.Stop()
			return nil
		},
	}
}
