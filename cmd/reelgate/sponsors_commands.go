package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reelgate/internal/logging"
	"reelgate/internal/services"
	"reelgate/internal/sponsors"
	"reelgate/internal/store"
)

func newSponsorsCommand(cmdCtx *commandContext) *cobra.Command {
	sponsorsCmd := &cobra.Command{
		Use:   "sponsors",
		Short: "Maintain the sponsor channel list",
	}

	sponsorsCmd.AddCommand(newSponsorsListCommand(cmdCtx))
	sponsorsCmd.AddCommand(newSponsorsAddCommand(cmdCtx))
	sponsorsCmd.AddCommand(newSponsorsRemoveCommand(cmdCtx))

	return sponsorsCmd
}

func withSponsors(cmdCtx *commandContext, fn func(*sponsors.Service) error) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(sponsors.NewService(st, logging.NewNop()))
}

func newSponsorsListCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sponsor channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSponsors(cmdCtx, func(svc *sponsors.Service) error {
				channels, err := svc.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(channels) == 0 {
					fmt.Fprintln(out, "The sponsor list is empty")
					return nil
				}
				for _, channel := range channels {
					fmt.Fprintln(out, channel)
				}
				return nil
			})
		},
	}
}

func newSponsorsAddCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <@channel>",
		Short: "Add a sponsor channel and reset every user's verified status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSponsors(cmdCtx, func(svc *sponsors.Service) error {
				err := svc.Add(cmd.Context(), args[0])
				if errors.Is(err, services.ErrValidation) {
					return fmt.Errorf("channel names look like @channel, got %q", args[0])
				}
				if errors.Is(err, store.ErrDuplicate) {
					return fmt.Errorf("%s is already in the sponsor list", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s; all users must re-verify\n", args[0])
				return nil
			})
		},
	}
}

func newSponsorsRemoveCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <@channel>",
		Short: "Remove a sponsor channel and reset every user's verified status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSponsors(cmdCtx, func(svc *sponsors.Service) error {
				err := svc.Remove(cmd.Context(), args[0])
				if errors.Is(err, services.ErrValidation) {
					return fmt.Errorf("channel names look like @channel, got %q", args[0])
				}
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("there is no %s in the sponsor list", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s; all users must re-verify\n", args[0])
				return nil
			})
		},
	}
}
