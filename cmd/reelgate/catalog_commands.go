package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelgate/internal/catalog"
	"reelgate/internal/logging"
	"reelgate/internal/store"
)

func newCatalogCommand(cmdCtx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and maintain the film catalog",
	}

	catalogCmd.AddCommand(newCatalogListCommand(cmdCtx))
	catalogCmd.AddCommand(newCatalogShowCommand(cmdCtx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(cmdCtx))

	return catalogCmd
}

func withCatalog(cmdCtx *commandContext, fn func(*catalog.Service) error) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(catalog.NewService(st, logging.NewNop()))
}

func newCatalogListCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmdCtx, func(svc *catalog.Service) error {
				entries, err := svc.Entries(cmd.Context())
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "The catalog is empty")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderCatalogTable(entries))
				return nil
			})
		},
	}
}

func newCatalogShowCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid film code %q", args[0])
			}
			return withCatalog(cmdCtx, func(svc *catalog.Service) error {
				entry, err := svc.Lookup(cmd.Context(), code)
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no film with code %d", code)
				}
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Code:     %d\n", entry.Code)
				fmt.Fprintf(out, "Title:    %s\n", entry.Title)
				fmt.Fprintf(out, "Director: %s\n", entry.Director)
				fmt.Fprintf(out, "Year:     %d\n", entry.Year)
				fmt.Fprintf(out, "\n%s\n", entry.Description)
				return nil
			})
		},
	}
}

func newCatalogRemoveCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <code>",
		Short: "Remove one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid film code %q", args[0])
			}
			return withCatalog(cmdCtx, func(svc *catalog.Service) error {
				if err := svc.Remove(cmd.Context(), code); err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return fmt.Errorf("no film with code %d", code)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed film %d\n", code)
				return nil
			})
		},
	}
}
