package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skillhawk/skillhawk/internal/config"
	"github.com/skillhawk/skillhawk/internal/registry"
)

func newRegistryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Manage the duplicate-check registry snapshot",
	}
	cmd.AddCommand(newRegistryRefreshCommand(), newRegistryStatusCommand())
	return cmd
}

func newRegistryStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local registry snapshot cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return usageError(err)
			}

			snap, err := registry.LoadCached(cfg.Registry.CachePath)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "no snapshot cached at %s\n", cfg.Registry.CachePath)
				return nil
			}

			age := time.Since(snap.UpdatedAt).Round(time.Minute)
			fmt.Fprintf(cmd.OutOrStdout(), "cache:   %s\nskills:  %d\nsource:  %s\nupdated: %s (%s ago)\n",
				cfg.Registry.CachePath, len(snap.Skills), snap.Source,
				snap.UpdatedAt.Format("2006-01-02 15:04"), age)
			return nil
		},
	}
}

func newRegistryRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch a fresh registry snapshot into the local cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return usageError(err)
			}
			if cfg.Registry.URL == "" {
				return &ExitError{Code: exitUsage, Message: "SKILLHAWK_REGISTRY_URL is not set"}
			}

			client := registry.New(cfg.Registry.URL, cfg.Registry.CachePath,
				registry.WithMaxSkills(cfg.Registry.MaxSkills),
				registry.WithTimeout(cfg.Scan.Timeout))
			snap, err := client.Snapshot(cmd.Context())
			if err != nil {
				return usageError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "snapshot: %d skills from %s (updated %s)\n",
				len(snap.Skills), snap.Source, snap.UpdatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
