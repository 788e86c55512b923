package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize assocrows storage",
		Long:  "Create the configuration and data directories, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, dataDir, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.Detach(); err != nil {
				return fmt.Errorf("finalize storage: %w", err)
			}
			a.logger.Info("storage initialized", slog.String("data_dir", dataDir))
			fmt.Fprintln(cmd.OutOrStdout(), "assocrows initialized in", dataDir)
			return nil
		},
	}
}
