package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "download",
		Short: "Download workouts from ifit.com",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.ifitClient()
			if err != nil {
				return err
			}

			ids, err := client.DownloadAll(cmd.Context(), cfg.Paths.WorkoutDir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d workouts to %s\n", len(ids), cfg.Paths.WorkoutDir)
			return nil
		},
	}
}
