package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"stridesync/internal/syncer"
	"stridesync/internal/synclog"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "upload",
		Short: "Idempotently upload workouts to Strava",
		Long: "Compares cached workouts against the athlete's existing Strava activities " +
			"and uploads only the ones with no similar activity. Safe to re-run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireStravaCredentials(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.stravaClient()
			if err != nil {
				return err
			}

			store, err := synclog.Open(filepath.Join(cfg.Paths.LogDir, "synclog.db"))
			if err != nil {
				return err
			}
			defer store.Close()

			s, err := syncer.New(cfg, client, store, logger)
			if err != nil {
				return err
			}

			summary, err := s.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Synced %d workouts: %d uploaded, %d already on Strava, %d skipped\n",
				summary.Workouts, summary.Uploaded, summary.Duplicates, summary.Skipped)
			return nil
		},
	}
}
