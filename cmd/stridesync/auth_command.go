package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stridesync/internal/services/strava"
)

func newAuthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize with Strava",
		Long: "Starts the Strava OAuth flow. The command prints a consent URL, waits for " +
			"the browser redirect on the configured local port, and saves the resulting " +
			"tokens to the token file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireStravaCredentials(); err != nil {
				return err
			}

			manager, err := ctx.tokenManager()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, err = manager.Authorize(cmd.Context(), strava.AuthorizeOptions{
				RedirectURI: cfg.Strava.RedirectURI,
				Port:        cfg.Strava.AuthPort,
			}, func(authURL string) {
				fmt.Fprintf(out, "Open the following URL in your browser to authorize:\n\n  %s\n\n", authURL)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Authorized. Tokens saved to %s\n", cfg.Paths.TokenFile)
			return nil
		},
	}
}
