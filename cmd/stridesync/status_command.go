package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"stridesync/internal/preflight"
	"stridesync/internal/synclog"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

const recentUploadLimit = 10

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration health and recent uploads",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := isTerminal(out)

			fmt.Fprintln(out, "Checks:")
			for _, result := range preflight.RunAll(cfg) {
				fmt.Fprintln(out, renderCheckLine(result, colorize))
			}

			if manager, err := ctx.tokenManager(); err == nil && manager.HasAuthorization() {
				if client, err := ctx.stravaClient(); err == nil {
					checkCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
					athlete, err := client.Athlete(checkCtx)
					cancel()
					if err != nil {
						fmt.Fprintln(out, renderCheckLine(preflight.Result{
							Name:   "Strava API",
							Detail: err.Error(),
						}, colorize))
					} else {
						fmt.Fprintln(out, renderCheckLine(preflight.Result{
							Name:   "Strava API",
							Passed: true,
							Detail: fmt.Sprintf("authenticated as %s (athlete %d)", athlete.Username, athlete.ID),
						}, colorize))
					}
				}
			}

			return printRecentUploads(cmd.Context(), out, filepath.Join(cfg.Paths.LogDir, "synclog.db"))
		},
	}
}

func renderCheckLine(result preflight.Result, colorize bool) string {
	label := "FAIL"
	color := ansiRed
	if result.Passed {
		label = "OK"
		color = ansiGreen
	}
	line := fmt.Sprintf("  %-22s [%s] %s", result.Name+":", label, result.Detail)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func printRecentUploads(ctx context.Context, out io.Writer, dbPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		fmt.Fprintln(out, "\nNo uploads recorded yet.")
		return nil
	}

	store, err := synclog.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "\nNo uploads recorded yet.")
		return nil
	}
	if len(records) > recentUploadLimit {
		records = records[:recentUploadLimit]
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.WorkoutID,
			strconv.FormatInt(record.ActivityID, 10),
			record.UploadedAt.Local().Format("2006-01-02 15:04"),
			record.ActivityURL,
		})
	}

	fmt.Fprintln(out, "\nRecent uploads:")
	fmt.Fprintln(out, renderTable(
		[]string{"Workout", "Activity", "Uploaded", "URL"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	))
	return nil
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
