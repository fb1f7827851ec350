package cmd

import (
	"errors"
	"fmt"
	"time"

	"sheet_poster/internal/app"
	"sheet_poster/internal/job"

	"github.com/spf13/cobra"
)

func newOnceCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Publish the post for the current hour (or --at) once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			t, err := parseAt(at, cfg.Location, time.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			sheetsClient, telegramClient, err := app.InitializeClients(ctx, cfg)
			if err != nil {
				return err
			}

			report := job.New(cfg, sheetsClient, telegramClient).RunAt(ctx, t)
			fmt.Fprintf(cmd.OutOrStdout(), "range=%s read=%t images=%d photos_sent=%t caption_sent=%t admin_notified=%t\n",
				report.Location.Range(), report.ReadOK, len(report.Payload.Images),
				report.PhotosSent, report.CaptionSent, report.AdminNotified)

			if !report.CaptionSent {
				return errors.New("post was not published")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "publish as if it were this time (RFC3339 or \"YYYY-MM-DD HH:MM\")")
	return cmd
}
