package cmd

import (
	"context"
	"fmt"
	"time"

	"sheet_poster/internal/app"
	"sheet_poster/internal/job"
	"sheet_poster/internal/scheduler"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the hourly posting schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if err := scheduler.Validate(cfg.Schedule); err != nil {
		return fmt.Errorf("invalid SCHEDULE %q: %w", cfg.Schedule, err)
	}

	ctx := cmd.Context()
	sheetsClient, telegramClient, err := app.InitializeClients(ctx, cfg)
	if err != nil {
		return err
	}

	postJob := job.New(cfg, sheetsClient, telegramClient)
	svc := scheduler.New(cfg.Location)
	if err := svc.Add(ctx, "post", cfg.Schedule, func(ctx context.Context) {
		postJob.Run(ctx)
	}); err != nil {
		return err
	}

	log.Info().
		Str("schedule", cfg.Schedule).
		Str("timezone", cfg.Location.String()).
		Msg("Starting sheet poster")
	svc.Start()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return svc.Stop(stopCtx)
}
