package commands

import (
	"catalog-crawler/internal/components/chrono"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var watchSchedule *string

func init() {
	watchSchedule = watchCmd.Flags().String("schedule", "", "Cron expression to crawl on, overrides `schedule` in the config.")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [--schedule <cron expression>]",
	Short: "Crawls the catalog on a schedule until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		schedule := cfg.Schedule
		if *watchSchedule != "" {
			schedule = *watchSchedule
		}
		if schedule == "" {
			return errors.New("no schedule was given")
		}
		clock, err := newClock(cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		cron := chrono.NewStandardCron(clock, tel)
		defer cron.Stop()

		err = cron.Cron(schedule, func() {
			_, err := crawlOnce(ctx, cfg)
			if err != nil {
				slog.Error("scheduled crawl failed", "err", err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid schedule %q: %w", schedule, err)
		}

		slog.Info("waiting for scheduled crawls", "schedule", schedule)
		<-ctx.Done()
		return nil
	},
}
