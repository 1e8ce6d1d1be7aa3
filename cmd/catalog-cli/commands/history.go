package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit *int64

func init() {
	historyLimit = historyCmd.Flags().Int64("limit", 20, "The number of runs to print.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [run id]",
	Short: "Prints recorded crawl runs, or the new courses and failures of a single run.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		clock, err := newClock(cfg)
		if err != nil {
			return err
		}
		hist, closeHistory, ok, err := openHistory(cfg, clock)
		if err != nil {
			return err
		}
		defer closeHistory()
		if !ok {
			return errors.New("no history database is configured")
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())

		if len(args) == 1 {
			runID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id: %w", err)
			}
			courses, failures, err := hist.Details(cmd.Context(), runID)
			if err != nil {
				return err
			}
			t.AppendHeader(table.Row{"Kind", "ID / Page", "Details"})
			for _, c := range courses {
				t.AppendRow(table.Row{"new course", c.CourseID, c.Name})
			}
			for _, f := range failures {
				t.AppendRow(table.Row{"failure", f.Page, f.Message})
			}
			t.Render()
			return nil
		}

		runs, err := hist.Recent(cmd.Context(), *historyLimit)
		if err != nil {
			return err
		}
		t.AppendHeader(table.Row{"Run", "Started", "Duration", "Courses", "Specializations", "Failures"})
		for _, run := range runs {
			duration := "unfinished"
			if run.Finished {
				duration = run.Duration.String()
			}
			t.AppendRow(table.Row{
				run.ID,
				run.StartedAt.Format(time.DateTime),
				duration,
				run.Courses,
				run.Specializations,
				run.Failures,
			})
		}
		t.Render()
		return nil
	},
}
