package commands

import (
	"catalog-crawler/internal/components/telemetry"
	"catalog-crawler/internal/crawler"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var strict *bool

func init() {
	strict = crawlCmd.Flags().Bool("strict", false, "Exit with an error if any page failed.")
	rootCmd.AddCommand(crawlCmd)
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [--strict]",
	Short: "Crawls the catalog and merges the result into the persisted registry.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		result, err := crawlOnce(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if *strict && len(result.Failures) > 0 {
			return fmt.Errorf("%d page(s) failed: %w", len(result.Failures), result.Err())
		}
		return nil
	},
}

func newCrawler(cfg crawler.Config) (crawler.Crawler, error) {
	opts := crawler.ClientOptions{
		BaseUrl:   cfg.BaseUrl,
		RateLimit: cfg.RateLimit,
	}
	if *verbose {
		output, err := telemetry.NewFilesystemOutput("<dev_state>/resty/catalog")
		if err != nil {
			return crawler.Crawler{}, err
		}
		opts.Output = output
	}
	if opts.BaseUrl == "" {
		return crawler.Crawler{}, errors.New("base_url is not configured")
	}

	client, err := crawler.NewClient(opts, tel)
	if err != nil {
		return crawler.Crawler{}, fmt.Errorf("create client: %w", err)
	}
	return crawler.NewCrawler(client, cfg, tel), nil
}

// crawlOnce runs a single crawl, saves it and records it in the history database.
func crawlOnce(ctx context.Context, cfg crawler.Config) (crawler.Result, error) {
	c, err := newCrawler(cfg)
	if err != nil {
		return crawler.Result{}, err
	}
	out, err := openStore(cfg)
	if err != nil {
		return crawler.Result{}, err
	}
	clock, err := newClock(cfg)
	if err != nil {
		return crawler.Result{}, err
	}
	hist, closeHistory, recording, err := openHistory(cfg, clock)
	if err != nil {
		return crawler.Result{}, err
	}
	defer closeHistory()

	var runID int64
	if recording {
		runID, err = hist.Start(ctx)
		if err != nil {
			return crawler.Result{}, fmt.Errorf("record run: %w", err)
		}
	}

	t1 := time.Now()
	result, err := c.Run(ctx, out.Load())
	if err != nil {
		return result, err
	}
	slog.Info("crawling time", "seconds", time.Since(t1).Seconds())

	err = out.Save(result.Registry)
	if err != nil {
		return result, err
	}

	if recording {
		err = hist.Finish(ctx, runID, result)
		if err != nil {
			return result, fmt.Errorf("record run: %w", err)
		}
	}

	for _, id := range result.NewCourses {
		slog.Info("new course", "id", id, "name", result.Registry.Courses[id].Name)
	}
	for _, suggestion := range result.Aliases {
		slog.Info(
			"possible alias",
			"course", suggestion.Course,
			"alias_of", suggestion.AliasOf,
			"similarity", fmt.Sprintf("%.3f", suggestion.Similarity),
		)
	}
	for page, failure := range result.Failures {
		slog.Error("page failed", "page", page, "err", failure)
	}
	slog.Info(
		"crawl finished",
		"courses", len(result.Registry.Courses),
		"specializations", result.Specializations,
		"new_courses", len(result.NewCourses),
		"failures", len(result.Failures),
	)

	return result, nil
}
