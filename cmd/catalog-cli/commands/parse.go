package commands

import (
	"catalog-crawler/internal/catalog"
	"catalog-crawler/internal/crawler"
	"catalog-crawler/internal/extract"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var parseCourses *bool

func init() {
	parseCourses = parseCmd.Flags().Bool("courses", false, "Parse the file as the course listing page.")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <page.html> [--courses]",
	Short: "Runs the extractor over a saved page and prints what it found, nothing is persisted.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contents, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		doc := string(contents)

		cfg, err := readConfig()
		if errors.Is(err, os.ErrNotExist) {
			cfg = crawler.Config{}.WithDefaults()
		} else if err != nil {
			return err
		}

		recognizer := extract.NewRecognizer(cfg.SpecialTopics)
		out := cmd.OutOrStdout()

		if *parseCourses {
			page, _ := url.Parse(cfg.BaseUrl)
			courses := extract.ParseCourseList(recognizer, doc, page)
			registry := catalog.NewRegistry()
			for _, c := range courses {
				registry.Courses[c.ID] = c
			}
			renderCourses(out, registry)
			return nil
		}

		labels := cfg.ExtractLabels()
		classifier := extract.NewClassifier(recognizer, tel)
		if core, ok := extract.SegmentAny(doc, labels.Core, labels.AfterCore); ok {
			fmt.Fprintf(out, "core section matched the %q pattern\n", classifier.ClassifyCore(core).Pattern)
		}

		id := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		spec := extract.NewExtractor(classifier, labels, tel).Specialization(doc, extract.SpecializationSource{
			ID:   id,
			Name: id,
		})
		renderSpecialization(out, spec)
		return nil
	},
}
