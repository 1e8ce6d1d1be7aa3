package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCourses *bool

func init() {
	showCourses = showCmd.Flags().Bool("courses", false, "Print the course registry instead of the specializations.")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [--courses] [specialization id...]",
	Short: "Prints the persisted registry.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		out, err := openStore(cfg)
		if err != nil {
			return err
		}
		registry := out.Load()

		if *showCourses {
			renderCourses(cmd.OutOrStdout(), registry)
			return nil
		}

		ids := args
		if len(ids) == 0 {
			ids = registry.SortedSpecializationIDs()
		}
		for _, id := range ids {
			spec, ok := registry.Specializations[id]
			if !ok {
				return fmt.Errorf("unknown specialization %q", id)
			}
			renderSpecialization(cmd.OutOrStdout(), spec)
		}
		return nil
	},
}
