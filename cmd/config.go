package cmd

import (
	"fmt"
	"time"

	"resultctl/pkg/config"
	"resultctl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage resultctl configuration",
	Long:  "View or edit your local configuration settings (API endpoint, cache duration, parallel requests).",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("set-api") && !flags.Changed("set-ttl") && !flags.Changed("set-workers") && !flags.Changed("set-student") {
			// If no flags are given, launch the interactive TUI flow
			return tui.RunConfigTUI()
		}

		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}

		if flags.Changed("set-api") {
			cfg.APIBaseURL, _ = flags.GetString("set-api")
		}
		if flags.Changed("set-ttl") {
			ttl, _ := flags.GetDuration("set-ttl")
			cfg.CacheTTL = ttl.String()
		}
		if flags.Changed("set-workers") {
			cfg.Workers, _ = flags.GetInt("set-workers")
			if cfg.Workers <= 0 {
				return fmt.Errorf("--set-workers must be positive")
			}
		}
		if flags.Changed("set-student") {
			cfg.DefaultStudentID, _ = flags.GetString("set-student")
		}

		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Println("✅ Configuration saved.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("set-api", "", "Set the results API base URL")
	configCmd.Flags().Duration("set-ttl", time.Hour, "Set how long fetched results are reused")
	configCmd.Flags().Int("set-workers", 32, "Set how many semesters are fetched in parallel")
	configCmd.Flags().String("set-student", "", "Set the default student ID")
}
