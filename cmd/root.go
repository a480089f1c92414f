package cmd

import (
	"fmt"
	"os"
	"strings"

	"resultctl/pkg/cgpa"
	"resultctl/pkg/config"
	"resultctl/pkg/logging"
	"resultctl/pkg/session"

	"github.com/spf13/cobra"
)

var (
	verbose     bool
	apiOverride string
)

var rootCmd = &cobra.Command{
	Use:   "resultctl",
	Short: "A CLI and TUI for university semester results",
	Long: `resultctl fetches every published semester result for a student,
computes the cumulative GPA across all semesters and exports a paginated
PDF transcript.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every request to stderr")
	rootCmd.PersistentFlags().StringVar(&apiOverride, "api", "", "Override the results API base URL")
}

// newSession loads the effective configuration and wires the shared cache
func newSession() (*session.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, verbose)
	return session.New(cfg, logger, apiOverride), nil
}

// studentArg resolves the student id from the flag or the saved default
func studentArg(cmd *cobra.Command, sess *session.Session) (string, error) {
	id, _ := cmd.Flags().GetString("student")
	id = strings.TrimSpace(id)
	if id == "" {
		id = sess.Config.DefaultStudentID
	}
	if id == "" {
		return "", fmt.Errorf("a student ID is required: pass --student or save one with 'resultctl config'")
	}
	return id, nil
}

// defenseArg returns the bonus only when --defense was given explicitly,
// so a defense of 0.00 is still counted.
func defenseArg(cmd *cobra.Command) (*cgpa.Bonus, error) {
	if !cmd.Flags().Changed("defense") {
		return nil, nil
	}
	p, _ := cmd.Flags().GetFloat64("defense")
	return cgpa.NewBonus(p)
}

func addResultFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("student", "s", "", "Student ID to fetch results for")
	cmd.Flags().Float64P("defense", "d", 0, "Defense CGPA (0.00-4.00) counted as a 6 credit course")
}
