package cmd

import (
	"fmt"
	"path/filepath"

	"resultctl/pkg/exporter"
	"resultctl/pkg/tui"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Directly export a transcript to a PDF file",
	Long:  `Export the full transcript of a student to a PDF without printing the report or using the interactive TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		studentID, err := studentArg(cmd, sess)
		if err != nil {
			return err
		}
		bonus, err := defenseArg(cmd)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = filepath.Join(sess.Config.OutputDir, exporter.FileName(studentID))
		}

		summary, err := tui.FetchWithSpinner(sess, studentID, bonus)
		if err != nil {
			return err
		}

		pages, err := tui.WritePDF(summary, output)
		if err != nil {
			return fmt.Errorf("failed to generate PDF: %w", err)
		}

		for _, w := range summary.Warnings() {
			fmt.Println("warning:", w)
		}
		fmt.Printf("Successfully exported %d semesters (%d pages) to %s\n", summary.Terms.Len(), pages, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addResultFlags(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default <id>_results.pdf)")
}
