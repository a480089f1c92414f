package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"resultctl/pkg/exporter"
	"resultctl/pkg/tui"

	"github.com/spf13/cobra"
)

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Show all semester results and the cumulative GPA",
	Long:  `Fetch every semester result for a student, print them grouped by semester and compute the CGPA.`,
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

		summary, err := tui.FetchWithSpinner(sess, studentID, bonus)
		if err != nil {
			return err
		}
		tui.PrintReport(os.Stdout, summary)

		withPDF, _ := cmd.Flags().GetBool("pdf")
		if !withPDF {
			return nil
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = filepath.Join(sess.Config.OutputDir, exporter.FileName(studentID))
		}
		pages, err := tui.WritePDF(summary, output)
		if err != nil {
			return err
		}
		fmt.Printf("\nWrote %d page transcript to %s\n", pages, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resultCmd)

	addResultFlags(resultCmd)
	resultCmd.Flags().Bool("pdf", false, "Also write the transcript as a PDF")
	resultCmd.Flags().StringP("output", "o", "", "PDF output path (default <id>_results.pdf)")
}
