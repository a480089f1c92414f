package cmd

import (
	"resultctl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to look up results, add a defense CGPA and download transcripts interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		return tui.RunTUI(sess)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
