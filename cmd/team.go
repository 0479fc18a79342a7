package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/ui"
)

// teamCmd represents the team command
var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show the team roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := ui.Table{Headers: []string{"ID", "NAME", "ROLE"}}
		for _, m := range TeamRoster() {
			table.Rows = append(table.Rows, []string{m.ID, m.Name, string(m.Role)})
		}
		fmt.Print(table.Render())
		return nil
	},
}

// versionCmd reports the build version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("athena", version)
	},
}

func init() {
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(versionCmd)
}
