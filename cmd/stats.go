package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/stats"
	"github.com/athenahq/athena/internal/ui"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the KPI report",
	Long: `Show the derived KPI snapshot: the autonomous closure rate (closed tasks
that never went through blocked), the blockage index (blocked entries
across all task histories), and tangible results per area.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	tasks, err := taskStore.ListTasks(nil, nil)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	report := stats.Compute(tasks)

	fmt.Println(ui.StyleSectionTitle.Render("KPI Report"))
	fmt.Println()
	fmt.Printf("%s %d%%\n", ui.StyleSubtle.Render("Autonomous closure rate:"), report.AutonomousClosureRate)
	fmt.Printf("%s %d\n", ui.StyleSubtle.Render("Blockage index:"), report.BlockageIndex)
	fmt.Println()

	table := ui.Table{Headers: []string{"AREA", "TANGIBLE RESULTS"}}
	for _, r := range report.ResultsByArea {
		table.Rows = append(table.Rows, []string{string(r.Area), fmt.Sprintf("%d", r.Total)})
	}
	fmt.Print(table.Render())
	return nil
}
