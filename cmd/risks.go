package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/advisory"
	"github.com/athenahq/athena/internal/ui"
)

// risksCmd represents the risks command
var risksCmd = &cobra.Command{
	Use:   "risks",
	Short: "Run an AI risk analysis over high-risk tasks",
	Long: `Select the high-risk tasks (blocked, or overdue while still in progress)
and ask the advisory service for a consolidated risk analysis with
recommended next steps.`,
	RunE: runRisks,
}

func init() {
	rootCmd.AddCommand(risksCmd)
}

func runRisks(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	tasks, err := taskStore.ListTasks(nil, nil)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	highRisk := advisory.HighRiskTasks(tasks, time.Now())
	if len(highRisk) > 0 {
		fmt.Println(ui.StyleSubtle.Render(fmt.Sprintf("Analyzing %d high-risk task(s)...", len(highRisk))))
		for _, t := range highRisk {
			fmt.Printf("  %s %s (%s)\n",
				ui.StatusStyle(string(t.Status)).Render("•"), t.Title, t.Status)
		}
		fmt.Println()
	}

	advisoryService, err := GetAdvisoryService()
	if err != nil {
		return fmt.Errorf("configure advisory service: %w", err)
	}

	analysis := advisoryService.RiskAnalysis(context.Background(), highRisk)

	fmt.Println(ui.StyleSectionTitle.Render("Risk Analysis"))
	fmt.Println(ui.StyleAdvisoryBox.Render(analysis))
	return nil
}
