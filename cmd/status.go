package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/ui"
	"github.com/athenahq/athena/models"
)

var (
	statusValue    string
	statusEvidence string
	statusResult   string
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status [task-id]",
	Short: "Change a task's status",
	Long: `Transition a task to a new status. Completing a task (completed or
exceptional) requires an evidence link; without one the transition is
rejected and the task is left unchanged. After every transition, overdue
tasks without evidence are automatically blocked.

Examples:
  athena status 1b2c3d4e --to completed --evidence https://drive.example.com/report
  athena status --to blocked        # pick the task interactively`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusValue, "to", "t", "", "Target status (exceptional, completed, in-progress, blocked, training)")
	statusCmd.Flags().StringVar(&statusEvidence, "evidence", "", "Evidence link backing the new status")
	statusCmd.Flags().StringVar(&statusResult, "result", "", "Tangible result delivered")
}

func runStatus(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	task, err := resolveTask(taskStore, args, "Select a task to update")
	if err != nil {
		return err
	}

	target := statusValue
	if target == "" {
		target, err = selectStatusInteractive()
		if err != nil {
			return err
		}
	}

	// A flag left unset means "keep the stored value"; a set flag overwrites,
	// empty string included.
	var evidence, result *string
	if cmd.Flags().Changed("evidence") {
		evidence = &statusEvidence
	}
	if cmd.Flags().Changed("result") {
		result = &statusResult
	}

	updated, err := taskStore.UpdateTaskStatus(task.ID, models.TaskStatus(target), evidence, result)
	if err != nil {
		return fmt.Errorf("status update failed: %w", err)
	}

	fmt.Printf("%s %s is now %s\n",
		ui.StyleSuccess.Render("✔"),
		updated.Title,
		ui.StatusStyle(string(updated.Status)).Render(string(updated.Status)))
	return nil
}

func selectStatusInteractive() (string, error) {
	statuses := models.AllStatuses()
	items := make([]string, 0, len(statuses))
	for _, s := range statuses {
		items = append(items, string(s))
	}

	prompt := promptui.Select{
		Label: "Select the new status",
		Items: items,
	}
	_, value, err := prompt.Run()
	return value, err
}
