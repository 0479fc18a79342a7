package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/ui"
	"github.com/athenahq/athena/models"
)

// trainCmd represents the train command
var trainCmd = &cobra.Command{
	Use:   "train [task-id]",
	Short: "Get AI training suggestions for a task",
	Long: `Ask the advisory service for a short training plan that would help the
executor complete the given task. Without an argument, tasks in the
training status are offered for selection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	var task models.Task
	if len(args) > 0 {
		task, err = taskStore.GetTask(args[0])
	} else {
		// Prefer tasks already flagged for training; fall back to all tasks.
		task, err = selectTaskInteractive(taskStore, func(t models.Task) bool {
			return t.Status == models.StatusTraining
		}, "Select a task to get training suggestions for")
		if err == ErrNoTasksFound {
			task, err = selectTaskInteractive(taskStore, nil, "Select a task to get training suggestions for")
		}
	}
	if err != nil {
		return err
	}

	advisoryService, err := GetAdvisoryService()
	if err != nil {
		return fmt.Errorf("configure advisory service: %w", err)
	}

	fmt.Println(ui.StyleSubtle.Render("Generating training suggestions..."))
	text := advisoryService.TrainingSuggestions(context.Background(), task)

	fmt.Println()
	fmt.Println(ui.StyleSectionTitle.Render("Training Suggestions"))
	fmt.Println(ui.StyleAdvisoryBox.Render(text))
	return nil
}
