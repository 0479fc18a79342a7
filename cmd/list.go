package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/ui"
	"github.com/athenahq/athena/models"
)

var (
	listStatus string
	listArea   string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks on the dashboard, newest first.

Examples:
  athena list
  athena list --status blocked
  athena list --area legal --status in-progress`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status (exceptional, completed, in-progress, blocked, training)")
	listCmd.Flags().StringVarP(&listArea, "area", "a", "", "Filter by area (content, legal, collections, sales)")
}

func runList(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	var filterFn func(models.Task) bool
	if listStatus != "" || listArea != "" {
		filterFn = func(t models.Task) bool {
			if listStatus != "" && string(t.Status) != listStatus {
				return false
			}
			if listArea != "" && string(t.Area) != listArea {
				return false
			}
			return true
		}
	}

	tasks, err := taskStore.ListTasks(filterFn, func(tasks []models.Task) []models.Task {
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
		return tasks
	})
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		fmt.Println(ui.StyleSubtle.Render("No tasks found."))
		return nil
	}

	table := ui.Table{
		Headers:  []string{"ID", "TITLE", "AREA", "STATUS", "EXECUTOR", "DUE"},
		MaxWidth: 40,
	}
	for _, t := range tasks {
		table.Rows = append(table.Rows, []string{
			ui.TruncateID(t.ID),
			t.Title,
			string(t.Area),
			ui.StatusStyle(string(t.Status)).Render(string(t.Status)),
			t.Executor,
			t.DueDate.Format("2006-01-02"),
		})
	}
	fmt.Print(table.Render())
	fmt.Println(ui.StyleSubtle.Render(fmt.Sprintf(" %d task(s)", len(tasks))))
	return nil
}
