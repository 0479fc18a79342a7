package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/ui"
	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/store"
)

var (
	addArea        string
	addExecutor    string
	addAssigner    string
	addDue         string
	addDescription string
	addComments    string
	addAI          bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task to the dashboard. The task starts in progress with its
history opened.

With --ai the title is treated as a rough idea and the advisory service
drafts a polished title and description from it.

Examples:
  athena add "File the Q3 VAT return" --area legal --executor user-2 --due 2026-09-15
  athena add "something about the overdue invoices" --ai --area collections --executor user-3 --due 2026-09-10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addArea, "area", "a", "", "Business area (content, legal, collections, sales)")
	addCmd.Flags().StringVarP(&addExecutor, "executor", "e", "", "Team member responsible for the task")
	addCmd.Flags().StringVar(&addAssigner, "assigner", "", "Team member who assigned the task")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Task description")
	addCmd.Flags().StringVar(&addComments, "comments", "", "Free-form comments")
	addCmd.Flags().BoolVar(&addAI, "ai", false, "Draft title and description from the idea with AI")

	_ = addCmd.MarkFlagRequired("area")
	_ = addCmd.MarkFlagRequired("executor")
	_ = addCmd.MarkFlagRequired("due")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	description := addDescription

	due, err := time.ParseInLocation("2006-01-02", addDue, time.Local)
	if err != nil {
		return fmt.Errorf("invalid due date %q: use YYYY-MM-DD", addDue)
	}

	if addAI {
		advisoryService, err := GetAdvisoryService()
		if err != nil {
			return fmt.Errorf("configure advisory service: %w", err)
		}
		fmt.Println(ui.StyleSubtle.Render("Drafting task details with AI..."))
		details := advisoryService.TaskDetails(context.Background(), title)
		title = details.Title
		if description == "" {
			description = details.Description
		}
	}

	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	task, err := taskStore.AddTask(store.CreateTaskParams{
		Title:       title,
		Description: description,
		Area:        models.Area(addArea),
		Assigner:    addAssigner,
		Executor:    addExecutor,
		DueDate:     due,
		Comments:    addComments,
	})
	if err != nil {
		return fmt.Errorf("add task failed: %w", err)
	}

	fmt.Printf("%s Added task %s: %s (%s, due %s)\n",
		ui.StyleSuccess.Render("✔"),
		ui.TruncateID(task.ID),
		task.Title,
		task.Area,
		task.DueDate.Format("2006-01-02"))
	return nil
}
