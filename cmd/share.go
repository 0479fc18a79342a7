package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/ui"
	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/store"
)

// shareCmd groups the client-sharing workflow.
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Manage client sharing of a task",
	Long: `Manage the client-sharing workflow: an executor requests sharing, the
director approves or rejects it. Approval marks the task as shared with
the client.`,
}

var shareRequestCmd = &cobra.Command{
	Use:   "request [task-id]",
	Short: "Request client sharing for a task",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShareAction(args, "Select a task to request sharing for", store.TaskStore.RequestClientSharing, "sharing requested for")
	},
}

var shareApproveCmd = &cobra.Command{
	Use:   "approve [task-id]",
	Short: "Approve a pending sharing request",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShareAction(args, "Select a task to approve sharing for", store.TaskStore.ApproveClientSharing, "sharing approved for")
	},
}

var shareRejectCmd = &cobra.Command{
	Use:   "reject [task-id]",
	Short: "Reject a pending sharing request",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShareAction(args, "Select a task to reject sharing for", store.TaskStore.RejectClientSharing, "sharing rejected for")
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.AddCommand(shareRequestCmd)
	shareCmd.AddCommand(shareApproveCmd)
	shareCmd.AddCommand(shareRejectCmd)
}

func runShareAction(args []string, label string, action func(store.TaskStore, string) (models.Task, error), verb string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	task, err := resolveTask(taskStore, args, label)
	if err != nil {
		return err
	}

	updated, err := action(taskStore, task.ID)
	if err != nil {
		return fmt.Errorf("sharing update failed: %w", err)
	}

	fmt.Printf("%s %s %q (state: %s)\n",
		ui.StyleSuccess.Render("✔"), verb, updated.Title, updated.SharingApprovalStatus)
	return nil
}
