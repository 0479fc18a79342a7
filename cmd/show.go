package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/ui"
	"github.com/athenahq/athena/models"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show full details of one task",
	Long: `Show a task's full record: lifecycle history, evidence, sharing state,
external links and signature. Without an argument an interactive picker is
shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	task, err := resolveTask(taskStore, args, "Select a task to show")
	if err != nil {
		return err
	}

	fmt.Println(ui.StyleTitle.Render(task.Title))
	fmt.Println(ui.StyleSubtle.Render(task.ID))
	fmt.Println()

	printField := func(label, value string) {
		if value != "" {
			fmt.Printf("%s %s\n", ui.StyleSubtle.Render(label+":"), value)
		}
	}

	printField("Status", ui.StatusStyle(string(task.Status)).Render(string(task.Status)))
	printField("Area", string(task.Area))
	printField("Executor", task.Executor)
	printField("Assigner", task.Assigner)
	printField("Due", task.DueDate.Format("2006-01-02"))
	printField("Created", task.CreatedAt.Format("2006-01-02"))
	printField("Description", task.Description)
	printField("Comments", task.Comments)
	printField("Evidence", task.EvidenceLink)
	printField("Result", task.TangibleResult)

	history := make([]string, 0, len(task.StatusHistory))
	for _, s := range task.StatusHistory {
		history = append(history, string(s))
	}
	printField("History", strings.Join(history, " → "))

	if task.SharingApprovalStatus != models.SharingUnset {
		printField("Sharing", string(task.SharingApprovalStatus))
	}
	if task.IsClientShared {
		printField("Client shared", "yes")
	}
	for _, link := range task.ExternalPlatformLinks {
		printField("Link", fmt.Sprintf("%s (%s)", link.URL, link.Platform))
	}
	if task.SignatureTimestamp != nil {
		printField("Signed", task.SignatureTimestamp.Format("2006-01-02 15:04"))
	}
	return nil
}
