package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/ui"
	"github.com/athenahq/athena/models"
)

var (
	linkPlatform string
	linkURL      string
)

// linkCmd represents the link command
var linkCmd = &cobra.Command{
	Use:   "link [task-id]",
	Short: "Attach an external platform link to a task",
	Long: `Attach a reference to the same deliverable on an external system, for
example a legal filing platform. The URL must be http or https.

Example:
  athena link 1b2c3d4e --platform LexNet --url https://lexnet.example.com/filing/42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLink,
}

func init() {
	rootCmd.AddCommand(linkCmd)

	linkCmd.Flags().StringVar(&linkPlatform, "platform", "", "Name of the external platform")
	linkCmd.Flags().StringVar(&linkURL, "url", "", "Link URL (http or https)")
	_ = linkCmd.MarkFlagRequired("platform")
	_ = linkCmd.MarkFlagRequired("url")
}

func runLink(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	task, err := resolveTask(taskStore, args, "Select a task to link")
	if err != nil {
		return err
	}

	updated, err := taskStore.AddExternalLink(task.ID, models.ExternalPlatformLink{
		Platform: linkPlatform,
		URL:      linkURL,
	})
	if err != nil {
		return fmt.Errorf("add link failed: %w", err)
	}

	fmt.Printf("%s Linked %s to %s (%d link(s) total)\n",
		ui.StyleSuccess.Render("✔"), updated.Title, linkURL, len(updated.ExternalPlatformLinks))
	return nil
}
