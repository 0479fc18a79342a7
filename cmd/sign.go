package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/ui"
)

var signFile string

// signCmd represents the sign command
var signCmd = &cobra.Command{
	Use:   "sign [task-id]",
	Short: "Record a client signature on a task",
	Long: `Record a captured client signature, supplied as a base64 data URL in a
file. The signing time is stamped by the store.

Example:
  athena sign 1b2c3d4e --file signature.dataurl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSign,
}

func init() {
	rootCmd.AddCommand(signCmd)

	signCmd.Flags().StringVarP(&signFile, "file", "f", "", "File containing the signature data URL")
	_ = signCmd.MarkFlagRequired("file")
}

func runSign(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(signFile)
	if err != nil {
		return fmt.Errorf("read signature file: %w", err)
	}
	signature := strings.TrimSpace(string(data))
	if signature == "" {
		return fmt.Errorf("signature file %s is empty", signFile)
	}

	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	task, err := resolveTask(taskStore, args, "Select a task to sign")
	if err != nil {
		return err
	}

	updated, err := taskStore.AddClientSignature(task.ID, signature)
	if err != nil {
		return fmt.Errorf("record signature failed: %w", err)
	}

	fmt.Printf("%s Signature recorded on %s at %s\n",
		ui.StyleSuccess.Render("✔"),
		updated.Title,
		updated.SignatureTimestamp.Format("2006-01-02 15:04"))
	return nil
}
