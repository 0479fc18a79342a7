package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/ui"
	"github.com/athenahq/athena/types"
)

var (
	notifyReadAll bool
	notifyReadID  string
)

// notificationsCmd represents the notifications command
var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notify"},
	Short:   "Show the notification feed",
	Long: `Show due-soon and overdue notifications derived from the task set,
newest first. A notification exists at most once per task and type and is
never retracted, only marked read.

Examples:
  athena notifications
  athena notifications --read notif-1b2c3d4e-overdue
  athena notifications --read-all`,
	RunE: runNotifications,
}

func init() {
	rootCmd.AddCommand(notificationsCmd)

	notificationsCmd.Flags().BoolVar(&notifyReadAll, "read-all", false, "Mark every notification as read")
	notificationsCmd.Flags().StringVar(&notifyReadID, "read", "", "Mark one notification as read by ID")
}

func runNotifications(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}
	engine := GetNotifyEngine(taskStore)

	if notifyReadAll {
		engine.MarkAllAsRead()
	} else if notifyReadID != "" {
		if !engine.MarkAsRead(notifyReadID) {
			return types.ErrNotificationNotFound
		}
	}

	feed := engine.Notifications()
	if len(feed) == 0 {
		fmt.Println(ui.StyleSubtle.Render("No notifications."))
		return nil
	}

	for _, n := range feed {
		marker := ui.StylePrimary.Render("●")
		if n.IsRead {
			marker = ui.StyleSubtle.Render("○")
		}
		style := ui.StyleWarning
		if n.Type == "overdue" {
			style = ui.StyleError
		}
		fmt.Printf("%s %s %s\n", marker, style.Render(string(n.Type)), n.Message)
		fmt.Println(ui.StyleSubtle.Render("  " + n.ID))
	}
	fmt.Println()
	fmt.Println(ui.StyleSubtle.Render(fmt.Sprintf("%d unread", engine.UnreadCount())))
	return nil
}
