// Package notify derives the notification feed from the task set. The feed is
// monotonically growing: once a notification exists for a (task, type) pair it
// is never duplicated or retracted, only marked read.
package notify

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/athenahq/athena/models"
)

// dueSoonWindow is how far ahead of now a due date counts as "due soon".
const dueSoonWindow = 48 * time.Hour

// Engine owns the derived notification collection. It is a read-only observer
// of the task store; Refresh is wired to the store's change hook.
type Engine struct {
	mu   sync.Mutex
	feed []models.Notification
	seen map[string]bool // (taskID, type) pairs already notified
}

// NewEngine creates an empty notification engine.
func NewEngine() *Engine {
	return &Engine{seen: make(map[string]bool)}
}

// NotificationID derives the deterministic feed ID for a (task, type) pair,
// so recomputation can never mint a second notification for the same
// condition.
func NotificationID(taskID string, kind models.NotificationType) string {
	suffix := "duesoon"
	if kind == models.NotificationOverdue {
		suffix = "overdue"
	}
	return fmt.Sprintf("notif-%s-%s", taskID, suffix)
}

// Refresh recomputes candidates against the given task snapshot and merges
// the new ones into the feed. Completed and exceptional tasks produce
// nothing; existing notifications survive any later task change. It returns
// the notifications created by this pass.
func (e *Engine) Refresh(tasks []models.Task, now time.Time) []models.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	var created []models.Notification
	for _, task := range tasks {
		if task.Status.IsCompletion() {
			continue
		}

		// Date-only comparison in the local zone, so a UTC-parsed due date
		// does not shift across midnight.
		y, m, d := task.DueDate.Date()
		due := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

		var kind models.NotificationType
		var message string
		switch {
		case due.Before(now):
			kind = models.NotificationOverdue
			message = fmt.Sprintf("Task %q is overdue.", task.Title)
		case !due.After(now.Add(dueSoonWindow)):
			kind = models.NotificationDueSoon
			message = fmt.Sprintf("Task %q is due soon.", task.Title)
		default:
			continue
		}

		id := NotificationID(task.ID, kind)
		if e.seen[id] {
			continue
		}
		e.seen[id] = true
		created = append(created, models.Notification{
			ID:        id,
			TaskID:    task.ID,
			Message:   message,
			Type:      kind,
			IsRead:    false,
			CreatedAt: now,
		})
	}

	if len(created) > 0 {
		e.feed = append(e.feed, created...)
		sort.SliceStable(e.feed, func(i, j int) bool {
			return e.feed[i].CreatedAt.After(e.feed[j].CreatedAt)
		})
	}
	return created
}

// Notifications returns the feed, newest first.
func (e *Engine) Notifications() []models.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Notification(nil), e.feed...)
}

// UnreadCount reports how many notifications are unread.
func (e *Engine) UnreadCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	count := 0
	for _, n := range e.feed {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// MarkAsRead marks one notification read. Idempotent; reports whether the
// notification exists.
func (e *Engine) MarkAsRead(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.feed {
		if e.feed[i].ID == id {
			e.feed[i].IsRead = true
			return true
		}
	}
	return false
}

// MarkAllAsRead marks the whole feed read. Idempotent.
func (e *Engine) MarkAllAsRead() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.feed {
		e.feed[i].IsRead = true
	}
}
