package notify

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/athenahq/athena/models"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func taskDueIn(days int, status models.TaskStatus) models.Task {
	return models.Task{
		ID:            uuid.New().String(),
		Title:         "Task",
		Area:          models.AreaContent,
		Executor:      "user-2",
		DueDate:       testNow.AddDate(0, 0, days),
		CreatedAt:     testNow,
		Status:        status,
		StatusHistory: []models.TaskStatus{models.StatusInProgress},
	}
}

func TestRefresh_Classification(t *testing.T) {
	tests := []struct {
		name     string
		task     models.Task
		wantKind models.NotificationType
		wantNone bool
	}{
		{"overdue", taskDueIn(-1, models.StatusInProgress), models.NotificationOverdue, false},
		{"due today", taskDueIn(0, models.StatusInProgress), models.NotificationOverdue, false},
		{"due tomorrow", taskDueIn(1, models.StatusInProgress), models.NotificationDueSoon, false},
		{"due in two days", taskDueIn(2, models.StatusInProgress), models.NotificationDueSoon, false},
		{"due far out", taskDueIn(10, models.StatusInProgress), "", true},
		{"completed task", taskDueIn(-5, models.StatusCompleted), "", true},
		{"exceptional task", taskDueIn(-5, models.StatusExceptional), "", true},
		{"blocked task", taskDueIn(-5, models.StatusBlocked), models.NotificationOverdue, false},
		{"training task", taskDueIn(1, models.StatusTraining), models.NotificationDueSoon, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			created := e.Refresh([]models.Task{tt.task}, testNow)
			if tt.wantNone {
				if len(created) != 0 {
					t.Fatalf("created = %v, want none", created)
				}
				return
			}
			if len(created) != 1 {
				t.Fatalf("created %d notifications, want 1", len(created))
			}
			if created[0].Type != tt.wantKind {
				t.Errorf("type = %s, want %s", created[0].Type, tt.wantKind)
			}
			if created[0].ID != NotificationID(tt.task.ID, tt.wantKind) {
				t.Errorf("id = %s", created[0].ID)
			}
		})
	}
}

func TestNotificationID(t *testing.T) {
	if got := NotificationID("abc", models.NotificationOverdue); got != "notif-abc-overdue" {
		t.Errorf("overdue id = %s", got)
	}
	if got := NotificationID("abc", models.NotificationDueSoon); got != "notif-abc-duesoon" {
		t.Errorf("due-soon id = %s", got)
	}
}

func TestRefresh_NoDuplicates(t *testing.T) {
	e := NewEngine()
	task := taskDueIn(-1, models.StatusInProgress)

	if created := e.Refresh([]models.Task{task}, testNow); len(created) != 1 {
		t.Fatalf("first pass created %d, want 1", len(created))
	}
	for i := 0; i < 3; i++ {
		if created := e.Refresh([]models.Task{task}, testNow.Add(time.Hour)); len(created) != 0 {
			t.Fatalf("pass %d created %d notifications, want 0", i+2, len(created))
		}
	}
	if got := len(e.Notifications()); got != 1 {
		t.Errorf("feed length = %d, want 1", got)
	}
}

func TestRefresh_ReadNotificationIsNotRecreated(t *testing.T) {
	e := NewEngine()
	task := taskDueIn(-1, models.StatusInProgress)

	created := e.Refresh([]models.Task{task}, testNow)
	if !e.MarkAsRead(created[0].ID) {
		t.Fatal("MarkAsRead() reported missing notification")
	}

	e.Refresh([]models.Task{task}, testNow.Add(time.Hour))
	feed := e.Notifications()
	if len(feed) != 1 {
		t.Fatalf("feed length = %d, want 1", len(feed))
	}
	if !feed[0].IsRead {
		t.Error("read notification was recreated or reset")
	}
	if e.UnreadCount() != 0 {
		t.Errorf("unread = %d, want 0", e.UnreadCount())
	}
}

func TestRefresh_SurvivesTaskCompletion(t *testing.T) {
	e := NewEngine()
	task := taskDueIn(-1, models.StatusInProgress)
	e.Refresh([]models.Task{task}, testNow)

	// The task gets delivered; its existing notification must remain.
	task.Status = models.StatusCompleted
	e.Refresh([]models.Task{task}, testNow.Add(time.Hour))

	if got := len(e.Notifications()); got != 1 {
		t.Errorf("feed length after completion = %d, want 1", got)
	}
}

func TestRefresh_BothKindsPerTask(t *testing.T) {
	e := NewEngine()
	task := taskDueIn(1, models.StatusInProgress)

	e.Refresh([]models.Task{task}, testNow)
	// Two days later the same task has crossed into overdue.
	created := e.Refresh([]models.Task{task}, testNow.AddDate(0, 0, 2))

	if len(created) != 1 || created[0].Type != models.NotificationOverdue {
		t.Fatalf("second pass created %v", created)
	}
	if got := len(e.Notifications()); got != 2 {
		t.Errorf("feed length = %d, want 2 (due-soon and overdue)", got)
	}
}

func TestNotifications_NewestFirst(t *testing.T) {
	e := NewEngine()
	first := taskDueIn(1, models.StatusInProgress)
	second := taskDueIn(-1, models.StatusInProgress)

	e.Refresh([]models.Task{first}, testNow)
	e.Refresh([]models.Task{second}, testNow.Add(2*time.Hour))

	feed := e.Notifications()
	if len(feed) != 2 {
		t.Fatalf("feed length = %d, want 2", len(feed))
	}
	if !feed[0].CreatedAt.After(feed[1].CreatedAt) {
		t.Error("feed is not newest-first")
	}
}

func TestMarkAsRead(t *testing.T) {
	e := NewEngine()
	task := taskDueIn(-1, models.StatusInProgress)
	created := e.Refresh([]models.Task{task}, testNow)

	if e.MarkAsRead("notif-missing-overdue") {
		t.Error("MarkAsRead() accepted an unknown id")
	}
	if !e.MarkAsRead(created[0].ID) {
		t.Error("MarkAsRead() rejected a known id")
	}
	// Idempotent.
	if !e.MarkAsRead(created[0].ID) {
		t.Error("second MarkAsRead() rejected a known id")
	}
}

func TestMarkAllAsRead(t *testing.T) {
	e := NewEngine()
	tasks := []models.Task{
		taskDueIn(-1, models.StatusInProgress),
		taskDueIn(1, models.StatusInProgress),
	}
	e.Refresh(tasks, testNow)

	if e.UnreadCount() != 2 {
		t.Fatalf("unread = %d, want 2", e.UnreadCount())
	}
	e.MarkAllAsRead()
	if e.UnreadCount() != 0 {
		t.Errorf("unread after MarkAllAsRead = %d, want 0", e.UnreadCount())
	}
	e.MarkAllAsRead()
	if e.UnreadCount() != 0 {
		t.Errorf("MarkAllAsRead is not idempotent")
	}
}
