package store

import (
	"errors"
	"testing"
	"time"

	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/types"
)

// fixedNow pins the store clock so due-date math is deterministic.
var fixedNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	s.now = func() time.Time { return fixedNow }
	return s
}

func mustAdd(t *testing.T, s *MemoryStore, title string, due time.Time) models.Task {
	t.Helper()
	task, err := s.AddTask(CreateTaskParams{
		Title:    title,
		Area:     models.AreaContent,
		Executor: "user-2",
		DueDate:  due,
	})
	if err != nil {
		t.Fatalf("AddTask(%q) failed: %v", title, err)
	}
	return task
}

func strPtr(s string) *string { return &s }

func TestAddTask(t *testing.T) {
	s := newTestStore(t)
	due := fixedNow.AddDate(0, 0, 7)

	task := mustAdd(t, s, "Draft the newsletter", due)

	if task.Status != models.StatusInProgress {
		t.Errorf("new task status = %s, want in-progress", task.Status)
	}
	if len(task.StatusHistory) != 1 || task.StatusHistory[0] != models.StatusInProgress {
		t.Errorf("new task history = %v, want [in-progress]", task.StatusHistory)
	}
	if h, m, sec := task.DueDate.Clock(); h != 0 || m != 0 || sec != 0 {
		t.Errorf("due date not normalized to midnight: %v", task.DueDate)
	}
	if !task.CreatedAt.Equal(fixedNow) {
		t.Errorf("createdAt = %v, want %v", task.CreatedAt, fixedNow)
	}
}

func TestAddTask_Validation(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name   string
		params CreateTaskParams
	}{
		{"missing title", CreateTaskParams{Area: models.AreaLegal, Executor: "u", DueDate: fixedNow}},
		{"missing area", CreateTaskParams{Title: "t", Executor: "u", DueDate: fixedNow}},
		{"bad area", CreateTaskParams{Title: "t", Area: "marketing", Executor: "u", DueDate: fixedNow}},
		{"missing executor", CreateTaskParams{Title: "t", Area: models.AreaLegal, DueDate: fixedNow}},
		{"missing due date", CreateTaskParams{Title: "t", Area: models.AreaLegal, Executor: "u"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddTask(tt.params); err == nil {
				t.Error("AddTask() accepted invalid params")
			}
		})
	}
}

func TestGetTask_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTask("nope")
	if !errors.Is(err, types.ErrTaskNotFound) {
		t.Errorf("GetTask(unknown) error = %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateTaskStatus_EvidenceRequired(t *testing.T) {
	s := newTestStore(t)
	task := mustAdd(t, s, "Collect overdue invoice", fixedNow.AddDate(0, 0, 7))

	for _, target := range []models.TaskStatus{models.StatusCompleted, models.StatusExceptional} {
		_, err := s.UpdateTaskStatus(task.ID, target, nil, nil)
		if !errors.Is(err, types.ErrEvidenceRequired) {
			t.Errorf("transition to %s without evidence: error = %v, want ErrEvidenceRequired", target, err)
		}
		_, err = s.UpdateTaskStatus(task.ID, target, strPtr("   "), nil)
		if !errors.Is(err, types.ErrEvidenceRequired) {
			t.Errorf("transition to %s with blank evidence: error = %v, want ErrEvidenceRequired", target, err)
		}
	}

	// The rejected mutation must leave the task untouched.
	got, err := s.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask() failed: %v", err)
	}
	if got.Status != models.StatusInProgress || len(got.StatusHistory) != 1 {
		t.Errorf("task changed by rejected transition: status=%s history=%v", got.Status, got.StatusHistory)
	}
}

func TestUpdateTaskStatus_CompleteWithEvidence(t *testing.T) {
	s := newTestStore(t)
	task := mustAdd(t, s, "Publish the case study", fixedNow.AddDate(0, 0, 7))

	got, err := s.UpdateTaskStatus(task.ID, models.StatusCompleted, strPtr("https://drive.example.com/doc"), strPtr("Case study live"))
	if err != nil {
		t.Fatalf("UpdateTaskStatus() failed: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
	if got.EvidenceLink != "https://drive.example.com/doc" {
		t.Errorf("evidenceLink = %q", got.EvidenceLink)
	}
	if got.TangibleResult != "Case study live" {
		t.Errorf("tangibleResult = %q", got.TangibleResult)
	}
	wantHistory := []models.TaskStatus{models.StatusInProgress, models.StatusCompleted}
	if len(got.StatusHistory) != len(wantHistory) {
		t.Fatalf("history = %v, want %v", got.StatusHistory, wantHistory)
	}
}

func TestUpdateTaskStatus_HistorySuppression(t *testing.T) {
	s := newTestStore(t)
	task := mustAdd(t, s, "Draft the contract", fixedNow.AddDate(0, 0, 7))

	// Re-entering the current status must not grow the history.
	got, err := s.UpdateTaskStatus(task.ID, models.StatusInProgress, nil, nil)
	if err != nil {
		t.Fatalf("UpdateTaskStatus() failed: %v", err)
	}
	if len(got.StatusHistory) != 1 {
		t.Errorf("consecutive duplicate appended: %v", got.StatusHistory)
	}

	// A non-consecutive repeat is a real event and is recorded.
	if _, err := s.UpdateTaskStatus(task.ID, models.StatusBlocked, nil, nil); err != nil {
		t.Fatalf("UpdateTaskStatus() failed: %v", err)
	}
	got, err = s.UpdateTaskStatus(task.ID, models.StatusInProgress, nil, nil)
	if err != nil {
		t.Fatalf("UpdateTaskStatus() failed: %v", err)
	}
	want := []models.TaskStatus{models.StatusInProgress, models.StatusBlocked, models.StatusInProgress}
	if len(got.StatusHistory) != len(want) {
		t.Fatalf("history = %v, want %v", got.StatusHistory, want)
	}
	for i := range want {
		if got.StatusHistory[i] != want[i] {
			t.Errorf("history[%d] = %s, want %s", i, got.StatusHistory[i], want[i])
		}
	}
}

func TestUpdateTaskStatus_ReopenClearsEvidence(t *testing.T) {
	s := newTestStore(t)
	task := mustAdd(t, s, "Close the sales deal", fixedNow.AddDate(0, 0, 7))

	if _, err := s.UpdateTaskStatus(task.ID, models.StatusCompleted, strPtr("https://crm.example.com/deal"), strPtr("Deal signed")); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	got, err := s.UpdateTaskStatus(task.ID, models.StatusInProgress, nil, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if got.EvidenceLink != "" || got.TangibleResult != "" {
		t.Errorf("reopening kept delivery fields: evidence=%q result=%q", got.EvidenceLink, got.TangibleResult)
	}
}

func TestUpdateTaskStatus_PointerOverwrite(t *testing.T) {
	s := newTestStore(t)
	task := mustAdd(t, s, "Prepare the filing", fixedNow.AddDate(0, 0, 7))

	if _, err := s.UpdateTaskStatus(task.ID, models.StatusTraining, nil, strPtr("Outline ready")); err != nil {
		t.Fatalf("UpdateTaskStatus() failed: %v", err)
	}

	// nil leaves the field alone; a present empty string clears it.
	got, err := s.UpdateTaskStatus(task.ID, models.StatusInProgress, nil, nil)
	if err != nil {
		t.Fatalf("UpdateTaskStatus() failed: %v", err)
	}
	if got.TangibleResult != "Outline ready" {
		t.Errorf("nil pointer overwrote tangibleResult: %q", got.TangibleResult)
	}

	got, err = s.UpdateTaskStatus(task.ID, models.StatusTraining, nil, strPtr(""))
	if err != nil {
		t.Fatalf("UpdateTaskStatus() failed: %v", err)
	}
	if got.TangibleResult != "" {
		t.Errorf("present empty string did not clear tangibleResult: %q", got.TangibleResult)
	}
}

func TestEscalateOverdue(t *testing.T) {
	s := newTestStore(t)
	overdue := mustAdd(t, s, "Overdue without evidence", fixedNow.AddDate(0, 0, -2))
	future := mustAdd(t, s, "Not due yet", fixedNow.AddDate(0, 0, 7))

	escalated := s.EscalateOverdue(fixedNow)
	if len(escalated) != 1 || escalated[0].ID != overdue.ID {
		t.Fatalf("escalated = %v, want exactly the overdue task", escalated)
	}
	if escalated[0].Status != models.StatusBlocked {
		t.Errorf("escalated status = %s, want blocked", escalated[0].Status)
	}
	if got, _ := s.GetTask(future.ID); got.Status != models.StatusInProgress {
		t.Errorf("future task status = %s, want in-progress", got.Status)
	}

	// The audit is idempotent.
	if again := s.EscalateOverdue(fixedNow); len(again) != 0 {
		t.Errorf("second pass escalated %d task(s), want 0", len(again))
	}
}

func TestEscalateOverdue_SkipsEvidenceAndClosed(t *testing.T) {
	s := newTestStore(t)
	covered := mustAdd(t, s, "Overdue but evidenced", fixedNow.AddDate(0, 0, -2))
	done := mustAdd(t, s, "Overdue but delivered", fixedNow.AddDate(0, 0, -2))

	// Evidence and the completed state are both set before the audit embedded
	// in UpdateTaskStatus can reach the task.
	if _, err := s.UpdateTaskStatus(covered.ID, models.StatusTraining, strPtr("https://example.com/progress"), nil); err != nil {
		t.Fatalf("stage evidence failed: %v", err)
	}
	if _, err := s.UpdateTaskStatus(done.ID, models.StatusCompleted, strPtr("https://example.com/proof"), nil); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if escalated := s.EscalateOverdue(fixedNow); len(escalated) != 0 {
		t.Errorf("escalated exempt tasks: %v", escalated)
	}
	if got, _ := s.GetTask(covered.ID); got.Status != models.StatusTraining {
		t.Errorf("evidenced task status = %s, want training", got.Status)
	}
	if got, _ := s.GetTask(done.ID); got.Status != models.StatusCompleted {
		t.Errorf("delivered task status = %s, want completed", got.Status)
	}
}

func TestUpdateTaskStatus_TriggersEscalation(t *testing.T) {
	s := newTestStore(t)
	overdue := mustAdd(t, s, "Quietly overdue", fixedNow.AddDate(0, 0, -1))
	other := mustAdd(t, s, "Unrelated task", fixedNow.AddDate(0, 0, 7))

	// Updating one task audits the whole set.
	if _, err := s.UpdateTaskStatus(other.ID, models.StatusTraining, nil, nil); err != nil {
		t.Fatalf("UpdateTaskStatus() failed: %v", err)
	}

	got, err := s.GetTask(overdue.ID)
	if err != nil {
		t.Fatalf("GetTask() failed: %v", err)
	}
	if got.Status != models.StatusBlocked {
		t.Errorf("overdue task status = %s after unrelated update, want blocked", got.Status)
	}
}

func TestUpdateTask(t *testing.T) {
	s := newTestStore(t)
	task := mustAdd(t, s, "Original title", fixedNow.AddDate(0, 0, 7))

	got, err := s.UpdateTask(task.ID, map[string]interface{}{
		"title":       "Renamed task",
		"description": "now with details",
		"area":        "sales",
		"dueDate":     "2026-04-01",
	})
	if err != nil {
		t.Fatalf("UpdateTask() failed: %v", err)
	}
	if got.Title != "Renamed task" || got.Area != models.AreaSales {
		t.Errorf("update not applied: title=%q area=%s", got.Title, got.Area)
	}
	if got.DueDate.Format("2006-01-02") != "2026-04-01" {
		t.Errorf("dueDate = %v", got.DueDate)
	}

	// Lifecycle-owned and unknown fields are rejected.
	for _, key := range []string{"status", "statusHistory", "evidenceLink", "priority"} {
		if _, err := s.UpdateTask(task.ID, map[string]interface{}{key: "x"}); err == nil {
			t.Errorf("UpdateTask() accepted field %q", key)
		} else if !types.IsValidation(err) {
			t.Errorf("UpdateTask(%q) error = %v, want validation error", key, err)
		}
	}
}

func TestClientSharingWorkflow(t *testing.T) {
	s := newTestStore(t)
	task := mustAdd(t, s, "Share the filing with the client", fixedNow.AddDate(0, 0, 7))

	got, err := s.RequestClientSharing(task.ID)
	if err != nil {
		t.Fatalf("RequestClientSharing() failed: %v", err)
	}
	if got.SharingApprovalStatus != models.SharingPending || got.IsClientShared {
		t.Errorf("after request: state=%s shared=%v", got.SharingApprovalStatus, got.IsClientShared)
	}

	got, err = s.ApproveClientSharing(task.ID)
	if err != nil {
		t.Fatalf("ApproveClientSharing() failed: %v", err)
	}
	if got.SharingApprovalStatus != models.SharingApproved || !got.IsClientShared {
		t.Errorf("after approve: state=%s shared=%v", got.SharingApprovalStatus, got.IsClientShared)
	}

	got, err = s.RejectClientSharing(task.ID)
	if err != nil {
		t.Fatalf("RejectClientSharing() failed: %v", err)
	}
	if got.SharingApprovalStatus != models.SharingRejected || got.IsClientShared {
		t.Errorf("after reject: state=%s shared=%v", got.SharingApprovalStatus, got.IsClientShared)
	}
}

func TestAddExternalLink(t *testing.T) {
	s := newTestStore(t)
	task := mustAdd(t, s, "Register on the filing platform", fixedNow.AddDate(0, 0, 7))

	if _, err := s.AddExternalLink(task.ID, models.ExternalPlatformLink{Platform: "LexNet", URL: "ftp://lexnet.example.com"}); !errors.Is(err, types.ErrInvalidLinkURL) {
		t.Errorf("non-http URL error = %v, want ErrInvalidLinkURL", err)
	}
	if _, err := s.AddExternalLink(task.ID, models.ExternalPlatformLink{Platform: "", URL: "https://ok.example.com"}); err == nil {
		t.Error("empty platform accepted")
	}

	got, err := s.AddExternalLink(task.ID, models.ExternalPlatformLink{Platform: "LexNet", URL: "https://lexnet.example.com/filing/42"})
	if err != nil {
		t.Fatalf("AddExternalLink() failed: %v", err)
	}
	if len(got.ExternalPlatformLinks) != 1 {
		t.Errorf("links = %v", got.ExternalPlatformLinks)
	}
}

func TestAddClientSignature(t *testing.T) {
	s := newTestStore(t)
	task := mustAdd(t, s, "Get the engagement letter signed", fixedNow.AddDate(0, 0, 7))

	got, err := s.AddClientSignature(task.ID, "data:image/png;base64,iVBORw0KGgo=")
	if err != nil {
		t.Fatalf("AddClientSignature() failed: %v", err)
	}
	if got.ClientSignature == "" || got.SignatureTimestamp == nil {
		t.Error("signature or timestamp missing")
	}
	if !got.SignatureTimestamp.Equal(fixedNow) {
		t.Errorf("signature timestamp = %v, want %v", got.SignatureTimestamp, fixedNow)
	}

	if _, err := s.AddClientSignature(task.ID, "  "); err == nil {
		t.Error("blank signature accepted")
	}
}

func TestTestimonials(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddTestimonial("", "", "great work"); err == nil {
		t.Error("testimonial without client name accepted")
	}

	first, err := s.AddTestimonial("Ana Ruiz", "Ruiz & Co", "They unblocked our filing in two days.")
	if err != nil {
		t.Fatalf("AddTestimonial() failed: %v", err)
	}
	second, err := s.AddTestimonial("Marc Pol", "", "Clear reporting every week.")
	if err != nil {
		t.Fatalf("AddTestimonial() failed: %v", err)
	}

	feed := s.ListTestimonials()
	if len(feed) != 2 {
		t.Fatalf("feed length = %d, want 2", len(feed))
	}
	if feed[0].ID != second.ID || feed[1].ID != first.ID {
		t.Error("testimonial feed is not newest-first")
	}
}

func TestOnChange(t *testing.T) {
	s := newTestStore(t)

	var calls int
	var lastSnapshot []models.Task
	s.OnChange(func(tasks []models.Task) {
		calls++
		lastSnapshot = tasks
	})

	task := mustAdd(t, s, "Observable task", fixedNow.AddDate(0, 0, 7))
	if calls != 1 {
		t.Fatalf("observer calls after add = %d, want 1", calls)
	}
	if len(lastSnapshot) != 1 || lastSnapshot[0].ID != task.ID {
		t.Errorf("snapshot = %v", lastSnapshot)
	}

	if _, err := s.UpdateTaskStatus(task.ID, models.StatusBlocked, nil, nil); err != nil {
		t.Fatalf("UpdateTaskStatus() failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("observer calls after status update = %d, want 2", calls)
	}

	// Rejected mutations do not notify.
	if _, err := s.UpdateTaskStatus(task.ID, models.StatusCompleted, nil, nil); err == nil {
		t.Fatal("expected evidence rejection")
	}
	if calls != 2 {
		t.Errorf("observer fired on a rejected mutation: calls = %d", calls)
	}
}
