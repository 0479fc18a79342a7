package store

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/types"
)

// MemoryStore implements TaskStore with an in-memory backend. It is the only
// writer of task records; notification and stats engines observe snapshots.
// A mutex keeps every mutation (including its escalation pass and observer
// fan-out) atomic with respect to other mutations.
type MemoryStore struct {
	mu           sync.Mutex
	tasks        map[string]models.Task
	order        []string // task IDs in creation order
	testimonials []models.Testimonial
	observers    []func(tasks []models.Task)
	now          func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]models.Task),
		now:   time.Now,
	}
}

// OnChange registers an observer. Observers run synchronously, in
// registration order, while the store lock is held, so a mutation and its
// derived recomputation are a single atomic step.
func (s *MemoryStore) OnChange(fn func(tasks []models.Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// snapshotLocked returns deep copies of all tasks in creation order.
func (s *MemoryStore) snapshotLocked() []models.Task {
	out := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id].Clone())
	}
	return out
}

func (s *MemoryStore) notifyLocked() {
	if len(s.observers) == 0 {
		return
	}
	snapshot := s.snapshotLocked()
	for _, fn := range s.observers {
		fn(snapshot)
	}
}

// AddTask constructs and stores a new task per the lifecycle rules.
func (s *MemoryStore) AddTask(params CreateTaskParams) (models.Task, error) {
	if err := models.ValidateStruct(params); err != nil {
		return models.Task{}, fmt.Errorf("add task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	task := models.Task{
		ID:            uuid.New().String(),
		Title:         params.Title,
		Description:   params.Description,
		Area:          params.Area,
		Assigner:      params.Assigner,
		Executor:      params.Executor,
		DueDate:       dateOnly(params.DueDate),
		CreatedAt:     now,
		Comments:      params.Comments,
		Status:        models.StatusInProgress,
		StatusHistory: []models.TaskStatus{models.StatusInProgress},
	}

	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)
	s.notifyLocked()
	return task.Clone(), nil
}

// GetTask retrieves a task by ID.
func (s *MemoryStore) GetTask(id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("get task %s: %w", id, types.ErrTaskNotFound)
	}
	return task.Clone(), nil
}

// ListTasks retrieves tasks, optionally filtered and sorted.
func (s *MemoryStore) ListTasks(filterFn func(models.Task) bool, sortFn func([]models.Task) []models.Task) ([]models.Task, error) {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if filterFn != nil {
		filtered := snapshot[:0]
		for _, t := range snapshot {
			if filterFn(t) {
				filtered = append(filtered, t)
			}
		}
		snapshot = filtered
	}
	if sortFn != nil {
		snapshot = sortFn(snapshot)
	}
	return snapshot, nil
}

// UpdateTask merges descriptive field updates into a task. Status, history
// and the evidence lifecycle are owned by UpdateTaskStatus and rejected here.
func (s *MemoryStore) UpdateTask(id string, updates map[string]interface{}) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("update task %s: %w", id, types.ErrTaskNotFound)
	}

	for key, value := range updates {
		switch key {
		case "title":
			v, err := stringField(key, value)
			if err != nil {
				return models.Task{}, err
			}
			if strings.TrimSpace(v) == "" {
				return models.Task{}, types.NewValidationError("title", "must not be empty")
			}
			task.Title = v
		case "description":
			v, err := stringField(key, value)
			if err != nil {
				return models.Task{}, err
			}
			task.Description = v
		case "area":
			v, err := stringField(key, value)
			if err != nil {
				return models.Task{}, err
			}
			area := models.Area(v)
			if !area.IsValid() {
				return models.Task{}, types.NewValidationError("area", fmt.Sprintf("unknown area %q", v))
			}
			task.Area = area
		case "assigner":
			v, err := stringField(key, value)
			if err != nil {
				return models.Task{}, err
			}
			task.Assigner = v
		case "executor":
			v, err := stringField(key, value)
			if err != nil {
				return models.Task{}, err
			}
			if strings.TrimSpace(v) == "" {
				return models.Task{}, types.NewValidationError("executor", "must not be empty")
			}
			task.Executor = v
		case "comments":
			v, err := stringField(key, value)
			if err != nil {
				return models.Task{}, err
			}
			task.Comments = v
		case "tangibleResult":
			v, err := stringField(key, value)
			if err != nil {
				return models.Task{}, err
			}
			task.TangibleResult = v
		case "dueDate":
			due, err := dueDateField(value)
			if err != nil {
				return models.Task{}, err
			}
			task.DueDate = due
		case "status", "statusHistory", "evidenceLink":
			return models.Task{}, types.NewValidationError(key, "field is managed by the status lifecycle")
		default:
			return models.Task{}, types.NewValidationError(key, "unknown field")
		}
	}

	s.tasks[id] = task
	s.notifyLocked()
	return task.Clone(), nil
}

// UpdateTaskStatus transitions a task and then audits the whole set for
// overdue work.
func (s *MemoryStore) UpdateTaskStatus(id string, newStatus models.TaskStatus, evidence, tangibleResult *string) (models.Task, error) {
	if !newStatus.IsValid() {
		return models.Task{}, types.NewValidationError("status", fmt.Sprintf("unknown status %q", newStatus))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("update status of %s: %w", id, types.ErrTaskNotFound)
	}

	if !task.Status.CanTransition(newStatus) {
		return models.Task{}, types.NewValidationError("status",
			fmt.Sprintf("cannot transition from %s to %s", task.Status, newStatus))
	}
	if newStatus.RequiresEvidence() && (evidence == nil || strings.TrimSpace(*evidence) == "") {
		return models.Task{}, types.ErrEvidenceRequired
	}

	// Evidence staged for a delivered state does not survive reopening: when
	// a closed task moves back to in-progress or blocked, the delivery fields
	// reset unless the caller supplies replacements in the same call.
	if task.Status.IsCompletion() && (newStatus == models.StatusInProgress || newStatus == models.StatusBlocked) {
		task.EvidenceLink = ""
		task.TangibleResult = ""
	}

	task.Status = newStatus
	if evidence != nil {
		task.EvidenceLink = *evidence
	}
	if tangibleResult != nil {
		task.TangibleResult = *tangibleResult
	}
	task.StatusHistory = appendStatus(task.StatusHistory, newStatus)
	s.tasks[id] = task

	// Compliance audit over the entire set, not just the mutated task.
	s.escalateOverdueLocked(s.now())

	s.notifyLocked()
	return s.tasks[id].Clone(), nil
}

// EscalateOverdue runs the compliance audit on demand.
func (s *MemoryStore) EscalateOverdue(now time.Time) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	escalated := s.escalateOverdueLocked(now)
	if len(escalated) > 0 {
		s.notifyLocked()
	}
	return escalated
}

// escalateOverdueLocked force-blocks overdue evidence-less tasks. Idempotent:
// already-blocked tasks are skipped, so a second pass changes nothing.
func (s *MemoryStore) escalateOverdueLocked(now time.Time) []models.Task {
	var escalated []models.Task
	for _, id := range s.order {
		task := s.tasks[id]
		switch task.Status {
		case models.StatusCompleted, models.StatusExceptional, models.StatusBlocked:
			continue
		}
		if task.EvidenceLink != "" {
			continue
		}
		if !dateOnly(task.DueDate).Before(now) {
			continue
		}
		task.Status = models.StatusBlocked
		task.StatusHistory = appendStatus(task.StatusHistory, models.StatusBlocked)
		s.tasks[id] = task
		escalated = append(escalated, task.Clone())
	}
	return escalated
}

// RequestClientSharing marks a sharing request pending.
func (s *MemoryStore) RequestClientSharing(id string) (models.Task, error) {
	return s.mutate(id, func(task *models.Task) error {
		task.SharingApprovalStatus = models.SharingPending
		return nil
	})
}

// ApproveClientSharing approves the request and flags the task shared.
func (s *MemoryStore) ApproveClientSharing(id string) (models.Task, error) {
	return s.mutate(id, func(task *models.Task) error {
		task.SharingApprovalStatus = models.SharingApproved
		task.IsClientShared = true
		return nil
	})
}

// RejectClientSharing records the rejection.
func (s *MemoryStore) RejectClientSharing(id string) (models.Task, error) {
	return s.mutate(id, func(task *models.Task) error {
		task.SharingApprovalStatus = models.SharingRejected
		task.IsClientShared = false
		return nil
	})
}

// AddExternalLink appends a link after checking the URL scheme.
func (s *MemoryStore) AddExternalLink(id string, link models.ExternalPlatformLink) (models.Task, error) {
	if strings.TrimSpace(link.Platform) == "" {
		return models.Task{}, types.NewValidationError("platform", "must not be empty")
	}
	if !isHTTPURL(link.URL) {
		return models.Task{}, fmt.Errorf("add external link: %w", types.ErrInvalidLinkURL)
	}
	return s.mutate(id, func(task *models.Task) error {
		task.ExternalPlatformLinks = append(task.ExternalPlatformLinks, link)
		return nil
	})
}

// AddClientSignature stores the signature payload with the current time.
func (s *MemoryStore) AddClientSignature(id string, signatureDataURL string) (models.Task, error) {
	if strings.TrimSpace(signatureDataURL) == "" {
		return models.Task{}, types.NewValidationError("signature", "must not be empty")
	}
	return s.mutate(id, func(task *models.Task) error {
		ts := s.now()
		task.ClientSignature = signatureDataURL
		task.SignatureTimestamp = &ts
		return nil
	})
}

// AddTestimonial appends to the independent testimonial feed, newest first.
func (s *MemoryStore) AddTestimonial(clientName, company, quote string) (models.Testimonial, error) {
	testimonial := models.Testimonial{
		ID:         uuid.New().String(),
		ClientName: clientName,
		Company:    company,
		Quote:      quote,
	}
	if err := models.ValidateStruct(testimonial); err != nil {
		return models.Testimonial{}, fmt.Errorf("add testimonial: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.testimonials = append([]models.Testimonial{testimonial}, s.testimonials...)
	return testimonial, nil
}

// ListTestimonials returns the feed, newest first.
func (s *MemoryStore) ListTestimonials() []models.Testimonial {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Testimonial(nil), s.testimonials...)
}

// mutate applies fn to a task under the lock and fires the change hook.
func (s *MemoryStore) mutate(id string, fn func(task *models.Task) error) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("mutate task %s: %w", id, types.ErrTaskNotFound)
	}
	if err := fn(&task); err != nil {
		return models.Task{}, err
	}
	s.tasks[id] = task
	s.notifyLocked()
	return task.Clone(), nil
}

// appendStatus appends status unless it equals the latest entry, keeping the
// history free of consecutive duplicates while allowing later reappearance.
func appendStatus(history []models.TaskStatus, status models.TaskStatus) []models.TaskStatus {
	if len(history) > 0 && history[len(history)-1] == status {
		return history
	}
	return append(history, status)
}

// dateOnly truncates t to local midnight, the canonical due-date form.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func stringField(key string, value interface{}) (string, error) {
	v, ok := value.(string)
	if !ok {
		return "", types.NewValidationError(key, fmt.Sprintf("expected string, got %T", value))
	}
	return v, nil
}

// dueDateField accepts either a time.Time or a "2006-01-02" string.
func dueDateField(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return dateOnly(v), nil
	case string:
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return time.Time{}, types.NewValidationError("dueDate", fmt.Sprintf("expected YYYY-MM-DD, got %q", v))
		}
		return parsed, nil
	default:
		return time.Time{}, types.NewValidationError("dueDate", fmt.Sprintf("expected date, got %T", value))
	}
}
