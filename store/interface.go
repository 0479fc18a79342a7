package store

import (
	"time"

	"github.com/athenahq/athena/models"
)

// CreateTaskParams carries the caller-supplied fields for a new task. The
// store assigns identity, status, history and creation time itself.
type CreateTaskParams struct {
	Title       string      `validate:"required,min=1,max=255"`
	Description string      ``
	Area        models.Area `validate:"required,oneof=content legal collections sales"`
	Assigner    string      ``
	Executor    string      `validate:"required"`
	DueDate     time.Time   `validate:"required"`
	Comments    string      ``
}

// TaskStore is the sole authority over task records. Every mutation is
// validated, applied atomically, and followed by a synchronous change
// notification so derived projections (notifications, stats) can recompute.
type TaskStore interface {
	// AddTask constructs a new task: fresh unique ID, status in-progress,
	// history [in-progress], createdAt now. Missing required fields reject
	// the mutation with a validation error.
	AddTask(params CreateTaskParams) (models.Task, error)

	// GetTask retrieves a task by its unique identifier.
	GetTask(id string) (models.Task, error)

	// ListTasks retrieves tasks, optionally filtered and sorted. A nil
	// filterFn keeps everything; a nil sortFn returns creation order.
	ListTasks(filterFn func(models.Task) bool, sortFn func([]models.Task) []models.Task) ([]models.Task, error)

	// UpdateTask merges the given field updates into a task without touching
	// status or history. Unknown or lifecycle-owned fields are rejected.
	UpdateTask(id string, updates map[string]interface{}) (models.Task, error)

	// UpdateTaskStatus transitions a task to newStatus. Completion states
	// require a non-empty evidence value or the whole operation is rejected
	// and the task left unchanged. Non-nil evidence/tangibleResult overwrite
	// the stored fields, empty strings included. After the transition the
	// overdue auto-escalation pass runs over the entire task set.
	UpdateTaskStatus(id string, newStatus models.TaskStatus, evidence, tangibleResult *string) (models.Task, error)

	// EscalateOverdue force-blocks every task whose due date has passed, that
	// has no evidence link, and that is not completed, exceptional or already
	// blocked. Running it twice in a row is a no-op the second time. It
	// returns the tasks escalated by this pass.
	EscalateOverdue(now time.Time) []models.Task

	// RequestClientSharing marks a task's sharing approval as pending.
	RequestClientSharing(id string) (models.Task, error)

	// ApproveClientSharing approves sharing and flags the task client-shared.
	ApproveClientSharing(id string) (models.Task, error)

	// RejectClientSharing records a rejected sharing request.
	RejectClientSharing(id string) (models.Task, error)

	// AddExternalLink appends an external platform link. The URL must use an
	// http or https scheme.
	AddExternalLink(id string, link models.ExternalPlatformLink) (models.Task, error)

	// AddClientSignature stores the signature payload and stamps the signing
	// time. Deliberately no sharing-approval precondition: a signature may be
	// captured before the sharing request is decided.
	AddClientSignature(id string, signatureDataURL string) (models.Task, error)

	// AddTestimonial appends a client testimonial to the independent feed.
	AddTestimonial(clientName, company, quote string) (models.Testimonial, error)

	// ListTestimonials returns the testimonial feed, newest first.
	ListTestimonials() []models.Testimonial

	// OnChange registers an observer invoked synchronously with a snapshot of
	// the full task set after every successful task mutation.
	OnChange(fn func(tasks []models.Task))
}
