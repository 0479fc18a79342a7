package server

import "github.com/athenahq/athena/models"

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Area        string `json:"area"`
	Assigner    string `json:"assigner"`
	Executor    string `json:"executor"`
	DueDate     string `json:"dueDate"` // YYYY-MM-DD
	Comments    string `json:"comments"`
}

// UpdateStatusRequest is the body of POST /api/tasks/{id}/status. The pointer
// fields distinguish "leave unchanged" (absent) from "overwrite" (present,
// empty string included).
type UpdateStatusRequest struct {
	Status         string  `json:"status"`
	EvidenceLink   *string `json:"evidenceLink,omitempty"`
	TangibleResult *string `json:"tangibleResult,omitempty"`
}

// AddLinkRequest is the body of POST /api/tasks/{id}/links.
type AddLinkRequest struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// AddSignatureRequest carries the opaque signature data URL.
type AddSignatureRequest struct {
	SignatureDataURL string `json:"signatureDataUrl"`
}

// AddTestimonialRequest is the body of POST /api/testimonials.
type AddTestimonialRequest struct {
	ClientName string `json:"clientName"`
	Company    string `json:"company"`
	Quote      string `json:"quote"`
}

// NotificationsResponse bundles the feed with its unread count so clients
// render the badge without a second round trip.
type NotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

// TrainingRequest is the body of POST /api/advisory/training.
type TrainingRequest struct {
	TaskID string `json:"taskId"`
}

// TaskDetailsRequest is the body of POST /api/advisory/task-details.
type TaskDetailsRequest struct {
	Idea string `json:"idea"`
}

// AdvisoryTextResponse wraps free-form advisory output.
type AdvisoryTextResponse struct {
	Text string `json:"text"`
}

// RiskAnalysisResponse carries the analysis plus the tasks it covered.
type RiskAnalysisResponse struct {
	Analysis string        `json:"analysis"`
	Tasks    []models.Task `json:"tasks"`
}
