package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusExceptional TaskStatus = "exceptional"
	StatusCompleted   TaskStatus = "completed"
	StatusInProgress  TaskStatus = "in-progress"
	StatusBlocked     TaskStatus = "blocked"
	StatusTraining    TaskStatus = "training"
)

// AllStatuses lists every task status in display order.
func AllStatuses() []TaskStatus {
	return []TaskStatus{StatusExceptional, StatusCompleted, StatusInProgress, StatusBlocked, StatusTraining}
}

// validTransitions is the explicit transition table for task statuses. The
// lifecycle permits any move between defined statuses today (including
// re-entering the current status to refresh evidence); the table exists so a
// future restriction lands in one place instead of scattered string checks.
var validTransitions = map[TaskStatus][]TaskStatus{
	StatusExceptional: {StatusExceptional, StatusCompleted, StatusInProgress, StatusBlocked, StatusTraining},
	StatusCompleted:   {StatusExceptional, StatusCompleted, StatusInProgress, StatusBlocked, StatusTraining},
	StatusInProgress:  {StatusExceptional, StatusCompleted, StatusInProgress, StatusBlocked, StatusTraining},
	StatusBlocked:     {StatusExceptional, StatusCompleted, StatusInProgress, StatusBlocked, StatusTraining},
	StatusTraining:    {StatusExceptional, StatusCompleted, StatusInProgress, StatusBlocked, StatusTraining},
}

// IsValid reports whether s is one of the defined task statuses.
func (s TaskStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// IsCompletion reports whether s is a closed, delivered state.
func (s TaskStatus) IsCompletion() bool {
	return s == StatusCompleted || s == StatusExceptional
}

// RequiresEvidence reports whether entering s demands an evidence link.
func (s TaskStatus) RequiresEvidence() bool {
	return s.IsCompletion()
}

// CanTransition reports whether moving from s to target is a defined
// transition. Both statuses must be members of the closed enumeration.
func (s TaskStatus) CanTransition(target TaskStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Area is the fixed set of business areas a task belongs to.
type Area string

const (
	AreaContent     Area = "content"
	AreaLegal       Area = "legal"
	AreaCollections Area = "collections"
	AreaSales       Area = "sales"
)

// Areas returns the fixed area enumeration in its canonical order. Stats
// reports iterate this order so per-area output is stable.
func Areas() []Area {
	return []Area{AreaContent, AreaLegal, AreaCollections, AreaSales}
}

// IsValid reports whether a is one of the defined areas.
func (a Area) IsValid() bool {
	switch a {
	case AreaContent, AreaLegal, AreaCollections, AreaSales:
		return true
	}
	return false
}

// SharingApproval is the client-sharing workflow state for legal-area tasks.
// The zero value means sharing was never requested.
type SharingApproval string

const (
	SharingUnset    SharingApproval = ""
	SharingPending  SharingApproval = "pending"
	SharingApproved SharingApproval = "approved"
	SharingRejected SharingApproval = "rejected"
)

// Role distinguishes the director (assigns and reviews) from executors
// (do the work and report on it).
type Role string

const (
	RoleDirector Role = "director"
	RoleExecutor Role = "executor"
)

// TeamMember is one entry of the static roster, created at startup and
// immutable for the session.
type TeamMember struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Role Role   `json:"role" validate:"required,oneof=director executor"`
}

// ExternalPlatformLink references the same deliverable on an external system
// (e.g. a legal filing platform).
type ExternalPlatformLink struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
}

// Task represents a unit of work on the dashboard.
type Task struct {
	ID          string `json:"id" validate:"required,uuid4"`
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description,omitempty"`
	Area        Area   `json:"area" validate:"required,oneof=content legal collections sales"`
	Assigner    string `json:"assigner,omitempty"`
	Executor    string `json:"executor" validate:"required"`
	// DueDate carries date-only semantics; the time portion is local midnight.
	DueDate   time.Time `json:"dueDate" validate:"required"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`

	Status TaskStatus `json:"status" validate:"required,oneof=exceptional completed in-progress blocked training"`
	// StatusHistory is append-only and records every status ever entered, in
	// order. Consecutive duplicates are suppressed; non-consecutive repeats
	// are recorded (in-progress, blocked, in-progress keeps all three).
	StatusHistory []TaskStatus `json:"statusHistory" validate:"required,min=1,dive,oneof=exceptional completed in-progress blocked training"`

	EvidenceLink   string `json:"evidenceLink,omitempty"`
	TangibleResult string `json:"tangibleResult,omitempty"`
	Comments       string `json:"comments,omitempty"`

	// Legal-area extensions.
	SharingApprovalStatus SharingApproval        `json:"sharingApprovalStatus,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	IsClientShared        bool                   `json:"isClientShared,omitempty"`
	ExternalPlatformLinks []ExternalPlatformLink `json:"externalPlatformLinks,omitempty" validate:"omitempty,dive"`
	// ClientSignature is an opaque base64 data URL captured from the client.
	// No precondition ties it to sharing approval; a signature may be captured
	// before the sharing request is decided.
	ClientSignature    string     `json:"clientSignature,omitempty"`
	SignatureTimestamp *time.Time `json:"signatureTimestamp,omitempty"`
}

// LastStatus returns the most recent status history entry, or "" for an
// empty history.
func (t Task) LastStatus() TaskStatus {
	if len(t.StatusHistory) == 0 {
		return ""
	}
	return t.StatusHistory[len(t.StatusHistory)-1]
}

// WasBlocked reports whether the task was ever in the blocked state.
func (t Task) WasBlocked() bool {
	for _, s := range t.StatusHistory {
		if s == StatusBlocked {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the store's slices.
func (t Task) Clone() Task {
	c := t
	c.StatusHistory = append([]TaskStatus(nil), t.StatusHistory...)
	if t.ExternalPlatformLinks != nil {
		c.ExternalPlatformLinks = append([]ExternalPlatformLink(nil), t.ExternalPlatformLinks...)
	}
	if t.SignatureTimestamp != nil {
		ts := *t.SignatureTimestamp
		c.SignatureTimestamp = &ts
	}
	return c
}

// NotificationType classifies a derived notification.
type NotificationType string

const (
	NotificationDueSoon NotificationType = "due-soon"
	NotificationOverdue NotificationType = "overdue"
)

// Notification is derived from the task set, never user-authored. At most one
// notification exists per (taskId, type) pair for the life of the feed.
type Notification struct {
	ID        string           `json:"id"`
	TaskID    string           `json:"taskId"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Testimonial is an independent, append-only client quote.
type Testimonial struct {
	ID         string `json:"id" validate:"required"`
	ClientName string `json:"clientName" validate:"required"`
	Company    string `json:"company,omitempty"`
	Quote      string `json:"quote" validate:"required"`
}

// AreaResult is the per-area tangible-result count used in the stats report.
type AreaResult struct {
	Area  Area `json:"area"`
	Total int  `json:"total"`
}

// Stats is the derived KPI snapshot. It is recomputed from the task set on
// demand and never persisted.
type Stats struct {
	AutonomousClosureRate int          `json:"autonomousClosureRate"`
	BlockageIndex         int          `json:"blockageIndex"`
	ResultsByArea         []AreaResult `json:"resultsByArea"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
