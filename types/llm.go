package types

// TaskDetails is the structured output of the task-detail generation
// operation: an actionable title plus a detailed description drafted by the
// advisory service from a free-form idea.
type TaskDetails struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
