package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/types"
)

// Provider defines the interface for the external advisory text-generation
// service. Implementations are fallible remote calls; callers own the
// fallback behavior.
type Provider interface {
	// SuggestTraining asks for an actionable training plan for one task and
	// returns markdown-like free text.
	SuggestTraining(ctx context.Context, systemPrompt string, task models.Task, modelName string, maxTokens int, temperature float64) (string, error)

	// GenerateTaskDetails turns a free-form idea into a structured title and
	// description. The provider must request and parse a JSON response.
	GenerateTaskDetails(ctx context.Context, systemPrompt, idea string, modelName string, maxTokens int, temperature float64) (types.TaskDetails, error)

	// AnalyzeRisks asks for a prioritized analysis of the given high-risk
	// task list and returns markdown-like free text.
	AnalyzeRisks(ctx context.Context, systemPrompt string, tasks []models.Task, modelName string, maxTokens int, temperature float64) (string, error)
}

// buildTrainingUserMessage renders the task as structured prompt text for the
// training-plan request.
func buildTrainingUserMessage(task models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %q\n", task.Title)
	fmt.Fprintf(&b, "Description: %q\n", task.Description)
	fmt.Fprintf(&b, "Area: %q\n", task.Area)
	b.WriteString("\nGenerate the training plan now.")
	return b.String()
}

// buildRiskUserMessage renders the high-risk task list as structured prompt
// text, one summary block per task.
func buildRiskUserMessage(tasks []models.Task) string {
	var b strings.Builder
	b.WriteString("High-Risk Tasks:\n")
	for _, task := range tasks {
		description := task.Description
		if description == "" {
			description = "N/A"
		}
		fmt.Fprintf(&b, "- Task: %q (Executor: %s, Area: %s, Due: %s)\n",
			task.Title, task.Executor, task.Area, task.DueDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "   - Current status: %s\n", task.Status)
		fmt.Fprintf(&b, "   - Description: %s\n", description)
	}
	return b.String()
}

// buildDetailsUserMessage renders the free-form idea for detail generation.
func buildDetailsUserMessage(idea string) string {
	return fmt.Sprintf("User's idea: %q", idea)
}
