// Package advisory wraps the external LLM provider behind the three advisory
// operations the dashboard offers. Provider failures never propagate: every
// operation degrades to a fixed, user-visible fallback message.
package advisory

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/athenahq/athena/llm"
	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/prompts"
	"github.com/athenahq/athena/types"
)

// Fallback messages shown when the advisory service cannot be reached.
const (
	TrainingFallback = "Could not generate training suggestions. Please try again."
	DetailsFallback  = "Could not generate a description with AI. Please try again."
	RiskFallback     = "## Analysis Error\n\nCould not reach the AI service for the risk analysis. Please check the configuration or try again later."
	NoHighRiskTasks  = "There are no high-risk tasks to analyze right now."
)

// Service selects advisory inputs, forwards them to the provider, and
// substitutes fallbacks on failure.
type Service struct {
	provider     llm.Provider
	cfg          types.LLMConfig
	templatesDir string
	verbose      bool
}

// NewService creates an advisory service over the given provider.
func NewService(provider llm.Provider, cfg types.LLMConfig, templatesDir string, verbose bool) *Service {
	return &Service{provider: provider, cfg: cfg, templatesDir: templatesDir, verbose: verbose}
}

// TrainingSuggestions returns a training plan for the task, or the fallback
// message if the provider fails. The returned text is forwarded verbatim.
func (s *Service) TrainingSuggestions(ctx context.Context, task models.Task) string {
	systemPrompt := s.prompt(prompts.KeyTraining)
	text, err := s.provider.SuggestTraining(ctx, systemPrompt, task, s.cfg.ModelName, s.cfg.MaxOutputTokens, s.cfg.Temperature)
	if err != nil {
		s.logf("training suggestions failed: %v", err)
		return TrainingFallback
	}
	return text
}

// TaskDetails drafts a title and description from a free-form idea. On
// failure the idea itself becomes the title and the description carries the
// fallback message, so the caller always gets usable fields.
func (s *Service) TaskDetails(ctx context.Context, idea string) types.TaskDetails {
	systemPrompt := s.prompt(prompts.KeyTaskDetails)
	details, err := s.provider.GenerateTaskDetails(ctx, systemPrompt, idea, s.cfg.ModelName, s.cfg.MaxOutputTokens, s.cfg.Temperature)
	if err != nil {
		s.logf("task detail generation failed: %v", err)
		return types.TaskDetails{Title: idea, Description: DetailsFallback}
	}
	return details
}

// RiskAnalysis analyzes the given high-risk task list. An empty list
// short-circuits without a provider call. Uses the analysis model, which is
// typically a stronger reasoning model than the default.
func (s *Service) RiskAnalysis(ctx context.Context, tasks []models.Task) string {
	if len(tasks) == 0 {
		return NoHighRiskTasks
	}
	modelName := s.cfg.AnalysisModelName
	if modelName == "" {
		modelName = s.cfg.ModelName
	}
	systemPrompt := s.prompt(prompts.KeyRiskAnalysis)
	text, err := s.provider.AnalyzeRisks(ctx, systemPrompt, tasks, modelName, s.cfg.MaxOutputTokens, s.cfg.Temperature)
	if err != nil {
		s.logf("risk analysis failed: %v", err)
		return RiskFallback
	}
	return text
}

// HighRiskTasks selects the advisory input set: tasks that are blocked, or
// overdue while still in progress.
func HighRiskTasks(tasks []models.Task, now time.Time) []models.Task {
	var out []models.Task
	for _, task := range tasks {
		if task.Status == models.StatusBlocked {
			out = append(out, task)
			continue
		}
		y, m, d := task.DueDate.Date()
		due := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		if task.Status == models.StatusInProgress && due.Before(now) {
			out = append(out, task)
		}
	}
	return out
}

// prompt resolves the system prompt, preferring a template override on disk.
func (s *Service) prompt(key prompts.PromptKey) string {
	content, err := prompts.GetPrompt(key, s.templatesDir)
	if err != nil {
		s.logf("prompt %s unavailable, using default: %v", key, err)
		switch key {
		case prompts.KeyTraining:
			return prompts.TrainingSystemPrompt
		case prompts.KeyTaskDetails:
			return prompts.TaskDetailsSystemPrompt
		default:
			return prompts.RiskAnalysisSystemPrompt
		}
	}
	return content
}

func (s *Service) logf(format string, args ...interface{}) {
	if s.verbose {
		fmt.Fprintf(os.Stderr, "[advisory] "+format+"\n", args...)
	}
}
