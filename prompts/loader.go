package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PromptKey is a type for identifying specific prompts.
type PromptKey string

const (
	// KeyTraining is the key for the training-plan suggestion prompt.
	KeyTraining PromptKey = "Training"
	// KeyTaskDetails is the key for the task-detail generation prompt.
	KeyTaskDetails PromptKey = "TaskDetails"
	// KeyRiskAnalysis is the key for the risk-analysis prompt.
	KeyRiskAnalysis PromptKey = "RiskAnalysis"
)

// promptConfig defines the default content and filename for a prompt.
type promptConfig struct {
	defaultContent string
	filename       string
}

// promptRegistry maps a PromptKey to its configuration.
var promptRegistry = map[PromptKey]promptConfig{
	KeyTraining: {
		defaultContent: TrainingSystemPrompt,
		filename:       "training_prompt.txt",
	},
	KeyTaskDetails: {
		defaultContent: TaskDetailsSystemPrompt,
		filename:       "task_details_prompt.txt",
	},
	KeyRiskAnalysis: {
		defaultContent: RiskAnalysisSystemPrompt,
		filename:       "risk_analysis_prompt.txt",
	},
}

// GetPrompt searches for a user-provided prompt file in the project's
// templates directory. If found, it returns that file's content; otherwise
// the hardcoded default.
func GetPrompt(key PromptKey, templatesDir string) (string, error) {
	config, ok := promptRegistry[key]
	if !ok {
		return "", fmt.Errorf("unrecognized prompt key: %s", key)
	}

	if strings.TrimSpace(templatesDir) == "" {
		return config.defaultContent, nil
	}

	customPromptPath := filepath.Join(templatesDir, config.filename)
	if _, err := os.Stat(customPromptPath); err == nil {
		content, readErr := os.ReadFile(customPromptPath)
		if readErr != nil {
			return "", fmt.Errorf("failed to read custom prompt file at %s: %w", customPromptPath, readErr)
		}
		return string(content), nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("error checking for custom prompt file at %s: %w", customPromptPath, err)
	}

	return config.defaultContent, nil
}
