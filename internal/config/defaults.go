// Package config provides centralized configuration constants for ATHENA.
// All default values should be defined here to ensure a single source of truth.
package config

import "github.com/athenahq/athena/models"

// LLM provider constants
const (
	// DefaultProvider is the default advisory LLM provider
	DefaultProvider = "gemini"

	// ProviderGemini represents the Gemini provider
	ProviderGemini = "gemini"

	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI = "openai"
)

// Default model constants for each provider
const (
	// DefaultGeminiModel is the default model for the Gemini provider
	DefaultGeminiModel = "gemini-2.5-flash"

	// DefaultGeminiAnalysisModel is the Gemini model used for risk analysis,
	// which wants stronger reasoning than the fast default.
	DefaultGeminiAnalysisModel = "gemini-2.5-pro"

	// DefaultOpenAIModel is the default model for the OpenAI provider
	DefaultOpenAIModel = "gpt-5-mini-2025-08-07"
)

// Project defaults
const (
	// DefaultRootDir is the project-local directory for config and templates.
	DefaultRootDir = ".athena"

	// DefaultTemplatesDir holds prompt template overrides, under the root dir.
	DefaultTemplatesDir = "templates"

	// DefaultServerPort is the dashboard API port.
	DefaultServerPort = 8799
)

// DefaultModelForProvider returns the default model for a given provider string.
func DefaultModelForProvider(provider string) string {
	switch provider {
	case ProviderGemini:
		return DefaultGeminiModel
	case ProviderOpenAI:
		return DefaultOpenAIModel
	default:
		return ""
	}
}

// DefaultTeam is the roster used when the config file does not define one.
func DefaultTeam() []models.TeamMember {
	return []models.TeamMember{
		{ID: "user-1", Name: "General Director", Role: models.RoleDirector},
		{ID: "user-2", Name: "Laura Morales", Role: models.RoleExecutor},
		{ID: "user-3", Name: "David Costa", Role: models.RoleExecutor},
	}
}
