package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/types"
)

// GeminiProvider implements the Provider interface against the Gemini API.
type GeminiProvider struct {
	apiKey  string
	timeout time.Duration
	debug   bool
}

// NewGeminiProvider creates a new GeminiProvider.
func NewGeminiProvider(apiKey string, timeout time.Duration, debug bool) *GeminiProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiProvider{apiKey: apiKey, timeout: timeout, debug: debug}
}

// taskDetailsSchema constrains detail generation to a {title, description}
// JSON object.
func taskDetailsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString, Description: "A clear, concise task title."},
			"description": {Type: genai.TypeString, Description: "A detailed task description including objectives and steps."},
		},
		Required: []string{"title", "description"},
	}
}

// SuggestTraining requests a markdown training plan for the task.
func (p *GeminiProvider) SuggestTraining(ctx context.Context, systemPrompt string, task models.Task, modelName string, maxTokens int, temperature float64) (string, error) {
	return p.generateText(ctx, modelName, systemPrompt, buildTrainingUserMessage(task), maxTokens, temperature, nil)
}

// GenerateTaskDetails requests a schema-constrained JSON object and parses it.
func (p *GeminiProvider) GenerateTaskDetails(ctx context.Context, systemPrompt, idea string, modelName string, maxTokens int, temperature float64) (types.TaskDetails, error) {
	text, err := p.generateText(ctx, modelName, systemPrompt, buildDetailsUserMessage(idea), maxTokens, temperature, taskDetailsSchema())
	if err != nil {
		return types.TaskDetails{}, err
	}

	var details types.TaskDetails
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &details); err != nil {
		return types.TaskDetails{}, fmt.Errorf("failed to parse task details JSON from Gemini response: %w", err)
	}
	return details, nil
}

// AnalyzeRisks requests a markdown analysis of the high-risk task list.
func (p *GeminiProvider) AnalyzeRisks(ctx context.Context, systemPrompt string, tasks []models.Task, modelName string, maxTokens int, temperature float64) (string, error) {
	return p.generateText(ctx, modelName, systemPrompt, buildRiskUserMessage(tasks), maxTokens, temperature, nil)
}

// generateText performs one GenerateContent call. A non-nil schema switches
// the response to constrained JSON.
func (p *GeminiProvider) generateText(ctx context.Context, modelName, systemPrompt, userMessage string, maxTokens int, temperature float64, schema *genai.Schema) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}
	if temperature > 0 {
		config.Temperature = genai.Ptr(float32(temperature))
	}
	if schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = schema
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(userMessage), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error (%s): %w", modelName, err)
	}
	text := resp.Text()
	if p.debug {
		fmt.Printf("[LLM] Gemini %s in %v (bytes %d)\n", modelName, time.Since(start), len(text))
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("Gemini returned an empty response for model %s", modelName)
	}
	return text, nil
}
