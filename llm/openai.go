package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/types"
)

const openAIResponsesURL = "https://api.openai.com/v1/responses"

// OpenAIProvider implements the Provider interface against the OpenAI
// Responses API.
type OpenAIProvider struct {
	apiKey  string
	timeout time.Duration
	debug   bool
}

// NewOpenAIProvider creates a new OpenAIProvider.
func NewOpenAIProvider(apiKey string, timeout time.Duration, debug bool) *OpenAIProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIProvider{apiKey: apiKey, timeout: timeout, debug: debug}
}

// buildTaskDetailsSchema returns a strict JSON Schema for the structured
// {title, description} response.
func buildTaskDetailsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]interface{}{
			"title":       map[string]interface{}{"type": "string"},
			"description": map[string]interface{}{"type": "string"},
		},
		"required": []string{"title", "description"},
	}
}

// SuggestTraining requests a markdown training plan for the task.
func (p *OpenAIProvider) SuggestTraining(ctx context.Context, systemPrompt string, task models.Task, modelName string, maxTokens int, temperature float64) (string, error) {
	return p.callResponsesAPI(ctx, modelName, systemPrompt, buildTrainingUserMessage(task), temperature, maxTokens, "", nil)
}

// GenerateTaskDetails requests a schema-constrained JSON object and parses it.
func (p *OpenAIProvider) GenerateTaskDetails(ctx context.Context, systemPrompt, idea string, modelName string, maxTokens int, temperature float64) (types.TaskDetails, error) {
	content, err := p.callResponsesAPI(ctx, modelName, systemPrompt, buildDetailsUserMessage(idea), temperature, maxTokens, "task_details", buildTaskDetailsSchema())
	if err != nil {
		return types.TaskDetails{}, err
	}

	var details types.TaskDetails
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &details); err != nil {
		return types.TaskDetails{}, fmt.Errorf("failed to parse task details JSON from AI response: %w", err)
	}
	return details, nil
}

// AnalyzeRisks requests a markdown analysis of the high-risk task list.
func (p *OpenAIProvider) AnalyzeRisks(ctx context.Context, systemPrompt string, tasks []models.Task, modelName string, maxTokens int, temperature float64) (string, error) {
	return p.callResponsesAPI(ctx, modelName, systemPrompt, buildRiskUserMessage(tasks), temperature, maxTokens, "", nil)
}

// callResponsesAPI sends one request to the Responses API. A non-nil schema
// constrains the output to strict JSON; otherwise plain text is requested.
func (p *OpenAIProvider) callResponsesAPI(ctx context.Context, modelName, systemPrompt, userMessage string, temperature float64, maxTokens int, schemaName string, schema map[string]interface{}) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key is not set")
	}

	payload := map[string]interface{}{
		"model": modelName,
		"input": []map[string]interface{}{
			{
				"role":    "system",
				"content": []map[string]interface{}{{"type": "input_text", "text": systemPrompt}},
			},
			{
				"role":    "user",
				"content": []map[string]interface{}{{"type": "input_text", "text": userMessage}},
			},
		},
	}
	if maxTokens > 0 {
		payload["max_output_tokens"] = maxTokens
	}
	if schema != nil {
		payload["text"] = map[string]interface{}{
			"format": map[string]interface{}{
				"type":   "json_schema",
				"name":   schemaName,
				"schema": schema,
				"strict": true,
			},
		}
	} else {
		payload["text"] = map[string]interface{}{
			"format": map[string]interface{}{"type": "text"},
		}
	}
	if temperature > 0 {
		payload["temperature"] = temperature
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal responses payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIResponsesURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create responses request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: p.timeout}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "context deadline exceeded") || strings.Contains(err.Error(), "Client.Timeout exceeded") {
			return "", fmt.Errorf("OpenAI API request timed out after %v", p.timeout)
		}
		return "", fmt.Errorf("failed to call responses: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	if p.debug {
		fmt.Printf("[LLM] OpenAI Responses %s in %v (status %s, bytes %d)\n", modelName, time.Since(start), resp.Status, len(raw))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error (%s): %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	return extractResponsesContent(raw)
}

// extractResponsesContent pulls the generated text out of a Responses API
// body, trying the aggregated output_text field first and then the output
// array forms.
func extractResponsesContent(raw []byte) (string, error) {
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("failed to decode responses body: %w", err)
	}

	if ot, ok := generic["output_text"].(string); ok && strings.TrimSpace(ot) != "" {
		return ot, nil
	}

	outputs, _ := generic["output"].([]interface{})
	for _, output := range outputs {
		outputObj, ok := output.(map[string]interface{})
		if !ok {
			continue
		}
		switch outputObj["type"] {
		case "text":
			if txt, ok := outputObj["text"].(string); ok && txt != "" {
				return txt, nil
			}
		case "message":
			contents, _ := outputObj["content"].([]interface{})
			for _, c := range contents {
				if cObj, ok := c.(map[string]interface{}); ok {
					if txt, ok := cObj["text"].(string); ok && txt != "" {
						return txt, nil
					}
				}
			}
		}
	}

	return "", fmt.Errorf("failed to extract content from responses body. Raw response: %s", string(raw))
}
