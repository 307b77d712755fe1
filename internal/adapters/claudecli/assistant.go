package claudecli

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"varia/internal/domain"
	"varia/internal/ports"
)

// Assistant implements ports.DesignAssistant using Claude Code CLI
type Assistant struct {
	model string
}

// Ensure Assistant implements DesignAssistant
var _ ports.DesignAssistant = (*Assistant)(nil)

// Option configures the Assistant
type Option func(*Assistant)

// WithModel sets the Claude model to use
func WithModel(model string) Option {
	return func(a *Assistant) {
		if model != "" {
			a.model = model
		}
	}
}

// NewAssistant creates a new Claude CLI assistant
func NewAssistant(opts ...Option) *Assistant {
	a := &Assistant{
		model: "haiku", // Default to haiku for speed
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// claudeResponse represents the JSON output from claude CLI
type claudeResponse struct {
	Type         string  `json:"type"`
	Subtype      string  `json:"subtype"`
	CostUSD      float64 `json:"cost_usd"`
	DurationMS   int     `json:"duration_ms"`
	DurationAPI  int     `json:"duration_api_ms"`
	IsError      bool    `json:"is_error"`
	NumTurns     int     `json:"num_turns"`
	Result       string  `json:"result"`
	SessionID    string  `json:"session_id"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// variationJSON represents the expected JSON format from Claude's response
type variationJSON struct {
	Snapshot    map[string]any `json:"snapshot"`
	Description string         `json:"description"`
	Confidence  float64        `json:"confidence"`
}

// SuggestVariation asks Claude for a complete evolved snapshot.
func (a *Assistant) SuggestVariation(current domain.Snapshot, instruction string) (*ports.VariationSuggestion, error) {
	currentJSON, err := current.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize current snapshot: %w", err)
	}

	prompt := buildVariationPrompt(string(currentJSON), instruction)

	args := []string{
		"-p", prompt,
		"--output-format", "json",
		"--model", a.model,
	}

	cmd := exec.Command("claude", args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("claude CLI error: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("claude CLI error: %w", err)
	}

	// Parse the claude CLI JSON response
	var response claudeResponse
	if err := json.Unmarshal(output, &response); err != nil {
		return nil, fmt.Errorf("failed to parse claude response: %w", err)
	}

	if response.IsError {
		return nil, fmt.Errorf("claude returned an error: %s", response.Result)
	}

	suggestion, err := parseVariation(response.Result)
	if err != nil {
		return nil, err
	}
	suggestion.Prompt = instruction
	return suggestion, nil
}

func buildVariationPrompt(currentJSON, instruction string) string {
	return fmt.Sprintf(`You are iterating on a visual design with a human collaborator.

The current design state as JSON:
%s

The collaborator's instruction:
"%s"

Produce ONE evolved design state. Keep the same JSON structure conventions
(a "layers" array of objects with stable "id" fields, a "canvas" object,
optional top-level metadata). Preserve layer ids for layers you keep; give
new layers fresh ids. Return the COMPLETE new state, not a patch.

Return ONLY a JSON object (no markdown, no code blocks):
{"snapshot": {...complete design state...}, "description": "One sentence describing the change", "confidence": 0.8}`, currentJSON, instruction)
}

// parseVariation extracts the variation JSON object from Claude's response
func parseVariation(result string) (*ports.VariationSuggestion, error) {
	result = strings.TrimSpace(result)

	// Try to extract JSON from markdown code blocks if present
	codeBlockRe := regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")
	if matches := codeBlockRe.FindStringSubmatch(result); len(matches) > 1 {
		result = strings.TrimSpace(matches[1])
	}

	// Find JSON object in the text (handles surrounding text)
	jsonStartIdx := strings.Index(result, "{")
	jsonEndIdx := strings.LastIndex(result, "}")
	if jsonStartIdx == -1 || jsonEndIdx == -1 || jsonEndIdx <= jsonStartIdx {
		return nil, fmt.Errorf("no valid JSON object found in response")
	}

	jsonStr := result[jsonStartIdx : jsonEndIdx+1]

	var raw variationJSON
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse variation JSON: %w (json: %s)", err, jsonStr)
	}

	if len(raw.Snapshot) == 0 {
		return nil, fmt.Errorf("variation is missing a snapshot")
	}
	if raw.Confidence < 0 || raw.Confidence > 1 {
		raw.Confidence = 0
	}

	return &ports.VariationSuggestion{
		Snapshot:    domain.Snapshot(raw.Snapshot),
		Description: raw.Description,
		Confidence:  raw.Confidence,
	}, nil
}

// IsAvailable checks if the claude CLI is installed and accessible
func (a *Assistant) IsAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}
