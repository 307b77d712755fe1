package claudecli

import (
	"strings"
	"testing"
)

func TestParseVariation(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		wantErr         bool
		wantDescription string
		wantConfidence  float64
	}{
		{
			name:            "plain JSON object",
			input:           `{"snapshot":{"layers":[{"id":"bg"}]},"description":"darker","confidence":0.8}`,
			wantDescription: "darker",
			wantConfidence:  0.8,
		},
		{
			name: "json code block",
			input: "```json\n" +
				`{"snapshot":{"layers":[]},"description":"empty canvas","confidence":0.5}` +
				"\n```",
			wantDescription: "empty canvas",
			wantConfidence:  0.5,
		},
		{
			name: "bare code block",
			input: "```\n" +
				`{"snapshot":{"canvas":{"width":800}},"description":"resized"}` +
				"\n```",
			wantDescription: "resized",
		},
		{
			name:            "surrounding prose",
			input:           `Here is the variation you asked for: {"snapshot":{"layers":[]},"description":"done","confidence":0.9} Hope that helps!`,
			wantDescription: "done",
			wantConfidence:  0.9,
		},
		{
			name:            "out of range confidence resets to zero",
			input:           `{"snapshot":{"layers":[]},"description":"x","confidence":7}`,
			wantDescription: "x",
			wantConfidence:  0,
		},
		{
			name:    "missing snapshot",
			input:   `{"description":"no state"}`,
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   "I could not generate a variation.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVariation(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVariation failed: %v", err)
			}
			if got.Description != tt.wantDescription {
				t.Errorf("description = %q, want %q", got.Description, tt.wantDescription)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.Snapshot == nil {
				t.Error("snapshot missing")
			}
		})
	}
}

func TestBuildVariationPrompt_EmbedsStateAndInstruction(t *testing.T) {
	prompt := buildVariationPrompt(`{"layers":[]}`, "make it pop")
	if !strings.Contains(prompt, `{"layers":[]}`) {
		t.Error("prompt missing the current state")
	}
	if !strings.Contains(prompt, "make it pop") {
		t.Error("prompt missing the instruction")
	}
	if !strings.Contains(prompt, "not a patch") {
		t.Error("prompt should demand a complete state")
	}
}
