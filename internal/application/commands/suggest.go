package commands

import (
	"context"
	"fmt"

	"varia/internal/application"
	"varia/internal/domain"
	"varia/internal/ports"
)

// SuggestResult contains the result of an AI-suggested variation
type SuggestResult struct {
	Node       *domain.HistoryNode
	Reasoning  string
	Confidence float64
	Message    string
}

// SuggestCommand asks the design assistant for a variation of the current
// snapshot and commits it with source "ai". The new node is attached to the
// node that was current at request time, even if navigation happens before
// the assistant replies.
type SuggestCommand struct {
	graph       *domain.Graph
	assistant   ports.DesignAssistant
	Instruction string
}

// NewSuggestCommand creates a new SuggestCommand
func NewSuggestCommand(graph *domain.Graph, assistant ports.DesignAssistant, instruction string) *SuggestCommand {
	return &SuggestCommand{
		graph:       graph,
		assistant:   assistant,
		Instruction: instruction,
	}
}

// Validate checks if the suggest operation is valid
func (c *SuggestCommand) Validate() error {
	if c.Instruction == "" {
		return &application.ValidationError{
			Field:   "instruction",
			Message: "instruction is required",
		}
	}
	if !c.graph.Initialized() {
		return &application.ValidationError{
			Field:   "graph",
			Message: "history is not initialized (run init first)",
		}
	}
	if !c.assistant.IsAvailable() {
		return &application.ValidationError{
			Field:   "assistant",
			Message: "design assistant is not available",
		}
	}
	return nil
}

// Execute runs the suggest command
func (c *SuggestCommand) Execute(ctx context.Context) (*SuggestResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Pin the parent before the (slow) assistant call so the variation
	// lands under the snapshot it was generated from.
	parent := c.graph.CurrentNode()

	suggestion, err := c.assistant.SuggestVariation(parent.Snapshot, c.Instruction)
	if err != nil {
		return nil, fmt.Errorf("assistant failed: %w", err)
	}

	node, err := c.graph.AddNode(suggestion.Snapshot, parent.ID, domain.NodeMetadata{
		Source:      domain.SourceAI,
		Description: suggestion.Description,
		Confidence:  suggestion.Confidence,
		AIPrompt:    suggestion.Prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit AI variation: %w", err)
	}

	return &SuggestResult{
		Node:       node,
		Reasoning:  suggestion.Description,
		Confidence: suggestion.Confidence,
		Message:    fmt.Sprintf("AI variation %s committed on branch %s", node.ID, node.BranchName),
	}, nil
}
