package commands

import (
	"context"
	"fmt"

	"varia/internal/application"
	"varia/internal/domain"
)

// CommitResult contains the result of committing a variation
type CommitResult struct {
	Node    *domain.HistoryNode
	Message string
}

// CommitCommand appends a new variation to the history graph
type CommitCommand struct {
	graph        *domain.Graph
	SnapshotJSON []byte
	ParentID     string // empty means the current node
	Description  string
	Source       domain.Source
	Confidence   float64
	Prompt       string
}

// NewCommitCommand creates a new CommitCommand for a user edit
func NewCommitCommand(graph *domain.Graph, snapshotJSON []byte, parentID, description string) *CommitCommand {
	return &CommitCommand{
		graph:        graph,
		SnapshotJSON: snapshotJSON,
		ParentID:     parentID,
		Description:  description,
		Source:       domain.SourceUser,
	}
}

// NewAICommitCommand creates a CommitCommand for an AI-produced variation
func NewAICommitCommand(graph *domain.Graph, snapshotJSON []byte, parentID, description, prompt string, confidence float64) *CommitCommand {
	return &CommitCommand{
		graph:        graph,
		SnapshotJSON: snapshotJSON,
		ParentID:     parentID,
		Description:  description,
		Source:       domain.SourceAI,
		Confidence:   confidence,
		Prompt:       prompt,
	}
}

// Validate checks if the commit operation is valid
func (c *CommitCommand) Validate() error {
	if len(c.SnapshotJSON) == 0 {
		return &application.ValidationError{
			Field:   "snapshot",
			Message: "snapshot JSON is required",
		}
	}
	if !c.graph.Initialized() {
		return &application.ValidationError{
			Field:   "graph",
			Message: "history is not initialized (run init first)",
		}
	}
	return nil
}

// Execute runs the commit command
func (c *CommitCommand) Execute(ctx context.Context) (*CommitResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := domain.SnapshotFromJSON(c.SnapshotJSON)
	if err != nil {
		return nil, &application.ValidationError{
			Field:   "snapshot",
			Message: fmt.Sprintf("invalid snapshot JSON: %v", err),
		}
	}

	node, err := c.graph.AddNode(snapshot, c.ParentID, domain.NodeMetadata{
		Source:      c.Source,
		Description: c.Description,
		Confidence:  c.Confidence,
		AIPrompt:    c.Prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit variation: %w", err)
	}

	return &CommitResult{
		Node:    node,
		Message: fmt.Sprintf("Committed %s on branch %s", node.ID, node.BranchName),
	}, nil
}
