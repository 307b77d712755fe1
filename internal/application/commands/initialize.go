package commands

import (
	"context"
	"fmt"

	"varia/internal/application"
	"varia/internal/domain"
)

// InitResult contains the result of initializing a studio
type InitResult struct {
	Root    *domain.HistoryNode
	Message string
}

// InitCommand creates the root node and the main branch, resetting any
// prior graph
type InitCommand struct {
	graph        *domain.Graph
	SnapshotJSON []byte
	Description  string
}

// NewInitCommand creates a new InitCommand
func NewInitCommand(graph *domain.Graph, snapshotJSON []byte, description string) *InitCommand {
	return &InitCommand{
		graph:        graph,
		SnapshotJSON: snapshotJSON,
		Description:  description,
	}
}

// Validate checks if the init operation is valid
func (c *InitCommand) Validate() error {
	if len(c.SnapshotJSON) == 0 {
		return &application.ValidationError{
			Field:   "snapshot",
			Message: "snapshot JSON is required",
		}
	}
	return nil
}

// Execute runs the init command
func (c *InitCommand) Execute(ctx context.Context) (*InitResult, error) {
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

	root, err := c.graph.Initialize(snapshot, domain.NodeMetadata{
		Source:      domain.SourceUser,
		Description: c.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history: %w", err)
	}

	return &InitResult{
		Root:    root,
		Message: fmt.Sprintf("Initialized history at root %s on branch main", root.ID),
	}, nil
}
