package commands

import (
	"context"

	"varia/internal/application"
	"varia/internal/domain"
)

// GotoCommand navigates directly to a node by id
type GotoCommand struct {
	graph  *domain.Graph
	NodeID string
}

// NewGotoCommand creates a new GotoCommand
func NewGotoCommand(graph *domain.Graph, nodeID string) *GotoCommand {
	return &GotoCommand{graph: graph, NodeID: nodeID}
}

// Validate checks if the goto operation is valid
func (c *GotoCommand) Validate() error {
	if c.NodeID == "" {
		return &application.ValidationError{
			Field:   "nodeID",
			Message: "node ID is required",
		}
	}
	return nil
}

// Execute runs the goto command
func (c *GotoCommand) Execute(ctx context.Context) (domain.NavigationResult, error) {
	if err := c.Validate(); err != nil {
		return domain.NavigationResult{}, err
	}
	return c.graph.NavigateToNode(c.NodeID), nil
}

// UndoCommand navigates to the current node's parent
type UndoCommand struct {
	graph *domain.Graph
}

// NewUndoCommand creates a new UndoCommand
func NewUndoCommand(graph *domain.Graph) *UndoCommand {
	return &UndoCommand{graph: graph}
}

// Execute runs the undo command
func (c *UndoCommand) Execute(ctx context.Context) (domain.NavigationResult, error) {
	return c.graph.Undo(), nil
}

// RedoCommand navigates to the current node's first child
type RedoCommand struct {
	graph *domain.Graph
}

// NewRedoCommand creates a new RedoCommand
func NewRedoCommand(graph *domain.Graph) *RedoCommand {
	return &RedoCommand{graph: graph}
}

// Execute runs the redo command
func (c *RedoCommand) Execute(ctx context.Context) (domain.NavigationResult, error) {
	return c.graph.Redo(), nil
}
