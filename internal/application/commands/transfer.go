package commands

import (
	"context"

	"varia/internal/application"
	"varia/internal/domain"
)

// ExportCommand serializes the full graph as versioned JSON
type ExportCommand struct {
	graph *domain.Graph
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(graph *domain.Graph) *ExportCommand {
	return &ExportCommand{graph: graph}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) ([]byte, error) {
	return c.graph.ExportJSON()
}

// ImportCommand atomically replaces the graph with a serialized payload
type ImportCommand struct {
	graph *domain.Graph
	Data  []byte
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(graph *domain.Graph, data []byte) *ImportCommand {
	return &ImportCommand{graph: graph, Data: data}
}

// Validate checks if the import operation is valid
func (c *ImportCommand) Validate() error {
	if len(c.Data) == 0 {
		return &application.ValidationError{
			Field:   "data",
			Message: "import payload is required",
		}
	}
	return nil
}

// Execute runs the import command. On any structural or version error the
// existing graph is left untouched.
func (c *ImportCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return c.graph.ImportJSON(c.Data)
}
