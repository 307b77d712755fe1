package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"varia/internal/application"
	"varia/internal/application/commands"
	"varia/internal/domain"
)

// RegisterWriteTools adds all mutating history tools to the MCP server.
// Commits arriving here carry source "ai": this is the channel an AI
// collaborator uses to add variations to the graph.
func RegisterWriteTools(s *server.MCPServer, studio *application.Studio) {
	s.AddTool(initTool(), initHandler(studio))
	s.AddTool(commitTool(), commitHandler(studio))
	s.AddTool(branchTool(), branchHandler(studio))
	s.AddTool(switchTool(), switchHandler(studio))
	s.AddTool(gotoTool(), gotoHandler(studio))
	s.AddTool(undoTool(), undoHandler(studio))
	s.AddTool(redoTool(), redoHandler(studio))
}

// saveAfter persists the studio once the mutation succeeded.
func saveAfter(studio *application.Studio, text string) (*mcp.CallToolResult, error) {
	if err := studio.Save(); err != nil {
		return toolError(fmt.Errorf("saved in memory but persistence failed: %w", err))
	}
	return mcp.NewToolResultText(text), nil
}

// navResult formats a NavigationResult, persisting on success.
func navResult(studio *application.Studio, res domain.NavigationResult) (*mcp.CallToolResult, error) {
	if !res.Success {
		return mcp.NewToolResultText(fmt.Sprintf("not moved: %s", res.Reason)), nil
	}
	return saveAfter(studio, fmt.Sprintf("now at %s on branch %s", res.Node.ID, res.Node.BranchName))
}

// --- init ---

func initTool() mcp.Tool {
	return mcp.NewTool("init",
		mcp.WithDescription("Initialize the history with a root design snapshot. Resets any prior graph."),
		mcp.WithString("snapshot",
			mcp.Description("Design snapshot as a JSON object"),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("What this starting point is"),
		),
	)
}

func initHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snapshot := req.GetString("snapshot", "")
		description := req.GetString("description", "")

		result, err := commands.NewInitCommand(studio.Graph, []byte(snapshot), description).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return saveAfter(studio, result.Message)
	}
}

// --- commit ---

func commitTool() mcp.Tool {
	return mcp.NewTool("commit",
		mcp.WithDescription("Commit an AI-produced design variation. Attaches under parent_id (default: the current node) and becomes the current node."),
		mcp.WithString("snapshot",
			mcp.Description("Complete design snapshot as a JSON object (not a patch)"),
			mcp.Required(),
		),
		mcp.WithString("parent_id",
			mcp.Description("Parent node id. Omit to attach under the current node."),
		),
		mcp.WithString("description",
			mcp.Description("One sentence describing the change"),
		),
		mcp.WithString("prompt",
			mcp.Description("The instruction this variation was generated from"),
		),
		mcp.WithNumber("confidence",
			mcp.Description("Model confidence 0-1"),
		),
	)
}

func commitHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snapshot := req.GetString("snapshot", "")
		parentID := req.GetString("parent_id", "")
		description := req.GetString("description", "")
		prompt := req.GetString("prompt", "")
		confidence := req.GetFloat("confidence", 0)

		cmd := commands.NewAICommitCommand(studio.Graph, []byte(snapshot), parentID, description, prompt, confidence)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return saveAfter(studio, result.Message)
	}
}

// --- branch ---

func branchTool() mcp.Tool {
	return mcp.NewTool("branch",
		mcp.WithDescription("Create a named branch based at a node. Does not switch to it."),
		mcp.WithString("name",
			mcp.Description("Branch name (unique)"),
			mcp.Required(),
		),
		mcp.WithString("base_id",
			mcp.Description("Base node id. Omit to branch at the current node."),
		),
	)
}

func branchHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		baseID := req.GetString("base_id", "")

		result, err := commands.NewCreateBranchCommand(studio.Graph, name, baseID, "").Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return saveAfter(studio, result.Message)
	}
}

// --- switch ---

func switchTool() mcp.Tool {
	return mcp.NewTool("switch",
		mcp.WithDescription("Activate a branch by name and move to its most recent node."),
		mcp.WithString("name",
			mcp.Description("Branch name"),
			mcp.Required(),
		),
	)
}

func switchHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")

		res, err := commands.NewSwitchBranchCommand(studio.Graph, name).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return navResult(studio, res)
	}
}

// --- goto ---

func gotoTool() mcp.Tool {
	return mcp.NewTool("goto",
		mcp.WithDescription("Navigate directly to a node by id, auto-switching branch if needed."),
		mcp.WithString("id",
			mcp.Description("Target node id"),
			mcp.Required(),
		),
	)
}

func gotoHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")

		res, err := commands.NewGotoCommand(studio.Graph, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return navResult(studio, res)
	}
}

// --- undo / redo ---

func undoTool() mcp.Tool {
	return mcp.NewTool("undo",
		mcp.WithDescription("Move to the current node's parent."),
	)
}

func undoHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewUndoCommand(studio.Graph).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return navResult(studio, res)
	}
}

func redoTool() mcp.Tool {
	return mcp.NewTool("redo",
		mcp.WithDescription("Move to the current node's first child."),
	)
}

func redoHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewRedoCommand(studio.Graph).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return navResult(studio, res)
	}
}
