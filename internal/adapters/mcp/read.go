package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"varia/internal/application"
	"varia/internal/application/commands"
	"varia/internal/domain"
)

// RegisterReadTools adds all read-only history tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, studio *application.Studio) {
	s.AddTool(logTool(), logHandler(studio))
	s.AddTool(showTool(), showHandler(studio))
	s.AddTool(branchesTool(), branchesHandler(studio))
	s.AddTool(diffTool(), diffHandler(studio))
	s.AddTool(pathTool(), pathHandler(studio))
}

// --- log ---

func logTool() mcp.Tool {
	return mcp.NewTool("log",
		mcp.WithDescription("List the reachable history timeline (root to the current branch tip). The current node is marked with *."),
	)
}

func logHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !studio.Graph.Initialized() {
			return toolError(fmt.Errorf("history is not initialized"))
		}

		current := studio.Graph.CurrentNode()
		var sb strings.Builder
		for _, n := range studio.Graph.Timeline() {
			marker := " "
			if n.ID == current.ID {
				marker = "*"
			}
			fmt.Fprintf(&sb, "%s %s  [%s] %s  %s\n",
				marker, n.ID, n.Metadata.Source, n.BranchName, n.Metadata.Description)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- show ---

func showTool() mcp.Tool {
	return mcp.NewTool("show",
		mcp.WithDescription("Show a history node: metadata and the full design snapshot JSON. Omit id for the current node."),
		mcp.WithString("id",
			mcp.Description("Node id (e.g. n-1a2b3c4d). Omit for the current node."),
		),
	)
}

func showHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		var node *domain.HistoryNode
		if id == "" {
			node = studio.Graph.CurrentNode()
			if node == nil {
				return toolError(fmt.Errorf("history is not initialized"))
			}
		} else {
			var ok bool
			node, ok = studio.Graph.Node(id)
			if !ok {
				return toolError(fmt.Errorf("node not found: %s", id))
			}
		}

		snapshot, err := node.Snapshot.JSON()
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "id: %s\nparent: %s\nbranch: %s\nsource: %s\ncreated: %s\n",
			node.ID, node.ParentID, node.BranchName, node.Metadata.Source,
			node.Timestamp.Format("2006-01-02 15:04:05"))
		if node.Metadata.Description != "" {
			fmt.Fprintf(&sb, "description: %s\n", node.Metadata.Description)
		}
		if node.Metadata.Source == domain.SourceAI {
			fmt.Fprintf(&sb, "confidence: %.2f\nprompt: %s\n", node.Metadata.Confidence, node.Metadata.AIPrompt)
		}
		fmt.Fprintf(&sb, "children: %s\nsnapshot:\n%s\n", strings.Join(node.Children, ", "), snapshot)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- branches ---

func branchesTool() mcp.Tool {
	return mcp.NewTool("branches",
		mcp.WithDescription("List all branches with base node, tip and node count. The active branch is marked with *."),
	)
}

func branchesHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		branches := studio.Graph.Branches()
		if len(branches) == 0 {
			return mcp.NewToolResultText("No branches (history not initialized)."), nil
		}

		var sb strings.Builder
		for _, b := range branches {
			marker := " "
			if b.IsActive {
				marker = "*"
			}
			fmt.Fprintf(&sb, "%s %s  base=%s tip=%s nodes=%d\n",
				marker, b.Name, b.BaseNodeID, b.Tip(), len(b.Nodes))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- diff ---

func diffTool() mcp.Tool {
	return mcp.NewTool("diff",
		mcp.WithDescription("Compare two nodes' snapshots. Returns a change list and a 0-1 similarity score."),
		mcp.WithString("a",
			mcp.Description("First node id"),
			mcp.Required(),
		),
		mcp.WithString("b",
			mcp.Description("Second node id"),
			mcp.Required(),
		),
	)
}

func diffHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		aID := req.GetString("a", "")
		bID := req.GetString("b", "")

		result, err := commands.NewDiffCommand(studio.Graph, aID, bID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "similarity: %.2f\n", result.Similarity)
		for _, ch := range result.Changes {
			fmt.Fprintf(&sb, "%s  %s\n", ch.Type, ch.Path)
		}
		if len(result.Changes) == 0 {
			sb.WriteString("no changes\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- path ---

func pathTool() mcp.Tool {
	return mcp.NewTool("path",
		mcp.WithDescription("Show the ordered node path from the root to the given node."),
		mcp.WithString("id",
			mcp.Description("Target node id"),
			mcp.Required(),
		),
	)
}

func pathHandler(studio *application.Studio) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		path, err := studio.Graph.PathToNode(id)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for i, n := range path {
			fmt.Fprintf(&sb, "%d. %s  [%s] %s\n", i, n.ID, n.BranchName, n.Metadata.Description)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
