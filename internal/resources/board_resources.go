package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/boardtools/miro-mcp/internal/miro"
	"github.com/boardtools/miro-mcp/internal/server"
)

// RegisterBoardResources registers read-only board resources.
// These expose the boards reachable with the configured token without
// requiring a tool invocation.
func RegisterBoardResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	boardsResource := mcp.NewResource(
		"miro://boards",
		"Accessible Boards",
		mcp.WithResourceDescription("Boards accessible with the configured access token"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(boardsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleBoardsResource(ctx, request, sc)
	})

	return nil
}

// handleBoardsResource returns a compact listing of accessible boards.
func handleBoardsResource(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	list, err := sc.Client().ListBoards(ctx, miro.BoardListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	boards := make([]map[string]interface{}, 0, len(list.Data))
	for _, board := range list.Data {
		boards = append(boards, map[string]interface{}{
			"id":          board.ID,
			"name":        board.Name,
			"description": board.Description,
			"viewLink":    board.ViewLink,
		})
	}

	boardsData := map[string]interface{}{
		"boards": boards,
		"total":  list.Total,
	}

	jsonData, err := json.MarshalIndent(boardsData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
