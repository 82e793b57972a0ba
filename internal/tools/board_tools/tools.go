package board_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/boardtools/miro-mcp/internal/instrumentation"
	"github.com/boardtools/miro-mcp/internal/miro"
	"github.com/boardtools/miro-mcp/internal/server"
	"github.com/boardtools/miro-mcp/internal/tools/common"
)

// RegisterBoardTools registers all board-related tools with the MCP server
func RegisterBoardTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List boards tool (read-only, always available)
	listBoardsTool := mcp.NewTool("miro_list_boards",
		mcp.WithDescription("List boards accessible with the configured access token, with optional filtering and pagination"),
		mcp.WithString("query",
			mcp.Description("Free-text search over board names and descriptions"),
		),
		mcp.WithString("team_id",
			mcp.Description("Limit results to boards owned by a team"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of boards to return per page"),
		),
	)

	s.AddTool(listBoardsTool, common.InstrumentedToolHandlerWithResource(
		"miro_list_boards", instrumentation.ResourceBoard, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListBoards(ctx, request, sc)
		}))

	// Get board tool
	getBoardTool := mcp.NewTool("miro_get_board",
		mcp.WithDescription("Get details of a specific board"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board to retrieve"),
		),
	)

	s.AddTool(getBoardTool, common.InstrumentedToolHandlerWithResource(
		"miro_get_board", instrumentation.ResourceBoard, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetBoard(ctx, request, sc)
		}))

	// Mutating tools are only registered when write access is enabled
	if !readOnly {
		createBoardTool := mcp.NewTool("miro_create_board",
			mcp.WithDescription("Create a new board"),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name of the new board"),
			),
			mcp.WithString("description",
				mcp.Description("Description of the new board"),
			),
			mcp.WithString("team_id",
				mcp.Description("Team that should own the board"),
			),
		)

		s.AddTool(createBoardTool, common.InstrumentedToolHandlerWithResource(
			"miro_create_board", instrumentation.ResourceBoard, instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateBoard(ctx, request, sc)
			}))

		copyBoardTool := mcp.NewTool("miro_copy_board",
			mcp.WithDescription("Create a new board as a copy of an existing board"),
			mcp.WithString("copy_from",
				mcp.Required(),
				mcp.Description("The ID of the board to copy"),
			),
			mcp.WithString("name",
				mcp.Description("Name for the copied board"),
			),
			mcp.WithString("description",
				mcp.Description("Description for the copied board"),
			),
		)

		s.AddTool(copyBoardTool, common.InstrumentedToolHandlerWithResource(
			"miro_copy_board", instrumentation.ResourceBoard, instrumentation.OperationCopy, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCopyBoard(ctx, request, sc)
			}))

		updateBoardTool := mcp.NewTool("miro_update_board",
			mcp.WithDescription("Update board metadata (name, description)"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board to update"),
			),
			mcp.WithString("name",
				mcp.Description("New name for the board"),
			),
			mcp.WithString("description",
				mcp.Description("New description for the board"),
			),
		)

		s.AddTool(updateBoardTool, common.InstrumentedToolHandlerWithResource(
			"miro_update_board", instrumentation.ResourceBoard, instrumentation.OperationUpdate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUpdateBoard(ctx, request, sc)
			}))

		deleteBoardTool := mcp.NewTool("miro_delete_board",
			mcp.WithDescription("Delete a board permanently"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board to delete"),
			),
		)

		s.AddTool(deleteBoardTool, common.InstrumentedToolHandlerWithResource(
			"miro_delete_board", instrumentation.ResourceBoard, instrumentation.OperationDelete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteBoard(ctx, request, sc)
			}))
	}

	return nil
}

func handleListBoards(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	list, err := sc.Client().ListBoards(ctx, miro.BoardListOptions{
		Query:  common.OptionalString(args, "query"),
		TeamID: common.OptionalString(args, "team_id"),
		Cursor: common.OptionalString(args, "cursor"),
		Limit:  common.OptionalInt(args, "limit", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list boards: %v", err)), nil
	}

	result, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetBoard(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	board, err := sc.Client().GetBoard(ctx, boardID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get board: %v", err)), nil
	}

	result, _ := json.MarshalIndent(board, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateBoard(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, err := common.RequiredString(args, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	board, err := sc.Client().CreateBoard(ctx, miro.BoardCreate{
		Name:        name,
		Description: common.OptionalString(args, "description"),
		TeamID:      common.OptionalString(args, "team_id"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create board: %v", err)), nil
	}

	result, _ := json.MarshalIndent(board, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCopyBoard(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	copyFrom, err := common.RequiredString(args, "copy_from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	board, err := sc.Client().CopyBoard(ctx, copyFrom, miro.BoardCreate{
		Name:        common.OptionalString(args, "name"),
		Description: common.OptionalString(args, "description"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to copy board: %v", err)), nil
	}

	result, _ := json.MarshalIndent(board, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleUpdateBoard(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	update := miro.BoardUpdate{
		Name:        common.OptionalString(args, "name"),
		Description: common.OptionalString(args, "description"),
	}
	if update.Name == "" && update.Description == "" {
		return mcp.NewToolResultError("at least one of name or description is required"), nil
	}

	board, err := sc.Client().UpdateBoard(ctx, boardID, update)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update board: %v", err)), nil
	}

	result, _ := json.MarshalIndent(board, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleDeleteBoard(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sc.Client().DeleteBoard(ctx, boardID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete board: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Board %s deleted successfully", boardID)), nil
}
