package group_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/boardtools/miro-mcp/internal/instrumentation"
	"github.com/boardtools/miro-mcp/internal/server"
	"github.com/boardtools/miro-mcp/internal/tools/batch"
	"github.com/boardtools/miro-mcp/internal/tools/common"
)

// RegisterGroupTools registers all group-related tools with the MCP server
func RegisterGroupTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listGroupsTool := mcp.NewTool("miro_list_groups",
		mcp.WithDescription("List groups on a board"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of groups to return per page"),
		),
	)

	s.AddTool(listGroupsTool, common.InstrumentedToolHandlerWithResource(
		"miro_list_groups", instrumentation.ResourceGroup, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListGroups(ctx, request, sc)
		}))

	getGroupTool := mcp.NewTool("miro_get_group",
		mcp.WithDescription("Get details of a specific group"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("group_id",
			mcp.Required(),
			mcp.Description("The ID of the group to retrieve"),
		),
	)

	s.AddTool(getGroupTool, common.InstrumentedToolHandlerWithResource(
		"miro_get_group", instrumentation.ResourceGroup, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetGroup(ctx, request, sc)
		}))

	getGroupItemsTool := mcp.NewTool("miro_get_group_items",
		mcp.WithDescription("List the items that belong to a group"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("group_id",
			mcp.Required(),
			mcp.Description("The ID of the group"),
		),
	)

	s.AddTool(getGroupItemsTool, common.InstrumentedToolHandlerWithResource(
		"miro_get_group_items", instrumentation.ResourceGroup, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetGroupItems(ctx, request, sc)
		}))

	if !readOnly {
		createGroupTool := mcp.NewTool("miro_create_group",
			mcp.WithDescription("Group two or more items on a board"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("item_ids",
				mcp.Required(),
				mcp.Description("JSON array of item IDs to group. At least two are required"),
			),
		)

		s.AddTool(createGroupTool, common.InstrumentedToolHandlerWithResource(
			"miro_create_group", instrumentation.ResourceGroup, instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateGroup(ctx, request, sc)
			}))

		ungroupTool := mcp.NewTool("miro_ungroup",
			mcp.WithDescription("Dissolve a group. The grouped items remain on the board"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("group_id",
				mcp.Required(),
				mcp.Description("The ID of the group to dissolve"),
			),
		)

		s.AddTool(ungroupTool, common.InstrumentedToolHandlerWithResource(
			"miro_ungroup", instrumentation.ResourceGroup, instrumentation.OperationUpdate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUngroup(ctx, request, sc)
			}))

		deleteGroupTool := mcp.NewTool("miro_delete_group",
			mcp.WithDescription("Delete a group, optionally deleting its items as well"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("group_id",
				mcp.Required(),
				mcp.Description("The ID of the group to delete"),
			),
			mcp.WithBoolean("delete_items",
				mcp.Description("When true, also delete the items in the group (default false)"),
			),
		)

		s.AddTool(deleteGroupTool, common.InstrumentedToolHandlerWithResource(
			"miro_delete_group", instrumentation.ResourceGroup, instrumentation.OperationDelete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteGroup(ctx, request, sc)
			}))
	}

	return nil
}

func handleListGroups(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := sc.Client().ListGroups(ctx, boardID,
		common.OptionalString(args, "cursor"),
		common.OptionalInt(args, "limit", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list groups: %v", err)), nil
	}

	result, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetGroup(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	groupID, err := common.RequiredString(args, "group_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	group, err := sc.Client().GetGroup(ctx, boardID, groupID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get group: %v", err)), nil
	}

	result, _ := json.MarshalIndent(group, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetGroupItems(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	groupID, err := common.RequiredString(args, "group_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := sc.Client().ListGroupItems(ctx, boardID, groupID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list group items: %v", err)), nil
	}

	result, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateGroup(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	itemIDs, err := batch.ParseStringOrArray(args["item_ids"], "item_ids")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid item_ids: %v", err)), nil
	}
	if len(itemIDs) < 2 {
		return mcp.NewToolResultError("at least two item IDs are required to form a group"), nil
	}

	group, err := sc.Client().CreateGroup(ctx, boardID, itemIDs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create group: %v", err)), nil
	}

	result, _ := json.MarshalIndent(group, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleUngroup(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	groupID, err := common.RequiredString(args, "group_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sc.Client().Ungroup(ctx, boardID, groupID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to ungroup: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Group %s dissolved, items kept on board", groupID)), nil
}

func handleDeleteGroup(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	groupID, err := common.RequiredString(args, "group_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	deleteItems := common.OptionalBool(args, "delete_items", false)

	if err := sc.Client().DeleteGroup(ctx, boardID, groupID, deleteItems); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete group: %v", err)), nil
	}

	if deleteItems {
		return mcp.NewToolResultText(fmt.Sprintf("Group %s and its items deleted", groupID)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Group %s deleted", groupID)), nil
}
