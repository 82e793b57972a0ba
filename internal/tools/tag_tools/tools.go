package tag_tools

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

// RegisterTagTools registers all tag-related tools with the MCP server
func RegisterTagTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTagsTool := mcp.NewTool("miro_list_tags",
		mcp.WithDescription("List tags defined on a board"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of tags to return per page"),
		),
	)

	s.AddTool(listTagsTool, common.InstrumentedToolHandlerWithResource(
		"miro_list_tags", instrumentation.ResourceTag, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTags(ctx, request, sc)
		}))

	getTagTool := mcp.NewTool("miro_get_tag",
		mcp.WithDescription("Get details of a specific tag"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("tag_id",
			mcp.Required(),
			mcp.Description("The ID of the tag to retrieve"),
		),
	)

	s.AddTool(getTagTool, common.InstrumentedToolHandlerWithResource(
		"miro_get_tag", instrumentation.ResourceTag, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTag(ctx, request, sc)
		}))

	getItemsByTagTool := mcp.NewTool("miro_get_items_by_tag",
		mcp.WithDescription("List items that carry a specific tag"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("tag_id",
			mcp.Required(),
			mcp.Description("The ID of the tag"),
		),
	)

	s.AddTool(getItemsByTagTool, common.InstrumentedToolHandlerWithResource(
		"miro_get_items_by_tag", instrumentation.ResourceTag, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetItemsByTag(ctx, request, sc)
		}))

	getItemTagsTool := mcp.NewTool("miro_get_item_tags",
		mcp.WithDescription("List tags attached to a specific item"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("item_id",
			mcp.Required(),
			mcp.Description("The ID of the item"),
		),
	)

	s.AddTool(getItemTagsTool, common.InstrumentedToolHandlerWithResource(
		"miro_get_item_tags", instrumentation.ResourceTag, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetItemTags(ctx, request, sc)
		}))

	if !readOnly {
		createTagTool := mcp.NewTool("miro_create_tag",
			mcp.WithDescription("Create a tag on a board"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Title of the tag"),
			),
			mcp.WithString("fill_color",
				mcp.Description("Tag color. Must be one of the predefined color names"),
			),
		)

		s.AddTool(createTagTool, common.InstrumentedToolHandlerWithResource(
			"miro_create_tag", instrumentation.ResourceTag, instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateTag(ctx, request, sc)
			}))

		updateTagTool := mcp.NewTool("miro_update_tag",
			mcp.WithDescription("Update a tag's title or color"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("tag_id",
				mcp.Required(),
				mcp.Description("The ID of the tag to update"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("New title for the tag"),
			),
			mcp.WithString("fill_color",
				mcp.Description("New tag color. Must be one of the predefined color names"),
			),
		)

		s.AddTool(updateTagTool, common.InstrumentedToolHandlerWithResource(
			"miro_update_tag", instrumentation.ResourceTag, instrumentation.OperationUpdate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUpdateTag(ctx, request, sc)
			}))

		deleteTagTool := mcp.NewTool("miro_delete_tag",
			mcp.WithDescription("Delete a tag from a board. The tag is detached from all items"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("tag_id",
				mcp.Required(),
				mcp.Description("The ID of the tag to delete"),
			),
		)

		s.AddTool(deleteTagTool, common.InstrumentedToolHandlerWithResource(
			"miro_delete_tag", instrumentation.ResourceTag, instrumentation.OperationDelete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteTag(ctx, request, sc)
			}))

		attachTagTool := mcp.NewTool("miro_attach_tag",
			mcp.WithDescription("Attach an existing tag to an item"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("item_id",
				mcp.Required(),
				mcp.Description("The ID of the item"),
			),
			mcp.WithString("tag_id",
				mcp.Required(),
				mcp.Description("The ID of the tag to attach"),
			),
		)

		s.AddTool(attachTagTool, common.InstrumentedToolHandlerWithResource(
			"miro_attach_tag", instrumentation.ResourceTag, instrumentation.OperationAttach, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleAttachTag(ctx, request, sc)
			}))

		detachTagTool := mcp.NewTool("miro_detach_tag",
			mcp.WithDescription("Detach a tag from an item"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("item_id",
				mcp.Required(),
				mcp.Description("The ID of the item"),
			),
			mcp.WithString("tag_id",
				mcp.Required(),
				mcp.Description("The ID of the tag to detach"),
			),
		)

		s.AddTool(detachTagTool, common.InstrumentedToolHandlerWithResource(
			"miro_detach_tag", instrumentation.ResourceTag, instrumentation.OperationDetach, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDetachTag(ctx, request, sc)
			}))
	}

	return nil
}

func handleListTags(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := sc.Client().ListTags(ctx, boardID,
		common.OptionalString(args, "cursor"),
		common.OptionalInt(args, "limit", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list tags: %v", err)), nil
	}

	result, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetTag(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tagID, err := common.RequiredString(args, "tag_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tag, err := sc.Client().GetTag(ctx, boardID, tagID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get tag: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tag, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetItemsByTag(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tagID, err := common.RequiredString(args, "tag_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := sc.Client().ListItemsByTag(ctx, boardID, tagID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list items by tag: %v", err)), nil
	}

	result, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetItemTags(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	itemID, err := common.RequiredString(args, "item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := sc.Client().ListItemTags(ctx, boardID, itemID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list item tags: %v", err)), nil
	}

	result, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateTag(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := common.RequiredString(args, "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tag, err := sc.Client().CreateTag(ctx, boardID, miro.TagCreate{
		Title:     title,
		FillColor: common.OptionalString(args, "fill_color"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create tag: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tag, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleUpdateTag(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tagID, err := common.RequiredString(args, "tag_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := common.RequiredString(args, "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tag, err := sc.Client().UpdateTag(ctx, boardID, tagID, miro.TagCreate{
		Title:     title,
		FillColor: common.OptionalString(args, "fill_color"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update tag: %v", err)), nil
	}

	result, _ := json.MarshalIndent(tag, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleDeleteTag(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tagID, err := common.RequiredString(args, "tag_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sc.Client().DeleteTag(ctx, boardID, tagID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete tag: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Tag %s deleted successfully", tagID)), nil
}

func handleAttachTag(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	itemID, err := common.RequiredString(args, "item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tagID, err := common.RequiredString(args, "tag_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sc.Client().AttachTag(ctx, boardID, itemID, tagID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to attach tag: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Tag %s attached to item %s", tagID, itemID)), nil
}

func handleDetachTag(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	itemID, err := common.RequiredString(args, "item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tagID, err := common.RequiredString(args, "tag_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sc.Client().DetachTag(ctx, boardID, itemID, tagID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to detach tag: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Tag %s detached from item %s", tagID, itemID)), nil
}
