package item_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/boardtools/miro-mcp/internal/instrumentation"
	"github.com/boardtools/miro-mcp/internal/miro"
	"github.com/boardtools/miro-mcp/internal/server"
	"github.com/boardtools/miro-mcp/internal/tools/batch"
	"github.com/boardtools/miro-mcp/internal/tools/common"
)

// RegisterItemTools registers all item-related tools with the MCP server
func RegisterItemTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerItemReadTools(s, sc)

	if !readOnly {
		registerItemWriteTools(s, sc)
		registerItemBulkTools(s, sc)
	}

	return nil
}

func registerItemReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	listItemsTool := mcp.NewTool("miro_list_items",
		mcp.WithDescription("List items on a board, with optional type filtering and pagination"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("type",
			mcp.Description("Limit results to one item type"),
			mcp.Enum("sticky_note", "shape", "text", "card", "app_card", "connector", "frame", "image", "document", "embed"),
		),
		mcp.WithString("parent_item_id",
			mcp.Description("Limit results to children of an item, such as a frame"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of items to return per page"),
		),
	)

	s.AddTool(listItemsTool, common.InstrumentedToolHandlerWithResource(
		"miro_list_items", instrumentation.ResourceItem, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListItems(ctx, request, sc)
		}))

	getItemTool := mcp.NewTool("miro_get_item",
		mcp.WithDescription("Get details of a specific item on a board"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("item_id",
			mcp.Required(),
			mcp.Description("The ID of the item to retrieve"),
		),
	)

	s.AddTool(getItemTool, common.InstrumentedToolHandlerWithResource(
		"miro_get_item", instrumentation.ResourceItem, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetItem(ctx, request, sc)
		}))
}

func registerItemWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	createItemTool := mcp.NewTool("miro_create_item",
		mcp.WithDescription("Create a single item on a board. The payload fields depend on the item type: "+
			"sticky_note and text need content, shape takes shape and content, card and app_card take title and description, "+
			"image, document and embed take url, frame takes title"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Item type to create"),
			mcp.Enum("sticky_note", "shape", "text", "card", "app_card", "frame", "image", "document", "embed"),
		),
		mcp.WithString("content",
			mcp.Description("Text content (sticky_note, text, shape)"),
		),
		mcp.WithString("title",
			mcp.Description("Title (card, app_card, frame, image, document)"),
		),
		mcp.WithString("description",
			mcp.Description("Description (card, app_card)"),
		),
		mcp.WithString("url",
			mcp.Description("Source URL (image, document, embed)"),
		),
		mcp.WithString("shape",
			mcp.Description("Shape name for shape items, or square/rectangle for sticky notes"),
		),
		mcp.WithString("fill_color",
			mcp.Description("Fill color. Sticky notes accept predefined color names only; shapes also accept hex values"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date in RFC3339 format (card)"),
		),
		mcp.WithString("format",
			mcp.Description("Frame format (frame)"),
		),
		mcp.WithString("mode",
			mcp.Description("Embed mode: inline or modal (embed)"),
		),
		mcp.WithNumber("x",
			mcp.Description("X coordinate of the item center"),
		),
		mcp.WithNumber("y",
			mcp.Description("Y coordinate of the item center"),
		),
		mcp.WithNumber("width",
			mcp.Description("Item width. Sticky notes accept width or height, not both; text accepts width only"),
		),
		mcp.WithNumber("height",
			mcp.Description("Item height"),
		),
		mcp.WithString("parent_id",
			mcp.Description("ID of the parent frame to place the item in"),
		),
	)

	s.AddTool(createItemTool, common.InstrumentedToolHandlerWithResource(
		"miro_create_item", instrumentation.ResourceItem, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateItem(ctx, request, sc)
		}))

	updateItemTool := mcp.NewTool("miro_update_item",
		mcp.WithDescription("Update an item on a board. The item type is discovered remotely and the update is routed to the matching endpoint"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("item_id",
			mcp.Required(),
			mcp.Description("The ID of the item to update"),
		),
		mcp.WithString("content",
			mcp.Description("New text content"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("fill_color",
			mcp.Description("New fill color"),
		),
		mcp.WithNumber("x",
			mcp.Description("New X coordinate"),
		),
		mcp.WithNumber("y",
			mcp.Description("New Y coordinate"),
		),
		mcp.WithNumber("width",
			mcp.Description("New width"),
		),
		mcp.WithNumber("height",
			mcp.Description("New height"),
		),
		mcp.WithString("parent_id",
			mcp.Description("ID of the parent frame to move the item into"),
		),
	)

	s.AddTool(updateItemTool, common.InstrumentedToolHandlerWithResource(
		"miro_update_item", instrumentation.ResourceItem, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateItem(ctx, request, sc)
		}))

	deleteItemTool := mcp.NewTool("miro_delete_item",
		mcp.WithDescription("Delete a single item from a board"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("item_id",
			mcp.Required(),
			mcp.Description("The ID of the item to delete"),
		),
	)

	s.AddTool(deleteItemTool, common.InstrumentedToolHandlerWithResource(
		"miro_delete_item", instrumentation.ResourceItem, instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteItem(ctx, request, sc)
		}))
}

func registerItemBulkTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	createItemsTool := mcp.NewTool("miro_create_items",
		mcp.WithDescription(fmt.Sprintf("Create up to %d items on a board in one call. Items are created sequentially; "+
			"a failing item is reported in the per-item outcomes and does not abort the rest", batch.MaxBatchSize)),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("items",
			mcp.Required(),
			mcp.Description("Array of item objects. Each needs a type plus the same fields as miro_create_item"),
		),
	)

	s.AddTool(createItemsTool, common.InstrumentedToolHandlerWithResource(
		"miro_create_items", instrumentation.ResourceItem, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateItems(ctx, request, sc)
		}))

	updateItemsTool := mcp.NewTool("miro_update_items",
		mcp.WithDescription(fmt.Sprintf("Update up to %d items on a board in one call. Updates are applied sequentially "+
			"with per-item outcomes", batch.MaxBatchSize)),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("updates",
			mcp.Required(),
			mcp.Description("Array of update objects. Each needs an item_id plus the same fields as miro_update_item"),
		),
	)

	s.AddTool(updateItemsTool, common.InstrumentedToolHandlerWithResource(
		"miro_update_items", instrumentation.ResourceItem, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateItems(ctx, request, sc)
		}))

	deleteItemsTool := mcp.NewTool("miro_delete_items",
		mcp.WithDescription(fmt.Sprintf("Delete up to %d items from a board in one call. Deletions run sequentially "+
			"with per-item outcomes", batch.MaxBatchSize)),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("item_ids",
			mcp.Required(),
			mcp.Description("A single item ID or an array of item IDs"),
		),
	)

	s.AddTool(deleteItemsTool, common.InstrumentedToolHandlerWithResource(
		"miro_delete_items", instrumentation.ResourceItem, instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteItems(ctx, request, sc)
		}))
}

func handleListItems(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := sc.Client().ListItems(ctx, boardID, miro.ItemListOptions{
		Type:         miro.ItemType(common.OptionalString(args, "type")),
		ParentItemID: common.OptionalString(args, "parent_item_id"),
		Cursor:       common.OptionalString(args, "cursor"),
		Limit:        common.OptionalInt(args, "limit", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list items: %v", err)), nil
	}

	result, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetItem(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	itemID, err := common.RequiredString(args, "item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	item, err := sc.Client().GetItem(ctx, boardID, itemID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get item: %v", err)), nil
	}

	result, _ := json.MarshalIndent(item, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateItem(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	item, err := createItemFromSpec(ctx, sc.Client(), boardID, args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create item: %v", err)), nil
	}

	result, _ := json.MarshalIndent(item, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleUpdateItem(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	itemID, err := common.RequiredString(args, "item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	patch, err := patchFromSpec(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	item, err := sc.Client().UpdateItem(ctx, boardID, itemID, patch)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update item: %v", err)), nil
	}

	result, _ := json.MarshalIndent(item, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleDeleteItem(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	itemID, err := common.RequiredString(args, "item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sc.Client().DeleteItem(ctx, boardID, itemID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete item: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Item %s deleted successfully", itemID)), nil
}

func handleCreateItems(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	specs, err := batch.ParseObjectArray(args["items"], "items")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcomes, err := batch.Process(specs,
		func(spec map[string]interface{}) string {
			return common.OptionalString(spec, "type")
		},
		func(spec map[string]interface{}) (string, error) {
			item, err := createItemFromSpec(ctx, sc.Client(), boardID, spec)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("created %s %s", item.Type, item.ID), nil
		})
	if err != nil {
		if batch.IsTooLarge(err) {
			return mcp.NewToolResultError(fmt.Sprintf("no items were created: %s", err)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	recordBatch(ctx, sc, "miro_create_items", outcomes)
	return mcp.NewToolResultText(batch.FormatOutcomes(outcomes)), nil
}

func handleUpdateItems(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	specs, err := batch.ParseObjectArray(args["updates"], "updates")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcomes, err := batch.Process(specs,
		func(spec map[string]interface{}) string {
			return common.OptionalString(spec, "item_id")
		},
		func(spec map[string]interface{}) (string, error) {
			itemID, err := common.RequiredString(spec, "item_id")
			if err != nil {
				return "", err
			}
			patch, err := patchFromSpec(spec)
			if err != nil {
				return "", err
			}
			item, err := sc.Client().UpdateItem(ctx, boardID, itemID, patch)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("updated %s %s", item.Type, item.ID), nil
		})
	if err != nil {
		if batch.IsTooLarge(err) {
			return mcp.NewToolResultError(fmt.Sprintf("no items were updated: %s", err)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	recordBatch(ctx, sc, "miro_update_items", outcomes)
	return mcp.NewToolResultText(batch.FormatOutcomes(outcomes)), nil
}

func handleDeleteItems(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	itemIDs, err := batch.ParseStringOrArray(args["item_ids"], "item_ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcomes, err := batch.ProcessIDs(itemIDs, func(itemID string) (string, error) {
		if err := sc.Client().DeleteItem(ctx, boardID, itemID); err != nil {
			return "", err
		}
		return "deleted", nil
	})
	if err != nil {
		if batch.IsTooLarge(err) {
			return mcp.NewToolResultError(fmt.Sprintf("no items were deleted: %s", err)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	recordBatch(ctx, sc, "miro_delete_items", outcomes)
	return mcp.NewToolResultText(batch.FormatOutcomes(outcomes)), nil
}

// recordBatch records per-element batch metrics when instrumentation is configured.
func recordBatch(ctx context.Context, sc *server.ServerContext, toolName string, outcomes []batch.Outcome) {
	metrics := sc.Metrics()
	if metrics == nil {
		return
	}
	summary := batch.Summarize(outcomes)
	metrics.RecordBatchOperation(ctx, toolName, summary.Total, summary.Succeeded, summary.Failed)
}
