package webhook_tools

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

// RegisterWebhookTools registers webhook subscription tools with the MCP
// server. Webhook subscriptions live at the account level, not under a
// board path, so only creation takes a board ID.
func RegisterWebhookTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listWebhooksTool := mcp.NewTool("miro_list_webhooks",
		mcp.WithDescription("List webhook subscriptions for the current token"),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of subscriptions to return per page"),
		),
	)

	s.AddTool(listWebhooksTool, common.InstrumentedToolHandlerWithResource(
		"miro_list_webhooks", instrumentation.ResourceWebhook, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListWebhooks(ctx, request, sc)
		}))

	getWebhookTool := mcp.NewTool("miro_get_webhook",
		mcp.WithDescription("Get details of a webhook subscription"),
		mcp.WithString("webhook_id",
			mcp.Required(),
			mcp.Description("The ID of the webhook subscription"),
		),
	)

	s.AddTool(getWebhookTool, common.InstrumentedToolHandlerWithResource(
		"miro_get_webhook", instrumentation.ResourceWebhook, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetWebhook(ctx, request, sc)
		}))

	if !readOnly {
		createWebhookTool := mcp.NewTool("miro_create_webhook",
			mcp.WithDescription("Subscribe to item change events on a board"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board to watch"),
			),
			mcp.WithString("callback_url",
				mcp.Required(),
				mcp.Description("HTTPS URL that receives event deliveries"),
			),
			mcp.WithString("status",
				mcp.Description("Initial subscription status (default enabled)"),
				mcp.Enum("enabled", "disabled"),
			),
		)

		s.AddTool(createWebhookTool, common.InstrumentedToolHandlerWithResource(
			"miro_create_webhook", instrumentation.ResourceWebhook, instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateWebhook(ctx, request, sc)
			}))

		updateWebhookTool := mcp.NewTool("miro_update_webhook",
			mcp.WithDescription("Update a webhook subscription's callback URL or status"),
			mcp.WithString("webhook_id",
				mcp.Required(),
				mcp.Description("The ID of the webhook subscription"),
			),
			mcp.WithString("callback_url",
				mcp.Description("New callback URL"),
			),
			mcp.WithString("status",
				mcp.Description("New subscription status"),
				mcp.Enum("enabled", "disabled"),
			),
		)

		s.AddTool(updateWebhookTool, common.InstrumentedToolHandlerWithResource(
			"miro_update_webhook", instrumentation.ResourceWebhook, instrumentation.OperationUpdate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUpdateWebhook(ctx, request, sc)
			}))

		deleteWebhookTool := mcp.NewTool("miro_delete_webhook",
			mcp.WithDescription("Delete a webhook subscription"),
			mcp.WithString("webhook_id",
				mcp.Required(),
				mcp.Description("The ID of the webhook subscription to delete"),
			),
		)

		s.AddTool(deleteWebhookTool, common.InstrumentedToolHandlerWithResource(
			"miro_delete_webhook", instrumentation.ResourceWebhook, instrumentation.OperationDelete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteWebhook(ctx, request, sc)
			}))
	}

	return nil
}

func handleListWebhooks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	list, err := sc.Client().ListWebhooks(ctx,
		common.OptionalString(args, "cursor"),
		common.OptionalInt(args, "limit", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list webhooks: %v", err)), nil
	}

	result, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetWebhook(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	webhookID, err := common.RequiredString(args, "webhook_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	webhook, err := sc.Client().GetWebhook(ctx, webhookID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get webhook: %v", err)), nil
	}

	result, _ := json.MarshalIndent(webhook, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateWebhook(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	callbackURL, err := common.RequiredString(args, "callback_url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	webhook, err := sc.Client().CreateWebhook(ctx, miro.WebhookCreate{
		BoardID:     boardID,
		CallbackURL: callbackURL,
		Status:      common.OptionalString(args, "status"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create webhook: %v", err)), nil
	}

	result, _ := json.MarshalIndent(webhook, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleUpdateWebhook(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	webhookID, err := common.RequiredString(args, "webhook_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	update := miro.WebhookUpdate{
		CallbackURL: common.OptionalString(args, "callback_url"),
		Status:      common.OptionalString(args, "status"),
	}
	if update.CallbackURL == "" && update.Status == "" {
		return mcp.NewToolResultError("at least one of callback_url or status is required"), nil
	}

	webhook, err := sc.Client().UpdateWebhook(ctx, webhookID, update)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update webhook: %v", err)), nil
	}

	result, _ := json.MarshalIndent(webhook, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleDeleteWebhook(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	webhookID, err := common.RequiredString(args, "webhook_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sc.Client().DeleteWebhook(ctx, webhookID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete webhook: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Webhook %s deleted successfully", webhookID)), nil
}
