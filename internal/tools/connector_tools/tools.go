package connector_tools

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

// RegisterConnectorTools registers all connector-related tools with the MCP server
func RegisterConnectorTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listConnectorsTool := mcp.NewTool("miro_list_connectors",
		mcp.WithDescription("List connectors on a board"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of connectors to return per page"),
		),
	)

	s.AddTool(listConnectorsTool, common.InstrumentedToolHandlerWithResource(
		"miro_list_connectors", instrumentation.ResourceConnector, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListConnectors(ctx, request, sc)
		}))

	getConnectorTool := mcp.NewTool("miro_get_connector",
		mcp.WithDescription("Get details of a specific connector"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("connector_id",
			mcp.Required(),
			mcp.Description("The ID of the connector to retrieve"),
		),
	)

	s.AddTool(getConnectorTool, common.InstrumentedToolHandlerWithResource(
		"miro_get_connector", instrumentation.ResourceConnector, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetConnector(ctx, request, sc)
		}))

	if !readOnly {
		createConnectorTool := mcp.NewTool("miro_create_connector",
			mcp.WithDescription("Create a connector between two existing items on a board"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("start_item_id",
				mcp.Required(),
				mcp.Description("The ID of the item the connector starts from"),
			),
			mcp.WithString("end_item_id",
				mcp.Required(),
				mcp.Description("The ID of the item the connector ends at"),
			),
			mcp.WithString("shape",
				mcp.Description("Connector shape"),
				mcp.Enum("straight", "elbowed", "curved"),
			),
			mcp.WithString("caption",
				mcp.Description("Text label along the connector"),
			),
			mcp.WithString("stroke_color",
				mcp.Description("Stroke color as a hex value"),
			),
			mcp.WithString("stroke_style",
				mcp.Description("Stroke style"),
				mcp.Enum("normal", "dotted", "dashed"),
			),
		)

		s.AddTool(createConnectorTool, common.InstrumentedToolHandlerWithResource(
			"miro_create_connector", instrumentation.ResourceConnector, instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateConnector(ctx, request, sc)
			}))

		createConnectorsTool := mcp.NewTool("miro_create_connectors",
			mcp.WithDescription(fmt.Sprintf("Create up to %d connectors on a board in one call. Connectors are created "+
				"sequentially with per-connector outcomes", batch.MaxBatchSize)),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("connectors",
				mcp.Required(),
				mcp.Description("Array of connector objects with the same fields as miro_create_connector"),
			),
		)

		s.AddTool(createConnectorsTool, common.InstrumentedToolHandlerWithResource(
			"miro_create_connectors", instrumentation.ResourceConnector, instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateConnectors(ctx, request, sc)
			}))

		updateConnectorTool := mcp.NewTool("miro_update_connector",
			mcp.WithDescription("Update a connector's shape or caption"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("connector_id",
				mcp.Required(),
				mcp.Description("The ID of the connector to update"),
			),
			mcp.WithString("shape",
				mcp.Description("New connector shape"),
				mcp.Enum("straight", "elbowed", "curved"),
			),
			mcp.WithString("caption",
				mcp.Description("New caption text"),
			),
		)

		s.AddTool(updateConnectorTool, common.InstrumentedToolHandlerWithResource(
			"miro_update_connector", instrumentation.ResourceConnector, instrumentation.OperationUpdate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUpdateConnector(ctx, request, sc)
			}))

		deleteConnectorTool := mcp.NewTool("miro_delete_connector",
			mcp.WithDescription("Delete a connector from a board"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("connector_id",
				mcp.Required(),
				mcp.Description("The ID of the connector to delete"),
			),
		)

		s.AddTool(deleteConnectorTool, common.InstrumentedToolHandlerWithResource(
			"miro_delete_connector", instrumentation.ResourceConnector, instrumentation.OperationDelete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteConnector(ctx, request, sc)
			}))
	}

	return nil
}

// connectorFromSpec builds a ConnectorCreate from tool arguments.
func connectorFromSpec(spec map[string]interface{}) miro.ConnectorCreate {
	return miro.ConnectorCreate{
		StartItemID: common.OptionalString(spec, "start_item_id"),
		EndItemID:   common.OptionalString(spec, "end_item_id"),
		Shape:       common.OptionalString(spec, "shape"),
		Caption:     common.OptionalString(spec, "caption"),
		StrokeColor: common.OptionalString(spec, "stroke_color"),
		StrokeStyle: common.OptionalString(spec, "stroke_style"),
	}
}

func handleListConnectors(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := sc.Client().ListConnectors(ctx, boardID,
		common.OptionalString(args, "cursor"),
		common.OptionalInt(args, "limit", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list connectors: %v", err)), nil
	}

	result, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetConnector(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	connectorID, err := common.RequiredString(args, "connector_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	connector, err := sc.Client().GetConnector(ctx, boardID, connectorID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get connector: %v", err)), nil
	}

	result, _ := json.MarshalIndent(connector, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateConnector(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	connector, err := sc.Client().CreateConnector(ctx, boardID, connectorFromSpec(args))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create connector: %v", err)), nil
	}

	result, _ := json.MarshalIndent(connector, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateConnectors(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	specs, err := batch.ParseObjectArray(args["connectors"], "connectors")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcomes, err := batch.Process(specs,
		func(spec map[string]interface{}) string {
			return fmt.Sprintf("%s->%s",
				common.OptionalString(spec, "start_item_id"),
				common.OptionalString(spec, "end_item_id"))
		},
		func(spec map[string]interface{}) (string, error) {
			connector, err := sc.Client().CreateConnector(ctx, boardID, connectorFromSpec(spec))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("created connector %s", connector.ID), nil
		})
	if err != nil {
		if batch.IsTooLarge(err) {
			return mcp.NewToolResultError(fmt.Sprintf("no connectors were created: %s", err)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	if metrics := sc.Metrics(); metrics != nil {
		summary := batch.Summarize(outcomes)
		metrics.RecordBatchOperation(ctx, "miro_create_connectors", summary.Total, summary.Succeeded, summary.Failed)
	}

	return mcp.NewToolResultText(batch.FormatOutcomes(outcomes)), nil
}

func handleUpdateConnector(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	connectorID, err := common.RequiredString(args, "connector_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	update := miro.ConnectorUpdate{
		Shape: common.OptionalString(args, "shape"),
	}
	if caption := common.OptionalString(args, "caption"); caption != "" {
		update.Captions = []miro.ConnectorCaption{{Content: caption}}
	}
	if update.Shape == "" && update.Captions == nil {
		return mcp.NewToolResultError("at least one of shape or caption is required"), nil
	}

	connector, err := sc.Client().UpdateConnector(ctx, boardID, connectorID, update)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update connector: %v", err)), nil
	}

	result, _ := json.MarshalIndent(connector, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleDeleteConnector(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	connectorID, err := common.RequiredString(args, "connector_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sc.Client().DeleteConnector(ctx, boardID, connectorID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete connector: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Connector %s deleted successfully", connectorID)), nil
}
