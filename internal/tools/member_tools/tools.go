package member_tools

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

// RegisterMemberTools registers all board membership tools with the MCP server
func RegisterMemberTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listMembersTool := mcp.NewTool("miro_list_members",
		mcp.WithDescription("List members of a board"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of members to return per page"),
		),
	)

	s.AddTool(listMembersTool, common.InstrumentedToolHandlerWithResource(
		"miro_list_members", instrumentation.ResourceMember, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListMembers(ctx, request, sc)
		}))

	getMemberTool := mcp.NewTool("miro_get_member",
		mcp.WithDescription("Get details of a specific board member"),
		mcp.WithString("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
		mcp.WithString("member_id",
			mcp.Required(),
			mcp.Description("The ID of the member to retrieve"),
		),
	)

	s.AddTool(getMemberTool, common.InstrumentedToolHandlerWithResource(
		"miro_get_member", instrumentation.ResourceMember, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMember(ctx, request, sc)
		}))

	if !readOnly {
		shareBoardTool := mcp.NewTool("miro_share_board",
			mcp.WithDescription("Invite one or more people to a board by email"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board to share"),
			),
			mcp.WithString("emails",
				mcp.Required(),
				mcp.Description("Email address or JSON array of email addresses to invite"),
			),
			mcp.WithString("role",
				mcp.Description("Role granted to the invitees"),
				mcp.Enum(miro.MemberRoles...),
			),
			mcp.WithString("message",
				mcp.Description("Optional invitation message"),
			),
		)

		s.AddTool(shareBoardTool, common.InstrumentedToolHandlerWithResource(
			"miro_share_board", instrumentation.ResourceMember, instrumentation.OperationShare, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleShareBoard(ctx, request, sc)
			}))

		updateMemberRoleTool := mcp.NewTool("miro_update_member_role",
			mcp.WithDescription("Change a board member's role"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("member_id",
				mcp.Required(),
				mcp.Description("The ID of the member"),
			),
			mcp.WithString("role",
				mcp.Required(),
				mcp.Description("New role for the member"),
				mcp.Enum(miro.MemberRoles...),
			),
		)

		s.AddTool(updateMemberRoleTool, common.InstrumentedToolHandlerWithResource(
			"miro_update_member_role", instrumentation.ResourceMember, instrumentation.OperationUpdate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUpdateMemberRole(ctx, request, sc)
			}))

		removeMemberTool := mcp.NewTool("miro_remove_member",
			mcp.WithDescription("Remove a member from a board"),
			mcp.WithString("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("member_id",
				mcp.Required(),
				mcp.Description("The ID of the member to remove"),
			),
		)

		s.AddTool(removeMemberTool, common.InstrumentedToolHandlerWithResource(
			"miro_remove_member", instrumentation.ResourceMember, instrumentation.OperationDelete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleRemoveMember(ctx, request, sc)
			}))
	}

	return nil
}

func handleListMembers(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := sc.Client().ListMembers(ctx, boardID,
		common.OptionalString(args, "cursor"),
		common.OptionalInt(args, "limit", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list members: %v", err)), nil
	}

	result, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetMember(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	memberID, err := common.RequiredString(args, "member_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	member, err := sc.Client().GetMember(ctx, boardID, memberID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get member: %v", err)), nil
	}

	result, _ := json.MarshalIndent(member, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleShareBoard(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	emails, err := batch.ParseStringOrArray(args["emails"], "emails")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid emails: %v", err)), nil
	}

	list, err := sc.Client().ShareBoard(ctx, boardID, miro.ShareBoardRequest{
		Emails:  emails,
		Role:    common.OptionalString(args, "role"),
		Message: common.OptionalString(args, "message"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to share board: %v", err)), nil
	}

	result, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleUpdateMemberRole(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	memberID, err := common.RequiredString(args, "member_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	role, err := common.RequiredString(args, "role")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	member, err := sc.Client().UpdateMemberRole(ctx, boardID, memberID, role)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update member role: %v", err)), nil
	}

	result, _ := json.MarshalIndent(member, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleRemoveMember(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	boardID, err := common.RequiredString(args, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	memberID, err := common.RequiredString(args, "member_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sc.Client().RemoveMember(ctx, boardID, memberID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to remove member: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Member %s removed from board %s", memberID, boardID)), nil
}
