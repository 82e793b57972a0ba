package miro

import (
	"context"
	"fmt"
	"net/url"
)

// ShareBoardRequest is the payload for inviting members to a board.
type ShareBoardRequest struct {
	Emails  []string `json:"emails"`
	Role    string   `json:"role"`
	Message string   `json:"message,omitempty"`
}

// Validate checks the payload against the share endpoint contract.
func (r ShareBoardRequest) Validate() error {
	if len(r.Emails) == 0 {
		return fmt.Errorf("at least one email is required")
	}
	if r.Role != "" && !IsValidMemberRole(r.Role) {
		return fmt.Errorf("invalid member role %q", r.Role)
	}
	return nil
}

type memberRoleUpdate struct {
	Role string `json:"role"`
}

// ShareBoard invites users to a board by email with the given role.
func (c *Client) ShareBoard(ctx context.Context, boardID string, req ShareBoardRequest) (*MemberList, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var list MemberList
	path := "/boards/" + url.PathEscape(boardID) + "/members"
	if err := c.post(ctx, path, nil, req, &list); err != nil {
		return nil, fmt.Errorf("failed to share board %s: %w", boardID, err)
	}
	return &list, nil
}

// ListMembers returns a page of board members.
func (c *Client) ListMembers(ctx context.Context, boardID, cursor string, limit int) (*MemberList, error) {
	var list MemberList
	path := "/boards/" + url.PathEscape(boardID) + "/members"
	if err := c.get(ctx, path, listQuery(cursor, limit), &list); err != nil {
		return nil, fmt.Errorf("failed to list members of board %s: %w", boardID, err)
	}
	return &list, nil
}

// GetMember retrieves a single board member.
func (c *Client) GetMember(ctx context.Context, boardID, memberID string) (*Member, error) {
	var member Member
	path := "/boards/" + url.PathEscape(boardID) + "/members/" + url.PathEscape(memberID)
	if err := c.get(ctx, path, nil, &member); err != nil {
		return nil, fmt.Errorf("failed to get member %s: %w", memberID, err)
	}
	return &member, nil
}

// UpdateMemberRole changes a member's role on a board.
func (c *Client) UpdateMemberRole(ctx context.Context, boardID, memberID, role string) (*Member, error) {
	if !IsValidMemberRole(role) {
		return nil, fmt.Errorf("invalid member role %q", role)
	}

	var member Member
	path := "/boards/" + url.PathEscape(boardID) + "/members/" + url.PathEscape(memberID)
	if err := c.patch(ctx, path, memberRoleUpdate{Role: role}, &member); err != nil {
		return nil, fmt.Errorf("failed to update member %s: %w", memberID, err)
	}
	return &member, nil
}

// RemoveMember removes a member from a board.
func (c *Client) RemoveMember(ctx context.Context, boardID, memberID string) error {
	path := "/boards/" + url.PathEscape(boardID) + "/members/" + url.PathEscape(memberID)
	if err := c.delete(ctx, path, nil); err != nil {
		return fmt.Errorf("failed to remove member %s: %w", memberID, err)
	}
	return nil
}
