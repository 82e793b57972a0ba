package miro

import (
	"context"
	"fmt"
	"net/url"
)

// BoardListOptions filters the board list endpoint.
type BoardListOptions struct {
	// Query is a free-text search over board names and descriptions.
	Query string

	// TeamID limits results to boards owned by a team.
	TeamID string

	// Cursor is the pagination cursor from a previous page.
	Cursor string

	// Limit caps the page size. The remote service enforces a minimum
	// of 10 when a limit is supplied.
	Limit int
}

// BoardCreate is the payload for creating or copying a board.
type BoardCreate struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	TeamID      string         `json:"teamId,omitempty"`
	Policy      *SharingPolicy `json:"policy,omitempty"`
}

// BoardUpdate is the payload for updating board metadata. Zero-valued
// fields are omitted from the request.
type BoardUpdate struct {
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Policy      *SharingPolicy `json:"policy,omitempty"`
}

// ListBoards returns a page of boards visible to the token's user.
func (c *Client) ListBoards(ctx context.Context, opts BoardListOptions) (*BoardList, error) {
	q := listQuery(opts.Cursor, opts.Limit)
	if opts.Query != "" {
		q.Set("query", opts.Query)
	}
	if opts.TeamID != "" {
		q.Set("team_id", opts.TeamID)
	}

	var list BoardList
	if err := c.get(ctx, "/boards", q, &list); err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return &list, nil
}

// GetBoard retrieves a board by id.
func (c *Client) GetBoard(ctx context.Context, boardID string) (*Board, error) {
	var board Board
	if err := c.get(ctx, "/boards/"+url.PathEscape(boardID), nil, &board); err != nil {
		return nil, fmt.Errorf("failed to get board %s: %w", boardID, err)
	}
	return &board, nil
}

// CreateBoard creates a new board.
func (c *Client) CreateBoard(ctx context.Context, create BoardCreate) (*Board, error) {
	if create.Name == "" {
		return nil, fmt.Errorf("board name cannot be empty")
	}

	var board Board
	if err := c.post(ctx, "/boards", nil, create, &board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return &board, nil
}

// CopyBoard creates a new board as a copy of an existing one.
func (c *Client) CopyBoard(ctx context.Context, sourceBoardID string, create BoardCreate) (*Board, error) {
	q := url.Values{}
	q.Set("copy_from", sourceBoardID)

	var board Board
	if err := c.put(ctx, "/boards", q, create, &board); err != nil {
		return nil, fmt.Errorf("failed to copy board %s: %w", sourceBoardID, err)
	}
	return &board, nil
}

// UpdateBoard updates board metadata.
func (c *Client) UpdateBoard(ctx context.Context, boardID string, update BoardUpdate) (*Board, error) {
	var board Board
	if err := c.patch(ctx, "/boards/"+url.PathEscape(boardID), update, &board); err != nil {
		return nil, fmt.Errorf("failed to update board %s: %w", boardID, err)
	}
	return &board, nil
}

// DeleteBoard deletes a board.
func (c *Client) DeleteBoard(ctx context.Context, boardID string) error {
	if err := c.delete(ctx, "/boards/"+url.PathEscape(boardID), nil); err != nil {
		return fmt.Errorf("failed to delete board %s: %w", boardID, err)
	}
	return nil
}
