package miro

import (
	"context"
	"fmt"
	"net/url"
)

type groupBody struct {
	Data GroupData `json:"data"`
}

// CreateGroup groups a set of existing items. The items must already
// exist remotely; invalid ids are rejected by the remote service.
func (c *Client) CreateGroup(ctx context.Context, boardID string, itemIDs []string) (*Group, error) {
	if len(itemIDs) < 2 {
		return nil, fmt.Errorf("a group requires at least two item ids")
	}

	var group Group
	path := "/boards/" + url.PathEscape(boardID) + "/groups"
	if err := c.post(ctx, path, nil, groupBody{Data: GroupData{Items: itemIDs}}, &group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &group, nil
}

// ListGroups returns a page of groups on a board.
func (c *Client) ListGroups(ctx context.Context, boardID, cursor string, limit int) (*GroupList, error) {
	var list GroupList
	path := "/boards/" + url.PathEscape(boardID) + "/groups"
	if err := c.get(ctx, path, listQuery(cursor, limit), &list); err != nil {
		return nil, fmt.Errorf("failed to list groups on board %s: %w", boardID, err)
	}
	return &list, nil
}

// GetGroup retrieves a group by id.
func (c *Client) GetGroup(ctx context.Context, boardID, groupID string) (*Group, error) {
	var group Group
	path := "/boards/" + url.PathEscape(boardID) + "/groups/" + url.PathEscape(groupID)
	if err := c.get(ctx, path, nil, &group); err != nil {
		return nil, fmt.Errorf("failed to get group %s: %w", groupID, err)
	}
	return &group, nil
}

// ListGroupItems returns the items belonging to a group.
func (c *Client) ListGroupItems(ctx context.Context, boardID, groupID string) (*ItemList, error) {
	var list ItemList
	path := "/boards/" + url.PathEscape(boardID) + "/groups/" + url.PathEscape(groupID) + "/items"
	if err := c.get(ctx, path, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list items in group %s: %w", groupID, err)
	}
	return &list, nil
}

// Ungroup dissolves a group, leaving its items on the board.
func (c *Client) Ungroup(ctx context.Context, boardID, groupID string) error {
	path := "/boards/" + url.PathEscape(boardID) + "/groups/" + url.PathEscape(groupID) + "/ungroup"
	if err := c.put(ctx, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to ungroup %s: %w", groupID, err)
	}
	return nil
}

// DeleteGroup deletes a group. When deleteItems is true the grouped items
// are removed from the board as well.
func (c *Client) DeleteGroup(ctx context.Context, boardID, groupID string, deleteItems bool) error {
	q := url.Values{}
	q.Set("delete_items", fmt.Sprintf("%t", deleteItems))

	path := "/boards/" + url.PathEscape(boardID) + "/groups/" + url.PathEscape(groupID)
	if err := c.delete(ctx, path, q); err != nil {
		return fmt.Errorf("failed to delete group %s: %w", groupID, err)
	}
	return nil
}
