package miro

import (
	"context"
	"fmt"
	"net/url"
)

// TagCreate is the payload for creating a tag. FillColor must be one of
// TagColors.
type TagCreate struct {
	Title     string `json:"title"`
	FillColor string `json:"fillColor,omitempty"`
}

// Validate checks the payload against the tag endpoint contract.
func (t TagCreate) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("tag title cannot be empty")
	}
	if t.FillColor != "" && !IsValidTagColor(t.FillColor) {
		return fmt.Errorf("invalid tag fill color %q (use one of the predefined color names)", t.FillColor)
	}
	return nil
}

// CreateTag creates a tag on a board.
func (c *Client) CreateTag(ctx context.Context, boardID string, create TagCreate) (*Tag, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}

	var tag Tag
	path := "/boards/" + url.PathEscape(boardID) + "/tags"
	if err := c.post(ctx, path, nil, create, &tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &tag, nil
}

// GetTag retrieves a tag by id.
func (c *Client) GetTag(ctx context.Context, boardID, tagID string) (*Tag, error) {
	var tag Tag
	path := "/boards/" + url.PathEscape(boardID) + "/tags/" + url.PathEscape(tagID)
	if err := c.get(ctx, path, nil, &tag); err != nil {
		return nil, fmt.Errorf("failed to get tag %s: %w", tagID, err)
	}
	return &tag, nil
}

// ListTags returns a page of tags on a board.
func (c *Client) ListTags(ctx context.Context, boardID, cursor string, limit int) (*TagList, error) {
	var list TagList
	path := "/boards/" + url.PathEscape(boardID) + "/tags"
	if err := c.get(ctx, path, listQuery(cursor, limit), &list); err != nil {
		return nil, fmt.Errorf("failed to list tags on board %s: %w", boardID, err)
	}
	return &list, nil
}

// UpdateTag updates a tag's title or color.
func (c *Client) UpdateTag(ctx context.Context, boardID, tagID string, update TagCreate) (*Tag, error) {
	if update.FillColor != "" && !IsValidTagColor(update.FillColor) {
		return nil, fmt.Errorf("invalid tag fill color %q", update.FillColor)
	}

	var tag Tag
	path := "/boards/" + url.PathEscape(boardID) + "/tags/" + url.PathEscape(tagID)
	if err := c.patch(ctx, path, update, &tag); err != nil {
		return nil, fmt.Errorf("failed to update tag %s: %w", tagID, err)
	}
	return &tag, nil
}

// DeleteTag deletes a tag. The tag is detached from all items first by
// the remote service.
func (c *Client) DeleteTag(ctx context.Context, boardID, tagID string) error {
	path := "/boards/" + url.PathEscape(boardID) + "/tags/" + url.PathEscape(tagID)
	if err := c.delete(ctx, path, nil); err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", tagID, err)
	}
	return nil
}

// AttachTag attaches a tag to an item. Fire-and-forget: no relationship
// is modeled locally.
func (c *Client) AttachTag(ctx context.Context, boardID, itemID, tagID string) error {
	q := url.Values{}
	q.Set("tag_id", tagID)

	path := "/boards/" + url.PathEscape(boardID) + "/items/" + url.PathEscape(itemID)
	if err := c.post(ctx, path, q, nil, nil); err != nil {
		return fmt.Errorf("failed to attach tag %s to item %s: %w", tagID, itemID, err)
	}
	return nil
}

// DetachTag removes a tag from an item.
func (c *Client) DetachTag(ctx context.Context, boardID, itemID, tagID string) error {
	q := url.Values{}
	q.Set("tag_id", tagID)

	path := "/boards/" + url.PathEscape(boardID) + "/items/" + url.PathEscape(itemID)
	if err := c.delete(ctx, path, q); err != nil {
		return fmt.Errorf("failed to detach tag %s from item %s: %w", tagID, itemID, err)
	}
	return nil
}

// ListItemsByTag returns the items a tag is attached to.
func (c *Client) ListItemsByTag(ctx context.Context, boardID, tagID string) (*ItemList, error) {
	q := url.Values{}
	q.Set("tag_id", tagID)

	var list ItemList
	path := "/boards/" + url.PathEscape(boardID) + "/items"
	if err := c.get(ctx, path, q, &list); err != nil {
		return nil, fmt.Errorf("failed to list items with tag %s: %w", tagID, err)
	}
	return &list, nil
}

// ListItemTags returns the tags attached to an item.
func (c *Client) ListItemTags(ctx context.Context, boardID, itemID string) (*TagList, error) {
	var list TagList
	path := "/boards/" + url.PathEscape(boardID) + "/items/" + url.PathEscape(itemID) + "/tags"
	if err := c.get(ctx, path, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list tags on item %s: %w", itemID, err)
	}
	return &list, nil
}
