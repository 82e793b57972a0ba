package miro

import (
	"context"
	"fmt"
	"net/url"
)

// ConnectorCreate is the payload for creating a connector between two
// existing items. The endpoints must already exist remotely; the remote
// API is the sole source of truth and rejects invalid references.
type ConnectorCreate struct {
	StartItemID string
	EndItemID   string
	Shape       string // "straight", "elbowed" (default), "curved"
	Caption     string
	StrokeColor string
	StrokeStyle string // "normal", "dotted", "dashed"
}

// Validate checks the payload against the connector endpoint contract.
func (c ConnectorCreate) Validate() error {
	if c.StartItemID == "" || c.EndItemID == "" {
		return fmt.Errorf("connector requires both start and end item ids")
	}
	if c.StartItemID == c.EndItemID {
		return fmt.Errorf("connector endpoints must be different items")
	}
	return nil
}

type connectorBody struct {
	StartItem *ConnectorEndpoint     `json:"startItem,omitempty"`
	EndItem   *ConnectorEndpoint     `json:"endItem,omitempty"`
	Shape     string                 `json:"shape,omitempty"`
	Captions  []ConnectorCaption     `json:"captions,omitempty"`
	Style     map[string]interface{} `json:"style,omitempty"`
}

func (c ConnectorCreate) body() connectorBody {
	body := connectorBody{
		StartItem: &ConnectorEndpoint{ID: c.StartItemID},
		EndItem:   &ConnectorEndpoint{ID: c.EndItemID},
		Shape:     c.Shape,
	}
	if c.Caption != "" {
		body.Captions = []ConnectorCaption{{Content: c.Caption}}
	}
	style := map[string]interface{}{}
	if c.StrokeColor != "" {
		style["strokeColor"] = c.StrokeColor
	}
	if c.StrokeStyle != "" {
		style["strokeStyle"] = c.StrokeStyle
	}
	if len(style) > 0 {
		body.Style = style
	}
	return body
}

// ConnectorUpdate is the payload for updating a connector.
type ConnectorUpdate struct {
	Shape    string             `json:"shape,omitempty"`
	Captions []ConnectorCaption `json:"captions,omitempty"`
}

// CreateConnector creates a directed link between two existing items.
func (c *Client) CreateConnector(ctx context.Context, boardID string, create ConnectorCreate) (*Connector, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}

	var connector Connector
	path := "/boards/" + url.PathEscape(boardID) + "/connectors"
	if err := c.post(ctx, path, nil, create.body(), &connector); err != nil {
		return nil, fmt.Errorf("failed to create connector %s -> %s: %w", create.StartItemID, create.EndItemID, err)
	}
	return &connector, nil
}

// GetConnector retrieves a connector by id.
func (c *Client) GetConnector(ctx context.Context, boardID, connectorID string) (*Connector, error) {
	var connector Connector
	path := "/boards/" + url.PathEscape(boardID) + "/connectors/" + url.PathEscape(connectorID)
	if err := c.get(ctx, path, nil, &connector); err != nil {
		return nil, fmt.Errorf("failed to get connector %s: %w", connectorID, err)
	}
	return &connector, nil
}

// ListConnectors returns a page of connectors on a board.
func (c *Client) ListConnectors(ctx context.Context, boardID, cursor string, limit int) (*ConnectorList, error) {
	var list ConnectorList
	path := "/boards/" + url.PathEscape(boardID) + "/connectors"
	if err := c.get(ctx, path, listQuery(cursor, limit), &list); err != nil {
		return nil, fmt.Errorf("failed to list connectors on board %s: %w", boardID, err)
	}
	return &list, nil
}

// UpdateConnector updates a connector.
func (c *Client) UpdateConnector(ctx context.Context, boardID, connectorID string, update ConnectorUpdate) (*Connector, error) {
	var connector Connector
	path := "/boards/" + url.PathEscape(boardID) + "/connectors/" + url.PathEscape(connectorID)
	if err := c.patch(ctx, path, update, &connector); err != nil {
		return nil, fmt.Errorf("failed to update connector %s: %w", connectorID, err)
	}
	return &connector, nil
}

// DeleteConnector deletes a connector.
func (c *Client) DeleteConnector(ctx context.Context, boardID, connectorID string) error {
	path := "/boards/" + url.PathEscape(boardID) + "/connectors/" + url.PathEscape(connectorID)
	if err := c.delete(ctx, path, nil); err != nil {
		return fmt.Errorf("failed to delete connector %s: %w", connectorID, err)
	}
	return nil
}
