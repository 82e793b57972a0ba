package miro

import (
	"context"
	"fmt"
	"net/url"
)

// ItemListOptions filters the board items list endpoint.
type ItemListOptions struct {
	// Type limits results to a single item type.
	Type ItemType

	// ParentItemID limits results to children of an item (e.g. a frame).
	ParentItemID string

	// Cursor is the pagination cursor from a previous page.
	Cursor string

	// Limit caps the page size (remote-enforced minimum of 10).
	Limit int
}

// itemBody is the wire shape shared by item creation and update requests.
// Data and style are built by the typed payloads below, so only known
// fields for the target item type ever reach the remote service.
type itemBody struct {
	Data     map[string]interface{} `json:"data,omitempty"`
	Style    map[string]interface{} `json:"style,omitempty"`
	Position *Position              `json:"position,omitempty"`
	Geometry *Geometry              `json:"geometry,omitempty"`
	Parent   *Parent                `json:"parent,omitempty"`
}

func parentRef(parentID string) *Parent {
	if parentID == "" {
		return nil
	}
	return &Parent{ID: parentID}
}

// StickyNoteCreate is the payload for creating a sticky note. Content is
// required and FillColor must be one of StickyNoteColors, since the remote
// service rejects hex values for sticky notes.
type StickyNoteCreate struct {
	Content   string
	FillColor string
	Shape     string // "square" (default) or "rectangle"
	Position  *Position
	Geometry  *Geometry
	ParentID  string
}

// Validate checks the payload against the sticky note endpoint contract.
func (s StickyNoteCreate) Validate() error {
	if s.Content == "" {
		return fmt.Errorf("sticky note content cannot be empty")
	}
	if s.FillColor != "" && !IsValidStickyNoteColor(s.FillColor) {
		return fmt.Errorf("invalid sticky note fill color %q (hex values are not accepted; use one of the predefined color names)", s.FillColor)
	}
	if s.Geometry != nil && s.Geometry.Width > 0 && s.Geometry.Height > 0 {
		return fmt.Errorf("sticky note geometry accepts width or height, not both")
	}
	return nil
}

func (s StickyNoteCreate) body() itemBody {
	data := map[string]interface{}{"content": s.Content}
	if s.Shape != "" {
		data["shape"] = s.Shape
	}
	var style map[string]interface{}
	if s.FillColor != "" {
		style = map[string]interface{}{"fillColor": s.FillColor}
	}
	return itemBody{
		Data:     data,
		Style:    style,
		Position: s.Position,
		Geometry: s.Geometry,
		Parent:   parentRef(s.ParentID),
	}
}

// ShapeCreate is the payload for creating a shape item. Unlike sticky
// notes, shape fills accept hex color values.
type ShapeCreate struct {
	Shape     string
	Content   string
	FillColor string
	Position  *Position
	Geometry  *Geometry
	ParentID  string
}

// Validate checks the payload against the shape endpoint contract.
func (s ShapeCreate) Validate() error {
	if s.Shape != "" && !IsValidShapeName(s.Shape) {
		return fmt.Errorf("invalid shape name %q", s.Shape)
	}
	return nil
}

func (s ShapeCreate) body() itemBody {
	data := map[string]interface{}{}
	if s.Shape != "" {
		data["shape"] = s.Shape
	}
	if s.Content != "" {
		data["content"] = s.Content
	}
	var style map[string]interface{}
	if s.FillColor != "" {
		style = map[string]interface{}{"fillColor": s.FillColor}
	}
	return itemBody{
		Data:     data,
		Style:    style,
		Position: s.Position,
		Geometry: s.Geometry,
		Parent:   parentRef(s.ParentID),
	}
}

// TextCreate is the payload for creating a text item. Text geometry
// accepts a width but not a height; the rendered height follows the
// content.
type TextCreate struct {
	Content  string
	Width    float64
	Position *Position
	ParentID string
}

// Validate checks the payload against the text endpoint contract.
func (t TextCreate) Validate() error {
	if t.Content == "" {
		return fmt.Errorf("text content cannot be empty")
	}
	return nil
}

func (t TextCreate) body() itemBody {
	var geometry *Geometry
	if t.Width > 0 {
		geometry = &Geometry{Width: t.Width}
	}
	return itemBody{
		Data:     map[string]interface{}{"content": t.Content},
		Position: t.Position,
		Geometry: geometry,
		Parent:   parentRef(t.ParentID),
	}
}

// CardCreate is the payload for creating a card item.
type CardCreate struct {
	Title       string
	Description string
	DueDate     string // RFC3339
	Position    *Position
	Geometry    *Geometry
	ParentID    string
}

// Validate checks the payload against the card endpoint contract.
func (c CardCreate) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("card title cannot be empty")
	}
	return nil
}

func (c CardCreate) body() itemBody {
	data := map[string]interface{}{"title": c.Title}
	if c.Description != "" {
		data["description"] = c.Description
	}
	if c.DueDate != "" {
		data["dueDate"] = c.DueDate
	}
	return itemBody{
		Data:     data,
		Position: c.Position,
		Geometry: c.Geometry,
		Parent:   parentRef(c.ParentID),
	}
}

// AppCardCreate is the payload for creating an app card item.
type AppCardCreate struct {
	Title       string
	Description string
	Position    *Position
	Geometry    *Geometry
	ParentID    string
}

// Validate checks the payload against the app card endpoint contract.
func (a AppCardCreate) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("app card title cannot be empty")
	}
	return nil
}

func (a AppCardCreate) body() itemBody {
	data := map[string]interface{}{"title": a.Title}
	if a.Description != "" {
		data["description"] = a.Description
	}
	return itemBody{
		Data:     data,
		Position: a.Position,
		Geometry: a.Geometry,
		Parent:   parentRef(a.ParentID),
	}
}

// FrameCreate is the payload for creating a frame.
type FrameCreate struct {
	Title    string
	Format   string // "custom", "desktop", "phone", ...
	Position *Position
	Geometry *Geometry
}

// Validate checks the payload against the frame endpoint contract.
func (f FrameCreate) Validate() error {
	return nil
}

func (f FrameCreate) body() itemBody {
	data := map[string]interface{}{}
	if f.Title != "" {
		data["title"] = f.Title
	}
	if f.Format != "" {
		data["format"] = f.Format
	}
	return itemBody{
		Data:     data,
		Position: f.Position,
		Geometry: f.Geometry,
	}
}

// ImageCreate is the payload for creating an image item from a URL.
type ImageCreate struct {
	URL      string
	Title    string
	Position *Position
	Geometry *Geometry
	ParentID string
}

// Validate checks the payload against the image endpoint contract.
func (i ImageCreate) Validate() error {
	if i.URL == "" {
		return fmt.Errorf("image URL cannot be empty")
	}
	return nil
}

func (i ImageCreate) body() itemBody {
	data := map[string]interface{}{"url": i.URL}
	if i.Title != "" {
		data["title"] = i.Title
	}
	return itemBody{
		Data:     data,
		Position: i.Position,
		Geometry: i.Geometry,
		Parent:   parentRef(i.ParentID),
	}
}

// DocumentCreate is the payload for creating a document item from a URL.
type DocumentCreate struct {
	URL      string
	Title    string
	Position *Position
	Geometry *Geometry
	ParentID string
}

// Validate checks the payload against the document endpoint contract.
func (d DocumentCreate) Validate() error {
	if d.URL == "" {
		return fmt.Errorf("document URL cannot be empty")
	}
	return nil
}

func (d DocumentCreate) body() itemBody {
	data := map[string]interface{}{"url": d.URL}
	if d.Title != "" {
		data["title"] = d.Title
	}
	return itemBody{
		Data:     data,
		Position: d.Position,
		Geometry: d.Geometry,
		Parent:   parentRef(d.ParentID),
	}
}

// EmbedCreate is the payload for creating an embed item from a URL.
type EmbedCreate struct {
	URL      string
	Mode     string // "inline" or "modal"
	Position *Position
	Geometry *Geometry
	ParentID string
}

// Validate checks the payload against the embed endpoint contract.
func (e EmbedCreate) Validate() error {
	if e.URL == "" {
		return fmt.Errorf("embed URL cannot be empty")
	}
	return nil
}

func (e EmbedCreate) body() itemBody {
	data := map[string]interface{}{"url": e.URL}
	if e.Mode != "" {
		data["mode"] = e.Mode
	}
	return itemBody{
		Data:     data,
		Position: e.Position,
		Geometry: e.Geometry,
		Parent:   parentRef(e.ParentID),
	}
}

// ItemPatch is the payload for the generic item update. Data and Style
// are validated by the tool layer before they reach the client; the client
// only routes them to the correct per-type sub-resource.
type ItemPatch struct {
	Data     map[string]interface{} `json:"data,omitempty"`
	Style    map[string]interface{} `json:"style,omitempty"`
	Position *Position              `json:"position,omitempty"`
	Geometry *Geometry              `json:"geometry,omitempty"`
	Parent   *Parent                `json:"parent,omitempty"`
}

// ListItems returns a page of items on a board.
func (c *Client) ListItems(ctx context.Context, boardID string, opts ItemListOptions) (*ItemList, error) {
	q := listQuery(opts.Cursor, opts.Limit)
	if opts.Type != "" {
		q.Set("type", string(opts.Type))
	}
	if opts.ParentItemID != "" {
		q.Set("parent_item_id", opts.ParentItemID)
	}

	var list ItemList
	if err := c.get(ctx, "/boards/"+url.PathEscape(boardID)+"/items", q, &list); err != nil {
		return nil, fmt.Errorf("failed to list items on board %s: %w", boardID, err)
	}
	return &list, nil
}

// GetItem retrieves a single item by id via the generic items endpoint.
func (c *Client) GetItem(ctx context.Context, boardID, itemID string) (*Item, error) {
	var item Item
	path := "/boards/" + url.PathEscape(boardID) + "/items/" + url.PathEscape(itemID)
	if err := c.get(ctx, path, nil, &item); err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", itemID, err)
	}
	return &item, nil
}

func (c *Client) createItem(ctx context.Context, boardID, endpoint string, body itemBody) (*Item, error) {
	var item Item
	path := "/boards/" + url.PathEscape(boardID) + "/" + endpoint
	if err := c.post(ctx, path, nil, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateStickyNote creates a sticky note on a board.
func (c *Client) CreateStickyNote(ctx context.Context, boardID string, create StickyNoteCreate) (*Item, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	item, err := c.createItem(ctx, boardID, "sticky_notes", create.body())
	if err != nil {
		return nil, fmt.Errorf("failed to create sticky note: %w", err)
	}
	return item, nil
}

// CreateShape creates a shape item on a board.
func (c *Client) CreateShape(ctx context.Context, boardID string, create ShapeCreate) (*Item, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	item, err := c.createItem(ctx, boardID, "shapes", create.body())
	if err != nil {
		return nil, fmt.Errorf("failed to create shape: %w", err)
	}
	return item, nil
}

// CreateText creates a text item on a board.
func (c *Client) CreateText(ctx context.Context, boardID string, create TextCreate) (*Item, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	item, err := c.createItem(ctx, boardID, "texts", create.body())
	if err != nil {
		return nil, fmt.Errorf("failed to create text item: %w", err)
	}
	return item, nil
}

// CreateCard creates a card item on a board.
func (c *Client) CreateCard(ctx context.Context, boardID string, create CardCreate) (*Item, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	item, err := c.createItem(ctx, boardID, "cards", create.body())
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return item, nil
}

// CreateAppCard creates an app card item on a board.
func (c *Client) CreateAppCard(ctx context.Context, boardID string, create AppCardCreate) (*Item, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	item, err := c.createItem(ctx, boardID, "app_cards", create.body())
	if err != nil {
		return nil, fmt.Errorf("failed to create app card: %w", err)
	}
	return item, nil
}

// CreateFrame creates a frame on a board.
func (c *Client) CreateFrame(ctx context.Context, boardID string, create FrameCreate) (*Item, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	item, err := c.createItem(ctx, boardID, "frames", create.body())
	if err != nil {
		return nil, fmt.Errorf("failed to create frame: %w", err)
	}
	return item, nil
}

// CreateImage creates an image item on a board from a URL.
func (c *Client) CreateImage(ctx context.Context, boardID string, create ImageCreate) (*Item, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	item, err := c.createItem(ctx, boardID, "images", create.body())
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	return item, nil
}

// CreateDocument creates a document item on a board from a URL.
func (c *Client) CreateDocument(ctx context.Context, boardID string, create DocumentCreate) (*Item, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	item, err := c.createItem(ctx, boardID, "documents", create.body())
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return item, nil
}

// CreateEmbed creates an embed item on a board from a URL.
func (c *Client) CreateEmbed(ctx context.Context, boardID string, create EmbedCreate) (*Item, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	item, err := c.createItem(ctx, boardID, "embeds", create.body())
	if err != nil {
		return nil, fmt.Errorf("failed to create embed: %w", err)
	}
	return item, nil
}

// UpdateItem updates an item by id. The API exposes per-type sub-resources
// rather than one generic mutation endpoint, so the item is fetched first
// to discover its type before the update is routed. The extra
// read-before-write is mandatory: the remote service rejects type-specific
// payloads sent to the wrong sub-resource.
func (c *Client) UpdateItem(ctx context.Context, boardID, itemID string, patch ItemPatch) (*Item, error) {
	item, err := c.GetItem(ctx, boardID, itemID)
	if err != nil {
		return nil, err
	}

	endpoint, err := EndpointForItemType(item.Type)
	if err != nil {
		return nil, fmt.Errorf("cannot update item %s: %w", itemID, err)
	}

	var updated Item
	path := "/boards/" + url.PathEscape(boardID) + "/" + endpoint + "/" + url.PathEscape(itemID)
	if err := c.patch(ctx, path, patch, &updated); err != nil {
		return nil, fmt.Errorf("failed to update %s %s: %w", item.Type, itemID, err)
	}
	return &updated, nil
}

// DeleteItem deletes an item by id, routing through the per-type
// sub-resource like UpdateItem.
func (c *Client) DeleteItem(ctx context.Context, boardID, itemID string) error {
	item, err := c.GetItem(ctx, boardID, itemID)
	if err != nil {
		return err
	}

	endpoint, err := EndpointForItemType(item.Type)
	if err != nil {
		return fmt.Errorf("cannot delete item %s: %w", itemID, err)
	}

	path := "/boards/" + url.PathEscape(boardID) + "/" + endpoint + "/" + url.PathEscape(itemID)
	if err := c.delete(ctx, path, nil); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", item.Type, itemID, err)
	}
	return nil
}
