package miro

import (
	"encoding/json"
	"fmt"
	"time"
)

// ItemType is the discriminant the API attaches to every board item.
// It determines which per-type sub-resource handles mutations.
type ItemType string

// Item types supported by the API.
const (
	ItemTypeStickyNote ItemType = "sticky_note"
	ItemTypeShape      ItemType = "shape"
	ItemTypeText       ItemType = "text"
	ItemTypeCard       ItemType = "card"
	ItemTypeAppCard    ItemType = "app_card"
	ItemTypeConnector  ItemType = "connector"
	ItemTypeFrame      ItemType = "frame"
	ItemTypeImage      ItemType = "image"
	ItemTypeDocument   ItemType = "document"
	ItemTypeEmbed      ItemType = "embed"
)

// itemEndpoints maps an item type to its mutation sub-resource under
// /boards/{board_id}/. The API rejects type-specific payloads sent to the
// wrong sub-resource, so generic update/delete must route through here.
var itemEndpoints = map[ItemType]string{
	ItemTypeStickyNote: "sticky_notes",
	ItemTypeShape:      "shapes",
	ItemTypeText:       "texts",
	ItemTypeCard:       "cards",
	ItemTypeAppCard:    "app_cards",
	ItemTypeConnector:  "connectors",
	ItemTypeFrame:      "frames",
	ItemTypeImage:      "images",
	ItemTypeDocument:   "documents",
	ItemTypeEmbed:      "embeds",
}

// EndpointForItemType returns the mutation sub-resource for an item type.
// Unknown item types are rejected rather than falling back to the generic
// items endpoint, which would silently send a malformed payload upstream.
func EndpointForItemType(t ItemType) (string, error) {
	ep, ok := itemEndpoints[t]
	if !ok {
		return "", fmt.Errorf("unknown item type %q", t)
	}
	return ep, nil
}

// StickyNoteColors is the fixed set of color names accepted for sticky
// note fills. The API rejects hexadecimal values for sticky notes even
// though other item types accept hex.
var StickyNoteColors = []string{
	"gray", "light_yellow", "yellow", "orange", "light_green", "green",
	"dark_green", "cyan", "light_pink", "pink", "violet", "red",
	"light_blue", "blue", "dark_blue", "black",
}

// TagColors is the fixed set of color names accepted for tags.
var TagColors = []string{
	"red", "magenta", "violet", "light_green", "green", "dark_green",
	"cyan", "blue", "dark_blue", "yellow", "gray", "black",
}

// ShapeNames is the fixed set of geometric shape names accepted for
// shape items.
var ShapeNames = []string{
	"rectangle", "round_rectangle", "circle", "triangle", "rhombus",
	"parallelogram", "trapezoid", "pentagon", "hexagon", "octagon",
	"wedge_round_rectangle_callout", "star", "flow_chart_predefined_process",
	"cloud", "cross", "can", "right_arrow", "left_arrow",
	"left_right_arrow", "left_brace", "right_brace",
}

// MemberRoles is the fixed set of board member roles.
var MemberRoles = []string{"viewer", "commenter", "editor", "coowner", "owner"}

// IsValidStickyNoteColor reports whether color is an accepted sticky note
// fill color name.
func IsValidStickyNoteColor(color string) bool {
	return containsString(StickyNoteColors, color)
}

// IsValidTagColor reports whether color is an accepted tag color name.
func IsValidTagColor(color string) bool {
	return containsString(TagColors, color)
}

// IsValidShapeName reports whether shape is an accepted shape name.
func IsValidShapeName(shape string) bool {
	return containsString(ShapeNames, shape)
}

// IsValidMemberRole reports whether role is an accepted board member role.
func IsValidMemberRole(role string) bool {
	return containsString(MemberRoles, role)
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Position places an item on a board. Origin defaults to "center" when
// omitted.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Origin string  `json:"origin,omitempty"`
}

// Geometry describes an item's dimensions. Not all fields are valid for
// all item types: text items accept width but not height, sticky notes
// accept one of width or height.
type Geometry struct {
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
}

// Parent references the containing item, typically a frame.
type Parent struct {
	ID string `json:"id"`
}

// Team identifies the team a board belongs to.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// User identifies a Miro user.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// SharingPolicy controls board access defaults.
type SharingPolicy struct {
	Access                            string `json:"access,omitempty"`
	InviteToAccountAndBoardLinkAccess string `json:"inviteToAccountAndBoardLinkAccess,omitempty"`
	OrganizationAccess                string `json:"organizationAccess,omitempty"`
	TeamAccess                        string `json:"teamAccess,omitempty"`
}

// Board is a remote canvas resource. Boards are never cached locally;
// every read goes to the remote service.
type Board struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Team        *Team          `json:"team,omitempty"`
	Owner       *User          `json:"owner,omitempty"`
	Policy      *SharingPolicy `json:"policy,omitempty"`
	ViewLink    string         `json:"viewLink,omitempty"`
	CreatedAt   time.Time      `json:"createdAt,omitempty"`
	ModifiedAt  time.Time      `json:"modifiedAt,omitempty"`
}

// Item is any placeable object on a board. Data and Style are kept raw
// for reads; the typed create/update payloads live in items.go and are
// validated before a request is issued.
type Item struct {
	ID         string          `json:"id"`
	Type       ItemType        `json:"type"`
	Data       json.RawMessage `json:"data,omitempty"`
	Style      json.RawMessage `json:"style,omitempty"`
	Position   *Position       `json:"position,omitempty"`
	Geometry   *Geometry       `json:"geometry,omitempty"`
	Parent     *Parent         `json:"parent,omitempty"`
	CreatedAt  time.Time       `json:"createdAt,omitempty"`
	ModifiedAt time.Time       `json:"modifiedAt,omitempty"`
}

// Tag is a small labelled marker attachable to items.
type Tag struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FillColor string `json:"fillColor,omitempty"`
}

// Group is a set of item ids treated as one unit on the board.
type Group struct {
	ID   string    `json:"id"`
	Data GroupData `json:"data"`
}

// GroupData carries the item ids belonging to a group.
type GroupData struct {
	Items []string `json:"items"`
}

// Member is a user with a role on a specific board.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Webhook is a board event subscription.
type Webhook struct {
	ID          string   `json:"id"`
	BoardID     string   `json:"boardId,omitempty"`
	CallbackURL string   `json:"callbackUrl,omitempty"`
	EventTypes  []string `json:"eventTypes,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// Connector is a directed link between two existing items, optionally
// captioned. The endpoints must already exist remotely; the client does
// not check and the remote API rejects invalid references.
type Connector struct {
	ID       string             `json:"id"`
	Shape    string             `json:"shape,omitempty"`
	StartRef *ConnectorEndpoint `json:"startItem,omitempty"`
	EndRef   *ConnectorEndpoint `json:"endItem,omitempty"`
	Captions []ConnectorCaption `json:"captions,omitempty"`
	Style    json.RawMessage    `json:"style,omitempty"`
}

// ConnectorEndpoint references one end of a connector by item id.
type ConnectorEndpoint struct {
	ID string `json:"id"`
}

// ConnectorCaption is a text label along a connector.
type ConnectorCaption struct {
	Content  string `json:"content"`
	Position string `json:"position,omitempty"`
}

// PageInfo carries cursor pagination metadata returned by list endpoints.
type PageInfo struct {
	Size   int    `json:"size,omitempty"`
	Total  int    `json:"total,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// BoardList is a page of boards.
type BoardList struct {
	Data []Board `json:"data"`
	PageInfo
}

// ItemList is a page of items.
type ItemList struct {
	Data []Item `json:"data"`
	PageInfo
}

// TagList is a page of tags.
type TagList struct {
	Data []Tag `json:"data"`
	PageInfo
}

// GroupList is a page of groups.
type GroupList struct {
	Data []Group `json:"data"`
	PageInfo
}

// MemberList is a page of board members.
type MemberList struct {
	Data []Member `json:"data"`
	PageInfo
}

// WebhookList is a page of webhook subscriptions.
type WebhookList struct {
	Data []Webhook `json:"data"`
	PageInfo
}

// ConnectorList is a page of connectors.
type ConnectorList struct {
	Data []Connector `json:"data"`
	PageInfo
}
