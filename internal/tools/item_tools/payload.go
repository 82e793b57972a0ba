package item_tools

import (
	"context"
	"fmt"

	"github.com/boardtools/miro-mcp/internal/miro"
	"github.com/boardtools/miro-mcp/internal/tools/common"
)

// positionFromSpec builds a Position from x/y fields, or nil when neither
// coordinate is present.
func positionFromSpec(spec map[string]interface{}) *miro.Position {
	x := common.OptionalFloat(spec, "x")
	y := common.OptionalFloat(spec, "y")
	if x == nil && y == nil {
		return nil
	}
	pos := &miro.Position{}
	if x != nil {
		pos.X = *x
	}
	if y != nil {
		pos.Y = *y
	}
	return pos
}

// geometryFromSpec builds a Geometry from width/height fields, or nil when
// neither dimension is present.
func geometryFromSpec(spec map[string]interface{}) *miro.Geometry {
	w := common.OptionalFloat(spec, "width")
	h := common.OptionalFloat(spec, "height")
	if w == nil && h == nil {
		return nil
	}
	geo := &miro.Geometry{}
	if w != nil {
		geo.Width = *w
	}
	if h != nil {
		geo.Height = *h
	}
	return geo
}

// createItemFromSpec builds the typed payload for the requested item type
// and issues the create call. Unknown and unsupported types are rejected
// before any request is sent; connectors have their own tool because their
// payload shape is unrelated to board items.
func createItemFromSpec(ctx context.Context, client *miro.Client, boardID string, spec map[string]interface{}) (*miro.Item, error) {
	itemType, err := common.RequiredString(spec, "type")
	if err != nil {
		return nil, err
	}

	position := positionFromSpec(spec)
	geometry := geometryFromSpec(spec)
	parentID := common.OptionalString(spec, "parent_id")

	switch miro.ItemType(itemType) {
	case miro.ItemTypeStickyNote:
		return client.CreateStickyNote(ctx, boardID, miro.StickyNoteCreate{
			Content:   common.OptionalString(spec, "content"),
			FillColor: common.OptionalString(spec, "fill_color"),
			Shape:     common.OptionalString(spec, "shape"),
			Position:  position,
			Geometry:  geometry,
			ParentID:  parentID,
		})
	case miro.ItemTypeShape:
		return client.CreateShape(ctx, boardID, miro.ShapeCreate{
			Shape:     common.OptionalString(spec, "shape"),
			Content:   common.OptionalString(spec, "content"),
			FillColor: common.OptionalString(spec, "fill_color"),
			Position:  position,
			Geometry:  geometry,
			ParentID:  parentID,
		})
	case miro.ItemTypeText:
		create := miro.TextCreate{
			Content:  common.OptionalString(spec, "content"),
			Position: position,
			ParentID: parentID,
		}
		if w := common.OptionalFloat(spec, "width"); w != nil {
			create.Width = *w
		}
		return client.CreateText(ctx, boardID, create)
	case miro.ItemTypeCard:
		return client.CreateCard(ctx, boardID, miro.CardCreate{
			Title:       common.OptionalString(spec, "title"),
			Description: common.OptionalString(spec, "description"),
			DueDate:     common.OptionalString(spec, "due_date"),
			Position:    position,
			Geometry:    geometry,
			ParentID:    parentID,
		})
	case miro.ItemTypeAppCard:
		return client.CreateAppCard(ctx, boardID, miro.AppCardCreate{
			Title:       common.OptionalString(spec, "title"),
			Description: common.OptionalString(spec, "description"),
			Position:    position,
			Geometry:    geometry,
			ParentID:    parentID,
		})
	case miro.ItemTypeFrame:
		return client.CreateFrame(ctx, boardID, miro.FrameCreate{
			Title:    common.OptionalString(spec, "title"),
			Format:   common.OptionalString(spec, "format"),
			Position: position,
			Geometry: geometry,
		})
	case miro.ItemTypeImage:
		return client.CreateImage(ctx, boardID, miro.ImageCreate{
			URL:      common.OptionalString(spec, "url"),
			Title:    common.OptionalString(spec, "title"),
			Position: position,
			Geometry: geometry,
			ParentID: parentID,
		})
	case miro.ItemTypeDocument:
		return client.CreateDocument(ctx, boardID, miro.DocumentCreate{
			URL:      common.OptionalString(spec, "url"),
			Title:    common.OptionalString(spec, "title"),
			Position: position,
			Geometry: geometry,
			ParentID: parentID,
		})
	case miro.ItemTypeEmbed:
		return client.CreateEmbed(ctx, boardID, miro.EmbedCreate{
			URL:      common.OptionalString(spec, "url"),
			Mode:     common.OptionalString(spec, "mode"),
			Position: position,
			Geometry: geometry,
			ParentID: parentID,
		})
	case miro.ItemTypeConnector:
		return nil, fmt.Errorf("connectors are created with miro_create_connector")
	default:
		return nil, fmt.Errorf("unknown item type %q", itemType)
	}
}

// patchFromSpec builds an ItemPatch from the update fields present in spec.
// At least one updatable field must be present.
func patchFromSpec(spec map[string]interface{}) (miro.ItemPatch, error) {
	patch := miro.ItemPatch{
		Position: positionFromSpec(spec),
		Geometry: geometryFromSpec(spec),
	}

	data := map[string]interface{}{}
	if content := common.OptionalString(spec, "content"); content != "" {
		data["content"] = content
	}
	if title := common.OptionalString(spec, "title"); title != "" {
		data["title"] = title
	}
	if description := common.OptionalString(spec, "description"); description != "" {
		data["description"] = description
	}
	if len(data) > 0 {
		patch.Data = data
	}

	if fillColor := common.OptionalString(spec, "fill_color"); fillColor != "" {
		patch.Style = map[string]interface{}{"fillColor": fillColor}
	}

	if parentID := common.OptionalString(spec, "parent_id"); parentID != "" {
		patch.Parent = &miro.Parent{ID: parentID}
	}

	if patch.Data == nil && patch.Style == nil && patch.Position == nil && patch.Geometry == nil && patch.Parent == nil {
		return patch, fmt.Errorf("at least one updatable field is required")
	}

	return patch, nil
}
