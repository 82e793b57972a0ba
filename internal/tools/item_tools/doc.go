// Package item_tools provides MCP (Model Context Protocol) tools for Miro board items.
//
// This package covers every placeable item type: sticky notes, shapes, text,
// cards, app cards, frames, images, documents, and embeds. Single-item tools
// operate on one item per call; the bulk tools (miro_create_items,
// miro_update_items, miro_delete_items) process up to 20 elements per call
// sequentially, reporting a per-element outcome instead of failing the whole
// batch on the first error.
package item_tools
