package miro

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the test server observed for one call.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// newTestClient starts an httptest server running the given handler and
// returns a client pointed at it plus a pointer to the recorded requests.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, 0)
		if r.Body != nil {
			buf := make([]byte, 64*1024)
			n, _ := r.Body.Read(buf)
			body = buf[:n]
		}
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		AccessToken: "test-token",
		BaseURL:     srv.URL,
	})
	require.NoError(t, err)

	return client, &requests
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access token")
}

func TestRequestsCarryBearerToken(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Board{ID: "b1", Name: "Test"})
	})

	_, err := client.GetBoard(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, *requests, 1)
	assert.Equal(t, "Bearer test-token", (*requests)[0].Auth)
}

func TestAPIErrorCarriesStatusAndBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid fill color"}`))
	})

	_, err := client.GetBoard(context.Background(), "b1")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid fill color")
	assert.True(t, apiErr.IsClientError())
	assert.False(t, apiErr.IsServerError())
}

func TestDeleteNormalizesEmptyResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "204 no content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodDelete {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				_ = json.NewEncoder(w).Encode(Item{ID: "i1", Type: ItemTypeShape})
			},
		},
		{
			name: "200 with empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodDelete {
					w.WriteHeader(http.StatusOK)
					return
				}
				_ = json.NewEncoder(w).Encode(Item{ID: "i1", Type: ItemTypeShape})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)
			err := client.DeleteItem(context.Background(), "b1", "i1")
			assert.NoError(t, err)
		})
	}
}

func TestUpdateItemRoutesToTypedEndpoint(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(Item{ID: "i1", Type: ItemTypeShape})
		case http.MethodPatch:
			_ = json.NewEncoder(w).Encode(Item{ID: "i1", Type: ItemTypeShape})
		}
	})

	_, err := client.UpdateItem(context.Background(), "b1", "i1", ItemPatch{
		Data: map[string]interface{}{"content": "updated"},
	})
	require.NoError(t, err)

	// Read-before-write: first a GET against the generic items endpoint
	// to discover the type, then a PATCH against the shape sub-resource.
	require.Len(t, *requests, 2)
	assert.Equal(t, http.MethodGet, (*requests)[0].Method)
	assert.Equal(t, "/boards/b1/items/i1", (*requests)[0].Path)
	assert.Equal(t, http.MethodPatch, (*requests)[1].Method)
	assert.Equal(t, "/boards/b1/shapes/i1", (*requests)[1].Path)
}

func TestDeleteItemRoutesToTypedEndpoint(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode(Item{ID: "i1", Type: ItemTypeStickyNote})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.DeleteItem(context.Background(), "b1", "i1")
	require.NoError(t, err)

	require.Len(t, *requests, 2)
	assert.Equal(t, "/boards/b1/sticky_notes/i1", (*requests)[1].Path)
	assert.Equal(t, http.MethodDelete, (*requests)[1].Method)
}

func TestUpdateItemRejectsUnknownType(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Item{ID: "i1", Type: ItemType("usm")})
	})

	_, err := client.UpdateItem(context.Background(), "b1", "i1", ItemPatch{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown item type")
	// Only the discovery read happened; no mutation was attempted.
	assert.Len(t, *requests, 1)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Item{ID: "note-42", Type: ItemTypeStickyNote})
	})

	created, err := client.CreateStickyNote(context.Background(), "b1", StickyNoteCreate{
		Content:   "hello",
		FillColor: "yellow",
	})
	require.NoError(t, err)

	fetched, err := client.GetItem(context.Background(), "b1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestCreateStickyNoteRejectsHexColor(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Item{ID: "i1"})
	})

	_, err := client.CreateStickyNote(context.Background(), "b1", StickyNoteCreate{
		Content:   "hello",
		FillColor: "#ff0000",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fill color")
	// Validation failed before any network call.
	assert.Empty(t, *requests)
}

func TestCreateTextOmitsHeight(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Item{ID: "t1", Type: ItemTypeText})
	})

	_, err := client.CreateText(context.Background(), "b1", TextCreate{
		Content: "label",
		Width:   320,
	})
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal((*requests)[0].Body, &body))
	geometry, ok := body["geometry"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, geometry, "width")
	assert.NotContains(t, geometry, "height")
}

func TestListItemsQueryParameters(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ItemList{})
	})

	_, err := client.ListItems(context.Background(), "b1", ItemListOptions{
		Type:         ItemTypeShape,
		ParentItemID: "frame-1",
		Cursor:       "abc",
		Limit:        25,
	})
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	q := (*requests)[0].Query
	assert.Contains(t, q, "type=shape")
	assert.Contains(t, q, "parent_item_id=frame-1")
	assert.Contains(t, q, "cursor=abc")
	assert.Contains(t, q, "limit=25")
}

func TestConnectorEndpointsMustDiffer(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Connector{ID: "c1"})
	})

	_, err := client.CreateConnector(context.Background(), "b1", ConnectorCreate{
		StartItemID: "i1",
		EndItemID:   "i1",
	})
	require.Error(t, err)
	assert.Empty(t, *requests)
}

func TestEndpointForItemType(t *testing.T) {
	tests := []struct {
		itemType ItemType
		endpoint string
		wantErr  bool
	}{
		{ItemTypeStickyNote, "sticky_notes", false},
		{ItemTypeShape, "shapes", false},
		{ItemTypeText, "texts", false},
		{ItemTypeCard, "cards", false},
		{ItemTypeAppCard, "app_cards", false},
		{ItemTypeConnector, "connectors", false},
		{ItemTypeFrame, "frames", false},
		{ItemTypeImage, "images", false},
		{ItemTypeDocument, "documents", false},
		{ItemTypeEmbed, "embeds", false},
		{ItemType("kanban_column"), "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.itemType), func(t *testing.T) {
			ep, err := EndpointForItemType(tt.itemType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.endpoint, ep)
		})
	}
}

func TestColorAndShapeEnums(t *testing.T) {
	assert.True(t, IsValidStickyNoteColor("yellow"))
	assert.False(t, IsValidStickyNoteColor("#ffff00"))
	assert.True(t, IsValidTagColor("magenta"))
	assert.False(t, IsValidTagColor("mauve"))
	assert.True(t, IsValidShapeName("round_rectangle"))
	assert.False(t, IsValidShapeName("dodecahedron"))
	assert.True(t, IsValidMemberRole("editor"))
	assert.False(t, IsValidMemberRole("admin"))
}
