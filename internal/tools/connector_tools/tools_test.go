package connector_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardtools/miro-mcp/internal/miro"
	"github.com/boardtools/miro-mcp/internal/server"
	"github.com/boardtools/miro-mcp/internal/tools/batch"
)

func newTestServerContext(t *testing.T, handler http.HandlerFunc) *server.ServerContext {
	t.Helper()

	if handler == nil {
		handler = func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		}
	}
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := miro.NewClient(miro.Config{
		AccessToken: "test-token",
		BaseURL:     ts.URL,
	})
	require.NoError(t, err)

	sc, err := server.NewServerContext(context.Background(), client)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	return sc
}

func callToolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestHandleCreateConnector(t *testing.T) {
	var gotPath string
	sc := newTestServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"c1"}`))
	})

	result, err := handleCreateConnector(context.Background(), callToolRequest(map[string]interface{}{
		"board_id":      "b1",
		"start_item_id": "i1",
		"end_item_id":   "i2",
		"shape":         "elbowed",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "/boards/b1/connectors", gotPath)
}

func TestHandleCreateConnector_MissingEndpoints(t *testing.T) {
	requested := false
	sc := newTestServerContext(t, func(w http.ResponseWriter, _ *http.Request) {
		requested = true
		_, _ = w.Write([]byte(`{}`))
	})

	result, err := handleCreateConnector(context.Background(), callToolRequest(map[string]interface{}{
		"board_id":      "b1",
		"start_item_id": "i1",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.False(t, requested)
}

func TestHandleCreateConnectors_BatchOutcomes(t *testing.T) {
	calls := 0
	sc := newTestServerContext(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"c1"}`))
	})

	result, err := handleCreateConnectors(context.Background(), callToolRequest(map[string]interface{}{
		"board_id": "b1",
		"connectors": []interface{}{
			map[string]interface{}{"start_item_id": "i1", "end_item_id": "i2"},
			map[string]interface{}{"start_item_id": "i2"}, // missing end
		},
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, 1, calls, "invalid element must not reach the API")

	var summary batch.Summary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &summary))
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Outcomes, 2)
	assert.Equal(t, "i1->i2", summary.Outcomes[0].Key)
	assert.Equal(t, "i2->", summary.Outcomes[1].Key)
}

func TestHandleCreateConnectors_JSONStringConnectors(t *testing.T) {
	sc := newTestServerContext(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"c1"}`))
	})

	result, err := handleCreateConnectors(context.Background(), callToolRequest(map[string]interface{}{
		"board_id":   "b1",
		"connectors": `[{"start_item_id":"i1","end_item_id":"i2"}]`,
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var summary batch.Summary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &summary))
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
}

func TestHandleUpdateConnector_NoFields(t *testing.T) {
	sc := newTestServerContext(t, nil)

	result, err := handleUpdateConnector(context.Background(), callToolRequest(map[string]interface{}{
		"board_id":     "b1",
		"connector_id": "c1",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleDeleteConnector(t *testing.T) {
	var gotMethod, gotPath string
	sc := newTestServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	result, err := handleDeleteConnector(context.Background(), callToolRequest(map[string]interface{}{
		"board_id":     "b1",
		"connector_id": "c1",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/boards/b1/connectors/c1", gotPath)
}

func TestHandleListConnectors(t *testing.T) {
	sc := newTestServerContext(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"c1"}],"size":1}`))
	})

	result, err := handleListConnectors(context.Background(), callToolRequest(map[string]interface{}{
		"board_id": "b1",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "c1")
}
