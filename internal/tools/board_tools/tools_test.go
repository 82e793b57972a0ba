package board_tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardtools/miro-mcp/internal/miro"
	"github.com/boardtools/miro-mcp/internal/server"
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

func TestHandleGetBoard(t *testing.T) {
	var gotPath string
	sc := newTestServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"b1","name":"Roadmap"}`))
	})

	result, err := handleGetBoard(context.Background(), callToolRequest(map[string]interface{}{
		"board_id": "b1",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "/boards/b1", gotPath)
	assert.Contains(t, resultText(t, result), "Roadmap")
}

func TestHandleGetBoard_MissingBoardID(t *testing.T) {
	sc := newTestServerContext(t, nil)

	result, err := handleGetBoard(context.Background(), callToolRequest(nil), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleListBoards(t *testing.T) {
	var gotQuery string
	sc := newTestServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"b1"}],"size":1}`))
	})

	result, err := handleListBoards(context.Background(), callToolRequest(map[string]interface{}{
		"query": "roadmap",
		"limit": float64(10),
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, gotQuery, "query=roadmap")
	assert.Contains(t, gotQuery, "limit=10")
}

func TestHandleCreateBoard_MissingName(t *testing.T) {
	sc := newTestServerContext(t, nil)

	result, err := handleCreateBoard(context.Background(), callToolRequest(map[string]interface{}{
		"description": "no name given",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleCreateBoard(t *testing.T) {
	var gotMethod, gotPath string
	sc := newTestServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"b2","name":"Sprint"}`))
	})

	result, err := handleCreateBoard(context.Background(), callToolRequest(map[string]interface{}{
		"name": "Sprint",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/boards", gotPath)
}

func TestHandleCopyBoard_MissingSource(t *testing.T) {
	sc := newTestServerContext(t, nil)

	result, err := handleCopyBoard(context.Background(), callToolRequest(map[string]interface{}{
		"name": "Copy of Sprint",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleUpdateBoard_NoFields(t *testing.T) {
	sc := newTestServerContext(t, nil)

	result, err := handleUpdateBoard(context.Background(), callToolRequest(map[string]interface{}{
		"board_id": "b1",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleDeleteBoard(t *testing.T) {
	var gotMethod string
	sc := newTestServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	result, err := handleDeleteBoard(context.Background(), callToolRequest(map[string]interface{}{
		"board_id": "b1",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Contains(t, resultText(t, result), "b1")
}

func TestHandleGetBoard_APIError(t *testing.T) {
	sc := newTestServerContext(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"board not found"}`))
	})

	result, err := handleGetBoard(context.Background(), callToolRequest(map[string]interface{}{
		"board_id": "missing",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
