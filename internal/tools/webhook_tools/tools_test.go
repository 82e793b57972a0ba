package webhook_tools

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

func TestHandleCreateWebhook(t *testing.T) {
	var gotMethod, gotPath string
	sc := newTestServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"w1","status":"enabled"}`))
	})

	result, err := handleCreateWebhook(context.Background(), callToolRequest(map[string]interface{}{
		"board_id":     "b1",
		"callback_url": "https://example.com/hook",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/webhooks/board_subscriptions", gotPath)
}

func TestHandleCreateWebhook_MissingCallbackURL(t *testing.T) {
	sc := newTestServerContext(t, nil)

	result, err := handleCreateWebhook(context.Background(), callToolRequest(map[string]interface{}{
		"board_id": "b1",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleUpdateWebhook_NoFields(t *testing.T) {
	requested := false
	sc := newTestServerContext(t, func(w http.ResponseWriter, _ *http.Request) {
		requested = true
		_, _ = w.Write([]byte(`{}`))
	})

	result, err := handleUpdateWebhook(context.Background(), callToolRequest(map[string]interface{}{
		"webhook_id": "w1",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.False(t, requested)
}

func TestHandleUpdateWebhook(t *testing.T) {
	var gotPath string
	sc := newTestServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"w1","status":"disabled"}`))
	})

	result, err := handleUpdateWebhook(context.Background(), callToolRequest(map[string]interface{}{
		"webhook_id": "w1",
		"status":     "disabled",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "/webhooks/board_subscriptions/w1", gotPath)
}

func TestHandleDeleteWebhook(t *testing.T) {
	var gotMethod string
	sc := newTestServerContext(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	result, err := handleDeleteWebhook(context.Background(), callToolRequest(map[string]interface{}{
		"webhook_id": "w1",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestHandleListWebhooks(t *testing.T) {
	sc := newTestServerContext(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"w1"}],"size":1}`))
	})

	result, err := handleListWebhooks(context.Background(), callToolRequest(nil), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
}
