package resources

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
)

func newTestServerContext(t *testing.T, handler http.HandlerFunc) *server.ServerContext {
	t.Helper()

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

func TestHandleBoardsResource(t *testing.T) {
	sc := newTestServerContext(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"b1","name":"Roadmap","viewLink":"https://miro.com/app/board/b1"}],"total":1}`))
	})

	request := mcp.ReadResourceRequest{}
	request.Params.URI = "miro://boards"

	contents, err := handleBoardsResource(context.Background(), request, sc)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "miro://boards", text.URI)
	assert.Equal(t, "application/json", text.MIMEType)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	assert.Equal(t, float64(1), payload["total"])
	boards, ok := payload["boards"].([]interface{})
	require.True(t, ok)
	require.Len(t, boards, 1)
}

func TestHandleBoardsResource_APIError(t *testing.T) {
	sc := newTestServerContext(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	})

	request := mcp.ReadResourceRequest{}
	request.Params.URI = "miro://boards"

	_, err := handleBoardsResource(context.Background(), request, sc)
	require.Error(t, err)
}
