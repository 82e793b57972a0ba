package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardtools/miro-mcp/internal/instrumentation"
	"github.com/boardtools/miro-mcp/internal/miro"
	"github.com/boardtools/miro-mcp/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
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

func TestInstrumentedToolHandler_PassthroughWithoutInstrumentation(t *testing.T) {
	sc := newTestServerContext(t)

	called := false
	handler := InstrumentedToolHandler("miro_get_board", sc,
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			called = true
			return mcp.NewToolResultText("ok"), nil
		})

	result, err := handler(context.Background(), callToolRequest(nil))
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, result.IsError)
}

func TestInstrumentedToolHandler_LogsSuccess(t *testing.T) {
	sc := newTestServerContext(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sc.SetAuditLogger(instrumentation.NewAuditLogger(logger))

	handler := InstrumentedToolHandler("miro_get_board", sc,
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("ok"), nil
		})

	_, err := handler(context.Background(), callToolRequest(map[string]interface{}{
		"board_id": "b1",
	}))
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "tool_executed")
	assert.Contains(t, output, "miro_get_board")
}

func TestInstrumentedToolHandler_LogsFailureOnError(t *testing.T) {
	sc := newTestServerContext(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sc.SetAuditLogger(instrumentation.NewAuditLogger(logger))

	handler := InstrumentedToolHandler("miro_delete_item", sc,
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return nil, errors.New("boom")
		})

	_, err := handler(context.Background(), callToolRequest(nil))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "tool_failed")
}

func TestInstrumentedToolHandler_LogsFailureOnToolError(t *testing.T) {
	sc := newTestServerContext(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sc.SetAuditLogger(instrumentation.NewAuditLogger(logger))

	// Tool errors are returned as results with IsError set, not Go errors.
	handler := InstrumentedToolHandlerWithResource("miro_update_item", instrumentation.ResourceItem, instrumentation.OperationUpdate, sc,
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultError("item not found"), nil
		})

	result, err := handler(context.Background(), callToolRequest(map[string]interface{}{
		"board_id": "b1",
		"item_id":  "i1",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, buf.String(), "tool_failed")

	if !strings.Contains(buf.String(), "resource=item") {
		t.Errorf("expected resource attribute in audit log, got %q", buf.String())
	}
}
