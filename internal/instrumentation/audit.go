package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/boardtools/miro-mcp/internal/logging"
)

// ToolInvocation captures all information about a tool invocation for audit logging.
// This provides an audit trail for all MCP tool calls against the Miro API.
type ToolInvocation struct {
	// Tool name
	Tool string

	// Target information for Miro resources
	BoardID   string // Board being operated on
	ItemID    string // Item being operated on, if any
	Resource  string // Miro resource (board, item, connector, tag, ...)
	Operation string // Operation type (list, get, create, update, delete, ...)

	// Batch details (zero for single-target tools)
	BatchTotal     int
	BatchSucceeded int
	BatchFailed    int

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// Status returns "success" or "error" based on the Success field.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for structured logging.
// Board and item identifiers are omitted; use LogAuditAttrs when the
// audit stream is configured to carry them.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		logging.Tool(ti.Tool),
		slog.Duration(logging.KeyDuration, ti.Duration),
		logging.Status(ti.Status()),
	}

	// Add optional fields only if present
	if ti.Resource != "" {
		attrs = append(attrs, slog.String("resource", ti.Resource))
	}
	if ti.Operation != "" {
		attrs = append(attrs, logging.Operation(ti.Operation))
	}
	if ti.BatchTotal > 0 {
		attrs = append(attrs,
			slog.Int("batch_total", ti.BatchTotal),
			slog.Int("batch_succeeded", ti.BatchSucceeded),
			slog.Int("batch_failed", ti.BatchFailed),
		)
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, ti.Error))
	}

	return attrs
}

// LogAuditAttrs returns slog attributes for full audit logging,
// including board and item identifiers.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		logging.Tool(ti.Tool),
		slog.Duration(logging.KeyDuration, ti.Duration),
		logging.Status(ti.Status()),
	}

	// Add all optional fields
	if ti.BoardID != "" {
		attrs = append(attrs, logging.Board(ti.BoardID))
	}
	if ti.ItemID != "" {
		attrs = append(attrs, logging.Item(ti.ItemID))
	}
	if ti.Resource != "" {
		attrs = append(attrs, slog.String("resource", ti.Resource))
	}
	if ti.Operation != "" {
		attrs = append(attrs, logging.Operation(ti.Operation))
	}
	if ti.BatchTotal > 0 {
		attrs = append(attrs,
			slog.Int("batch_total", ti.BatchTotal),
			slog.Int("batch_succeeded", ti.BatchSucceeded),
			slog.Int("batch_failed", ti.BatchFailed),
		)
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, ti.Error))
	}

	return attrs
}

// NewToolInvocation creates a new ToolInvocation with timing started.
// Call Complete() when the tool operation finishes.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithBoard sets the target board identifier.
func (ti *ToolInvocation) WithBoard(boardID string) *ToolInvocation {
	ti.BoardID = boardID
	return ti
}

// WithItem sets the target item identifier.
func (ti *ToolInvocation) WithItem(itemID string) *ToolInvocation {
	ti.ItemID = itemID
	return ti
}

// WithResource sets the Miro resource and operation.
func (ti *ToolInvocation) WithResource(resource, operation string) *ToolInvocation {
	ti.Resource = resource
	ti.Operation = operation
	return ti
}

// WithBatch sets the batch outcome counts.
func (ti *ToolInvocation) WithBatch(total, succeeded, failed int) *ToolInvocation {
	ti.BatchTotal = total
	ti.BatchSucceeded = succeeded
	ti.BatchFailed = failed
	return ti
}

// WithSpanContext extracts trace context from the current span.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		ti.TraceID = span.SpanContext().TraceID().String()
		ti.SpanID = span.SpanContext().SpanID().String()
	}
	return ti
}

// Complete marks the invocation as completed and calculates duration.
// Returns the same ToolInvocation for method chaining.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteWithError marks the invocation as failed with the given error.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// CompleteSuccess marks the invocation as successful.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// AuditLogger provides structured audit logging for tool invocations.
// It wraps slog.Logger with convenience methods for logging tool operations.
type AuditLogger struct {
	logger          *slog.Logger
	includeBoardIDs bool
	enabled         bool
}

// NewAuditLogger creates a new AuditLogger with the given slog.Logger.
// By default, board and item identifiers are not included in logs.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:          logger,
		includeBoardIDs: false,
		enabled:         true,
	}
}

// NewAuditLoggerWithConfig creates a new AuditLogger with the given configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:          logger,
		includeBoardIDs: config.IncludeBoardIDs,
		enabled:         config.Enabled,
	}
}

// SetIncludeBoardIDs sets whether to include board and item identifiers in audit logs.
func (al *AuditLogger) SetIncludeBoardIDs(include bool) {
	al.includeBoardIDs = include
}

// SetEnabled sets whether audit logging is enabled.
func (al *AuditLogger) SetEnabled(enabled bool) {
	al.enabled = enabled
}

// LogToolInvocation logs a tool invocation using the standard log attributes.
// If the logger is configured with IncludeBoardIDs, board and item identifiers
// are logged; otherwise only tool names and outcomes are used.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if !al.enabled {
		return
	}

	var attrs []slog.Attr
	if al.includeBoardIDs {
		attrs = ti.LogAuditAttrs()
	} else {
		attrs = ti.LogAttrs()
	}

	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if ti.Success {
		al.logger.Info("tool_executed", args...)
	} else {
		al.logger.Warn("tool_failed", args...)
	}
}

// LogToolAudit logs a tool invocation with full audit details, including
// board and item identifiers, regardless of the IncludeBoardIDs configuration.
// Use LogToolInvocation for configuration-aware logging.
func (al *AuditLogger) LogToolAudit(ti *ToolInvocation) {
	if !al.enabled {
		return
	}

	attrs := ti.LogAuditAttrs()
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	al.logger.Info("tool_audit", args...)
}
