package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/tools"
)

// serverName/serverVersion identify this gateway in the MCP handshake.
const (
	serverName    = "aosgwd"
	serverVersion = "1.0.0"
)

// correlationHeader/subjectHeader carry the caller's audit context across
// the SSE transport's two legs (the GET event stream and the POST message
// channel don't share a request), since MCP's own "_meta" convention is
// transport-internal to mcp-go and not something callers can set per tool
// call on this path.
const (
	correlationHeader = "X-Correlation-ID"
	subjectHeader     = "X-Aos-Subject"
)

type ctxKey int

const (
	ctxKeySubject ctxKey = iota
	ctxKeyCorrelation
)

// sseContextFunc stashes the caller's subject/correlation-id headers on the
// context mcp-go threads through to every tool handler for this connection.
func sseContextFunc(ctx context.Context, r *http.Request) context.Context {
	if v := r.Header.Get(subjectHeader); v != "" {
		ctx = context.WithValue(ctx, ctxKeySubject, v)
	}
	if v := r.Header.Get(correlationHeader); v != "" {
		ctx = context.WithValue(ctx, ctxKeyCorrelation, v)
	}
	return ctx
}

// NewMCPServer builds the mark3labs/mcp-go server that backs the SSE
// transport: every catalog entry is registered once as a mcp.Tool backed by
// a handler that runs the call through the same registry.Dispatch every
// other transport uses, so C1-C5 enforcement never depends on which wire
// format the caller spoke.
func NewMCPServer(registry *tools.Registry, logger *slog.Logger) *mcpserver.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	srv := mcpserver.NewMCPServer(serverName, serverVersion)
	for _, entry := range registry.List(tools.ListFull) {
		srv.AddTool(mcpgo.Tool{
			Name:        entry.Name,
			Description: entry.Description,
			InputSchema: toMCPSchema(entry.InputSchema),
		}, dispatchHandler(registry, logger, entry.Name))
	}
	return srv
}

// NewSSEServer wraps srv in mcp-go's standard SSE transport: a GET stream
// at ssePath the client holds open, and a POST message endpoint (handed to
// the client in the stream's "endpoint" event) it sends requests to.
func NewSSEServer(srv *mcpserver.MCPServer, ssePath, messagePath string) *mcpserver.SSEServer {
	return mcpserver.NewSSEServer(srv,
		mcpserver.WithSSEEndpoint(ssePath),
		mcpserver.WithMessageEndpoint(messagePath),
		mcpserver.WithSSEContextFunc(sseContextFunc),
	)
}

func toMCPSchema(schema map[string]any) mcpgo.ToolInputSchema {
	out := mcpgo.ToolInputSchema{Type: "object"}
	if schema == nil {
		return out
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		out.Properties = props
	}
	switch req := schema["required"].(type) {
	case []string:
		out.Required = req
	case []any:
		for _, r := range req {
			if s, ok := r.(string); ok {
				out.Required = append(out.Required, s)
			}
		}
	}
	return out
}

func dispatchHandler(registry *tools.Registry, logger *slog.Logger, toolName string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		call := domain.ToolCall{
			Tool: toolName,
			Args: request.GetArguments(),
			Context: domain.RequestContext{
				Subject:       stringFromCtx(ctx, ctxKeySubject),
				CorrelationID: stringFromCtx(ctx, ctxKeyCorrelation),
			},
		}

		start := time.Now()
		result := registry.Dispatch(ctx, call)

		logger.Info("tool call",
			"tool", call.Tool,
			"subject", call.Context.Subject,
			"correlation_id", call.Context.CorrelationID,
			"status", result.Status,
			"duration_ms", time.Since(start).Milliseconds(),
		)

		return toMCPResult(result), nil
	}
}

func stringFromCtx(ctx context.Context, key ctxKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// toMCPResult renders a domain.ToolResult as mcp-go's own CallToolResult,
// falling back to a JSON dump of data when the tool produced no content
// blocks of its own.
func toMCPResult(result *domain.ToolResult) *mcpgo.CallToolResult {
	if len(result.Content) == 0 && result.Status == "error" && result.Error != nil {
		return mcpgo.NewToolResultError(result.Error.Message)
	}

	content := make([]mcpgo.Content, 0, len(result.Content))
	for _, b := range result.Content {
		content = append(content, mcpgo.NewTextContent(b.Text))
	}
	if len(content) == 0 && result.Data != nil {
		text, err := json.MarshalIndent(result.Data, "", "  ")
		if err != nil {
			text = []byte("{}")
		}
		content = append(content, mcpgo.NewTextContent(string(text)))
	}
	return &mcpgo.CallToolResult{Content: content, IsError: result.Status == "error"}
}
