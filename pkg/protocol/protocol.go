// Package protocol defines the request shape of the plain unary JSON
// transport at PathToolsCall. The SSE transport at PathSSE uses mcp-go's own
// message types, which are not defined here. Response bodies for the unary path reuse domain.ToolResult directly since
// its json tags already match the documented wire shape.
package protocol

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
)

// Route paths served by internal/gateway and internal/http.
const (
	PathToolsCall = "/v1/tools/call"
	PathToolsList = "/v1/tools/list"
	PathSSE       = "/mcp/sse"
	PathHealthz   = "/healthz"
)

// RequestContext is the wire form of domain.RequestContext: every field is
// caller-optional, decoded with explicit snake_case tags since Go's
// case-insensitive field matching does not bridge "correlation_id" to
// CorrelationID on its own.
type RequestContext struct {
	Subject       string `json:"subject,omitempty"`
	Environment   string `json:"environment,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
	Client        string `json:"client,omitempty"`
}

// CallRequest is the decoded body of a POST to PathToolsCall.
type CallRequest struct {
	Context RequestContext `json:"context"`
	Tool    string         `json:"tool"`
	Args    map[string]any `json:"args"`
}

// ToDomain converts a decoded CallRequest into the domain.ToolCall the
// dispatcher expects, generating a correlation id when the caller omitted
// one so every downstream log line still has something to key on.
func (r CallRequest) ToDomain() domain.ToolCall {
	return toDomain(r.Context, r.Tool, r.Args)
}

func toDomain(wc RequestContext, tool string, args map[string]any) domain.ToolCall {
	ctx := domain.RequestContext{
		Subject:       wc.Subject,
		Environment:   wc.Environment,
		CorrelationID: wc.CorrelationID,
		Client:        wc.Client,
	}
	if ctx.CorrelationID == "" {
		ctx.CorrelationID = uuid.NewString()
	}
	return domain.ToolCall{Context: ctx, Tool: tool, Args: args}
}

// DecodeCallRequest decodes a tool-call body, rejecting a missing tool name
// up front instead of letting the dispatcher report unknown_tool for "".
func DecodeCallRequest(body io.Reader) (CallRequest, error) {
	var req CallRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return CallRequest{}, fmt.Errorf("decode tool-call request: %w", err)
	}
	if req.Tool == "" {
		return CallRequest{}, fmt.Errorf("missing required field: tool")
	}
	return req, nil
}
