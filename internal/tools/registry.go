// Package tools implements the Tool Registry & Dispatcher (C5): a static,
// compile-time map from tool name to handler, argument-struct validation,
// and pure orchestration of C1 (policy) -> C3 (zone credentials) -> C4 (SSH
// execution) -> C2 (parsing) for each catalog entry. Each handler is a thin
// orchestrator: it never touches SSH or regex directly, only the shared
// execCtx/Service primitives.
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/tracing"
)

// HandlerFunc executes one tool call against an already-validated Service.
type HandlerFunc func(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult

type entry struct {
	tool    domain.Tool
	handler HandlerFunc
}

// Registry is the static tool catalog, built once at startup.
type Registry struct {
	entries map[string]entry
	order   []string
}

// NewRegistry builds the full catalog of spec-defined tools.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]entry)}
	registerReadonlyTools(r)
	registerPoETools(r)
	registerFactsTools(r)
	registerPortTools(r)
	registerVLANTools(r)
	registerRoutingTools(r)
	registerSpantreeTools(r)
	registerBackupTools(r)
	registerHealthTools(r)
	registerMACTools(r)
	registerLACPTools(r)
	registerNTPTools(r)
	registerDHCPTools(r)
	registerLLDPTools(r)
	return r
}

func (r *Registry) register(t domain.Tool, h HandlerFunc) {
	r.entries[t.Name] = entry{tool: t, handler: h}
	r.order = append(r.order, t.Name)
}

// Dispatch runs the named tool, returning unknown_tool if it is not
// cataloged. This is the single entry point both the unary HTTP handler and
// the SSE JSON-RPC handler call through.
func (r *Registry) Dispatch(ctx context.Context, call domain.ToolCall) *domain.ToolResult {
	ctx, span := tracing.StartToolSpan(ctx, call.Tool)

	e, ok := r.entries[call.Tool]
	if !ok {
		result := domain.Fail(call.Tool, domain.NewToolError(domain.ErrUnknownTool, "tool not found: "+call.Tool))
		tracing.EndWithError(span, fmt.Errorf("%s", result.Error.Message))
		return result
	}
	result := e.handler(ctx, globalService, call)
	if result.Error != nil {
		tracing.EndWithError(span, fmt.Errorf("%s", result.Error.Message))
	} else {
		span.End()
	}
	return result
}

// DispatchWith runs the named tool against an explicit Service, for tests
// that swap in a fake executor.
func (r *Registry) DispatchWith(ctx context.Context, svc *Service, call domain.ToolCall) *domain.ToolResult {
	e, ok := r.entries[call.Tool]
	if !ok {
		return domain.Fail(call.Tool, domain.NewToolError(domain.ErrUnknownTool, "tool not found: "+call.Tool))
	}
	return e.handler(ctx, svc, call)
}

// ToolListMode controls how much of the catalog List renders.
type ToolListMode string

const (
	ListUltraCompact ToolListMode = "ultra_compact" // names only
	ListCompact      ToolListMode = "compact"        // name + short description
	ListFull         ToolListMode = "full"            // name + description + schemas
)

// CatalogEntry is one row of a tool-list response.
type CatalogEntry struct {
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	InputSchema  map[string]any `json:"input_schema,omitempty"`
	OutputSchema map[string]any `json:"output_schema,omitempty"`
}

// List renders the catalog at the requested detail level, in registration
// order (stable across calls within one process).
func (r *Registry) List(mode ToolListMode) []CatalogEntry {
	out := make([]CatalogEntry, 0, len(r.order))
	for _, name := range r.order {
		e := r.entries[name]
		switch mode {
		case ListUltraCompact:
			out = append(out, CatalogEntry{Name: e.tool.Name})
		case ListFull:
			out = append(out, CatalogEntry{
				Name:         e.tool.Name,
				Description:  e.tool.Description,
				InputSchema:  e.tool.InputSchema,
				OutputSchema: e.tool.OutputSchema,
			})
		default: // compact
			out = append(out, CatalogEntry{Name: e.tool.Name, Description: e.tool.Description})
		}
	}
	return out
}

// defaultCommandTimeout is used by handlers that do not need a bespoke one.
const defaultCommandTimeout = 30 * time.Second
