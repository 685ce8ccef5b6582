package http

import (
	"log/slog"
	"net/http"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/config"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/tools"
)

// ssePath/messagePath are the two legs of mcp-go's standard SSE transport:
// callers hold ssePath open with GET and POST JSON-RPC requests to
// messagePath (handed to them in the stream's "endpoint" event).
const (
	ssePath     = "/mcp/sse"
	messagePath = "/mcp/message"
)

// RegisterRoutes wires the full C6 HTTP surface onto mux: an unauthenticated
// liveness probe, the CIDR/bearer/rate-limit-guarded tool-call/tool-list
// unary endpoints, and the mark3labs/mcp-go-backed SSE transport.
func RegisterRoutes(mux *http.ServeMux, cfg *config.ServerConfig, registry *tools.Registry, limiter RateLimiter, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	mux.HandleFunc("GET /healthz", handleHealthz)

	toolsH := NewToolsHandler(registry, logger)
	mux.HandleFunc("POST /v1/tools/call", guard(cfg, limiter, logger, toolsH.handleCall))
	mux.HandleFunc("GET /v1/tools/list", guard(cfg, limiter, logger, toolsH.handleList))

	sseServer := NewSSEServer(NewMCPServer(registry, logger), ssePath, messagePath)
	mux.Handle("/mcp/", guard(cfg, limiter, logger, sseServer.ServeHTTP))
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
