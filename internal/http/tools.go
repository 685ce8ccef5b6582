package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/tools"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/pkg/protocol"
)

// ToolsHandler serves the unary JSON-over-HTTP tool surface: a single call
// endpoint and a catalog listing.
type ToolsHandler struct {
	registry *tools.Registry
	logger   *slog.Logger
}

// NewToolsHandler builds a ToolsHandler around registry.
func NewToolsHandler(registry *tools.Registry, logger *slog.Logger) *ToolsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ToolsHandler{registry: registry, logger: logger}
}

func (h *ToolsHandler) handleCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := protocol.DecodeCallRequest(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, domain.Fail("", domain.NewToolError(domain.ErrInvalidRequest, err.Error())))
		return
	}

	call := req.ToDomain()
	start := time.Now()
	result := h.registry.Dispatch(r.Context(), call)

	h.logger.Info("tool call",
		"tool", call.Tool,
		"subject", call.Context.Subject,
		"correlation_id", call.Context.CorrelationID,
		"status", result.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	status := http.StatusOK
	if result.Status == "error" {
		status = errorStatus(result.Error.Code)
	}
	writeJSON(w, status, result)
}

func (h *ToolsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	mode := tools.ToolListMode(r.URL.Query().Get("mode"))
	switch mode {
	case tools.ListUltraCompact, tools.ListFull:
	default:
		mode = tools.ListCompact
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": h.registry.List(mode)})
}

// errorStatus maps a ToolError code onto the HTTP status that best reflects
// it; unrecognized codes fall back to 500.
func errorStatus(code domain.ErrorCode) int {
	switch code {
	case domain.ErrUnknownTool:
		return http.StatusNotFound
	case domain.ErrInvalidRequest, domain.ErrInvalidCommand:
		return http.StatusBadRequest
	case domain.ErrNotAuthorized:
		return http.StatusForbidden
	case domain.ErrSSH:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
