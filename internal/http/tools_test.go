package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/tools"
)

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		code domain.ErrorCode
		want int
	}{
		{domain.ErrUnknownTool, http.StatusNotFound},
		{domain.ErrInvalidRequest, http.StatusBadRequest},
		{domain.ErrInvalidCommand, http.StatusBadRequest},
		{domain.ErrNotAuthorized, http.StatusForbidden},
		{domain.ErrSSH, http.StatusBadGateway},
		{domain.ErrorCode("something_else"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := errorStatus(c.code); got != c.want {
			t.Errorf("errorStatus(%q) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestHandleListDefaultsToCompactForUnknownMode(t *testing.T) {
	h := NewToolsHandler(tools.NewRegistry(), nil)

	r := httptest.NewRequest(http.MethodGet, "/v1/tools/list?mode=bogus", nil)
	w := httptest.NewRecorder()
	h.handleList(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Tools []tools.CatalogEntry `json:"tools"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Tools) == 0 {
		t.Fatal("expected a non-empty tool catalog")
	}
	for _, entry := range body.Tools {
		if entry.InputSchema != nil {
			t.Fatalf("compact mode should not include input schema, got one for %q", entry.Name)
		}
	}
}

func TestHandleListRejectsNonGET(t *testing.T) {
	h := NewToolsHandler(tools.NewRegistry(), nil)
	r := httptest.NewRequest(http.MethodPost, "/v1/tools/list", nil)
	w := httptest.NewRecorder()
	h.handleList(w, r)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}

func TestHandleCallRejectsNonPOST(t *testing.T) {
	h := NewToolsHandler(tools.NewRegistry(), nil)
	r := httptest.NewRequest(http.MethodGet, "/v1/tools/call", nil)
	w := httptest.NewRecorder()
	h.handleCall(w, r)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}

func TestHandleCallRejectsUnknownTool(t *testing.T) {
	h := NewToolsHandler(tools.NewRegistry(), nil)
	body := `{"tool":"aos.does.not.exist","args":{}}`
	r := httptest.NewRequest(http.MethodPost, "/v1/tools/call", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.handleCall(w, r)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
