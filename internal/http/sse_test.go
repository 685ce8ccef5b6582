package http

import (
	"testing"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/tools"
)

func TestToMCPSchemaCopiesPropertiesAndRequired(t *testing.T) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"host": map[string]any{"type": "string"}},
		"required":   []string{"host"},
	}
	out := toMCPSchema(schema)
	if out.Type != "object" {
		t.Fatalf("Type = %q, want object", out.Type)
	}
	if _, ok := out.Properties["host"]; !ok {
		t.Fatal("expected the host property to carry over")
	}
	if len(out.Required) != 1 || out.Required[0] != "host" {
		t.Fatalf("Required = %v, want [host]", out.Required)
	}
}

func TestToMCPSchemaHandlesNilSchema(t *testing.T) {
	out := toMCPSchema(nil)
	if out.Type != "object" {
		t.Fatalf("Type = %q, want object for a nil schema", out.Type)
	}
	if out.Properties != nil || out.Required != nil {
		t.Fatal("expected a nil schema to produce empty properties/required")
	}
}

func TestToMCPResultRendersContentBlocks(t *testing.T) {
	result := domain.OK("aos.show.chassis", nil, []domain.ContentBlock{{Type: "text", Text: "hello"}}, nil)
	out := toMCPResult(result)
	if out.IsError {
		t.Fatal("expected IsError=false for a successful result")
	}
	if len(out.Content) != 1 {
		t.Fatalf("got %d content entries, want 1", len(out.Content))
	}
}

func TestToMCPResultRendersErrorMessage(t *testing.T) {
	result := domain.Fail("aos.show.chassis", &domain.ToolError{Code: domain.ErrSSH, Message: "connection refused"})
	out := toMCPResult(result)
	if !out.IsError {
		t.Fatal("expected IsError=true for a failed result")
	}
	if len(out.Content) == 0 {
		t.Fatal("expected the error message to be rendered as content")
	}
}

func TestToMCPResultFallsBackToDataDump(t *testing.T) {
	result := domain.OK("aos.show.chassis", map[string]any{"model": "OS6900"}, nil, nil)
	out := toMCPResult(result)
	if len(out.Content) != 1 {
		t.Fatalf("got %d content entries, want 1 from the data fallback", len(out.Content))
	}
}

func TestNewMCPServerRegistersCatalogTools(t *testing.T) {
	registry := tools.NewRegistry()
	srv := NewMCPServer(registry, nil)
	if srv == nil {
		t.Fatal("expected a non-nil MCP server")
	}
}
