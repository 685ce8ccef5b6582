package protocol

import (
	"strings"
	"testing"
)

func TestDecodeCallRequestRequiresTool(t *testing.T) {
	_, err := DecodeCallRequest(strings.NewReader(`{"args":{}}`))
	if err == nil {
		t.Fatal("expected an error for a missing tool field")
	}
}

func TestDecodeCallRequestRejectsUnknownFields(t *testing.T) {
	_, err := DecodeCallRequest(strings.NewReader(`{"tool":"aos.show.chassis","bogus":1}`))
	if err == nil {
		t.Fatal("expected an error for an unrecognized field")
	}
}

func TestDecodeCallRequestGeneratesCorrelationID(t *testing.T) {
	req, err := DecodeCallRequest(strings.NewReader(`{"tool":"aos.show.chassis","args":{}}`))
	if err != nil {
		t.Fatalf("DecodeCallRequest: %v", err)
	}
	call := req.ToDomain()
	if call.Context.CorrelationID == "" {
		t.Fatal("expected a generated correlation id when the caller omitted one")
	}
	if call.Tool != "aos.show.chassis" {
		t.Fatalf("Tool = %q, want aos.show.chassis", call.Tool)
	}
}

func TestDecodeCallRequestPreservesCallerCorrelationID(t *testing.T) {
	req, err := DecodeCallRequest(strings.NewReader(`{"tool":"aos.show.chassis","context":{"correlation_id":"abc-123"},"args":{}}`))
	if err != nil {
		t.Fatalf("DecodeCallRequest: %v", err)
	}
	if got := req.ToDomain().Context.CorrelationID; got != "abc-123" {
		t.Fatalf("CorrelationID = %q, want abc-123", got)
	}
}

