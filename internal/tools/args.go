package tools

import (
	"fmt"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
)

// argReader validates a raw args map against an explicit allow-list,
// replacing the source's dynamic decorator-based model validation: reject
// unknown fields, enforce required fields and types, up front, before any
// command is built.
type argReader struct {
	raw     map[string]any
	allowed map[string]bool
}

func newArgs(raw map[string]any, allowed ...string) (*argReader, *domain.ToolError) {
	set := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		set[k] = true
	}
	for k := range raw {
		if !set[k] {
			return nil, domain.NewToolError(domain.ErrInvalidRequest, fmt.Sprintf("unknown argument: %s", k))
		}
	}
	return &argReader{raw: raw, allowed: set}, nil
}

func (a *argReader) str(key string, required bool) (string, *domain.ToolError) {
	v, ok := a.raw[key]
	if !ok || v == nil {
		if required {
			return "", domain.NewToolError(domain.ErrInvalidRequest, fmt.Sprintf("missing required argument: %s", key))
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", domain.NewToolError(domain.ErrInvalidRequest, fmt.Sprintf("argument %s must be a string", key))
	}
	if required && s == "" {
		return "", domain.NewToolError(domain.ErrInvalidRequest, fmt.Sprintf("argument %s must be non-empty", key))
	}
	return s, nil
}

func (a *argReader) intDefault(key string, def int) (int, *domain.ToolError) {
	v, ok := a.raw[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, domain.NewToolError(domain.ErrInvalidRequest, fmt.Sprintf("argument %s must be a number", key))
	}
}

func (a *argReader) boolDefault(key string, def bool) (bool, *domain.ToolError) {
	v, ok := a.raw[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, domain.NewToolError(domain.ErrInvalidRequest, fmt.Sprintf("argument %s must be a boolean", key))
	}
	return b, nil
}

// credentialFromArgs builds an optional inline credential override from
// "username"/"password" args, used by handlers that allow a per-call
// credential instead of relying on zone/default resolution.
func credentialFromArgs(username, password string) (string, *domain.Credential) {
	if password == "" {
		return username, nil
	}
	return username, &domain.Credential{Kind: domain.CredentialPasswordInline, Password: password}
}

// buildDevice constructs the transient Device used for exactly one call.
func buildDevice(host string, port int, username string, cred *domain.Credential, jump string) domain.Device {
	return domain.Device{
		ID:         host,
		Host:       host,
		Port:       port,
		Username:   username,
		Credential: cred,
		Jump:       jump,
	}
}

func textBlock(text string) domain.ContentBlock {
	return domain.ContentBlock{Type: "text", Text: text}
}
