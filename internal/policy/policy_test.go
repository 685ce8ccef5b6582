package policy

import (
	"errors"
	"strings"
	"testing"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
)

func compileDefault(t *testing.T) *domain.CompiledPolicy {
	t.Helper()
	p, err := Compile(DefaultConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return p
}

func codeOf(t *testing.T, err error) domain.ErrorCode {
	t.Helper()
	var te *domain.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected a *domain.ToolError, got %T: %v", err, err)
	}
	return te.Code
}

func TestSanitizeAllowsMatchingCommand(t *testing.T) {
	p := compileDefault(t)
	got, err := Sanitize("show chassis", p)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if got != "show chassis" {
		t.Fatalf("got %q, want %q", got, "show chassis")
	}
}

func TestSanitizeTrimsWhitespace(t *testing.T) {
	p := compileDefault(t)
	got, err := Sanitize("  show chassis  ", p)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if got != "show chassis" {
		t.Fatalf("got %q, want trimmed command", got)
	}
}

func TestSanitizeRejectsEmptyCommand(t *testing.T) {
	p := compileDefault(t)
	_, err := Sanitize("   ", p)
	if codeOf(t, err) != domain.ErrInvalidCommand {
		t.Fatalf("expected ErrInvalidCommand for an empty command")
	}
}

func TestSanitizeRejectsCommandNotOnAllowlist(t *testing.T) {
	p := compileDefault(t)
	_, err := Sanitize("reload all", p)
	if codeOf(t, err) != domain.ErrInvalidCommand {
		t.Fatalf("expected ErrInvalidCommand for a non-allowlisted command")
	}
}

func TestSanitizeRejectsMultilineWhenConfigured(t *testing.T) {
	p := compileDefault(t)
	_, err := Sanitize("show chassis\nreload all", p)
	if codeOf(t, err) != domain.ErrInvalidCommand {
		t.Fatalf("expected ErrInvalidCommand for a multiline command")
	}
}

func TestSanitizeRejectsOverlongCommand(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCommandLength = 10
	p, err := Compile(cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	_, err = Sanitize("show chassis details extended", p)
	if codeOf(t, err) != domain.ErrInvalidCommand {
		t.Fatalf("expected ErrInvalidCommand for an overlong command")
	}
}

func TestSanitizeRejectsControlCharacters(t *testing.T) {
	p := compileDefault(t)
	_, err := Sanitize("show chassis\x07", p)
	if codeOf(t, err) != domain.ErrInvalidCommand {
		t.Fatalf("expected ErrInvalidCommand for a control character")
	}
}

func TestSanitizeRejectsDenylistedCommand(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowRegex = []string{`^show\s+.*$`}
	cfg.DenyRegex = []string{`^show\s+running-config.*$`}
	p, err := Compile(cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	_, err = Sanitize("show running-config", p)
	if codeOf(t, err) != domain.ErrInvalidCommand {
		t.Fatalf("expected ErrInvalidCommand for a denylisted command")
	}
}

func TestSanitizeAllowMatchIsAnchoredAtStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowRegex = []string{`^show\s+chassis$`}
	p, err := Compile(cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := Sanitize("please show chassis", p); err == nil {
		t.Fatal("expected the allow regex to anchor at the start of the command")
	}
}

func TestStripANSIRemovesEscapeSequences(t *testing.T) {
	in := "\x1b[32mOK\x1b[0m"
	if got := StripANSI(in); got != "OK" {
		t.Fatalf("StripANSI(%q) = %q, want OK", in, got)
	}
}

func TestSanitizeOutputRedactsConfiguredPatterns(t *testing.T) {
	p := compileDefault(t)
	in := "snmp community SECRET123 ro"
	got := SanitizeOutput(in, p)
	if got == in {
		t.Fatal("expected the community string to be redacted")
	}
	if !strings.Contains(got, "community") || !strings.Contains(got, "***") {
		t.Fatalf("got %q, want the secret replaced with ***", got)
	}
}

func TestSanitizeOutputSkipsANSIStripWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StripANSI = false
	p, err := Compile(cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	in := "\x1b[32mOK\x1b[0m"
	if got := SanitizeOutput(in, p); got != in {
		t.Fatalf("expected ANSI left intact when StripANSI is disabled, got %q", got)
	}
}
