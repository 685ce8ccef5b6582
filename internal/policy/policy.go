// Package policy implements command allow/deny enforcement and output
// sanitization (C1): the only barrier between a prompt-driven caller and a
// device shell. It is deliberately regex-only and fails closed.
package policy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
)

var ansiRe = regexp.MustCompile("\x1b\\[[0-?]*[ -/]*[@-~]")

// RedactionRule is the raw config shape for one redaction entry.
type RedactionRule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// Config is the raw (uncompiled) command policy configuration.
type Config struct {
	AllowRegex       []string        `yaml:"allow_regex"`
	DenyRegex        []string        `yaml:"deny_regex,omitempty"`
	MaxCommandLength int             `yaml:"max_command_length"`
	DenyMultiline    bool            `yaml:"deny_multiline"`
	StripANSI        bool            `yaml:"strip_ansi"`
	Redactions       []RedactionRule `yaml:"redactions,omitempty"`
}

// DefaultConfig mirrors the source's CommandPolicyConfig defaults.
func DefaultConfig() Config {
	return Config{
		AllowRegex:       []string{`^show\s+.*$`, `^ping\s+.*$`, `^traceroute\s+.*$`},
		DenyRegex:        nil,
		MaxCommandLength: 512,
		DenyMultiline:    true,
		StripANSI:        true,
		Redactions: []RedactionRule{
			{Pattern: `(?i)(password\s+)(\S+)`, Replacement: "${1}***"},
			{Pattern: `(?i)(community\s+)(\S+)`, Replacement: "${1}***"},
		},
	}
}

// Compile pre-compiles every regex in cfg into an immutable CompiledPolicy.
// Called once per process at startup.
func Compile(cfg Config) (*domain.CompiledPolicy, error) {
	allow := make([]*regexp.Regexp, 0, len(cfg.AllowRegex))
	for _, p := range cfg.AllowRegex {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile allow regex %q: %w", p, err)
		}
		allow = append(allow, re)
	}

	deny := make([]*regexp.Regexp, 0, len(cfg.DenyRegex))
	for _, p := range cfg.DenyRegex {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile deny regex %q: %w", p, err)
		}
		deny = append(deny, re)
	}

	redactions := make([]domain.Redaction, 0, len(cfg.Redactions))
	for _, r := range cfg.Redactions {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile redaction regex %q: %w", r.Pattern, err)
		}
		redactions = append(redactions, domain.Redaction{Pattern: re, Replacement: r.Replacement})
	}

	return &domain.CompiledPolicy{
		Allow:            allow,
		Deny:             deny,
		MaxCommandLength: cfg.MaxCommandLength,
		DenyMultiline:    cfg.DenyMultiline,
		StripANSI:        cfg.StripANSI,
		Redactions:       redactions,
	}, nil
}

// anchoredMatch reports whether re matches cmd starting at position 0,
// mirroring Python's re.Pattern.match (not re.search).
func anchoredMatch(re *regexp.Regexp, cmd string) bool {
	loc := re.FindStringIndex(cmd)
	return loc != nil && loc[0] == 0
}

// Sanitize validates and trims a command against the compiled policy.
// It fails closed: anything not explicitly allowed is rejected.
func Sanitize(command string, p *domain.CompiledPolicy) (string, error) {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return "", domain.NewToolError(domain.ErrInvalidCommand, "command must be a non-empty string")
	}

	if p.DenyMultiline && (strings.Contains(trimmed, "\n") || strings.Contains(trimmed, "\r")) {
		return "", domain.NewToolError(domain.ErrInvalidCommand, "multiline commands are not allowed")
	}

	if len(trimmed) > p.MaxCommandLength {
		return "", domain.NewToolError(domain.ErrInvalidCommand, fmt.Sprintf("command too long (>%d)", p.MaxCommandLength))
	}

	for _, ch := range trimmed {
		if ch < 0x20 && ch != '\t' {
			return "", domain.NewToolError(domain.ErrInvalidCommand, "control characters are not allowed")
		}
	}

	allowed := false
	for _, re := range p.Allow {
		if anchoredMatch(re, trimmed) {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", domain.NewToolError(domain.ErrInvalidCommand, "command rejected by allowlist policy")
	}

	for _, re := range p.Deny {
		if anchoredMatch(re, trimmed) {
			return "", domain.NewToolError(domain.ErrInvalidCommand, "command rejected by denylist policy")
		}
	}

	return trimmed, nil
}

// StripANSI removes CSI escape sequences (ESC [ params intermediates final).
func StripANSI(text string) string {
	return ansiRe.ReplaceAllString(text, "")
}

// ApplyRedactions runs every configured redaction regex over text, in order.
func ApplyRedactions(text string, redactions []domain.Redaction) string {
	out := text
	for _, r := range redactions {
		out = r.Pattern.ReplaceAllString(out, r.Replacement)
	}
	return out
}

// SanitizeOutput strips ANSI (if configured) and applies redactions, in that
// order, to a single stream of command output.
func SanitizeOutput(text string, p *domain.CompiledPolicy) string {
	out := text
	if p.StripANSI {
		out = StripANSI(out)
	}
	out = ApplyRedactions(out, p.Redactions)
	return out
}
