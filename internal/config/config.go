package config

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/policy"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/sshexec"
)

// ServerConfig is the HTTP/SSE transport adapter's own configuration (C6).
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	BearerTokenEnv string   `yaml:"bearer_token_env,omitempty"`
	AllowedCIDRs   []string `yaml:"allowed_cidrs,omitempty"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`

	// BearerToken is resolved from BearerTokenEnv at load time; never
	// serialized back out, never logged.
	BearerToken string `yaml:"-"`
}

// LoggingConfig controls log/slog's handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// DiagnosticsConfig holds the configurable CLI templates used by the
// aos.diag.ping/aos.diag.traceroute tools, each containing a "{destination}"
// placeholder substituted before sanitize.
type DiagnosticsConfig struct {
	PingTemplate       string `yaml:"ping_template"`
	TracerouteTemplate string `yaml:"traceroute_template"`
}

// TracingConfig controls the OpenTelemetry tracer wired around C4 SSH calls
// and C5 tool dispatch. Disabled by default; when enabled without an
// explicit endpoint, spans export to the OTLP/HTTP collector's documented
// default (localhost:4318).
type TracingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ServiceName  string `yaml:"service_name,omitempty"`
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty"`
}

// Config is the root configuration for the gateway.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	SSH         sshexec.Config    `yaml:"ssh"`
	Policy      policy.Config     `yaml:"policy"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Tracing     TracingConfig     `yaml:"tracing"`

	Devices   []domain.Device   `yaml:"devices,omitempty"`
	JumpHosts []domain.JumpHost `yaml:"jump_hosts,omitempty"`

	DefaultUsername string             `yaml:"default_username,omitempty"`
	DefaultAuth     *domain.Credential `yaml:"default_auth,omitempty"`

	ZoneCredentials domain.ZoneCredentialMap `yaml:"zone_credentials,omitempty"`

	mu sync.RWMutex
}

// Default returns a Config with sensible defaults: all-interfaces server,
// info/json logging, and the SSH/policy package defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8443,
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		SSH:     sshexec.DefaultConfig(),
		Policy:  policy.DefaultConfig(),
		Diagnostics: DiagnosticsConfig{
			PingTemplate:       "ping {destination} count {count}",
			TracerouteTemplate: "traceroute {destination}",
		},
		Tracing: TracingConfig{ServiceName: "aosgwd"},
	}
}

// ReplaceFrom copies all data fields from src into c, preserving c's mutex.
// Used by the hot-reload watcher to swap in a freshly parsed document
// without handing out a new pointer to callers that cached the old one.
func (c *Config) ReplaceFrom(src *Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Server = src.Server
	c.Logging = src.Logging
	c.SSH = src.SSH
	c.Policy = src.Policy
	c.Diagnostics = src.Diagnostics
	c.Tracing = src.Tracing
	c.Devices = src.Devices
	c.JumpHosts = src.JumpHosts
	c.DefaultUsername = src.DefaultUsername
	c.DefaultAuth = src.DefaultAuth
	c.ZoneCredentials = src.ZoneCredentials
}

// replacePolicyAndZones swaps in a freshly loaded policy/zone section only,
// leaving the server/SSH/device sections untouched. Used by the fsnotify
// watcher so a reload can never silently change the listen address, the
// device inventory, or any secret.
func (c *Config) replacePolicyAndZones(src *Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Policy = src.Policy
	c.ZoneCredentials = src.ZoneCredentials
}

// JumpHostsByName indexes JumpHosts for the SSH executor.
func (c *Config) JumpHostsByName() map[string]domain.JumpHost {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]domain.JumpHost, len(c.JumpHosts))
	for _, jh := range c.JumpHosts {
		out[jh.Name] = jh
	}
	return out
}

// CompiledPolicy pre-compiles the current policy section.
func (c *Config) CompiledPolicy() (*domain.CompiledPolicy, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return policy.Compile(c.Policy)
}

// ZoneMap returns a copy of the zone credential map with RawZones resolved
// into the int-keyed form the resolver expects.
func (c *Config) ZoneMap() *domain.ZoneCredentialMap {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m := c.ZoneCredentials
	m.Finalize()
	return &m
}

// DeviceList returns a copy of the device inventory.
func (c *Config) DeviceList() []domain.Device {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Device, len(c.Devices))
	copy(out, c.Devices)
	return out
}

// Hash returns a short digest of the config document (the first 8 bytes of
// its sha256, hex-encoded); cmd/serve.go logs it on load and on every reload.
func (c *Config) Hash() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, _ := yaml.Marshal(c)
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:8])
}
