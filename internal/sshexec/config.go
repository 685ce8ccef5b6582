package sshexec

import "time"

// Config mirrors the original SSHConfig: connection/auth timeouts, command
// execution limits, and host-key verification mode.
type Config struct {
	StrictHostKeyChecking bool   `yaml:"strict_host_key_checking"`
	KnownHostsFile        string `yaml:"known_hosts_file"`

	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	BannerTimeout  time.Duration `yaml:"banner_timeout"`
	AuthTimeout    time.Duration `yaml:"auth_timeout"`

	DefaultCommandTimeout time.Duration `yaml:"default_command_timeout"`
	MaxOutputBytes        int           `yaml:"max_output_bytes"`

	PreCommands []string `yaml:"pre_commands,omitempty"`

	KeepaliveInterval time.Duration `yaml:"keepalive_interval"` // 0 disables keepalive
}

// DefaultConfig mirrors the source's SSHConfig defaults.
func DefaultConfig() Config {
	return Config{
		StrictHostKeyChecking: true,
		ConnectTimeout:        10 * time.Second,
		BannerTimeout:         10 * time.Second,
		AuthTimeout:           10 * time.Second,
		DefaultCommandTimeout: 30 * time.Second,
		MaxOutputBytes:        200_000,
		KeepaliveInterval:     30 * time.Second,
	}
}
