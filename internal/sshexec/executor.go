// Package sshexec implements the SSH Executor (C4): open a session (direct
// or via jump host), run one command with a deadline and output cap, and
// return stdout/stderr/exit — or fail with ssh_error.
package sshexec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/tracing"
)

// ZoneResolver is the narrow interface C4 needs from C3; satisfied by
// *zoneauth.Resolver. Kept as an interface so tests can fake it. Aliased to
// domain.ZoneResolver so every package that passes a zone resolver around
// names the identical type.
type ZoneResolver = domain.ZoneResolver

// Executor runs sanitized commands against devices over SSH.
type Executor struct {
	cfg       Config
	jumpHosts map[string]domain.JumpHost

	defaultUsername string
	defaultAuth      *domain.Credential

	logger *slog.Logger
}

// New builds an Executor. jumpHosts keys are jump-host names as referenced
// by Device.Jump.
func New(cfg Config, jumpHosts map[string]domain.JumpHost, defaultUsername string, defaultAuth *domain.Credential, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{cfg: cfg, jumpHosts: jumpHosts, defaultUsername: defaultUsername, defaultAuth: defaultAuth, logger: logger}
}

// resolveUsername follows the precedence order: device.Username, zone
// resolver, process default, AOS_DEVICE_USERNAME.
func (e *Executor) resolveUsername(device domain.Device, zr ZoneResolver) (string, error) {
	if device.Username != "" {
		return device.Username, nil
	}
	if zr != nil {
		if creds, ok := zr.Primary(device.Host); ok && creds.Username != "" {
			return creds.Username, nil
		}
	}
	if e.defaultUsername != "" {
		return e.defaultUsername, nil
	}
	if v := os.Getenv("AOS_DEVICE_USERNAME"); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("missing SSH username for device %q: set device.username or export AOS_DEVICE_USERNAME", device.ID)
}

// resolveAuth follows the precedence order: device.Credential, zone
// resolver (as an inline password), process default, AOS_DEVICE_PASSWORD.
func (e *Executor) resolveAuth(device domain.Device, zr ZoneResolver) (domain.Credential, error) {
	if device.Credential != nil {
		return *device.Credential, nil
	}
	if zr != nil {
		if creds, ok := zr.Primary(device.Host); ok && creds.Password != "" {
			return domain.Credential{Kind: domain.CredentialPasswordInline, Password: creds.Password}, nil
		}
	}
	if e.defaultAuth != nil {
		return *e.defaultAuth, nil
	}
	if os.Getenv("AOS_DEVICE_PASSWORD") == "" {
		return domain.Credential{}, fmt.Errorf("missing SSH password for device %q: set device.auth or export AOS_DEVICE_PASSWORD", device.ID)
	}
	return domain.Credential{Kind: domain.CredentialPasswordEnv, PasswordEnv: "AOS_DEVICE_PASSWORD"}, nil
}

func authMethods(cred domain.Credential) ([]ssh.AuthMethod, error) {
	switch cred.Kind {
	case domain.CredentialPasswordEnv:
		pw := os.Getenv(cred.PasswordEnv)
		if pw == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", cred.PasswordEnv)
		}
		return []ssh.AuthMethod{ssh.Password(pw)}, nil
	case domain.CredentialPasswordInline:
		return []ssh.AuthMethod{ssh.Password(cred.Password)}, nil
	case domain.CredentialPrivateKeyFile:
		raw, err := os.ReadFile(cred.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read private key file: %w", err)
		}
		var signer ssh.Signer
		if cred.PassphraseEnv != "" {
			pass := os.Getenv(cred.PassphraseEnv)
			if pass == "" {
				return nil, fmt.Errorf("missing required environment variable: %s", cred.PassphraseEnv)
			}
			signer, err = ssh.ParsePrivateKeyWithPassphrase(raw, []byte(pass))
		} else {
			signer, err = ssh.ParsePrivateKey(raw)
		}
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
	default:
		return nil, fmt.Errorf("unsupported credential kind: %s", cred.Kind)
	}
}

// dialTCP opens a raw TCP connection, honoring ctx's deadline and the connect
// timeout, to addr — either directly or through an existing jump conn.
func dialTCP(ctx context.Context, jumpClient *ssh.Client, addr string, connectTimeout time.Duration) (net.Conn, error) {
	if jumpClient != nil {
		return jumpClient.DialContext(ctx, "tcp", addr)
	}
	d := net.Dialer{Timeout: connectTimeout}
	return d.DialContext(ctx, "tcp", addr)
}

func (e *Executor) buildClientConfig(username string, cred domain.Credential) (*ssh.ClientConfig, error) {
	methods, err := authMethods(cred)
	if err != nil {
		return nil, err
	}
	cb, err := hostKeyCallback(e.cfg)
	if err != nil {
		return nil, err
	}
	return &ssh.ClientConfig{
		User:            username,
		Auth:            methods,
		HostKeyCallback: cb,
		Timeout:         e.cfg.BannerTimeout,
	}, nil
}

func (e *Executor) connect(ctx context.Context, jumpClient *ssh.Client, host string, port int, username string, cred domain.Credential) (*ssh.Client, error) {
	cfg, err := e.buildClientConfig(username, cred)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	connCtx := ctx
	var cancel context.CancelFunc
	if e.cfg.ConnectTimeout > 0 {
		connCtx, cancel = context.WithTimeout(ctx, e.cfg.ConnectTimeout)
		defer cancel()
	}

	conn, err := dialTCP(connCtx, jumpClient, addr, e.cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}

	if e.cfg.AuthTimeout > 0 {
		deadline := time.Now().Add(e.cfg.AuthTimeout)
		_ = conn.SetDeadline(deadline)
		defer conn.SetDeadline(time.Time{})
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	client := ssh.NewClient(clientConn, chans, reqs)

	if e.cfg.KeepaliveInterval > 0 {
		go e.keepalive(client, e.cfg.KeepaliveInterval)
	}

	return client, nil
}

func (e *Executor) keepalive(client *ssh.Client, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		if _, _, err := client.SendRequest("keepalive@openssh.com", true, nil); err != nil {
			return
		}
	}
}

// readLimited reads up to limit+1 bytes from r, reporting truncation if more
// was available.
func readLimited(r io.Reader, limit int) (string, bool) {
	var buf bytes.Buffer
	_, _ = io.CopyN(&buf, r, int64(limit+1))
	data := buf.Bytes()
	truncated := len(data) > limit
	if truncated {
		data = data[:limit]
	}
	return string(data), truncated
}

// Run executes a single, already-sanitized command against device.
func (e *Executor) Run(ctx context.Context, device domain.Device, command string, timeout time.Duration, zr ZoneResolver) (result *domain.CommandResult, runErr error) {
	ctx, span := tracing.StartSSHSpan(ctx, device.Host, command)
	defer func() { tracing.EndWithError(span, runErr) }()

	start := time.Now()

	if timeout <= 0 {
		timeout = e.cfg.DefaultCommandTimeout
	}

	username, err := e.resolveUsername(device, zr)
	if err != nil {
		return nil, domain.NewToolError(domain.ErrSSH, err.Error())
	}
	cred, err := e.resolveAuth(device, zr)
	if err != nil {
		return nil, domain.NewToolError(domain.ErrSSH, err.Error())
	}

	var jumpClient *ssh.Client
	if device.Jump != "" {
		jump, ok := e.jumpHosts[device.Jump]
		if !ok {
			return nil, domain.NewToolError(domain.ErrSSH, fmt.Sprintf("unknown jump host: %s", device.Jump))
		}
		jc, err := e.connect(ctx, nil, jump.Host, jump.Port, jump.Username, jump.Credential)
		if err != nil {
			return nil, domain.NewToolError(domain.ErrSSH, fmt.Sprintf("jump host connect failed: %v", err))
		}
		jumpClient = jc
		defer jumpClient.Close()
	}

	client, err := e.connect(ctx, jumpClient, device.Host, device.Port, username, cred)
	if err != nil {
		return nil, domain.NewToolError(domain.ErrSSH, fmt.Sprintf("connect failed: %v", err))
	}
	defer client.Close()

	for _, pre := range e.cfg.PreCommands {
		if pre == "" {
			continue
		}
		if err := e.runPreCommand(client, pre, timeout); err != nil {
			e.logger.Warn("sshexec: pre-command failed, continuing", "command", pre, "error", err)
		}
	}

	result, err := e.runCommand(ctx, client, command, timeout)
	if err != nil {
		return nil, domain.NewToolError(domain.ErrSSH, err.Error())
	}
	result.DurationMS = time.Since(start).Milliseconds()
	return result, nil
}

func (e *Executor) runPreCommand(client *ssh.Client, cmd string, timeout time.Duration) error {
	session, err := client.NewSession()
	if err != nil {
		return err
	}
	defer session.Close()
	done := make(chan error, 1)
	go func() { done <- session.Run(cmd) }()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		session.Close()
		return fmt.Errorf("pre-command timed out")
	}
}

func (e *Executor) runCommand(ctx context.Context, client *ssh.Client, command string, timeout time.Duration) (*domain.CommandResult, error) {
	session, err := client.NewSession()
	if err != nil {
		return nil, err
	}
	defer session.Close()

	stdoutPipe, err := session.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderrPipe, err := session.StderrPipe()
	if err != nil {
		return nil, err
	}

	if err := session.Start(command); err != nil {
		return nil, err
	}

	type readOut struct {
		text      string
		truncated bool
	}
	stdoutCh := make(chan readOut, 1)
	stderrCh := make(chan readOut, 1)
	go func() {
		t, tr := readLimited(stdoutPipe, e.cfg.MaxOutputBytes)
		stdoutCh <- readOut{t, tr}
	}()
	go func() {
		t, tr := readLimited(stderrPipe, e.cfg.MaxOutputBytes)
		stderrCh <- readOut{t, tr}
	}()

	waitCh := make(chan error, 1)
	go func() { waitCh <- session.Wait() }()

	deadline := time.After(timeout)
	select {
	case <-deadline:
		session.Close()
		return nil, fmt.Errorf("command timed out after %s", timeout)
	case <-ctx.Done():
		session.Close()
		return nil, ctx.Err()
	case waitErr := <-waitCh:
		out := <-stdoutCh
		errOut := <-stderrCh

		var exitStatus *int
		if waitErr == nil {
			zero := 0
			exitStatus = &zero
		} else if exitErr, ok := waitErr.(*ssh.ExitError); ok {
			status := exitErr.ExitStatus()
			exitStatus = &status
		}

		return &domain.CommandResult{
			Stdout:     out.text,
			Stderr:     errOut.text,
			ExitStatus: exitStatus,
			Truncated:  out.truncated || errOut.truncated,
		}, nil
	}
}
