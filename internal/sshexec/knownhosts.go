package sshexec

import (
	"errors"
	"net"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// knownHostsFileMu serializes every read-modify-write of any known_hosts
// file used by this process, matching the single process-wide lock required
// by the concurrency contract in C4.
var knownHostsFileMu sync.Mutex

// hostKeyCallback builds the ssh.HostKeyCallback for the given mode.
//
// strict: load system known_hosts plus the optional extra file; reject
// anything not already present.
//
// permissive-learn: same lookup, but on an unknown-host error, accept the
// key and persist it by atomically replacing any prior line for that
// hostname (preserving every other line and comment), guarded by
// knownHostsFileMu.
func hostKeyCallback(cfg Config) (ssh.HostKeyCallback, error) {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		systemFile := home + "/.ssh/known_hosts"
		if _, err := os.Stat(systemFile); err == nil && systemFile != cfg.KnownHostsFile {
			paths = append(paths, systemFile)
		}
	}
	if cfg.KnownHostsFile != "" {
		if _, err := os.Stat(cfg.KnownHostsFile); err != nil {
			if cfg.StrictHostKeyChecking {
				return nil, err
			}
			// permissive-learn: create an empty file so knownhosts.New succeeds.
			if err := os.WriteFile(cfg.KnownHostsFile, nil, 0600); err != nil {
				return nil, err
			}
		}
		paths = append(paths, cfg.KnownHostsFile)
	}

	var base ssh.HostKeyCallback
	if len(paths) > 0 {
		cb, err := knownhosts.New(paths...)
		if err != nil {
			return nil, err
		}
		base = cb
	} else {
		base = func(hostname string, remote net.Addr, key ssh.PublicKey) error {
			return &knownhosts.KeyError{}
		}
	}

	if cfg.StrictHostKeyChecking {
		return base, nil
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := base(hostname, remote, key)
		if err == nil {
			return nil
		}
		var keyErr *knownhosts.KeyError
		if errors.As(err, &keyErr) && len(keyErr.Want) == 0 {
			// Unknown host, not a mismatch: learn and save.
			if cfg.KnownHostsFile != "" {
				if saveErr := updateKnownHostsFile(cfg.KnownHostsFile, hostname, key); saveErr != nil {
					// Saving the key is best-effort; the connection still proceeds.
					return nil
				}
			}
			return nil
		}
		return err
	}, nil
}

// updateKnownHostsFile replaces (or appends) the single line for hostname in
// filepath, preserving every other line, under the process-wide lock.
func updateKnownHostsFile(filepath, hostname string, key ssh.PublicKey) error {
	normalized := knownhosts.Normalize(hostname)
	newLine := knownhosts.Line([]string{normalized}, key)

	knownHostsFileMu.Lock()
	defer knownHostsFileMu.Unlock()

	existing, err := os.ReadFile(filepath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var lines []string
	found := false
	for _, line := range strings.Split(string(existing), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			lines = append(lines, line)
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) >= 2 {
			hostField := fields[0]
			matches := false
			for _, h := range strings.Split(hostField, ",") {
				if h == normalized || h == hostname {
					matches = true
					break
				}
			}
			if matches {
				lines = append(lines, newLine)
				found = true
				continue
			}
		}
		lines = append(lines, line)
	}
	if !found {
		lines = append(lines, newLine)
	}

	out := strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
	return os.WriteFile(filepath, []byte(out), 0600)
}
