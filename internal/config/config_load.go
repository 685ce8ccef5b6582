package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Load reads config from a YAML file, then overlays env vars, falling back
// to Default() when the file does not exist yet so the gateway can start
// against a bare environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ZoneCredentials.Finalize()

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides overlays env vars onto the config. Env vars take
// precedence over file values and are the only source for secrets that must
// never be committed to the config file itself.
func (c *Config) applyEnvOverrides() {
	envStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	envStr("AOSGWD_HOST", &c.Server.Host)
	if v := os.Getenv("AOSGWD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Server.Port = port
		}
	}
	if c.Server.BearerTokenEnv == "" {
		c.Server.BearerTokenEnv = "AOSGWD_BEARER_TOKEN"
	}
	c.Server.BearerToken = os.Getenv(c.Server.BearerTokenEnv)

	envStr("AOSGWD_KNOWN_HOSTS_FILE", &c.SSH.KnownHostsFile)

	envStr("AOSGWD_LOG_LEVEL", &c.Logging.Level)
	envStr("AOSGWD_LOG_FORMAT", &c.Logging.Format)
}

// Save writes the config to a YAML file. Secrets resolved from env (the
// bearer token, any inline credential fields populated only at runtime) are
// never included since ServerConfig.BearerToken carries yaml:"-".
func Save(path string, cfg *Config) error {
	cfg.mu.RLock()
	data, err := yaml.Marshal(cfg)
	cfg.mu.RUnlock()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Watcher hot-reloads the policy/zone-credential sections of a config file
// on every write, leaving the server/SSH/device sections untouched.
type Watcher struct {
	path    string
	cfg     *Config
	onError func(error)

	// OnReload, if set, is called with the live *Config after every
	// successful reload, so callers can rebuild anything derived from the
	// policy/zone-credential sections (compiled policy, zone resolver).
	OnReload func(*Config)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher builds a Watcher for path, reloading into cfg on change.
// onError, if non-nil, is called with any reload or filesystem error; a nil
// onError silently drops errors (matching a best-effort hot reload).
func NewWatcher(path string, cfg *Config, onError func(error)) *Watcher {
	return &Watcher{path: path, cfg: cfg, onError: onError}
}

// Start begins watching the config file's directory (watching the directory
// rather than the file itself survives editors that replace the file via
// rename-on-save). Call Close to stop.
func (w *Watcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}

	w.mu.Lock()
	w.watcher = fw
	w.done = make(chan struct{})
	w.mu.Unlock()

	go w.loop(fw)
	return nil
}

func (w *Watcher) loop(fw *fsnotify.Watcher) {
	target := filepath.Clean(w.path)
	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := w.reload(); err != nil && w.onError != nil {
				w.onError(err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() error {
	fresh, err := Load(w.path)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	w.cfg.replacePolicyAndZones(fresh)
	if w.OnReload != nil {
		w.OnReload(w.cfg)
	}
	return nil
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return nil
	}
	close(w.done)
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

// ExpandHome replaces a leading ~ with the user's home directory, for
// resolving config-relative paths like the known_hosts file.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, _ := os.UserHomeDir()
	if len(path) > 1 && path[1] == '/' {
		return home + path[1:]
	}
	return home
}
