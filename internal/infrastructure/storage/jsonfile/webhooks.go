package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"mtadmin/internal/domain/record"
	"mtadmin/internal/domain/webhook"
)

// WebhooksFileName is the default name of the webhook configuration file.
const WebhooksFileName = "config.json"

// WebhookStore keeps the per-type webhook URLs.
type WebhookStore struct {
	path string
	log  *slog.Logger
	mu   sync.RWMutex
	cfg  webhook.Config
}

func NewWebhookStore(path string, log *slog.Logger) *WebhookStore {
	return &WebhookStore{
		path: path,
		log:  log.With("component", "webhook_store", "path", path),
		cfg:  webhook.Default(),
	}
}

// Path returns the file backing the store.
func (s *WebhookStore) Path() string {
	return s.path
}

// Load reads the configuration. Missing, unreadable or corrupt files leave
// every URL empty. A file that cannot be read returns an error wrapping
// record.ErrUnreadable, a corrupt one wraps record.ErrCorrupt.
func (s *WebhookStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = webhook.Default()

	data, err := readFile(s.path)
	if err != nil {
		s.log.Warn("webhook config cannot be read, using defaults", "error", err)
		return fmt.Errorf("read webhook config %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		s.log.Debug("no webhook config, all types unconfigured")
		return nil
	}

	var cfg webhook.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.log.Warn("webhook config unreadable, using defaults", "error", err)
		return fmt.Errorf("%w: %s: %v", record.ErrCorrupt, s.path, err)
	}

	s.cfg = cfg
	return nil
}

// Config returns the current configuration.
func (s *WebhookStore) Config() webhook.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cfg
}

// URLFor returns the URL configured for t, "" when unconfigured.
func (s *WebhookStore) URLFor(t record.RecType) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cfg.URLFor(t)
}

// Save writes cfg as a whole. The in-memory configuration is replaced only
// once the file has been written.
func (s *WebhookStore) Save(cfg webhook.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := encode(cfg)
	if err == nil {
		err = writeFile(s.path, data)
	}
	if err != nil {
		s.log.Error("persist webhook config", "error", err)
		return &record.PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	s.cfg = cfg
	s.log.Info("webhook config saved")
	return nil
}
