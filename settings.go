package inkwell

import (
	"fmt"
	"strconv"
	"sync"
)

// Settings keys stored in the configuration table.
const (
	KeyPageSize        = "page_size"
	KeySessionExpire   = "session_expire"
	KeySessionPruneAge = "session_prune_age"
	KeyMainTitle       = "main_title"
	KeySubtitle        = "subtitle"
	KeyBrowserTitle    = "browser_title"
	KeyFooterText      = "footer_text"
	KeyImageLocation   = "image_location"
	KeyImageAlt        = "image_alt"
)

// settingDefaults populate the configuration table's default column on first
// run. The value column starts NULL so reads fall back to these.
var settingDefaults = map[string]string{
	KeyPageSize:        "10",
	KeySessionExpire:   "1800",
	KeySessionPruneAge: "604800",
	KeyMainTitle:       "Blog",
	KeySubtitle:        "",
	KeyBrowserTitle:    "Blog",
	KeyFooterText:      "",
	KeyImageLocation:   "",
	KeyImageAlt:        "",
}

func (s *Store) seedSettings() error {
	for key, def := range settingDefaults {
		if _, err := s.db.Exec(
			`INSERT OR IGNORE INTO configuration (key_name, value, "default") VALUES (?, NULL, ?)`,
			key, def); err != nil {
			return err
		}
	}
	return nil
}

// LoadSettings reads the whole configuration table as a map. A NULL value
// falls back to the row's default column.
func (s *Store) LoadSettings() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key_name, IFNULL(value, IFNULL("default", '')) FROM configuration`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, val string
		if err := rows.Scan(&key, &val); err != nil {
			return nil, err
		}
		data[key] = val
	}
	return data, rows.Err()
}

// SaveSettings validates and writes every key present in data. Validation
// failures abort before any write so the form can be re-rendered with the
// prior values intact.
func (s *Store) SaveSettings(data map[string]string) error {
	if err := ValidateSettings(data); err != nil {
		return err
	}
	for key, val := range data {
		if _, err := s.db.Exec(
			`UPDATE configuration SET value = ? WHERE key_name = ?`, val, key); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSettings checks the integer-valued settings. Page size, session
// expiry, and prune age must be integers >= 1; everything else is free text.
func ValidateSettings(data map[string]string) error {
	for _, key := range []string{KeyPageSize, KeySessionExpire, KeySessionPruneAge} {
		val, ok := data[key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return &ValidationError{Field: key, Reason: fmt.Sprintf("%q is not an integer", val)}
		}
		if n < 1 {
			return &ValidationError{Field: key, Reason: "must be at least 1"}
		}
	}
	return nil
}

// Settings is the process-wide holder for runtime configuration. Readers see
// the values loaded by the most recent Reload, never a mid-request mix; after
// saving new settings the caller reloads explicitly.
type Settings struct {
	store *Store

	mu     sync.RWMutex
	values map[string]string
}

// NewSettings creates a Settings holder and performs the initial load.
func NewSettings(store *Store) (*Settings, error) {
	s := &Settings{store: store}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads all settings from the store.
func (s *Settings) Reload() error {
	values, err := s.store.LoadSettings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

// Get returns the current value for key, or the empty string.
func (s *Settings) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *Settings) intValue(key string, fallback int) int {
	n, err := strconv.Atoi(s.Get(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// PageSize returns the configured article page length.
func (s *Settings) PageSize() int {
	return s.intValue(KeyPageSize, 10)
}

// SessionExpire returns the interactive session expiry threshold in seconds.
func (s *Settings) SessionExpire() int64 {
	return int64(s.intValue(KeySessionExpire, 1800))
}

// SessionPruneAge returns the janitor sweep threshold in seconds. It is
// independent of SessionExpire; pruning is the slow background cleanup.
func (s *Settings) SessionPruneAge() int64 {
	return int64(s.intValue(KeySessionPruneAge, 604800))
}
