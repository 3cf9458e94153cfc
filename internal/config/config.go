package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration, loaded from YAML.
type Config struct {
	// Listen is the HTTP listen address for the planner API.
	Listen string `yaml:"listen" json:"listen"`

	// FixturePath points at the JSON course fixture that seeds a planner
	// session. Empty means the built-in seed.
	FixturePath string `yaml:"fixture" json:"fixture"`

	// DatabasePath is the SQLite file holding upserted user accounts.
	DatabasePath string `yaml:"database" json:"database"`

	// GoogleClientID is the OAuth client the Google ID tokens must be
	// issued for. Empty disables authentication (local development).
	GoogleClientID string `yaml:"google_client_id" json:"google_client_id"`

	// SessionSecret signs the session JWTs handed out after Google login.
	SessionSecret string `yaml:"session_secret" json:"session_secret"`

	// DigestCron is a cron-style schedule for the due-soon digest
	// (e.g. "0 7 * * *"). Empty disables the digest.
	DigestCron string `yaml:"digest" json:"digest"`

	// DigestDays is how many days ahead the digest looks.
	DigestDays int `yaml:"digest_days" json:"digest_days"`
}

// DefaultConfig returns the in-memory defaults.
func DefaultConfig() *Config {
	return &Config{
		Listen:       "127.0.0.1:8080",
		DatabasePath: "studycal.db",
		DigestCron:   "0 7 * * *",
		DigestDays:   7,
	}
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.DatabasePath == "" {
		c.DatabasePath = def.DatabasePath
	}
	if c.DigestDays <= 0 {
		c.DigestDays = def.DigestDays
	}
}

// Load loads configuration from the given YAML path.
//
// A missing file is a first run: the default config is written out with 0600
// perms (parent directory created as needed) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Return cfg with the error so the caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".studycal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
