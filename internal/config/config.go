package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultSearchDelay is used when gallery.search_delay is empty.
const DefaultSearchDelay = 300 * time.Millisecond

// Config represents the main configuration for the gallery tool.
type Config struct {
	InstanceID string         `toml:"instance_id"`
	BaseDir    string         `toml:"base_dir"`
	LogDir     string         `toml:"log_dir"`
	Database   DatabaseConfig `toml:"database"`
	Gallery    GalleryConfig  `toml:"gallery"`
}

// DatabaseConfig represents configuration for the artwork store.
// The Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// GalleryConfig holds browsing defaults and the seed source.
type GalleryConfig struct {
	DefaultSort string `toml:"default_sort"`        // "popularity" or "year"
	SearchDelay string `toml:"search_delay"`        // Go duration, e.g. "300ms"
	SeedFile    string `toml:"seed_file,omitempty"` // YAML file replacing the built-in samples
}

// SearchDelayDuration parses SearchDelay, falling back to DefaultSearchDelay
// when it is empty.
func (g GalleryConfig) SearchDelayDuration() (time.Duration, error) {
	if g.SearchDelay == "" {
		return DefaultSearchDelay, nil
	}
	d, err := time.ParseDuration(g.SearchDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid search_delay %q: %w", g.SearchDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid search_delay %q: must not be negative", g.SearchDelay)
	}
	return d, nil
}

// NewConfig creates a Config with the provided values and a sqlite database
// under baseDir.
func NewConfig(instanceID, baseDir string) *Config {
	return &Config{
		InstanceID: instanceID,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Gallery: GalleryConfig{
			DefaultSort: "popularity",
			SearchDelay: DefaultSearchDelay.String(),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to path. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
