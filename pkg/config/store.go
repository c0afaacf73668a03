package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigDir is the directory under XDG_CONFIG_HOME.
	DefaultConfigDir = "sshfsman"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.toml"
	// FilePermissions for the config file (owner read/write only).
	FilePermissions = 0600
	// DirPermissions for the config directory.
	DirPermissions = 0700

	envPrefix = "SSHFSMAN"
)

// fileSchema mirrors the on-disk TOML layout: a [config] table for the
// root settings and a [shortcuts.<name>] table per shortcut.
type fileSchema struct {
	Config struct {
		MountRoot     string `toml:"mount_root"`
		DefaultSubnet string `toml:"default_subnet,omitempty"`
	} `toml:"config"`
	Shortcuts map[string]Shortcut `toml:"shortcuts,omitempty"`
}

// Store loads and persists the configuration file.
type Store struct {
	path string
}

// NewStore creates a store rooted at the default XDG config path.
func NewStore() (*Store, error) {
	path, err := defaultConfigPath()
	if err != nil {
		return nil, err
	}
	return &Store{path: path}, nil
}

// NewStoreAt creates a store for an explicit config file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

func defaultConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, DefaultConfigDir, ConfigFileName), nil
}

// Load reads the configuration. A missing file yields the built-in
// defaults; a malformed or invalid file is a fatal error. Environment
// variables (SSHFSMAN_CONFIG_MOUNT_ROOT, SSHFSMAN_CONFIG_DEFAULT_SUBNET)
// override the root settings.
func (s *Store) Load() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot read config %s: %w", s.path, err)
		}
		data = nil
	}

	// Shortcut names are case-sensitive, and viper lowercases map keys on
	// Unmarshal. The shortcut tables therefore come from go-toml, which
	// keeps the keys as written; viper handles only the [config] scalars
	// and their environment overlay.
	var raw fileSchema
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("cannot parse config %s: %w", s.path, err)
		}
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("config.mount_root", DefaultMountRoot)
	v.MustBindEnv("config.mount_root")
	v.MustBindEnv("config.default_subnet")
	if len(data) > 0 {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("cannot parse config %s: %w", s.path, err)
		}
	}

	cfg := &Config{
		MountRoot:     v.GetString("config.mount_root"),
		DefaultSubnet: v.GetString("config.default_subnet"),
		Shortcuts:     raw.Shortcuts,
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return cfg, nil
}

// Save writes the configuration back to disk, creating the config
// directory if needed. The write replaces the whole file.
func (s *Store) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var raw fileSchema
	raw.Config.MountRoot = cfg.MountRoot
	raw.Config.DefaultSubnet = cfg.DefaultSubnet
	if len(cfg.Shortcuts) > 0 {
		raw.Shortcuts = cfg.Shortcuts
	}

	data, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("cannot serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), DirPermissions); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, FilePermissions); err != nil {
		return fmt.Errorf("cannot write config %s: %w", s.path, err)
	}
	return nil
}
