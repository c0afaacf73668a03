// Package config holds the sshfsman configuration model: the mount root,
// the default subnet used for octet-override addressing, and the named
// shortcuts with their saved mount invocation parameters.
//
// The model is pure data. Workflows receive a *Config at the start of a
// command and mutating commands write it back exactly once through a Store.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultMountRoot is used when no mount_root is configured.
const DefaultMountRoot = "/mnt/sshfs"

// Shortcut is a named, persisted remote target plus the invocation
// parameters saved for repeatable mounts.
type Shortcut struct {
	// ID defaults to the shortcut's map key. The mount-time creation path
	// always sets it to the shortcut name.
	ID string `mapstructure:"id" toml:"id" json:"id" yaml:"id"`

	// Remote is the sshfs source in the form user@host:/remote/path.
	Remote string `mapstructure:"remote" toml:"remote" json:"remote" yaml:"remote" validate:"required"`

	// MountDir is a single path segment under the mount root. Defaults to
	// the shortcut name.
	MountDir string `mapstructure:"mount_dir" toml:"mount_dir" json:"mount_dir" yaml:"mount_dir"`

	Port                int      `mapstructure:"port" toml:"port,omitempty" json:"port,omitempty" yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Identity            string   `mapstructure:"identity" toml:"identity,omitempty" json:"identity,omitempty" yaml:"identity,omitempty"`
	Options             []string `mapstructure:"options" toml:"options,omitempty" json:"options,omitempty" yaml:"options,omitempty"`
	ReadOnly            bool     `mapstructure:"readonly" toml:"readonly,omitempty" json:"readonly,omitempty" yaml:"readonly,omitempty"`
	NoReconnectDefaults bool     `mapstructure:"no_reconnect_defaults" toml:"no_reconnect_defaults,omitempty" json:"no_reconnect_defaults,omitempty" yaml:"no_reconnect_defaults,omitempty"`
}

// Config is the complete sshfsman configuration.
type Config struct {
	// MountRoot is the absolute directory under which all managed mounts
	// live as MountRoot/<mount_dir>.
	MountRoot string `mapstructure:"mount_root" validate:"required"`

	// DefaultSubnet is the first three IPv4 octets (e.g. "192.0.2"), used
	// only for octet-override addressing. Optional.
	DefaultSubnet string `mapstructure:"default_subnet"`

	// Shortcuts maps shortcut name to its record. Keys are case-sensitive.
	Shortcuts map[string]Shortcut `mapstructure:"shortcuts"`
}

// Default returns a configuration with built-in defaults and no shortcuts.
func Default() *Config {
	return &Config{
		MountRoot: DefaultMountRoot,
		Shortcuts: make(map[string]Shortcut),
	}
}

var validate = validator.New()

// Validate checks structural invariants. A config that fails validation
// must not be executed against.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if !strings.HasPrefix(c.MountRoot, "/") {
		return fmt.Errorf("invalid config: mount_root must be an absolute path, got %q", c.MountRoot)
	}
	if c.DefaultSubnet != "" {
		if _, err := ParseSubnet(c.DefaultSubnet); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	for name, sc := range c.Shortcuts {
		if err := validate.Struct(sc); err != nil {
			return fmt.Errorf("invalid shortcut %q: %w", name, err)
		}
		if _, err := ParseRemote(sc.Remote); err != nil {
			return fmt.Errorf("invalid shortcut %q: %w", name, err)
		}
		if sc.MountDir != "" {
			if err := CheckMountDir(sc.MountDir); err != nil {
				return fmt.Errorf("invalid shortcut %q: %w", name, err)
			}
		}
	}
	return nil
}

// Normalize fills per-shortcut defaults that derive from the map key:
// an empty id or mount_dir falls back to the shortcut name.
func (c *Config) Normalize() {
	if c.Shortcuts == nil {
		c.Shortcuts = make(map[string]Shortcut)
	}
	for name, sc := range c.Shortcuts {
		if sc.ID == "" {
			sc.ID = name
		}
		if sc.MountDir == "" {
			sc.MountDir = name
		}
		c.Shortcuts[name] = sc
	}
}

// Shortcut returns the named shortcut, reporting whether it exists.
func (c *Config) Shortcut(name string) (Shortcut, bool) {
	sc, ok := c.Shortcuts[name]
	return sc, ok
}
