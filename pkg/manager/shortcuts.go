package manager

import (
	"fmt"

	"github.com/blockfeed/sshfsman/pkg/config"
)

// CreateShortcutRequest describes an explicit create-shortcut command.
type CreateShortcutRequest struct {
	Name                string
	ID                  string
	Remote              string
	MountDir            string
	Port                int
	Identity            string
	Options             []string
	ReadOnly            bool
	NoReconnectDefaults bool
}

// CreateShortcut creates or overwrites the named shortcut in full. No
// field of a previous shortcut of the same name survives.
func (m *Manager) CreateShortcut(req CreateShortcutRequest) (config.Shortcut, error) {
	if req.Name == "" {
		return config.Shortcut{}, fmt.Errorf("shortcut name must not be empty")
	}
	if _, err := config.ParseRemote(req.Remote); err != nil {
		return config.Shortcut{}, err
	}

	id := req.ID
	if id == "" {
		id = req.Name
	}
	dir := req.MountDir
	if dir == "" {
		var err error
		if dir, err = config.InferMountDir(req.Remote); err != nil {
			return config.Shortcut{}, err
		}
	}

	sc := config.Shortcut{
		ID:                  id,
		Remote:              req.Remote,
		MountDir:            config.SanitizeMountDir(dir),
		Port:                req.Port,
		Identity:            req.Identity,
		Options:             req.Options,
		ReadOnly:            req.ReadOnly,
		NoReconnectDefaults: req.NoReconnectDefaults,
	}
	m.cfg.Shortcuts[req.Name] = sc
	if err := m.store.Save(m.cfg); err != nil {
		return config.Shortcut{}, err
	}
	return sc, nil
}

// DeleteShortcut removes the named shortcut. Deleting a shortcut that
// does not exist is a no-op; existed reports whether anything changed.
func (m *Manager) DeleteShortcut(name string) (existed bool, err error) {
	if _, ok := m.cfg.Shortcuts[name]; !ok {
		return false, nil
	}
	delete(m.cfg.Shortcuts, name)
	return true, m.store.Save(m.cfg)
}

// SetDefaultSubnet validates and persists the default subnet prefix.
func (m *Manager) SetDefaultSubnet(subnet string) error {
	canonical, err := config.ParseSubnet(subnet)
	if err != nil {
		return err
	}
	m.cfg.DefaultSubnet = canonical
	return m.store.Save(m.cfg)
}
