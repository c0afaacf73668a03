// Package manager implements the mount-state reconciliation workflows:
// mounting, unmounting, pruning, and status reporting for sshfs mounts
// under a configured mount root.
//
// Every state-changing workflow consults the findmnt ground truth before
// acting and re-verifies through it afterwards. The external tool's exit
// code is never trusted as proof of success on its own, and mount state
// is never guessed from directory contents.
package manager

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/blockfeed/sshfsman/pkg/config"
	"github.com/blockfeed/sshfsman/pkg/findmnt"
	"github.com/blockfeed/sshfsman/pkg/sshfs"
)

// Mounter performs the external mount action.
type Mounter interface {
	Mount(ctx context.Context, inv sshfs.Invocation) error
}

// Unmounter performs the external unmount action.
type Unmounter interface {
	Unmount(ctx context.Context, target string) error
}

// Saver persists the configuration. Mutating workflows call it exactly
// once, at the end.
type Saver interface {
	Save(cfg *config.Config) error
}

// Manager wires the configuration, the ground-truth inspector, and the
// external mount tools into the command workflows.
type Manager struct {
	cfg       *config.Config
	store     Saver
	inspector findmnt.Inspector
	mounter   Mounter
	unmounter Unmounter
}

// New constructs a Manager. All dependencies are required.
func New(cfg *config.Config, store Saver, inspector findmnt.Inspector, mounter Mounter, unmounter Unmounter) *Manager {
	return &Manager{
		cfg:       cfg,
		store:     store,
		inspector: inspector,
		mounter:   mounter,
		unmounter: unmounter,
	}
}

// Config returns the configuration the manager operates on.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// TargetFor resolves a shortcut name to its mountpoint under the mount
// root.
func (m *Manager) TargetFor(name string) (string, error) {
	sc, ok := m.cfg.Shortcut(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrShortcutNotFound, name)
	}
	dir := sc.MountDir
	if dir == "" {
		dir = name
	}
	return filepath.Join(m.cfg.MountRoot, config.SanitizeMountDir(dir)), nil
}

// underRoot reports whether path is lexically under the mount root.
func (m *Manager) underRoot(path string) bool {
	root := filepath.Clean(m.cfg.MountRoot)
	path = filepath.Clean(path)
	return path != root && strings.HasPrefix(path, root+string(filepath.Separator))
}

// checkedPath cleans an explicit target path and refuses anything
// outside the mount root.
func (m *Manager) checkedPath(path string) (string, error) {
	path = filepath.Clean(path)
	if !m.underRoot(path) {
		return "", fmt.Errorf("refusing to operate outside mount_root: %s (mount_root=%s)", path, m.cfg.MountRoot)
	}
	return path, nil
}
