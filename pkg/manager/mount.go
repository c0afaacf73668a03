package manager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blockfeed/sshfsman/internal/logger"
	"github.com/blockfeed/sshfsman/pkg/config"
	"github.com/blockfeed/sshfsman/pkg/findmnt"
	"github.com/blockfeed/sshfsman/pkg/sshfs"
)

// MountRequest describes one mount command invocation. Exactly one of
// Shortcut or Remote must be set.
type MountRequest struct {
	// Shortcut names a configured shortcut to mount.
	Shortcut string

	// Remote is an explicit user@host:/path source.
	Remote string

	// MountDir overrides the directory name under the mount root.
	MountDir string

	// Octet is the last-octet address override; zero means none. Valid
	// only when mounting by shortcut.
	Octet int

	// Overrides are the command-line invocation parameters.
	Overrides Overrides

	// CreateShortcut, when non-empty, persists the effective invocation
	// as a shortcut of that name after the mount is verified.
	CreateShortcut string
}

// MountReport is the outcome of a verified mount.
type MountReport struct {
	Target        string `json:"target" yaml:"target"`
	Remote        string `json:"remote" yaml:"remote"`
	SavedShortcut string `json:"saved_shortcut,omitempty" yaml:"saved_shortcut,omitempty"`
}

// Mount runs the mount workflow: guard against an existing mount via the
// ground truth, ensure the target directory, invoke sshfs, then
// re-verify via the ground truth. A shortcut-creation request is
// persisted only after verification succeeds.
func (m *Manager) Mount(ctx context.Context, req MountRequest) (*MountReport, error) {
	remote, mountDir, saved, err := m.resolveMountSource(req)
	if err != nil {
		return nil, err
	}

	target := filepath.Join(m.cfg.MountRoot, mountDir)
	inv := merge(saved, req.Overrides)
	inv.Remote = remote

	mounted, err := m.inspector.IsMounted(ctx, target)
	if err != nil {
		return nil, err
	}
	if mounted {
		return nil, fmt.Errorf("%w: %s", ErrMountConflict, target)
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create mountpoint %s: %w", target, err)
	}

	logger.Debug("invoking sshfs", "remote", remote, "target", target, "port", inv.Port)
	if err := m.mounter.Mount(ctx, sshfs.Invocation{
		Remote:              remote,
		Target:              target,
		Port:                inv.Port,
		Identity:            inv.Identity,
		Options:             inv.Options,
		ReadOnly:            inv.ReadOnly,
		NoReconnectDefaults: inv.NoReconnectDefaults,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMountFailed, err)
	}

	mounted, err = m.inspector.IsMounted(ctx, target)
	if err != nil {
		return nil, err
	}
	if !mounted {
		return nil, fmt.Errorf("%w: sshfs reported success but findmnt does not show %s at %s", ErrMountFailed, findmnt.FSTypeSSHFS, target)
	}

	report := &MountReport{Target: target, Remote: remote}

	if req.CreateShortcut != "" {
		name := req.CreateShortcut
		m.cfg.Shortcuts[name] = config.Shortcut{
			ID:                  name,
			Remote:              remote,
			MountDir:            mountDir,
			Port:                inv.Port,
			Identity:            inv.Identity,
			Options:             inv.Options,
			ReadOnly:            inv.ReadOnly,
			NoReconnectDefaults: inv.NoReconnectDefaults,
		}
		if err := m.store.Save(m.cfg); err != nil {
			return report, fmt.Errorf("mounted %s but could not save shortcut %q: %w", target, name, err)
		}
		report.SavedShortcut = name
		logger.Info("saved shortcut", "name", name, "remote", remote)
	}

	return report, nil
}

// resolveMountSource determines the effective remote, the mount
// directory name, and the saved parameters (nil for the --remote form).
func (m *Manager) resolveMountSource(req MountRequest) (remote, mountDir string, saved *config.Shortcut, err error) {
	switch {
	case req.Shortcut != "" && req.Remote != "":
		return "", "", nil, fmt.Errorf("provide either a shortcut or a remote, not both")
	case req.Shortcut == "" && req.Remote == "":
		return "", "", nil, fmt.Errorf("mount requires a shortcut name or a remote in the form user@host:/path")
	case req.Shortcut != "":
		sc, ok := m.cfg.Shortcut(req.Shortcut)
		if !ok {
			return "", "", nil, fmt.Errorf("%w: %s", ErrShortcutNotFound, req.Shortcut)
		}
		remote, err = resolveRemote(sc, req.Octet, m.cfg.DefaultSubnet)
		if err != nil {
			return "", "", nil, err
		}
		dir := req.MountDir
		if dir == "" {
			dir = sc.MountDir
		}
		if dir == "" {
			dir = req.Shortcut
		}
		return remote, config.SanitizeMountDir(dir), &sc, nil
	default:
		if req.Octet != 0 {
			return "", "", nil, fmt.Errorf("octet override is only valid when mounting by shortcut")
		}
		if _, err = config.ParseRemote(req.Remote); err != nil {
			return "", "", nil, err
		}
		dir := req.MountDir
		if dir == "" {
			if dir, err = config.InferMountDir(req.Remote); err != nil {
				return "", "", nil, err
			}
		}
		return req.Remote, config.SanitizeMountDir(dir), nil, nil
	}
}
