package manager

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/blockfeed/sshfsman/pkg/config"
)

// MountRow is one row of list-mounts output: an active mount joined with
// its shortcut name when the target matches a configured shortcut's
// mountpoint.
type MountRow struct {
	Shortcut string `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	Source   string `json:"source" yaml:"source"`
	Target   string `json:"target" yaml:"target"`
}

// ListMounts returns the active sshfs mounts, root-scoped unless
// systemWide is set, sorted by target path. It is read-only.
func (m *Manager) ListMounts(ctx context.Context, systemWide bool) ([]MountRow, error) {
	entries, err := m.inspector.ListMounts(ctx)
	if err != nil {
		return nil, err
	}

	byTarget := make(map[string]string)
	for name, sc := range m.cfg.Shortcuts {
		dir := sc.MountDir
		if dir == "" {
			dir = name
		}
		byTarget[filepath.Join(m.cfg.MountRoot, config.SanitizeMountDir(dir))] = name
	}

	var rows []MountRow
	for _, e := range entries {
		if !systemWide && !m.underRoot(e.Target) {
			continue
		}
		rows = append(rows, MountRow{
			Shortcut: byTarget[e.Target],
			Source:   e.Source,
			Target:   e.Target,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Target < rows[j].Target })
	return rows, nil
}

// StatusRow reports the mount state of one shortcut or path.
type StatusRow struct {
	Shortcut string `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	Target   string `json:"target" yaml:"target"`
	Mounted  bool   `json:"mounted" yaml:"mounted"`
}

// Status reports mount state for a single shortcut or path when one is
// given, or for every configured shortcut otherwise. It performs no
// mutation and creates no directories.
func (m *Manager) Status(ctx context.Context, shortcut, path string) ([]StatusRow, error) {
	switch {
	case shortcut != "" && path != "":
		return nil, fmt.Errorf("provide either a shortcut or a path, not both")
	case shortcut != "":
		target, err := m.TargetFor(shortcut)
		if err != nil {
			return nil, err
		}
		row, err := m.statusOf(ctx, shortcut, target)
		if err != nil {
			return nil, err
		}
		return []StatusRow{row}, nil
	case path != "":
		target, err := m.checkedPath(path)
		if err != nil {
			return nil, err
		}
		row, err := m.statusOf(ctx, "", target)
		if err != nil {
			return nil, err
		}
		return []StatusRow{row}, nil
	}

	names := make([]string, 0, len(m.cfg.Shortcuts))
	for name := range m.cfg.Shortcuts {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]StatusRow, 0, len(names))
	for _, name := range names {
		target, err := m.TargetFor(name)
		if err != nil {
			return nil, err
		}
		row, err := m.statusOf(ctx, name, target)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *Manager) statusOf(ctx context.Context, shortcut, target string) (StatusRow, error) {
	mounted, err := m.inspector.IsMounted(ctx, target)
	if err != nil {
		return StatusRow{}, err
	}
	return StatusRow{Shortcut: shortcut, Target: target, Mounted: mounted}, nil
}
