package manager

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/blockfeed/sshfsman/pkg/config"
	"github.com/blockfeed/sshfsman/pkg/findmnt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMountsJoinsShortcuts(t *testing.T) {
	f := newFixture(t)
	f.cfg.Shortcuts["phone"] = config.Shortcut{ID: "phone", Remote: "user@h:/p", MountDir: "phone"}
	phone := filepath.Join(f.cfg.MountRoot, "phone")
	adhoc := filepath.Join(f.cfg.MountRoot, "adhoc")
	outside := "/media/elsewhere"

	f.inspector.entries = []findmnt.Entry{
		{Target: adhoc, Source: "u@h:/x", FSType: findmnt.FSTypeSSHFS},
		{Target: phone, Source: "user@h:/p", FSType: findmnt.FSTypeSSHFS},
		{Target: outside, Source: "u@h:/o", FSType: findmnt.FSTypeSSHFS},
	}

	rows, err := f.mgr.ListMounts(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, rows, 2, "root-scoped by default")
	assert.Equal(t, "", rows[0].Shortcut, "unmatched target has no shortcut name")
	assert.Equal(t, adhoc, rows[0].Target)
	assert.Equal(t, "phone", rows[1].Shortcut)

	rows, err = f.mgr.ListMounts(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestStatusAllShortcuts(t *testing.T) {
	f := newFixture(t)
	f.cfg.Shortcuts["phone"] = config.Shortcut{ID: "phone", Remote: "u@h:/p", MountDir: "phone"}
	f.cfg.Shortcuts["nas"] = config.Shortcut{ID: "nas", Remote: "u@h:/n", MountDir: "nas"}
	f.inspector.mounted[filepath.Join(f.cfg.MountRoot, "nas")] = true

	rows, err := f.mgr.Status(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "nas", rows[0].Shortcut, "sorted by name")
	assert.True(t, rows[0].Mounted)
	assert.Equal(t, "phone", rows[1].Shortcut)
	assert.False(t, rows[1].Mounted)
}

func TestStatusSingleShortcut(t *testing.T) {
	f := newFixture(t)
	f.cfg.Shortcuts["phone"] = config.Shortcut{ID: "phone", Remote: "u@h:/p", MountDir: "phone"}

	rows, err := f.mgr.Status(context.Background(), "phone", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Mounted)

	_, err = f.mgr.Status(context.Background(), "nope", "")
	assert.ErrorIs(t, err, ErrShortcutNotFound)
}

func TestStatusByPath(t *testing.T) {
	f := newFixture(t)
	target := filepath.Join(f.cfg.MountRoot, "x")
	f.inspector.mounted[target] = true

	rows, err := f.mgr.Status(context.Background(), "", target)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Mounted)

	_, err = f.mgr.Status(context.Background(), "", "/etc")
	assert.Error(t, err)
}

func TestStatusOracleUnavailable(t *testing.T) {
	f := newFixture(t)
	f.cfg.Shortcuts["phone"] = config.Shortcut{ID: "phone", Remote: "u@h:/p"}
	f.inspector.err = findmnt.ErrUnavailable

	_, err := f.mgr.Status(context.Background(), "", "")
	assert.ErrorIs(t, err, findmnt.ErrUnavailable)
}
