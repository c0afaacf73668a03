package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/blockfeed/sshfsman/pkg/config"
	"github.com/blockfeed/sshfsman/pkg/findmnt"
	"github.com/blockfeed/sshfsman/pkg/sshfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMountGuardRefusesMountedTarget(t *testing.T) {
	f := newFixture(t)
	f.cfg.Shortcuts["phone"] = config.Shortcut{ID: "phone", Remote: "user@192.0.2.10:/storage", MountDir: "phone"}
	target := filepath.Join(f.cfg.MountRoot, "phone")
	f.inspector.mounted[target] = true

	_, err := f.mgr.Mount(context.Background(), MountRequest{Shortcut: "phone"})
	assert.ErrorIs(t, err, ErrMountConflict)
	assert.Empty(t, f.mounter.invocations, "mount tool must never run when the guard trips")
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr), "guard must not create the directory")
}

func TestMountByShortcutHappyPath(t *testing.T) {
	f := newFixture(t)
	f.cfg.Shortcuts["phone"] = config.Shortcut{ID: "phone", Remote: "user@192.0.2.10:/path", MountDir: "phone"}
	target := filepath.Join(f.cfg.MountRoot, "phone")

	f.mounter.onMount = func(inv sshfs.Invocation) {
		f.inspector.mounted[inv.Target] = true
	}

	report, err := f.mgr.Mount(context.Background(), MountRequest{Shortcut: "phone"})
	require.NoError(t, err)
	assert.Equal(t, target, report.Target)
	assert.Equal(t, "user@192.0.2.10:/path", report.Remote)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.Len(t, f.mounter.invocations, 1)
	inv := f.mounter.invocations[0]
	assert.Equal(t, "user@192.0.2.10:/path", inv.Remote)
	assert.Equal(t, target, inv.Target)
	assert.Zero(t, inv.Port, "no saved port means sshfs default")

	// Guard check before, verification after.
	assert.Equal(t, []string{target, target}, f.inspector.isMountedCalls)
	assert.Zero(t, f.saver.saves, "nothing persisted without --create-shortcut")
}

func TestMountVerificationDistrustsExitCode(t *testing.T) {
	f := newFixture(t)
	f.cfg.Shortcuts["phone"] = config.Shortcut{ID: "phone", Remote: "user@192.0.2.10:/path"}

	// Mount tool "succeeds" but the ground truth never shows the mount.
	_, err := f.mgr.Mount(context.Background(), MountRequest{Shortcut: "phone"})
	assert.ErrorIs(t, err, ErrMountFailed)
	assert.Len(t, f.mounter.invocations, 1)
}

func TestMountToolFailure(t *testing.T) {
	f := newFixture(t)
	f.mounter.err = errors.New("sshfs failed: exit status 1")

	_, err := f.mgr.Mount(context.Background(), MountRequest{Remote: "user@host:/data"})
	assert.ErrorIs(t, err, ErrMountFailed)
}

func TestMountOracleUnavailableIsFatal(t *testing.T) {
	f := newFixture(t)
	f.inspector.err = findmnt.ErrUnavailable

	_, err := f.mgr.Mount(context.Background(), MountRequest{Remote: "user@host:/data"})
	assert.ErrorIs(t, err, findmnt.ErrUnavailable)
	assert.Empty(t, f.mounter.invocations, "mount state is never guessed")
}

func TestMountUnknownShortcut(t *testing.T) {
	f := newFixture(t)
	_, err := f.mgr.Mount(context.Background(), MountRequest{Shortcut: "nope"})
	assert.ErrorIs(t, err, ErrShortcutNotFound)
}

func TestMountOctetOverride(t *testing.T) {
	f := newFixture(t)
	f.cfg.DefaultSubnet = "192.0.2"
	f.cfg.Shortcuts["phone"] = config.Shortcut{ID: "phone", Remote: "user@192.0.2.10:/path", MountDir: "phone"}
	f.mounter.onMount = func(inv sshfs.Invocation) { f.inspector.mounted[inv.Target] = true }

	report, err := f.mgr.Mount(context.Background(), MountRequest{Shortcut: "phone", Octet: 138})
	require.NoError(t, err)
	assert.Equal(t, "user@192.0.2.138:/path", report.Remote)

	// The stored shortcut is untouched.
	assert.Equal(t, "user@192.0.2.10:/path", f.cfg.Shortcuts["phone"].Remote)
}

func TestMountOctetWithoutSubnet(t *testing.T) {
	f := newFixture(t)
	f.cfg.Shortcuts["phone"] = config.Shortcut{ID: "phone", Remote: "user@192.0.2.10:/path"}

	_, err := f.mgr.Mount(context.Background(), MountRequest{Shortcut: "phone", Octet: 138})
	assert.ErrorIs(t, err, ErrAmbiguousAddress)
	assert.Empty(t, f.mounter.invocations)
}

func TestMountByRemoteInfersMountDir(t *testing.T) {
	f := newFixture(t)
	f.mounter.onMount = func(inv sshfs.Invocation) { f.inspector.mounted[inv.Target] = true }

	report, err := f.mgr.Mount(context.Background(), MountRequest{Remote: "user@host:/srv/media"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.cfg.MountRoot, "media"), report.Target)
}

func TestMountCreateShortcutPersistsEffectiveInvocation(t *testing.T) {
	f := newFixture(t)
	f.cfg.DefaultSubnet = "192.0.2"
	f.cfg.Shortcuts["phone"] = config.Shortcut{
		ID:      "old-id",
		Remote:  "user@192.0.2.10:/path",
		Port:    2222,
		Options: []string{"allow_other"},
	}
	f.mounter.onMount = func(inv sshfs.Invocation) { f.inspector.mounted[inv.Target] = true }

	report, err := f.mgr.Mount(context.Background(), MountRequest{
		Shortcut:       "phone",
		Octet:          44,
		Overrides:      Overrides{Port: intp(3333), Options: []string{"ro"}},
		CreateShortcut: "phone",
	})
	require.NoError(t, err)
	assert.Equal(t, "phone", report.SavedShortcut)
	assert.Equal(t, 1, f.saver.saves)

	sc := f.cfg.Shortcuts["phone"]
	assert.Equal(t, "phone", sc.ID, "id is unconditionally the new name")
	assert.Equal(t, "user@192.0.2.44:/path", sc.Remote, "effective remote, not the stored one")
	assert.Equal(t, 3333, sc.Port, "effective port, not the saved one")
	assert.Equal(t, []string{"allow_other", "ro"}, sc.Options)
}

func TestMountCreateShortcutNotPersistedOnFailure(t *testing.T) {
	f := newFixture(t)
	f.mounter.err = errors.New("exit status 1")

	_, err := f.mgr.Mount(context.Background(), MountRequest{
		Remote:         "user@host:/data",
		CreateShortcut: "data",
	})
	assert.ErrorIs(t, err, ErrMountFailed)
	assert.Zero(t, f.saver.saves, "shortcut persists only after verified mount")
	assert.NotContains(t, f.cfg.Shortcuts, "data")
}

func TestMountRequestValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.mgr.Mount(context.Background(), MountRequest{})
	assert.Error(t, err)

	_, err = f.mgr.Mount(context.Background(), MountRequest{Shortcut: "a", Remote: "u@h:/p"})
	assert.Error(t, err)

	_, err = f.mgr.Mount(context.Background(), MountRequest{Remote: "u@h:/p", Octet: 3})
	assert.Error(t, err)

	_, err = f.mgr.Mount(context.Background(), MountRequest{Remote: "not-a-remote"})
	assert.Error(t, err)
	assert.Empty(t, f.mounter.invocations)
}
