package manager

import (
	"context"
	"testing"

	"github.com/blockfeed/sshfsman/pkg/config"
	"github.com/blockfeed/sshfsman/pkg/findmnt"
	"github.com/blockfeed/sshfsman/pkg/sshfs"
)

// fakeInspector is a scriptable ground truth.
type fakeInspector struct {
	mounted map[string]bool
	entries []findmnt.Entry
	err     error

	isMountedCalls []string
}

func (f *fakeInspector) IsMounted(_ context.Context, path string) (bool, error) {
	f.isMountedCalls = append(f.isMountedCalls, path)
	if f.err != nil {
		return false, f.err
	}
	return f.mounted[path], nil
}

func (f *fakeInspector) ListMounts(_ context.Context) ([]findmnt.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeMounter struct {
	invocations []sshfs.Invocation
	err         error
	onMount     func(inv sshfs.Invocation)
}

func (f *fakeMounter) Mount(_ context.Context, inv sshfs.Invocation) error {
	f.invocations = append(f.invocations, inv)
	if f.err != nil {
		return f.err
	}
	if f.onMount != nil {
		f.onMount(inv)
	}
	return nil
}

type fakeUnmounter struct {
	targets   []string
	failFor   map[string]error
	onUnmount func(target string)
}

func (f *fakeUnmounter) Unmount(_ context.Context, target string) error {
	f.targets = append(f.targets, target)
	if err := f.failFor[target]; err != nil {
		return err
	}
	if f.onUnmount != nil {
		f.onUnmount(target)
	}
	return nil
}

type fakeSaver struct {
	saves int
	err   error
}

func (f *fakeSaver) Save(*config.Config) error {
	f.saves++
	return f.err
}

type fixture struct {
	cfg       *config.Config
	inspector *fakeInspector
	mounter   *fakeMounter
	unmounter *fakeUnmounter
	saver     *fakeSaver
	mgr       *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cfg:       config.Default(),
		inspector: &fakeInspector{mounted: make(map[string]bool)},
		mounter:   &fakeMounter{},
		unmounter: &fakeUnmounter{failFor: make(map[string]error)},
		saver:     &fakeSaver{},
	}
	f.cfg.MountRoot = t.TempDir()
	f.mgr = New(f.cfg, f.saver, f.inspector, f.mounter, f.unmounter)
	return f
}

func intp(v int) *int          { return &v }
func strp(v string) *string    { return &v }
func boolp(v bool) *bool       { return &v }
