// Package sshfs invokes the external sshfs and fusermount tools. It only
// builds and runs commands; deciding whether a mount is actually active
// is the findmnt package's job.
package sshfs

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Reconnect options injected before user-supplied options unless the
// invocation suppresses them. Order matters: sshfs applies later -o
// values over earlier ones.
var reconnectDefaults = []string{
	"reconnect",
	"ServerAliveInterval=15",
	"ServerAliveCountMax=3",
}

// Invocation is the fully resolved parameter set for one sshfs mount.
type Invocation struct {
	Remote              string
	Target              string
	Port                int
	Identity            string
	Options             []string
	ReadOnly            bool
	NoReconnectDefaults bool
}

// Args returns the argument vector passed to sshfs, excluding the
// program name.
func (inv Invocation) Args() []string {
	args := []string{inv.Remote, inv.Target}

	var opts []string
	if !inv.NoReconnectDefaults {
		opts = append(opts, reconnectDefaults...)
	}
	if inv.ReadOnly {
		opts = append(opts, "ro")
	}
	opts = append(opts, inv.Options...)

	for _, o := range opts {
		args = append(args, "-o", o)
	}
	if inv.Port > 0 {
		args = append(args, "-p", strconv.Itoa(inv.Port))
	}
	if inv.Identity != "" {
		args = append(args, "-o", "IdentityFile="+inv.Identity)
	}
	return args
}

// Runner executes an external command, returning its combined output.
type Runner interface {
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Tool shells out to sshfs for mounting and fusermount3 (falling back to
// umount) for unmounting.
type Tool struct {
	runner   Runner
	lookPath func(string) (string, error)
}

// NewTool returns a Tool using the real process environment.
func NewTool() *Tool {
	return &Tool{runner: execRunner{}, lookPath: exec.LookPath}
}

// NewToolWithRunner constructs a Tool with custom process hooks, used in
// tests.
func NewToolWithRunner(r Runner, lookPath func(string) (string, error)) *Tool {
	return &Tool{runner: r, lookPath: lookPath}
}

// Mount runs sshfs with the invocation's arguments. The tool's exit code
// is necessary but not sufficient: callers re-verify through findmnt.
func (t *Tool) Mount(ctx context.Context, inv Invocation) error {
	out, err := t.runner.CombinedOutput(ctx, "sshfs", inv.Args()...)
	if err != nil {
		return commandError("sshfs", err, out)
	}
	return nil
}

// Unmount detaches the target, preferring fusermount3 and falling back
// to umount when fusermount3 is not installed.
func (t *Tool) Unmount(ctx context.Context, target string) error {
	name, args := "fusermount3", []string{"-u", target}
	if _, err := t.lookPath("fusermount3"); err != nil {
		name, args = "umount", []string{target}
	}

	out, err := t.runner.CombinedOutput(ctx, name, args...)
	if err != nil {
		return commandError(name, err, out)
	}
	return nil
}

func commandError(name string, err error, out []byte) error {
	var exitErr *exec.ExitError
	msg := strings.TrimSpace(string(out))
	if msg != "" {
		return fmt.Errorf("%s failed: %w: %s", name, err, msg)
	}
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return fmt.Errorf("%s could not be run: %w", name, err)
}
