// Package findmnt wraps findmnt(8), the single ground truth for mount
// state. A path counts as mounted if and only if findmnt, restricted to
// that exact mountpoint, reports the expected filesystem type. Directory
// existence, emptiness, or any other signal is never consulted.
package findmnt

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// FSTypeSSHFS is the filesystem type the kernel reports for sshfs mounts.
const FSTypeSSHFS = "fuse.sshfs"

// ErrUnavailable indicates findmnt itself is missing or failed. Mount
// state is never guessed when the ground truth cannot answer.
var ErrUnavailable = errors.New("findmnt unavailable")

// Entry is one mount record as reported by findmnt.
type Entry struct {
	Target string `json:"target" yaml:"target"`
	Source string `json:"source" yaml:"source"`
	FSType string `json:"fstype" yaml:"fstype"`
}

// Inspector answers mount-state queries. It is injected into every
// workflow so the authoritative predicate has exactly one implementation.
type Inspector interface {
	// IsMounted reports whether path is an active mountpoint of the
	// expected filesystem type.
	IsMounted(ctx context.Context, path string) (bool, error)

	// ListMounts returns every mount of the expected filesystem type on
	// the system.
	ListMounts(ctx context.Context) ([]Entry, error)
}

// Runner executes an external command and returns its stdout and exit
// code. A non-nil error means the command could not be run at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout []byte, exitCode int, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, int, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, exitErr.ExitCode(), nil
		}
		return nil, -1, err
	}
	return out, 0, nil
}

// Client is the findmnt-backed Inspector.
type Client struct {
	fstype string
	runner Runner
}

// New returns a Client that looks for the given filesystem type.
func New(fstype string) *Client {
	return &Client{fstype: fstype, runner: execRunner{}}
}

// NewWithRunner constructs a Client with a custom Runner, used in tests.
func NewWithRunner(fstype string, r Runner) *Client {
	return &Client{fstype: fstype, runner: r}
}

// IsMounted queries `findmnt -M <path>` so only an exact mountpoint
// matches; a path merely inside a mount does not count. Exit code 1 means
// no mountpoint at that path. Anything the tool cannot answer surfaces as
// ErrUnavailable.
func (c *Client) IsMounted(ctx context.Context, path string) (bool, error) {
	out, code, err := c.runner.Run(ctx, "findmnt", "-n", "-M", path, "-o", "FSTYPE")
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	switch code {
	case 0:
		return strings.TrimSpace(string(out)) == c.fstype, nil
	case 1:
		return false, nil
	default:
		return false, fmt.Errorf("%w: findmnt -M %s exited %d", ErrUnavailable, path, code)
	}
}

// ListMounts queries `findmnt -t <fstype>` in raw mode and parses one
// entry per line. Exit code 1 means no mounts of that type exist.
func (c *Client) ListMounts(ctx context.Context) ([]Entry, error) {
	out, code, err := c.runner.Run(ctx, "findmnt", "-rn", "-t", c.fstype, "-o", "TARGET,SOURCE,FSTYPE")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	switch code {
	case 0:
		return c.parseList(out), nil
	case 1:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: findmnt -t %s exited %d", ErrUnavailable, c.fstype, code)
	}
}

func (c *Client) parseList(out []byte) []Entry {
	var entries []Entry
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 3 {
			continue
		}
		e := Entry{
			Target: unescape(fields[0]),
			Source: unescape(fields[1]),
			FSType: fields[2],
		}
		if e.FSType != c.fstype {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// unescape decodes the \xNN hex escapes findmnt raw output uses for
// whitespace and backslashes in paths.
func unescape(s string) string {
	if !strings.Contains(s, `\x`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && s[i+1] == 'x' {
			if hi, ok1 := fromHex(s[i+2]); ok1 {
				if lo, ok2 := fromHex(s[i+3]); ok2 {
					b.WriteByte(hi<<4 | lo)
					i += 3
					continue
				}
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func fromHex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
