package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/blockfeed/sshfsman/internal/logger"
)

// UnmountRequest names the unmount target: exactly one of Shortcut or
// Path.
type UnmountRequest struct {
	Shortcut string
	Path     string
}

// UnmountReport is the outcome of one unmount, including the prune
// decision. PruneSkipped is informational, never an error: the directory
// stays in place and the reason is reported.
type UnmountReport struct {
	Target       string `json:"target" yaml:"target"`
	Pruned       bool   `json:"pruned" yaml:"pruned"`
	PruneSkipped string `json:"prune_skipped,omitempty" yaml:"prune_skipped,omitempty"`
}

// Unmount resolves the target, invokes the unmount tool, re-verifies via
// the ground truth, and prunes the mountpoint directory only if it is now
// unmounted and empty.
func (m *Manager) Unmount(ctx context.Context, req UnmountRequest) (*UnmountReport, error) {
	target, err := m.resolveUnmountTarget(req)
	if err != nil {
		return nil, err
	}
	return m.unmountOne(ctx, target, true)
}

func (m *Manager) resolveUnmountTarget(req UnmountRequest) (string, error) {
	switch {
	case req.Shortcut != "" && req.Path != "":
		return "", fmt.Errorf("provide either a shortcut or a path, not both")
	case req.Shortcut != "":
		return m.TargetFor(req.Shortcut)
	case req.Path != "":
		return m.checkedPath(req.Path)
	default:
		return "", fmt.Errorf("unmount requires a shortcut name or a path")
	}
}

// unmountOne runs the unmount workflow against a resolved target. The
// unmount tool is invoked unconditionally; its failure is surfaced, but
// "already unmounted" is not special-cased here.
func (m *Manager) unmountOne(ctx context.Context, target string, prune bool) (*UnmountReport, error) {
	logger.Debug("unmounting", "target", target)
	if err := m.unmounter.Unmount(ctx, target); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmountFailed, err)
	}

	mounted, err := m.inspector.IsMounted(ctx, target)
	if err != nil {
		return nil, err
	}
	if mounted {
		return nil, fmt.Errorf("%w: %s is still mounted", ErrUnmountFailed, target)
	}

	report := &UnmountReport{Target: target}
	if !prune {
		report.PruneSkipped = "outside mount_root"
		return report, nil
	}
	m.pruneDir(target, report)
	return report, nil
}

// pruneDir removes exactly the target directory, non-recursively, and
// only when it is empty. Any skip is recorded on the report.
func (m *Manager) pruneDir(target string, report *UnmountReport) {
	entries, err := os.ReadDir(target)
	switch {
	case err != nil:
		report.PruneSkipped = fmt.Sprintf("cannot read directory: %v", err)
	case len(entries) > 0:
		report.PruneSkipped = "directory not empty"
	default:
		if err := os.Remove(target); err != nil {
			report.PruneSkipped = fmt.Sprintf("remove failed: %v", err)
			return
		}
		report.Pruned = true
		logger.Debug("pruned mountpoint", "target", target)
	}
}

// UnmountOutcome is the per-target result inside an unmount-all run.
type UnmountOutcome struct {
	Target       string `json:"target" yaml:"target"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty"`
	Pruned       bool   `json:"pruned" yaml:"pruned"`
	PruneSkipped string `json:"prune_skipped,omitempty" yaml:"prune_skipped,omitempty"`

	err error
}

// UnmountAllReport aggregates the outcomes of an unmount-all run.
type UnmountAllReport struct {
	Outcomes []UnmountOutcome `json:"outcomes" yaml:"outcomes"`
}

// Err returns the joined per-target failures, or nil if every target
// unmounted cleanly.
func (r *UnmountAllReport) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Target, o.err))
		}
	}
	return errors.Join(errs...)
}

// UnmountAll discovers every sshfs mount (under the mount root, or
// system-wide when systemWide is set) and applies the unmount workflow
// to each, sequentially and deepest-first. A failure on one target is
// recorded and does not abort the rest.
func (m *Manager) UnmountAll(ctx context.Context, systemWide bool) (*UnmountAllReport, error) {
	entries, err := m.inspector.ListMounts(ctx)
	if err != nil {
		return nil, err
	}

	var targets []string
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Target] {
			continue
		}
		seen[e.Target] = true
		if systemWide || m.underRoot(e.Target) {
			targets = append(targets, e.Target)
		}
	}

	// Deepest-first so nested mounts detach before their parents; the
	// lexical tiebreak keeps the order deterministic.
	sort.Slice(targets, func(i, j int) bool {
		di := strings.Count(targets[i], "/")
		dj := strings.Count(targets[j], "/")
		if di != dj {
			return di > dj
		}
		return targets[i] < targets[j]
	})

	report := &UnmountAllReport{}
	for _, target := range targets {
		one, err := m.unmountOne(ctx, target, m.underRoot(target))
		outcome := UnmountOutcome{Target: target, err: err}
		if err != nil {
			outcome.Error = err.Error()
			logger.Warn("unmount failed", "target", target, "error", err)
		} else {
			outcome.Pruned = one.Pruned
			outcome.PruneSkipped = one.PruneSkipped
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	return report, nil
}
