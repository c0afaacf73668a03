package manager

import "errors"

// Fatal condition sentinels. Workflows wrap these with target context via
// fmt.Errorf("%w: ...") so callers can classify with errors.Is.
var (
	// ErrShortcutNotFound indicates a named shortcut does not exist in
	// the configuration.
	ErrShortcutNotFound = errors.New("unknown shortcut")

	// ErrMountConflict is the mount guard: the target is already an
	// active sshfs mount, so no directory or process action is taken.
	ErrMountConflict = errors.New("already mounted")

	// ErrAmbiguousAddress indicates an octet override was supplied but
	// no default_subnet is configured to resolve it against.
	ErrAmbiguousAddress = errors.New("octet override requires a configured default_subnet")

	// ErrMountFailed indicates the mount tool errored, or exited zero
	// without the mount appearing in the ground truth afterwards.
	ErrMountFailed = errors.New("mount failed")

	// ErrUnmountFailed indicates the unmount tool errored, or the target
	// is still mounted afterwards.
	ErrUnmountFailed = errors.New("unmount failed")
)
