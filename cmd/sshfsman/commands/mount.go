package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blockfeed/sshfsman/cmd/sshfsman/cmdutil"
	"github.com/blockfeed/sshfsman/pkg/config"
	"github.com/blockfeed/sshfsman/pkg/manager"
	"github.com/spf13/cobra"
)

var (
	mountRemote             string
	mountShortcut           string
	mountDir                string
	mountPort               int
	mountIdentity           string
	mountOptions            []string
	mountReadonly           bool
	mountNoReconnect        bool
	mountCreateShortcutName string
)

var mountCmd = &cobra.Command{
	Use:   "mount [octet]",
	Short: "Mount an sshfs target",
	Long: `Mount an sshfs target under the mount root.

The target is either a configured shortcut (--shortcut) or an explicit
remote (--remote user@host:/path). With --shortcut, an optional trailing
integer replaces the host with <default_subnet>.<octet>, which requires a
configured default_subnet.

The mount is refused if findmnt already reports fuse.sshfs at the target,
and is only considered successful once findmnt confirms it afterwards.

Examples:
  # Mount by remote, save the invocation as shortcut "phone"
  sshfsman mount --remote user@192.0.2.10:/path --port 2222 --create-shortcut phone

  # Mount a shortcut with its saved parameters
  sshfsman mount --shortcut phone

  # Same shortcut, but the host is now <default_subnet>.138
  sshfsman mount --shortcut phone 138

  # Extra sshfs options (repeatable, comma-delimited ok)
  sshfsman mount --shortcut phone -o allow_other -o follow_symlinks`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMount,
}

func init() {
	mountCmd.Flags().StringVar(&mountRemote, "remote", "", "Remote in the form user@host:/path")
	mountCmd.Flags().StringVar(&mountShortcut, "shortcut", "", "Shortcut name from the config")
	mountCmd.Flags().StringVar(&mountDir, "mount-dir", "", "Mount directory name under the mount root")
	mountCmd.Flags().IntVarP(&mountPort, "port", "p", 0, "SSH port (passed to sshfs -p)")
	mountCmd.Flags().StringVarP(&mountIdentity, "identity", "i", "", "SSH identity file")
	mountCmd.Flags().StringArrayVarP(&mountOptions, "option", "o", nil, "Extra sshfs -o option (repeatable)")
	mountCmd.Flags().BoolVar(&mountReadonly, "readonly", false, "Mount read-only")
	mountCmd.Flags().BoolVar(&mountNoReconnect, "no-reconnect-defaults", false, "Disable default reconnect/keepalive sshfs options")
	mountCmd.Flags().StringVar(&mountCreateShortcutName, "create-shortcut", "", "Create/overwrite shortcut NAME from the effective invocation after a verified mount")
}

func runMount(cmd *cobra.Command, args []string) error {
	req := manager.MountRequest{
		Shortcut:       mountShortcut,
		Remote:         mountRemote,
		MountDir:       mountDir,
		CreateShortcut: mountCreateShortcutName,
		Overrides:      mountOverrides(cmd),
	}

	if len(args) == 1 {
		octet, err := parseOctet(args[0])
		if err != nil {
			return err
		}
		req.Octet = octet
	}

	mgr, _, err := cmdutil.LoadManager()
	if err != nil {
		return err
	}

	report, err := mgr.Mount(cmd.Context(), req)
	if err != nil {
		return mountHint(err)
	}

	cmd.Printf("Mounted %s at %s\n", report.Remote, report.Target)
	if report.SavedShortcut != "" {
		cmd.Printf("Saved shortcut %q\n", report.SavedShortcut)
	}
	return nil
}

// parseOctet parses the positional octet override. Zero is not a valid
// override; an explicit "0" is rejected rather than ignored.
func parseOctet(arg string) (int, error) {
	octet, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("octet override must be an integer, got %q", arg)
	}
	if octet < 1 || octet > 255 {
		return 0, fmt.Errorf("octet override must be 1..255, got %d", octet)
	}
	return octet, nil
}

// mountOverrides builds the CLI override set. Only flags the user
// actually supplied are overrides; unset flags defer to saved values.
func mountOverrides(cmd *cobra.Command) manager.Overrides {
	var ov manager.Overrides
	if cmd.Flags().Changed("port") {
		ov.Port = &mountPort
	}
	if cmd.Flags().Changed("identity") {
		ov.Identity = &mountIdentity
	}
	if cmd.Flags().Changed("readonly") {
		ov.ReadOnly = &mountReadonly
	}
	if cmd.Flags().Changed("no-reconnect-defaults") {
		ov.NoReconnectDefaults = &mountNoReconnect
	}
	ov.Options = config.SplitOptions(mountOptions)
	return ov
}

// mountHint decorates known failure patterns with a usable next step.
func mountHint(err error) error {
	msg := strings.ToLower(err.Error())

	hints := []struct {
		keywords []string
		hint     string
	}{
		{[]string{"connection refused", "connection timed out"}, "Is the SSH server reachable on that host and port?"},
		{[]string{"permission denied", "publickey"}, "Check the identity file (-i) and the remote user's authorized_keys"},
		{[]string{"fuse", "/dev/fuse"}, "Is the fuse kernel module available? Check that your user may mount FUSE filesystems"},
		{[]string{"no such file", "not a directory"}, "Does the remote path exist?"},
	}
	for _, h := range hints {
		for _, kw := range h.keywords {
			if strings.Contains(msg, kw) {
				return fmt.Errorf("%w\nHint: %s", err, h.hint)
			}
		}
	}
	return err
}
