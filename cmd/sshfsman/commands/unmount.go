package commands

import (
	"github.com/blockfeed/sshfsman/cmd/sshfsman/cmdutil"
	"github.com/blockfeed/sshfsman/pkg/manager"
	"github.com/spf13/cobra"
)

var (
	unmountShortcut string
	unmountPath     string
)

var unmountCmd = &cobra.Command{
	Use:   "unmount",
	Short: "Unmount a single sshfs target",
	Long: `Unmount a single sshfs target, addressed by shortcut or by path.

The unmount is attempted regardless of what findmnt currently reports, so
a stale mount table entry can still be cleared. Success is only claimed
once findmnt no longer reports a fuse.sshfs mount at the target. After a
verified unmount the mountpoint directory is removed if empty; a non-empty
or missing directory is left alone and reported, never treated as failure.

Examples:
  sshfsman unmount --shortcut phone
  sshfsman unmount --path /mnt/sshfs/ssd`,
	Args: cobra.NoArgs,
	RunE: runUnmount,
}

func init() {
	unmountCmd.Flags().StringVar(&unmountShortcut, "shortcut", "", "Shortcut name from the config")
	unmountCmd.Flags().StringVar(&unmountPath, "path", "", "Mountpoint path under the mount root")
}

func runUnmount(cmd *cobra.Command, args []string) error {
	mgr, _, err := cmdutil.LoadManager()
	if err != nil {
		return err
	}

	report, err := mgr.Unmount(cmd.Context(), manager.UnmountRequest{
		Shortcut: unmountShortcut,
		Path:     unmountPath,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Unmounted %s\n", report.Target)
	switch {
	case report.Pruned:
		cmd.Printf("Removed empty mountpoint %s\n", report.Target)
	case report.PruneSkipped != "":
		cmd.Printf("Kept mountpoint %s (%s)\n", report.Target, report.PruneSkipped)
	}
	return nil
}
