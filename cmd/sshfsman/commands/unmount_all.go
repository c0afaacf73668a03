package commands

import (
	"github.com/blockfeed/sshfsman/cmd/sshfsman/cmdutil"
	"github.com/spf13/cobra"
)

var unmountAllSystemWide bool

var unmountAllCmd = &cobra.Command{
	Use:   "unmount-all",
	Short: "Unmount every sshfs mount under the mount root",
	Long: `Unmount every active sshfs mount, one target at a time.

By default only mounts under the mount root are touched; --all extends the
sweep to fuse.sshfs mounts anywhere on the system. Nested targets are
unmounted deepest-first. A failure on one target is reported and the sweep
continues; the command exits nonzero if any target failed.

Examples:
  sshfsman unmount-all
  sshfsman unmount-all --all`,
	Args: cobra.NoArgs,
	RunE: runUnmountAll,
}

func init() {
	unmountAllCmd.Flags().BoolVar(&unmountAllSystemWide, "all", false, "Include sshfs mounts outside the mount root")
}

func runUnmountAll(cmd *cobra.Command, args []string) error {
	mgr, _, err := cmdutil.LoadManager()
	if err != nil {
		return err
	}

	report, err := mgr.UnmountAll(cmd.Context(), unmountAllSystemWide)
	if err != nil {
		return err
	}

	if len(report.Outcomes) == 0 {
		cmd.Println("No sshfs mounts found")
		return nil
	}
	for _, o := range report.Outcomes {
		switch {
		case o.Error != "":
			cmd.Printf("Failed %s: %s\n", o.Target, o.Error)
		case o.Pruned:
			cmd.Printf("Unmounted %s (mountpoint removed)\n", o.Target)
		case o.PruneSkipped != "":
			cmd.Printf("Unmounted %s (mountpoint kept: %s)\n", o.Target, o.PruneSkipped)
		default:
			cmd.Printf("Unmounted %s\n", o.Target)
		}
	}
	return report.Err()
}
