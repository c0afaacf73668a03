package commands

import (
	"github.com/blockfeed/sshfsman/cmd/sshfsman/cmdutil"
	"github.com/blockfeed/sshfsman/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	statusShortcut string
	statusPath     string
	statusJSON     bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show mount state of shortcuts or a path",
	Long: `Show whether each shortcut's mountpoint currently carries an sshfs
mount, as reported by findmnt. With --shortcut or --path the report covers
that single target.

Examples:
  sshfsman status
  sshfsman status --shortcut phone
  sshfsman status --path /mnt/sshfs/ssd --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusShortcut, "shortcut", "", "Report a single shortcut")
	statusCmd.Flags().StringVar(&statusPath, "path", "", "Report a single path")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	mgr, _, err := cmdutil.LoadManager()
	if err != nil {
		return err
	}

	rows, err := mgr.Status(cmd.Context(), statusShortcut, statusPath)
	if err != nil {
		return err
	}

	table := output.NewTableData("SHORTCUT", "TARGET", "STATUS")
	for _, r := range rows {
		name := r.Shortcut
		if name == "" {
			name = "-"
		}
		state := "not mounted"
		if r.Mounted {
			state = "mounted"
		}
		table.AddRow(name, r.Target, state)
	}

	return cmdutil.Print(cmd.OutOrStdout(), statusJSON, rows, len(rows) == 0, "No shortcuts configured", table)
}
