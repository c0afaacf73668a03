package commands

import (
	"github.com/blockfeed/sshfsman/cmd/sshfsman/cmdutil"
	"github.com/blockfeed/sshfsman/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	listMountsSystemWide bool
	listMountsJSON       bool
)

var listMountsCmd = &cobra.Command{
	Use:   "list-mounts",
	Short: "List active sshfs mounts",
	Long: `List active sshfs mounts as reported by findmnt, joined with the
shortcut whose mountpoint matches the target. Mounts outside the mount
root are hidden unless --all is given.

Examples:
  sshfsman list-mounts
  sshfsman list-mounts --all --json`,
	Args: cobra.NoArgs,
	RunE: runListMounts,
}

func init() {
	listMountsCmd.Flags().BoolVar(&listMountsSystemWide, "all", false, "Include sshfs mounts outside the mount root")
	listMountsCmd.Flags().BoolVar(&listMountsJSON, "json", false, "Output as JSON")
}

func runListMounts(cmd *cobra.Command, args []string) error {
	mgr, _, err := cmdutil.LoadManager()
	if err != nil {
		return err
	}

	rows, err := mgr.ListMounts(cmd.Context(), listMountsSystemWide)
	if err != nil {
		return err
	}

	table := output.NewTableData("SHORTCUT", "SOURCE", "TARGET")
	for _, r := range rows {
		name := r.Shortcut
		if name == "" {
			name = "-"
		}
		table.AddRow(name, r.Source, r.Target)
	}

	return cmdutil.Print(cmd.OutOrStdout(), listMountsJSON, rows, len(rows) == 0, "No sshfs mounts found", table)
}
