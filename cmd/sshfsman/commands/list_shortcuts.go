package commands

import (
	"sort"
	"strconv"
	"strings"

	"github.com/blockfeed/sshfsman/cmd/sshfsman/cmdutil"
	"github.com/blockfeed/sshfsman/internal/cli/output"
	"github.com/blockfeed/sshfsman/pkg/config"
	"github.com/spf13/cobra"
)

var listShortcutsJSON bool

var listShortcutsCmd = &cobra.Command{
	Use:   "list-shortcuts",
	Short: "List configured shortcuts",
	Long: `List every configured shortcut with its remote, mount directory and
saved invocation parameters.

Examples:
  sshfsman list-shortcuts
  sshfsman list-shortcuts --json`,
	Args: cobra.NoArgs,
	RunE: runListShortcuts,
}

func init() {
	listShortcutsCmd.Flags().BoolVar(&listShortcutsJSON, "json", false, "Output as JSON")
}

type shortcutRow struct {
	Name string `json:"name" yaml:"name"`
	config.Shortcut
}

func runListShortcuts(cmd *cobra.Command, args []string) error {
	mgr, _, err := cmdutil.LoadManager()
	if err != nil {
		return err
	}

	cfg := mgr.Config()
	names := make([]string, 0, len(cfg.Shortcuts))
	for name := range cfg.Shortcuts {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]shortcutRow, 0, len(names))
	table := output.NewTableData("NAME", "REMOTE", "MOUNT DIR", "PORT", "OPTIONS")
	for _, name := range names {
		sc := cfg.Shortcuts[name]
		rows = append(rows, shortcutRow{Name: name, Shortcut: sc})

		port := "-"
		if sc.Port != 0 {
			port = strconv.Itoa(sc.Port)
		}
		opts := "-"
		if len(sc.Options) > 0 {
			opts = strings.Join(sc.Options, ",")
		}
		table.AddRow(name, sc.Remote, sc.MountDir, port, opts)
	}

	return cmdutil.Print(cmd.OutOrStdout(), listShortcutsJSON, rows, len(rows) == 0, "No shortcuts configured", table)
}
