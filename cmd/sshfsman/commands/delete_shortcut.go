package commands

import (
	"fmt"

	"github.com/blockfeed/sshfsman/cmd/sshfsman/cmdutil"
	"github.com/blockfeed/sshfsman/internal/cli/prompt"
	"github.com/spf13/cobra"
)

var deleteShortcutYes bool

var deleteShortcutCmd = &cobra.Command{
	Use:   "delete-shortcut NAME",
	Short: "Delete a shortcut",
	Long: `Delete the named shortcut from the configuration. Active mounts are
not touched. Deleting a shortcut that does not exist is not an error.

Examples:
  sshfsman delete-shortcut phone
  sshfsman delete-shortcut phone --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDeleteShortcut,
}

func init() {
	deleteShortcutCmd.Flags().BoolVarP(&deleteShortcutYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDeleteShortcut(cmd *cobra.Command, args []string) error {
	name := args[0]

	if !deleteShortcutYes {
		ok, err := prompt.Confirm(fmt.Sprintf("Delete shortcut %q", name), false)
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Aborted")
			return nil
		}
	}

	mgr, _, err := cmdutil.LoadManager()
	if err != nil {
		return err
	}

	existed, err := mgr.DeleteShortcut(name)
	if err != nil {
		return err
	}
	if !existed {
		cmd.Printf("Shortcut %q does not exist, nothing to do\n", name)
		return nil
	}
	cmd.Printf("Deleted shortcut %q\n", name)
	return nil
}
