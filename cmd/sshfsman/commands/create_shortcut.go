package commands

import (
	"github.com/blockfeed/sshfsman/cmd/sshfsman/cmdutil"
	"github.com/blockfeed/sshfsman/pkg/config"
	"github.com/blockfeed/sshfsman/pkg/manager"
	"github.com/spf13/cobra"
)

var (
	createShortcutID          string
	createShortcutRemote      string
	createShortcutMountDir    string
	createShortcutPort        int
	createShortcutIdentity    string
	createShortcutOptions     []string
	createShortcutReadonly    bool
	createShortcutNoReconnect bool
)

var createShortcutCmd = &cobra.Command{
	Use:   "create-shortcut NAME",
	Short: "Create or overwrite a shortcut",
	Long: `Create or overwrite the named shortcut. An existing shortcut of the
same name is replaced in full; no field of the previous record survives.

Examples:
  sshfsman create-shortcut ssd --remote user@192.0.2.10:/mnt/ssd
  sshfsman create-shortcut phone --remote u@phone:/storage --port 2222 -o allow_other`,
	Args: cobra.ExactArgs(1),
	RunE: runCreateShortcut,
}

func init() {
	createShortcutCmd.Flags().StringVar(&createShortcutRemote, "remote", "", "Remote in the form user@host:/path (required)")
	createShortcutCmd.Flags().StringVar(&createShortcutID, "id", "", "Shortcut id (defaults to NAME)")
	createShortcutCmd.Flags().StringVar(&createShortcutMountDir, "mount-dir", "", "Mount directory name under the mount root (defaults to the remote path's base name)")
	createShortcutCmd.Flags().IntVarP(&createShortcutPort, "port", "p", 0, "SSH port saved with the shortcut")
	createShortcutCmd.Flags().StringVarP(&createShortcutIdentity, "identity", "i", "", "SSH identity file saved with the shortcut")
	createShortcutCmd.Flags().StringArrayVarP(&createShortcutOptions, "option", "o", nil, "sshfs -o option saved with the shortcut (repeatable)")
	createShortcutCmd.Flags().BoolVar(&createShortcutReadonly, "readonly", false, "Save the shortcut as read-only")
	createShortcutCmd.Flags().BoolVar(&createShortcutNoReconnect, "no-reconnect-defaults", false, "Save the shortcut without default reconnect options")
	_ = createShortcutCmd.MarkFlagRequired("remote")
}

func runCreateShortcut(cmd *cobra.Command, args []string) error {
	mgr, _, err := cmdutil.LoadManager()
	if err != nil {
		return err
	}

	sc, err := mgr.CreateShortcut(manager.CreateShortcutRequest{
		Name:                args[0],
		ID:                  createShortcutID,
		Remote:              createShortcutRemote,
		MountDir:            createShortcutMountDir,
		Port:                createShortcutPort,
		Identity:            createShortcutIdentity,
		Options:             config.SplitOptions(createShortcutOptions),
		ReadOnly:            createShortcutReadonly,
		NoReconnectDefaults: createShortcutNoReconnect,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Saved shortcut %q (%s -> %s)\n", args[0], sc.Remote, sc.MountDir)
	return nil
}
