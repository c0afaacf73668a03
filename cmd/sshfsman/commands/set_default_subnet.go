package commands

import (
	"github.com/blockfeed/sshfsman/cmd/sshfsman/cmdutil"
	"github.com/spf13/cobra"
)

var setDefaultSubnetCmd = &cobra.Command{
	Use:   "set-default-subnet SUBNET",
	Short: "Set the default subnet for octet-override addressing",
	Long: `Set the default subnet used by octet-override mounts. SUBNET is the
first three octets of an IPv4 address, e.g. "192.0.2"; a mount invoked as
"mount --shortcut NAME 138" then connects to 192.0.2.138.

Examples:
  sshfsman set-default-subnet 192.0.2`,
	Args: cobra.ExactArgs(1),
	RunE: runSetDefaultSubnet,
}

func runSetDefaultSubnet(cmd *cobra.Command, args []string) error {
	mgr, _, err := cmdutil.LoadManager()
	if err != nil {
		return err
	}
	if err := mgr.SetDefaultSubnet(args[0]); err != nil {
		return err
	}
	cmd.Printf("Default subnet set to %s\n", mgr.Config().DefaultSubnet)
	return nil
}
