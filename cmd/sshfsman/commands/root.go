// Package commands implements the sshfsman CLI commands.
package commands

import (
	"github.com/blockfeed/sshfsman/cmd/sshfsman/cmdutil"
	"github.com/blockfeed/sshfsman/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "sshfsman",
	Short: "Manage sshfs mounts under a configurable mount root",
	Long: `sshfsman manages sshfs mounts under a configurable mount root
(default /mnt/sshfs) and gives each one a durable shortcut identity, so
reconnecting after an address change is a one-line operation.

Mount state is determined exclusively through findmnt: a path counts as
mounted only if findmnt reports fuse.sshfs at exactly that path. Directory
existence or contents are never used to guess mount state.

Examples:
  # Mount by remote and save a shortcut named "phone"
  sshfsman mount --remote user@192.0.2.10:/path --port 2222 --create-shortcut phone

  # Mount a shortcut, addressing the host as <default_subnet>.138
  sshfsman mount --shortcut phone 138

  # Unmount everything under the mount root
  sshfsman unmount-all

Use "sshfsman [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmdutil.Flags.ConfigPath, _ = cmd.Flags().GetString("config")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")

		logger.SetVerbose(cmdutil.Flags.Verbose)
		if cmdutil.Flags.NoColor {
			logger.SetColor(false)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file path (default $XDG_CONFIG_HOME/sshfsman/config.toml)")
	rootCmd.PersistentFlags().String("output", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(unmountCmd)
	rootCmd.AddCommand(unmountAllCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listMountsCmd)
	rootCmd.AddCommand(listShortcutsCmd)
	rootCmd.AddCommand(createShortcutCmd)
	rootCmd.AddCommand(deleteShortcutCmd)
	rootCmd.AddCommand(setDefaultSubnetCmd)
	rootCmd.AddCommand(debugConfigCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
