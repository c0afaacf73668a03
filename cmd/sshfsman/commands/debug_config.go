package commands

import (
	"sort"

	"github.com/blockfeed/sshfsman/cmd/sshfsman/cmdutil"
	"github.com/blockfeed/sshfsman/internal/cli/output"
	"github.com/blockfeed/sshfsman/pkg/manager"
	"github.com/spf13/cobra"
)

var debugConfigJSON bool

var debugConfigCmd = &cobra.Command{
	Use:   "debug-config",
	Short: "Show the effective configuration and current mounts",
	Long: `Show the resolved configuration (config file path, mount root,
default subnet, shortcuts) together with the sshfs mounts currently active
under the mount root. Useful for diagnosing which config file is in effect
and how shortcut mountpoints resolve.`,
	Args: cobra.NoArgs,
	RunE: runDebugConfig,
}

func init() {
	debugConfigCmd.Flags().BoolVar(&debugConfigJSON, "json", false, "Output as JSON")
}

type debugReport struct {
	ConfigPath    string             `json:"config_path" yaml:"config_path"`
	MountRoot     string             `json:"mount_root" yaml:"mount_root"`
	DefaultSubnet string             `json:"default_subnet,omitempty" yaml:"default_subnet,omitempty"`
	Shortcuts     []shortcutRow      `json:"shortcuts" yaml:"shortcuts"`
	Mounts        []manager.MountRow `json:"mounts" yaml:"mounts"`
}

func runDebugConfig(cmd *cobra.Command, args []string) error {
	mgr, store, err := cmdutil.LoadManager()
	if err != nil {
		return err
	}

	cfg := mgr.Config()
	report := debugReport{
		ConfigPath:    store.Path(),
		MountRoot:     cfg.MountRoot,
		DefaultSubnet: cfg.DefaultSubnet,
		Shortcuts:     []shortcutRow{},
		Mounts:        []manager.MountRow{},
	}
	names := make([]string, 0, len(cfg.Shortcuts))
	for name := range cfg.Shortcuts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		report.Shortcuts = append(report.Shortcuts, shortcutRow{Name: name, Shortcut: cfg.Shortcuts[name]})
	}

	mounts, err := mgr.ListMounts(cmd.Context(), false)
	if err == nil {
		report.Mounts = mounts
	} else {
		cmd.PrintErrf("Warning: could not list mounts: %v\n", err)
	}

	format, err := cmdutil.ResolveFormat(debugConfigJSON)
	if err != nil {
		return err
	}
	if format == output.FormatJSON {
		return output.PrintJSON(cmd.OutOrStdout(), report)
	}
	if format == output.FormatYAML {
		return output.PrintYAML(cmd.OutOrStdout(), report)
	}

	cmd.Printf("Config file:    %s\n", report.ConfigPath)
	cmd.Printf("Mount root:     %s\n", report.MountRoot)
	subnet := report.DefaultSubnet
	if subnet == "" {
		subnet = "(not set)"
	}
	cmd.Printf("Default subnet: %s\n", subnet)
	cmd.Printf("Shortcuts:      %d\n", len(report.Shortcuts))
	for _, sc := range report.Shortcuts {
		target, err := mgr.TargetFor(sc.Name)
		if err != nil {
			continue
		}
		cmd.Printf("  %-16s %s -> %s\n", sc.Name, sc.Remote, target)
	}
	cmd.Printf("Active mounts:  %d\n", len(report.Mounts))
	for _, m := range report.Mounts {
		cmd.Printf("  %s on %s\n", m.Source, m.Target)
	}
	return nil
}
