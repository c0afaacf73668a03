// Package cmdutil provides shared plumbing for sshfsman commands.
package cmdutil

import (
	"io"

	"github.com/blockfeed/sshfsman/internal/cli/output"
	"github.com/blockfeed/sshfsman/pkg/config"
	"github.com/blockfeed/sshfsman/pkg/findmnt"
	"github.com/blockfeed/sshfsman/pkg/manager"
	"github.com/blockfeed/sshfsman/pkg/sshfs"
)

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the values of the persistent flags.
type GlobalFlags struct {
	ConfigPath string
	Output     string
	NoColor    bool
	Verbose    bool
}

// NewStore returns the config store, honoring the --config override.
func NewStore() (*config.Store, error) {
	if Flags.ConfigPath != "" {
		return config.NewStoreAt(Flags.ConfigPath), nil
	}
	return config.NewStore()
}

// LoadManager loads the configuration and wires a Manager with the real
// findmnt inspector and sshfs tool.
func LoadManager() (*manager.Manager, *config.Store, error) {
	store, err := NewStore()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	tool := sshfs.NewTool()
	mgr := manager.New(cfg, store, findmnt.New(findmnt.FSTypeSSHFS), tool, tool)
	return mgr, store, nil
}

// ResolveFormat parses the --output flag, with a per-command --json flag
// taking precedence.
func ResolveFormat(jsonFlag bool) (output.Format, error) {
	if jsonFlag {
		return output.FormatJSON, nil
	}
	return output.ParseFormat(Flags.Output)
}

// Print renders data in the resolved format. Table format uses the
// renderer; an empty result prints emptyMsg instead.
func Print(w io.Writer, jsonFlag bool, data any, isEmpty bool, emptyMsg string, table output.TableRenderer) error {
	format, err := ResolveFormat(jsonFlag)
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		if isEmpty {
			if emptyMsg != "" {
				_, _ = io.WriteString(w, emptyMsg+"\n")
			}
			return nil
		}
		return output.PrintTable(w, table)
	}
}
