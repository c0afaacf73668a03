package manager

import (
	"fmt"
	"strconv"

	"github.com/blockfeed/sshfsman/pkg/config"
)

// Overrides carries the invocation parameters supplied on the command
// line. Nil pointer fields mean "not supplied", which is distinct from a
// zero value: only explicitly supplied values win over saved ones.
type Overrides struct {
	Port                *int
	Identity            *string
	ReadOnly            *bool
	NoReconnectDefaults *bool
	Options             []string
}

// Invocation is the effective parameter set after merging saved shortcut
// values with command-line overrides. It is built fresh per command and
// never stored, except when the command explicitly creates a shortcut.
type Invocation struct {
	Remote              string
	Port                int
	Identity            string
	Options             []string
	ReadOnly            bool
	NoReconnectDefaults bool
}

// merge combines saved shortcut parameters with CLI overrides.
// Precedence per field: explicit CLI value > saved value > hard default.
// Option lists concatenate saved-first with no deduplication; the mount
// tool's own last-wins semantics resolve duplicate keys.
func merge(saved *config.Shortcut, ov Overrides) Invocation {
	var inv Invocation
	if saved != nil {
		inv.Port = saved.Port
		inv.Identity = saved.Identity
		inv.ReadOnly = saved.ReadOnly
		inv.NoReconnectDefaults = saved.NoReconnectDefaults
		inv.Options = append(inv.Options, saved.Options...)
	}
	if ov.Port != nil {
		inv.Port = *ov.Port
	}
	if ov.Identity != nil {
		inv.Identity = *ov.Identity
	}
	if ov.ReadOnly != nil {
		inv.ReadOnly = *ov.ReadOnly
	}
	if ov.NoReconnectDefaults != nil {
		inv.NoReconnectDefaults = *ov.NoReconnectDefaults
	}
	inv.Options = append(inv.Options, ov.Options...)
	return inv
}

// resolveRemote derives the effective remote for a shortcut. With no
// octet override the stored remote is used verbatim. With an override,
// the host becomes <default_subnet>.<octet>; a missing default_subnet is
// ErrAmbiguousAddress, never a silent fallback to the stored host. The
// stored shortcut is not mutated.
func resolveRemote(sc config.Shortcut, octet int, defaultSubnet string) (string, error) {
	if octet == 0 {
		return sc.Remote, nil
	}
	if octet < 1 || octet > 255 {
		return "", fmt.Errorf("octet override must be 1..255, got %d", octet)
	}
	if defaultSubnet == "" {
		return "", fmt.Errorf("%w (octet %d)", ErrAmbiguousAddress, octet)
	}

	r, err := config.ParseRemote(sc.Remote)
	if err != nil {
		return "", err
	}
	r.Host = defaultSubnet + "." + strconv.Itoa(octet)
	return r.String(), nil
}
