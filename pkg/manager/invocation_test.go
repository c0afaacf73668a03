package manager

import (
	"testing"

	"github.com/blockfeed/sshfsman/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergePrecedence(t *testing.T) {
	saved := &config.Shortcut{
		Remote:   "user@host:/data",
		Port:     2222,
		Identity: "/home/u/.ssh/saved",
		ReadOnly: true,
	}

	t.Run("cli wins over saved", func(t *testing.T) {
		inv := merge(saved, Overrides{
			Port:     intp(3333),
			Identity: strp("/home/u/.ssh/other"),
			ReadOnly: boolp(false),
		})
		assert.Equal(t, 3333, inv.Port)
		assert.Equal(t, "/home/u/.ssh/other", inv.Identity)
		assert.False(t, inv.ReadOnly)
	})

	t.Run("saved wins over defaults", func(t *testing.T) {
		inv := merge(saved, Overrides{})
		assert.Equal(t, 2222, inv.Port)
		assert.Equal(t, "/home/u/.ssh/saved", inv.Identity)
		assert.True(t, inv.ReadOnly)
		assert.False(t, inv.NoReconnectDefaults)
	})

	t.Run("hard defaults with nothing saved", func(t *testing.T) {
		inv := merge(nil, Overrides{})
		assert.Zero(t, inv.Port)
		assert.Empty(t, inv.Identity)
		assert.False(t, inv.ReadOnly)
		assert.False(t, inv.NoReconnectDefaults)
	})
}

func TestMergeOptionsConcatenation(t *testing.T) {
	saved := &config.Shortcut{
		Remote:  "user@host:/data",
		Options: []string{"allow_other"},
	}

	inv := merge(saved, Overrides{Options: []string{"ro"}})
	assert.Equal(t, []string{"allow_other", "ro"}, inv.Options, "saved first, CLI appended")

	inv = merge(saved, Overrides{Options: []string{"allow_other"}})
	assert.Equal(t, []string{"allow_other", "allow_other"}, inv.Options, "never deduplicated")
}

func TestResolveRemote(t *testing.T) {
	sc := config.Shortcut{Remote: "user@192.0.2.10:/storage"}

	t.Run("no override uses stored host verbatim", func(t *testing.T) {
		got, err := resolveRemote(sc, 0, "192.0.2")
		require.NoError(t, err)
		assert.Equal(t, "user@192.0.2.10:/storage", got)
	})

	t.Run("override builds host from subnet", func(t *testing.T) {
		got, err := resolveRemote(sc, 138, "192.0.2")
		require.NoError(t, err)
		assert.Equal(t, "user@192.0.2.138:/storage", got)
	})

	t.Run("override without subnet is ambiguous", func(t *testing.T) {
		_, err := resolveRemote(sc, 138, "")
		assert.ErrorIs(t, err, ErrAmbiguousAddress)
	})

	t.Run("octet out of range", func(t *testing.T) {
		for _, octet := range []int{-1, 256, 1000} {
			_, err := resolveRemote(sc, octet, "192.0.2")
			assert.Error(t, err, "octet %d", octet)
		}
	})

	t.Run("hostname shortcut also resolves against subnet", func(t *testing.T) {
		got, err := resolveRemote(config.Shortcut{Remote: "pi@phone.lan:/sdcard"}, 7, "10.0.0")
		require.NoError(t, err)
		assert.Equal(t, "pi@10.0.0.7:/sdcard", got)
	})
}
