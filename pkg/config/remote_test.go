package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemote(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Remote
		wantErr bool
	}{
		{
			name:  "full form",
			input: "user@192.0.2.10:/srv/data",
			want:  Remote{User: "user", Host: "192.0.2.10", Path: "/srv/data"},
		},
		{
			name:  "relative path normalized",
			input: "user@host:data",
			want:  Remote{User: "user", Host: "host", Path: "/data"},
		},
		{
			name:  "no user",
			input: "host:/data",
			want:  Remote{Host: "host", Path: "/data"},
		},
		{name: "missing colon", input: "user@host", wantErr: true},
		{name: "empty path", input: "user@host:", wantErr: true},
		{name: "empty userhost", input: ":/data", wantErr: true},
		{name: "double at", input: "a@b@c:/data", wantErr: true},
		{name: "empty user", input: "@host:/data", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRemote(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Remote {
	t.Helper()
	r, err := ParseRemote(s)
	require.NoError(t, err)
	return r
}

func TestParseSubnet(t *testing.T) {
	got, err := ParseSubnet("192.0.2")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2", got)

	got, err = ParseSubnet("010.001.254")
	require.NoError(t, err)
	assert.Equal(t, "10.1.254", got)

	for _, bad := range []string{"", "192.0", "192.0.2.1", "192.0.256", "a.b.c", "192.0.-1"} {
		_, err := ParseSubnet(bad)
		assert.Error(t, err, "subnet %q should be rejected", bad)
	}
}

func TestCheckMountDir(t *testing.T) {
	assert.NoError(t, CheckMountDir("phone"))
	assert.NoError(t, CheckMountDir("backup.2024"))

	for _, bad := range []string{"", ".", "..", "a/b", `a\b`} {
		assert.Error(t, CheckMountDir(bad), "mount_dir %q should be rejected", bad)
	}
}

func TestSanitizeMountDir(t *testing.T) {
	assert.Equal(t, "phone", SanitizeMountDir("phone"))
	assert.Equal(t, "my_share", SanitizeMountDir("my share"))
	assert.Equal(t, "a_b", SanitizeMountDir("a/../b"))
	assert.Equal(t, "mount", SanitizeMountDir(""))
	assert.Equal(t, "mount", SanitizeMountDir("///"))
}

func TestInferMountDir(t *testing.T) {
	got, err := InferMountDir("user@host:/srv/media")
	require.NoError(t, err)
	assert.Equal(t, "media", got)

	got, err = InferMountDir("user@host:/")
	require.NoError(t, err)
	assert.Equal(t, "host", got)
}

func TestSplitOptions(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitOptions([]string{"a,b", "c"}))
	assert.Equal(t, []string{"ro", "ro"}, SplitOptions([]string{"ro", " ro "}), "duplicates preserved")
	assert.Nil(t, SplitOptions(nil))
	assert.Nil(t, SplitOptions([]string{",", ""}))
}
