package config

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Remote is a parsed user@host:/path sshfs source.
type Remote struct {
	User string
	Host string
	Path string
}

// String renders the remote back into sshfs source form.
func (r Remote) String() string {
	if r.User == "" {
		return r.Host + ":" + r.Path
	}
	return r.User + "@" + r.Host + ":" + r.Path
}

// ParseRemote parses a remote spec of the form user@host:/remote/path.
// The path is normalized to start with a slash.
func ParseRemote(s string) (Remote, error) {
	userhost, p, ok := strings.Cut(s, ":")
	if !ok || userhost == "" || p == "" {
		return Remote{}, fmt.Errorf("remote must be in the form user@host:/path, got %q", s)
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	r := Remote{Path: p}
	if user, host, ok := strings.Cut(userhost, "@"); ok {
		if user == "" || host == "" || strings.Contains(host, "@") {
			return Remote{}, fmt.Errorf("remote must contain exactly one @ between user and host, got %q", s)
		}
		r.User, r.Host = user, host
	} else {
		r.Host = userhost
	}
	return r, nil
}

// ParseSubnet validates a three-octet subnet prefix like "192.0.2" and
// returns it in canonical form (no leading zeros).
func ParseSubnet(s string) (string, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("default_subnet must be three octets like 192.0.2, got %q", s)
	}
	out := make([]string, 0, 3)
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > 255 {
			return "", fmt.Errorf("default_subnet octets must be 0..255, got %q", s)
		}
		out = append(out, strconv.Itoa(v))
	}
	return strings.Join(out, "."), nil
}

// CheckMountDir rejects mount_dir values that are not a single path
// segment directly under the mount root.
func CheckMountDir(name string) error {
	if name == "" {
		return fmt.Errorf("mount_dir must not be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("mount_dir must not be %q", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("mount_dir must be a single path segment, got %q", name)
	}
	return nil
}

var mountDirUnsafe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeMountDir collapses characters outside [A-Za-z0-9._-] to a single
// underscore and trims leading/trailing separators. An empty result falls
// back to "mount".
func SanitizeMountDir(name string) string {
	name = mountDirUnsafe.ReplaceAllString(strings.TrimSpace(name), "_")
	name = strings.Trim(name, "_.-")
	if name == "" {
		return "mount"
	}
	return name
}

// InferMountDir derives a mount directory name from a remote spec: the
// basename of the remote path, falling back to the host.
func InferMountDir(remote string) (string, error) {
	r, err := ParseRemote(remote)
	if err != nil {
		return "", err
	}
	base := path.Base(r.Path)
	if base == "/" || base == "." {
		base = r.Host
	}
	return SanitizeMountDir(base), nil
}

// SplitOptions expands repeatable -o values, splitting comma-delimited
// parts so "-o a,b" is equivalent to "-o a -o b". Order and duplicates
// are preserved.
func SplitOptions(opts []string) []string {
	var out []string
	for _, o := range opts {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
