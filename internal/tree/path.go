package tree

import (
	"path/filepath"
	"strings"
)

// Components splits p into its OS-native path components. For an absolute
// path the first component is the root itself ("/" or `C:\`), so joining
// the components with filepath.Join reproduces the cleaned path.
func Components(p string) []string {
	p = filepath.Clean(p)
	vol := filepath.VolumeName(p)
	rest := p[len(vol):]

	var parts []string
	if strings.HasPrefix(rest, string(filepath.Separator)) {
		parts = append(parts, vol+string(filepath.Separator))
		rest = rest[1:]
	} else if vol != "" {
		parts = append(parts, vol)
	}

	for _, c := range strings.Split(rest, string(filepath.Separator)) {
		if c == "" || c == "." {
			continue
		}
		parts = append(parts, c)
	}
	return parts
}

// CommonPrefixLen returns the number of leading components a and b share.
func CommonPrefixLen(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// joinComponents is the inverse of Components for the first n entries.
func joinComponents(parts []string, n int) string {
	if n == 0 {
		return ""
	}
	return filepath.Join(parts[:n]...)
}
