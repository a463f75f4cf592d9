package main

import (
	"path"
	"strings"
)

// resolvePath resolves p relative to the directory of the document at base.
func resolvePath(base, p string) string {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "://") || strings.HasPrefix(p, "data:") {
		return p
	}
	dir := path.Dir(base)
	if base == "" || dir == "." {
		return p
	}
	if i := strings.Index(base, "://"); i >= 0 {
		// Keep the scheme separator intact.
		host := base[:i+3]
		rest := base[i+3:]
		if !strings.Contains(rest, "/") {
			return host + rest + "/" + p
		}
		return host + path.Join(path.Dir(rest), p)
	}
	return path.Join(dir, p)
}
