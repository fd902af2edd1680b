// Package web bundles the HTML templates and static assets into the binary.
package web

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"strings"
	"sync"
)

//go:embed templates/*.html static
var files embed.FS

const staticPrefix = "/static/"

var (
	versionsMu sync.Mutex
	versions   = make(map[string]string)
)

// Templates returns the page templates rooted at the templates directory.
func Templates() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// AssetVersion returns a short content hash for an asset under /static, or ""
// when the path does not name an embedded file. Embedded files carry no
// modification time, so the hash stands in for it.
func AssetVersion(path string) string {
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	if !strings.HasPrefix(path, staticPrefix) {
		return ""
	}
	name := strings.TrimPrefix(path, staticPrefix)

	versionsMu.Lock()
	defer versionsMu.Unlock()

	if version, ok := versions[name]; ok {
		return version
	}

	data, err := fs.ReadFile(Static(), name)
	if err != nil {
		versions[name] = ""
		return ""
	}
	sum := sha256.Sum256(data)
	version := hex.EncodeToString(sum[:])[:12]
	versions[name] = version
	return version
}
