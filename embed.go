// Package rolodex provides embedded runtime resources (seed assets)
// and an overlay filesystem that checks local disk first, falling back to embedded.
package rolodex

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed assets/config.yaml.template assets/sample_book.json
var rawAssets embed.FS

// Assets is the embedded assets filesystem with the "assets/" prefix stripped.
var Assets = mustSub(rawAssets, "assets")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS returns a filesystem that checks localDir on disk first,
// falling back to the embedded filesystem for files not found locally.
func OverlayFS(localDir string, embedded fs.FS) fs.FS {
	return overlayFS{localDir: localDir, embedded: embedded}
}

type overlayFS struct {
	localDir string
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := os.Open(o.localDir + "/" + name)
	if err == nil {
		return f, nil
	}
	return o.embedded.Open(name)
}
