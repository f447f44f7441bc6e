package main

import (
	"io/fs"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ResourceLoader reads pages by their request path.
type ResourceLoader interface {
	Load(path string) ([]byte, error)
}

type fsLoader struct {
	fsys fs.FS
}

// NewDirLoader serves pages from a directory on disk.
func NewDirLoader(root string) ResourceLoader {
	return NewFSLoader(os.DirFS(root))
}

func NewFSLoader(fsys fs.FS) ResourceLoader {
	return &fsLoader{fsys}
}

// Load maps "/index.html" to "index.html" under the root. "/" is index.html.
func (l *fsLoader) Load(path string) ([]byte, error) {
	name := strings.TrimPrefix(path, "/")
	if name == "" {
		name = "index.html"
	}
	if !fs.ValidPath(name) {
		return nil, errors.Wrapf(ErrResourceNotFound, "%s", path)
	}
	b, err := fs.ReadFile(l.fsys, name)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return nil, errors.Wrapf(ErrResourceNotFound, "%s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return b, nil
}
