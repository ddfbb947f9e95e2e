package archive

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ErrNotFound reports a missing archive or a missing entry inside one.
var ErrNotFound = errors.New("archive not found")

// Archive is a mounted read-only documentation tree for one exact
// (project, version). Implementations are safe for concurrent use.
type Archive interface {
	// Exists reports whether p names a regular file in the tree.
	Exists(p string) bool
	// Open returns the file's bytes. ErrNotFound when p does not name a
	// regular file.
	Open(p string) (io.ReadCloser, error)
}

// zipArchive mounts a packaged documentation tree from a zip file. The
// entry index is built once at open; lookups afterwards are lock-free
// map reads.
type zipArchive struct {
	rc    *zip.ReadCloser
	files map[string]*zip.File
}

// openZip mounts the zip file at zipPath.
func openZip(zipPath string) (*zipArchive, error) {
	rc, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", zipPath, err)
	}

	files := make(map[string]*zip.File, len(rc.File))
	for _, f := range rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		files[normalizePath(f.Name)] = f
	}

	return &zipArchive{rc: rc, files: files}, nil
}

func (a *zipArchive) Exists(p string) bool {
	p, ok := cleanEntryPath(p)
	if !ok {
		return false
	}
	_, found := a.files[p]
	return found
}

func (a *zipArchive) Open(p string) (io.ReadCloser, error) {
	p, ok := cleanEntryPath(p)
	if !ok {
		return nil, ErrNotFound
	}
	f, found := a.files[p]
	if !found {
		return nil, ErrNotFound
	}
	return f.Open()
}

func (a *zipArchive) close() error {
	return a.rc.Close()
}

// normalizePath roots p at "/" before cleaning so ".." segments can
// collapse but never escape, then strips the leading slash to match
// zip entry names.
func normalizePath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func cleanEntryPath(p string) (string, bool) {
	p = normalizePath(p)
	if p == "" {
		return "", false
	}
	return p, true
}
