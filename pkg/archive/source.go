package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source locates the packaged zip for an exact (project, version) key
// and makes it available as a local file.
type Source interface {
	// Fetch returns a local path to the packaged archive, or an error
	// wrapping ErrNotFound when no archive is published for the key.
	Fetch(ctx context.Context, project, version string) (string, error)
	// Refresh discards any locally cached copy so the next Fetch
	// retrieves the latest upstream archive. Used for snapshot versions
	// that are republished in place.
	Refresh(ctx context.Context, project, version string) error
	// Ping reports whether the source's backing store is reachable.
	Ping(ctx context.Context) error
}

// DirSource serves archives from a local directory laid out as
// <root>/<project>/<version>.zip.
type DirSource struct {
	root string
}

// NewDirSource creates a directory-backed source rooted at root.
func NewDirSource(root string) (*DirSource, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("archive root %s is not a directory", root)
	}
	return &DirSource{root: root}, nil
}

// Fetch implements Source.Fetch
func (s *DirSource) Fetch(_ context.Context, project, version string) (string, error) {
	p := filepath.Join(s.root, project, version+".zip")
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s/%s", ErrNotFound, project, version)
		}
		return "", fmt.Errorf("failed to stat archive: %w", err)
	}
	return p, nil
}

// Refresh implements Source.Refresh. The directory is the upstream
// store itself, so there is nothing to invalidate.
func (s *DirSource) Refresh(context.Context, string, string) error {
	return nil
}

// Ping implements Source.Ping
func (s *DirSource) Ping(context.Context) error {
	_, err := os.Stat(s.root)
	return err
}
