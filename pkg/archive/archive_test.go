package archive

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip creates a zip file at path with the given entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestZipArchiveExistsAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.zip")
	writeZip(t, path, map[string]string{
		"index.html":       "<html>home</html>",
		"assets/style.css": "body {}",
		"dir/":             "",
	})

	a, err := openZip(path)
	require.NoError(t, err)
	defer a.close()

	assert.True(t, a.Exists("index.html"))
	assert.True(t, a.Exists("assets/style.css"))
	assert.True(t, a.Exists("/assets/style.css"))
	assert.False(t, a.Exists("missing.html"))
	assert.False(t, a.Exists(""))
	assert.False(t, a.Exists("dir"))

	rc, err := a.Open("assets/style.css")
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "body {}", string(content))

	_, err = a.Open("missing.html")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestZipArchivePathTraversal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.zip")
	writeZip(t, path, map[string]string{"index.html": "home"})

	a, err := openZip(path)
	require.NoError(t, err)
	defer a.close()

	// Escaping segments collapse against the tree root.
	assert.False(t, a.Exists("../../etc/passwd"))
	assert.True(t, a.Exists("sub/../index.html"))
}

func TestOpenZipMissingFile(t *testing.T) {
	_, err := openZip(filepath.Join(t.TempDir(), "nope.zip"))
	assert.Error(t, err)
}

func TestDirSource(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "duckling", "1.2.5.zip"), map[string]string{"index.html": "home"})

	source, err := NewDirSource(root)
	require.NoError(t, err)

	path, err := source.Fetch(t.Context(), "duckling", "1.2.5")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "duckling", "1.2.5.zip"), path)

	_, err = source.Fetch(t.Context(), "duckling", "9.9.9")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, source.Refresh(t.Context(), "duckling", "1.2.5"))
	assert.NoError(t, source.Ping(t.Context()))
}

func TestNewDirSourceMissingRoot(t *testing.T) {
	_, err := NewDirSource(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
