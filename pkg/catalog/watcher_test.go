package catalog

import (
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/mallard/pkg/observability"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	path := writeCatalogFile(t, validCatalogYAML)

	cat, err := Load(path)
	require.NoError(t, err)
	store := NewStore(cat)

	var reloads atomic.Int32
	logger := observability.NewLogger(observability.ErrorLevel, os.Stderr)
	w, err := WatchFile(path, store, logger, func(_ *Catalog, err error) {
		if err == nil {
			reloads.Add(1)
		}
	})
	require.NoError(t, err)
	defer w.Close()

	updated := `
projects:
  - name: pond
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	require.Eventually(t, func() bool {
		return reloads.Load() > 0
	}, 5*time.Second, 10*time.Millisecond)

	current := store.Current()
	require.Len(t, current.Projects, 1)
	assert.Equal(t, "pond", current.Projects[0].Name)
}

func TestWatcherKeepsPreviousCatalogOnBadFile(t *testing.T) {
	path := writeCatalogFile(t, validCatalogYAML)

	cat, err := Load(path)
	require.NoError(t, err)
	store := NewStore(cat)

	var failures atomic.Int32
	logger := observability.NewLogger(observability.ErrorLevel, os.Stderr)
	w, err := WatchFile(path, store, logger, func(_ *Catalog, err error) {
		if err != nil {
			failures.Add(1)
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("projects: [broken"), 0644))

	require.Eventually(t, func() bool {
		return failures.Load() > 0
	}, 5*time.Second, 10*time.Millisecond)

	assert.Same(t, cat, store.Current())
}
