package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return &Catalog{
		Projects: []Project{
			{
				Name: "duckling",
				Groups: []VersionGroup{
					{
						Name:    "1.2",
						Version: "1.2",
						Versions: []Version{
							{Name: "1.2.4"},
							{Name: "1.2.9"},
						},
					},
					{
						Name:    "also-1.2",
						Version: "1.2.0",
						Versions: []Version{
							{Name: "1.2.99"},
						},
					},
					{
						Name:    "1.3",
						Version: "1.3",
						Versions: []Version{
							{Name: "1.3.0"},
						},
					},
				},
			},
			{Name: "pond"},
		},
	}
}

func TestFindProject(t *testing.T) {
	cat := testCatalog()

	p, ok := cat.FindProject("duckling")
	require.True(t, ok)
	assert.Equal(t, "duckling", p.Name)

	p, ok = cat.FindProject("DuckLing")
	require.True(t, ok)
	assert.Equal(t, "duckling", p.Name)

	_, ok = cat.FindProject("unknown")
	assert.False(t, ok)
}

func TestFindVersionGroupFirstMatchWins(t *testing.T) {
	cat := testCatalog()
	p, ok := cat.FindProject("duckling")
	require.True(t, ok)

	// Both "1.2" groups match the requested minor line; insertion order
	// decides.
	g, ok := p.FindVersionGroup("1.2.7")
	require.True(t, ok)
	assert.Equal(t, "1.2", g.Name)

	g, ok = p.FindVersionGroup("1.3")
	require.True(t, ok)
	assert.Equal(t, "1.3", g.Name)
}

func TestFindVersionGroupNoMatch(t *testing.T) {
	cat := testCatalog()
	p, ok := cat.FindProject("duckling")
	require.True(t, ok)

	_, ok = p.FindVersionGroup("9.9")
	assert.False(t, ok)

	// Malformed versions degrade to 0.0.x and simply fail to match.
	_, ok = p.FindVersionGroup("not-a-version")
	assert.False(t, ok)
}

func TestFindVersionGroupSnapshotRequest(t *testing.T) {
	cat := testCatalog()
	p, ok := cat.FindProject("duckling")
	require.True(t, ok)

	g, ok := p.FindVersionGroup("1.2-SNAPSHOT")
	require.True(t, ok)
	assert.Equal(t, "1.2", g.Name)
}
