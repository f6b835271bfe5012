package flowchart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "simple_process.dot", "digraph flowchart { A; }")
	writeTemplate(t, dir, "approval_flow.dot", "digraph flowchart { B; }")
	writeTemplate(t, dir, "notes.txt", "ignored")

	catalog, err := LoadCatalog(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	text, err := catalog.Resolve("simple_process")
	require.NoError(t, err)
	assert.Equal(t, "digraph flowchart { A; }", text)
}

func TestLoadCatalogMissingDir(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Zero(t, catalog.Len())
}

func TestCatalogResolveUnknown(t *testing.T) {
	catalog, err := LoadCatalog(t.TempDir())
	require.NoError(t, err)

	_, err = catalog.Resolve("anything")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCatalogList(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "simple_process.dot", "digraph flowchart {}")
	writeTemplate(t, dir, "incident_response_plan.dot", "digraph flowchart {}")

	catalog, err := LoadCatalog(dir)
	require.NoError(t, err)

	infos := catalog.List()
	require.Len(t, infos, 2)
	// Sorted by id, display names title-cased with spaces.
	assert.Equal(t, "incident_response_plan", infos[0].ID)
	assert.Equal(t, "Incident Response Plan", infos[0].Name)
	assert.Equal(t, "simple_process", infos[1].ID)
	assert.Equal(t, "Simple Process", infos[1].Name)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Simple Process", displayName("simple_process"))
	assert.Equal(t, "Plan", displayName("plan"))
	assert.Equal(t, "", displayName(""))
}
