package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_NoConfigFile(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Sourcemap)
	assert.Equal(t, "dist", cfg.Dist)
	assert.Equal(t, filepath.Join("dist", "metafile.json"), cfg.Metafile)
	assert.Empty(t, cfg.Entries)
}

func TestLoadFrom_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `sourcemap: false
format: cjs
dist: build
metafile: build/meta.json
entries:
  - src/main.js
extensions:
  - .pcss
exclude:
  - tmp
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "injectcss.yaml"), []byte(content), 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.False(t, cfg.Sourcemap)
	assert.Equal(t, "cjs", cfg.Format)
	assert.Equal(t, "build", cfg.Dist)
	assert.Equal(t, "build/meta.json", cfg.Metafile)
	assert.Equal(t, []string{"src/main.js"}, cfg.Entries)
	assert.Equal(t, []string{".pcss"}, cfg.Extensions)
	assert.Equal(t, []string{"tmp"}, cfg.Exclude)
}

func TestLoadFrom_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "injectcss.yml"),
		[]byte("entries:\n  - src/index.js\n"), 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	// Unset keys keep their defaults; sourcemap stays on.
	assert.True(t, cfg.Sourcemap)
	assert.Equal(t, "dist", cfg.Dist)
	assert.Equal(t, []string{"src/index.js"}, cfg.Entries)
}

func TestLoadFrom_MalformedYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "injectcss.yaml"),
		[]byte("entries: [unclosed"), 0o644))

	_, err := LoadFrom(dir)
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "injectcss.yaml")

	cfg := Default()
	cfg.Entries = []string{"src/index.js"}
	require.NoError(t, cfg.Write(path))

	loaded, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
