package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `
languages:
  - go
  - rust
excludeDirs:
  - vendor
strict: true
collapseParallel: true
dbPath: .symgraph/graph
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "symgraph.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, cfg.Languages)
	assert.Equal(t, []string{"vendor"}, cfg.ExcludeDirs)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.CollapseParallel)
	assert.Equal(t, ".symgraph/graph", cfg.DBPath)
	assert.False(t, cfg.Verbose)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad_YamlExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "symgraph.yaml"), []byte("verbose: true\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoad_MalformedYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "symgraph.yml"), []byte("languages: [unclosed"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
