package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Format.TabWidth)
	assert.NotEmpty(t, cfg.Keybindings.Confirm)
}

func TestLoadFromMalformedFileReturnsConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o644))

	_, err := LoadFrom(path)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[format]
tab_width = 2

[diff]
deprioritize = ["*.lock"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Format.TabWidth)
	assert.Equal(t, []string{"*.lock"}, cfg.Diff.Deprioritize)
	// Keybindings were not set in the file, so defaults must still apply.
	assert.NotEmpty(t, cfg.Keybindings.Undo)
}

func TestBuildKeymapDefaultsHaveNoConflicts(t *testing.T) {
	cfg := defaultConfig()
	m, err := BuildKeymap(cfg.Keybindings)
	require.NoError(t, err)
	assert.NotEmpty(t, m)
}

func TestBuildKeymapDetectsConflict(t *testing.T) {
	kb := defaultConfig().Keybindings
	kb.Undo = []string{"space"} // space is already bound to select_cursor
	_, err := BuildKeymap(kb)
	assert.ErrorIs(t, err, ErrConflictingBinding)
}

func TestDeprioritizerAnchoredPattern(t *testing.T) {
	d := Deprioritizer([]string{"/vendor/"})
	assert.True(t, d("vendor/foo.go"))
	assert.False(t, d("pkg/vendor/foo.go"), "anchored pattern should not match nested vendor directory")
}

func TestDeprioritizerUnanchoredPattern(t *testing.T) {
	d := Deprioritizer([]string{"*.lock"})
	assert.True(t, d("Cargo.lock"))
	assert.True(t, d("sub/dir/go.lock"), "should match at any depth")
	assert.False(t, d("lockfile.txt"))
}
