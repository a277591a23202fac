// Package config loads the TOML configuration file (diff deprioritize
// globs, format settings, keybindings). The file is loaded once per
// process and treated as read-only thereafter -- see the Configuration
// paragraph of SPEC_FULL.md.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenPeeDeeP/xdg"
	"github.com/pelletier/go-toml/v2"
)

// DiffConfig controls which paths sort last in a change set.
type DiffConfig struct {
	Deprioritize []string `toml:"deprioritize"`
}

// FormatConfig controls rendering of whitespace.
type FormatConfig struct {
	TabWidth int `toml:"tab_width"`
}

// KeybindingsConfig maps each editor command to the key specifications
// that trigger it. Every field defaults to the key list set in
// defaultConfig.
type KeybindingsConfig struct {
	Exit         []string `toml:"exit"`
	NextCursor   []string `toml:"next_cursor"`
	PrevCursor   []string `toml:"prev_cursor"`
	FirstCursor  []string `toml:"first_cursor"`
	LastCursor   []string `toml:"last_cursor"`
	ShrinkCursor []string `toml:"shrink_cursor"`
	GrowCursor   []string `toml:"grow_cursor"`
	SelectCursor []string `toml:"select_cursor"`
	SelectAll    []string `toml:"select_all"`
	Confirm      []string `toml:"confirm"`
	Undo         []string `toml:"undo"`
	Redo         []string `toml:"redo"`
}

// Config is the top-level, all-optional configuration document.
type Config struct {
	Diff        DiffConfig        `toml:"diff"`
	Format      FormatConfig      `toml:"format"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// ErrConflictingBinding is returned when two commands claim the same
// key specification.
var ErrConflictingBinding = errors.New("config: conflicting key binding")

// ConfigError wraps a TOML decode failure with the offending file path.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config: %s: %v", e.Path, e.Err) }
func (e *ConfigError) Unwrap() error { return e.Err }

func defaultConfig() Config {
	return Config{
		Format: FormatConfig{TabWidth: 4},
		Keybindings: KeybindingsConfig{
			Exit:         []string{"escape", "ctrl+c", "ctrl+d"},
			NextCursor:   []string{"j", "down", "tab"},
			PrevCursor:   []string{"k", "up", "shift+tab"},
			FirstCursor:  []string{"g", "home"},
			LastCursor:   []string{"G", "end"},
			ShrinkCursor: []string{"l", "right"},
			GrowCursor:   []string{"h", "left"},
			SelectCursor: []string{"space"},
			SelectAll:    []string{"a", "ctrl+a"},
			Confirm:      []string{"enter"},
			Undo:         []string{"u"},
			Redo:         []string{"U"},
		},
	}
}

// Path returns the config file location:
// ${XDG_CONFIG_HOME:-$HOME/.config}/jjdiff/config.toml.
func Path() (string, error) {
	dirs := xdg.New("", "jjdiff")
	return filepath.Join(dirs.ConfigHome(), "config.toml"), nil
}

// Load reads and decodes the config file. A missing file is not an
// error: defaults apply silently. A malformed file is surfaced as a
// *ConfigError.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads and decodes the config file at path.
func LoadFrom(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return &cfg, nil
}
