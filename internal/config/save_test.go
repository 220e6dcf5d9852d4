package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveUI_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	err := SaveUI(configPath, UIConfig{ShowStatusBar: false, Layout: LayoutTiled})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ui:")
	assert.Contains(t, string(data), "show_status_bar: false")
	assert.Contains(t, string(data), "layout: tiled")
}

func TestSaveUI_PreservesOtherConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	initial := `# bench console
hardware:
  motor:
    name: Left Wheel  # the one by the window
ui:
  show_status_bar: true
journal:
  enabled: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o600))

	err := SaveUI(configPath, UIConfig{ShowStatusBar: false, Fullscreen: true, Layout: LayoutTabbed})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# bench console")
	assert.Contains(t, content, "# the one by the window")
	assert.Contains(t, content, "name: Left Wheel")
	assert.Contains(t, content, "enabled: false")
	assert.Contains(t, content, "show_status_bar: false")
}

func TestSaveUI_Roundtrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	want := UIConfig{ShowStatusBar: false, Fullscreen: false, Layout: LayoutTiled, MarkdownStyle: "light"}
	require.NoError(t, SaveUI(configPath, want))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	cfg := Defaults()
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, want, cfg.UI)
	require.Equal(t, Defaults().Hardware, cfg.Hardware, "other sections untouched")
}

func TestSaveUI_AtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, SaveUI(configPath, Defaults().UI))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "config.yaml", entries[0].Name())
}

func TestSaveUI_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("ui: [unclosed"), 0o600))

	err := SaveUI(configPath, Defaults().UI)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing config")
}
