package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{name: "Play uses space and p", binding: km.Play, expected: []string{" ", "p"}},
		{name: "Stop uses s", binding: km.Stop, expected: []string{"s"}},
		{name: "ToggleControl uses c", binding: km.ToggleControl, expected: []string{"c"}},
		{name: "Activate uses enter", binding: km.Activate, expected: []string{"enter"}},
		{name: "ClosePanel uses x", binding: km.ClosePanel, expected: []string{"x"}},
		{name: "CloseAll uses X", binding: km.CloseAll, expected: []string{"X"}},
		{name: "ToggleStatus uses b", binding: km.ToggleStatus, expected: []string{"b"}},
		{name: "Config uses o", binding: km.Config, expected: []string{"o"}},
		{name: "Quit uses q and ctrl+c", binding: km.Quit, expected: []string{"q", "ctrl+c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_NoDuplicateKeys(t *testing.T) {
	km := DefaultKeyMap()
	seen := make(map[string]string)
	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				require.False(t, dup, "key %q bound to both %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestDefaultKeyMap_HelpText(t *testing.T) {
	km := DefaultKeyMap()
	for _, group := range km.FullHelp() {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key)
			require.NotEmpty(t, b.Help().Desc)
		}
	}
	require.NotEmpty(t, km.ShortHelp())
}
