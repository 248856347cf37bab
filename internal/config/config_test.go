package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, "unified", cfg.UI.ViewMode)
	require.True(t, cfg.UI.WordDiff)
	require.Equal(t, 4, cfg.UI.TabWidth)
	require.Equal(t, 400, cfg.Watch.DebounceMs)
	require.True(t, cfg.History.Enabled)
	require.Equal(t, 100, cfg.History.MaxEntries)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)

	require.NoError(t, Validate(cfg))
}

func TestValidateUI(t *testing.T) {
	tests := []struct {
		name    string
		ui      UIConfig
		wantErr bool
	}{
		{name: "empty mode ok", ui: UIConfig{TabWidth: 4}},
		{name: "unified ok", ui: UIConfig{ViewMode: "unified", TabWidth: 4}},
		{name: "side-by-side ok", ui: UIConfig{ViewMode: "side-by-side", TabWidth: 4}},
		{name: "bad mode", ui: UIConfig{ViewMode: "split", TabWidth: 4}, wantErr: true},
		{name: "negative tab width", ui: UIConfig{TabWidth: -1}, wantErr: true},
		{name: "huge tab width", ui: UIConfig{TabWidth: 64}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUI(tc.ui)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateHistory(t *testing.T) {
	require.NoError(t, ValidateHistory(HistoryConfig{Enabled: true, Path: "/abs/path.db", MaxEntries: 10}))
	require.NoError(t, ValidateHistory(HistoryConfig{Enabled: false, Path: "relative.db"}))
	require.Error(t, ValidateHistory(HistoryConfig{Enabled: true, Path: "relative.db"}))
	require.Error(t, ValidateHistory(HistoryConfig{MaxEntries: -1}))
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{SampleRate: 0.5, Exporter: "stdout"}))
	require.Error(t, ValidateTracing(TracingConfig{SampleRate: 1.5}))
	require.Error(t, ValidateTracing(TracingConfig{Exporter: "jaeger"}))
	require.Error(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp"}))
	require.NoError(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp", OTLPEndpoint: "localhost:4317"}))
}

func TestDefaultConfigTemplate_IsValidYAML(t *testing.T) {
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &parsed))
	require.Contains(t, parsed, "ui")
	require.Contains(t, parsed, "watch")
	require.Contains(t, parsed, "history")
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "patchview Configuration")

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
}
