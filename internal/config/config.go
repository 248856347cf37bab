// Package config provides configuration types and defaults for patchview.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/patchview/internal/log"
)

// Config holds all configuration options for patchview.
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Watch   WatchConfig   `mapstructure:"watch"`
	History HistoryConfig `mapstructure:"history"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	// ViewMode selects the startup layout.
	// Valid values: "unified" (default), "side-by-side"
	ViewMode string `mapstructure:"view_mode"`

	// WordDiff enables intraline highlighting of changed tokens.
	WordDiff bool `mapstructure:"word_diff"`

	// ShowStatusBar shows the footer status/help bar.
	ShowStatusBar bool `mapstructure:"show_status_bar"`

	// TabWidth is the number of spaces a tab expands to in diff text.
	TabWidth int `mapstructure:"tab_width"`
}

// WatchConfig holds --watch behavior options.
type WatchConfig struct {
	// DebounceMs is the quiet period after a file change before the
	// diff is re-read, in milliseconds.
	DebounceMs int `mapstructure:"debounce_ms"`
}

// HistoryConfig holds view-history storage options.
type HistoryConfig struct {
	// Enabled controls whether viewed diffs are recorded.
	Enabled bool `mapstructure:"enabled"`

	// Path is the history database location.
	// Default: ~/.local/share/patchview/history.db
	Path string `mapstructure:"path"`

	// MaxEntries caps the number of retained history records.
	MaxEntries int `mapstructure:"max_entries"`
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/patchview/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultHistoryPath returns the default history database location, or
// empty string if the home directory is unavailable.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "patchview", "history.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "patchview", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			ViewMode:      "unified",
			WordDiff:      true,
			ShowStatusBar: true,
			TabWidth:      4,
		},
		Watch: WatchConfig{
			DebounceMs: 400,
		},
		History: HistoryConfig{
			Enabled:    true,
			Path:       DefaultHistoryPath(),
			MaxEntries: 100,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.ViewMode {
	case "", "unified", "side-by-side":
	default:
		return fmt.Errorf("ui.view_mode must be \"unified\" or \"side-by-side\", got %q", ui.ViewMode)
	}
	if ui.TabWidth < 0 || ui.TabWidth > 16 {
		return fmt.Errorf("ui.tab_width must be between 0 and 16, got %d", ui.TabWidth)
	}
	return nil
}

// ValidateWatch checks watch configuration for errors.
func ValidateWatch(w WatchConfig) error {
	if w.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", w.DebounceMs)
	}
	return nil
}

// ValidateHistory checks history configuration for errors.
func ValidateHistory(h HistoryConfig) error {
	if h.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must not be negative, got %d", h.MaxEntries)
	}
	if h.Enabled && h.Path != "" && !filepath.IsAbs(h.Path) {
		return fmt.Errorf("history.path must be an absolute path, got %q", h.Path)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateWatch(c.Watch); err != nil {
		return err
	}
	if err := ValidateHistory(c.History); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# patchview Configuration

# UI settings
ui:
  view_mode: unified      # Startup layout: "unified" (default) or "side-by-side"
  word_diff: true         # Highlight changed tokens within modified lines
  show_status_bar: true   # Show status bar at bottom
  tab_width: 4            # Spaces per tab in diff text

# Watch mode settings (--watch)
watch:
  debounce_ms: 400        # Quiet period after a change before reloading

# View history (recently opened diffs, "patchview history")
history:
  enabled: true
  # path: ~/.local/share/patchview/history.db
  max_entries: 100

# Tracing configuration
# Enables visibility into parse/render timings for large diffs
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/patchview/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with
// default settings and comments. Creates the parent directory if it
// doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
