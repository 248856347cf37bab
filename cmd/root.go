package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/patchview/internal/config"
	"github.com/zjrosen/patchview/internal/diff"
	"github.com/zjrosen/patchview/internal/history"
	"github.com/zjrosen/patchview/internal/log"
	"github.com/zjrosen/patchview/internal/tracing"
	"github.com/zjrosen/patchview/internal/ui/diffviewer"
	"github.com/zjrosen/patchview/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "patchview [file]",
	Short: "A terminal viewer for unified diffs",
	Long: `A terminal user interface for reading unified diff output with
line numbers, per-file navigation, side-by-side view, and word-level
change highlighting. Reads a diff from the given file or from stdin.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runViewer,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/patchview/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write debug logs to .patchview/debug.log")

	rootCmd.Flags().BoolP("watch", "w", false,
		"reload the diff when the input file changes")
	rootCmd.Flags().StringP("mode", "m", "",
		"startup view mode: unified or side-by-side")
	rootCmd.Flags().Bool("no-word-diff", false,
		"disable word-level change highlighting")

	_ = viper.BindPFlag("ui.view_mode", rootCmd.Flags().Lookup("mode"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("ui.view_mode", defaults.UI.ViewMode)
	viper.SetDefault("ui.word_diff", defaults.UI.WordDiff)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.tab_width", defaults.UI.TabWidth)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	viper.SetDefault("history.enabled", defaults.History.Enabled)
	viper.SetDefault("history.path", defaults.History.Path)
	viper.SetDefault("history.max_entries", defaults.History.MaxEntries)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .patchview/config.yaml (current directory)
		// 2. ~/.config/patchview/config.yaml (user config)
		if _, err := os.Stat(".patchview/config.yaml"); err == nil {
			viper.SetConfigFile(".patchview/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "patchview"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .patchview/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".patchview/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// setupLogging initializes the debug log when --debug or PATCHVIEW_DEBUG
// is set. Returns a cleanup function.
func setupLogging(cmd *cobra.Command) func() {
	debug, _ := cmd.Flags().GetBool("debug")
	if !debug && os.Getenv("PATCHVIEW_DEBUG") == "" {
		return func() {}
	}

	if err := os.MkdirAll(".patchview", 0o750); err != nil {
		return func() {}
	}
	cleanup, err := log.Init(filepath.Join(".patchview", "debug.log"))
	if err != nil {
		return func() {}
	}
	return cleanup
}

// setupTracing builds a tracing provider from config.
func setupTracing() (*tracing.Provider, error) {
	filePath := cfg.Tracing.FilePath
	if filePath == "" {
		filePath = config.DefaultTracesFilePath()
	}
	return tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	})
}

// readDiffInput reads diff text from the file argument, or stdin when
// no argument was given. Returns the text and the source path (empty
// for stdin).
func readDiffInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0]) //nolint:gosec // G304: user-supplied input path
		if err != nil {
			return "", "", fmt.Errorf("reading diff file: %w", err)
		}
		abs, err := filepath.Abs(args[0])
		if err != nil {
			abs = args[0]
		}
		return string(data), abs, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "", nil
}

// recordHistory stores a view record, best effort. A broken history
// database never blocks viewing the diff.
func recordHistory(sourcePath string, fileCount, additions, deletions int) {
	if !cfg.History.Enabled || sourcePath == "" {
		return
	}
	path := cfg.History.Path
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	if path == "" {
		return
	}

	store, err := history.Open(path, cfg.History.MaxEntries)
	if err != nil {
		log.ErrorErr(log.CatHistory, "Skipping history record", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Add(sourcePath, fileCount, additions, deletions); err != nil {
		log.ErrorErr(log.CatHistory, "Skipping history record", err)
	}
}

func runViewer(cmd *cobra.Command, args []string) error {
	cleanupLog := setupLogging(cmd)
	defer cleanupLog()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := setupTracing()
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	text, sourcePath, err := readDiffInput(cmd, args)
	if err != nil {
		return err
	}

	ctx, span := provider.Tracer().Start(context.Background(), tracing.SpanParse)
	rows := diff.Parse(text)
	span.SetAttributes(
		attribute.String(tracing.AttrSourcePath, sourcePath),
		attribute.Int(tracing.AttrRowCount, len(rows)),
	)
	span.End()

	_, groupSpan := provider.Tracer().Start(ctx, tracing.SpanGroup)
	files := diff.GroupFiles(rows)
	additions, deletions := 0, 0
	for _, f := range files {
		additions += f.Additions
		deletions += f.Deletions
	}
	groupSpan.SetAttributes(
		attribute.Int(tracing.AttrFileCount, len(files)),
		attribute.Int(tracing.AttrAdditions, additions),
		attribute.Int(tracing.AttrDeletions, deletions),
	)
	groupSpan.End()

	recordHistory(sourcePath, len(files), additions, deletions)

	if noWordDiff, _ := cmd.Flags().GetBool("no-word-diff"); noWordDiff {
		cfg.UI.WordDiff = false
	}

	viewer := diffviewer.New(diffviewer.Config{
		SourcePath:    sourcePath,
		Mode:          diffviewer.ParseViewMode(cfg.UI.ViewMode),
		WordDiff:      cfg.UI.WordDiff,
		ShowStatusBar: cfg.UI.ShowStatusBar,
		TabWidth:      cfg.UI.TabWidth,
	}).SetContent(text)

	p := tea.NewProgram(viewer, tea.WithAltScreen())

	watch, _ := cmd.Flags().GetBool("watch")
	var w *watcher.Watcher
	if watch && sourcePath != "" {
		w, err = watcher.New(watcher.Config{
			Path:        sourcePath,
			DebounceDur: time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
		})
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		ch, err := w.Start()
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		go func() {
			for range ch {
				data, readErr := os.ReadFile(sourcePath) //nolint:gosec // G304: user-supplied input path
				p.Send(diffviewer.ReloadMsg{Text: string(data), Err: readErr})
			}
		}()
	}

	_, err = p.Run()

	if w != nil {
		if stopErr := w.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
