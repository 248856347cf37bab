package log_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/patchview/internal/log"
	"github.com/zjrosen/patchview/internal/pubsub"
)

// The logger is a package-level singleton behind sync.Once, so all
// behavior is exercised from one test against a single Init.
func TestLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := log.Init(path)
	require.NoError(t, err)
	defer cleanup()

	readLog := func() string {
		data, err := os.ReadFile(path) //nolint:gosec // G304: temp path
		require.NoError(t, err)
		return string(data)
	}

	t.Run("writes structured entries", func(t *testing.T) {
		log.Info(log.CatParse, "parsed input", "rows", 42)
		require.Contains(t, readLog(), "[INFO] [parse] parsed input rows=42")
	})

	t.Run("min level filters", func(t *testing.T) {
		log.SetMinLevel(log.LevelWarn)
		defer log.SetMinLevel(log.LevelDebug)

		log.Debug(log.CatUI, "suppressed update")
		log.Warn(log.CatUI, "kept warning")

		out := readLog()
		require.NotContains(t, out, "suppressed update")
		require.Contains(t, out, "[WARN] [ui] kept warning")
	})

	t.Run("odd field count marks missing value", func(t *testing.T) {
		log.Warn(log.CatUI, "resize", "width")
		require.Contains(t, readLog(), "resize width=<missing>")
	})

	t.Run("ErrorErr includes error field", func(t *testing.T) {
		log.ErrorErr(log.CatHistory, "insert failed", os.ErrPermission)
		require.Contains(t, readLog(), "[ERROR] [history] insert failed error=permission denied")
	})

	t.Run("disabled drops entries", func(t *testing.T) {
		log.SetEnabled(false)
		defer log.SetEnabled(true)

		log.Info(log.CatConfig, "while disabled")
		require.NotContains(t, readLog(), "while disabled")
	})

	t.Run("listener receives published entries", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		listener := log.NewListener(ctx)
		require.NotNil(t, listener)

		log.Info(log.CatWatcher, "file changed", "path", "a.diff")

		// Subscription channels are buffered, so the entry is already
		// queued and Listen resolves without blocking.
		msg := listener.Listen()()
		event, ok := msg.(log.LogEvent)
		require.True(t, ok)
		require.Equal(t, pubsub.LoggedEvent, event.Type)
		require.Contains(t, event.Payload, "[watcher] file changed path=a.diff")
	})
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", log.LevelDebug.String())
	require.Equal(t, "INFO", log.LevelInfo.String())
	require.Equal(t, "WARN", log.LevelWarn.String())
	require.Equal(t, "ERROR", log.LevelError.String())
	require.Equal(t, "UNKNOWN", log.Level(99).String())
}
