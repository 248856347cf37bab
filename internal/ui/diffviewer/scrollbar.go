package diffviewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/patchview/internal/ui/styles"
)

// Scrollbar characters
const (
	scrollbarThumbChar = '█' // Full block
	scrollbarTrackChar = '░' // Light shade
)

// ScrollbarConfig configures scrollbar rendering.
type ScrollbarConfig struct {
	TotalLines     int // Total lines in content
	ViewportHeight int // Visible lines in viewport
	ScrollOffset   int // Current scroll position (top line)
}

// calculateThumbBounds returns the start row and height of the scroll thumb.
// Thumb height is proportional to the visible/total ratio, minimum 1.
func calculateThumbBounds(cfg ScrollbarConfig) (start, height int) {
	if cfg.TotalLines <= 0 || cfg.ViewportHeight <= 0 {
		return 0, 0
	}

	// Content fits: thumb fills the whole track
	if cfg.TotalLines <= cfg.ViewportHeight {
		return 0, cfg.ViewportHeight
	}

	height = max(1, cfg.ViewportHeight*cfg.ViewportHeight/cfg.TotalLines)

	maxOffset := cfg.TotalLines - cfg.ViewportHeight
	if maxOffset <= 0 {
		return 0, height
	}

	scrollableTrack := cfg.ViewportHeight - height
	if scrollableTrack <= 0 {
		return 0, height
	}

	start = scrollableTrack * cfg.ScrollOffset / maxOffset
	start = max(0, min(start, cfg.ViewportHeight-height))

	return start, height
}

// RenderScrollbar renders the scrollbar as one column of height lines.
// Returns spaces when the content fits in the viewport.
func RenderScrollbar(cfg ScrollbarConfig) string {
	if cfg.ViewportHeight <= 0 || cfg.TotalLines <= 0 {
		return ""
	}

	if cfg.TotalLines <= cfg.ViewportHeight {
		lines := make([]string, cfg.ViewportHeight)
		for i := range lines {
			lines[i] = " "
		}
		return strings.Join(lines, "\n")
	}

	thumbStart, thumbHeight := calculateThumbBounds(cfg)

	trackStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	thumbStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)

	lines := make([]string, cfg.ViewportHeight)
	for row := range cfg.ViewportHeight {
		if row >= thumbStart && row < thumbStart+thumbHeight {
			lines[row] = thumbStyle.Render(string(scrollbarThumbChar))
		} else {
			lines[row] = trackStyle.Render(string(scrollbarTrackChar))
		}
	}

	return strings.Join(lines, "\n")
}
