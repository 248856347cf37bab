package diffviewer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateThumbBounds_ContentFits(t *testing.T) {
	start, height := calculateThumbBounds(ScrollbarConfig{
		TotalLines:     10,
		ViewportHeight: 20,
	})
	require.Equal(t, 0, start)
	require.Equal(t, 20, height, "thumb fills the track when content fits")
}

func TestCalculateThumbBounds_ProportionalHeight(t *testing.T) {
	_, height := calculateThumbBounds(ScrollbarConfig{
		TotalLines:     100,
		ViewportHeight: 20,
	})
	require.Equal(t, 4, height, "20*20/100")
}

func TestCalculateThumbBounds_MinimumHeightOne(t *testing.T) {
	_, height := calculateThumbBounds(ScrollbarConfig{
		TotalLines:     100000,
		ViewportHeight: 10,
	})
	require.Equal(t, 1, height)
}

func TestCalculateThumbBounds_TopAndBottom(t *testing.T) {
	cfg := ScrollbarConfig{TotalLines: 100, ViewportHeight: 20}

	cfg.ScrollOffset = 0
	start, _ := calculateThumbBounds(cfg)
	require.Equal(t, 0, start)

	cfg.ScrollOffset = 80 // max offset
	start, height := calculateThumbBounds(cfg)
	require.Equal(t, 20, start+height, "thumb reaches the bottom at max offset")
}

func TestCalculateThumbBounds_InvalidConfig(t *testing.T) {
	start, height := calculateThumbBounds(ScrollbarConfig{})
	require.Zero(t, start)
	require.Zero(t, height)
}

func TestRenderScrollbar_HeightMatchesViewport(t *testing.T) {
	out := RenderScrollbar(ScrollbarConfig{
		TotalLines:     100,
		ViewportHeight: 15,
		ScrollOffset:   50,
	})
	require.Len(t, strings.Split(out, "\n"), 15)
}

func TestRenderScrollbar_BlankWhenContentFits(t *testing.T) {
	out := RenderScrollbar(ScrollbarConfig{
		TotalLines:     5,
		ViewportHeight: 10,
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	for _, l := range lines {
		require.Equal(t, " ", l)
	}
}

func TestRenderScrollbar_EmptyForInvalidConfig(t *testing.T) {
	require.Empty(t, RenderScrollbar(ScrollbarConfig{}))
}
