// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Paths, secondary info
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Gutters, hints, footers

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"} // Focused pane border

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Success states
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Warnings
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Diff palette
	DiffAdditionColor = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#73F59F"} // Added lines
	DiffDeletionColor = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF8787"} // Removed lines
	DiffContextColor  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#AAAAAA"} // Unchanged lines
	DiffHunkColor     = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // @@ headers
	DiffMetaColor     = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // File/patch metadata

	// Word-level highlight backgrounds for changed segments
	DiffWordAdditionBgColor = lipgloss.AdaptiveColor{Light: "#C8E6C9", Dark: "#1B4332"}
	DiffWordDeletionBgColor = lipgloss.AdaptiveColor{Light: "#FFCDD2", Dark: "#4A1C1C"}

	// Selection highlight for the focused file list entry
	SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#3A3A3A"}
)
