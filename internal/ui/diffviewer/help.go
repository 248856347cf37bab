package diffviewer

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/patchview/internal/keys"
	"github.com/zjrosen/patchview/internal/ui/styles"
)

// Help styles (package-level to avoid recreating each render).
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.TextPrimaryColor).
			PaddingLeft(2)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(styles.TextPrimaryColor).
				MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(11)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor)

	helpDividerStyle = lipgloss.NewStyle().
				Foreground(styles.BorderDefaultColor)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.BorderDefaultColor)

	helpContentStyle = lipgloss.NewStyle().
				Padding(0, 2)

	helpFooterStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// helpModel holds the help overlay state.
type helpModel struct {
	keymap keys.KeyMap
	width  int
	height int
}

// newHelp creates a new help overlay model.
func newHelp(km keys.KeyMap) helpModel {
	return helpModel{keymap: km}
}

// SetSize updates the overlay dimensions.
func (h helpModel) SetSize(width, height int) helpModel {
	h.width = width
	h.height = height
	return h
}

// View renders the help box centered in the available space.
func (h helpModel) View() string {
	return lipgloss.Place(
		h.width, h.height,
		lipgloss.Center, lipgloss.Center,
		h.renderContent(),
	)
}

// renderContent builds the help box content.
func (h helpModel) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)
	km := h.keymap

	var navCol strings.Builder
	navCol.WriteString(helpSectionStyle.Render("Scrolling"))
	navCol.WriteString("\n")
	navCol.WriteString(renderHelpBinding(km.Up))
	navCol.WriteString(renderHelpBinding(km.Down))
	navCol.WriteString(renderHelpBinding(km.HalfUp))
	navCol.WriteString(renderHelpBinding(km.HalfDown))
	navCol.WriteString(renderHelpBinding(km.Top))
	navCol.WriteString(renderHelpBinding(km.Bottom))

	var filesCol strings.Builder
	filesCol.WriteString(helpSectionStyle.Render("Files & Panes"))
	filesCol.WriteString("\n")
	filesCol.WriteString(renderHelpBinding(km.NextFile))
	filesCol.WriteString(renderHelpBinding(km.PrevFile))
	filesCol.WriteString(renderHelpBinding(km.FocusLeft))
	filesCol.WriteString(renderHelpBinding(km.FocusRight))
	filesCol.WriteString(renderHelpBinding(km.CyclePane))

	var viewCol strings.Builder
	viewCol.WriteString(helpSectionStyle.Render("View"))
	viewCol.WriteString("\n")
	viewCol.WriteString(renderHelpBinding(km.ToggleMode))
	viewCol.WriteString(renderHelpBinding(km.ToggleWordDiff))
	viewCol.WriteString(renderHelpBinding(km.ToggleStatus))

	var generalCol strings.Builder
	generalCol.WriteString(helpSectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(renderHelpBinding(km.Help))
	generalCol.WriteString(renderHelpBinding(km.Quit))

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(navCol.String()),
		columnStyle.Render(filesCol.String()),
		columnStyle.Render(viewCol.String()),
		generalCol.String(),
	)

	boxWidth := lipgloss.Width(columns) + 4
	footer := helpFooterStyle.Render("Press ? or Esc to close")

	var body strings.Builder
	body.WriteString(columns)
	body.WriteString("\n")
	body.WriteString(footer)

	var content strings.Builder
	content.WriteString(helpTitleStyle.Render("Diff Viewer Help"))
	content.WriteString("\n")
	content.WriteString(helpDividerStyle.Render(strings.Repeat("─", boxWidth)))
	content.WriteString("\n")
	content.WriteString(helpContentStyle.Render(body.String()))

	return helpBoxStyle.Width(boxWidth).Render(content.String())
}

// renderHelpBinding renders a key.Binding as "key  description\n".
func renderHelpBinding(b key.Binding) string {
	help := b.Help()
	return helpKeyStyle.Render(help.Key) + helpDescStyle.Render(help.Desc) + "\n"
}
