package diffviewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/patchview/internal/cachemanager"
	"github.com/zjrosen/patchview/internal/diff"
	"github.com/zjrosen/patchview/internal/keys"
	"github.com/zjrosen/patchview/internal/log"
	"github.com/zjrosen/patchview/internal/ui/styles"
)

// Layout constants
const (
	fileListMinWidth = 24   // Minimum width for the file list pane
	fileListMaxWidth = 48   // Maximum width for the file list pane
	fileListRatio    = 0.30 // File list takes 30% of width

	// minSideBySideWidth is the minimum terminal width for side-by-side
	// view. Below this the viewer falls back to unified.
	minSideBySideWidth = 100

	renderCacheTTL = time.Minute
)

// focusPane indicates which pane has keyboard focus.
type focusPane int

const (
	focusFileList focusPane = iota
	focusDiff
)

// ReloadMsg carries fresh diff text, sent when the watched file changes.
type ReloadMsg struct {
	Text string
	Err  error
}

// Config configures a new viewer.
type Config struct {
	SourcePath    string
	Mode          ViewMode
	WordDiff      bool
	ShowStatusBar bool
	TabWidth      int
}

// renderInput is the loader input for the render cache.
type renderInput struct {
	rows     []diff.Row
	wordDiff map[int]diff.PairSegments
	mode     ViewMode
	width    int
	tabWidth int
}

// Model is the diff viewer component state.
type Model struct {
	width, height int
	keymap        keys.KeyMap

	sourcePath string
	rows       []diff.Row
	files      []diff.File
	err        error

	viewMode          ViewMode // effective mode (may be constrained by width)
	preferredViewMode ViewMode // mode the user asked for
	useWordDiff       bool
	showStatusBar     bool
	tabWidth          int

	focus             focusPane
	selectedFile      int
	fileListScrollTop int
	scrollOffset      int
	scrollPositions   map[int]int // file index -> scroll offset

	// Word diff results per file, computed lazily.
	wordDiffs map[int]map[int]diff.PairSegments

	renderCache *cachemanager.ReadThroughCache[string, []string, renderInput]

	showHelp bool
	help     helpModel
}

// New creates a diff viewer from config.
func New(cfg Config) Model {
	km := keys.DefaultKeyMap()

	backing := cachemanager.NewInMemoryCacheManager[string, []string](
		"diff-render", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)

	return Model{
		keymap:            km,
		sourcePath:        cfg.SourcePath,
		viewMode:          cfg.Mode,
		preferredViewMode: cfg.Mode,
		useWordDiff:       cfg.WordDiff,
		showStatusBar:     cfg.ShowStatusBar,
		tabWidth:          cfg.TabWidth,
		focus:             focusFileList,
		scrollPositions:   make(map[int]int),
		wordDiffs:         make(map[int]map[int]diff.PairSegments),
		renderCache:       cachemanager.NewReadThroughCache(backing, renderBody, false),
		help:              newHelp(km),
	}
}

// renderBody is the render cache loader: it projects a file's rows into
// styled terminal lines for the current mode and width.
func renderBody(ctx context.Context, in renderInput) ([]string, error) {
	opts := renderOptions{width: in.width, tabWidth: in.tabWidth, wordDiff: in.wordDiff}
	if in.mode == ViewModeSideBySide {
		return renderSideBySideLines(in.rows, opts), nil
	}
	return renderUnifiedLines(in.rows, opts), nil
}

// SetContent replaces the viewer's diff text, preserving the selected
// file position when possible.
func (m Model) SetContent(text string) Model {
	prevSelected := m.selectedFile

	m.rows = diff.Parse(text)
	m.files = diff.GroupFiles(m.rows)
	m.wordDiffs = make(map[int]map[int]diff.PairSegments)
	m.scrollPositions = make(map[int]int)
	m.scrollOffset = 0
	_ = m.renderCache.Flush(context.Background())

	if prevSelected < len(m.files) {
		m.selectedFile = prevSelected
	} else {
		m.selectedFile = 0
	}

	log.Debug(log.CatUI, "Diff content set", "rows", len(m.rows), "files", len(m.files))
	return m
}

// Files returns the grouped file summaries for the loaded diff.
func (m Model) Files() []diff.File {
	return m.files
}

// Rows returns the parsed row stream.
func (m Model) Rows() []diff.Row {
	return m.rows
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.viewMode = m.constrainViewMode(m.preferredViewMode)
		m.scrollOffset = m.clampOffset(m.scrollOffset)
		return m, nil

	case ReloadMsg:
		if msg.Err != nil {
			m.err = msg.Err
			log.ErrorErr(log.CatUI, "Reload failed", msg.Err)
			return m, nil
		}
		m.err = nil
		return m.SetContent(msg.Text), nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap

	if m.showHelp {
		if key.Matches(msg, km.Help) || key.Matches(msg, km.Escape) || key.Matches(msg, km.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, km.Quit):
		return m, tea.Quit

	case key.Matches(msg, km.Escape):
		return m, tea.Quit

	case key.Matches(msg, km.Help):
		m.showHelp = true

	case key.Matches(msg, km.Up):
		if m.focus == focusFileList {
			m = m.selectFile(m.selectedFile - 1)
		} else {
			m.scrollOffset = m.clampOffset(m.scrollOffset - 1)
		}

	case key.Matches(msg, km.Down):
		if m.focus == focusFileList {
			m = m.selectFile(m.selectedFile + 1)
		} else {
			m.scrollOffset = m.clampOffset(m.scrollOffset + 1)
		}

	case key.Matches(msg, km.HalfUp):
		m.scrollOffset = m.clampOffset(m.scrollOffset - m.viewportHeight()/2)

	case key.Matches(msg, km.HalfDown):
		m.scrollOffset = m.clampOffset(m.scrollOffset + m.viewportHeight()/2)

	case key.Matches(msg, km.Top):
		m.scrollOffset = 0

	case key.Matches(msg, km.Bottom):
		m.scrollOffset = m.clampOffset(len(m.bodyLines()))

	case key.Matches(msg, km.NextFile):
		m = m.selectFile(m.selectedFile + 1)

	case key.Matches(msg, km.PrevFile):
		m = m.selectFile(m.selectedFile - 1)

	case key.Matches(msg, km.FocusLeft):
		m.focus = focusFileList

	case key.Matches(msg, km.FocusRight):
		m.focus = focusDiff

	case key.Matches(msg, km.CyclePane):
		if m.focus == focusFileList {
			m.focus = focusDiff
		} else {
			m.focus = focusFileList
		}

	case key.Matches(msg, km.ToggleMode):
		if m.preferredViewMode == ViewModeUnified {
			m.preferredViewMode = ViewModeSideBySide
		} else {
			m.preferredViewMode = ViewModeUnified
		}
		m.viewMode = m.constrainViewMode(m.preferredViewMode)
		m.scrollOffset = m.clampOffset(m.scrollOffset)

	case key.Matches(msg, km.ToggleWordDiff):
		m.useWordDiff = !m.useWordDiff
		m.scrollOffset = m.clampOffset(m.scrollOffset)

	case key.Matches(msg, km.ToggleStatus):
		m.showStatusBar = !m.showStatusBar
	}

	return m, nil
}

// selectFile moves file selection, saving and restoring per-file scroll.
func (m Model) selectFile(idx int) Model {
	if len(m.files) == 0 {
		return m
	}
	idx = max(0, min(idx, len(m.files)-1))
	if idx == m.selectedFile {
		return m
	}

	m.scrollPositions[m.selectedFile] = m.scrollOffset
	m.selectedFile = idx
	m.scrollOffset = m.clampOffset(m.scrollPositions[idx])
	return m
}

// constrainViewMode drops to unified when the terminal is too narrow.
func (m Model) constrainViewMode(preferred ViewMode) ViewMode {
	if preferred == ViewModeSideBySide && m.width < minSideBySideWidth {
		return ViewModeUnified
	}
	return preferred
}

// fileRows returns the row slice for the selected file.
func (m Model) fileRows() []diff.Row {
	if m.selectedFile >= len(m.files) {
		return m.rows
	}
	f := m.files[m.selectedFile]
	return m.rows[f.Start:f.End]
}

// fileWordDiff lazily computes word diff segments for the selected file.
func (m Model) fileWordDiff() map[int]diff.PairSegments {
	if !m.useWordDiff {
		return nil
	}
	if segs, ok := m.wordDiffs[m.selectedFile]; ok {
		return segs
	}
	segs := diff.WordDiff(m.fileRows())
	m.wordDiffs[m.selectedFile] = segs
	return segs
}

// bodyLines returns the rendered diff body for the selected file,
// served from the render cache when possible.
func (m Model) bodyLines() []string {
	bodyWidth := m.diffPaneWidth() - 3 // borders and scrollbar column
	if bodyWidth < 1 || len(m.rows) == 0 {
		return nil
	}

	cacheKey := fmt.Sprintf("%d|%d|%d|%d|%v", m.selectedFile, bodyWidth, m.viewMode, m.tabWidth, m.useWordDiff)
	lines, err := m.renderCache.Get(context.Background(), cacheKey, renderInput{
		rows:     m.fileRows(),
		wordDiff: m.fileWordDiff(),
		mode:     m.viewMode,
		width:    bodyWidth,
		tabWidth: m.tabWidth,
	}, renderCacheTTL)
	if err != nil {
		return nil
	}
	return lines
}

// Pane geometry

func (m Model) fileListWidth() int {
	w := int(float64(m.width) * fileListRatio)
	return max(fileListMinWidth, min(w, fileListMaxWidth))
}

func (m Model) diffPaneWidth() int {
	return m.width - m.fileListWidth()
}

// viewportHeight is the number of visible diff body lines.
func (m Model) viewportHeight() int {
	h := m.height - 2 // pane borders
	if m.showStatusBar {
		h--
	}
	return max(h, 1)
}

func (m Model) clampOffset(offset int) int {
	maxOffset := max(len(m.bodyLines())-m.viewportHeight(), 0)
	return max(0, min(offset, maxOffset))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showHelp {
		return m.help.View()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderFileList(), m.renderDiffPane())
	if !m.showStatusBar {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// renderFileList renders the left pane.
func (m Model) renderFileList() string {
	width := m.fileListWidth()
	height := m.viewportHeight()
	innerWidth := width - 2

	border := styles.BorderDefaultColor
	if m.focus == focusFileList {
		border = styles.BorderFocusColor
	}

	visible := m.visibleFileRange(height)
	var b strings.Builder
	for i := visible.start; i < visible.end; i++ {
		b.WriteString(renderFileEntry(m.files[i], i == m.selectedFile, m.focus == focusFileList, innerWidth))
		if i < visible.end-1 {
			b.WriteString("\n")
		}
	}
	content := b.String()
	if len(m.files) == 0 {
		content = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("no files")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(innerWidth).
		Height(height).
		Render(content)
}

type fileRange struct{ start, end int }

// visibleFileRange keeps the selection inside the visible window.
func (m Model) visibleFileRange(height int) fileRange {
	if len(m.files) <= height {
		return fileRange{0, len(m.files)}
	}
	start := m.fileListScrollTop
	if m.selectedFile < start {
		start = m.selectedFile
	}
	if m.selectedFile >= start+height {
		start = m.selectedFile - height + 1
	}
	return fileRange{start, min(start+height, len(m.files))}
}

// renderDiffPane renders the right pane with scrollbar.
func (m Model) renderDiffPane() string {
	width := m.diffPaneWidth()
	height := m.viewportHeight()
	innerWidth := width - 2

	border := styles.BorderDefaultColor
	if m.focus == focusDiff {
		border = styles.BorderFocusColor
	}

	lines := m.bodyLines()
	var content string
	switch {
	case m.err != nil:
		content = lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Render(m.err.Error())
	case len(lines) == 0:
		content = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("empty diff")
	default:
		end := min(m.scrollOffset+height, len(lines))
		visible := lines[m.scrollOffset:end]

		scrollbar := RenderScrollbar(ScrollbarConfig{
			TotalLines:     len(lines),
			ViewportHeight: height,
			ScrollOffset:   m.scrollOffset,
		})
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			strings.Join(visible, "\n"),
			lipgloss.NewStyle().MarginLeft(max(innerWidth-maxLineWidth(visible)-1, 0)).Render(scrollbar),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(innerWidth).
		Height(height).
		Render(content)
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, lipgloss.Width(l))
	}
	return w
}

// renderStatusBar renders the footer line.
func (m Model) renderStatusBar() string {
	left := m.sourcePath
	if left == "" {
		left = "(stdin)"
	}

	var position string
	if len(m.files) > 0 {
		position = fmt.Sprintf("file %d/%d", m.selectedFile+1, len(m.files))
	}

	wd := "word diff off"
	if m.useWordDiff {
		wd = "word diff on"
	}

	right := fmt.Sprintf("%s · %s · %s · ? help", position, m.viewMode, wd)

	style := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return style.Render(" " + left + strings.Repeat(" ", gap) + right + " ")
}
