// Package tui implements the interactive catalog browser, a Bubble Tea
// front end over the loaded WGF catalog for content authors.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/scrollgen/internal/content"
)

// Browser layout constants
const (
	minWidthForDetail = 100 // Minimum width to show the detail sidebar
	detailWidth       = 38  // Width of the detail sidebar
)

// BrowserKeyMap defines the key bindings for the catalog browser.
type BrowserKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTag key.Binding
	PrevTag key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTag, k.PrevTag, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTag, k.PrevTag, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTag: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tag filter"),
		),
		PrevTag: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev tag filter"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel is the Bubble Tea model for the catalog browser screen.
type BrowserModel struct {
	loader     *content.Loader
	frames     []content.WGFDefinition // Frames matching the active tag filter
	tags       []string                // All tags plus the "all" pseudo-filter
	tagCursor  int
	table      table.Model
	help       help.Model
	keys       BrowserKeyMap
	width      int
	height     int
	quitting   bool
	showDetail bool
}

// NewBrowserModel creates a new browser model over a loaded catalog.
func NewBrowserModel(loader *content.Loader, width, height int) BrowserModel {
	keys := DefaultBrowserKeyMap()
	h := help.New()
	h.ShowAll = false

	m := BrowserModel{
		loader:     loader,
		tags:       collectTags(loader),
		keys:       keys,
		help:       h,
		width:      width,
		height:     height,
		showDetail: width >= minWidthForDetail,
	}

	m.table = m.createTable()
	m.applyTagFilter()

	return m
}

// collectTags gathers the distinct tags across the catalog, sorted, with
// an "all" pseudo-tag in front.
func collectTags(loader *content.Loader) []string {
	seen := map[string]bool{}
	for _, wgf := range loader.AllWGFs() {
		for _, tag := range wgf.Tags {
			seen[tag] = true
		}
	}
	tags := []string{"all"}
	for _, wgf := range loader.AllWGFs() {
		for _, tag := range wgf.Tags {
			if seen[tag] {
				seen[tag] = false
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// createTable creates a new table with appropriate columns.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Diff", Width: 5},
		{Title: "Width", Width: 6},
		{Title: "Obst", Width: 5},
		{Title: "Tags", Width: 18},
	}

	tableWidth := m.width - 4
	if m.showDetail {
		tableWidth -= detailWidth + 3
	}
	if extra := tableWidth - 60; extra > 0 {
		columns[0].Width += extra / 2
		columns[4].Width += extra - extra/2
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// applyTagFilter rebuilds the frame list and table rows for the active tag.
func (m *BrowserModel) applyTagFilter() {
	if m.tagCursor == 0 {
		m.frames = m.loader.AllWGFs()
	} else {
		matches := m.loader.FindByTags([]string{m.tags[m.tagCursor]}, false)
		m.frames = make([]content.WGFDefinition, 0, len(matches))
		for _, wgf := range matches {
			m.frames = append(m.frames, *wgf)
		}
	}

	rows := make([]table.Row, len(m.frames))
	for i, wgf := range m.frames {
		rows[i] = table.Row{
			wgf.Name,
			fmt.Sprintf("%.1f", wgf.Difficulty),
			fmt.Sprintf("%d", wgf.Width),
			fmt.Sprintf("%d", len(wgf.Obstacles)),
			strings.Join(wgf.Tags, ","),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTag):
			m.tagCursor = (m.tagCursor + 1) % len(m.tags)
			m.applyTagFilter()
			return m, nil

		case key.Matches(msg, m.keys.PrevTag):
			m.tagCursor--
			if m.tagCursor < 0 {
				m.tagCursor = len(m.tags) - 1
			}
			m.applyTagFilter()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetail = m.width >= minWidthForDetail
		m.table = m.createTable()
		m.applyTagFilter()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("WGF CATALOG - %d frames - filter: %s",
		len(m.frames), m.tags[m.tagCursor])
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showDetail {
		detailStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(detailWidth).
			Padding(0, 1)
		detail := detailStyle.Render(m.renderDetail())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", detail))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m BrowserModel) renderTableContent() string {
	if len(m.frames) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No frames match this filter.")
	}
	return m.table.View()
}

// renderDetail renders the selected frame's full definition.
func (m BrowserModel) renderDetail() string {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.frames) {
		return "No frame selected."
	}
	wgf := m.frames[cursor]

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", wgf.Name)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("id:"), wgf.ID)
	if wgf.Description != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("desc:"), wgf.Description)
	}
	fmt.Fprintf(&b, "%s %.1f\n", labelStyle.Render("difficulty:"), wgf.Difficulty)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("width:"), wgf.Width)
	if len(wgf.Tags) > 0 {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("tags:"), strings.Join(wgf.Tags, ", "))
	}
	source := "user"
	if wgf.IsCore {
		source = "core"
	}
	fmt.Fprintf(&b, "%s %s (%s)\n", labelStyle.Render("source:"), wgf.SourceFile, source)

	rules := wgf.SpawnRules
	fmt.Fprintf(&b, "%s min_dist=%d freq=%.2f",
		labelStyle.Render("rules:"), rules.MinDistanceFromLast, rules.MaxFrequency)
	if len(rules.RequiresTags) > 0 {
		fmt.Fprintf(&b, " requires=%s", strings.Join(rules.RequiresTags, ","))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %d obstacles, %d enemies\n",
		labelStyle.Render("content:"), len(wgf.Obstacles), len(wgf.Enemies))
	for i, obs := range wgf.Obstacles {
		if i >= 8 {
			fmt.Fprintf(&b, "  ... %d more\n", len(wgf.Obstacles)-i)
			break
		}
		fmt.Fprintf(&b, "  %s @ (%.0f, %.0f)\n", obs.Type, obs.Position.X, obs.Position.Y)
	}

	return b.String()
}

// IsQuitting returns true if the user asked to quit.
func (m BrowserModel) IsQuitting() bool {
	return m.quitting
}

// RunBrowser runs the catalog browser screen.
func RunBrowser(loader *content.Loader, width, height int) error {
	model := NewBrowserModel(loader, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// centerText centers a line within the given width.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + text
}
