// Package pager shows rendered documentation in an interactive terminal
// pager.
package pager

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	statusBarHeight = 1
	panelPadding    = 2
	maxPanelRows    = 8
	statusMsgDur    = 3 * time.Second
	logoText        = " doclink "
)

var (
	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#5a3fc0")).
			Bold(true)

	logoMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B6FFE4")).
			Background(lipgloss.Color("#1C8760")).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#2f2f2f", Dark: "#e6e6e6"}).
			Background(lipgloss.AdaptiveColor{Light: "#e6e6e6", Dark: "#303030"})

	statusBarMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#f8fff4", Dark: "#0b1a0f"}).
				Background(lipgloss.AdaptiveColor{Light: "#1c8760", Dark: "#1c8760"})

	unresolvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9c2f00", Dark: "#ffb38a"}).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#2f2f2f", Dark: "#d9d9d9"}).
			Background(lipgloss.AdaptiveColor{Light: "#f5f5f5", Dark: "#1e1e1e"}).
			Padding(1, 2)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#5a3fc0", Dark: "#b9a8ff"}).
			Bold(true)
)

var helpEntries = []struct {
	keys string
	desc string
}{
	{"↑/k", "scroll up"},
	{"↓/j", "scroll down"},
	{"PgUp/b", "page up"},
	{"PgDn/f/space", "page down"},
	{"g/Home", "go to top"},
	{"G/End", "go to bottom"},
	{"c", "copy substituted source"},
	{"r", "toggle unresolved references"},
	{"?", "toggle help"},
	{"q/Esc", "quit"},
}

// Document is a substituted document ready for display.
type Document struct {
	// Content is the terminal rendering.
	Content string
	// Raw is the substituted text, copied to the clipboard on request.
	Raw string
	// Label is shown in the status bar.
	Label string
	// Unresolved lists references that did not resolve.
	Unresolved []string
}

// Run launches an interactive pager for doc.
func Run(doc Document) error {
	m := newModel(doc)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()

	return err
}

type statusMsgTimeoutMsg struct{}

type panel int

const (
	panelNone panel = iota
	panelHelp
	panelUnresolved
)

type model struct {
	viewport      viewport.Model
	ready         bool
	width         int
	height        int
	doc           Document
	panel         panel
	statusMessage string
}

func newModel(doc Document) *model {
	vp := viewport.New(0, 0)
	vp.SetContent(doc.Content)
	vp.MouseWheelEnabled = true

	return &model{
		viewport: vp,
		doc:      doc,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.setSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.panel != panelNone {
				m.togglePanel(m.panel)

				return m, nil
			}

			return m, tea.Quit
		case "?":
			m.togglePanel(panelHelp)
		case "r":
			if len(m.doc.Unresolved) == 0 {
				cmds = append(cmds, m.setStatusMessage("All references resolved"))
				break
			}

			m.togglePanel(panelUnresolved)
		case "c":
			if m.doc.Raw != "" {
				termenv.Copy(m.doc.Raw)
				if err := clipboard.WriteAll(m.doc.Raw); err != nil {
					cmds = append(cmds, m.setStatusMessage(fmt.Sprintf("copy failed: %v", err)))
				} else {
					cmds = append(cmds, m.setStatusMessage("Copied substituted source"))
				}
			}
		case "down", "j":
			m.viewport.ScrollDown(1)
		case "up", "k":
			m.viewport.ScrollUp(1)
		case "pgdown", "f", " ", "space":
			m.viewport.PageDown()
		case "pgup", "b":
			m.viewport.PageUp()
		case "g", "home":
			m.viewport.GotoTop()
		case "G", "end":
			m.viewport.GotoBottom()
		}

	case statusMsgTimeoutMsg:
		m.statusMessage = ""
	}

	var cmd tea.Cmd

	m.viewport, cmd = m.viewport.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	if !m.ready {
		return "Loading pager…"
	}

	var b strings.Builder

	b.WriteString(m.viewport.View())
	b.WriteRune('\n')
	b.WriteString(m.statusBar())

	switch m.panel {
	case panelHelp:
		b.WriteString("\n")
		b.WriteString(m.renderPanel("Controls", m.helpLines()))
	case panelUnresolved:
		b.WriteString("\n")
		b.WriteString(m.renderPanel("Unresolved references", m.unresolvedLines()))
	}

	return b.String()
}

func (m *model) togglePanel(p panel) {
	if m.panel == p {
		m.panel = panelNone
	} else {
		m.panel = p
	}

	m.setSize(m.width, m.height)
}

func (m *model) statusBar() string {
	width := m.viewport.Width
	if width <= 0 {
		width = lipgloss.Width(m.viewport.View())
	}

	percent := int(math.Round(math.Max(0, math.Min(1, m.viewport.ScrollPercent())) * 100))
	right := fmt.Sprintf(" %3d%% ", percent) + " ? Help "

	var refs string
	if n := len(m.doc.Unresolved); n > 0 {
		refs = unresolvedStyle.Render(fmt.Sprintf(" %d unresolved ", n))
	}

	rawLabel := strings.TrimSpace(m.doc.Label)
	if rawLabel == "" {
		rawLabel = "doclink"
	}
	if m.statusMessage != "" {
		rawLabel = m.statusMessage
	}

	logoRendered := logoStyle.Render(logoText)
	statusStyle := statusBarStyle
	if m.statusMessage != "" {
		logoRendered = logoMsgStyle.Render(logoText)
		statusStyle = statusBarMsgStyle
	}

	availableWidth := max(width-lipgloss.Width(logoRendered)-lipgloss.Width(refs), 0)
	headroom := lipgloss.Width(right)
	innerWidth := max(availableWidth-headroom-2, 0)
	label := fmt.Sprintf(" %s ", truncateMiddle(rawLabel, innerWidth))
	spaceWidth := max(availableWidth-lipgloss.Width(label)-headroom, 0)
	statusRendered := statusStyle.Render(label + strings.Repeat(" ", spaceWidth) + right)

	return logoRendered + refs + statusRendered
}

func (m *model) helpLines() []string {
	lines := make([]string, 0, len(helpEntries))
	for _, entry := range helpEntries {
		lines = append(lines, fmt.Sprintf("%-12s %s", entry.keys, entry.desc))
	}

	return lines
}

func (m *model) unresolvedLines() []string {
	refs := m.doc.Unresolved
	if len(refs) <= maxPanelRows {
		return refs
	}

	lines := append([]string(nil), refs[:maxPanelRows-1]...)

	return append(lines, fmt.Sprintf("… and %d more", len(refs)-maxPanelRows+1))
}

func (m *model) panelHeight() int {
	switch m.panel {
	case panelHelp:
		return len(helpEntries) + panelPadding + 2
	case panelUnresolved:
		return len(m.unresolvedLines()) + panelPadding + 2
	default:
		return 0
	}
}

func (m *model) renderPanel(title string, lines []string) string {
	content := strings.Join(append([]string{panelTitleStyle.Render(title), ""}, lines...), "\n")

	return panelStyle.Width(max(m.viewport.Width, lipgloss.Width(content))).Render(content)
}

func (m *model) setSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = max(height-statusBarHeight-m.panelHeight(), 1)
}

func (m *model) setStatusMessage(msg string) tea.Cmd {
	m.statusMessage = msg

	return tea.Tick(statusMsgDur, func(time.Time) tea.Msg {
		return statusMsgTimeoutMsg{}
	})
}

func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	const ellipsis = "…"

	keep := limit - utf8.RuneCountInString(ellipsis)
	if keep <= 1 {
		r, _ := utf8.DecodeRuneInString(s)

		return string(r)
	}

	front := keep / 2
	back := keep - front
	runes := []rune(s)

	return string(runes[:front]) + ellipsis + string(runes[len(runes)-back:])
}
