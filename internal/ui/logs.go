package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cinemaflow/internal/logtail"
)

// Number of trailing log lines loaded into the log view.
const logFetchLimit = 500

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsLoadedMsg{}
		}
		lines, err := logtail.Read(path, logFetchLimit)
		return logsLoadedMsg{lines: lines, err: err}
	}
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewResults
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, loadLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// updateLogViewport re-renders the log lines and follows the tail.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.Width = max(m.width-4, 0)
	m.logViewport.Height = max(m.height-4, 0)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
	m.logViewport.GotoBottom()
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	title := "Application Log"
	if n := len(m.logLines); n > 0 {
		title = fmt.Sprintf("Application Log (%d lines)", n)
	}
	content := lipgloss.NewStyle().PaddingLeft(1).Render(m.logViewport.View())
	return m.renderTitledBox(title, content, m.width, m.height-2, true)
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	if m.logErr != nil {
		return bg.Render("Could not read log: "+m.logErr.Error(), styles.DangerText)
	}
	if len(m.logLines) == 0 {
		return bg.Render("No log entries yet", styles.FaintText)
	}

	out := make([]string, 0, len(m.logLines))
	for _, line := range m.logLines {
		out = append(out, formatLogLine(logtail.Parse(line), styles, bg))
	}
	return strings.Join(out, "\n")
}

// formatLogLine renders "15:04:05 LEVEL message key=value".
func formatLogLine(e logtail.Entry, styles Styles, bg BgStyle) string {
	if e.Level == "" {
		return bg.Render(e.Raw, styles.MutedText)
	}
	parts := make([]string, 0, 3+len(e.Attrs))
	if !e.Time.IsZero() {
		parts = append(parts, bg.Render(e.Time.Format("15:04:05"), styles.FaintText))
	}
	parts = append(parts,
		bg.Render(padRight(e.Level, 5), styles.LevelStyle(e.Level)),
		bg.Render(e.Message, styles.Text),
	)
	for _, attr := range e.Attrs {
		parts = append(parts, bg.Render(attr.Key+"=", styles.FaintText)+bg.Render(attr.Value, styles.MutedText))
	}
	return bg.Join(parts, " ")
}
