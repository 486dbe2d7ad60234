package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/five82/cinemaflow/internal/catalog"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("cinemaflow", styles.Logo),
		bg.Render(strings.ToUpper(m.snapshot.Category), styles.AccentText.Bold(true)),
	}

	switch {
	case m.snapshot.ListLoading:
		parts = append(parts, bg.Render("Loading...", styles.WarningText))
	case m.snapshot.LastError != nil:
		label := "API " + classifyError(m.snapshot.LastError)
		if m.snapshot.IsOffline() {
			label += " (repeated)"
		}
		parts = append(parts, bg.Render(label, styles.DangerText))
	default:
		parts = append(parts, bg.Render(fmt.Sprintf("%d titles", len(m.snapshot.Items)), styles.Text))
	}

	if m.searching {
		parts = append(parts, bg.Render("search: "+truncate(m.lastQuery.Name, 24), styles.InfoText))
	}

	tokenLabel, tokenStyle := "token set", styles.MutedText
	if strings.TrimSpace(m.current.APIToken) == "" {
		tokenLabel, tokenStyle = "no token", styles.WarningText
	}
	parts = append(parts, bg.Render(tokenLabel, tokenStyle))

	if host := domainHost(m.current.PlayerDomain); host != "" {
		parts = append(parts, bg.Render("player", styles.FaintText)+bg.Space()+bg.Render(host, styles.MutedText))
	} else {
		parts = append(parts, bg.Render("player not configured", styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// classifyError shortens an error for the header.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "HTTP "):
		return "UNAVAILABLE"
	default:
		return "ERROR"
	}
}

func domainHost(raw string) string {
	safe, ok := catalog.SafeURL(raw)
	if !ok {
		return ""
	}
	u, err := url.Parse(safe)
	if err != nil {
		return ""
	}
	return u.Host
}

// renderCommandBar renders the command hints bar, or the flash message when
// one is pending.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.flash != "" {
		style := styles.SuccessText
		if m.flashIsErr {
			style = styles.DangerText
		}
		return styles.Header.Width(m.width).Render(bg.Render(m.flash, style))
	}

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewDetail:
		commands = []cmd{
			{"[/]", "Translation"},
			{"p", "Player"},
			{"y", "Copy"},
			{"j/k", "Scroll"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case ViewLogs:
		commands = []cmd{
			{"r", "Reload"},
			{"j/k", "Scroll"},
			{"esc", "Back"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"r", "Refresh"},
			{"c", "Category"},
			{"enter", "Details"},
			{"s", "Settings"},
			{"L", "Log"},
			{"?", "More"},
		}
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(segments, "  "))
}
