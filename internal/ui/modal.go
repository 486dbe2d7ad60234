package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cinemaflow/internal/catalog"
	"github.com/five82/cinemaflow/internal/settings"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

type formField struct {
	label string
	input textinput.Model
}

// form is a column of labelled text inputs with one focused field.
type form struct {
	title  string
	hint   string
	footer string
	fields []formField
	focus  int
	err    string
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 36
	return ti
}

func (f *form) focusField(idx int) tea.Cmd {
	n := len(f.fields)
	if n == 0 {
		return nil
	}
	f.fields[f.focus].input.Blur()
	f.focus = (idx%n + n) % n
	return f.fields[f.focus].input.Focus()
}

func (f *form) value(idx int) string {
	return strings.TrimSpace(f.fields[idx].input.Value())
}

// handleInput moves focus between fields or forwards the key to the
// focused input.
func (f *form) handleInput(msg tea.Msg, keys keyMap) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(kmsg, keys.NextField):
			return f.focusField(f.focus + 1)
		case key.Matches(kmsg, keys.PrevField):
			return f.focusField(f.focus - 1)
		}
		f.err = ""
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) view(theme Theme, screenWidth, screenHeight int) string {
	styles := theme.Styles()

	labelWidth := 0
	for _, field := range f.fields {
		labelWidth = max(labelWidth, len(field.label)+2)
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(f.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 44)))
	b.WriteString("\n\n")
	if f.hint != "" {
		b.WriteString(styles.MutedText.Render(f.hint))
		b.WriteString("\n\n")
	}

	for i, field := range f.fields {
		label := padRight(field.label+":", labelWidth)
		if i == f.focus {
			label = styles.AccentText.Render(label)
		} else {
			label = styles.MutedText.Render(label)
		}
		b.WriteString(label)
		b.WriteString(field.input.View())
		b.WriteString("\n\n")
	}

	if f.err != "" {
		b.WriteString(styles.DangerText.Render(f.err))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render(f.footer))

	return placeModal(theme, screenWidth, screenHeight, b.String(), 56)
}

// searchModal collects a title query, an optional year and a category.
type searchModal struct {
	form
}

type searchSubmitMsg struct {
	query catalog.SearchQuery
}

func newSearchModal(previous catalog.SearchQuery, category string) *searchModal {
	query := newInput("e.g. Брат", 120)
	query.SetValue(previous.Name)
	year := newInput("e.g. 1997 (optional)", 4)
	year.SetValue(previous.Year)
	cat := newInput("movie, serial, cartoon, anime", 32)
	cat.SetValue(category)

	s := &searchModal{form: form{
		title:  "Search",
		footer: "Enter: Search  •  Tab: Next field  •  Esc: Cancel",
		fields: []formField{
			{label: "Title", input: query},
			{label: "Year", input: year},
			{label: "Category", input: cat},
		},
	}}
	s.focusField(0)
	return s
}

func (s *searchModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case kmsg.String() == "esc":
			return s, nil, true
		case key.Matches(kmsg, keys.Confirm):
			q := catalog.SearchQuery{Name: s.value(0), Year: s.value(1), Category: s.value(2)}
			if q.Name == "" {
				s.err = "Enter a title to search for"
				return s, nil, false
			}
			return s, func() tea.Msg { return searchSubmitMsg{query: q} }, true
		}
	}
	return s, s.handleInput(msg, keys), false
}

func (s *searchModal) View(theme Theme, width, height int) string {
	return s.view(theme, width, height)
}

// settingsModal edits the API token and the player domain. It stays open
// until a save succeeds or the user cancels.
type settingsModal struct {
	form
}

type settingsSaveMsg struct {
	value settings.Settings
}

type settingsResetMsg struct{}

func newSettingsModal(current settings.Settings) *settingsModal {
	token := newInput("API token", 256)
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'
	token.SetValue(current.APIToken)
	domain := newInput("https://player.example/", 256)
	domain.SetValue(current.PlayerDomain)

	s := &settingsModal{form: form{
		title:  "Settings",
		hint:   "Changes apply to the next request.",
		footer: "Enter: Save  •  Ctrl+R: Reset  •  Esc: Close",
		fields: []formField{
			{label: "API token", input: token},
			{label: "Player domain", input: domain},
		},
	}}
	s.focusField(0)
	return s
}

func (s *settingsModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case kmsg.String() == "esc":
			return s, nil, true
		case key.Matches(kmsg, keys.Reset):
			return s, func() tea.Msg { return settingsResetMsg{} }, false
		case key.Matches(kmsg, keys.Confirm):
			value := settings.Settings{APIToken: s.value(0), PlayerDomain: s.value(1)}
			return s, func() tea.Msg { return settingsSaveMsg{value: value} }, false
		}
	}
	return s, s.handleInput(msg, keys), false
}

func (s *settingsModal) View(theme Theme, width, height int) string {
	return s.view(theme, width, height)
}

func (s *settingsModal) setError(message string) {
	s.err = message
}

func (s *settingsModal) setValues(value settings.Settings) {
	s.fields[0].input.SetValue(value.APIToken)
	s.fields[1].input.SetValue(value.PlayerDomain)
	s.err = ""
}
