package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cinemaflow/internal/catalog"
	"github.com/five82/cinemaflow/internal/config"
	"github.com/five82/cinemaflow/internal/prefs"
	"github.com/five82/cinemaflow/internal/settings"
	"github.com/five82/cinemaflow/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewResults View = iota
	ViewDetail
	ViewLogs
)

// SettingsStore is the part of settings.Store the UI needs.
type SettingsStore interface {
	Load() settings.Settings
	Save(settings.Settings) (settings.Settings, error)
	Reset() (settings.Settings, error)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Catalog   catalog.Catalog
	Store     *state.Store
	Settings  SettingsStore
	Config    *config.Config
	ThemeName string
	Category  string
	PrefsPath string
	LogPath   string
	Logger    *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	catalog   catalog.Catalog
	store     *state.Store
	settings  SettingsStore
	config    *config.Config
	prefsPath string
	logPath   string
	logger    *slog.Logger
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	flash       string
	flashIsErr  bool

	// Data state
	snapshot  state.Snapshot
	current   settings.Settings
	lastQuery catalog.SearchQuery
	searching bool

	// Detail state
	detailViewport viewport.Model
	player         playerState

	// Log state
	logViewport viewport.Model
	logLines    []string
	logErr      error

	// Overlays
	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	category := strings.TrimSpace(opts.Category)
	if category == "" {
		category = cfg.DefaultCategory
	}

	m := Model{
		ctx:         ctx,
		catalog:     opts.Catalog,
		store:       store,
		settings:    opts.Settings,
		config:      cfg,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		logger:      logger,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		currentView: ViewResults,
	}
	if m.settings != nil {
		m.current = m.settings.Load()
	}
	m.snapshot = m.store.Snapshot()
	m.snapshot.Category = category
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.loadList(m.snapshot.Category, catalog.SearchQuery{}))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(0, 0)
			m.logViewport = viewport.New(0, 0)
		}
		m.ready = true
		// Init's first request has begun by now unless the store is unused.
		if snap := m.store.Snapshot(); snap.Category != "" {
			m.snapshot = snap
		}
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case listLoadedMsg:
		if !m.store.ApplyList(msg.seq, msg.items, msg.err) {
			m.logger.Debug("discarded stale list response", "seq", msg.seq)
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("list request failed", "category", m.snapshot.Category, "error", msg.err)
		}
		m.snapshot = m.store.Snapshot()
		return m, nil

	case detailLoadedMsg:
		if !m.store.ApplyDetail(msg.seq, msg.item) {
			m.logger.Debug("discarded stale detail response", "seq", msg.seq)
			return m, nil
		}
		m.snapshot = m.store.Snapshot()
		m.player.reset(msg.item)
		m.updateDetailViewport()
		return m, nil

	case searchSubmitMsg:
		return m.runSearch(msg.query)

	case settingsSaveMsg:
		return m.saveSettings(msg.value)

	case settingsResetMsg:
		return m.resetSettings()

	case clipboardMsg:
		if msg.err != nil {
			m.setFlash("Copy failed: "+msg.err.Error(), true)
		} else {
			m.setFlash("Player URL copied", false)
		}
		return m, nil

	case logsLoadedMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.renderDetail()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderResults()
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = modal
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	m.flash = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		m.modal = newSettingsModal(m.current)
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.currentView = ViewLogs
		return m, loadLogsCmd(m.logPath)
	}

	switch m.currentView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleResultsKey(msg)
	}
}

// handleResultsKey processes keyboard input for the results view.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.modal = newSearchModal(m.lastQuery, m.snapshot.Category)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.searching {
			return m, m.loadList(m.lastQuery.Category, m.lastQuery)
		}
		return m, m.loadList(m.snapshot.Category, catalog.SearchQuery{})

	case key.Matches(msg, m.keys.CycleCategory):
		m.searching = false
		next := m.config.NextCategory(m.snapshot.Category)
		cmd := m.loadList(next, catalog.SearchQuery{})
		m.savePrefs()
		return m, cmd

	case key.Matches(msg, m.keys.Open):
		item, ok := m.snapshot.SelectedItem()
		if !ok {
			return m, nil
		}
		return m.openDetail(item)
	}

	count := len(m.snapshot.Items)
	if count == 0 {
		return m, nil
	}
	selected := m.snapshot.Selected
	page := max(m.resultsVisibleRows(), 1)
	switch {
	case key.Matches(msg, m.keys.Down):
		selected++
	case key.Matches(msg, m.keys.Up):
		selected--
	case key.Matches(msg, m.keys.Top):
		selected = 0
	case key.Matches(msg, m.keys.Bottom):
		selected = count - 1
	case key.Matches(msg, m.keys.PageDown):
		selected += page
	case key.Matches(msg, m.keys.PageUp):
		selected -= page
	default:
		return m, nil
	}
	m.store.Select(selected)
	m.snapshot = m.store.Snapshot()
	return m, nil
}

// loadList starts a list or search request and marks the results as loading.
func (m *Model) loadList(category string, query catalog.SearchQuery) tea.Cmd {
	seq := m.store.BeginList(category)
	m.snapshot = m.store.Snapshot()
	if m.catalog == nil {
		return nil
	}
	return fetchListCmd(m.ctx, m.catalog, m.current.APIToken, seq, category, query)
}

func (m Model) runSearch(query catalog.SearchQuery) (tea.Model, tea.Cmd) {
	if query.Category == "" {
		query.Category = m.snapshot.Category
	}
	m.lastQuery = query
	m.searching = true
	m.currentView = ViewResults
	return m, m.loadList(query.Category, query)
}

func (m Model) saveSettings(value settings.Settings) (tea.Model, tea.Cmd) {
	if m.settings == nil {
		return m, nil
	}
	saved, err := m.settings.Save(value)
	if err != nil {
		message := "Could not save settings: " + err.Error()
		var vErr *settings.ValidationError
		if errors.As(err, &vErr) {
			message = vErr.Message
		}
		if sm, ok := m.modal.(*settingsModal); ok {
			sm.setError(message)
		}
		return m, nil
	}
	m.current = saved
	m.modal = nil
	m.setFlash("Settings saved", false)
	return m, m.reloadAfterSettings()
}

func (m Model) resetSettings() (tea.Model, tea.Cmd) {
	if m.settings == nil {
		return m, nil
	}
	value, err := m.settings.Reset()
	if err != nil {
		if sm, ok := m.modal.(*settingsModal); ok {
			sm.setError("Could not reset settings: " + err.Error())
		}
		return m, nil
	}
	m.current = value
	if sm, ok := m.modal.(*settingsModal); ok {
		sm.setValues(value)
	}
	m.setFlash("Settings reset to defaults", false)
	return m, m.reloadAfterSettings()
}

// reloadAfterSettings refetches the results so they reflect the new token.
func (m *Model) reloadAfterSettings() tea.Cmd {
	if m.currentView == ViewDetail {
		return nil
	}
	if m.searching {
		return m.loadList(m.lastQuery.Category, m.lastQuery)
	}
	return m.loadList(m.snapshot.Category, catalog.SearchQuery{})
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashIsErr = isErr
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Category: m.snapshot.Category}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

// Messages

type listLoadedMsg struct {
	seq   uint64
	items []catalog.Item
	err   error
}

type detailLoadedMsg struct {
	seq  uint64
	item catalog.Item
}

type clipboardMsg struct {
	err error
}

type logsLoadedMsg struct {
	lines []string
	err   error
}

// Commands

func fetchListCmd(ctx context.Context, c catalog.Catalog, token string, seq uint64, category string, query catalog.SearchQuery) tea.Cmd {
	return func() tea.Msg {
		var (
			items []catalog.Item
			err   error
		)
		if query.Name != "" {
			items, err = c.Search(ctx, token, query)
		} else {
			items, err = c.List(ctx, token, category)
		}
		return listLoadedMsg{seq: seq, items: items, err: err}
	}
}

func fetchDetailCmd(ctx context.Context, c catalog.Catalog, token string, seq uint64, item catalog.Item) tea.Cmd {
	return func() tea.Msg {
		return detailLoadedMsg{seq: seq, item: c.Details(ctx, token, item)}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(text)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
