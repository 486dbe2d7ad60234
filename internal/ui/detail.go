package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cinemaflow/internal/catalog"
	"github.com/five82/cinemaflow/internal/player"
)

// playerState tracks the translation selector and the click-to-load overlay
// for the open detail.
type playerState struct {
	tracks   []player.Track
	trackIdx int
	revealed bool
}

// reset loads the tracks of item, keeping the current selection when the
// same track is still offered.
func (p *playerState) reset(item catalog.Item) {
	prev := p.trackID()
	p.tracks = player.Tracks(item)
	p.trackIdx = 0
	for i, tr := range p.tracks {
		if prev != "" && tr.ID == prev {
			p.trackIdx = i
			break
		}
	}
}

func (p playerState) trackID() string {
	if p.trackIdx < 0 || p.trackIdx >= len(p.tracks) {
		return ""
	}
	return p.tracks[p.trackIdx].ID
}

func (p *playerState) cycle(delta int) bool {
	n := len(p.tracks)
	if n < 2 {
		return false
	}
	p.trackIdx = ((p.trackIdx+delta)%n + n) % n
	return true
}

// openDetail shows item right away and fetches its full record.
func (m Model) openDetail(item catalog.Item) (tea.Model, tea.Cmd) {
	seq := m.store.BeginDetail(item)
	m.snapshot = m.store.Snapshot()
	m.currentView = ViewDetail
	m.player = playerState{}
	m.player.reset(item)
	m.updateDetailViewport()
	m.detailViewport.GotoTop()
	if m.catalog == nil {
		return m, nil
	}
	return m, fetchDetailCmd(m.ctx, m.catalog, m.current.APIToken, seq, item)
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.store.CloseDetail()
		m.snapshot = m.store.Snapshot()
		m.currentView = ViewResults
		m.player = playerState{}
		return m, nil

	case key.Matches(msg, m.keys.PrevTrack), key.Matches(msg, m.keys.NextTrack):
		delta := 1
		if key.Matches(msg, m.keys.PrevTrack) {
			delta = -1
		}
		if m.player.cycle(delta) {
			m.updateDetailViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.Play):
		if _, err := m.resolvePlayer(true); err != nil {
			m.setFlash(playUnavailableLabel(err), true)
			return m, nil
		}
		m.player.revealed = true
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		src, err := m.resolvePlayer(true)
		if err != nil {
			m.setFlash(playUnavailableLabel(err), true)
			return m, nil
		}
		return m, copyCmd(src.URL)

	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// resolvePlayer resolves the player URL for the open detail and the selected track.
func (m Model) resolvePlayer(autoplay bool) (player.Source, error) {
	return player.Resolve(player.Request{
		Item:         m.snapshot.Detail,
		TrackID:      m.player.trackID(),
		Autoplay:     autoplay,
		PlayerDomain: m.current.PlayerDomain,
		Token:        m.current.APIToken,
	})
}

// playUnavailableLabel explains why the play action is disabled.
func playUnavailableLabel(err error) string {
	switch {
	case errors.Is(err, player.ErrPlayerNotConfigured):
		return "Player unavailable: set a player domain in settings (s)"
	case errors.Is(err, player.ErrNoPlayableSource):
		return "Player unavailable: no playable source for this title"
	default:
		return "Player unavailable: " + err.Error()
	}
}

func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	// Box is height-2 tall (header and command bar above), minus its borders.
	m.detailViewport.Width = max(m.width-4, 0)
	m.detailViewport.Height = max(m.height-4, 0)
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	if !m.snapshot.HasDetail {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent(m.snapshot.Detail, m.detailViewport.Width))
}

// renderDetail renders the detail view.
func (m Model) renderDetail() string {
	title := m.snapshot.Detail.Title()
	if m.snapshot.DetailLoading {
		title += " (loading)"
	}
	content := lipgloss.NewStyle().PaddingLeft(1).Render(m.detailViewport.View())
	return m.renderTitledBox(title, content, m.width, m.height-2, true)
}

func (m Model) renderDetailContent(item catalog.Item, width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	width = max(width, 20)

	var lines []string
	add := func(s string) { lines = append(lines, s) }
	blank := func() { add("") }

	add(bg.Render(item.Title(), styles.AccentText.Bold(true)))
	original := ""
	if item.OriginalName.Present() && item.OriginalName.String() != item.Name.String() {
		original = item.OriginalName.String()
	}
	if subtitle := joinNonEmpty(" · ", original, item.Year.String()); subtitle != "" {
		add(bg.Render(subtitle, styles.MutedText))
	}
	if rating := item.RatingLabel(); rating != "" {
		add(bg.Render(rating, styles.WarningText))
	}

	if chips := m.detailChips(item); chips != "" {
		blank()
		add(chips)
	}

	if m.snapshot.DetailLoading {
		blank()
		add(bg.Render("Loading details...", styles.FaintText))
	}

	blank()
	add(bg.Render("Description", styles.Text.Bold(true)))
	summary := item.Summary()
	if summary == "" {
		add(bg.Render("No description available yet.", styles.FaintText))
	}
	for _, line := range wrapText(summary, width) {
		add(bg.Render(line, styles.Text))
	}

	sections := []struct {
		label  string
		values catalog.FlexList
	}{
		{"Genres", item.Genre},
		{"Countries", item.Country},
		{"Actors", item.Actors},
		{"Directors", item.Directors},
		{"Producers", item.Producers},
	}
	wroteSection := false
	for _, s := range sections {
		if len(s.values) == 0 {
			continue
		}
		if !wroteSection {
			blank()
			wroteSection = true
		}
		prefix := s.label + ": "
		wrapped := wrapText(strings.Join(s.values, ", "), max(width-len(prefix), 10))
		for i, line := range wrapped {
			if i == 0 {
				add(bg.Render(prefix, styles.MutedText) + bg.Render(line, styles.Text))
				continue
			}
			add(bg.Spaces(len(prefix)) + bg.Render(line, styles.Text))
		}
	}

	if item.Poster.Present() {
		blank()
		add(bg.Render("Poster: ", styles.MutedText) + bg.Render(truncateMiddle(item.Poster.String(), width-8), styles.FaintText))
	}

	blank()
	lines = append(lines, m.renderPlayerBlock(width)...)

	return strings.Join(lines, "\n")
}

// detailChips renders the meta chips that have a value.
func (m Model) detailChips(item catalog.Item) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)
	chips := []struct {
		label string
		value catalog.Text
	}{
		{"Duration", item.Duration},
		{"Age", item.AgeRestrictions},
		{"MPAA", item.RatingMPAA},
		{"Translation", item.Translation},
		{"Quality", item.Quality},
	}
	var parts []string
	for _, c := range chips {
		if !c.value.Present() {
			continue
		}
		parts = append(parts, styles.Chip.Render(c.label+": "+c.value.String()))
	}
	return bg.Join(parts, " ")
}

// renderPlayerBlock renders the translation selector and the player overlay.
func (m Model) renderPlayerBlock(width int) []string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	lines := []string{bg.Render("Player", styles.Text.Bold(true))}

	if n := len(m.player.tracks); n > 0 {
		track := m.player.tracks[m.player.trackIdx]
		label := fmt.Sprintf("%s  %d/%d", player.TrackLabel(track), m.player.trackIdx+1, n)
		line := bg.Render("Translation: ", styles.MutedText) + bg.Render(label, styles.AccentText)
		if n > 1 {
			line += bg.Space() + bg.Render("[ ]", styles.FaintText)
		}
		lines = append(lines, line)
	}

	src, err := m.resolvePlayer(true)
	switch {
	case err != nil:
		lines = append(lines, bg.Render(playUnavailableLabel(err), styles.DangerText))
	case !m.player.revealed:
		lines = append(lines, bg.Render("Press p to load the player", styles.InfoText))
	default:
		origin := "catalogue iframe"
		if src.FromDomain {
			origin = domainHost(m.current.PlayerDomain)
		}
		lines = append(lines, bg.Render("Source: ", styles.MutedText)+bg.Render(origin, styles.Text))
		for _, part := range chunk(src.URL, width) {
			lines = append(lines, bg.Render(part, styles.SuccessText))
		}
		hint := "Press y to copy the URL. If the player does not load, check that the provider serves the iframe."
		for _, line := range wrapText(hint, width) {
			lines = append(lines, bg.Render(line, styles.FaintText))
		}
	}
	return lines
}

// chunk splits s into pieces of at most width bytes. URLs have no spaces to
// wrap on.
func chunk(s string, width int) []string {
	if width <= 0 || len(s) <= width {
		return []string{s}
	}
	var parts []string
	for len(s) > width {
		parts = append(parts, s[:width])
		s = s[width:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
