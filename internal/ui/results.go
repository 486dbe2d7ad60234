package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width below which the summary column is hidden.
const layoutCompactWidth = 100

type resultColumns struct {
	index, title, year, rating, summary int
}

func computeResultColumns(width int) resultColumns {
	cols := resultColumns{index: 4, year: 6, rating: 22}
	rest := width - cols.index - cols.year - cols.rating - 4 // column gaps
	if width < layoutCompactWidth {
		cols.title = max(rest, 10)
		return cols
	}
	cols.title = max(rest*2/5, 16)
	cols.summary = max(rest-cols.title, 0)
	return cols
}

func (m Model) resultsVisibleRows() int {
	// header, command bar, two borders and the column header row
	return m.height - 5
}

// renderResults renders the list of titles.
func (m Model) renderResults() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2
	title := fmt.Sprintf("%s (%d)", titleCase(m.snapshot.Category), len(m.snapshot.Items))
	if m.searching {
		title = fmt.Sprintf("Search: %s (%d)", m.lastQuery.Name, len(m.snapshot.Items))
	}

	var message string
	switch {
	case m.snapshot.ListLoading && len(m.snapshot.Items) == 0:
		message = styles.MutedText.Render("Loading titles...")
	case m.snapshot.LastError != nil:
		message = styles.DangerText.Render("Could not load titles") + "\n\n" +
			styles.MutedText.Render(m.snapshot.LastError.Error())
	case len(m.snapshot.Items) == 0:
		message = styles.MutedText.Render("No titles found")
	}
	if message != "" {
		inner := lipgloss.Place(m.width-2, contentHeight-2, lipgloss.Center, lipgloss.Center, message,
			lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.FocusBg)))
		return m.renderTitledBox(title, inner, m.width, contentHeight, true)
	}

	return m.renderTitledBox(title, m.renderResultsTable(m.width-2), m.width, contentHeight, true)
}

// renderResultsTable renders the column header and the visible window of rows.
func (m Model) renderResultsTable(width int) string {
	cols := computeResultColumns(width)
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)

	header := formatResultCells(cols, "#", "Title", "Year", "Rating", "Summary")
	lines := []string{bg.FillLine(bg.Render(header, styles.FaintText.Bold(true)), width)}

	visible := max(m.resultsVisibleRows(), 1)
	start := 0
	if m.snapshot.Selected >= visible {
		start = m.snapshot.Selected - visible + 1
	}
	end := min(start+visible, len(m.snapshot.Items))

	for i := start; i < end; i++ {
		item := m.snapshot.Items[i]
		row := formatResultCells(cols,
			fmt.Sprintf("%d", i+1),
			item.Title(),
			item.Year.String(),
			item.RatingLabel(),
			item.Summary(),
		)
		if i == m.snapshot.Selected {
			lines = append(lines, styles.Selected.Width(width).Render(row))
			continue
		}
		lines = append(lines, bg.FillLine(bg.Render(row, styles.Text), width))
	}
	return strings.Join(lines, "\n")
}

func formatResultCells(cols resultColumns, index, title, year, rating, summary string) string {
	cells := []string{
		padRight(truncate(index, cols.index), cols.index),
		padRight(truncate(title, cols.title), cols.title),
		padRight(truncate(year, cols.year), cols.year),
		padRight(truncate(rating, cols.rating), cols.rating),
	}
	if cols.summary > 0 {
		cells = append(cells, truncate(strings.Join(strings.Fields(summary), " "), cols.summary))
	}
	return strings.Join(cells, " ")
}

// titleCase capitalizes the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, word := range words {
		r := []rune(strings.ToLower(word))
		words[i] = strings.ToUpper(string(r[:1])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
