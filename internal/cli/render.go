package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/cinemaflow/internal/catalog"
	"github.com/five82/cinemaflow/internal/player"
)

var (
	purple = lipgloss.Color("99")

	headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func printItems(w io.Writer, items []catalog.Item) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "No titles found.")
		return
	}

	t := newTable("#", "Title", "Year", "Rating", "ID")
	for i, item := range items {
		id := ""
		if param, value, ok := item.Identity(); ok && param != catalog.ParamName {
			id = param + ":" + value
		}
		t.Row(fmt.Sprintf("%d", i+1), truncateString(item.Title(), 48), item.Year.String(), item.RatingLabel(), id)
	}
	_, _ = fmt.Fprintln(w, t)
}

func printTracks(w io.Writer, tracks []player.Track) {
	if len(tracks) == 0 {
		_, _ = fmt.Fprintln(w, "No translation tracks.")
		return
	}
	t := newTable("ID", "Translation", "Quality")
	for _, tr := range tracks {
		name := tr.Name
		if strings.TrimSpace(name) == "" {
			name = player.TrackLabel(tr)
		}
		t.Row(tr.ID, truncateString(name, 40), tr.Quality)
	}
	_, _ = fmt.Fprintln(w, t)
}

func printDetail(w io.Writer, item catalog.Item) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(item.Title()))
	b.WriteString("\n")

	original := ""
	if item.OriginalName.String() != item.Name.String() {
		original = item.OriginalName.String()
	}
	if sub := joinNonEmpty(" · ", original, item.Year.String(), item.RatingLabel()); sub != "" {
		b.WriteString(sub)
		b.WriteString("\n")
	}

	fields := []struct {
		label string
		value string
	}{
		{"Duration", item.Duration.String()},
		{"Age", item.AgeRestrictions.String()},
		{"MPAA", item.RatingMPAA.String()},
		{"Translation", item.Translation.String()},
		{"Quality", item.Quality.String()},
		{"Genres", strings.Join(item.Genre, ", ")},
		{"Countries", strings.Join(item.Country, ", ")},
		{"Actors", strings.Join(item.Actors, ", ")},
		{"Directors", strings.Join(item.Directors, ", ")},
		{"Producers", strings.Join(item.Producers, ", ")},
		{"Poster", item.Poster.String()},
	}
	b.WriteString("\n")
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", f.label)))
		b.WriteString(f.value)
		b.WriteString("\n")
	}

	if summary := item.Summary(); summary != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(80).Render(summary))
		b.WriteString("\n")
	}
	_, _ = fmt.Fprint(w, b.String())
}

func truncateString(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
