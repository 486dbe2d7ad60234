package ui

import (
	"strings"
	"testing"
)

func TestComputeResultColumnsCompactHidesSummary(t *testing.T) {
	cols := computeResultColumns(80)
	if cols.summary != 0 {
		t.Fatalf("summary width = %d, want 0 below %d columns", cols.summary, layoutCompactWidth)
	}
	if cols.title < 10 {
		t.Fatalf("title width = %d, want at least 10", cols.title)
	}
}

func TestComputeResultColumnsWide(t *testing.T) {
	cols := computeResultColumns(160)
	if cols.summary == 0 {
		t.Fatalf("summary column hidden at 160 columns")
	}
	total := cols.index + cols.title + cols.year + cols.rating + cols.summary + 4
	if total != 160 {
		t.Fatalf("columns sum to %d, want 160", total)
	}
}

func TestFormatResultCells(t *testing.T) {
	cols := resultColumns{index: 4, title: 8, year: 6, rating: 10, summary: 12}
	row := formatResultCells(cols, "1", "A very long title", "1997", "KP 8.3", "Two\nlines   of text")

	if !strings.HasPrefix(row, "1    ") {
		t.Fatalf("row = %q, want padded index", row)
	}
	if strings.Contains(row, "\n") {
		t.Fatalf("row = %q, want summary whitespace collapsed", row)
	}
	if !strings.Contains(row, "A ver...") {
		t.Fatalf("row = %q, want truncated title", row)
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("tv_series"); got != "Tv Series" {
		t.Fatalf("titleCase = %q, want %q", got, "Tv Series")
	}
}
