package ui

import (
	"reflect"
	"testing"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"Брат 2: продолжение", 10, "Брат 2:..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("https://player.example/embed?kp=42&translation=2", 24)
	if len([]rune(got)) != 24 {
		t.Fatalf("truncateMiddle length = %d, want 24 (%q)", len([]rune(got)), got)
	}
	if got[len(got)-13:] != "translation=2" {
		t.Fatalf("truncateMiddle = %q, want tail kept", got)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := joinNonEmpty(" · ", "1995", " ", "KP 7.9"); got != "1995 · KP 7.9" {
		t.Fatalf("joinNonEmpty = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapText = %#v, want %#v", got, want)
	}
	if wrapText("   ", 10) != nil {
		t.Fatalf("wrapText of blank should be nil")
	}
}
