package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/cinemaflow/internal/catalog"
)

func TestStore_ApplyListAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	seq := s.BeginList("movie")
	if snap := s.Snapshot(); !snap.ListLoading || snap.Category != "movie" {
		t.Fatalf("snapshot after BeginList = %#v, want loading movie", snap)
	}

	if !s.ApplyList(seq, []catalog.Item{{Name: "A"}, {Name: "B"}}, nil) {
		t.Fatalf("ApplyList returned false for the latest sequence")
	}

	snap := s.Snapshot()
	if snap.ListLoading {
		t.Fatalf("ListLoading = true after ApplyList")
	}
	if len(snap.Items) != 2 || snap.Items[0].Name != "A" {
		t.Fatalf("snapshot items = %#v, want 2 items", snap.Items)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Items[0].Name = "mutated"
	if got := s.Snapshot().Items[0].Name; got != "A" {
		t.Fatalf("Snapshot should clone items; got %q want A", got)
	}
}

func TestStore_StaleListIsDiscarded(t *testing.T) {
	var s Store

	first := s.BeginList("movie")
	second := s.BeginList("serial")

	if !s.ApplyList(second, []catalog.Item{{Name: "Serial"}}, nil) {
		t.Fatalf("ApplyList(second) = false, want true")
	}
	if s.ApplyList(first, []catalog.Item{{Name: "Movie"}}, nil) {
		t.Fatalf("ApplyList(first) = true, want stale response discarded")
	}

	snap := s.Snapshot()
	if snap.Category != "serial" || len(snap.Items) != 1 || snap.Items[0].Name != "Serial" {
		t.Fatalf("snapshot = %#v, want serial list", snap)
	}
}

func TestStore_ListErrorClearsItems(t *testing.T) {
	var s Store

	s.ApplyList(s.BeginList("movie"), []catalog.Item{{Name: "A"}}, nil)

	origErr := errors.New("boom")
	s.ApplyList(s.BeginList("movie"), nil, origErr)

	snap := s.Snapshot()
	if len(snap.Items) != 0 {
		t.Fatalf("items = %#v, want cleared on error", snap.Items)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	s.ApplyList(s.BeginList("movie"), nil, errors.New("one"))
	if s.Snapshot().IsOffline() {
		t.Fatalf("IsOffline after one failure, want false")
	}
	s.ApplyList(s.BeginList("movie"), nil, errors.New("two"))
	if !s.Snapshot().IsOffline() {
		t.Fatalf("IsOffline after two failures, want true")
	}
	s.ApplyList(s.BeginList("movie"), []catalog.Item{{Name: "A"}}, nil)
	if snap := s.Snapshot(); snap.IsOffline() || snap.ConsecutiveFailures != 0 {
		t.Fatalf("failures = %d after success, want 0", snap.ConsecutiveFailures)
	}
}

func TestStore_DetailSequence(t *testing.T) {
	var s Store

	summary := catalog.Item{KinopoiskID: "1", Name: "Summary"}
	first := s.BeginDetail(summary)
	second := s.BeginDetail(catalog.Item{KinopoiskID: "2", Name: "Other"})

	if s.ApplyDetail(first, catalog.Item{KinopoiskID: "1", Name: "Late"}) {
		t.Fatalf("ApplyDetail(first) = true, want stale response discarded")
	}
	if !s.ApplyDetail(second, catalog.Item{KinopoiskID: "2", Name: "Full"}) {
		t.Fatalf("ApplyDetail(second) = false, want true")
	}
	snap := s.Snapshot()
	if !snap.HasDetail || snap.DetailLoading || snap.Detail.Name != "Full" {
		t.Fatalf("detail = %#v loading=%v, want Full", snap.Detail, snap.DetailLoading)
	}

	third := s.BeginDetail(summary)
	s.CloseDetail()
	if s.ApplyDetail(third, catalog.Item{Name: "After close"}) {
		t.Fatalf("ApplyDetail after CloseDetail = true, want false")
	}
	if s.Snapshot().HasDetail {
		t.Fatalf("HasDetail = true after CloseDetail")
	}
}

func TestStore_SelectClamps(t *testing.T) {
	var s Store

	s.Select(3)
	if got := s.Snapshot().Selected; got != 0 {
		t.Fatalf("Selected on empty list = %d, want 0", got)
	}

	s.ApplyList(s.BeginList("movie"), []catalog.Item{{Name: "A"}, {Name: "B"}}, nil)
	s.Select(5)
	snap := s.Snapshot()
	if snap.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", snap.Selected)
	}
	if item, ok := snap.SelectedItem(); !ok || item.Name != "B" {
		t.Fatalf("SelectedItem = %#v, %v, want B", item, ok)
	}
	s.Select(-2)
	if got := s.Snapshot().Selected; got != 0 {
		t.Fatalf("Selected = %d, want 0", got)
	}
}
