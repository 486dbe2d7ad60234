package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/cinemaflow/internal/catalog"
)

// Snapshot represents the view state the UI renders from.
type Snapshot struct {
	Category    string
	Items       []catalog.Item
	Selected    int
	ListLoading bool
	LastError   error
	LastUpdated time.Time

	Detail        catalog.Item
	HasDetail     bool
	DetailLoading bool

	ConsecutiveFailures int // list requests failed in a row
}

// IsOffline returns true when the API has failed repeatedly.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// SelectedItem returns the highlighted item, if any.
func (s Snapshot) SelectedItem() (catalog.Item, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Items) {
		return catalog.Item{}, false
	}
	return s.Items[s.Selected], true
}

// Store holds the view state. Each view has its own request sequence: a
// response is applied only if no newer request for that view has begun.
type Store struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	listSeq   uint64
	detailSeq uint64
}

// BeginList records a new list request for category and returns its sequence.
func (s *Store) BeginList(category string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listSeq++
	s.snapshot.Category = category
	s.snapshot.ListLoading = true
	return s.listSeq
}

// ApplyList stores the result of list request seq. It returns false and
// changes nothing when seq is stale. A failed request clears the list.
func (s *Store) ApplyList(seq uint64, items []catalog.Item, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.listSeq {
		return false
	}
	s.snapshot.ListLoading = false
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.Selected = 0

	if err != nil {
		s.snapshot.Items = nil
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return true
	}

	s.snapshot.Items = cloneItems(items)
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// BeginDetail records a new detail request for the summary item and returns
// its sequence. The summary is shown until the detail arrives.
func (s *Store) BeginDetail(summary catalog.Item) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detailSeq++
	s.snapshot.Detail = summary
	s.snapshot.HasDetail = true
	s.snapshot.DetailLoading = true
	return s.detailSeq
}

// ApplyDetail stores the result of detail request seq, unless it is stale or
// the detail view has been closed since.
func (s *Store) ApplyDetail(seq uint64, item catalog.Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.detailSeq || !s.snapshot.HasDetail {
		return false
	}
	s.snapshot.Detail = item
	s.snapshot.DetailLoading = false
	return true
}

// CloseDetail leaves the detail view. Responses still in flight are dropped.
func (s *Store) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detailSeq++
	s.snapshot.Detail = catalog.Item{}
	s.snapshot.HasDetail = false
	s.snapshot.DetailLoading = false
}

// Select moves the highlight, clamped to the current list.
func (s *Store) Select(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch n := len(s.snapshot.Items); {
	case n == 0:
		index = 0
	case index < 0:
		index = 0
	case index >= n:
		index = n - 1
	}
	s.snapshot.Selected = index
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems(items []catalog.Item) []catalog.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]catalog.Item, len(items))
	copy(dup, items)
	return dup
}
