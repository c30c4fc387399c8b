// Package listing backs the candidate list and detail pages.
package listing

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go-candidate-admin/internal/domain"
	"go-candidate-admin/internal/notify"
)

const (
	MsgDeleted    = "Candidate deleted successfully!"
	ConfirmPrompt = "Are you sure you want to delete this candidate?"
)

// FilterByName keeps the records whose name contains query, ignoring case.
// An empty query keeps everything.
func FilterByName(records []domain.CandidateRecord, query string) []domain.CandidateRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	var out []domain.CandidateRecord
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}
	return out
}

// ListState is the state of one candidate list view: the fetched records,
// the search query and the notification currently on screen. Searching
// never goes back to the API.
type ListState struct {
	candidates domain.CandidateUsecase
	toaster    notify.Toaster

	mu           sync.Mutex
	records      []domain.CandidateRecord
	query        string
	notification string
	stopToast    func()
}

func NewListState(uc domain.CandidateUsecase, toaster notify.Toaster) *ListState {
	return &ListState{candidates: uc, toaster: toaster}
}

// Load replaces the records with a fresh fetch.
func (s *ListState) Load(ctx context.Context) error {
	records, err := s.candidates.List(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

func (s *ListState) Search(query string) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
}

func (s *ListState) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Visible returns the records matching the current query.
func (s *ListState) Visible() []domain.CandidateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(FilterByName(s.records, s.query))
}

// Delete removes a candidate after confirm approves it. It reports whether
// the API was called. On success the record is dropped locally without a
// re-fetch and a notification is shown.
func (s *ListState) Delete(ctx context.Context, id int64, confirm func() bool) (bool, error) {
	if confirm == nil || !confirm() {
		return false, nil
	}
	if err := s.candidates.Delete(ctx, id); err != nil {
		return true, err
	}

	s.mu.Lock()
	s.records = slices.DeleteFunc(s.records, func(r domain.CandidateRecord) bool {
		return r.CandidateID == id
	})
	s.mu.Unlock()

	s.Notify(MsgDeleted)
	return true, nil
}

// Notify shows msg until the toaster dismisses it. A newer message replaces
// the one on screen.
func (s *ListState) Notify(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopToast != nil {
		s.stopToast()
	}
	s.notification = msg
	s.stopToast = s.toaster.Show(msg, func(shown string) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.notification == shown {
			s.notification = ""
			s.stopToast = nil
		}
	})
}

func (s *ListState) Notification() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notification
}

// Close cancels a pending dismissal.
func (s *ListState) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopToast != nil {
		s.stopToast()
		s.stopToast = nil
	}
}
