package app

import (
	"context"
	"sync"

	"flex_reviews/internal/domain"
)

// MemoryStore is the default domain.ReviewStore: the loaded batch plus the
// approval set, guarded by one mutex since handlers run concurrently.
// State lives for the process lifetime only; each instance of the service
// holds an independent copy.
type MemoryStore struct {
	mu       sync.Mutex
	reviews  []domain.Review
	approved map[int64]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{approved: make(map[int64]struct{})}
}

// SetReviews replaces the batch wholesale and intersects the approval set
// with the incoming ids, so re-fetching never silently un-approves reviews
// that are still present.
func (s *MemoryStore) SetReviews(_ context.Context, reviews []domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reviews = make([]domain.Review, len(reviews))
	copy(s.reviews, reviews)

	kept := make(map[int64]struct{}, len(s.approved))
	for _, rv := range s.reviews {
		if _, ok := s.approved[rv.ID]; ok {
			kept[rv.ID] = struct{}{}
		}
	}
	s.approved = kept
	return nil
}

func (s *MemoryStore) Reviews(_ context.Context) ([]domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Review, len(s.reviews))
	copy(out, s.reviews)
	return out, nil
}

// Approve adds each id, idempotently. Ids with no matching review are kept
// and stay inert until a matching review appears (or the next SetReviews
// drops them).
func (s *MemoryStore) Approve(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.approved[id] = struct{}{}
	}
	return nil
}

func (s *MemoryStore) Reject(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.approved, id)
	}
	return nil
}

func (s *MemoryStore) ApproveAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.approved = make(map[int64]struct{}, len(s.reviews))
	for _, rv := range s.reviews {
		s.approved[rv.ID] = struct{}{}
	}
	return nil
}

func (s *MemoryStore) RejectAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.approved = make(map[int64]struct{})
	return nil
}

func (s *MemoryStore) ApprovedReviews(_ context.Context) ([]domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Review, 0, len(s.approved))
	for _, rv := range s.reviews {
		if _, ok := s.approved[rv.ID]; ok {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (s *MemoryStore) IsApproved(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.approved[id]
	return ok, nil
}

func (s *MemoryStore) ApprovedCount(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.approved), nil
}
