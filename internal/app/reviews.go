package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"flex_reviews/internal/domain"
)

const (
	SourceUpstream = "upstream"
	SourceFallback = "fallback"
)

// FetchResult is the wire shape of GET /reviews.
type FetchResult struct {
	Reviews []domain.Review `json:"reviews"`
	Source  string          `json:"source"`
	Count   int             `json:"count"`
}

// ReviewService fetches reviews from the configured source with a deadline,
// degrades to the bundled fixtures on any failure, and pushes whichever
// batch wins into the store. It never returns an error: the presentation
// layer has no error path for this call, so the source tag is the only
// signal about what happened.
type ReviewService struct {
	source   domain.ReviewSource
	store    domain.ReviewStore
	resolver *Resolver
	timeout  time.Duration
	sf       singleflight.Group
}

func NewReviewService(src domain.ReviewSource, store domain.ReviewStore, res *Resolver, timeout time.Duration) *ReviewService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ReviewService{source: src, store: store, resolver: res, timeout: timeout}
}

// FetchReviews runs one fetch-normalize-store cycle. Concurrent callers
// share a single upstream call.
func (s *ReviewService) FetchReviews(ctx context.Context) FetchResult {
	v, _, _ := s.sf.Do("reviews", func() (any, error) {
		return s.fetch(ctx), nil
	})
	return v.(FetchResult)
}

func (s *ReviewService) fetch(ctx context.Context) FetchResult {
	reviews, source := s.load(ctx)
	if err := s.store.SetReviews(ctx, reviews); err != nil {
		log.Error().Err(err).Msg("store reviews failed")
	}
	return FetchResult{Reviews: reviews, Source: source, Count: len(reviews)}
}

func (s *ReviewService) load(ctx context.Context) ([]domain.Review, string) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.source.GetReviews(cctx)
	if err != nil || len(raw) == 0 {
		log.Warn().Err(err).Msg("upstream reviews unavailable, serving fixtures")
		return NormalizeBatch(s.resolver.Resolve, FixtureReviews(), true), SourceFallback
	}
	return NormalizeBatch(s.resolver.Resolve, raw, false), SourceUpstream
}

// ApprovedForProperty returns the approved reviews attached to one
// property, in batch order.
func (s *ReviewService) ApprovedForProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	approved, err := s.store.ApprovedReviews(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(approved))
	for _, rv := range approved {
		if rv.PropertyID == propertyID {
			out = append(out, rv)
		}
	}
	return out, nil
}
