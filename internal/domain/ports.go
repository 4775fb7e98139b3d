package domain

import "context"

// ReviewStore owns the currently loaded review batch and the approval set.
// One instance per process for the in-memory driver; the MySQL driver
// shares state across instances behind the same operations.
type ReviewStore interface {
	// SetReviews replaces the batch wholesale. Approvals for ids present in
	// both the old and new batches survive; the rest are dropped.
	SetReviews(ctx context.Context, reviews []Review) error
	Reviews(ctx context.Context) ([]Review, error)

	Approve(ctx context.Context, ids []int64) error
	Reject(ctx context.Context, ids []int64) error
	ApproveAll(ctx context.Context) error
	RejectAll(ctx context.Context) error

	// ApprovedReviews returns the approved subset in batch order.
	ApprovedReviews(ctx context.Context) ([]Review, error)
	IsApproved(ctx context.Context, id int64) (bool, error)
	ApprovedCount(ctx context.Context) (int, error)
}

// ReviewSource supplies raw, pre-normalization review records.
type ReviewSource interface {
	GetReviews(ctx context.Context) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
