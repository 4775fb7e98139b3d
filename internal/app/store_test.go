package app_test

import (
	"context"
	"testing"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

func batch(idList ...int64) []domain.Review {
	out := make([]domain.Review, 0, len(idList))
	for _, id := range idList {
		out = append(out, domain.Review{ID: id, Listing: "2B N1 A - 29 Shoreditch Heights"})
	}
	return out
}

func TestMemoryStore_ApprovedSubsetOfBatch(t *testing.T) {
	ctx := context.Background()
	s := app.NewMemoryStore()

	// approvals for ids not in the batch stay inert
	if err := s.Approve(ctx, []int64{1, 2, 99}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := s.SetReviews(ctx, batch(1, 2, 3)); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.ApprovedReviews(ctx)
	if err != nil {
		t.Fatalf("approved: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("approved: %v", ids(got))
	}
}

func TestMemoryStore_SetReviewsPreservesSurvivingApprovals(t *testing.T) {
	ctx := context.Background()
	s := app.NewMemoryStore()

	if err := s.SetReviews(ctx, batch(7453, 7454, 7455)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Approve(ctx, []int64{7453, 7455}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// 7453 survives the re-fetch, 7455 is gone
	if err := s.SetReviews(ctx, batch(7453, 7454, 7456)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ok, _ := s.IsApproved(ctx, 7453); !ok {
		t.Fatalf("7453 should stay approved")
	}
	if ok, _ := s.IsApproved(ctx, 7455); ok {
		t.Fatalf("7455 should be dropped")
	}
	if n, _ := s.ApprovedCount(ctx); n != 1 {
		t.Fatalf("count: %d", n)
	}

	// a dropped approval does not resurrect when the id comes back
	if err := s.SetReviews(ctx, batch(7453, 7455)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ok, _ := s.IsApproved(ctx, 7455); ok {
		t.Fatalf("7455 should not resurrect")
	}
}

func TestMemoryStore_ApproveAllAndRejectAll(t *testing.T) {
	ctx := context.Background()
	s := app.NewMemoryStore()

	if err := s.SetReviews(ctx, batch(5, 3, 9)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.ApproveAll(ctx); err != nil {
		t.Fatalf("approve all: %v", err)
	}

	got, _ := s.ApprovedReviews(ctx)
	if len(got) != 3 || got[0].ID != 5 || got[1].ID != 3 || got[2].ID != 9 {
		t.Fatalf("approved order: %v", ids(got))
	}

	if err := s.RejectAll(ctx); err != nil {
		t.Fatalf("reject all: %v", err)
	}
	got, _ = s.ApprovedReviews(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty, got %v", ids(got))
	}
}

func TestMemoryStore_ApproveIdempotentRejectNoop(t *testing.T) {
	ctx := context.Background()
	s := app.NewMemoryStore()

	if err := s.SetReviews(ctx, batch(1)); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = s.Approve(ctx, []int64{1})
	_ = s.Approve(ctx, []int64{1})
	if n, _ := s.ApprovedCount(ctx); n != 1 {
		t.Fatalf("count: %d", n)
	}

	// rejecting an unapproved id is a no-op
	_ = s.Reject(ctx, []int64{42})
	if n, _ := s.ApprovedCount(ctx); n != 1 {
		t.Fatalf("count after noop reject: %d", n)
	}

	_ = s.Reject(ctx, []int64{1})
	if n, _ := s.ApprovedCount(ctx); n != 0 {
		t.Fatalf("count after reject: %d", n)
	}
}

func TestMemoryStore_ReviewsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := app.NewMemoryStore()
	_ = s.SetReviews(ctx, batch(1, 2))

	got, _ := s.Reviews(ctx)
	got[0].ID = 999

	again, _ := s.Reviews(ctx)
	if again[0].ID != 1 {
		t.Fatalf("store state aliased by caller mutation")
	}
}
