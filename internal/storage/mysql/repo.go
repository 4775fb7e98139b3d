package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"flex_reviews/internal/domain"
)

// Repo is the shared-store implementation of domain.ReviewStore for
// multi-instance deployments, where the in-memory driver's per-process
// approval set is not enough.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Migrate creates the schema. Safe to run on every startup.
func (r *Repo) Migrate(ctx context.Context) error {
	for _, stmt := range []string{createReviewsSQL, createApprovedSQL} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// SetReviews replaces the batch in one transaction and drops approvals for
// ids absent from the new batch.
func (r *Repo) SetReviews(ctx context.Context, reviews []domain.Review) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM reviews"); err != nil {
		return err
	}

	if len(reviews) == 0 {
		if _, err := tx.ExecContext(ctx, "DELETE FROM approved_reviews"); err != nil {
			return err
		}
		return tx.Commit()
	}

	values := make([]string, 0, len(reviews))
	args := make([]any, 0, len(reviews)*4)
	for i, rv := range reviews {
		payload, err := json.Marshal(rv)
		if err != nil {
			return fmt.Errorf("marshal review %d: %w", rv.ID, err)
		}
		values = append(values, "(?,?,?,?)")
		args = append(args, rv.ID, rv.PropertyID, i, string(payload))
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}

	// intersect the approval set with the incoming ids
	ids := make([]string, 0, len(reviews))
	idArgs := make([]any, 0, len(reviews))
	for _, rv := range reviews {
		ids = append(ids, "?")
		idArgs = append(idArgs, rv.ID)
	}
	del := "DELETE FROM approved_reviews WHERE id NOT IN (" + strings.Join(ids, ",") + ")"
	if _, err := tx.ExecContext(ctx, del, idArgs...); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repo) Reviews(ctx context.Context) ([]domain.Review, error) {
	return r.queryReviews(ctx, listReviewsSQL)
}

func (r *Repo) ApprovedReviews(ctx context.Context) ([]domain.Review, error) {
	return r.queryReviews(ctx, listApprovedSQL)
}

func (r *Repo) queryReviews(ctx context.Context, query string) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var rv domain.Review
		if err := json.Unmarshal(payload, &rv); err != nil {
			return nil, fmt.Errorf("unmarshal review payload: %w", err)
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) Approve(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	values := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, "(?)")
		args = append(args, id)
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO approved_reviews (id) VALUES "+strings.Join(values, ","), args...)
	return err
}

func (r *Repo) Reject(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	ph := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		ph = append(ph, "?")
		args = append(args, id)
	}
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM approved_reviews WHERE id IN ("+strings.Join(ph, ",")+")", args...)
	return err
}

func (r *Repo) ApproveAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, approveAllSQL)
	return err
}

func (r *Repo) RejectAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM approved_reviews")
	return err
}

func (r *Repo) IsApproved(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, isApprovedSQL, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repo) ApprovedCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, approvedCountSQL).Scan(&n)
	return n, err
}
