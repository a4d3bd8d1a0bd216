package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/logirate/backend/internal/domain"
)

// ReviewRepo defines the persistence operations for Reviews of both target
// kinds. One table holds vendor and route reviews, discriminated by
// target_kind, so the single-review-per-user rule is one unique index.
type ReviewRepo interface {
	// Create inserts a new review and returns the persisted record.
	// Returns domain.ErrDuplicateReview if the user already reviewed this
	// target. The check is the table's unique index, not a prior read, so
	// two concurrent creates can never both succeed.
	Create(ctx context.Context, review domain.Review) (domain.Review, error)

	// GetByID retrieves a single review by its UUID primary key.
	// Returns domain.ErrNotFound if no review with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error)

	// ListByTarget returns all reviews for one vendor or route, newest first.
	ListByTarget(ctx context.Context, target domain.ReviewTarget) ([]domain.Review, error)

	// Update overwrites rating and comment of an existing review and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, review domain.Review) (domain.Review, error)

	// Delete removes a review by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgReviewRepo is the Postgres implementation of ReviewRepo.
type pgReviewRepo struct {
	db db
}

// NewReviewRepo constructs a ReviewRepo backed by the provided db connection.
func NewReviewRepo(db db) ReviewRepo {
	return &pgReviewRepo{db: db}
}

const reviewColumns = `id, user_id, target_kind, target_id, rating, comment, created_at, updated_at`

// Create inserts a new review row and returns the full persisted record.
func (r *pgReviewRepo) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	const q = `
		INSERT INTO reviews (user_id, target_kind, target_id, rating, comment)
		VALUES (@user_id, @target_kind, @target_id, @rating, @comment)
		RETURNING ` + reviewColumns

	args := pgx.NamedArgs{
		"user_id":     review.UserID,
		"target_kind": string(review.Target.Kind),
		"target_id":   review.Target.ID,
		"rating":      review.Rating,
		"comment":     review.Comment,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanReview(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Create: %w", domain.ErrDuplicateReview)
		}
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a review by primary key.
func (r *pgReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanReview(row)
	if err != nil {
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTarget returns all reviews for the given target, newest first.
func (r *pgReviewRepo) ListByTarget(ctx context.Context, target domain.ReviewTarget) ([]domain.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews
		WHERE target_kind = @target_kind AND target_id = @target_id
		ORDER BY created_at DESC, id`

	args := pgx.NamedArgs{
		"target_kind": string(target.Kind),
		"target_id":   target.ID,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.ListByTarget: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ReviewRepo.ListByTarget: scan: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.ListByTarget: rows: %w", err)
	}

	return reviews, nil
}

// Update overwrites rating and comment and returns the updated record.
// Author and target are immutable once written.
func (r *pgReviewRepo) Update(ctx context.Context, review domain.Review) (domain.Review, error) {
	const q = `
		UPDATE reviews
		SET rating     = @rating,
		    comment    = @comment,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + reviewColumns

	args := pgx.NamedArgs{
		"id":      review.ID,
		"rating":  review.Rating,
		"comment": review.Comment,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanReview(row)
	if err != nil {
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a review by primary key.
func (r *pgReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM reviews WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ReviewRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ReviewRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanReview maps a single database row into a domain.Review.
func scanReview(s scanner) (domain.Review, error) {
	var (
		rv       domain.Review
		id       pgtype.UUID
		userID   pgtype.UUID
		targetID pgtype.UUID
		kind     string
	)

	err := s.Scan(&id, &userID, &kind, &targetID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Review{}, domain.ErrNotFound
		}
		return domain.Review{}, err
	}

	rv.ID = uuid.UUID(id.Bytes)
	rv.UserID = uuid.UUID(userID.Bytes)
	rv.Target = domain.ReviewTarget{Kind: domain.TargetKind(kind), ID: uuid.UUID(targetID.Bytes)}
	return rv, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
