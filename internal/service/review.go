package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/logirate/backend/internal/domain"
	"github.com/logirate/backend/internal/repo"
)

// ReviewService implements the review rules shared by vendor reviews and
// route reviews: target must exist, one review per user per target,
// rating 1..5, and only the author may mutate or delete.
//
// Every operation is parameterized by domain.ReviewTarget rather than
// being duplicated per target kind; the kind only decides which repo is
// asked whether the target exists.
type ReviewService struct {
	reviews repo.ReviewRepo
	vendors repo.VendorRepo
	routes  repo.RouteRepo
	log     *slog.Logger
}

// NewReviewService constructs a ReviewService backed by the provided repos.
// log receives rating-refresh failures; nil falls back to slog.Default.
func NewReviewService(reviews repo.ReviewRepo, vendors repo.VendorRepo, routes repo.RouteRepo, log *slog.Logger) *ReviewService {
	if log == nil {
		log = slog.Default()
	}
	return &ReviewService{reviews: reviews, vendors: vendors, routes: routes, log: log}
}

// Create validates the rating, verifies the target exists, and inserts.
// Returns domain.ErrNotFound if the target vendor/route does not exist and
// domain.ErrDuplicateReview if this user already reviewed this target.
//
// The duplicate guarantee comes from the reviews table's unique index, not
// from a read-then-write check, so it holds under concurrent creates.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, target domain.ReviewTarget, rating int, comment string) (domain.Review, error) {
	if err := validateRating(rating); err != nil {
		return domain.Review{}, err
	}
	if err := s.targetExists(ctx, target); err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}

	review := domain.Review{
		UserID:  userID,
		Target:  target,
		Rating:  rating,
		Comment: comment,
	}
	result, err := s.reviews.Create(ctx, review)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}

	s.refreshVendorRating(ctx, target)
	return result, nil
}

// Update applies a partial patch to an existing review.
// Returns domain.ErrValidation if the patch sets no fields, domain.ErrNotFound
// if the review does not exist, and domain.ErrForbidden if userID is not the
// review's author. Unset patch fields keep their stored values.
func (s *ReviewService) Update(ctx context.Context, reviewID, userID uuid.UUID, patch domain.ReviewPatch) (domain.Review, error) {
	if patch.IsEmpty() {
		return domain.Review{}, fmt.Errorf("%w: at least one of rating or comment is required", domain.ErrValidation)
	}
	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return domain.Review{}, err
		}
	}

	review, err := s.authorizedReview(ctx, reviewID, userID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Update: %w", err)
	}

	if patch.Rating != nil {
		review.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		review.Comment = *patch.Comment
	}

	result, err := s.reviews.Update(ctx, review)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Update: %w", err)
	}

	s.refreshVendorRating(ctx, review.Target)
	return result, nil
}

// Delete removes a review permanently.
// Same existence and ownership checks as Update.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID uuid.UUID) error {
	review, err := s.authorizedReview(ctx, reviewID, userID)
	if err != nil {
		return fmt.Errorf("service.ReviewService.Delete: %w", err)
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("service.ReviewService.Delete: %w", err)
	}

	s.refreshVendorRating(ctx, review.Target)
	return nil
}

// ListByTarget returns all reviews for a vendor or route, newest first.
// Returns domain.ErrNotFound if the target itself does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ReviewService) ListByTarget(ctx context.Context, target domain.ReviewTarget) ([]domain.Review, error) {
	if err := s.targetExists(ctx, target); err != nil {
		return nil, fmt.Errorf("service.ReviewService.ListByTarget: %w", err)
	}

	reviews, err := s.reviews.ListByTarget(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("service.ReviewService.ListByTarget: %w", err)
	}
	if reviews == nil {
		return []domain.Review{}, nil
	}
	return reviews, nil
}

// authorizedReview loads a review and checks the caller is its author.
func (s *ReviewService) authorizedReview(ctx context.Context, reviewID, userID uuid.UUID) (domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	if review.UserID != userID {
		return domain.Review{}, domain.ErrForbidden
	}
	return review, nil
}

// targetExists verifies the review target resolves to a stored entity.
func (s *ReviewService) targetExists(ctx context.Context, target domain.ReviewTarget) error {
	switch target.Kind {
	case domain.TargetVendor:
		_, err := s.vendors.GetByID(ctx, target.ID)
		return err
	case domain.TargetRoute:
		_, err := s.routes.GetByID(ctx, target.ID)
		return err
	default:
		return fmt.Errorf("%w: unknown review target kind %q", domain.ErrValidation, target.Kind)
	}
}

// refreshVendorRating recomputes the vendor aggregate after a vendor-review
// mutation. Route reviews do not feed the vendor aggregate.
//
// The review write is already committed when this runs, so a refresh failure
// is logged rather than surfaced: the next vendor-review mutation repairs
// the aggregate, and the client must not be told a committed write failed.
func (s *ReviewService) refreshVendorRating(ctx context.Context, target domain.ReviewTarget) {
	if target.Kind != domain.TargetVendor {
		return
	}
	if err := s.vendors.RecalculateRating(ctx, target.ID); err != nil {
		s.log.WarnContext(ctx, "vendor rating refresh failed", "vendor_id", target.ID, "error", err)
	}
}

// validateRating enforces the 1..5 rating range.
func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	return nil
}
