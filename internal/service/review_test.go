package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logirate/backend/internal/domain"
	"github.com/logirate/backend/internal/repo"
	"github.com/logirate/backend/internal/service"
)

// newReviewService wires a ReviewService with a discarded log output.
func newReviewService(rr repo.ReviewRepo, vr repo.VendorRepo, rtr repo.RouteRepo) *service.ReviewService {
	return service.NewReviewService(rr, vr, rtr, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// mockReviewRepo is a hand-written test double for repo.ReviewRepo.
type mockReviewRepo struct {
	create       func(ctx context.Context, review domain.Review) (domain.Review, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Review, error)
	listByTarget func(ctx context.Context, target domain.ReviewTarget) ([]domain.Review, error)
	update       func(ctx context.Context, review domain.Review) (domain.Review, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockReviewRepo) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	return m.create(ctx, rv)
}
func (m *mockReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	return m.getByID(ctx, id)
}
func (m *mockReviewRepo) ListByTarget(ctx context.Context, target domain.ReviewTarget) ([]domain.Review, error) {
	return m.listByTarget(ctx, target)
}
func (m *mockReviewRepo) Update(ctx context.Context, rv domain.Review) (domain.Review, error) {
	return m.update(ctx, rv)
}
func (m *mockReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockReviewRepo must satisfy repo.ReviewRepo.
var _ repo.ReviewRepo = (*mockReviewRepo)(nil)

// ---- helpers ---------------------------------------------------------------

// existingVendorRepo answers every vendor lookup positively and records
// whether the rating aggregate was recalculated.
func existingVendorRepo(recalced *[]uuid.UUID) *mockVendorRepo {
	return &mockVendorRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Vendor, error) {
			return domain.Vendor{ID: id, Name: "Alpha Movers"}, nil
		},
		recalculateRating: func(_ context.Context, id uuid.UUID) error {
			if recalced != nil {
				*recalced = append(*recalced, id)
			}
			return nil
		},
	}
}

// existingRouteRepo answers every route lookup positively.
func existingRouteRepo() *mockRouteRepo {
	return &mockRouteRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Route, error) {
			return domain.Route{ID: id}, nil
		},
	}
}

func echoReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{
		create: func(_ context.Context, rv domain.Review) (domain.Review, error) {
			rv.ID = uuid.New()
			return rv, nil
		},
		update: func(_ context.Context, rv domain.Review) (domain.Review, error) { return rv, nil },
	}
}

func ratingPtr(r int) *int        { return &r }
func commentPtr(c string) *string { return &c }

// ---- Create ----------------------------------------------------------------

func TestReviewService_Create_VendorReview(t *testing.T) {
	var recalced []uuid.UUID
	svc := newReviewService(echoReviewRepo(), existingVendorRepo(&recalced), existingRouteRepo())

	userID := uuid.New()
	target := domain.ReviewTarget{Kind: domain.TargetVendor, ID: uuid.New()}

	got, err := svc.Create(context.Background(), userID, target, 4, "solid service")

	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, target, got.Target)
	assert.Equal(t, 4, got.Rating)
	// A vendor review must refresh the vendor's rating aggregate.
	assert.Equal(t, []uuid.UUID{target.ID}, recalced)
}

func TestReviewService_Create_RouteReview_NoVendorRecalc(t *testing.T) {
	var recalced []uuid.UUID
	svc := newReviewService(echoReviewRepo(), existingVendorRepo(&recalced), existingRouteRepo())

	target := domain.ReviewTarget{Kind: domain.TargetRoute, ID: uuid.New()}

	_, err := svc.Create(context.Background(), uuid.New(), target, 5, "")

	require.NoError(t, err)
	// Route reviews do not feed the vendor aggregate.
	assert.Empty(t, recalced)
}

func TestReviewService_Create_RatingOutOfRange(t *testing.T) {
	svc := newReviewService(echoReviewRepo(), existingVendorRepo(nil), existingRouteRepo())
	target := domain.ReviewTarget{Kind: domain.TargetVendor, ID: uuid.New()}

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Create(context.Background(), uuid.New(), target, rating, "")
		assert.ErrorIs(t, err, domain.ErrValidation, "rating %d", rating)
	}
}

func TestReviewService_Create_TargetNotFound(t *testing.T) {
	vr := &mockVendorRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Vendor, error) {
			return domain.Vendor{}, domain.ErrNotFound
		},
	}
	svc := newReviewService(echoReviewRepo(), vr, existingRouteRepo())

	target := domain.ReviewTarget{Kind: domain.TargetVendor, ID: uuid.New()}
	_, err := svc.Create(context.Background(), uuid.New(), target, 3, "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewService_Create_Duplicate(t *testing.T) {
	rr := &mockReviewRepo{
		create: func(_ context.Context, _ domain.Review) (domain.Review, error) {
			return domain.Review{}, domain.ErrDuplicateReview
		},
	}
	svc := newReviewService(rr, existingVendorRepo(nil), existingRouteRepo())

	target := domain.ReviewTarget{Kind: domain.TargetVendor, ID: uuid.New()}
	_, err := svc.Create(context.Background(), uuid.New(), target, 3, "")

	assert.ErrorIs(t, err, domain.ErrDuplicateReview)
}

func TestReviewService_Create_RatingRefreshFailureStillSucceeds(t *testing.T) {
	vr := existingVendorRepo(nil)
	vr.recalculateRating = func(_ context.Context, _ uuid.UUID) error {
		return context.DeadlineExceeded
	}
	svc := newReviewService(echoReviewRepo(), vr, existingRouteRepo())

	userID := uuid.New()
	target := domain.ReviewTarget{Kind: domain.TargetVendor, ID: uuid.New()}

	got, err := svc.Create(context.Background(), userID, target, 4, "solid service")

	// The review insert committed; a failed aggregate refresh must not turn
	// that into an error response.
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
}

func TestReviewService_Delete_RatingRefreshFailureStillSucceeds(t *testing.T) {
	author := uuid.New()
	stored := storedReview(author)

	vr := existingVendorRepo(nil)
	vr.recalculateRating = func(_ context.Context, _ uuid.UUID) error {
		return context.DeadlineExceeded
	}
	rr := &mockReviewRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Review, error) { return stored, nil },
		delete:  func(_ context.Context, _ uuid.UUID) error { return nil },
	}
	svc := newReviewService(rr, vr, existingRouteRepo())

	assert.NoError(t, svc.Delete(context.Background(), stored.ID, author))
}

func TestReviewService_Create_UnknownTargetKind(t *testing.T) {
	svc := newReviewService(echoReviewRepo(), existingVendorRepo(nil), existingRouteRepo())

	target := domain.ReviewTarget{Kind: "warehouse", ID: uuid.New()}
	_, err := svc.Create(context.Background(), uuid.New(), target, 3, "")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Update ----------------------------------------------------------------

func storedReview(author uuid.UUID) domain.Review {
	return domain.Review{
		ID:      uuid.New(),
		UserID:  author,
		Target:  domain.ReviewTarget{Kind: domain.TargetVendor, ID: uuid.New()},
		Rating:  3,
		Comment: "okay",
	}
}

func TestReviewService_Update_PartialPatch(t *testing.T) {
	author := uuid.New()
	stored := storedReview(author)

	rr := echoReviewRepo()
	rr.getByID = func(_ context.Context, id uuid.UUID) (domain.Review, error) {
		require.Equal(t, stored.ID, id)
		return stored, nil
	}
	svc := newReviewService(rr, existingVendorRepo(nil), existingRouteRepo())

	got, err := svc.Update(context.Background(), stored.ID, author, domain.ReviewPatch{Rating: ratingPtr(5)})

	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
	// The unset comment field keeps its stored value.
	assert.Equal(t, "okay", got.Comment)
}

func TestReviewService_Update_EmptyPatch(t *testing.T) {
	svc := newReviewService(echoReviewRepo(), existingVendorRepo(nil), existingRouteRepo())

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), domain.ReviewPatch{})

	// An empty patch is rejected, not treated as a no-op success.
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReviewService_Update_NotAuthor(t *testing.T) {
	stored := storedReview(uuid.New())
	rr := echoReviewRepo()
	rr.getByID = func(_ context.Context, _ uuid.UUID) (domain.Review, error) { return stored, nil }
	svc := newReviewService(rr, existingVendorRepo(nil), existingRouteRepo())

	_, err := svc.Update(context.Background(), stored.ID, uuid.New(), domain.ReviewPatch{Comment: commentPtr("mine now")})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReviewService_Update_NotFound(t *testing.T) {
	rr := echoReviewRepo()
	rr.getByID = func(_ context.Context, _ uuid.UUID) (domain.Review, error) {
		return domain.Review{}, domain.ErrNotFound
	}
	svc := newReviewService(rr, existingVendorRepo(nil), existingRouteRepo())

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), domain.ReviewPatch{Rating: ratingPtr(4)})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewService_Update_RefreshesVendorRating(t *testing.T) {
	author := uuid.New()
	stored := storedReview(author)

	var recalced []uuid.UUID
	rr := echoReviewRepo()
	rr.getByID = func(_ context.Context, _ uuid.UUID) (domain.Review, error) { return stored, nil }
	svc := newReviewService(rr, existingVendorRepo(&recalced), existingRouteRepo())

	_, err := svc.Update(context.Background(), stored.ID, author, domain.ReviewPatch{Rating: ratingPtr(1)})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{stored.Target.ID}, recalced)
}

// ---- Delete ----------------------------------------------------------------

func TestReviewService_Delete_OK(t *testing.T) {
	author := uuid.New()
	stored := storedReview(author)

	var recalced []uuid.UUID
	rr := &mockReviewRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Review, error) { return stored, nil },
		delete:  func(_ context.Context, _ uuid.UUID) error { return nil },
	}
	svc := newReviewService(rr, existingVendorRepo(&recalced), existingRouteRepo())

	err := svc.Delete(context.Background(), stored.ID, author)

	require.NoError(t, err)
	// Deleting a vendor review also refreshes the aggregate.
	assert.Equal(t, []uuid.UUID{stored.Target.ID}, recalced)
}

func TestReviewService_Delete_NotAuthor(t *testing.T) {
	stored := storedReview(uuid.New())
	rr := &mockReviewRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Review, error) { return stored, nil },
	}
	svc := newReviewService(rr, existingVendorRepo(nil), existingRouteRepo())

	err := svc.Delete(context.Background(), stored.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ---- ListByTarget ----------------------------------------------------------

func TestReviewService_ListByTarget(t *testing.T) {
	target := domain.ReviewTarget{Kind: domain.TargetRoute, ID: uuid.New()}
	rr := &mockReviewRepo{
		listByTarget: func(_ context.Context, got domain.ReviewTarget) ([]domain.Review, error) {
			require.Equal(t, target, got)
			return []domain.Review{{ID: uuid.New(), Target: target, Rating: 5}}, nil
		},
	}
	svc := newReviewService(rr, existingVendorRepo(nil), existingRouteRepo())

	got, err := svc.ListByTarget(context.Background(), target)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReviewService_ListByTarget_Empty(t *testing.T) {
	rr := &mockReviewRepo{
		listByTarget: func(_ context.Context, _ domain.ReviewTarget) ([]domain.Review, error) {
			return nil, nil
		},
	}
	svc := newReviewService(rr, existingVendorRepo(nil), existingRouteRepo())

	got, err := svc.ListByTarget(context.Background(), domain.ReviewTarget{Kind: domain.TargetVendor, ID: uuid.New()})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReviewService_ListByTarget_TargetNotFound(t *testing.T) {
	rr := &mockRouteRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Route, error) {
			return domain.Route{}, domain.ErrNotFound
		},
	}
	svc := newReviewService(&mockReviewRepo{}, existingVendorRepo(nil), rr)

	_, err := svc.ListByTarget(context.Background(), domain.ReviewTarget{Kind: domain.TargetRoute, ID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
