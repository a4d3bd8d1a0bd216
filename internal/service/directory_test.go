package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logirate/backend/internal/domain"
	"github.com/logirate/backend/internal/repo"
	"github.com/logirate/backend/internal/service"
)

// mockVendorRepo is a hand-written test double for repo.VendorRepo.
// Each method is a function field — set only the ones your test needs.
type mockVendorRepo struct {
	create            func(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error)
	createBulk        func(ctx context.Context, vendors []domain.Vendor) ([]domain.Vendor, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Vendor, error)
	list              func(ctx context.Context) ([]domain.Vendor, error)
	update            func(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error)
	delete            func(ctx context.Context, id uuid.UUID) error
	recalculateRating func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVendorRepo) Create(ctx context.Context, v domain.Vendor) (domain.Vendor, error) {
	return m.create(ctx, v)
}
func (m *mockVendorRepo) CreateBulk(ctx context.Context, vs []domain.Vendor) ([]domain.Vendor, error) {
	return m.createBulk(ctx, vs)
}
func (m *mockVendorRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vendor, error) {
	return m.getByID(ctx, id)
}
func (m *mockVendorRepo) List(ctx context.Context) ([]domain.Vendor, error) {
	return m.list(ctx)
}
func (m *mockVendorRepo) Update(ctx context.Context, v domain.Vendor) (domain.Vendor, error) {
	return m.update(ctx, v)
}
func (m *mockVendorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockVendorRepo) RecalculateRating(ctx context.Context, id uuid.UUID) error {
	return m.recalculateRating(ctx, id)
}

// compile-time check: mockVendorRepo must satisfy repo.VendorRepo.
var _ repo.VendorRepo = (*mockVendorRepo)(nil)

// mockRouteRepo is a hand-written test double for repo.RouteRepo.
type mockRouteRepo struct {
	create         func(ctx context.Context, route domain.Route) (domain.Route, error)
	createBulk     func(ctx context.Context, routes []domain.Route) ([]domain.Route, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Route, error)
	list           func(ctx context.Context) ([]domain.Route, error)
	listByVendorID func(ctx context.Context, vendorID uuid.UUID) ([]domain.Route, error)
	update         func(ctx context.Context, route domain.Route) (domain.Route, error)
	delete         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRouteRepo) Create(ctx context.Context, rt domain.Route) (domain.Route, error) {
	return m.create(ctx, rt)
}
func (m *mockRouteRepo) CreateBulk(ctx context.Context, rts []domain.Route) ([]domain.Route, error) {
	return m.createBulk(ctx, rts)
}
func (m *mockRouteRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Route, error) {
	return m.getByID(ctx, id)
}
func (m *mockRouteRepo) List(ctx context.Context) ([]domain.Route, error) {
	return m.list(ctx)
}
func (m *mockRouteRepo) ListByVendorID(ctx context.Context, vendorID uuid.UUID) ([]domain.Route, error) {
	return m.listByVendorID(ctx, vendorID)
}
func (m *mockRouteRepo) Update(ctx context.Context, rt domain.Route) (domain.Route, error) {
	return m.update(ctx, rt)
}
func (m *mockRouteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockRouteRepo must satisfy repo.RouteRepo.
var _ repo.RouteRepo = (*mockRouteRepo)(nil)

// ---- fixtures --------------------------------------------------------------

func timeOf(t *testing.T, s string) *domain.TimeOfDay {
	t.Helper()
	tod, err := domain.ParseTimeOfDay(s)
	require.NoError(t, err)
	return &tod
}

// directoryFixture builds two vendors: "Alpha Movers" with a Lagos→Abuja
// route and a Lagos→Ibadan route, "Beta Lines" with a single Kano→Abuja route.
func directoryFixture(t *testing.T) ([]domain.Vendor, []domain.Route) {
	t.Helper()
	alpha := domain.Vendor{ID: uuid.New(), Name: "Alpha Movers"}
	beta := domain.Vendor{ID: uuid.New(), Name: "Beta Lines"}

	routes := []domain.Route{
		{
			ID: uuid.New(), VendorID: alpha.ID,
			Origin: "Lagos", Destination: "Abuja",
			DepartureTime: timeOf(t, "08:00"), ArrivalTime: timeOf(t, "14:30"),
			Price: 22000, AvailableSeats: 12,
			Vehicle: domain.Vehicle{Type: "Bus"},
		},
		{
			ID: uuid.New(), VendorID: alpha.ID,
			Origin: "Lagos", Destination: "Ibadan",
			Price: 5000, AvailableSeats: 4,
			Vehicle: domain.Vehicle{Type: "Sienna"},
		},
		{
			ID: uuid.New(), VendorID: beta.ID,
			Origin: "Kano", Destination: "Abuja",
			Price: 15000, AvailableSeats: 30,
			Vehicle: domain.Vehicle{Type: "Coaster"},
		},
	}
	return []domain.Vendor{alpha, beta}, routes
}

func directoryService(vendors []domain.Vendor, routes []domain.Route) *service.DirectoryService {
	vr := &mockVendorRepo{
		list: func(_ context.Context) ([]domain.Vendor, error) { return vendors, nil },
	}
	rr := &mockRouteRepo{
		list: func(_ context.Context) ([]domain.Route, error) { return routes, nil },
	}
	return service.NewDirectoryService(vr, rr)
}

// ---- ListVendors -----------------------------------------------------------

func TestDirectoryService_ListVendors(t *testing.T) {
	vendors, routes := directoryFixture(t)
	svc := directoryService(vendors, routes)

	got, err := svc.ListVendors(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha Movers", got[0].Name)
	assert.Len(t, got[0].Routes, 2)
	assert.Equal(t, "Beta Lines", got[1].Name)
	assert.Len(t, got[1].Routes, 1)
}

func TestDirectoryService_ListVendors_VendorWithoutRoutes(t *testing.T) {
	vendors, routes := directoryFixture(t)
	vendors = append(vendors, domain.Vendor{ID: uuid.New(), Name: "Zeta Cargo"})
	svc := directoryService(vendors, routes)

	got, err := svc.ListVendors(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 3)
	// Routes must be an empty slice, not nil, so it serializes as [].
	assert.NotNil(t, got[2].Routes)
	assert.Empty(t, got[2].Routes)
}

// ---- FilterVendors ---------------------------------------------------------

func TestDirectoryService_FilterVendors_MatchingRoutesOnly(t *testing.T) {
	vendors, routes := directoryFixture(t)
	svc := directoryService(vendors, routes)

	maxPrice := 25000.0
	got, err := svc.FilterVendors(context.Background(), domain.RouteFilter{
		Destination: "Abuja",
		MaxPrice:    &maxPrice,
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	// Alpha's Ibadan route must be stripped; only the matching route survives.
	require.Len(t, got[0].Routes, 1)
	assert.Equal(t, "Abuja", got[0].Routes[0].Destination)
	require.Len(t, got[1].Routes, 1)
}

func TestDirectoryService_FilterVendors_ExcludesVendorsWithNoMatch(t *testing.T) {
	vendors, routes := directoryFixture(t)
	svc := directoryService(vendors, routes)

	// Only Beta's Coaster route has 30 seats.
	minSeats := 20
	got, err := svc.FilterVendors(context.Background(), domain.RouteFilter{MinSeats: &minSeats})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Beta Lines", got[0].Name)
}

func TestDirectoryService_FilterVendors_NoMatches(t *testing.T) {
	vendors, routes := directoryFixture(t)
	svc := directoryService(vendors, routes)

	got, err := svc.FilterVendors(context.Background(), domain.RouteFilter{Destination: "Kaduna"})

	require.NoError(t, err)
	// Empty result, not an error, and never a vendor with an empty routes array.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDirectoryService_FilterVendors_EmptyFilterKeepsRoutedVendors(t *testing.T) {
	vendors, routes := directoryFixture(t)
	vendors = append(vendors, domain.Vendor{ID: uuid.New(), Name: "Zeta Cargo"}) // no routes
	svc := directoryService(vendors, routes)

	got, err := svc.FilterVendors(context.Background(), domain.RouteFilter{})

	require.NoError(t, err)
	// The routeless vendor is excluded even by an empty filter.
	require.Len(t, got, 2)
}

func TestDirectoryService_FilterVendors_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	vr := &mockVendorRepo{
		list: func(_ context.Context) ([]domain.Vendor, error) { return nil, repoErr },
	}
	svc := service.NewDirectoryService(vr, &mockRouteRepo{})

	_, err := svc.FilterVendors(context.Background(), domain.RouteFilter{})

	// A lookup failure must surface as an error, never as "no matches".
	assert.ErrorIs(t, err, repoErr)
}

// ---- GetVendor -------------------------------------------------------------

func TestDirectoryService_GetVendor(t *testing.T) {
	vendors, routes := directoryFixture(t)
	alpha := vendors[0]

	vr := &mockVendorRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Vendor, error) {
			require.Equal(t, alpha.ID, id)
			return alpha, nil
		},
	}
	rr := &mockRouteRepo{
		listByVendorID: func(_ context.Context, vendorID uuid.UUID) ([]domain.Route, error) {
			return routes[:2], nil
		},
	}
	svc := service.NewDirectoryService(vr, rr)

	got, err := svc.GetVendor(context.Background(), alpha.ID)

	require.NoError(t, err)
	assert.Equal(t, alpha.ID, got.ID)
	// All routes are attached, unfiltered.
	assert.Len(t, got.Routes, 2)
}

func TestDirectoryService_GetVendor_NotFound(t *testing.T) {
	vr := &mockVendorRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Vendor, error) {
			return domain.Vendor{}, domain.ErrNotFound
		},
	}
	svc := service.NewDirectoryService(vr, &mockRouteRepo{})

	_, err := svc.GetVendor(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDirectoryService_GetVendor_NoRoutes(t *testing.T) {
	vr := &mockVendorRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Vendor, error) {
			return domain.Vendor{ID: id, Name: "Solo"}, nil
		},
	}
	rr := &mockRouteRepo{
		listByVendorID: func(_ context.Context, _ uuid.UUID) ([]domain.Route, error) {
			return nil, nil
		},
	}
	svc := service.NewDirectoryService(vr, rr)

	got, err := svc.GetVendor(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got.Routes)
	assert.Empty(t, got.Routes)
}
