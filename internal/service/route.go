package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/logirate/backend/internal/domain"
	"github.com/logirate/backend/internal/repo"
)

// RouteService implements the admin-only write operations on routes.
// Creating a route requires the owning vendor to exist; the vendor reference
// is immutable afterwards.
type RouteService struct {
	vendors repo.VendorRepo
	routes  repo.RouteRepo
}

// NewRouteService constructs a RouteService backed by the provided repos.
func NewRouteService(vendors repo.VendorRepo, routes repo.RouteRepo) *RouteService {
	return &RouteService{vendors: vendors, routes: routes}
}

// Create validates the route, verifies the owning vendor exists, then persists.
// Returns domain.ErrNotFound if the vendor does not exist.
func (s *RouteService) Create(ctx context.Context, route domain.Route) (domain.Route, error) {
	if _, err := s.vendors.GetByID(ctx, route.VendorID); err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.Create: %w", err)
	}
	if err := validateRoute(route); err != nil {
		return domain.Route{}, err
	}
	result, err := s.routes.Create(ctx, route)
	if err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.Create: %w", err)
	}
	return result, nil
}

// CreateBulk validates and persists several routes for one vendor.
// All routes are forced onto vendorID regardless of what the entries carry.
func (s *RouteService) CreateBulk(ctx context.Context, vendorID uuid.UUID, routes []domain.Route) ([]domain.Route, error) {
	if len(routes) == 0 {
		return nil, fmt.Errorf("%w: at least one route is required", domain.ErrValidation)
	}
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, fmt.Errorf("service.RouteService.CreateBulk: %w", err)
	}
	for i := range routes {
		routes[i].VendorID = vendorID
		if err := validateRoute(routes[i]); err != nil {
			return nil, fmt.Errorf("route %d: %w", i, err)
		}
	}
	result, err := s.routes.CreateBulk(ctx, routes)
	if err != nil {
		return nil, fmt.Errorf("service.RouteService.CreateBulk: %w", err)
	}
	return result, nil
}

// Update applies a partial patch to an existing route and returns the
// updated record. Returns domain.ErrNotFound if the route does not exist.
func (s *RouteService) Update(ctx context.Context, id uuid.UUID, patch domain.RoutePatch) (domain.Route, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.Update: %w", err)
	}

	if patch.Origin != nil {
		route.Origin = *patch.Origin
	}
	if patch.Destination != nil {
		route.Destination = *patch.Destination
	}
	if patch.DepartureTime != nil {
		route.DepartureTime = patch.DepartureTime
	}
	if patch.ArrivalTime != nil {
		route.ArrivalTime = patch.ArrivalTime
	}
	if patch.Duration != nil {
		route.Duration = *patch.Duration
	}
	if patch.Price != nil {
		route.Price = *patch.Price
	}
	if patch.AvailableSeats != nil {
		route.AvailableSeats = *patch.AvailableSeats
	}
	if patch.Vehicle != nil {
		route.Vehicle = *patch.Vehicle
	}

	if err := validateRoute(route); err != nil {
		return domain.Route{}, err
	}

	result, err := s.routes.Update(ctx, route)
	if err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a route by ID.
// Returns domain.ErrNotFound if the route does not exist.
func (s *RouteService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.routes.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.RouteService.Delete: %w", err)
	}
	return nil
}

// validateRoute enforces the rules common to create and update.
func validateRoute(rt domain.Route) error {
	var errs []error
	if strings.TrimSpace(rt.Origin) == "" {
		errs = append(errs, fmt.Errorf("%w: origin is required", domain.ErrValidation))
	}
	if strings.TrimSpace(rt.Destination) == "" {
		errs = append(errs, fmt.Errorf("%w: destination is required", domain.ErrValidation))
	}
	if rt.Price < 0 {
		errs = append(errs, fmt.Errorf("%w: price must not be negative", domain.ErrValidation))
	}
	if rt.AvailableSeats < 0 {
		errs = append(errs, fmt.Errorf("%w: available seats must not be negative", domain.ErrValidation))
	}
	return errors.Join(errs...)
}
