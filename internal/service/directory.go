// Package service contains the business logic for the LogiRate API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/logirate/backend/internal/domain"
	"github.com/logirate/backend/internal/repo"
)

// DirectoryService implements the read side of the vendor directory:
// the full listing, the single-vendor lookup, and the filtered search
// that joins vendors to their matching routes.
type DirectoryService struct {
	vendors repo.VendorRepo
	routes  repo.RouteRepo
}

// NewDirectoryService constructs a DirectoryService backed by the provided repos.
func NewDirectoryService(vendors repo.VendorRepo, routes repo.RouteRepo) *DirectoryService {
	return &DirectoryService{vendors: vendors, routes: routes}
}

// ListVendors returns every vendor with all of its routes, ordered by name.
// Vendors without routes are included with an empty (non-nil) routes slice.
func (s *DirectoryService) ListVendors(ctx context.Context) ([]domain.VendorWithRoutes, error) {
	vendors, byVendor, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DirectoryService.ListVendors: %w", err)
	}

	result := make([]domain.VendorWithRoutes, 0, len(vendors))
	for _, v := range vendors {
		routes := byVendor[v.ID]
		if routes == nil {
			routes = []domain.Route{}
		}
		result = append(result, domain.VendorWithRoutes{Vendor: v, Routes: routes})
	}
	return result, nil
}

// FilterVendors returns the vendors that have at least one route satisfying
// every supplied criterion, each carrying only its matching routes. Vendors
// with zero matching routes are excluded entirely, never returned with an
// empty routes array. An empty filter keeps every vendor that has any route.
//
// A repo failure propagates as an error so the caller can distinguish
// "no matches" from "lookup failed".
func (s *DirectoryService) FilterVendors(ctx context.Context, filter domain.RouteFilter) ([]domain.VendorWithRoutes, error) {
	vendors, byVendor, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DirectoryService.FilterVendors: %w", err)
	}

	result := make([]domain.VendorWithRoutes, 0, len(vendors))
	for _, v := range vendors {
		var matching []domain.Route
		for _, rt := range byVendor[v.ID] {
			if filter.Matches(rt) {
				matching = append(matching, rt)
			}
		}
		if len(matching) == 0 {
			continue
		}
		result = append(result, domain.VendorWithRoutes{Vendor: v, Routes: matching})
	}
	return result, nil
}

// GetVendor returns one vendor merged with all of its routes, unfiltered.
// This is a distinct operation from FilterVendors and shares no predicate
// logic. Returns domain.ErrNotFound if the vendor does not exist.
func (s *DirectoryService) GetVendor(ctx context.Context, id uuid.UUID) (domain.VendorWithRoutes, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return domain.VendorWithRoutes{}, fmt.Errorf("service.DirectoryService.GetVendor: %w", err)
	}

	routes, err := s.routes.ListByVendorID(ctx, id)
	if err != nil {
		return domain.VendorWithRoutes{}, fmt.Errorf("service.DirectoryService.GetVendor: %w", err)
	}
	if routes == nil {
		routes = []domain.Route{}
	}

	return domain.VendorWithRoutes{Vendor: vendor, Routes: routes}, nil
}

// load fetches all vendors (sorted by name) and all routes grouped by vendor.
func (s *DirectoryService) load(ctx context.Context) ([]domain.Vendor, map[uuid.UUID][]domain.Route, error) {
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	routes, err := s.routes.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	byVendor := make(map[uuid.UUID][]domain.Route, len(vendors))
	for _, rt := range routes {
		byVendor[rt.VendorID] = append(byVendor[rt.VendorID], rt)
	}

	// The repo already orders by name; re-sorting here keeps the contract
	// independent of the backing query.
	sort.SliceStable(vendors, func(i, j int) bool { return vendors[i].Name < vendors[j].Name })

	return vendors, byVendor, nil
}
