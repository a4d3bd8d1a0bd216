// Package handler implements the HTTP handlers for the LogiRate API.
// All handlers are methods on Server and are split into resource-specific
// files (auth.go, vendor.go, route.go, review.go) sharing the same struct
// so they can access its dependencies.
package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/logirate/backend/internal/domain"
)

// AuthServicer defines the account operations the auth handlers depend on.
// Defining interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject mocks without touching the database or service layer.
type AuthServicer interface {
	Register(ctx context.Context, firstName, surname, email, address, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Profile(ctx context.Context, userID uuid.UUID) (domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// DirectoryServicer defines the vendor directory read operations.
type DirectoryServicer interface {
	ListVendors(ctx context.Context) ([]domain.VendorWithRoutes, error)
	FilterVendors(ctx context.Context, filter domain.RouteFilter) ([]domain.VendorWithRoutes, error)
	GetVendor(ctx context.Context, id uuid.UUID) (domain.VendorWithRoutes, error)
}

// VendorServicer defines the admin-only vendor write operations.
type VendorServicer interface {
	Create(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error)
	CreateBulk(ctx context.Context, vendors []domain.Vendor) ([]domain.Vendor, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.VendorPatch) (domain.Vendor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RouteServicer defines the admin-only route write operations.
type RouteServicer interface {
	Create(ctx context.Context, route domain.Route) (domain.Route, error)
	CreateBulk(ctx context.Context, vendorID uuid.UUID, routes []domain.Route) ([]domain.Route, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.RoutePatch) (domain.Route, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewServicer defines the review operations for both target kinds.
type ReviewServicer interface {
	Create(ctx context.Context, userID uuid.UUID, target domain.ReviewTarget, rating int, comment string) (domain.Review, error)
	Update(ctx context.Context, reviewID, userID uuid.UUID, patch domain.ReviewPatch) (domain.Review, error)
	Delete(ctx context.Context, reviewID, userID uuid.UUID) error
	ListByTarget(ctx context.Context, target domain.ReviewTarget) ([]domain.Review, error)
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in resource-specific files but all operate on this struct.
type Server struct {
	auth      AuthServicer
	directory DirectoryServicer
	vendors   VendorServicer
	routes    RouteServicer
	reviews   ReviewServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(auth AuthServicer, directory DirectoryServicer, vendors VendorServicer, routes RouteServicer, reviews ReviewServicer) *Server {
	return &Server{
		auth:      auth,
		directory: directory,
		vendors:   vendors,
		routes:    routes,
		reviews:   reviews,
	}
}
