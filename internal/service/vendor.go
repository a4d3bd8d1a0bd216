package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/logirate/backend/internal/domain"
	"github.com/logirate/backend/internal/repo"
)

// VendorService implements the admin-only write operations on vendors.
// Authorization (role=admin) is enforced by middleware before any of these
// methods run; the service assumes a privileged caller.
type VendorService struct {
	vendors repo.VendorRepo
}

// NewVendorService constructs a VendorService backed by the provided VendorRepo.
func NewVendorService(vendors repo.VendorRepo) *VendorService {
	return &VendorService{vendors: vendors}
}

// Create validates and persists a new vendor.
func (s *VendorService) Create(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error) {
	if err := validateVendor(vendor); err != nil {
		return domain.Vendor{}, err
	}
	result, err := s.vendors.Create(ctx, vendor)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("service.VendorService.Create: %w", err)
	}
	return result, nil
}

// CreateBulk validates and persists several vendors. Validation runs over
// the whole batch before any insert so a bad entry never causes a partial
// write from this layer.
func (s *VendorService) CreateBulk(ctx context.Context, vendors []domain.Vendor) ([]domain.Vendor, error) {
	if len(vendors) == 0 {
		return nil, fmt.Errorf("%w: at least one vendor is required", domain.ErrValidation)
	}
	for i, v := range vendors {
		if err := validateVendor(v); err != nil {
			return nil, fmt.Errorf("vendor %d: %w", i, err)
		}
	}
	result, err := s.vendors.CreateBulk(ctx, vendors)
	if err != nil {
		return nil, fmt.Errorf("service.VendorService.CreateBulk: %w", err)
	}
	return result, nil
}

// Update applies a partial patch to an existing vendor and returns the
// updated record. Unset patch fields keep their stored values.
// Returns domain.ErrNotFound if the vendor does not exist.
func (s *VendorService) Update(ctx context.Context, id uuid.UUID, patch domain.VendorPatch) (domain.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("service.VendorService.Update: %w", err)
	}

	if patch.Name != nil {
		vendor.Name = *patch.Name
	}
	if patch.Logo != nil {
		vendor.Logo = *patch.Logo
	}
	if patch.Description != nil {
		vendor.Description = *patch.Description
	}
	if patch.Services != nil {
		vendor.Services = *patch.Services
	}
	if patch.ContactInfo != nil {
		vendor.ContactInfo = *patch.ContactInfo
	}
	if patch.IsVerified != nil {
		vendor.IsVerified = *patch.IsVerified
	}

	if err := validateVendor(vendor); err != nil {
		return domain.Vendor{}, err
	}

	result, err := s.vendors.Update(ctx, vendor)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("service.VendorService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a vendor and, through the schema's cascade, all its routes.
// Returns domain.ErrNotFound if the vendor does not exist.
func (s *VendorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.vendors.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.VendorService.Delete: %w", err)
	}
	return nil
}

// validateVendor enforces the rules common to create and update.
func validateVendor(v domain.Vendor) error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return nil
}
