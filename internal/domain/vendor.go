// Package domain contains the core data types for the LogiRate API.
// This package has zero external dependencies beyond uuid and is imported
// by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContactInfo groups the public contact fields of a vendor.
type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	Address string `json:"address,omitempty"`
}

// Vendor represents a logistics vendor in the directory.
// A vendor owns zero or more Routes; routes hold a back-reference to their
// vendor rather than being embedded here.
//
// Rating and RatingCount are aggregates maintained by the review service
// whenever a vendor review is created, updated, or deleted. They are never
// written directly by API clients.
type Vendor struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Logo        string      `json:"logo,omitempty"` // URL to the vendor logo
	Description string      `json:"description,omitempty"`
	Services    []string    `json:"services,omitempty"` // e.g. ["Same Day", "Interstate"]
	ContactInfo ContactInfo `json:"contact_info"`
	Rating      float64     `json:"rating"`
	RatingCount int         `json:"rating_count"`
	IsVerified  bool        `json:"is_verified"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// VendorWithRoutes is a vendor's public fields merged with a set of its
// routes. The directory listing and single-vendor lookup attach all routes;
// the filtered search attaches only the routes that matched.
type VendorWithRoutes struct {
	Vendor
	Routes []Route `json:"routes"`
}

// VendorPatch carries a partial vendor update. Nil fields are left unchanged.
type VendorPatch struct {
	Name        *string
	Logo        *string
	Description *string
	Services    *[]string
	ContactInfo *ContactInfo
	IsVerified  *bool
}
