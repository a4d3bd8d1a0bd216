package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/logirate/backend/internal/domain"
)

// ListVendors handles GET /vendors.
// Returns every vendor with all of its routes.
func (s *Server) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.directory.ListVendors(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "vendors fetched successfully",
		"data":    vendors,
	})
}

// FilterVendors handles GET /vendors/filter.
// Every query parameter is optional; supplying none returns all vendors
// that have at least one route.
func (s *Server) FilterVendors(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRouteFilter(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}

	vendors, err := s.directory.FilterVendors(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "vendors filtered successfully",
		"data":    vendors,
	})
}

// GetVendor handles GET /vendors/{id}.
// Returns the vendor merged with all of its routes, unfiltered.
func (s *Server) GetVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	vendor, err := s.directory.GetVendor(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "vendor not found")
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "vendor fetched successfully",
		"data":    vendor,
	})
}

// vendorRequest is the body of POST /vendors and the element type of
// POST /vendors/bulk.
type vendorRequest struct {
	Name        string              `json:"name"`
	Logo        string              `json:"logo"`
	Description string              `json:"description"`
	Services    []string            `json:"services"`
	ContactInfo *domain.ContactInfo `json:"contact_info"`
	IsVerified  bool                `json:"is_verified"`
}

// toDomain converts the request into a domain.Vendor.
func (req vendorRequest) toDomain() domain.Vendor {
	v := domain.Vendor{
		Name:        req.Name,
		Logo:        req.Logo,
		Description: req.Description,
		Services:    req.Services,
		IsVerified:  req.IsVerified,
	}
	if req.ContactInfo != nil {
		v.ContactInfo = *req.ContactInfo
	}
	return v
}

// CreateVendor handles POST /vendors (admin only).
func (s *Server) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req vendorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	vendor, err := s.vendors.Create(r.Context(), req.toDomain())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, vendor)
}

// CreateVendorsBulk handles POST /vendors/bulk (admin only).
// The batch is all-or-nothing: one invalid entry rejects the whole request.
func (s *Server) CreateVendorsBulk(w http.ResponseWriter, r *http.Request) {
	var req []vendorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	vendors := make([]domain.Vendor, len(req))
	for i, vr := range req {
		vendors[i] = vr.toDomain()
	}

	created, err := s.vendors.CreateBulk(r.Context(), vendors)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "vendors created successfully",
		"data":    created,
	})
}

// vendorPatchRequest is the body of PATCH /vendors/{id}.
// Absent fields are left unchanged.
type vendorPatchRequest struct {
	Name        *string             `json:"name"`
	Logo        *string             `json:"logo"`
	Description *string             `json:"description"`
	Services    *[]string           `json:"services"`
	ContactInfo *domain.ContactInfo `json:"contact_info"`
	IsVerified  *bool               `json:"is_verified"`
}

// UpdateVendor handles PATCH /vendors/{id} (admin only).
func (s *Server) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req vendorPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	vendor, err := s.vendors.Update(r.Context(), id, domain.VendorPatch{
		Name:        req.Name,
		Logo:        req.Logo,
		Description: req.Description,
		Services:    req.Services,
		ContactInfo: req.ContactInfo,
		IsVerified:  req.IsVerified,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "vendor not found")
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, vendor)
}

// DeleteVendor handles DELETE /vendors/{id} (admin only).
func (s *Server) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.vendors.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "vendor not found")
			return
		}
		respondError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "vendor deleted")
}

// parseRouteFilter builds a domain.RouteFilter from the /vendors/filter
// query parameters. Malformed numeric or time values are a 400, not a
// silently ignored criterion.
func parseRouteFilter(q url.Values) (domain.RouteFilter, error) {
	filter := domain.RouteFilter{
		Origin:      q.Get("from"),
		Destination: q.Get("to"),
		VehicleType: q.Get("vehicleType"),
	}

	if v := q.Get("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.RouteFilter{}, fmt.Errorf("%w: minPrice must be a number", domain.ErrValidation)
		}
		filter.MinPrice = &p
	}
	if v := q.Get("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.RouteFilter{}, fmt.Errorf("%w: maxPrice must be a number", domain.ErrValidation)
		}
		filter.MaxPrice = &p
	}
	if v := q.Get("minSeats"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.RouteFilter{}, fmt.Errorf("%w: minSeats must be an integer", domain.ErrValidation)
		}
		filter.MinSeats = &n
	}
	if v := q.Get("departureTime"); v != "" {
		t, err := domain.ParseTimeOfDay(v)
		if err != nil {
			return domain.RouteFilter{}, err
		}
		filter.DepartsAfter = &t
	}
	if v := q.Get("arrivalTime"); v != "" {
		t, err := domain.ParseTimeOfDay(v)
		if err != nil {
			return domain.RouteFilter{}, err
		}
		filter.ArrivesBefore = &t
	}

	return filter, nil
}
