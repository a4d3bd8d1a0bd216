package handler

import (
	"errors"
	"net/http"

	"github.com/logirate/backend/internal/domain"
)

// routeRequest is the body of POST /vendors/{id}/routes and the element
// type of POST /vendors/{id}/routes/bulk. Times are "HH:MM" strings and
// are validated during decoding by domain.TimeOfDay.
type routeRequest struct {
	From           string            `json:"from"`
	To             string            `json:"to"`
	DepartureTime  *domain.TimeOfDay `json:"departure_time"`
	ArrivalTime    *domain.TimeOfDay `json:"arrival_time"`
	Duration       string            `json:"duration"`
	Price          float64           `json:"price"`
	AvailableSeats int               `json:"available_seats"`
	Vehicle        domain.Vehicle    `json:"vehicle"`
}

// toDomain converts the request into a domain.Route without a vendor reference.
func (req routeRequest) toDomain() domain.Route {
	return domain.Route{
		Origin:         req.From,
		Destination:    req.To,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		Duration:       req.Duration,
		Price:          req.Price,
		AvailableSeats: req.AvailableSeats,
		Vehicle:        req.Vehicle,
	}
}

// CreateRoute handles POST /vendors/{id}/routes (admin only).
func (s *Server) CreateRoute(w http.ResponseWriter, r *http.Request) {
	vendorID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req routeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	route := req.toDomain()
	route.VendorID = vendorID

	created, err := s.routes.Create(r.Context(), route)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "vendor not found")
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// CreateRoutesBulk handles POST /vendors/{id}/routes/bulk (admin only).
func (s *Server) CreateRoutesBulk(w http.ResponseWriter, r *http.Request) {
	vendorID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req []routeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	routes := make([]domain.Route, len(req))
	for i, rr := range req {
		routes[i] = rr.toDomain()
	}

	created, err := s.routes.CreateBulk(r.Context(), vendorID, routes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "vendor not found")
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "routes created successfully",
		"data":    created,
	})
}

// routePatchRequest is the body of PATCH /routes/{id}.
// Absent fields are left unchanged.
type routePatchRequest struct {
	From           *string           `json:"from"`
	To             *string           `json:"to"`
	DepartureTime  *domain.TimeOfDay `json:"departure_time"`
	ArrivalTime    *domain.TimeOfDay `json:"arrival_time"`
	Duration       *string           `json:"duration"`
	Price          *float64          `json:"price"`
	AvailableSeats *int              `json:"available_seats"`
	Vehicle        *domain.Vehicle   `json:"vehicle"`
}

// UpdateRoute handles PATCH /routes/{id} (admin only).
func (s *Server) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req routePatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	route, err := s.routes.Update(r.Context(), id, domain.RoutePatch{
		Origin:         req.From,
		Destination:    req.To,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		Duration:       req.Duration,
		Price:          req.Price,
		AvailableSeats: req.AvailableSeats,
		Vehicle:        req.Vehicle,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "route not found")
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, route)
}

// DeleteRoute handles DELETE /routes/{id} (admin only).
func (s *Server) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.routes.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "route not found")
			return
		}
		respondError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "route deleted")
}
