package handler

import (
	"errors"
	"net/http"

	"github.com/logirate/backend/internal/domain"
	"github.com/logirate/backend/internal/middleware"
)

// reviewRequest is the body of POST /vendors/{id}/reviews and
// POST /routes/{id}/reviews.
type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateVendorReview handles POST /vendors/{id}/reviews.
func (s *Server) CreateVendorReview(w http.ResponseWriter, r *http.Request) {
	s.createReview(w, r, domain.TargetVendor, "vendor not found")
}

// CreateRouteReview handles POST /routes/{id}/reviews.
func (s *Server) CreateRouteReview(w http.ResponseWriter, r *http.Request) {
	s.createReview(w, r, domain.TargetRoute, "route not found")
}

// createReview is the shared implementation for both review targets.
// The authenticated user from the token claims is the review author.
func (s *Server) createReview(w http.ResponseWriter, r *http.Request, kind domain.TargetKind, notFoundMsg string) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, domain.ErrUnauthorized)
		return
	}

	targetID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	target := domain.ReviewTarget{Kind: kind, ID: targetID}
	review, err := s.reviews.Create(r.Context(), claims.UserID, target, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, notFoundMsg)
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// ListVendorReviews handles GET /vendors/{id}/reviews.
func (s *Server) ListVendorReviews(w http.ResponseWriter, r *http.Request) {
	s.listReviews(w, r, domain.TargetVendor, "vendor not found")
}

// ListRouteReviews handles GET /routes/{id}/reviews.
func (s *Server) ListRouteReviews(w http.ResponseWriter, r *http.Request) {
	s.listReviews(w, r, domain.TargetRoute, "route not found")
}

// listReviews is the shared implementation for both review targets.
func (s *Server) listReviews(w http.ResponseWriter, r *http.Request, kind domain.TargetKind, notFoundMsg string) {
	targetID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	reviews, err := s.reviews.ListByTarget(r.Context(), domain.ReviewTarget{Kind: kind, ID: targetID})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, notFoundMsg)
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// reviewPatchRequest is the body of PATCH /reviews/{id}.
// At least one field must be present.
type reviewPatchRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// UpdateReview handles PATCH /reviews/{id} (author only).
func (s *Server) UpdateReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, domain.ErrUnauthorized)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req reviewPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	review, err := s.reviews.Update(r.Context(), id, claims.UserID, domain.ReviewPatch{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "review not found")
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /reviews/{id} (author only).
func (s *Server) DeleteReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, domain.ErrUnauthorized)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.reviews.Delete(r.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "review not found")
			return
		}
		respondError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "review deleted successfully")
}
