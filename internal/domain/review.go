package domain

import (
	"time"

	"github.com/google/uuid"
)

// TargetKind identifies what a review is attached to.
// The same review rules (one review per user per target, owner-only
// mutation, rating 1..5) apply to both kinds, so the review service and
// repo are parameterized by this tag instead of being duplicated.
type TargetKind string

const (
	// TargetVendor marks a review of a vendor as a whole.
	TargetVendor TargetKind = "vendor"
	// TargetRoute marks a review of a single route.
	TargetRoute TargetKind = "route"
)

// ReviewTarget names the entity a review is (to be) attached to.
type ReviewTarget struct {
	Kind TargetKind `json:"kind"`
	ID   uuid.UUID  `json:"id"`
}

// Review is a user's rating and comment on a vendor or a route.
type Review struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	Target    ReviewTarget `json:"target"`
	Rating    int          `json:"rating"` // 1..5
	Comment   string       `json:"comment,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ReviewPatch carries a partial review update. Nil fields are left
// unchanged. A patch with both fields nil is invalid — the service rejects
// it with ErrValidation rather than performing a silent no-op write.
type ReviewPatch struct {
	Rating  *int
	Comment *string
}

// IsEmpty reports whether the patch would change nothing.
func (p ReviewPatch) IsEmpty() bool {
	return p.Rating == nil && p.Comment == nil
}
