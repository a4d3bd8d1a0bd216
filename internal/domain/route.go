package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle describes the vehicle serving a route.
type Vehicle struct {
	Layout   string   `json:"layout,omitempty"` // e.g. "2x2"
	Type     string   `json:"type,omitempty"`   // e.g. "Bus", "Coaster"
	Features []string `json:"features,omitempty"`
	Seats    int      `json:"seats,omitempty"`
}

// Route represents a single origin→destination service offered by a vendor.
// DepartureTime and ArrivalTime are times of day, not timestamps — a route
// is a recurring offering, not a scheduled instance. Either may be nil when
// the vendor has not published a schedule.
type Route struct {
	ID             uuid.UUID  `json:"id"`
	VendorID       uuid.UUID  `json:"vendor_id"`
	Origin         string     `json:"from"`
	Destination    string     `json:"to"`
	DepartureTime  *TimeOfDay `json:"departure_time,omitempty"`
	ArrivalTime    *TimeOfDay `json:"arrival_time,omitempty"`
	Duration       string     `json:"duration,omitempty"` // free text, e.g. "6h 30m"
	Price          float64    `json:"price"`
	AvailableSeats int        `json:"available_seats"`
	Vehicle        Vehicle    `json:"vehicle"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RoutePatch carries a partial route update. Nil fields are left unchanged.
type RoutePatch struct {
	Origin         *string
	Destination    *string
	DepartureTime  *TimeOfDay
	ArrivalTime    *TimeOfDay
	Duration       *string
	Price          *float64
	AvailableSeats *int
	Vehicle        *Vehicle
}
