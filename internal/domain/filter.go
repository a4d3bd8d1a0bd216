package domain

import "strings"

// RouteFilter is a conjunction of optional criteria over a Route.
// A nil pointer (or empty string) means the criterion is not supplied and
// imposes no constraint; an empty filter therefore matches every route.
//
// City matching is case-insensitive exact equality: "lagos" matches
// "Lagos" but not "Lagos-Iyana Ipaja". Substring matching over free-text
// city names produces false positives on compound names, so partial names
// simply do not match.
//
// DepartsAfter is an inclusive lower bound on the departure time
// ("departing at or after") and ArrivesBefore an inclusive upper bound on
// the arrival time ("arriving at or before"). A route with no published
// time fails any time criterion — an unknown schedule cannot be shown to
// satisfy a schedule constraint.
type RouteFilter struct {
	Origin        string
	Destination   string
	MinPrice      *float64
	MaxPrice      *float64
	MinSeats      *int
	VehicleType   string
	DepartsAfter  *TimeOfDay
	ArrivesBefore *TimeOfDay
}

// Matches reports whether the route satisfies every supplied criterion.
func (f RouteFilter) Matches(r Route) bool {
	if f.Origin != "" && !strings.EqualFold(f.Origin, r.Origin) {
		return false
	}
	if f.Destination != "" && !strings.EqualFold(f.Destination, r.Destination) {
		return false
	}
	if f.MinPrice != nil && r.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && r.Price > *f.MaxPrice {
		return false
	}
	if f.MinSeats != nil && r.AvailableSeats < *f.MinSeats {
		return false
	}
	if f.VehicleType != "" && !strings.EqualFold(f.VehicleType, r.Vehicle.Type) {
		return false
	}
	if f.DepartsAfter != nil && (r.DepartureTime == nil || *r.DepartureTime < *f.DepartsAfter) {
		return false
	}
	if f.ArrivesBefore != nil && (r.ArrivalTime == nil || *r.ArrivalTime > *f.ArrivesBefore) {
		return false
	}
	return true
}

// IsZero reports whether no criterion is supplied.
func (f RouteFilter) IsZero() bool {
	return f == (RouteFilter{})
}
