package domain

import (
	"slices"
	"time"
)

type Venue struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	PricePerDay float64  `json:"pricePerDay"`
	Amenities   []string `json:"amenities"`
	Image       string   `json:"image,omitempty"`
	// BlockedDates is a read-optimized projection of booked dates plus
	// administrator blocks. The bookings table stays authoritative.
	BlockedDates []string  `json:"unavailableDates"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (v *Venue) IsBlocked(date string) bool {
	return slices.Contains(v.BlockedDates, date)
}

// AvailabilityReport compares a venue's blocked dates with its bookings.
// OrphanedDates are blocked without a booking (e.g. a booking insert that lost
// a race after the date was appended); UnblockedBookings are booked dates an
// administrator removed from the blocked list.
type AvailabilityReport struct {
	VenueID           int64    `json:"venueId"`
	VenueName         string   `json:"venueName"`
	BlockedDates      []string `json:"blockedDates"`
	BookedDates       []string `json:"bookedDates"`
	OrphanedDates     []string `json:"orphanedDates"`
	UnblockedBookings []string `json:"unblockedBookings"`
}

func (r *AvailabilityReport) Consistent() bool {
	return len(r.OrphanedDates) == 0 && len(r.UnblockedBookings) == 0
}
