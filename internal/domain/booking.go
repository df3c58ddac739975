package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every lifecycle status in order.
var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

// RevenueStatuses returns the statuses for which IsRevenue holds, for use in
// aggregate filters.
func RevenueStatuses() []BookingStatus {
	out := make([]BookingStatus, 0, len(BookingStatuses))
	for _, s := range BookingStatuses {
		if s.IsRevenue() {
			out = append(out, s)
		}
	}
	return out
}

// IsRevenue reports whether the booking counts toward revenue figures.
func (s BookingStatus) IsRevenue() bool {
	return s == BookingConfirmed || s == BookingCompleted
}

func (s BookingStatus) Valid() bool {
	return slices.Contains(BookingStatuses, s)
}

// CanTransitionTo describes the lifecycle. Only the confirmed-on-create path is
// reachable through the API today.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	}
	return false
}

type Booking struct {
	ID           int64         `json:"id"`
	VenueID      int64         `json:"venueId"`
	UserID       int64         `json:"userId"`
	VenueName    string        `json:"venueName"`
	CustomerName string        `json:"customerName"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Date         string        `json:"date"`
	EventType    string        `json:"eventType"`
	TotalAmount  float64       `json:"totalAmount"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`

	Venue *VenueSummary `json:"venue,omitempty"`
}

// VenueSummary is attached to booking listings.
type VenueSummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	PricePerDay float64 `json:"pricePerDay"`
}

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// NormalizeDate keeps the calendar part of a YYYY-MM-DD string or an ISO
// timestamp and checks that it is a real date.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return s, nil
}
