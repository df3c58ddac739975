package venue

import (
	"context"

	"venuebook/internal/domain"
)

// VenueRepository is the catalog as the venue service sees it.
type VenueRepository interface {
	Create(ctx context.Context, v *domain.Venue) error
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	ListActive(ctx context.Context) ([]domain.Venue, error)
	ListAll(ctx context.Context) ([]domain.Venue, error)
	SetBlockedDates(ctx context.Context, id int64, dates []string) (*domain.Venue, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type BookingReader interface {
	ListByVenue(ctx context.Context, venueID int64) ([]domain.Booking, error)
	BookedDates(ctx context.Context, venueID int64) ([]string, error)
}

// AvailabilityPublisher fans blocked-date changes out to live dashboards.
type AvailabilityPublisher interface {
	PublishAvailability(venueID int64, blockedDates []string)
}

type noopPublisher struct{}

func (noopPublisher) PublishAvailability(int64, []string) {}
