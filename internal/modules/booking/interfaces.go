package booking

import (
	"context"

	"venuebook/internal/domain"
)

// BookingRepository is the ledger. Create must fail with an error wrapping
// repository.ErrDuplicate when (venue, date) is taken.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	AppendBlockedDate(ctx context.Context, id int64, date string) (*domain.Venue, error)
	GetSummaries(ctx context.Context, ids []int64) (map[int64]domain.VenueSummary, error)
}

type AvailabilityPublisher interface {
	PublishAvailability(venueID int64, blockedDates []string)
}

type noopPublisher struct{}

func (noopPublisher) PublishAvailability(int64, []string) {}
