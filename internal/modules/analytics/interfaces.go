package analytics

import (
	"context"

	"venuebook/internal/domain"
	"venuebook/internal/repository"
)

type BookingReader interface {
	ListFiltered(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	Count(ctx context.Context) (int64, error)
}

type VenueReader interface {
	ListAll(ctx context.Context) ([]domain.Venue, error)
	Count(ctx context.Context) (int64, error)
}
