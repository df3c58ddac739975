package venue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"venuebook/internal/domain"
	"venuebook/internal/metrics"
	"venuebook/internal/pkg/validator"
	"venuebook/internal/repository"

	"github.com/sirupsen/logrus"
)

type Service struct {
	venues    VenueRepository
	bookings  BookingReader
	publisher AvailabilityPublisher
	log       *logrus.Logger
}

func NewService(venues VenueRepository, bookings BookingReader, publisher AvailabilityPublisher, log *logrus.Logger) *Service {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &Service{
		venues:    venues,
		bookings:  bookings,
		publisher: publisher,
		log:       log,
	}
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Venue, error) {
	return s.venues.ListActive(ctx)
}

func (s *Service) Create(ctx context.Context, req CreateVenueRequest) (*domain.Venue, error) {
	v := &domain.Venue{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		Capacity:    req.Capacity,
		Amenities:   req.Amenities,
		Image:       strings.TrimSpace(req.Image),
	}
	if req.PricePerDay != nil {
		v.PricePerDay = *req.PricePerDay
	}
	if v.Name == "" || v.Description == "" || v.Location == "" {
		return nil, ErrValidation
	}
	if v.Amenities == nil {
		v.Amenities = []string{}
	}

	if err := s.venues.Create(ctx, v); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrVenueNameTaken
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"venue_id": v.ID, "slug": v.Slug}).Info("venue created")
	return v, nil
}

// activeVenue loads a venue that callers outside the admin report may see.
func (s *Service) activeVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if !v.IsActive {
		return nil, ErrVenueNotFound
	}
	return v, nil
}

func (s *Service) GetBlockedDates(ctx context.Context, id int64) ([]string, error) {
	v, err := s.activeVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.BlockedDates == nil {
		return []string{}, nil
	}
	return v.BlockedDates, nil
}

// SetBlockedDates overwrites the venue's blocked list. Bookings are not
// consulted, so removing a booked date makes it bookable again in the UI
// while the ledger still rejects a second booking.
func (s *Service) SetBlockedDates(ctx context.Context, id int64, dates []string) (*domain.Venue, error) {
	for _, d := range dates {
		if !validator.IsISODate(d) {
			return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, d)
		}
	}
	if dates == nil {
		dates = []string{}
	}

	if _, err := s.activeVenue(ctx, id); err != nil {
		return nil, err
	}

	v, err := s.venues.SetBlockedDates(ctx, id, dates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	metrics.RecordBlockedDateWrite("admin")
	s.publisher.PublishAvailability(v.ID, v.BlockedDates)
	s.log.WithFields(logrus.Fields{"venue_id": v.ID, "blocked": len(v.BlockedDates)}).Info("blocked dates replaced")
	return v, nil
}

// Deactivate hides the venue from listings and booking. Rows are never removed.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if err := s.venues.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVenueNotFound
		}
		return err
	}
	s.log.WithField("venue_id", id).Info("venue deactivated")
	return nil
}

func (s *Service) ListBookings(ctx context.Context, venueID int64) ([]domain.Booking, error) {
	return s.bookings.ListByVenue(ctx, venueID)
}

// AvailabilityReport compares the blocked list with the ledger. Inactive
// venues are included.
func (s *Service) AvailabilityReport(ctx context.Context, id int64) (*domain.AvailabilityReport, error) {
	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return s.report(ctx, v)
}

// AvailabilityReports runs the report for every venue.
func (s *Service) AvailabilityReports(ctx context.Context) ([]domain.AvailabilityReport, error) {
	venues, err := s.venues.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AvailabilityReport, 0, len(venues))
	for i := range venues {
		r, err := s.report(ctx, &venues[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *Service) report(ctx context.Context, v *domain.Venue) (*domain.AvailabilityReport, error) {
	booked, err := s.bookings.BookedDates(ctx, v.ID)
	if err != nil {
		return nil, err
	}

	blocked := v.BlockedDates
	if blocked == nil {
		blocked = []string{}
	}

	return &domain.AvailabilityReport{
		VenueID:           v.ID,
		VenueName:         v.Name,
		BlockedDates:      blocked,
		BookedDates:       booked,
		OrphanedDates:     difference(blocked, booked),
		UnblockedBookings: difference(booked, blocked),
	}, nil
}

// difference returns the sorted, de-duplicated elements of a missing from b.
func difference(a, b []string) []string {
	out := []string{}
	for _, x := range a {
		if !slices.Contains(b, x) && !slices.Contains(out, x) {
			out = append(out, x)
		}
	}
	slices.Sort(out)
	return out
}
