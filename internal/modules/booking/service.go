package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"venuebook/internal/domain"
	"venuebook/internal/metrics"
	"venuebook/internal/repository"

	"github.com/sirupsen/logrus"
)

type Service struct {
	bookings  BookingRepository
	venues    VenueRepository
	publisher AvailabilityPublisher
	log       *logrus.Logger
}

func NewService(bookings BookingRepository, venues VenueRepository, publisher AvailabilityPublisher, log *logrus.Logger) *Service {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &Service{
		bookings:  bookings,
		venues:    venues,
		publisher: publisher,
		log:       log,
	}
}

// CreateBooking books a venue for one calendar day.
//
// The date is appended to the venue's blocked list before the booking row is
// inserted, and that append is committed on its own. The unique index on
// (venue_id, date) decides concurrent attempts: the loser gets
// ErrBookingConflict and its append stays behind as an orphaned block.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	date, err := domain.NormalizeDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if req.TotalAmount == nil || *req.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: totalAmount must be non-negative", ErrValidation)
	}
	customerName := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.Phone)
	eventType := strings.TrimSpace(req.EventType)
	if customerName == "" || phone == "" || eventType == "" {
		return nil, fmt.Errorf("%w: customerName, phone and eventType must not be blank", ErrValidation)
	}

	entry := s.log.WithFields(logrus.Fields{
		"venue_id": req.VenueID,
		"date":     date,
		"user_id":  userID,
	})

	venue, err := s.venues.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVenueNotFound
		}
		metrics.RecordBooking(metrics.OutcomeError)
		return nil, err
	}
	if !venue.IsActive {
		return nil, ErrVenueNotFound
	}

	if venue.IsBlocked(date) {
		metrics.RecordBooking(metrics.OutcomeDateUnavailable)
		entry.Info("booking rejected: date blocked")
		return nil, ErrDateUnavailable
	}

	updated, err := s.venues.AppendBlockedDate(ctx, venue.ID, date)
	if err != nil {
		metrics.RecordBooking(metrics.OutcomeError)
		return nil, fmt.Errorf("block date: %w", err)
	}
	metrics.RecordBlockedDateWrite("booking")

	b := &domain.Booking{
		VenueID:      venue.ID,
		UserID:       userID,
		VenueName:    venue.Name,
		CustomerName: customerName,
		Email:        strings.TrimSpace(req.Email),
		Phone:        phone,
		Date:         date,
		EventType:    eventType,
		TotalAmount:  *req.TotalAmount,
		Status:       domain.BookingConfirmed,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.RecordBooking(metrics.OutcomeDuplicate)
			entry.Warn("booking rejected: ledger already holds this date")
			return nil, ErrBookingConflict
		}
		metrics.RecordBooking(metrics.OutcomeError)
		return nil, err
	}

	metrics.RecordBooking(metrics.OutcomeCreated)
	s.publisher.PublishAvailability(updated.ID, updated.BlockedDates)
	entry.WithField("booking_id", b.ID).Info("booking created")
	return b, nil
}

// List returns every booking with its venue summary attached.
func (s *Service) List(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withVenues(ctx, bookings)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withVenues(ctx, bookings)
}

func (s *Service) withVenues(ctx context.Context, bookings []domain.Booking) ([]domain.Booking, error) {
	seen := make(map[int64]struct{}, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.VenueID]; !ok {
			seen[b.VenueID] = struct{}{}
			ids = append(ids, b.VenueID)
		}
	}

	summaries, err := s.venues.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if v, ok := summaries[bookings[i].VenueID]; ok {
			summary := v
			bookings[i].Venue = &summary
		}
	}
	return bookings, nil
}
