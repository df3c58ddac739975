package venue

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuebook/internal/domain"
	"venuebook/internal/pkg/logger"
	"venuebook/internal/repository"
	"venuebook/internal/testutil"
)

type publishedEvent struct {
	venueID int64
	dates   []string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishAvailability(venueID int64, blockedDates []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{venueID: venueID, dates: blockedDates})
}

type fixture struct {
	svc       *Service
	bookings  *repository.BookingRepository
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	bookings := repository.NewBookingRepository(db)
	pub := &recordingPublisher{}
	return &fixture{
		svc:       NewService(repository.NewVenueRepository(db), bookings, pub, logger.Discard()),
		bookings:  bookings,
		publisher: pub,
	}
}

func price(v float64) *float64 { return &v }

func (f *fixture) venue(t *testing.T, name string) *domain.Venue {
	t.Helper()
	v, err := f.svc.Create(context.Background(), CreateVenueRequest{
		Name:        name,
		Description: "A room",
		Location:    "Downtown",
		Capacity:    100,
		PricePerDay: price(500),
		Amenities:   []string{"WiFi", "Parking"},
	})
	require.NoError(t, err)
	return v
}

func TestService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v := f.venue(t, "  Hall A ")
	assert.Equal(t, "Hall A", v.Name)
	assert.Equal(t, "hall-a-1", v.Slug)
	assert.True(t, v.IsActive)
	assert.Equal(t, []string{}, v.BlockedDates)

	_, err := f.svc.Create(ctx, CreateVenueRequest{
		Name: "Hall A", Description: "dup", Location: "x", Capacity: 1, PricePerDay: price(0), Amenities: []string{},
	})
	assert.ErrorIs(t, err, ErrVenueNameTaken)

	_, err = f.svc.Create(ctx, CreateVenueRequest{
		Name: "   ", Description: "blank", Location: "x", Capacity: 1, PricePerDay: price(0), Amenities: []string{},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_BlockedDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.venue(t, "Hall A")

	updated, err := f.svc.SetBlockedDates(ctx, v.ID, []string{"2025-06-01", "2025-06-02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, updated.BlockedDates)

	dates, err := f.svc.GetBlockedDates(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, dates)

	_, err = f.svc.SetBlockedDates(ctx, v.ID, []string{})
	require.NoError(t, err)
	dates, err = f.svc.GetBlockedDates(ctx, v.ID)
	require.NoError(t, err)
	assert.NotNil(t, dates)
	assert.Empty(t, dates)

	_, err = f.svc.SetBlockedDates(ctx, v.ID, nil)
	require.NoError(t, err)
	dates, _ = f.svc.GetBlockedDates(ctx, v.ID)
	assert.Equal(t, []string{}, dates)

	require.Len(t, f.publisher.events, 3)
	assert.Equal(t, v.ID, f.publisher.events[0].venueID)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, f.publisher.events[0].dates)
}

func TestService_SetBlockedDates_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.venue(t, "Hall A")

	_, err := f.svc.SetBlockedDates(ctx, v.ID, []string{"2025-06-01", "2025-02-30"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.SetBlockedDates(ctx, 999, []string{"2025-06-01"})
	assert.ErrorIs(t, err, ErrVenueNotFound)

	assert.Empty(t, f.publisher.events)
}

func TestService_Deactivate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.venue(t, "Hall A")
	b := f.venue(t, "Hall B")

	require.NoError(t, f.svc.Deactivate(ctx, a.ID))
	assert.ErrorIs(t, f.svc.Deactivate(ctx, 999), ErrVenueNotFound)

	active, err := f.svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, b.ID, active[0].ID)

	_, err = f.svc.GetBlockedDates(ctx, a.ID)
	assert.ErrorIs(t, err, ErrVenueNotFound)
	_, err = f.svc.SetBlockedDates(ctx, a.ID, []string{"2025-06-01"})
	assert.ErrorIs(t, err, ErrVenueNotFound)

	// the admin report still covers inactive venues
	_, err = f.svc.AvailabilityReport(ctx, a.ID)
	assert.NoError(t, err)
}

func TestService_AvailabilityReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.venue(t, "Hall A")

	_, err := f.svc.SetBlockedDates(ctx, v.ID, []string{"2025-02-02", "2025-01-01"})
	require.NoError(t, err)
	for _, date := range []string{"2025-02-02", "2025-03-03"} {
		require.NoError(t, f.bookings.Create(ctx, &domain.Booking{
			VenueID: v.ID, UserID: 1, VenueName: v.Name, CustomerName: "Ann", Email: "ann@example.com",
			Phone: "555", Date: date, EventType: "Wedding", TotalAmount: 500, Status: domain.BookingConfirmed,
		}))
	}

	report, err := f.svc.AvailabilityReport(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-02-02", "2025-01-01"}, report.BlockedDates)
	assert.Equal(t, []string{"2025-02-02", "2025-03-03"}, report.BookedDates)
	assert.Equal(t, []string{"2025-01-01"}, report.OrphanedDates)
	assert.Equal(t, []string{"2025-03-03"}, report.UnblockedBookings)
	assert.False(t, report.Consistent())

	all, err := f.svc.AvailabilityReports(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *report, all[0])

	_, err = f.svc.AvailabilityReport(ctx, 404)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, difference([]string{"c", "b", "a", "a"}, []string{"b"}))
	assert.Equal(t, []string{}, difference(nil, []string{"x"}))
}
