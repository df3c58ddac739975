package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"venuebook/internal/database"
	"venuebook/internal/domain"
	"venuebook/internal/pkg/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:repo_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.Connect(dsn, logger.Discard(), gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createVenue(t *testing.T, repo *VenueRepository, name string) *domain.Venue {
	t.Helper()
	v := &domain.Venue{
		Name:        name,
		Description: "Main hall",
		Location:    "Downtown",
		Capacity:    100,
		PricePerDay: 500,
		Amenities:   []string{"wifi", "parking"},
	}
	require.NoError(t, repo.Create(context.Background(), v))
	return v
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	u := &domain.User{Email: "  Alice@Example.COM ", PasswordHash: "hash", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)

	got, err := repo.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Create(ctx, &domain.User{Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleUser})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestVenueRepository_CreateAssignsSlugAndDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepository(setupTestDB(t))

	v := createVenue(t, repo, "Hall A")
	assert.NotZero(t, v.ID)
	assert.True(t, v.IsActive)
	assert.Equal(t, "hall-a-1", v.Slug)
	assert.Equal(t, []string{}, v.BlockedDates)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"wifi", "parking"}, got.Amenities)
	assert.Equal(t, []string{}, got.BlockedDates)

	err = repo.Create(ctx, &domain.Venue{Name: "Hall A", Capacity: 1})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVenueRepository_AppendBlockedDateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepository(setupTestDB(t))
	v := createVenue(t, repo, "Hall A")

	got, err := repo.AppendBlockedDate(ctx, v.ID, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01"}, got.BlockedDates)

	got, err = repo.AppendBlockedDate(ctx, v.ID, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01"}, got.BlockedDates)

	got, err = repo.AppendBlockedDate(ctx, v.ID, "2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01", "2025-06-03"}, got.BlockedDates)

	_, err = repo.AppendBlockedDate(ctx, 42, "2025-06-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVenueRepository_SetBlockedDatesAndActive(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepository(setupTestDB(t))
	a := createVenue(t, repo, "Hall A")
	b := createVenue(t, repo, "Hall B")

	got, err := repo.SetBlockedDates(ctx, a.ID, []string{"2025-07-01", "2025-07-02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-01", "2025-07-02"}, got.BlockedDates)

	got, err = repo.SetBlockedDates(ctx, a.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.BlockedDates)

	reread, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, reread.BlockedDates)

	require.NoError(t, repo.SetActive(ctx, b.ID, false))
	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cnt, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt)

	assert.ErrorIs(t, repo.SetActive(ctx, 999, false), ErrNotFound)

	summaries, err := repo.GetSummaries(ctx, []int64{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, "Hall B", summaries[b.ID].Name)
	assert.Equal(t, 500.0, summaries[a.ID].PricePerDay)
}

func TestBookingRepository_UniqueVenueDate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	venues := NewVenueRepository(db)
	bookings := NewBookingRepository(db)
	v := createVenue(t, venues, "Hall A")

	newBooking := func(date string) *domain.Booking {
		return &domain.Booking{
			VenueID: v.ID, UserID: 1, VenueName: v.Name,
			CustomerName: "Ann", Email: "ann@example.com", Phone: "555",
			Date: date, EventType: "wedding", TotalAmount: 500,
			Status: domain.BookingConfirmed,
		}
	}

	first := newBooking("2025-06-01")
	require.NoError(t, bookings.Create(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	err := bookings.Create(ctx, newBooking("2025-06-01"))
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, bookings.Create(ctx, newBooking("2025-06-02")))

	dates, err := bookings.BookedDates(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, dates)

	none, err := bookings.BookedDates(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, []string{}, none)

	byVenue, err := bookings.ListByVenue(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, byVenue, 2)

	byUser, err := bookings.ListByUser(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, byUser)
}

func TestBookingRepository_ListFiltered(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	bookings := NewBookingRepository(db)

	base := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	rows := []struct {
		date    string
		status  domain.BookingStatus
		created time.Time
	}{
		{"2025-06-01", domain.BookingConfirmed, base.AddDate(0, -2, 0)},
		{"2025-06-02", domain.BookingCancelled, base.AddDate(0, -1, 0)},
		{"2025-06-03", domain.BookingCompleted, base},
	}
	for _, r := range rows {
		require.NoError(t, bookings.Create(ctx, &domain.Booking{
			VenueID: 1, UserID: 1, VenueName: "Hall A", CustomerName: "Ann",
			Email: "ann@example.com", Phone: "555", Date: r.date, EventType: "party",
			TotalAmount: 100, Status: r.status, CreatedAt: r.created,
		}))
	}

	got, err := bookings.ListFiltered(ctx, BookingFilter{
		CreatedFrom: base.AddDate(0, -1, -1),
		Statuses:    []domain.BookingStatus{domain.BookingConfirmed, domain.BookingCompleted},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-06-03", got[0].Date)

	got, err = bookings.ListFiltered(ctx, BookingFilter{CreatedTo: base})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	cnt, err := bookings.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cnt)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "idx_venue_date"}))
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: bookings.venue_id, bookings.date (2067)")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("disk I/O error")))
	assert.False(t, isUniqueViolation(nil))
}

func TestStringList_Scan(t *testing.T) {
	var l stringList
	require.NoError(t, l.Scan(nil))
	assert.Equal(t, stringList{}, l)

	require.NoError(t, l.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, stringList{"a", "b"}, l)

	require.NoError(t, l.Scan("null"))
	assert.Equal(t, stringList{}, l)

	assert.Error(t, l.Scan(42))

	v, err := stringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
