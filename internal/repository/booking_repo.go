package repository

import (
	"context"
	"time"

	"venuebook/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// bookingModel allows one row per (venue_id, date).
type bookingModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	VenueID      int64     `gorm:"column:venue_id;not null;uniqueIndex:idx_venue_date,priority:1"`
	Date         string    `gorm:"column:date;size:10;not null;uniqueIndex:idx_venue_date,priority:2"`
	UserID       int64     `gorm:"column:user_id;not null;index"`
	VenueName    string    `gorm:"column:venue_name;not null"`
	CustomerName string    `gorm:"column:customer_name;not null"`
	Email        string    `gorm:"column:email;not null;index"`
	Phone        string    `gorm:"column:phone;not null"`
	EventType    string    `gorm:"column:event_type;not null"`
	TotalAmount  float64   `gorm:"column:total_amount;not null"`
	Status       string    `gorm:"column:status;not null;default:pending"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:           m.ID,
		VenueID:      m.VenueID,
		UserID:       m.UserID,
		VenueName:    m.VenueName,
		CustomerName: m.CustomerName,
		Email:        m.Email,
		Phone:        m.Phone,
		Date:         m.Date,
		EventType:    m.EventType,
		TotalAmount:  m.TotalAmount,
		Status:       domain.BookingStatus(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	createdAt := b.CreatedAt
	if !createdAt.IsZero() {
		createdAt = createdAt.UTC()
	}
	return bookingModel{
		ID:           b.ID,
		VenueID:      b.VenueID,
		UserID:       b.UserID,
		VenueName:    b.VenueName,
		CustomerName: b.CustomerName,
		Email:        b.Email,
		Phone:        b.Phone,
		Date:         b.Date,
		EventType:    b.EventType,
		TotalAmount:  b.TotalAmount,
		Status:       string(b.Status),
		CreatedAt:    createdAt,
	}
}

// BookingFilter narrows analytics reads. Zero values mean "no bound".
type BookingFilter struct {
	CreatedFrom time.Time
	CreatedTo   time.Time
	Statuses    []domain.BookingStatus
}

// Create returns an error wrapping ErrDuplicate when (venue, date) is taken.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return translate(tx.Error, "create booking")
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.find(r.db.WithContext(ctx).Order("created_at DESC, id DESC"))
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC"))
}

func (r *BookingRepository) ListByVenue(ctx context.Context, venueID int64) ([]domain.Booking, error) {
	return r.find(r.db.WithContext(ctx).Where("venue_id = ?", venueID).Order("date ASC"))
}

// ListFiltered is the analytics read path.
func (r *BookingRepository) ListFiltered(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx)
	if !f.CreatedFrom.IsZero() {
		q = q.Where("created_at >= ?", f.CreatedFrom.UTC())
	}
	if !f.CreatedTo.IsZero() {
		q = q.Where("created_at < ?", f.CreatedTo.UTC())
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		q = q.Where("status IN ?", statuses)
	}
	return r.find(q.Order("created_at ASC, id ASC"))
}

// BookedDates returns the ledger's dates for one venue in ascending order.
func (r *BookingRepository) BookedDates(ctx context.Context, venueID int64) ([]string, error) {
	var dates []string
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("venue_id = ?", venueID).
		Order("date ASC").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, translate(err, "booked dates")
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&cnt).Error; err != nil {
		return 0, translate(err, "count bookings")
	}
	return cnt, nil
}

func (r *BookingRepository) find(q *gorm.DB) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err, "list bookings")
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
