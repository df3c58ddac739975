package repository

import (
	"context"
	"fmt"
	"slices"
	"time"

	"venuebook/internal/domain"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VenueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

type venueModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	Name         string     `gorm:"column:name;not null;uniqueIndex:idx_venues_name"`
	Slug         *string    `gorm:"column:slug;uniqueIndex:idx_venues_slug"`
	Description  string     `gorm:"column:description;type:text"`
	Location     string     `gorm:"column:location"`
	Capacity     int        `gorm:"column:capacity;not null"`
	PricePerDay  float64    `gorm:"column:price_per_day;not null"`
	Amenities    stringList `gorm:"column:amenities;type:text"`
	Image        *string    `gorm:"column:image"`
	BlockedDates stringList `gorm:"column:blocked_dates;type:text"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (venueModel) TableName() string { return "venues" }

func toDomainVenue(m venueModel) *domain.Venue {
	var image, s string
	if m.Image != nil {
		image = *m.Image
	}
	if m.Slug != nil {
		s = *m.Slug
	}

	return &domain.Venue{
		ID:           m.ID,
		Name:         m.Name,
		Slug:         s,
		Description:  m.Description,
		Location:     m.Location,
		Capacity:     m.Capacity,
		PricePerDay:  m.PricePerDay,
		Amenities:    cloneStrings(m.Amenities),
		Image:        image,
		BlockedDates: cloneStrings(m.BlockedDates),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

func toVenueModel(v *domain.Venue) venueModel {
	var image, s *string
	if v.Image != "" {
		val := v.Image
		image = &val
	}
	if v.Slug != "" {
		val := v.Slug
		s = &val
	}

	return venueModel{
		ID:           v.ID,
		Name:         v.Name,
		Slug:         s,
		Description:  v.Description,
		Location:     v.Location,
		Capacity:     v.Capacity,
		PricePerDay:  v.PricePerDay,
		Amenities:    stringList(cloneStrings(v.Amenities)),
		Image:        image,
		BlockedDates: stringList(cloneStrings(v.BlockedDates)),
		IsActive:     v.IsActive,
		CreatedAt:    v.CreatedAt,
	}
}

// Create inserts the venue and assigns its slug ("<name>-<id>") in the same
// transaction.
func (r *VenueRepository) Create(ctx context.Context, v *domain.Venue) error {
	m := toVenueModel(v)
	m.Slug = nil
	m.IsActive = true

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		s := fmt.Sprintf("%s-%d", slug.Make(m.Name), m.ID)
		if err := tx.Model(&venueModel{}).Where("id = ?", m.ID).Update("slug", s).Error; err != nil {
			return err
		}
		m.Slug = &s
		return nil
	})
	if err != nil {
		return translate(err, "create venue")
	}

	*v = *toDomainVenue(m)
	return nil
}

func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	var m venueModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, translate(tx.Error, "get venue")
	}
	return toDomainVenue(m), nil
}

func (r *VenueRepository) ListActive(ctx context.Context) ([]domain.Venue, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("is_active = ?", true))
}

// ListAll includes inactive venues.
func (r *VenueRepository) ListAll(ctx context.Context) ([]domain.Venue, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *VenueRepository) list(_ context.Context, q *gorm.DB) ([]domain.Venue, error) {
	var rows []venueModel
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err, "list venues")
	}
	out := make([]domain.Venue, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainVenue(m))
	}
	return out, nil
}

func (r *VenueRepository) GetSummaries(ctx context.Context, ids []int64) (map[int64]domain.VenueSummary, error) {
	out := make(map[int64]domain.VenueSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []venueModel
	err := r.db.WithContext(ctx).
		Select("id", "name", "price_per_day").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "venue summaries")
	}
	for _, m := range rows {
		out[m.ID] = domain.VenueSummary{ID: m.ID, Name: m.Name, PricePerDay: m.PricePerDay}
	}
	return out, nil
}

// Count counts every venue, active or not.
func (r *VenueRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&venueModel{}).Count(&cnt).Error; err != nil {
		return 0, translate(err, "count venues")
	}
	return cnt, nil
}

// SetBlockedDates overwrites the list as given.
func (r *VenueRepository) SetBlockedDates(ctx context.Context, id int64, dates []string) (*domain.Venue, error) {
	var m venueModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
			return err
		}
		m.BlockedDates = stringList(cloneStrings(dates))
		return tx.Model(&venueModel{}).Where("id = ?", id).Update("blocked_dates", m.BlockedDates).Error
	})
	if err != nil {
		return nil, translate(err, "set blocked dates")
	}
	return toDomainVenue(m), nil
}

// AppendBlockedDate adds date under a row lock unless it is already present.
// The write commits on its own; callers must not expect it to roll back with
// any later statement.
func (r *VenueRepository) AppendBlockedDate(ctx context.Context, id int64, date string) (*domain.Venue, error) {
	var m venueModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
			return err
		}
		if slices.Contains(m.BlockedDates, date) {
			return nil
		}
		m.BlockedDates = append(m.BlockedDates, date)
		return tx.Model(&venueModel{}).Where("id = ?", id).Update("blocked_dates", m.BlockedDates).Error
	})
	if err != nil {
		return nil, translate(err, "append blocked date")
	}
	return toDomainVenue(m), nil
}

func (r *VenueRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).Model(&venueModel{}).Where("id = ?", id).Update("is_active", active)
	if tx.Error != nil {
		return translate(tx.Error, "set venue active")
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
