package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the users, venues and bookings tables,
// including the (venue_id, date) unique index.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{}, &venueModel{}, &bookingModel{})
}
