package main

import (
	"context"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"

	"venuebook/internal/config"
	"venuebook/internal/database"
	"venuebook/internal/modules/venue"
	"venuebook/internal/pkg/logger"
	"venuebook/internal/repository"
)

// availability_audit compares every venue's blocked dates with its bookings
// and exits 1 when any venue has drifted. It only reports; repairs are made
// through PATCH /api/venues/:id/availability.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL, lg, gormlogger.Silent)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	svc := venue.NewService(
		repository.NewVenueRepository(db),
		repository.NewBookingRepository(db),
		nil,
		lg,
	)

	reports, err := svc.AvailabilityReports(context.Background())
	if err != nil {
		log.Fatalf("availability audit failed: %v", err)
	}

	drifted := 0
	for _, r := range reports {
		if r.Consistent() {
			continue
		}
		drifted++
		lg.WithFields(logrus.Fields{
			"venue_id":           r.VenueID,
			"venue":              r.VenueName,
			"orphaned_dates":     r.OrphanedDates,
			"unblocked_bookings": r.UnblockedBookings,
		}).Warn("availability drift")
	}

	lg.WithFields(logrus.Fields{"venues": len(reports), "drifted": drifted}).Info("availability audit completed")
	if drifted > 0 {
		os.Exit(1)
	}
}
