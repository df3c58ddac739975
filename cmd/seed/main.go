package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"

	"venuebook/internal/config"
	"venuebook/internal/database"
	"venuebook/internal/modules/auth"
	"venuebook/internal/modules/booking"
	"venuebook/internal/modules/venue"
	"venuebook/internal/pkg/jwt"
	"venuebook/internal/pkg/logger"
	"venuebook/internal/repository"
)

func ptr(v float64) *float64 { return &v }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logger.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, lg, gormlogger.Warn)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	// Cleanup old data
	lg.Info("cleaning old data")
	for _, table := range []string{"bookings", "venues", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	users := repository.NewUserRepository(db)
	venues := repository.NewVenueRepository(db)
	bookings := repository.NewBookingRepository(db)

	authSvc := auth.NewService(users, jwt.New(cfg.JWTSecret), auth.Options{
		RegisterTTL:            cfg.RegisterTokenTTL,
		LoginTTL:               cfg.LoginTokenTTL,
		AllowAdminRegistration: true,
	}, lg)
	venueSvc := venue.NewService(venues, bookings, nil, lg)
	bookingSvc := booking.NewService(bookings, venues, nil, lg)

	// ================== USERS ==================
	if _, err := authSvc.Register(ctx, auth.RegisterRequest{Email: "admin@venuebook.dev", Password: "admin123", Role: "admin"}); err != nil {
		log.Fatal("create admin: ", err)
	}
	lg.Info("admin created: admin@venuebook.dev / admin123")

	customers := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	userIDs := make([]int64, 0, len(customers))
	for _, email := range customers {
		resp, err := authSvc.Register(ctx, auth.RegisterRequest{Email: email, Password: "user123"})
		if err != nil {
			log.Fatalf("create user %s: %v", email, err)
		}
		userIDs = append(userIDs, resp.User.ID)
	}

	// ================== VENUES ==================
	seeds := []venue.CreateVenueRequest{
		{Name: "Grand Ballroom", Description: "Chandeliers and a sprung dance floor", Location: "Downtown", Capacity: 300, PricePerDay: ptr(4500), Amenities: []string{"stage", "catering", "parking"}},
		{Name: "Garden Pavilion", Description: "Open-air pavilion with lawn seating", Location: "Riverside", Capacity: 120, PricePerDay: ptr(1800), Amenities: []string{"garden", "tent"}},
		{Name: "Loft 21", Description: "Industrial loft for launches and workshops", Location: "Arts District", Capacity: 80, PricePerDay: ptr(950), Amenities: []string{"wifi", "projector"}},
	}
	venueIDs := make([]int64, 0, len(seeds))
	for _, req := range seeds {
		v, err := venueSvc.Create(ctx, req)
		if err != nil {
			log.Fatalf("create venue %s: %v", req.Name, err)
		}
		venueIDs = append(venueIDs, v.ID)
	}

	// ================== BOOKINGS ==================
	// Spread over the last six months so analytics has something to chart.
	events := []string{"wedding", "conference", "birthday", "corporate"}
	now := time.Now().UTC()
	created := 0
	for i := 0; i < 18; i++ {
		venueIdx := i % len(venueIDs)
		date := now.AddDate(0, -(i % 6), -(i % 20)).Format("2006-01-02")
		_, err := bookingSvc.CreateBooking(ctx, userIDs[i%len(userIDs)], booking.CreateBookingRequest{
			VenueID:      venueIDs[venueIdx],
			CustomerName: fmt.Sprintf("Customer %d", i%len(customers)+1),
			Email:        customers[i%len(customers)],
			Phone:        fmt.Sprintf("+1 555 010%02d", i),
			Date:         date,
			EventType:    events[i%len(events)],
			TotalAmount:  seeds[venueIdx].PricePerDay,
		})
		if err != nil {
			lg.WithError(err).WithField("date", date).Warn("skipping booking")
			continue
		}
		created++
	}

	// one administrator block per venue
	for _, id := range venueIDs {
		dates, err := venueSvc.GetBlockedDates(ctx, id)
		if err != nil {
			log.Fatal(err)
		}
		block := now.AddDate(0, 1, int(id)).Format("2006-01-02")
		if _, err := venueSvc.SetBlockedDates(ctx, id, append(dates, block)); err != nil {
			log.Fatal(err)
		}
	}

	lg.WithFields(logrus.Fields{"users": len(customers) + 1, "venues": len(venueIDs), "bookings": created}).Info("seed completed")
}
