package analytics

import (
	"cmp"
	"context"
	"slices"
	"time"

	"venuebook/internal/domain"
	"venuebook/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	monthLabel        = "Jan 2006"
	customerRetention = 50
	topCustomerCount  = 10
)

var revenueStatuses = domain.RevenueStatuses()

// Service aggregates bookings for the admin dashboards. Calendar months are
// computed in UTC.
type Service struct {
	bookings BookingReader
	venues   VenueReader
	now      func() time.Time
	log      *logrus.Logger
}

func NewService(bookings BookingReader, venues VenueReader, now func() time.Time, log *logrus.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{bookings: bookings, venues: venues, now: now, log: log}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now().UTC()
	thisMonth := startOfMonth(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	nextMonth := thisMonth.AddDate(0, 1, 0)

	totalVenues, err := s.venues.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBookings, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.bookings.ListFiltered(ctx, repository.BookingFilter{
		CreatedFrom: thisMonth, CreatedTo: nextMonth, Statuses: revenueStatuses,
	})
	if err != nil {
		return nil, err
	}
	previous, err := s.bookings.ListFiltered(ctx, repository.BookingFilter{
		CreatedFrom: lastMonth, CreatedTo: thisMonth, Statuses: revenueStatuses,
	})
	if err != nil {
		return nil, err
	}

	curRevenue, prevRevenue := sumAmount(current), sumAmount(previous)
	return &Dashboard{
		TotalVenues:          totalVenues,
		TotalBookings:        totalBookings,
		CurrentMonthRevenue:  curRevenue,
		LastMonthRevenue:     prevRevenue,
		RevenueGrowth:        growth(curRevenue, prevRevenue),
		CurrentMonthBookings: len(current),
		LastMonthBookings:    len(previous),
		BookingGrowth:        growth(float64(len(current)), float64(len(previous))),
		AvgBookingValue:      average(curRevenue, len(current)),
	}, nil
}

// Revenue returns one point per calendar month of the window, oldest first,
// including months without bookings.
func (s *Service) Revenue(ctx context.Context, period Period) ([]RevenuePoint, error) {
	now := s.now().UTC()
	from := subMonths(now, period.months())

	bookings, err := s.bookings.ListFiltered(ctx, repository.BookingFilter{
		CreatedFrom: from, Statuses: revenueStatuses,
	})
	if err != nil {
		return nil, err
	}

	months := monthRange(from, now)
	totals := make(map[string]float64, len(months))
	for _, b := range bookings {
		totals[b.CreatedAt.UTC().Format(monthLabel)] += b.TotalAmount
	}

	out := make([]RevenuePoint, 0, len(months))
	for i, m := range months {
		p := RevenuePoint{Month: m, Revenue: totals[m]}
		if i > 0 {
			p.Growth = growth(p.Revenue, out[i-1].Revenue)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) Bookings(ctx context.Context, period Period) (*BookingStats, error) {
	now := s.now().UTC()
	from := subMonths(now, period.months())

	bookings, err := s.bookings.ListFiltered(ctx, repository.BookingFilter{CreatedFrom: from})
	if err != nil {
		return nil, err
	}

	months := monthRange(from, now)
	perMonth := make(map[string]int, len(months))
	events := map[string]int{}
	statuses := map[string]int{}
	for _, b := range bookings {
		perMonth[b.CreatedAt.UTC().Format(monthLabel)]++
		events[b.EventType]++
		statuses[string(b.Status)]++
	}

	stats := &BookingStats{
		MonthlyBookings:    make([]MonthlyBookings, 0, len(months)),
		EventTypes:         make([]EventTypeCount, 0, len(events)),
		StatusDistribution: make([]StatusCount, 0, len(statuses)),
	}
	for _, m := range months {
		stats.MonthlyBookings = append(stats.MonthlyBookings, MonthlyBookings{Month: m, Bookings: perMonth[m]})
	}
	for name, n := range events {
		stats.EventTypes = append(stats.EventTypes, EventTypeCount{EventType: name, Count: n})
	}
	for name, n := range statuses {
		stats.StatusDistribution = append(stats.StatusDistribution, StatusCount{Status: name, Count: n})
	}

	slices.SortFunc(stats.EventTypes, func(a, b EventTypeCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.EventType, b.EventType))
	})
	slices.SortFunc(stats.StatusDistribution, func(a, b StatusCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Status, b.Status))
	})
	return stats, nil
}

// Venues ranks every venue, active or not, by revenue.
func (s *Service) Venues(ctx context.Context) ([]VenuePerformance, error) {
	venues, err := s.venues.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListFiltered(ctx, repository.BookingFilter{Statuses: revenueStatuses})
	if err != nil {
		return nil, err
	}

	type agg struct {
		count   int
		revenue float64
	}
	byVenue := make(map[int64]*agg, len(venues))
	for _, b := range bookings {
		a, ok := byVenue[b.VenueID]
		if !ok {
			a = &agg{}
			byVenue[b.VenueID] = a
		}
		a.count++
		a.revenue += b.TotalAmount
	}

	out := make([]VenuePerformance, 0, len(venues))
	for _, v := range venues {
		p := VenuePerformance{VenueID: v.ID, Name: v.Name, Location: v.Location}
		if a, ok := byVenue[v.ID]; ok {
			p.TotalBookings = a.count
			p.TotalRevenue = a.revenue
			p.OccupancyRate = a.count
			p.AvgBookingValue = average(a.revenue, a.count)
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b VenuePerformance) int {
		return cmp.Compare(b.TotalRevenue, a.TotalRevenue)
	})
	return out, nil
}

// Customers groups all bookings by email and keeps the 50 biggest spenders.
func (s *Service) Customers(ctx context.Context) (*CustomerStats, error) {
	bookings, err := s.bookings.ListFiltered(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, err
	}

	byEmail := map[string]*CustomerSummary{}
	for _, b := range bookings {
		c, ok := byEmail[b.Email]
		if !ok {
			// bookings arrive oldest first, so the first name seen wins
			c = &CustomerSummary{Email: b.Email, CustomerName: b.CustomerName}
			byEmail[b.Email] = c
		}
		c.TotalBookings++
		c.TotalSpent += b.TotalAmount
		if b.CreatedAt.After(c.LastBooking) {
			c.LastBooking = b.CreatedAt
		}
	}

	customers := make([]CustomerSummary, 0, len(byEmail))
	for _, c := range byEmail {
		customers = append(customers, *c)
	}
	slices.SortFunc(customers, func(a, b CustomerSummary) int {
		return cmp.Or(cmp.Compare(b.TotalSpent, a.TotalSpent), cmp.Compare(a.Email, b.Email))
	})
	if len(customers) > customerRetention {
		customers = customers[:customerRetention]
	}

	repeat := 0
	for _, c := range customers {
		if c.TotalBookings > 1 {
			repeat++
		}
	}

	top := customers
	if len(top) > topCustomerCount {
		top = top[:topCustomerCount]
	}

	stats := &CustomerStats{
		TopCustomers:         top,
		RepeatCustomers:      repeat,
		TotalUniqueCustomers: len(customers),
	}
	if len(customers) > 0 {
		stats.RepeatRate = Fixed2(float64(repeat) / float64(len(customers)) * 100)
	}
	return stats, nil
}

// growth is the percentage change from prev to cur, and exactly 0 when prev
// is 0.
func growth(cur, prev float64) Fixed2 {
	if prev == 0 {
		return 0
	}
	return Fixed2((cur - prev) / prev * 100)
}

func average(total float64, n int) Fixed2 {
	if n == 0 {
		return 0
	}
	return Fixed2(total / float64(n))
}

func sumAmount(bookings []domain.Booking) float64 {
	var total float64
	for _, b := range bookings {
		total += b.TotalAmount
	}
	return total
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// subMonths moves back n calendar months, clamping to the last day of the
// target month (Aug 31 minus 6 months is Feb 28, not Mar 3).
func subMonths(t time.Time, n int) time.Time {
	first := startOfMonth(t).AddDate(0, -n, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := min(t.Day(), lastDay)
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// monthRange labels every calendar month from the one containing from up to
// and including the one containing to.
func monthRange(from, to time.Time) []string {
	var out []string
	for m := startOfMonth(from); !m.After(to); m = m.AddDate(0, 1, 0) {
		out = append(out, m.Format(monthLabel))
	}
	return out
}
