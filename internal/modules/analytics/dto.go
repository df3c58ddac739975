package analytics

import (
	"math"
	"strconv"
	"time"
)

// Fixed2 is a percentage or average rendered as a JSON number with exactly
// two decimals. NaN and infinities render as 0.00.
type Fixed2 float64

func (f Fixed2) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return []byte(strconv.FormatFloat(round2(v), 'f', 2, 64)), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Period selects the analytics window.
type Period string

const (
	PeriodSixMonths Period = "6months"
	PeriodOneYear   Period = "1year"
)

// ParsePeriod falls back to six months for anything but "1year".
func ParsePeriod(s string) Period {
	if Period(s) == PeriodOneYear {
		return PeriodOneYear
	}
	return PeriodSixMonths
}

func (p Period) months() int {
	if p == PeriodOneYear {
		return 12
	}
	return 6
}

type Dashboard struct {
	TotalVenues          int64   `json:"totalVenues"`
	TotalBookings        int64   `json:"totalBookings"`
	CurrentMonthRevenue  float64 `json:"currentMonthRevenue"`
	LastMonthRevenue     float64 `json:"lastMonthRevenue"`
	RevenueGrowth        Fixed2  `json:"revenueGrowth"`
	CurrentMonthBookings int     `json:"currentMonthBookings"`
	LastMonthBookings    int     `json:"lastMonthBookings"`
	BookingGrowth        Fixed2  `json:"bookingGrowth"`
	AvgBookingValue      Fixed2  `json:"avgBookingValue"`
}

type RevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Growth  Fixed2  `json:"growth"`
}

type MonthlyBookings struct {
	Month    string `json:"month"`
	Bookings int    `json:"bookings"`
}

type EventTypeCount struct {
	EventType string `json:"eventType"`
	Count     int    `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type BookingStats struct {
	MonthlyBookings    []MonthlyBookings `json:"monthlyBookings"`
	EventTypes         []EventTypeCount  `json:"eventTypes"`
	StatusDistribution []StatusCount     `json:"statusDistribution"`
}

// VenuePerformance is one venue's revenue row. OccupancyRate is the revenue
// booking count, not a ratio of booked days.
type VenuePerformance struct {
	VenueID         int64   `json:"venueId"`
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	TotalBookings   int     `json:"totalBookings"`
	TotalRevenue    float64 `json:"totalRevenue"`
	OccupancyRate   int     `json:"occupancyRate"`
	AvgBookingValue Fixed2  `json:"avgBookingValue"`
}

type CustomerSummary struct {
	Email         string    `json:"email"`
	CustomerName  string    `json:"customerName"`
	TotalBookings int       `json:"totalBookings"`
	TotalSpent    float64   `json:"totalSpent"`
	LastBooking   time.Time `json:"lastBooking"`
}

// CustomerStats is computed over the retained top spenders only, so
// TotalUniqueCustomers never exceeds the retention limit.
type CustomerStats struct {
	TopCustomers         []CustomerSummary `json:"topCustomers"`
	RepeatCustomers      int               `json:"repeatCustomers"`
	RepeatRate           Fixed2            `json:"repeatRate"`
	TotalUniqueCustomers int               `json:"totalUniqueCustomers"`
}
