package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"venuebook/internal/domain"
	"venuebook/internal/modules/analytics"
	"venuebook/internal/pkg/validator"
)

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type VenueInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Capacity    int      `json:"capacity" validate:"min=1"`
	PricePerDay float64  `json:"pricePerDay" validate:"min=0"`
	Amenities   []string `json:"amenities"`
	Image       string   `json:"image,omitempty" validate:"omitempty,url"`
}

type BookingInput struct {
	VenueID      int64   `json:"venueId" validate:"required,gt=0"`
	CustomerName string  `json:"customerName" validate:"required,notblank"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        string  `json:"phone" validate:"required,notblank"`
	Date         string  `json:"date" validate:"required,bookingdate"`
	EventType    string  `json:"eventType" validate:"required,notblank"`
	TotalAmount  float64 `json:"totalAmount" validate:"min=0"`
}

// checkInput runs the server's validation rules locally so obviously bad
// input never leaves the process.
func checkInput(in any) error {
	errs := validator.Validate(in)
	if len(errs) == 0 {
		return nil
	}
	details := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		details = append(details, FieldError{Field: e.Field, Message: e.Message})
	}
	return &InputError{Details: details}
}

// Register creates an account and stores the issued token in sess.
func (c *Client) Register(ctx context.Context, sess *Session, email, password, role string) error {
	in := map[string]string{"email": email, "password": password}
	if role != "" {
		in["role"] = role
	}
	return c.authenticate(ctx, sess, "/auth/register", in)
}

func (c *Client) Login(ctx context.Context, sess *Session, email, password string) error {
	return c.authenticate(ctx, sess, "/auth/login", map[string]string{"email": email, "password": password})
}

func (c *Client) authenticate(ctx context.Context, sess *Session, path string, in any) error {
	var out authResponse
	// no session on the request itself: a failed login must not wipe an
	// existing one
	if err := c.do(ctx, nil, http.MethodPost, path, nil, in, &out); err != nil {
		return err
	}
	sess.Set(out.Token, &out.User)
	return nil
}

// Logout only forgets the token; tokens are not revoked server side.
func (c *Client) Logout(sess *Session) {
	sess.Clear()
}

func (c *Client) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	var out []domain.Venue
	err := c.do(ctx, nil, http.MethodGet, "/venues", nil, nil, &out)
	return out, err
}

func (c *Client) CreateVenue(ctx context.Context, sess *Session, in VenueInput) (*domain.Venue, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if err := checkInput(in); err != nil {
		return nil, err
	}
	if in.Amenities == nil {
		in.Amenities = []string{}
	}
	var out domain.Venue
	if err := c.do(ctx, sess, http.MethodPost, "/venues", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeactivateVenue(ctx context.Context, sess *Session, venueID int64) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return c.do(ctx, sess, http.MethodDelete, venuePath(venueID, ""), nil, nil, nil)
}

func (c *Client) BlockedDates(ctx context.Context, venueID int64) ([]string, error) {
	var out []string
	err := c.do(ctx, nil, http.MethodGet, venuePath(venueID, "/blocked-dates"), nil, nil, &out)
	return out, err
}

func (c *Client) SetBlockedDates(ctx context.Context, sess *Session, venueID int64, dates []string) (*domain.Venue, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if dates == nil {
		dates = []string{}
	}
	var out domain.Venue
	in := map[string][]string{"unavailableDates": dates}
	if err := c.do(ctx, sess, http.MethodPatch, venuePath(venueID, "/availability"), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AvailabilityReport(ctx context.Context, sess *Session, venueID int64) (*domain.AvailabilityReport, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var out domain.AvailabilityReport
	if err := c.do(ctx, sess, http.MethodGet, venuePath(venueID, "/availability/report"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VenueBookings(ctx context.Context, sess *Session, venueID int64) ([]domain.Booking, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var out []domain.Booking
	err := c.do(ctx, sess, http.MethodGet, venuePath(venueID, "/bookings"), nil, nil, &out)
	return out, err
}

func (c *Client) CreateBooking(ctx context.Context, sess *Session, in BookingInput) (*domain.Booking, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if err := checkInput(in); err != nil {
		return nil, err
	}
	var out domain.Booking
	if err := c.do(ctx, sess, http.MethodPost, "/bookings", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListBookings(ctx context.Context, sess *Session) ([]domain.Booking, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var out []domain.Booking
	err := c.do(ctx, sess, http.MethodGet, "/bookings", nil, nil, &out)
	return out, err
}

// MyBookings lists the bookings of the session's user.
func (c *Client) MyBookings(ctx context.Context, sess *Session) ([]domain.Booking, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	u := sess.User()
	if u == nil {
		return nil, ErrNotLoggedIn
	}
	var out []domain.Booking
	err := c.do(ctx, sess, http.MethodGet, "/bookings/user/"+strconv.FormatInt(u.ID, 10), nil, nil, &out)
	return out, err
}

func (c *Client) Dashboard(ctx context.Context, sess *Session) (*analytics.Dashboard, error) {
	var out analytics.Dashboard
	if err := c.analytics(ctx, sess, "dashboard", "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Revenue(ctx context.Context, sess *Session, period analytics.Period) ([]analytics.RevenuePoint, error) {
	var out []analytics.RevenuePoint
	err := c.analytics(ctx, sess, "revenue", period, &out)
	return out, err
}

func (c *Client) BookingStats(ctx context.Context, sess *Session, period analytics.Period) (*analytics.BookingStats, error) {
	var out analytics.BookingStats
	if err := c.analytics(ctx, sess, "bookings", period, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VenuePerformance(ctx context.Context, sess *Session) ([]analytics.VenuePerformance, error) {
	var out []analytics.VenuePerformance
	err := c.analytics(ctx, sess, "venues", "", &out)
	return out, err
}

func (c *Client) Customers(ctx context.Context, sess *Session) (*analytics.CustomerStats, error) {
	var out analytics.CustomerStats
	if err := c.analytics(ctx, sess, "customers", "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) analytics(ctx context.Context, sess *Session, report string, period analytics.Period, out any) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	var q url.Values
	if period != "" {
		q = url.Values{"period": {string(period)}}
	}
	return c.do(ctx, sess, http.MethodGet, "/analytics/"+report, q, nil, out)
}

func venuePath(id int64, suffix string) string {
	return "/venues/" + strconv.FormatInt(id, 10) + suffix
}

// ResolveVenueID accepts a numeric id, a slug or a venue name. Only active
// venues can be found by slug or name.
func (c *Client) ResolveVenueID(ctx context.Context, ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	venues, err := c.ListVenues(ctx)
	if err != nil {
		return 0, err
	}
	for _, v := range venues {
		if v.Slug == ref || strings.EqualFold(v.Name, ref) {
			return v.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVenue, ref)
}
