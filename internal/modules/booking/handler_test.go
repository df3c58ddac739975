package booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"venuebook/internal/pkg/logger"
	"venuebook/internal/pkg/validator"
)

func setupRouter(t *testing.T, userID int64) (*gin.Engine, *storeFixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.RegisterWithGin()

	f := newStoreFixture(t)
	r := gin.New()
	protected := r.Group("/api", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", "user")
		c.Next()
	})
	NewHandler(f.svc, logger.Discard()).RegisterRoutes(protected)
	return r, f
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const bookingBody = `{
	"venueId": %s,
	"venueName": "Something Else",
	"customerName": "Jane Doe",
	"email": "jane@example.com",
	"phone": "555-0100",
	"date": "%s",
	"eventType": "Birthday",
	"totalAmount": 500
}`

func body(venueID, date string) string {
	return fmt.Sprintf(bookingBody, venueID, date)
}

func TestHandler_CreateBooking(t *testing.T) {
	r, f := setupRouter(t, 42)
	f.hallA(t)

	w := send(r, http.MethodPost, "/api/bookings", body("1", "2025-06-01"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := w.Body.String()
	assert.Equal(t, "confirmed", gjson.Get(resp, "data.status").String())
	assert.Equal(t, "Hall A", gjson.Get(resp, "data.venueName").String())
	assert.Equal(t, int64(42), gjson.Get(resp, "data.userId").Int())
	assert.Equal(t, "2025-06-01", gjson.Get(resp, "data.date").String())

	w = send(r, http.MethodPost, "/api/bookings", body("1", "2025-06-01"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Venue is not available on this date", gjson.Get(w.Body.String(), "error.message").String())

	w = send(r, http.MethodGet, "/api/bookings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hall A", gjson.Get(w.Body.String(), "data.0.venue.name").String())
	assert.Equal(t, 500.0, gjson.Get(w.Body.String(), "data.0.venue.pricePerDay").Float())

	w = send(r, http.MethodGet, "/api/bookings/user/42", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), gjson.Get(w.Body.String(), "data.#").Int())

	w = send(r, http.MethodGet, "/api/bookings/user/x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateBookingErrors(t *testing.T) {
	r, f := setupRouter(t, 1)
	f.hallA(t)

	w := send(r, http.MethodPost, "/api/bookings", body("99", "2025-06-01"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(r, http.MethodPost, "/api/bookings", body("1", "June 1st"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "date", gjson.Get(w.Body.String(), "error.details.0.field").String())

	w = send(r, http.MethodPost, "/api/bookings", `{"venueId":1,"email":"nope","totalAmount":-5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := map[string]string{}
	for _, d := range gjson.Get(w.Body.String(), "error.details").Array() {
		fields[d.Get("field").String()] = d.Get("message").String()
	}
	assert.Equal(t, "is required", fields["customerName"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "is required", fields["phone"])
	assert.Equal(t, "is required", fields["date"])
	assert.Equal(t, "must be at least 0", fields["totalAmount"])
}

func TestHandler_CreateBookingRejectsBlankFields(t *testing.T) {
	r, f := setupRouter(t, 1)
	venue := f.hallA(t)

	w := send(r, http.MethodPost, "/api/bookings", `{
		"venueId": 1,
		"customerName": "   ",
		"email": "jane@example.com",
		"phone": "  ",
		"date": "2025-06-01",
		"eventType": " ",
		"totalAmount": 500
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	fields := map[string]string{}
	for _, d := range gjson.Get(w.Body.String(), "error.details").Array() {
		fields[d.Get("field").String()] = d.Get("message").String()
	}
	assert.Equal(t, "must not be blank", fields["customerName"])
	assert.Equal(t, "must not be blank", fields["phone"])
	assert.Equal(t, "must not be blank", fields["eventType"])

	dates, err := f.bookings.BookedDates(context.Background(), venue.ID)
	require.NoError(t, err)
	assert.Empty(t, dates)
}
