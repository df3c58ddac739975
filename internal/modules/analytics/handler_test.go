package analytics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"venuebook/internal/pkg/logger"
)

func TestHandler_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	seedGrowthScenario(t, f)

	r := gin.New()
	NewHandler(f.svc, logger.Discard()).RegisterRoutes(r.Group("/api"))

	get := func(path string) string {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
		return w.Body.String()
	}

	body := get("/api/analytics/dashboard")
	assert.Equal(t, "50.00", gjson.Get(body, "data.revenueGrowth").Raw)

	body = get("/api/analytics/revenue?period=1year")
	assert.Equal(t, int64(13), gjson.Get(body, "data.#").Int())
	assert.Equal(t, "Jun 2025", gjson.Get(body, "data.12.month").String())

	body = get("/api/analytics/bookings")
	assert.Equal(t, int64(7), gjson.Get(body, "data.monthlyBookings.#").Int())
	assert.True(t, gjson.Get(body, "data.eventTypes").IsArray())

	body = get("/api/analytics/venues")
	assert.Equal(t, "Hall A", gjson.Get(body, "data.0.name").String())

	body = get("/api/analytics/customers")
	assert.Equal(t, "x@example.com", gjson.Get(body, "data.topCustomers.0.email").String())
	lastBooking, err := time.Parse(time.RFC3339, gjson.Get(body, "data.topCustomers.0.lastBooking").String())
	require.NoError(t, err)
	assert.True(t, lastBooking.Equal(at(time.June, 5)))
}
