package health

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"venuebook/internal/pkg/logger"
)

func serve(t *testing.T, h *Handler) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	return w
}

func TestCheck_Connected(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	h := NewHandler(db, logger.Discard())
	h.now = func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) }

	w := serve(t, h)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, "OK", gjson.Get(body, "status").String())
	assert.Equal(t, "UP", gjson.Get(body, "server").String())
	assert.Equal(t, "CONNECTED", gjson.Get(body, "database").String())
	assert.Equal(t, "2025-06-01T08:00:00Z", gjson.Get(body, "timestamp").String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheck_Disconnected(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	w := serve(t, NewHandler(db, logger.Discard()))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "DISCONNECTED", gjson.Get(w.Body.String(), "database").String())
	assert.Equal(t, "UP", gjson.Get(w.Body.String(), "server").String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
