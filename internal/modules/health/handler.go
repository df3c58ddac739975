// Package health serves the liveness check.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Status struct {
	Status    string `json:"status"`
	Server    string `json:"server"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

type Handler struct {
	db  Pinger
	log *logrus.Logger
	now func() time.Time
}

func NewHandler(db Pinger, log *logrus.Logger) *Handler {
	return &Handler{db: db, log: log, now: time.Now}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Check)
}

// Check answers 200 when the database responds to a ping and 503 otherwise.
// The body is not wrapped in the API envelope so load balancers can read it directly.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	st := Status{
		Status:    "OK",
		Server:    "UP",
		Database:  "CONNECTED",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	}
	code := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		h.log.WithError(err).Warn("health check: database ping failed")
		st.Status = "DEGRADED"
		st.Database = "DISCONNECTED"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, st)
}
