package analytics

import (
	"net/http"

	"venuebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	log     *logrus.Logger
}

func NewHandler(service *Service, log *logrus.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes expects a group guarded by JWT and admin checks.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	g := admin.Group("/analytics")
	{
		g.GET("/dashboard", h.Dashboard)
		g.GET("/revenue", h.Revenue)
		g.GET("/bookings", h.Bookings)
		g.GET("/venues", h.Venues)
		g.GET("/customers", h.Customers)
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	out, err := h.service.Dashboard(c.Request.Context())
	h.respond(c, out, err, "dashboard")
}

// Revenue accepts ?period=6months|1year.
func (h *Handler) Revenue(c *gin.Context) {
	out, err := h.service.Revenue(c.Request.Context(), ParsePeriod(c.Query("period")))
	h.respond(c, out, err, "revenue")
}

func (h *Handler) Bookings(c *gin.Context) {
	out, err := h.service.Bookings(c.Request.Context(), ParsePeriod(c.Query("period")))
	h.respond(c, out, err, "bookings")
}

func (h *Handler) Venues(c *gin.Context) {
	out, err := h.service.Venues(c.Request.Context())
	h.respond(c, out, err, "venues")
}

func (h *Handler) Customers(c *gin.Context) {
	out, err := h.service.Customers(c.Request.Context())
	h.respond(c, out, err, "customers")
}

func (h *Handler) respond(c *gin.Context, data any, err error, report string) {
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"report":     report,
			"request_id": c.GetString("request_id"),
		}).Error("analytics query failed")
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Error fetching "+report+" analytics")
		return
	}
	response.Success(c, http.StatusOK, data)
}
