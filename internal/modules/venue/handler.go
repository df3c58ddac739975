package venue

import (
	"errors"
	"net/http"

	"venuebook/internal/pkg/response"
	"venuebook/internal/pkg/utils"
	"venuebook/internal/pkg/validator"

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

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	venues := api.Group("/venues")
	{
		venues.GET("", h.List)
		venues.GET("/:id/blocked-dates", h.GetBlockedDates)
	}
}

// RegisterAdminRoutes expects a group already guarded by JWT and admin checks.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	venues := admin.Group("/venues")
	{
		venues.POST("", h.Create)
		venues.DELETE("/:id", h.Deactivate)
		venues.PATCH("/:id/availability", h.UpdateAvailability)
		venues.GET("/:id/availability/report", h.AvailabilityReport)
		venues.GET("/:id/bookings", h.ListBookings)
	}
}

func (h *Handler) List(c *gin.Context) {
	venues, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list venues")
		return
	}
	response.Success(c, http.StatusOK, venues)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validator.FieldErrors(err))
		return
	}

	v, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "create venue")
		return
	}
	response.Success(c, http.StatusCreated, v)
}

func (h *Handler) GetBlockedDates(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}

	dates, err := h.service.GetBlockedDates(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get blocked dates")
		return
	}
	response.Success(c, http.StatusOK, dates)
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validator.FieldErrors(err))
		return
	}

	v, err := h.service.SetBlockedDates(c.Request.Context(), id, req.UnavailableDates)
	if err != nil {
		h.fail(c, err, "update availability")
		return
	}
	response.Success(c, http.StatusOK, v)
}

func (h *Handler) AvailabilityReport(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}

	report, err := h.service.AvailabilityReport(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "availability report")
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) ListBookings(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "list venue bookings")
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.fail(c, err, "deactivate venue")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "isActive": false})
}

func (h *Handler) fail(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, ErrVenueNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Venue not found")
	case errors.Is(err, ErrVenueNameTaken):
		response.Error(c, http.StatusConflict, "VENUE_NAME_TAKEN", "Venue name already exists")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
	default:
		h.log.WithError(err).WithFields(logrus.Fields{
			"op":         op,
			"request_id": c.GetString("request_id"),
		}).Error("venue request failed")
		response.Internal(c)
	}
}
