package booking

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

// RegisterRoutes expects a group that already runs JWTAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.List)
		bookings.GET("/user/:userId", h.ListByUser)
		bookings.POST("", h.CreateBooking)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validator.FieldErrors(err))
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), utils.UserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
		case errors.Is(err, ErrVenueNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Venue not found")
		case errors.Is(err, ErrDateUnavailable):
			response.Error(c, http.StatusConflict, "DATE_UNAVAILABLE", "Venue is not available on this date")
		case errors.Is(err, ErrBookingConflict):
			response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Booking already exists for this venue and date")
		default:
			h.internal(c, err, "create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) List(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		h.internal(c, err, "list bookings")
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

// ListByUser is open to any authenticated caller, not only the owner.
func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := utils.ParseID(c, "userId")
	if !ok {
		return
	}

	bookings, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.internal(c, err, "list user bookings")
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) internal(c *gin.Context, err error, op string) {
	h.log.WithError(err).WithFields(logrus.Fields{
		"op":         op,
		"request_id": c.GetString("request_id"),
	}).Error("booking request failed")
	response.Internal(c)
}
