package auth

import (
	"errors"
	"net/http"

	"venuebook/internal/pkg/response"
	"venuebook/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	log     *logrus.Logger
}

func NewHandler(service *Service, log *logrus.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes mounts /auth. Extra middleware (rate limiting) applies to
// the whole group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, mw ...gin.HandlerFunc) {
	authGroup := api.Group("/auth", mw...)
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

// Register creates an account and returns a token with the user.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validator.FieldErrors(err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "User already exists")
		case errors.Is(err, ErrAdminRegistrationDisabled):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Admin registration is disabled")
		case errors.Is(err, ErrPasswordTooLong):
			response.ValidationFailed(c, []validator.FieldError{{Field: "password", Message: "must be at most 72 bytes"}})
		default:
			h.log.WithError(err).WithField("request_id", c.GetString("request_id")).Error("register failed")
			response.Internal(c)
		}
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validator.FieldErrors(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}
		h.log.WithError(err).WithField("request_id", c.GetString("request_id")).Error("login failed")
		response.Internal(c)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
