package utils

import (
	"strconv"

	"venuebook/internal/pkg/response"
	"venuebook/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// ParseID parses a positive integer path parameter. On failure it writes a
// VALIDATION_ERROR response and returns false.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationFailed(c, []validator.FieldError{{Field: name, Message: "must be a positive integer"}})
		return 0, false
	}
	return id, true
}

// UserID returns the authenticated user id set by the JWT middleware.
func UserID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}
