package validator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     string   `json:"role" validate:"omitempty,oneof=admin user"`
	Capacity int      `json:"capacity" validate:"required,min=1"`
	Dates    []string `json:"dates" validate:"required,dive,isodate"`
	Date     string   `json:"date" validate:"required,bookingdate"`
}

func valid() sampleRequest {
	return sampleRequest{
		Email:    "a@b.co",
		Password: "secret",
		Capacity: 1,
		Dates:    []string{},
		Date:     "2025-06-01",
	}
}

func TestValidate_OK(t *testing.T) {
	assert.Empty(t, Validate(valid()))

	req := valid()
	req.Date = "2025-06-01T15:04:05.000Z"
	assert.Empty(t, Validate(req))
}

func TestValidate_FieldErrors(t *testing.T) {
	req := sampleRequest{
		Email:    "nope",
		Password: "123",
		Role:     "owner",
		Dates:    []string{"2025-06-01", "06/02/2025"},
		Date:     "2025-13-01",
	}

	errs := Validate(req)
	require.NotEmpty(t, errs)

	got := map[string]string{}
	for _, e := range errs {
		got[e.Field] = e.Message
	}
	assert.Equal(t, "must be a valid email address", got["email"])
	assert.Equal(t, "must be at least 6 characters", got["password"])
	assert.Equal(t, "must be one of: admin, user", got["role"])
	assert.Equal(t, "is required", got["capacity"])
	assert.Equal(t, "must be a valid date (YYYY-MM-DD)", got["dates[1]"])
	assert.Equal(t, "must be a valid date (YYYY-MM-DD)", got["date"])
	assert.NotContains(t, got, "dates[0]")
}

func TestValidate_NilSliceIsMissing(t *testing.T) {
	req := valid()
	req.Dates = nil

	errs := Validate(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "dates", errs[0].Field)
}

func TestFieldErrors_UnmarshalType(t *testing.T) {
	var req sampleRequest
	err := json.Unmarshal([]byte(`{"capacity":"ten"}`), &req)
	require.Error(t, err)

	errs := FieldErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "capacity", errs[0].Field)
	assert.Equal(t, "must be of type integer", errs[0].Message)
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2024-02-29"))
	assert.False(t, IsISODate("2023-02-29"))
	assert.False(t, IsISODate("2025-6-1"))
	assert.False(t, IsISODate(""))
}

func TestValidate_NotBlankAndMax(t *testing.T) {
	type req struct {
		Name     string `json:"name" validate:"required,notblank"`
		Password string `json:"password" validate:"required,min=6,max=72"`
	}

	errs := Validate(req{Name: "   ", Password: strings.Repeat("p", 73)})
	got := map[string]string{}
	for _, e := range errs {
		got[e.Field] = e.Message
	}
	assert.Equal(t, "must not be blank", got["name"])
	assert.Equal(t, "must be at most 72 characters", got["password"])

	assert.Empty(t, Validate(req{Name: " Ann ", Password: strings.Repeat("p", 72)}))
}
