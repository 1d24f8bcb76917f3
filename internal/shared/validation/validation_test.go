package validation

import (
	"testing"

	"sharvari-site/internal/shared/errors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,siteemail"`
	Mobile string `json:"mobile" validate:"required,mobile10"`
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("info@sharvarielectricals.com"))
	assert.True(t, IsEmail("a@b.co"))
	assert.False(t, IsEmail("a@b"))
	assert.False(t, IsEmail("a b@c.com"))
	assert.False(t, IsEmail("@c.com"))
	assert.False(t, IsEmail(""))
}

func TestIsMobile(t *testing.T) {
	assert.True(t, IsMobile("9876543210"))
	assert.False(t, IsMobile("12345"))
	assert.False(t, IsMobile("98765432101"))
	assert.False(t, IsMobile("98765-43210"))
}

func TestStruct(t *testing.T) {
	v := New()
	msgs := Messages{
		"email.siteemail": "Please enter a valid email address.",
		"mobile10":        "Please enter a valid 10-digit mobile number.",
	}

	require.NoError(t, v.Struct(form{Name: "A", Email: "a@b.co", Mobile: "9876543210"}, msgs))

	err := v.Struct(form{Email: "nope", Mobile: "12345"}, msgs)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, map[string]string{
		"name":   "name is required",
		"email":  "Please enter a valid email address.",
		"mobile": "Please enter a valid 10-digit mobile number.",
	}, FieldErrors(err))
}

func TestFieldErrors_NotValidation(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.NewStoreError("down")))
}

func TestRegisterTags_ReportsBadTag(t *testing.T) {
	err := registerTags(validator.New(), map[string]func(string) bool{"": IsEmail})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register validation tag")

	assert.NotPanics(t, func() { New() })
}
