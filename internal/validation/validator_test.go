package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/blossomapp/blossom-server/internal/errors"
)

type sampleRequest struct {
	Name     string `json:"name" validate:"required"`
	Message  string `json:"message" validate:"required,max=10"`
	Category string `json:"category" validate:"oneof=twins registry"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{Name: "Sam", Message: "hi", Category: "twins"})
	assert.NoError(t, err)
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{Message: "way too long message", Category: "nope"})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)

	details, ok := derr.Details.(map[string]string)
	require.True(t, ok)
	// Field names come from the json tags, not Go names.
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "message")
	assert.Contains(t, details, "category")
	assert.Equal(t, "is required", details["name"])
}
