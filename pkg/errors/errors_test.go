package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorListsFields(t *testing.T) {
	err := Validation([]FieldError{{Field: "machine", Message: "required"}, {Field: "batchNumber", Message: "required"}})

	assert.True(t, IsValidation(err))
	assert.False(t, IsTransport(err))
	assert.Equal(t, []string{"machine", "batchNumber"}, err.FieldNames())
	assert.Contains(t, err.Error(), "[machine, batchNumber]")
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("list: %w", Clone(ErrPageOutOfRange, "page 7 of 3"))

	assert.True(t, errors.Is(err, ErrPageOutOfRange))
	assert.False(t, errors.Is(err, ErrUnknownFilter))
}

func TestTransportDefaults(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transport(cause, 0, "")

	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, cause)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	err := FromError(errors.New("boom"))

	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Nil(t, FromError(nil))
}

func TestServerValidation(t *testing.T) {
	err := ServerValidation(http.StatusBadRequest, "", []FieldError{{Field: "dieNumber", Message: "already exists"}})

	assert.True(t, IsServerValidation(err))
	assert.Equal(t, ErrServerValidation.Message, err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}
