package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/printshop-console/internal/dto"
	"github.com/noah-isme/printshop-console/internal/models"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
)

func TestFieldErrorsUseJSONNames(t *testing.T) {
	v := NewValidator()
	err := v.Struct(dto.RawMaterialPayload{
		WidthMM:      0,
		LengthM:      100,
		BatchNumber:  "B-1",
		Supplier:     "Avery",
		ReceivedDate: "2024-02-30",
		Status:       models.RawMaterialReady,
	})

	assert.Equal(t, []appErrors.FieldError{
		{Field: "widthMm", Message: "must be greater than 0"},
		{Field: "receivedDate", Message: "must be a date (YYYY-MM-DD)"},
		{Field: "assignedMachine", Message: "is required"},
	}, FieldErrors(err))
}

func TestConditionalPointerFieldsSkipWhenStatusDoesNotNeedThem(t *testing.T) {
	v := NewValidator()
	err := v.Struct(dto.DieCutPayload{DieNumber: "DC-1", Status: models.DieCutInactive})
	assert.NoError(t, err)

	err = v.Struct(dto.DieCutPayload{DieNumber: "DC-1", Status: models.DieCutActive, Machine: models.StringPtr("X9")})
	assert.Equal(t, []appErrors.FieldError{{Field: "machine", Message: "must be one of E5, P5, P7, P7-11"}}, FieldErrors(err))
}

func TestFieldErrorsPassesThroughOtherErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))
	assert.Equal(t, []appErrors.FieldError{{Message: "boom"}}, FieldErrors(errors.New("boom")))
}
