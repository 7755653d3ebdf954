package dto

import "github.com/noah-isme/printshop-console/internal/models"

// InkPayload is the create/update body for ink containers.
type InkPayload struct {
	InkColorID      int64            `json:"inkColorId" validate:"required,gt=0"`
	QuantityKg      float64          `json:"quantityKg" validate:"gt=0"`
	StorageLocation *string          `json:"storageLocation,omitempty"`
	BatchNumber     string           `json:"batchNumber" validate:"required"`
	ReceivedDate    string           `json:"receivedDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status          models.InkStatus `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	Machine         *string          `json:"machine" validate:"required_if=Status ACTIVE,omitempty,oneof=E5 P5 P7 P7-11"`
	Notes           *string          `json:"notes,omitempty"`
}
