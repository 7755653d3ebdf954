package dto

import "github.com/noah-isme/printshop-console/internal/models"

// RawMaterialPayload is the create/update body for raw material rolls.
type RawMaterialPayload struct {
	WidthMM           float64                  `json:"widthMm" validate:"gt=0"`
	LengthM           float64                  `json:"lengthM" validate:"gt=0"`
	BatchNumber       string                   `json:"batchNumber" validate:"required"`
	Supplier          string                   `json:"supplier" validate:"required"`
	ReceivedDate      string                   `json:"receivedDate" validate:"required,datetime=2006-01-02"`
	Status            models.RawMaterialStatus `json:"status" validate:"required,oneof=AVAILABLE IN_USE READY COMPLAINT"`
	WarehouseLocation *string                  `json:"warehouseLocation" validate:"required_if=Status AVAILABLE"`
	AssignedMachine   *string                  `json:"assignedMachine" validate:"required_if=Status READY,required_if=Status IN_USE,omitempty,oneof=E5 P5 P7 P7-11"`
}
