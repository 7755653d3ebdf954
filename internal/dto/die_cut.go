package dto

import "github.com/noah-isme/printshop-console/internal/models"

// DieCutPayload is the create/update body for die cuts.
type DieCutPayload struct {
	DieNumber       string              `json:"dieNumber" validate:"required"`
	RepeatTeeth     int                 `json:"repeatTeeth" validate:"gte=0"`
	ProjectID       int64               `json:"projectId" validate:"gte=0"`
	Status          models.DieCutStatus `json:"status" validate:"required,oneof=ACTIVE INACTIVE AWAY ARCHIVED"`
	Machine         *string             `json:"machine" validate:"required_if=Status ACTIVE,omitempty,oneof=E5 P5 P7 P7-11"`
	StorageLocation *string             `json:"storageLocation,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
}
