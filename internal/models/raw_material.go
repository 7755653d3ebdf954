package models

// RawMaterialStatus is the lifecycle state of a material roll.
type RawMaterialStatus string

const (
	RawMaterialAvailable RawMaterialStatus = "AVAILABLE"
	RawMaterialInUse     RawMaterialStatus = "IN_USE"
	RawMaterialReady     RawMaterialStatus = "READY"
	RawMaterialComplaint RawMaterialStatus = "COMPLAINT"
)

// RawMaterialStatuses lists every raw material status in display order.
var RawMaterialStatuses = []RawMaterialStatus{RawMaterialAvailable, RawMaterialReady, RawMaterialInUse, RawMaterialComplaint}

// RawMaterial is a roll of substrate received from a supplier.
type RawMaterial struct {
	ID                int64             `json:"id"`
	WidthMM           float64           `json:"widthMm"`
	LengthM           float64           `json:"lengthM"`
	BatchNumber       string            `json:"batchNumber"`
	Supplier          string            `json:"supplier"`
	ReceivedDate      string            `json:"receivedDate"`
	Status            RawMaterialStatus `json:"status"`
	WarehouseLocation *string           `json:"warehouseLocation"`
	AssignedMachine   *string           `json:"assignedMachine"`
}
