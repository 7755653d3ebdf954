package models

// InkStatus tells whether a container sits on a press or in the warehouse.
type InkStatus string

const (
	InkActive   InkStatus = "ACTIVE"
	InkInactive InkStatus = "INACTIVE"
)

// InkStatuses lists every ink status in display order.
var InkStatuses = []InkStatus{InkInactive, InkActive}

// Ink is one ink container.
type Ink struct {
	ID              int64     `json:"id"`
	InkColorID      int64     `json:"inkColorId"`
	QuantityKg      float64   `json:"quantityKg"`
	StorageLocation *string   `json:"storageLocation"`
	BatchNumber     string    `json:"batchNumber"`
	ReceivedDate    string    `json:"receivedDate"`
	Status          InkStatus `json:"status"`
	Machine         *string   `json:"machine"`
	Notes           *string   `json:"notes"`
}
