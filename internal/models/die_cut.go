package models

// DieCutStatus is the lifecycle state of a die cut.
type DieCutStatus string

const (
	DieCutActive   DieCutStatus = "ACTIVE"
	DieCutInactive DieCutStatus = "INACTIVE"
	DieCutAway     DieCutStatus = "AWAY"
	DieCutArchived DieCutStatus = "ARCHIVED"
)

// DieCutStatuses lists every die cut status in display order.
var DieCutStatuses = []DieCutStatus{DieCutActive, DieCutInactive, DieCutAway, DieCutArchived}

// DieCut is a cutting die tracked by number and project.
type DieCut struct {
	ID              int64        `json:"id"`
	DieNumber       string       `json:"dieNumber"`
	RepeatTeeth     int          `json:"repeatTeeth"`
	ProjectID       int64        `json:"projectId"`
	Status          DieCutStatus `json:"status"`
	Machine         *string      `json:"machine"`
	StorageLocation *string      `json:"storageLocation"`
	CreatedDate     string       `json:"createdDate"`
	Notes           *string      `json:"notes"`
}
