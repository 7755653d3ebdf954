package dto

// Filter parameter names accepted by the listing endpoints.
const (
	FilterStatus          = "status"
	FilterDieNumber       = "dieNumber"
	FilterProjectID       = "projectId"
	FilterMachine         = "machine"
	FilterCreatedDateFrom = "createdDateFrom"
	FilterCreatedDateTo   = "createdDateTo"
	FilterBatchNumber     = "batchNumber"
	FilterSupplier        = "supplier"
	FilterWidthMM         = "widthMm"
	FilterLengthM         = "lengthM"
)
