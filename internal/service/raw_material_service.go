package service

import (
	"github.com/noah-isme/printshop-console/internal/dto"
	"github.com/noah-isme/printshop-console/internal/models"
)

// RawMaterialService serves raw material screens.
type RawMaterialService = ResourceService[models.RawMaterial, dto.RawMaterialPayload]

// NewRawMaterialService wires raw materials to repo.
func NewRawMaterialService(repo resourceRepository[models.RawMaterial, dto.RawMaterialPayload], opts ResourceOptions) *RawMaterialService {
	return NewResourceService[models.RawMaterial, dto.RawMaterialPayload](RawMaterialResource(), repo, opts)
}

// RawMaterialResource declares the raw material screens. Newest rolls are
// listed first unless the user picks another order.
func RawMaterialResource() Resource[models.RawMaterial, dto.RawMaterialPayload] {
	return Resource[models.RawMaterial, dto.RawMaterialPayload]{
		Name:   "raw material",
		Plural: "raw materials",
		Filters: []FilterField{
			{Name: dto.FilterStatus, Label: "Status", Options: statusNames(models.RawMaterialStatuses)},
			{Name: dto.FilterBatchNumber, Label: "Batch"},
			{Name: dto.FilterSupplier, Label: "Supplier"},
			{Name: dto.FilterWidthMM, Label: "Width (mm)", Kind: FilterNumber},
			{Name: dto.FilterLengthM, Label: "Length (m)", Kind: FilterNumber},
		},
		Sortable:    []string{"id", "widthMm", "lengthM", "batchNumber", "supplier", "receivedDate", "status"},
		DefaultSort: &models.SortSpec{Field: "id", Direction: models.SortDesc},
		Fields: []FormField{
			{Name: "widthMm", Label: "Width (mm)", Kind: FieldNumber, Required: true},
			{Name: "lengthM", Label: "Length (m)", Kind: FieldNumber, Required: true},
			{Name: "batchNumber", Label: "Batch", Required: true},
			{Name: "supplier", Label: "Supplier", Required: true},
			{Name: "receivedDate", Label: "Received", Kind: FieldDate, Required: true},
			{Name: StatusField, Label: "Status", Required: true, Options: statusNames(models.RawMaterialStatuses)},
			{Name: "warehouseLocation", Label: "Warehouse location"},
			{Name: "assignedMachine", Label: "Assigned machine", Options: models.Machines},
		},
		Policy:   rawMaterialPolicy,
		Defaults: Values{StatusField: string(models.RawMaterialAvailable)},
		Columns: []Column[models.RawMaterial]{
			{Header: "ID", Field: "id", Value: func(r models.RawMaterial) string { return formatInt(r.ID) }},
			{Header: "Width", Field: "widthMm", Value: func(r models.RawMaterial) string { return formatFloat(r.WidthMM) }},
			{Header: "Length", Field: "lengthM", Value: func(r models.RawMaterial) string { return formatFloat(r.LengthM) }},
			{Header: "Batch", Field: "batchNumber", Value: func(r models.RawMaterial) string { return r.BatchNumber }},
			{Header: "Supplier", Field: "supplier", Value: func(r models.RawMaterial) string { return r.Supplier }},
			{Header: "Received", Field: "receivedDate", Value: func(r models.RawMaterial) string { return r.ReceivedDate }},
			{Header: "Status", Field: "status", Value: func(r models.RawMaterial) string { return string(r.Status) }},
			{Header: "Location", Value: func(r models.RawMaterial) string {
				if r.AssignedMachine != nil {
					return *r.AssignedMachine
				}
				return models.StringValue(r.WarehouseLocation)
			}},
		},
		ID: func(r models.RawMaterial) int64 { return r.ID },
		ToValues: func(r models.RawMaterial) Values {
			return Values{
				"widthMm":           formatFloat(r.WidthMM),
				"lengthM":           formatFloat(r.LengthM),
				"batchNumber":       r.BatchNumber,
				"supplier":          r.Supplier,
				"receivedDate":      r.ReceivedDate,
				StatusField:         string(r.Status),
				"warehouseLocation": models.StringValue(r.WarehouseLocation),
				"assignedMachine":   models.StringValue(r.AssignedMachine),
			}
		},
		Bind: func(v Values) dto.RawMaterialPayload {
			return dto.RawMaterialPayload{
				WidthMM:           parseFloat(v["widthMm"]),
				LengthM:           parseFloat(v["lengthM"]),
				BatchNumber:       v["batchNumber"],
				Supplier:          v["supplier"],
				ReceivedDate:      v["receivedDate"],
				Status:            models.RawMaterialStatus(v[StatusField]),
				WarehouseLocation: models.StringPtr(v["warehouseLocation"]),
				AssignedMachine:   models.StringPtr(v["assignedMachine"]),
			}
		},
	}
}
