package service

import (
	"github.com/noah-isme/printshop-console/internal/dto"
	"github.com/noah-isme/printshop-console/internal/models"
)

// InkService serves ink screens.
type InkService = ResourceService[models.Ink, dto.InkPayload]

// NewInkService wires inks to repo.
func NewInkService(repo resourceRepository[models.Ink, dto.InkPayload], opts ResourceOptions) *InkService {
	return NewResourceService[models.Ink, dto.InkPayload](InkResource(), repo, opts)
}

// InkResource declares the ink screens.
func InkResource() Resource[models.Ink, dto.InkPayload] {
	return Resource[models.Ink, dto.InkPayload]{
		Name:   "ink",
		Plural: "inks",
		Filters: []FilterField{
			{Name: dto.FilterBatchNumber, Label: "Batch"},
			{Name: dto.FilterStatus, Label: "Status", Options: statusNames(models.InkStatuses)},
		},
		Sortable: []string{"id", "batchNumber", "quantityKg", "receivedDate"},
		Fields: []FormField{
			{Name: "inkColorId", Label: "Ink color", Kind: FieldInteger, Required: true},
			{Name: "batchNumber", Label: "Batch", Required: true},
			{Name: "quantityKg", Label: "Quantity (kg)", Kind: FieldNumber, Required: true},
			{Name: StatusField, Label: "Status", Required: true, Options: statusNames(models.InkStatuses)},
			{Name: "machine", Label: "Machine", Options: models.Machines},
			{Name: "storageLocation", Label: "Storage location"},
			{Name: "receivedDate", Label: "Received", Kind: FieldDate},
			{Name: "notes", Label: "Notes"},
		},
		Policy:   inkPolicy,
		Defaults: Values{StatusField: string(models.InkInactive)},
		Columns: []Column[models.Ink]{
			{Header: "ID", Field: "id", Value: func(i models.Ink) string { return formatInt(i.ID) }},
			{Header: "Color", Value: func(i models.Ink) string { return formatInt(i.InkColorID) }},
			{Header: "Batch", Field: "batchNumber", Value: func(i models.Ink) string { return i.BatchNumber }},
			{Header: "Kg", Field: "quantityKg", Value: func(i models.Ink) string { return formatFloat(i.QuantityKg) }},
			{Header: "Received", Field: "receivedDate", Value: func(i models.Ink) string { return i.ReceivedDate }},
			{Header: "Status", Value: func(i models.Ink) string { return string(i.Status) }},
			{Header: "Machine", Value: func(i models.Ink) string { return models.StringValue(i.Machine) }},
		},
		ID: func(i models.Ink) int64 { return i.ID },
		ToValues: func(i models.Ink) Values {
			return Values{
				"inkColorId":      formatInt(i.InkColorID),
				"batchNumber":     i.BatchNumber,
				"quantityKg":      formatFloat(i.QuantityKg),
				StatusField:       string(i.Status),
				"machine":         models.StringValue(i.Machine),
				"storageLocation": models.StringValue(i.StorageLocation),
				"receivedDate":    i.ReceivedDate,
				"notes":           models.StringValue(i.Notes),
			}
		},
		Bind: func(v Values) dto.InkPayload {
			return dto.InkPayload{
				InkColorID:      parseInt(v["inkColorId"]),
				QuantityKg:      parseFloat(v["quantityKg"]),
				StorageLocation: models.StringPtr(v["storageLocation"]),
				BatchNumber:     v["batchNumber"],
				ReceivedDate:    v["receivedDate"],
				Status:          models.InkStatus(v[StatusField]),
				Machine:         models.StringPtr(v["machine"]),
				Notes:           models.StringPtr(v["notes"]),
			}
		},
	}
}
