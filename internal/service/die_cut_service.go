package service

import (
	"github.com/noah-isme/printshop-console/internal/dto"
	"github.com/noah-isme/printshop-console/internal/models"
)

// DieCutService serves die cut screens.
type DieCutService = ResourceService[models.DieCut, dto.DieCutPayload]

// NewDieCutService wires die cuts to repo.
func NewDieCutService(repo resourceRepository[models.DieCut, dto.DieCutPayload], opts ResourceOptions) *DieCutService {
	return NewResourceService[models.DieCut, dto.DieCutPayload](DieCutResource(), repo, opts)
}

// DieCutResource declares the die cut screens.
func DieCutResource() Resource[models.DieCut, dto.DieCutPayload] {
	return Resource[models.DieCut, dto.DieCutPayload]{
		Name:   "die cut",
		Plural: "die cuts",
		Filters: []FilterField{
			{Name: dto.FilterStatus, Label: "Status", Options: statusNames(models.DieCutStatuses)},
			{Name: dto.FilterProjectID, Label: "Project", Kind: FilterNumber},
			{Name: dto.FilterDieNumber, Label: "Die number"},
			{Name: dto.FilterMachine, Label: "Machine", Options: models.Machines},
			{Name: dto.FilterCreatedDateFrom, Label: "Created from", Kind: FilterDate},
			{Name: dto.FilterCreatedDateTo, Label: "Created to", Kind: FilterDate},
		},
		Sortable: []string{"id", "dieNumber", "projectId", "status", "createdDate"},
		Fields: []FormField{
			{Name: "dieNumber", Label: "Die number", Required: true},
			{Name: "repeatTeeth", Label: "Repeat (teeth)", Kind: FieldInteger},
			{Name: "projectId", Label: "Project", Kind: FieldInteger},
			{Name: StatusField, Label: "Status", Required: true, Options: statusNames(models.DieCutStatuses)},
			{Name: "machine", Label: "Machine", Options: models.Machines},
			{Name: "storageLocation", Label: "Storage location"},
			{Name: "notes", Label: "Notes"},
		},
		Policy:   dieCutPolicy,
		Defaults: Values{StatusField: string(models.DieCutActive)},
		Columns: []Column[models.DieCut]{
			{Header: "ID", Field: "id", Value: func(d models.DieCut) string { return formatInt(d.ID) }},
			{Header: "Die number", Field: "dieNumber", Value: func(d models.DieCut) string { return d.DieNumber }},
			{Header: "Repeat", Value: func(d models.DieCut) string { return formatInt(int64(d.RepeatTeeth)) }},
			{Header: "Project", Field: "projectId", Value: func(d models.DieCut) string { return formatInt(d.ProjectID) }},
			{Header: "Status", Field: "status", Value: func(d models.DieCut) string { return string(d.Status) }},
			{Header: "Machine", Value: func(d models.DieCut) string { return models.StringValue(d.Machine) }},
			{Header: "Location", Value: func(d models.DieCut) string { return models.StringValue(d.StorageLocation) }},
			{Header: "Created", Field: "createdDate", Value: func(d models.DieCut) string { return d.CreatedDate }},
		},
		ID: func(d models.DieCut) int64 { return d.ID },
		ToValues: func(d models.DieCut) Values {
			return Values{
				"dieNumber":       d.DieNumber,
				"repeatTeeth":     formatInt(int64(d.RepeatTeeth)),
				"projectId":       formatInt(d.ProjectID),
				StatusField:       string(d.Status),
				"machine":         models.StringValue(d.Machine),
				"storageLocation": models.StringValue(d.StorageLocation),
				"notes":           models.StringValue(d.Notes),
			}
		},
		Bind: func(v Values) dto.DieCutPayload {
			return dto.DieCutPayload{
				DieNumber:       v["dieNumber"],
				RepeatTeeth:     int(parseInt(v["repeatTeeth"])),
				ProjectID:       parseInt(v["projectId"]),
				Status:          models.DieCutStatus(v[StatusField]),
				Machine:         models.StringPtr(v["machine"]),
				StorageLocation: models.StringPtr(v["storageLocation"]),
				Notes:           models.StringPtr(v["notes"]),
			}
		},
	}
}

func statusNames[S ~string](statuses []S) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
