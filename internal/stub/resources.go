package stub

import (
	"strings"
	"time"

	"github.com/noah-isme/printshop-console/internal/dto"
	"github.com/noah-isme/printshop-console/internal/models"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
)

// resourceSpec describes how the stub stores and queries one record type.
type resourceSpec[T any, P any] struct {
	name string
	// build turns a validated payload into a record; prev is the stored
	// record on update.
	build func(p P, prev *T) T
	// check reports conflicts with stored rows, e.g. duplicate numbers.
	check       func(rows []T, id int64, p P) []appErrors.FieldError
	matchers    map[string]matcher[T]
	comparators map[string]comparator[T]
	// bare answers listings with a plain JSON array instead of a page.
	bare bool
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func dieCutSpec() resourceSpec[models.DieCut, dto.DieCutPayload] {
	return resourceSpec[models.DieCut, dto.DieCutPayload]{
		name: "die cut",
		build: func(p dto.DieCutPayload, prev *models.DieCut) models.DieCut {
			created := today()
			if prev != nil {
				created = prev.CreatedDate
			}
			d := models.DieCut{
				DieNumber:       strings.TrimSpace(p.DieNumber),
				RepeatTeeth:     p.RepeatTeeth,
				ProjectID:       p.ProjectID,
				Status:          p.Status,
				StorageLocation: p.StorageLocation,
				CreatedDate:     created,
				Notes:           p.Notes,
			}
			if p.Status == models.DieCutActive {
				d.Machine = p.Machine
			}
			return d
		},
		check: func(rows []models.DieCut, id int64, p dto.DieCutPayload) []appErrors.FieldError {
			for _, r := range rows {
				if r.ID != id && strings.EqualFold(r.DieNumber, strings.TrimSpace(p.DieNumber)) {
					return []appErrors.FieldError{{Field: "dieNumber", Message: "already exists"}}
				}
			}
			return nil
		},
		matchers: map[string]matcher[models.DieCut]{
			dto.FilterStatus:    func(d models.DieCut, v string) bool { return strings.EqualFold(string(d.Status), v) },
			dto.FilterProjectID: func(d models.DieCut, v string) bool { return numberEquals(float64(d.ProjectID), v) },
			dto.FilterDieNumber: func(d models.DieCut, v string) bool { return containsFold(d.DieNumber, v) },
			dto.FilterMachine:   func(d models.DieCut, v string) bool { return strings.EqualFold(models.StringValue(d.Machine), v) },
			dto.FilterCreatedDateFrom: func(d models.DieCut, v string) bool {
				return d.CreatedDate >= v
			},
			dto.FilterCreatedDateTo: func(d models.DieCut, v string) bool {
				return d.CreatedDate <= v
			},
		},
		comparators: map[string]comparator[models.DieCut]{
			"id":          func(a, b models.DieCut) bool { return a.ID < b.ID },
			"dieNumber":   func(a, b models.DieCut) bool { return a.DieNumber < b.DieNumber },
			"projectId":   func(a, b models.DieCut) bool { return a.ProjectID < b.ProjectID },
			"status":      func(a, b models.DieCut) bool { return a.Status < b.Status },
			"createdDate": func(a, b models.DieCut) bool { return a.CreatedDate < b.CreatedDate },
		},
	}
}

func rawMaterialSpec() resourceSpec[models.RawMaterial, dto.RawMaterialPayload] {
	return resourceSpec[models.RawMaterial, dto.RawMaterialPayload]{
		name: "raw material",
		build: func(p dto.RawMaterialPayload, _ *models.RawMaterial) models.RawMaterial {
			r := models.RawMaterial{
				WidthMM:      p.WidthMM,
				LengthM:      p.LengthM,
				BatchNumber:  strings.TrimSpace(p.BatchNumber),
				Supplier:     strings.TrimSpace(p.Supplier),
				ReceivedDate: p.ReceivedDate,
				Status:       p.Status,
			}
			switch p.Status {
			case models.RawMaterialAvailable:
				r.WarehouseLocation = p.WarehouseLocation
			case models.RawMaterialReady, models.RawMaterialInUse:
				r.AssignedMachine = p.AssignedMachine
			}
			return r
		},
		matchers: map[string]matcher[models.RawMaterial]{
			dto.FilterStatus:      func(r models.RawMaterial, v string) bool { return strings.EqualFold(string(r.Status), v) },
			dto.FilterBatchNumber: func(r models.RawMaterial, v string) bool { return containsFold(r.BatchNumber, v) },
			dto.FilterSupplier:    func(r models.RawMaterial, v string) bool { return containsFold(r.Supplier, v) },
			dto.FilterWidthMM:     func(r models.RawMaterial, v string) bool { return numberEquals(r.WidthMM, v) },
			dto.FilterLengthM:     func(r models.RawMaterial, v string) bool { return numberEquals(r.LengthM, v) },
		},
		comparators: map[string]comparator[models.RawMaterial]{
			"id":           func(a, b models.RawMaterial) bool { return a.ID < b.ID },
			"widthMm":      func(a, b models.RawMaterial) bool { return a.WidthMM < b.WidthMM },
			"lengthM":      func(a, b models.RawMaterial) bool { return a.LengthM < b.LengthM },
			"batchNumber":  func(a, b models.RawMaterial) bool { return a.BatchNumber < b.BatchNumber },
			"supplier":     func(a, b models.RawMaterial) bool { return a.Supplier < b.Supplier },
			"receivedDate": func(a, b models.RawMaterial) bool { return a.ReceivedDate < b.ReceivedDate },
			"status":       func(a, b models.RawMaterial) bool { return a.Status < b.Status },
		},
	}
}

func inkSpec() resourceSpec[models.Ink, dto.InkPayload] {
	return resourceSpec[models.Ink, dto.InkPayload]{
		name: "ink",
		build: func(p dto.InkPayload, _ *models.Ink) models.Ink {
			i := models.Ink{
				InkColorID:      p.InkColorID,
				QuantityKg:      p.QuantityKg,
				StorageLocation: p.StorageLocation,
				BatchNumber:     strings.TrimSpace(p.BatchNumber),
				ReceivedDate:    p.ReceivedDate,
				Status:          p.Status,
				Notes:           p.Notes,
			}
			if i.ReceivedDate == "" {
				i.ReceivedDate = today()
			}
			if p.Status == models.InkActive {
				i.Machine = p.Machine
			}
			return i
		},
		matchers: map[string]matcher[models.Ink]{
			dto.FilterBatchNumber: func(i models.Ink, v string) bool { return containsFold(i.BatchNumber, v) },
			dto.FilterStatus:      func(i models.Ink, v string) bool { return strings.EqualFold(string(i.Status), v) },
		},
		comparators: map[string]comparator[models.Ink]{
			"id":           func(a, b models.Ink) bool { return a.ID < b.ID },
			"batchNumber":  func(a, b models.Ink) bool { return a.BatchNumber < b.BatchNumber },
			"quantityKg":   func(a, b models.Ink) bool { return a.QuantityKg < b.QuantityKg },
			"receivedDate": func(a, b models.Ink) bool { return a.ReceivedDate < b.ReceivedDate },
		},
		bare: true,
	}
}
