package stub

import (
	"fmt"
	"time"

	"github.com/noah-isme/printshop-console/internal/models"
)

var (
	seedSuppliers = []string{"UPM Raflatac", "Avery Dennison", "Herma", "Fedrigoni"}
	seedLocations = []string{"A-01", "A-02", "B-07", "C-12"}
)

// Seed fills the tables with sample inventory relative to now.
func (s *Server) Seed(now time.Time) {
	for i := 0; i < 45; i++ {
		status := models.DieCutStatuses[i%len(models.DieCutStatuses)]
		d := models.DieCut{
			DieNumber:       fmt.Sprintf("DC-%04d", 1001+i),
			RepeatTeeth:     80 + (i%6)*8,
			ProjectID:       int64(100 + i%9),
			Status:          status,
			StorageLocation: models.StringPtr(seedLocations[i%len(seedLocations)]),
			CreatedDate:     now.AddDate(0, 0, -3*i).Format("2006-01-02"),
		}
		if status == models.DieCutActive {
			d.Machine = models.StringPtr(models.Machines[i%len(models.Machines)])
		}
		s.DieCuts.Insert(d)
	}

	for i := 0; i < 32; i++ {
		status := models.RawMaterialStatuses[i%len(models.RawMaterialStatuses)]
		r := models.RawMaterial{
			WidthMM:      float64(250 + (i%5)*50),
			LengthM:      float64(1000 + (i%4)*500),
			BatchNumber:  fmt.Sprintf("RM-%d-%03d", now.Year(), i+1),
			Supplier:     seedSuppliers[i%len(seedSuppliers)],
			ReceivedDate: now.AddDate(0, 0, -2*i).Format("2006-01-02"),
			Status:       status,
		}
		switch status {
		case models.RawMaterialAvailable:
			r.WarehouseLocation = models.StringPtr(seedLocations[i%len(seedLocations)])
		case models.RawMaterialReady, models.RawMaterialInUse:
			r.AssignedMachine = models.StringPtr(models.Machines[i%len(models.Machines)])
		}
		s.RawMaterials.Insert(r)
	}

	for i := 0; i < 12; i++ {
		ink := models.Ink{
			InkColorID:      int64(1 + i%6),
			QuantityKg:      float64(5+i%4*5) / 2,
			BatchNumber:     fmt.Sprintf("INK-%03d", 200+i),
			ReceivedDate:    now.AddDate(0, 0, -7*i).Format("2006-01-02"),
			Status:          models.InkInactive,
			StorageLocation: models.StringPtr(seedLocations[i%len(seedLocations)]),
		}
		if i%3 == 0 {
			ink.Status = models.InkActive
			ink.Machine = models.StringPtr(models.Machines[i%len(models.Machines)])
		}
		s.Inks.Insert(ink)
	}
}
