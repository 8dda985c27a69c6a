package store

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/model"
	"airline-ops-backend/internal/parse"
	"airline-ops-backend/internal/seq"
)

// SubmitRequest records a pilot's maintenance request dated today.
func (s *gormStore) SubmitRequest(ctx context.Context, in RequestInput) (*model.MaintenanceRequest, error) {
	planeID, repairCode, err := planeAndCode(in.PlaneID, in.RepairCode)
	if err != nil {
		return nil, err
	}
	pilotID, err := parse.RoleID("pilot_id", access.RolePilot, in.PilotID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var req model.MaintenanceRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Plane{}, "plane", planeID, "plane_id = ?", planeID); err != nil {
			return err
		}
		if err := mustExist(tx, &model.User{}, "pilot", pilotID, "role = ? AND role_id = ?", access.RolePilot, pilotID); err != nil {
			return err
		}

		n, err := seq.Next(tx, seq.Request)
		if err != nil {
			return err
		}
		req = model.MaintenanceRequest{
			RequestID:   n,
			PlaneID:     planeID,
			RepairCode:  repairCode,
			RequestDate: s.today(),
			PilotID:     pilotID,
		}
		if err := tx.Create(&req).Error; err != nil {
			return fmt.Errorf("insert maintenance request %d: %w", n, err)
		}
		return nil
	})
	if err != nil {
		return nil, writeErr("maintenance request", err)
	}

	log.Printf("Maintenance request %d filed by %s for plane %s (%s)", req.RequestID, pilotID, planeID, repairCode)
	return &req, nil
}

// LogRepair records completed work. It does not reference any maintenance request.
func (s *gormStore) LogRepair(ctx context.Context, in RepairInput) (*model.Repair, error) {
	planeID, repairCode, err := planeAndCode(in.PlaneID, in.RepairCode)
	if err != nil {
		return nil, err
	}
	techID, err := parse.RoleID("technician_id", access.RoleTechnician, in.TechnicianID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rep model.Repair
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Plane{}, "plane", planeID, "plane_id = ?", planeID); err != nil {
			return err
		}
		if err := mustExist(tx, &model.User{}, "technician", techID, "role = ? AND role_id = ?", access.RoleTechnician, techID); err != nil {
			return err
		}

		n, err := seq.Next(tx, seq.Repair)
		if err != nil {
			return err
		}
		rep = model.Repair{
			RepairID:     n,
			PlaneID:      planeID,
			RepairCode:   repairCode,
			RepairDate:   s.today(),
			TechnicianID: techID,
		}
		if err := tx.Create(&rep).Error; err != nil {
			return fmt.Errorf("insert repair %d: %w", n, err)
		}
		return nil
	})
	if err != nil {
		return nil, writeErr("repair", err)
	}

	log.Printf("Repair %d logged by %s for plane %s (%s)", rep.RepairID, techID, planeID, repairCode)
	return &rep, nil
}

func planeAndCode(rawPlane, rawCode string) (string, string, error) {
	planeID, err := parse.ID("plane_id", rawPlane)
	if err != nil {
		return "", "", err
	}
	code, err := parse.ID("repair_code", rawCode)
	if err != nil {
		return "", "", err
	}
	return planeID, code, nil
}
