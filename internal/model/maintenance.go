package model

// Repair records work a technician completed on a plane.
type Repair struct {
	RepairID     int64  `gorm:"primaryKey;autoIncrement:false" json:"repair_id"`
	PlaneID      string `gorm:"size:32;not null;index" json:"plane_id"`
	RepairCode   string `gorm:"size:32;not null" json:"repair_code"`
	RepairDate   string `gorm:"size:10;not null;index" json:"repair_date"` // YYYY-MM-DD
	TechnicianID string `gorm:"size:16;not null" json:"technician_id"`
}

// MaintenanceRequest is a pilot's request for work on a plane.
// It is not linked to the Repair that eventually addresses it.
type MaintenanceRequest struct {
	RequestID   int64  `gorm:"primaryKey;autoIncrement:false" json:"request_id"`
	PlaneID     string `gorm:"size:32;not null;index" json:"plane_id"`
	RepairCode  string `gorm:"size:32;not null" json:"repair_code"`
	RequestDate string `gorm:"size:10;not null" json:"request_date"`
	PilotID     string `gorm:"size:16;not null;index" json:"pilot_id"`
}
