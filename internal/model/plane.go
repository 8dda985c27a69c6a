package model

// Plane is an aircraft in the fleet.
type Plane struct {
	PlaneID string `gorm:"primaryKey;size:32" json:"plane_id"`
	Make    string `gorm:"size:64;not null" json:"make"`
	Model   string `gorm:"size:64;not null" json:"model"`
	Year    int    `json:"year"`
}

// Flight is a numbered route flown by one plane.
type Flight struct {
	FlightNumber  string `gorm:"primaryKey;size:32" json:"flight_number"`
	PlaneID       string `gorm:"size:32;index;not null" json:"plane_id"`
	DepartureCity string `gorm:"size:128;not null;index:idx_flight_route" json:"departure_city"`
	ArrivalCity   string `gorm:"size:128;not null;index:idx_flight_route" json:"arrival_city"`
}

// Schedule is the weekly timetable entry for a flight.
type Schedule struct {
	ScheduleID    int64  `gorm:"primaryKey" json:"schedule_id"`
	FlightNumber  string `gorm:"size:32;index;not null" json:"flight_number"`
	DayOfWeek     string `gorm:"size:16;not null" json:"day_of_week"`
	DepartureTime string `gorm:"size:8;not null" json:"departure_time"` // HH:MM
	ArrivalTime   string `gorm:"size:8;not null" json:"arrival_time"`
}
