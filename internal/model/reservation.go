package model

import "time"

// ReservationStatus is the outcome recorded for a booking.
type ReservationStatus string

const (
	StatusReserved ReservationStatus = "reserved"
	StatusWaitlist ReservationStatus = "waitlist"
)

// Reservation is created once per booking attempt and never mutated.
type Reservation struct {
	ReservationID    string            `gorm:"primaryKey;size:16" json:"reservation_id"`
	CustomerID       string            `gorm:"size:32;not null;index" json:"customer_id"`
	FlightInstanceID string            `gorm:"size:32;not null;index" json:"flight_instance_id"`
	Status           ReservationStatus `gorm:"size:16;not null" json:"status"`
	CreatedAt        time.Time         `gorm:"not null" json:"created_at"`
}
