package store

import (
	"time"

	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/model"
)

// Capacity is the seat inventory of one flight instance.
type Capacity struct {
	SeatsTotal int `json:"seats_total"`
	SeatsSold  int `json:"seats_sold"`
}

// Available returns the number of unsold seats.
func (c Capacity) Available() int {
	if c.SeatsSold >= c.SeatsTotal {
		return 0
	}
	return c.SeatsTotal - c.SeatsSold
}

// ReservationDetail is a reservation with the flight it was made on.
type ReservationDetail struct {
	ReservationID    string                  `json:"reservation_id"`
	CustomerID       string                  `json:"customer_id"`
	FlightInstanceID string                  `json:"flight_instance_id"`
	Status           model.ReservationStatus `json:"status"`
	CreatedAt        time.Time               `json:"created_at"`
	FlightNumber     string                  `json:"flight_number"`
	FlightDate       string                  `json:"flight_date"`
	DepartureCity    string                  `json:"departure_city"`
	ArrivalCity      string                  `json:"arrival_city"`
	TicketCost       float64                 `json:"ticket_cost"`
}

// RequestInput is a pilot's maintenance request.
type RequestInput struct {
	PlaneID    string `json:"plane_id"`
	RepairCode string `json:"repair_code"`
	PilotID    string `json:"pilot_id"`
}

// RepairInput is a technician's completed repair.
type RepairInput struct {
	PlaneID      string `json:"plane_id"`
	RepairCode   string `json:"repair_code"`
	TechnicianID string `json:"technician_id"`
}

// NewUser describes an account to create. The password is already hashed.
type NewUser struct {
	Username     string
	PasswordHash string
	Role         access.Role
}

// FlightOption is one row of a flight search.
type FlightOption struct {
	FlightNumber     string  `json:"flight_number"`
	FlightInstanceID string  `json:"flight_instance_id"`
	DepartureCity    string  `json:"departure_city"`
	ArrivalCity      string  `json:"arrival_city"`
	FlightDate       string  `json:"flight_date"`
	DepartureTime    string  `json:"departure_time"`
	ArrivalTime      string  `json:"arrival_time"`
	NumOfStops       int     `json:"num_of_stops"`
	SeatsAvailable   int     `json:"seats_available"`
	TicketCost       float64 `json:"ticket_cost"`
	OnTimePercentage float64 `json:"on_time_percentage"`
}

// TicketCost is the fare of one flight instance.
type TicketCost struct {
	FlightInstanceID string  `json:"flight_instance_id"`
	FlightDate       string  `json:"flight_date"`
	TicketCost       float64 `json:"ticket_cost"`
}

// PlaneType is the make and model flying a flight.
type PlaneType struct {
	PlaneID string `json:"plane_id"`
	Make    string `json:"make"`
	Model   string `json:"model"`
}

// SeatReport compares stored inventory with the reservations recorded against it.
type SeatReport struct {
	FlightInstanceID string `json:"flight_instance_id"`
	FlightNumber     string `json:"flight_number"`
	FlightDate       string `json:"flight_date"`
	SeatsTotal       int    `json:"seats_total"`
	SeatsSold        int    `json:"seats_sold"`
	SeatsAvailable   int    `json:"seats_available"`
	Reserved         int64  `json:"reserved"`
	Waitlisted       int64  `json:"waitlisted"`
}

// FlightStatus reports on-time flags for one flight instance.
type FlightStatus struct {
	FlightInstanceID string `json:"flight_instance_id"`
	FlightNumber     string `json:"flight_number"`
	FlightDate       string `json:"flight_date"`
	DepartedOnTime   bool   `json:"departed_on_time"`
	ArrivedOnTime    bool   `json:"arrived_on_time"`
}

// StatusUpdate is an on-time observation from the operations feed.
type StatusUpdate struct {
	FlightInstanceID string `json:"flightInstanceId"`
	DepartedOnTime   bool   `json:"departedOnTime"`
	ArrivedOnTime    bool   `json:"arrivedOnTime"`
}
