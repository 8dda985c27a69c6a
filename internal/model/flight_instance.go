package model

// FlightInstance is one departure of a flight on a given date, with its own seat inventory.
// SeatsSold is authoritative and only moves together with a reserved Reservation insert.
type FlightInstance struct {
	FlightInstanceID string  `gorm:"primaryKey;size:32" json:"flight_instance_id"`
	FlightNumber     string  `gorm:"size:32;not null;index" json:"flight_number"`
	FlightDate       string  `gorm:"size:10;not null;index" json:"flight_date"` // YYYY-MM-DD
	SeatsTotal       int     `gorm:"not null" json:"seats_total"`
	SeatsSold        int     `gorm:"not null;default:0" json:"seats_sold"`
	NumOfStops       int     `gorm:"not null;default:0" json:"num_of_stops"`
	DepartedOnTime   bool    `gorm:"not null;default:false" json:"departed_on_time"`
	ArrivedOnTime    bool    `gorm:"not null;default:false" json:"arrived_on_time"`
	TicketCost       float64 `gorm:"not null;default:0" json:"ticket_cost"`
}
