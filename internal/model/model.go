package model

// All returns every persisted model, in migration order.
func All() []any {
	return []any{
		&Plane{},
		&Flight{},
		&Schedule{},
		&FlightInstance{},
		&Reservation{},
		&Repair{},
		&MaintenanceRequest{},
		&User{},
		&IDSequence{},
		&PushSubscription{},
	}
}
