package access

import (
	"fmt"
	"strings"
)

// Role is one of the four closed account roles.
type Role string

const (
	RoleManagement Role = "Management"
	RoleCustomer   Role = "Customer"
	RolePilot      Role = "Pilot"
	RoleTechnician Role = "Technician"
)

// Roles lists every valid role.
var Roles = []Role{RoleManagement, RoleCustomer, RolePilot, RoleTechnician}

// ParseRole converts free text into a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Session is the authenticated identity attached to a request.
type Session struct {
	UserID int64  `json:"user_id"`
	Role   Role   `json:"role"`
	RoleID string `json:"role_id"`
}

// Operation names a gated command.
type Operation string

const (
	OpSearchFlights      Operation = "search_flights"
	OpTicketCost         Operation = "ticket_cost"
	OpPlaneType          Operation = "plane_type"
	OpBook               Operation = "book"
	OpReservationReceipt Operation = "reservation_receipt"

	OpFlightSchedule     Operation = "flight_schedule"
	OpFlightSeats        Operation = "flight_seats"
	OpFlightStatus       Operation = "flight_status"
	OpFlightsOfDay       Operation = "flights_of_day"
	OpReservationHistory Operation = "reservation_history"
	OpRepairHistory      Operation = "repair_history"

	OpSubmitRequest Operation = "submit_request"

	OpPilotRequests Operation = "pilot_requests"
	OpLogRepair     Operation = "log_repair"

	OpNotifications Operation = "notifications"
)

var permissions = map[Role]map[Operation]struct{}{
	RoleManagement: set(OpFlightSchedule, OpFlightSeats, OpFlightStatus, OpFlightsOfDay, OpReservationHistory, OpRepairHistory),
	RoleCustomer:   set(OpSearchFlights, OpTicketCost, OpPlaneType, OpBook, OpReservationReceipt),
	RolePilot:      set(OpSubmitRequest),
	RoleTechnician: set(OpRepairHistory, OpPilotRequests, OpLogRepair),
}

func set(ops ...Operation) map[Operation]struct{} {
	m := make(map[Operation]struct{}, len(ops)+1)
	for _, op := range ops {
		m[op] = struct{}{}
	}
	m[OpNotifications] = struct{}{}
	return m
}

// Permitted reports whether role may run op. Unknown pairs are rejected.
func Permitted(role Role, op Operation) bool {
	ops, ok := permissions[role]
	if !ok {
		return false
	}
	_, ok = ops[op]
	return ok
}

// Operations returns the operations available to role.
func Operations(role Role) []Operation {
	var out []Operation
	for op := range permissions[role] {
		out = append(out, op)
	}
	return out
}
