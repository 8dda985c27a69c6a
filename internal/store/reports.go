package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/domain"
	"airline-ops-backend/internal/model"
	"airline-ops-backend/internal/parse"
)

// SearchFlights lists flight instances between two cities on a date, with the
// on-time percentage of each flight's earlier instances.
func (s *gormStore) SearchFlights(ctx context.Context, from, to, date string) ([]FlightOption, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" {
		return nil, domain.ValidationError{Field: "from", Msg: "must not be empty"}
	}
	if to == "" {
		return nil, domain.ValidationError{Field: "to", Msg: "must not be empty"}
	}
	day, err := parse.Date("date", date)
	if err != nil {
		return nil, err
	}
	weekday := weekdayOf(day)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	db := s.db.WithContext(ctx)

	var options []FlightOption
	err = db.Table("flight_instances AS fi").
		Select("fi.flight_number, fi.flight_instance_id, f.departure_city, f.arrival_city, fi.flight_date, "+
			"COALESCE(sc.departure_time, '') AS departure_time, COALESCE(sc.arrival_time, '') AS arrival_time, "+
			"fi.num_of_stops, fi.seats_total - fi.seats_sold AS seats_available, fi.ticket_cost").
		Joins("JOIN flights f ON f.flight_number = fi.flight_number").
		Joins("LEFT JOIN schedules sc ON sc.flight_number = fi.flight_number AND sc.day_of_week = ?", weekday).
		Where("f.departure_city = ? AND f.arrival_city = ? AND fi.flight_date = ?", from, to, day).
		Order("departure_time, fi.flight_number").
		Scan(&options).Error
	if err != nil {
		return nil, readErr("search flights", err)
	}
	if len(options) == 0 {
		return options, nil
	}

	numbers := make([]string, 0, len(options))
	for _, o := range options {
		numbers = append(numbers, o.FlightNumber)
	}

	type onTimeRow struct {
		FlightNumber     string
		OnTimePercentage float64
	}
	var rows []onTimeRow
	err = db.Model(&model.FlightInstance{}).
		Select("flight_number, ROUND(100.0 * SUM(CASE WHEN departed_on_time AND arrived_on_time THEN 1 ELSE 0 END) / COUNT(*), 2) AS on_time_percentage").
		Where("flight_number IN ? AND flight_date < ?", numbers, day).
		Group("flight_number").
		Scan(&rows).Error
	if err != nil {
		return nil, readErr("on-time percentage", err)
	}

	pct := make(map[string]float64, len(rows))
	for _, r := range rows {
		pct[r.FlightNumber] = r.OnTimePercentage
	}
	for i := range options {
		options[i].OnTimePercentage = pct[options[i].FlightNumber]
	}
	return options, nil
}

func weekdayOf(day string) string {
	t, err := time.Parse(parse.DateLayout, day)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

// TicketCosts lists the fare of every instance of a flight.
func (s *gormStore) TicketCosts(ctx context.Context, flightNumber string) ([]TicketCost, error) {
	number, err := parse.ID("flight_number", flightNumber)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	db := s.db.WithContext(ctx)

	if err := mustExist(db, &model.Flight{}, "flight", number, "flight_number = ?", number); err != nil {
		return nil, readErr("ticket cost", err)
	}

	var costs []TicketCost
	err = db.Model(&model.FlightInstance{}).
		Select("flight_instance_id, flight_date, ticket_cost").
		Where("flight_number = ?", number).
		Order("flight_date, flight_instance_id").
		Scan(&costs).Error
	return costs, readErr("ticket cost", err)
}

// PlaneType returns the make and model of the plane assigned to a flight.
func (s *gormStore) PlaneType(ctx context.Context, flightNumber string) (*PlaneType, error) {
	number, err := parse.ID("flight_number", flightNumber)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var pt PlaneType
	res := s.db.WithContext(ctx).Table("flights AS f").
		Select("p.plane_id, p.make, p.model").
		Joins("JOIN planes p ON p.plane_id = f.plane_id").
		Where("f.flight_number = ?", number).
		Limit(1).
		Scan(&pt)
	if res.Error != nil {
		return nil, readErr("plane type", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.NotFoundError{Resource: "flight", ID: number}
	}
	return &pt, nil
}

// FlightSchedule returns the weekly timetable of a flight.
func (s *gormStore) FlightSchedule(ctx context.Context, flightNumber string) ([]model.Schedule, error) {
	number, err := parse.ID("flight_number", flightNumber)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	db := s.db.WithContext(ctx)

	if err := mustExist(db, &model.Flight{}, "flight", number, "flight_number = ?", number); err != nil {
		return nil, readErr("flight schedule", err)
	}

	var schedules []model.Schedule
	err = db.Where("flight_number = ?", number).Order("schedule_id").Find(&schedules).Error
	return schedules, readErr("flight schedule", err)
}

func (s *gormStore) instanceOn(db *gorm.DB, flightNumber, date string) (*model.FlightInstance, error) {
	number, err := parse.ID("flight_number", flightNumber)
	if err != nil {
		return nil, err
	}
	day, err := parse.Date("date", date)
	if err != nil {
		return nil, err
	}

	var fi model.FlightInstance
	err = db.Where("flight_number = ? AND flight_date = ?", number, day).Take(&fi).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "flight instance", ID: number + " on " + day}
	}
	if err != nil {
		return nil, err
	}
	return &fi, nil
}

// FlightSeats reports stored inventory next to the reservation counts for a flight on a date.
func (s *gormStore) FlightSeats(ctx context.Context, flightNumber, date string) (*SeatReport, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	db := s.db.WithContext(ctx)

	fi, err := s.instanceOn(db, flightNumber, date)
	if err != nil {
		return nil, readErr("flight seats", err)
	}

	type countRow struct {
		Status model.ReservationStatus
		N      int64
	}
	var counts []countRow
	err = db.Model(&model.Reservation{}).
		Select("status, COUNT(*) AS n").
		Where("flight_instance_id = ?", fi.FlightInstanceID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, readErr("flight seats", err)
	}

	report := &SeatReport{
		FlightInstanceID: fi.FlightInstanceID,
		FlightNumber:     fi.FlightNumber,
		FlightDate:       fi.FlightDate,
		SeatsTotal:       fi.SeatsTotal,
		SeatsSold:        fi.SeatsSold,
		SeatsAvailable:   Capacity{SeatsTotal: fi.SeatsTotal, SeatsSold: fi.SeatsSold}.Available(),
	}
	for _, c := range counts {
		switch c.Status {
		case model.StatusReserved:
			report.Reserved = c.N
		case model.StatusWaitlist:
			report.Waitlisted = c.N
		}
	}
	return report, nil
}

// FlightStatus reports the on-time flags of a flight on a date.
func (s *gormStore) FlightStatus(ctx context.Context, flightNumber, date string) (*FlightStatus, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	fi, err := s.instanceOn(s.db.WithContext(ctx), flightNumber, date)
	if err != nil {
		return nil, readErr("flight status", err)
	}
	return &FlightStatus{
		FlightInstanceID: fi.FlightInstanceID,
		FlightNumber:     fi.FlightNumber,
		FlightDate:       fi.FlightDate,
		DepartedOnTime:   fi.DepartedOnTime,
		ArrivedOnTime:    fi.ArrivedOnTime,
	}, nil
}

// FlightsOfDay lists every flight instance on a date.
func (s *gormStore) FlightsOfDay(ctx context.Context, date string) ([]model.FlightInstance, error) {
	day, err := parse.Date("date", date)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var instances []model.FlightInstance
	err = s.db.WithContext(ctx).Where("flight_date = ?", day).Order("flight_number").Find(&instances).Error
	return instances, readErr("flights of day", err)
}

// ReservationHistory lists every reservation recorded against a flight instance.
func (s *gormStore) ReservationHistory(ctx context.Context, flightInstanceID string) ([]model.Reservation, error) {
	id, err := parse.ID("flight_instance_id", flightInstanceID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	db := s.db.WithContext(ctx)

	if err := mustExist(db, &model.FlightInstance{}, "flight instance", id, "flight_instance_id = ?", id); err != nil {
		return nil, readErr("reservation history", err)
	}

	var reservations []model.Reservation
	err = db.Where("flight_instance_id = ?", id).Order("created_at, reservation_id").Find(&reservations).Error
	return reservations, readErr("reservation history", err)
}

// RepairHistory lists repairs on a plane between two dates, inclusive.
func (s *gormStore) RepairHistory(ctx context.Context, planeID, from, to string) ([]model.Repair, error) {
	id, err := parse.ID("plane_id", planeID)
	if err != nil {
		return nil, err
	}
	from, to, err = parse.DateRange(from, to)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	db := s.db.WithContext(ctx)

	if err := mustExist(db, &model.Plane{}, "plane", id, "plane_id = ?", id); err != nil {
		return nil, readErr("repair history", err)
	}

	var repairs []model.Repair
	err = db.Where("plane_id = ? AND repair_date BETWEEN ? AND ?", id, from, to).
		Order("repair_date, repair_id").
		Find(&repairs).Error
	return repairs, readErr("repair history", err)
}

// PilotRequests lists maintenance requests filed by a pilot.
func (s *gormStore) PilotRequests(ctx context.Context, pilotID string) ([]model.MaintenanceRequest, error) {
	id, err := parse.RoleID("pilot_id", access.RolePilot, pilotID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	db := s.db.WithContext(ctx)

	if err := mustExist(db, &model.User{}, "pilot", id, "role = ? AND role_id = ?", access.RolePilot, id); err != nil {
		return nil, readErr("pilot requests", err)
	}

	var requests []model.MaintenanceRequest
	err = db.Where("pilot_id = ?", id).Order("request_date, request_id").Find(&requests).Error
	return requests, readErr("pilot requests", err)
}
