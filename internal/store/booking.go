package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"airline-ops-backend/internal/domain"
	"airline-ops-backend/internal/model"
	"airline-ops-backend/internal/parse"
	"airline-ops-backend/internal/seq"
)

// Capacity reports total and sold seats for a flight instance.
func (s *gormStore) Capacity(ctx context.Context, flightInstanceID string) (Capacity, error) {
	id, err := parse.ID("flight_instance_id", flightInstanceID)
	if err != nil {
		return Capacity{}, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := capacity(s.db.WithContext(ctx), id)
	return c, readErr("capacity", err)
}

func capacity(tx *gorm.DB, flightInstanceID string) (Capacity, error) {
	var fi model.FlightInstance
	err := tx.Select("seats_total", "seats_sold").
		Where("flight_instance_id = ?", flightInstanceID).
		Take(&fi).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Capacity{}, domain.NotFoundError{Resource: "flight instance", ID: flightInstanceID}
	}
	if err != nil {
		return Capacity{}, err
	}
	return Capacity{SeatsTotal: fi.SeatsTotal, SeatsSold: fi.SeatsSold}, nil
}

// Book records a reservation for customerID on flightInstanceID. The seat is
// claimed with a conditional increment so the decision and the write are one
// statement; when no seat is left the reservation is waitlisted.
// Every call creates a new reservation.
func (s *gormStore) Book(ctx context.Context, flightInstanceID, customerID string) (*model.Reservation, error) {
	fid, err := parse.ID("flight_instance_id", flightInstanceID)
	if err != nil {
		return nil, err
	}
	cid, err := parse.ID("customer_id", customerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var res model.Reservation
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		status, err := claimSeat(tx, fid)
		if err != nil {
			return err
		}

		id, err := seq.NextID(tx, seq.Reservation)
		if err != nil {
			return err
		}

		res = model.Reservation{
			ReservationID:    id,
			CustomerID:       cid,
			FlightInstanceID: fid,
			Status:           status,
			CreatedAt:        s.now().UTC(),
		}
		if err := tx.Create(&res).Error; err != nil {
			return fmt.Errorf("insert reservation %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, writeErr("reservation", err)
	}

	log.Printf("Reservation %s for customer %s on %s: %s", res.ReservationID, cid, fid, res.Status)
	return &res, nil
}

// claimSeat takes one seat if any is left. A miss falls back to a capacity
// read inside the same transaction to tell a full flight from a missing one.
func claimSeat(tx *gorm.DB, flightInstanceID string) (model.ReservationStatus, error) {
	result := tx.Model(&model.FlightInstance{}).
		Where("flight_instance_id = ? AND seats_sold < seats_total", flightInstanceID).
		UpdateColumn("seats_sold", gorm.Expr("seats_sold + ?", 1))
	if result.Error != nil {
		return "", fmt.Errorf("claim seat on %s: %w", flightInstanceID, result.Error)
	}
	if result.RowsAffected == 1 {
		return model.StatusReserved, nil
	}

	if _, err := capacity(tx, flightInstanceID); err != nil {
		return "", err
	}
	return model.StatusWaitlist, nil
}

// Reservation looks up a single reservation.
func (s *gormStore) Reservation(ctx context.Context, reservationID string) (*model.Reservation, error) {
	id, err := parse.ID("reservation_id", reservationID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var res model.Reservation
	err = s.db.WithContext(ctx).Where("reservation_id = ?", id).Take(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "reservation", ID: id}
	}
	if err != nil {
		return nil, readErr("reservation", err)
	}
	return &res, nil
}

// ReservationDetail returns a reservation joined with its flight.
func (s *gormStore) ReservationDetail(ctx context.Context, reservationID string) (*ReservationDetail, error) {
	id, err := parse.ID("reservation_id", reservationID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rows []ReservationDetail
	err = s.db.WithContext(ctx).Table("reservations AS r").
		Select("r.reservation_id, r.customer_id, r.flight_instance_id, r.status, r.created_at, "+
			"fi.flight_number, fi.flight_date, fi.ticket_cost, f.departure_city, f.arrival_city").
		Joins("JOIN flight_instances fi ON fi.flight_instance_id = r.flight_instance_id").
		Joins("JOIN flights f ON f.flight_number = fi.flight_number").
		Where("r.reservation_id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, readErr("reservation detail", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFoundError{Resource: "reservation", ID: id}
	}
	return &rows[0], nil
}
