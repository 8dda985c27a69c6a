// Package mocks provides a testify mock of store.Store.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"airline-ops-backend/internal/model"
	"airline-ops-backend/internal/store"
)

// Store is a mock implementation of store.Store.
type Store struct {
	mock.Mock
}

var _ store.Store = (*Store)(nil)

func (m *Store) Capacity(ctx context.Context, flightInstanceID string) (store.Capacity, error) {
	args := m.Called(ctx, flightInstanceID)
	return args.Get(0).(store.Capacity), args.Error(1)
}

func (m *Store) Book(ctx context.Context, flightInstanceID, customerID string) (*model.Reservation, error) {
	args := m.Called(ctx, flightInstanceID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *Store) Reservation(ctx context.Context, reservationID string) (*model.Reservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *Store) ReservationDetail(ctx context.Context, reservationID string) (*store.ReservationDetail, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ReservationDetail), args.Error(1)
}

func (m *Store) SubmitRequest(ctx context.Context, in store.RequestInput) (*model.MaintenanceRequest, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaintenanceRequest), args.Error(1)
}

func (m *Store) LogRepair(ctx context.Context, in store.RepairInput) (*model.Repair, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Repair), args.Error(1)
}

func (m *Store) CreateUser(ctx context.Context, in store.NewUser) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *Store) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *Store) SearchFlights(ctx context.Context, from, to, date string) ([]store.FlightOption, error) {
	args := m.Called(ctx, from, to, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.FlightOption), args.Error(1)
}

func (m *Store) TicketCosts(ctx context.Context, flightNumber string) ([]store.TicketCost, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.TicketCost), args.Error(1)
}

func (m *Store) PlaneType(ctx context.Context, flightNumber string) (*store.PlaneType, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.PlaneType), args.Error(1)
}

func (m *Store) FlightSchedule(ctx context.Context, flightNumber string) ([]model.Schedule, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Schedule), args.Error(1)
}

func (m *Store) FlightSeats(ctx context.Context, flightNumber, date string) (*store.SeatReport, error) {
	args := m.Called(ctx, flightNumber, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.SeatReport), args.Error(1)
}

func (m *Store) FlightStatus(ctx context.Context, flightNumber, date string) (*store.FlightStatus, error) {
	args := m.Called(ctx, flightNumber, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FlightStatus), args.Error(1)
}

func (m *Store) FlightsOfDay(ctx context.Context, date string) ([]model.FlightInstance, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FlightInstance), args.Error(1)
}

func (m *Store) ReservationHistory(ctx context.Context, flightInstanceID string) ([]model.Reservation, error) {
	args := m.Called(ctx, flightInstanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *Store) RepairHistory(ctx context.Context, planeID, from, to string) ([]model.Repair, error) {
	args := m.Called(ctx, planeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Repair), args.Error(1)
}

func (m *Store) PilotRequests(ctx context.Context, pilotID string) ([]model.MaintenanceRequest, error) {
	args := m.Called(ctx, pilotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MaintenanceRequest), args.Error(1)
}

func (m *Store) UpdateFlightStatus(ctx context.Context, updates []store.StatusUpdate) (int, error) {
	args := m.Called(ctx, updates)
	return args.Int(0), args.Error(1)
}

func (m *Store) SaveSubscription(ctx context.Context, sub *model.PushSubscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *Store) Subscription(ctx context.Context, endpoint string, userID int64) (*model.PushSubscription, error) {
	args := m.Called(ctx, endpoint, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PushSubscription), args.Error(1)
}

func (m *Store) DeleteSubscription(ctx context.Context, endpoint string, userID int64) error {
	return m.Called(ctx, endpoint, userID).Error(0)
}
