package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"airline-ops-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	// Booking
	Capacity(ctx context.Context, flightInstanceID string) (Capacity, error)
	Book(ctx context.Context, flightInstanceID, customerID string) (*model.Reservation, error)
	Reservation(ctx context.Context, reservationID string) (*model.Reservation, error)
	ReservationDetail(ctx context.Context, reservationID string) (*ReservationDetail, error)

	// Maintenance
	SubmitRequest(ctx context.Context, in RequestInput) (*model.MaintenanceRequest, error)
	LogRepair(ctx context.Context, in RepairInput) (*model.Repair, error)

	// Accounts
	CreateUser(ctx context.Context, in NewUser) (*model.User, error)
	UserByUsername(ctx context.Context, username string) (*model.User, error)

	// Reports
	SearchFlights(ctx context.Context, from, to, date string) ([]FlightOption, error)
	TicketCosts(ctx context.Context, flightNumber string) ([]TicketCost, error)
	PlaneType(ctx context.Context, flightNumber string) (*PlaneType, error)
	FlightSchedule(ctx context.Context, flightNumber string) ([]model.Schedule, error)
	FlightSeats(ctx context.Context, flightNumber, date string) (*SeatReport, error)
	FlightStatus(ctx context.Context, flightNumber, date string) (*FlightStatus, error)
	FlightsOfDay(ctx context.Context, date string) ([]model.FlightInstance, error)
	ReservationHistory(ctx context.Context, flightInstanceID string) ([]model.Reservation, error)
	RepairHistory(ctx context.Context, planeID, from, to string) ([]model.Repair, error)
	PilotRequests(ctx context.Context, pilotID string) ([]model.MaintenanceRequest, error)

	// Operations feed
	UpdateFlightStatus(ctx context.Context, updates []StatusUpdate) (int, error)

	// Push subscriptions
	SaveSubscription(ctx context.Context, sub *model.PushSubscription) error
	Subscription(ctx context.Context, endpoint string, userID int64) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string, userID int64) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db      *gorm.DB
	timeout time.Duration
	now     func() time.Time
}

// Option configures a gormStore.
type Option func(*gormStore)

// WithQueryTimeout bounds every store operation. Zero disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *gormStore) { s.timeout = d }
}

// WithClock replaces the clock used to stamp request and repair dates.
func WithClock(now func() time.Time) Option {
	return func(s *gormStore) { s.now = now }
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, opts ...Option) Store {
	s := &gormStore{
		db:      db,
		timeout: 5 * time.Second,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *gormStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *gormStore) today() string {
	return s.now().Format("2006-01-02")
}
