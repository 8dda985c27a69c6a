package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/domain"
	"airline-ops-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

var fixedNow = time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC)

// newSQLiteStore opens a private in-memory database with the schema and a small fleet.
func newSQLiteStore(t *testing.T) (*gorm.DB, Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	seedFleet(t, db)

	return db, NewGormStore(db, WithClock(func() time.Time { return fixedNow }))
}

func seedFleet(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&[]model.Plane{
		{PlaneID: "PL9", Make: "Boeing", Model: "737-800", Year: 2015},
		{PlaneID: "PL10", Make: "Airbus", Model: "A320", Year: 2019},
	}).Error)
	require.NoError(t, db.Create(&[]model.Flight{
		{FlightNumber: "AA100", PlaneID: "PL9", DepartureCity: "Riverside", ArrivalCity: "Seattle"},
		{FlightNumber: "AA200", PlaneID: "PL10", DepartureCity: "Riverside", ArrivalCity: "Seattle"},
		{FlightNumber: "AA300", PlaneID: "PL10", DepartureCity: "Seattle", ArrivalCity: "Riverside"},
	}).Error)
	require.NoError(t, db.Create(&[]model.Schedule{
		{FlightNumber: "AA100", DayOfWeek: "Saturday", DepartureTime: "08:15", ArrivalTime: "10:45"},
		{FlightNumber: "AA100", DayOfWeek: "Sunday", DepartureTime: "09:15", ArrivalTime: "11:45"},
		{FlightNumber: "AA200", DayOfWeek: "Saturday", DepartureTime: "06:00", ArrivalTime: "08:30"},
	}).Error)
	require.NoError(t, db.Create(&[]model.FlightInstance{
		{FlightInstanceID: "FI100", FlightNumber: "AA100", FlightDate: "2024-03-09", SeatsTotal: 2, SeatsSold: 1, TicketCost: 199.5},
		{FlightInstanceID: "FI101", FlightNumber: "AA100", FlightDate: "2024-03-02", SeatsTotal: 2, SeatsSold: 2, DepartedOnTime: true, ArrivedOnTime: true, TicketCost: 189},
		{FlightInstanceID: "FI102", FlightNumber: "AA100", FlightDate: "2024-02-24", SeatsTotal: 2, SeatsSold: 2, DepartedOnTime: true, ArrivedOnTime: false, TicketCost: 179},
		{FlightInstanceID: "FI200", FlightNumber: "AA200", FlightDate: "2024-03-09", SeatsTotal: 1, SeatsSold: 1, NumOfStops: 1, TicketCost: 99},
		{FlightInstanceID: "FI300", FlightNumber: "AA300", FlightDate: "2024-03-10", SeatsTotal: 5, SeatsSold: 0, TicketCost: 120},
	}).Error)
	require.NoError(t, db.Create(&model.Reservation{
		ReservationID: "R0001", CustomerID: "C1", FlightInstanceID: "FI100", Status: model.StatusReserved, CreatedAt: fixedNow.Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&[]model.User{
		{Username: "pilot1", PasswordHash: "x", Role: access.RolePilot, RoleID: "P001", CreatedAt: fixedNow},
		{Username: "tech1", PasswordHash: "x", Role: access.RoleTechnician, RoleID: "T001", CreatedAt: fixedNow},
	}).Error)
}

var (
	claimSQL  = `UPDATE "flight_instances" SET "seats_sold"\s*=\s*seats_sold \+ \$1 WHERE flight_instance_id = \$2 AND seats_sold < seats_total`
	bumpSQL   = `UPDATE "id_sequences" SET "value"\s*=\s*value \+ \$1 WHERE name = \$2`
	readSeq   = regexp.QuoteMeta(`SELECT * FROM "id_sequences" WHERE name = $1`)
	readSeats = regexp.QuoteMeta(`SELECT "seats_total","seats_sold" FROM "flight_instances" WHERE flight_instance_id = $1`)
)

func TestGormStore_Book_SQL(t *testing.T) {
	testCases := []struct {
		name             string
		mockExpectations func(mock sqlmock.Sqlmock)
		check            func(t *testing.T, res *model.Reservation, err error)
	}{
		{
			name: "Seat claimed, reservation recorded",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(claimSQL).WithArgs(1, "FI100").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(bumpSQL).WithArgs(1, "reservation").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(readSeq).
					WillReturnRows(sqlmock.NewRows([]string{"name", "value"}).AddRow("reservation", 2))
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "reservations"`)).
					WithArgs("R0002", "C7", "FI100", "reserved", Any{}).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			check: func(t *testing.T, res *model.Reservation, err error) {
				require.NoError(t, err)
				assert.Equal(t, "R0002", res.ReservationID)
				assert.Equal(t, model.StatusReserved, res.Status)
			},
		},
		{
			name: "Flight full, reservation waitlisted",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(claimSQL).WithArgs(1, "FI100").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(readSeats).
					WillReturnRows(sqlmock.NewRows([]string{"seats_total", "seats_sold"}).AddRow(2, 2))
				mock.ExpectExec(bumpSQL).WithArgs(1, "reservation").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(readSeq).
					WillReturnRows(sqlmock.NewRows([]string{"name", "value"}).AddRow("reservation", 3))
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "reservations"`)).
					WithArgs("R0003", "C7", "FI100", "waitlist", Any{}).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			check: func(t *testing.T, res *model.Reservation, err error) {
				require.NoError(t, err)
				assert.Equal(t, model.StatusWaitlist, res.Status)
			},
		},
		{
			name: "Unknown flight instance, nothing written",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(claimSQL).WithArgs(1, "FI100").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(readSeats).
					WillReturnRows(sqlmock.NewRows([]string{"seats_total", "seats_sold"}))
				mock.ExpectRollback()
			},
			check: func(t *testing.T, res *model.Reservation, err error) {
				assert.Nil(t, res)
				assert.True(t, domain.IsNotFound(err))
				assert.Equal(t, "flight instance", domain.NotFoundResource(err))
			},
		},
		{
			name: "Insert rejected, allocation rolled back",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(claimSQL).WithArgs(1, "FI100").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(bumpSQL).WithArgs(1, "reservation").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(readSeq).
					WillReturnRows(sqlmock.NewRows([]string{"name", "value"}).AddRow("reservation", 2))
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "reservations"`)).
					WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			check: func(t *testing.T, res *model.Reservation, err error) {
				assert.Nil(t, res)
				assert.True(t, domain.IsWrite(err))
				assert.False(t, domain.IsNotFound(err))
			},
		},
		{
			name: "Deadlock surfaces as transient",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(claimSQL).WithArgs(1, "FI100").
					WillReturnError(&pgconn.PgError{Code: "40P01", Message: "deadlock detected"})
				mock.ExpectRollback()
			},
			check: func(t *testing.T, res *model.Reservation, err error) {
				assert.Nil(t, res)
				assert.True(t, domain.IsTransient(err))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			store := NewGormStore(gormDB)

			tc.mockExpectations(mock)

			res, err := store.Book(context.Background(), "FI100", "C7")
			tc.check(t, res, err)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_Book_ValidatesBeforeTouchingStore(t *testing.T) {
	gormDB, mock := newTestDB(t)
	store := NewGormStore(gormDB)

	_, err := store.Book(context.Background(), "", "C7")
	assert.True(t, domain.IsValidation(err))

	_, err = store.Book(context.Background(), "FI100", "C7; DROP TABLE")
	assert.True(t, domain.IsValidation(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassification(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		transient bool
	}{
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), true},
		{"bad conn", driver.ErrBadConn, true},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"serialization", &pgconn.PgError{Code: "40001"}, true},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.transient, isTransient(tc.err))
			if tc.transient {
				assert.True(t, domain.IsTransient(writeErr("op", tc.err)))
				assert.True(t, domain.IsTransient(readErr("op", tc.err)))
			} else {
				assert.True(t, domain.IsWrite(writeErr("op", tc.err)))
				assert.False(t, domain.IsWrite(readErr("op", tc.err)))
			}
		})
	}

	nf := domain.NotFoundError{Resource: "plane"}
	assert.Equal(t, nf, writeErr("op", nf))
	assert.Nil(t, writeErr("op", nil))
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
