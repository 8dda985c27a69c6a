package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airline-ops-backend/internal/domain"
	"airline-ops-backend/internal/model"
)

func TestSearchFlights(t *testing.T) {
	_, store := newSQLiteStore(t)

	options, err := store.SearchFlights(context.Background(), "Riverside", "Seattle", "2024-03-09")
	require.NoError(t, err)
	require.Len(t, options, 2)

	// ordered by departure time: AA200 06:00, AA100 08:15
	assert.Equal(t, "AA200", options[0].FlightNumber)
	assert.Equal(t, "06:00", options[0].DepartureTime)
	assert.Equal(t, 1, options[0].NumOfStops)
	assert.Equal(t, 0, options[0].SeatsAvailable)
	assert.Equal(t, float64(0), options[0].OnTimePercentage)

	assert.Equal(t, "AA100", options[1].FlightNumber)
	assert.Equal(t, "FI100", options[1].FlightInstanceID)
	assert.Equal(t, "08:15", options[1].DepartureTime)
	assert.Equal(t, "10:45", options[1].ArrivalTime)
	assert.Equal(t, 1, options[1].SeatsAvailable)
	assert.InDelta(t, 50.0, options[1].OnTimePercentage, 0.001)
	assert.InDelta(t, 199.5, options[1].TicketCost, 0.001)

	none, err := store.SearchFlights(context.Background(), "Seattle", "Riverside", "2024-03-09")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = store.SearchFlights(context.Background(), "", "Seattle", "2024-03-09")
	assert.True(t, domain.IsValidation(err))
	_, err = store.SearchFlights(context.Background(), "Riverside", "Seattle", "03/09/2024")
	assert.True(t, domain.IsValidation(err))
}

func TestTicketCostsAndPlaneType(t *testing.T) {
	_, store := newSQLiteStore(t)
	ctx := context.Background()

	costs, err := store.TicketCosts(ctx, "AA100")
	require.NoError(t, err)
	require.Len(t, costs, 3)
	assert.Equal(t, "FI102", costs[0].FlightInstanceID)
	assert.InDelta(t, 199.5, costs[2].TicketCost, 0.001)

	_, err = store.TicketCosts(ctx, "ZZ1")
	assert.True(t, domain.IsNotFound(err))

	pt, err := store.PlaneType(ctx, "AA100")
	require.NoError(t, err)
	assert.Equal(t, PlaneType{PlaneID: "PL9", Make: "Boeing", Model: "737-800"}, *pt)

	_, err = store.PlaneType(ctx, "ZZ1")
	assert.True(t, domain.IsNotFound(err))
}

func TestManagementViews(t *testing.T) {
	_, store := newSQLiteStore(t)
	ctx := context.Background()

	schedules, err := store.FlightSchedule(ctx, "AA100")
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, "Saturday", schedules[0].DayOfWeek)

	_, err = store.Book(ctx, "FI100", "C7")
	require.NoError(t, err)
	_, err = store.Book(ctx, "FI100", "C8")
	require.NoError(t, err)

	seats, err := store.FlightSeats(ctx, "AA100", "2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, 2, seats.SeatsTotal)
	assert.Equal(t, 2, seats.SeatsSold)
	assert.Equal(t, 0, seats.SeatsAvailable)
	assert.Equal(t, int64(2), seats.Reserved)
	assert.Equal(t, int64(1), seats.Waitlisted)

	status, err := store.FlightStatus(ctx, "AA100", "2024-03-02")
	require.NoError(t, err)
	assert.True(t, status.DepartedOnTime)
	assert.True(t, status.ArrivedOnTime)

	_, err = store.FlightStatus(ctx, "AA100", "2030-01-01")
	assert.True(t, domain.IsNotFound(err))

	day, err := store.FlightsOfDay(ctx, "2024-03-09")
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "AA100", day[0].FlightNumber)

	history, err := store.ReservationHistory(ctx, "FI100")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "R0001", history[0].ReservationID)
	assert.Equal(t, model.StatusWaitlist, history[2].Status)

	_, err = store.ReservationHistory(ctx, "FI999")
	assert.True(t, domain.IsNotFound(err))
}

func TestRepairHistoryAndPilotRequests(t *testing.T) {
	db, store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&[]model.Repair{
		{RepairID: 1, PlaneID: "PL9", RepairCode: "RC1", RepairDate: "2024-01-05", TechnicianID: "T001"},
		{RepairID: 2, PlaneID: "PL9", RepairCode: "RC2", RepairDate: "2024-02-10", TechnicianID: "T001"},
		{RepairID: 3, PlaneID: "PL10", RepairCode: "RC2", RepairDate: "2024-02-11", TechnicianID: "T001"},
	}).Error)

	repairs, err := store.RepairHistory(ctx, "PL9", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, repairs, 1)
	assert.Equal(t, "RC1", repairs[0].RepairCode)

	repairs, err = store.RepairHistory(ctx, "PL9", "2024-01-05", "2024-02-10")
	require.NoError(t, err)
	assert.Len(t, repairs, 2, "range is inclusive")

	_, err = store.RepairHistory(ctx, "PL9", "2024-02-10", "2024-01-05")
	assert.True(t, domain.IsValidation(err))
	_, err = store.RepairHistory(ctx, "PL404", "2024-01-01", "2024-12-31")
	assert.True(t, domain.IsNotFound(err))

	_, err = store.SubmitRequest(ctx, RequestInput{PlaneID: "PL9", RepairCode: "RC3", PilotID: "P001"})
	require.NoError(t, err)
	requests, err := store.PilotRequests(ctx, "P001")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "RC3", requests[0].RepairCode)

	_, err = store.PilotRequests(ctx, "P777")
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdateFlightStatus(t *testing.T) {
	db, store := newSQLiteStore(t)

	n, err := store.UpdateFlightStatus(context.Background(), []StatusUpdate{
		{FlightInstanceID: "FI100", DepartedOnTime: true, ArrivedOnTime: false},
		{FlightInstanceID: "FI404", DepartedOnTime: true, ArrivedOnTime: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var fi model.FlightInstance
	require.NoError(t, db.Take(&fi, "flight_instance_id = ?", "FI100").Error)
	assert.True(t, fi.DepartedOnTime)
	assert.False(t, fi.ArrivedOnTime)
	assert.Equal(t, 1, fi.SeatsSold)
}

func TestSubscriptions(t *testing.T) {
	_, store := newSQLiteStore(t)
	ctx := context.Background()

	sub := &model.PushSubscription{Endpoint: "https://push.example/1", P256DH: "k", Auth: "a", UserID: 7, Role: "Customer", RoleID: "7"}
	require.NoError(t, store.SaveSubscription(ctx, sub))

	sub.Auth = "b"
	require.NoError(t, store.SaveSubscription(ctx, sub))

	got, err := store.Subscription(ctx, "https://push.example/1", 7)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Auth)

	_, err = store.Subscription(ctx, "https://push.example/1", 8)
	assert.True(t, domain.IsNotFound(err), "other users cannot read it")

	assert.True(t, domain.IsNotFound(store.DeleteSubscription(ctx, "https://push.example/1", 8)))
	require.NoError(t, store.DeleteSubscription(ctx, "https://push.example/1", 7))
	assert.True(t, domain.IsNotFound(store.DeleteSubscription(ctx, "https://push.example/1", 7)))
}
