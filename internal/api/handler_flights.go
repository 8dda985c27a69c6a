package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchFlights handles GET /api/flights/search?from=&to=&date=.
func (h *Handler) SearchFlights(c *gin.Context) {
	options, err := h.store.SearchFlights(c.Request.Context(), c.Query("from"), c.Query("to"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// TicketCost handles GET /api/flights/:flight_number/cost.
func (h *Handler) TicketCost(c *gin.Context) {
	costs, err := h.store.TicketCosts(c.Request.Context(), c.Param("flight_number"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, costs)
}

// PlaneType handles GET /api/flights/:flight_number/plane.
func (h *Handler) PlaneType(c *gin.Context) {
	pt, err := h.store.PlaneType(c.Request.Context(), c.Param("flight_number"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pt)
}

// FlightSchedule handles GET /api/flights/:flight_number/schedule.
func (h *Handler) FlightSchedule(c *gin.Context) {
	schedule, err := h.store.FlightSchedule(c.Request.Context(), c.Param("flight_number"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// FlightSeats handles GET /api/flights/:flight_number/seats?date=.
func (h *Handler) FlightSeats(c *gin.Context) {
	report, err := h.store.FlightSeats(c.Request.Context(), c.Param("flight_number"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// FlightStatus handles GET /api/flights/:flight_number/status?date=.
func (h *Handler) FlightStatus(c *gin.Context) {
	status, err := h.store.FlightStatus(c.Request.Context(), c.Param("flight_number"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// FlightsOfDay handles GET /api/flight-instances?date=.
func (h *Handler) FlightsOfDay(c *gin.Context) {
	instances, err := h.store.FlightsOfDay(c.Request.Context(), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, instances)
}

// ReservationHistory handles GET /api/flight-instances/:flight_instance_id/reservations.
func (h *Handler) ReservationHistory(c *gin.Context) {
	reservations, err := h.store.ReservationHistory(c.Request.Context(), c.Param("flight_instance_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// Capacity handles GET /api/flight-instances/:flight_instance_id/capacity.
func (h *Handler) Capacity(c *gin.Context) {
	capacity, err := h.store.Capacity(c.Request.Context(), c.Param("flight_instance_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"flight_instance_id": c.Param("flight_instance_id"),
		"seats_total":        capacity.SeatsTotal,
		"seats_sold":         capacity.SeatsSold,
		"seats_available":    capacity.Available(),
	})
}
