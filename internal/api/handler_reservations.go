package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/events"
	"airline-ops-backend/internal/model"
	"airline-ops-backend/internal/mw"
	"airline-ops-backend/internal/notification"
	"airline-ops-backend/internal/receipt"
)

type bookRequest struct {
	FlightInstanceID string `json:"flight_instance_id" binding:"required"`
}

type reservationResponse struct {
	ReservationID    string                  `json:"reservation_id"`
	CustomerID       string                  `json:"customer_id"`
	FlightInstanceID string                  `json:"flight_instance_id"`
	Status           model.ReservationStatus `json:"status"`
	Outcome          string                  `json:"outcome"`
}

func outcome(s model.ReservationStatus) string {
	if s == model.StatusReserved {
		return "confirmed"
	}
	return "waitlisted"
}

// Book handles POST /api/reservations for the signed-in customer.
func (h *Handler) Book(c *gin.Context) {
	session, _ := mw.SessionFrom(c)
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := withRetry(c.Request.Context(), h.retry, "reservation", func() (*model.Reservation, error) {
		return h.store.Book(c.Request.Context(), req.FlightInstanceID, session.RoleID)
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	h.notifier.Notify(notification.Notice{
		Kind:    notification.KindReservation,
		Role:    access.RoleCustomer,
		RoleID:  res.CustomerID,
		Subject: res.FlightInstanceID,
		Detail:  string(res.Status),
	})
	resp := reservationResponse{
		ReservationID:    res.ReservationID,
		CustomerID:       res.CustomerID,
		FlightInstanceID: res.FlightInstanceID,
		Status:           res.Status,
		Outcome:          outcome(res.Status),
	}
	h.events.Publish(events.ReservationCreated, resp)
	c.JSON(http.StatusCreated, resp)
}

// Receipt handles GET /api/reservations/:reservation_id/receipt. Customers
// only see their own reservations; others get 404.
func (h *Handler) Receipt(c *gin.Context) {
	session, _ := mw.SessionFrom(c)
	detail, err := h.store.ReservationDetail(c.Request.Context(), c.Param("reservation_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if detail.CustomerID != session.RoleID {
		respondError(c, http.StatusNotFound, "not_found", "reservation not found")
		return
	}

	pdfBytes, filename, err := receipt.Build(*detail, h.now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
