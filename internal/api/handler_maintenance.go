package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/events"
	"airline-ops-backend/internal/model"
	"airline-ops-backend/internal/mw"
	"airline-ops-backend/internal/notification"
	"airline-ops-backend/internal/store"
)

type maintenanceRequest struct {
	PlaneID    string `json:"plane_id" binding:"required"`
	RepairCode string `json:"repair_code" binding:"required"`
}

// SubmitRequest handles POST /api/maintenance-requests for the signed-in pilot.
func (h *Handler) SubmitRequest(c *gin.Context) {
	session, _ := mw.SessionFrom(c)
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	mr, err := withRetry(c.Request.Context(), h.retry, "maintenance request", func() (*model.MaintenanceRequest, error) {
		return h.store.SubmitRequest(c.Request.Context(), store.RequestInput{
			PlaneID:    req.PlaneID,
			RepairCode: req.RepairCode,
			PilotID:    session.RoleID,
		})
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	h.notifier.Notify(notification.Notice{
		Kind:    notification.KindMaintenanceRequest,
		Role:    access.RoleTechnician,
		Subject: mr.PlaneID,
		Detail:  mr.RepairCode,
	})
	h.events.Publish(events.MaintenanceRequestCreated, mr)
	c.JSON(http.StatusCreated, mr)
}

// LogRepair handles POST /api/repairs for the signed-in technician.
func (h *Handler) LogRepair(c *gin.Context) {
	session, _ := mw.SessionFrom(c)
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	repair, err := withRetry(c.Request.Context(), h.retry, "repair", func() (*model.Repair, error) {
		return h.store.LogRepair(c.Request.Context(), store.RepairInput{
			PlaneID:      req.PlaneID,
			RepairCode:   req.RepairCode,
			TechnicianID: session.RoleID,
		})
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	h.events.Publish(events.RepairLogged, repair)
	c.JSON(http.StatusCreated, repair)
}

// RepairHistory handles GET /api/planes/:plane_id/repairs?from=&to=.
func (h *Handler) RepairHistory(c *gin.Context) {
	repairs, err := h.store.RepairHistory(c.Request.Context(), c.Param("plane_id"), c.Query("from"), c.Query("to"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, repairs)
}

// PilotRequests handles GET /api/pilots/:pilot_id/requests.
func (h *Handler) PilotRequests(c *gin.Context) {
	requests, err := h.store.PilotRequests(c.Request.Context(), c.Param("pilot_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}
