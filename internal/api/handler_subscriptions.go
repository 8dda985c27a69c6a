package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"airline-ops-backend/internal/model"
	"airline-ops-backend/internal/mw"
)

type putSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256DH   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

// PutSubscription creates or replaces the caller's push subscription.
func (h *Handler) PutSubscription(c *gin.Context) {
	session, _ := mw.SessionFrom(c)
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "invalid request")
		return
	}

	subscription := model.PushSubscription{
		Endpoint: req.Endpoint,
		P256DH:   req.P256DH,
		Auth:     req.Auth,
		UserID:   session.UserID,
		Role:     session.Role,
		RoleID:   session.RoleID,
	}
	if err := h.store.SaveSubscription(c.Request.Context(), &subscription); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription removes the caller's subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	session, _ := mw.SessionFrom(c)
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "invalid request")
		return
	}

	if err := h.store.DeleteSubscription(c.Request.Context(), req.Endpoint, session.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// rawQueryParam returns the undecoded value of key. Push endpoints carry
// percent-encoded segments that must be matched as stored.
func rawQueryParam(rawQuery, key string) (string, bool) {
	for _, kv := range strings.Split(rawQuery, "&") {
		if strings.HasPrefix(kv, key+"=") {
			return kv[len(key)+1:], true
		}
	}
	return "", false
}

// GetSubscription reports whether the caller has a subscription for an endpoint.
func (h *Handler) GetSubscription(c *gin.Context) {
	session, _ := mw.SessionFrom(c)
	raw, ok := rawQueryParam(c.Request.URL.RawQuery, "endpoint")
	if !ok || raw == "" {
		respondError(c, http.StatusBadRequest, "invalid_request", "endpoint is required")
		return
	}

	sub, err := h.store.Subscription(c.Request.Context(), raw, session.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"endpoint": sub.Endpoint,
		"role":     sub.Role,
		"role_id":  sub.RoleID,
	})
}
