package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/auth"
	"airline-ops-backend/internal/domain"
	"airline-ops-backend/internal/model"
	"airline-ops-backend/internal/parse"
	"airline-ops-backend/internal/store"
)

type createAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type accountResponse struct {
	UserID   int64       `json:"user_id"`
	Username string      `json:"username"`
	Role     access.Role `json:"role"`
	RoleID   string      `json:"role_id,omitempty"`
}

// CreateAccount registers a user and allocates the role-scoped ID.
func (h *Handler) CreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	role, err := parse.Role(req.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := parse.Password(req.Password); err != nil {
		RespondDomainError(c, err)
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	user, err := withRetry(c.Request.Context(), h.retry, "account", func() (*model.User, error) {
		return h.store.CreateUser(c.Request.Context(), store.NewUser{Username: req.Username, PasswordHash: hash, Role: role})
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, accountResponse{UserID: user.UserID, Username: user.Username, Role: user.Role, RoleID: user.RoleID})
}

type createSessionRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateSession checks credentials and returns a signed session token.
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.store.UserByUsername(c.Request.Context(), req.Username)
	if err != nil && !domain.IsNotFound(err) && !domain.IsValidation(err) {
		RespondDomainError(c, err)
		return
	}
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
		return
	}

	session := access.Session{UserID: user.UserID, Role: user.Role, RoleID: user.RoleID}
	token, exp, err := h.issuer.Issue(session)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp.UTC(),
		"session":    session,
		"operations": access.Operations(user.Role),
	})
}
