package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/services/registration"
)

// RegistrationHandler exposes the public registration form and the admin
// review endpoints.
type RegistrationHandler struct {
	Svc    registration.Service
	Logger *zap.Logger
}

func NewRegistrationHandler(svc registration.Service, logger *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{Svc: svc, Logger: logger}
}

func respondRegistrationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, registration.ErrTeamNameTaken), errors.Is(err, registration.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, registration.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("registration operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// RegisterHandler files a new team registration.
func (h *RegistrationHandler) RegisterHandler(c *gin.Context) {
	var input registration.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	reg, err := h.Svc.Register(c.Request.Context(), input)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reg)
}

// LookupHandler finds the registration for a member email, so teams can pull
// up their own record on the booking pages.
func (h *RegistrationHandler) LookupHandler(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}
	reg, err := h.Svc.LookupByMemberEmail(c.Request.Context(), email)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}
	if reg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No registration found for this email"})
		return
	}
	c.JSON(http.StatusOK, reg)
}

// BookableTeamsHandler lists the team names the booking pages accept.
func (h *RegistrationHandler) BookableTeamsHandler(c *gin.Context) {
	names, err := h.Svc.BookableTeamNames(c.Request.Context())
	if err != nil {
		respondRegistrationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": names})
}

// ListHandler lists registrations, optionally filtered by status.
func (h *RegistrationHandler) ListHandler(c *gin.Context) {
	regs, err := h.Svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondRegistrationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registrations": regs})
}

// GetHandler returns one registration.
func (h *RegistrationHandler) GetHandler(c *gin.Context) {
	reg, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRegistrationError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

type reviewRequest struct {
	Notes string `json:"notes"`
}

// ApproveHandler approves a registration and creates its competitor.
func (h *RegistrationHandler) ApproveHandler(c *gin.Context) {
	var req reviewRequest
	// Notes are optional; an empty body approves without them.
	_ = c.ShouldBindJSON(&req)
	if err := h.Svc.Approve(c.Request.Context(), c.Param("id"), req.Notes); err != nil {
		respondRegistrationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

// RejectHandler rejects a registration.
func (h *RegistrationHandler) RejectHandler(c *gin.Context) {
	var req reviewRequest
	_ = c.ShouldBindJSON(&req)
	if err := h.Svc.Reject(c.Request.Context(), c.Param("id"), req.Notes); err != nil {
		respondRegistrationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// UpdateHandler edits a registration's details.
func (h *RegistrationHandler) UpdateHandler(c *gin.Context) {
	var input registration.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.UpdateDetails(c.Request.Context(), c.Param("id"), input); err != nil {
		respondRegistrationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
