package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Brunilda90/judging26-app/services/user"
)

// AuthHandler exposes login and judge account administration.
type AuthHandler struct {
	Svc    user.Service
	Logger *zap.Logger
}

func NewAuthHandler(svc user.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// LoginHandler checks credentials and issues a session token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	session, err := h.Svc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		getLogger(c).Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// CreateJudgeAccountHandler creates a judge plus its login account.
func (h *AuthHandler) CreateJudgeAccountHandler(c *gin.Context) {
	var input user.JudgeAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	judge, err := h.Svc.CreateJudgeAccount(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		getLogger(c).Error("failed to create judge account", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, judge)
}

// UpdateJudgeAccountHandler updates a judge and its login account.
func (h *AuthHandler) UpdateJudgeAccountHandler(c *gin.Context) {
	var input user.JudgeAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.UpdateJudgeAccount(c.Request.Context(), c.Param("judgeId"), input); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		getLogger(c).Error("failed to update judge account", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteJudgeAccountHandler removes a judge, its scores and its account.
func (h *AuthHandler) DeleteJudgeAccountHandler(c *gin.Context) {
	if err := h.Svc.DeleteJudgeAccount(c.Request.Context(), c.Param("judgeId")); err != nil {
		getLogger(c).Error("failed to delete judge account", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
