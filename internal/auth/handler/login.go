package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kevish-is-building/Startup-co/internal/auth"
	"github.com/kevish-is-building/Startup-co/internal/logger"
	"github.com/kevish-is-building/Startup-co/internal/session"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID, err := h.credentials.Authenticate(
		c.Request.Context(),
		req.Email,
		req.Password,
	)
	if err != nil {
		// Unknown email and wrong password produce the same answer.
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		logger.Error("password login failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.issueAndRespond(c, userID, "password", http.StatusOK, "logged_in")
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID, err := h.credentials.Register(
		c.Request.Context(),
		req.Email,
		req.Password,
		req.Name,
	)
	if err != nil {
		if errors.Is(err, auth.ErrAlreadyRegistered) {
			c.JSON(http.StatusConflict, gin.H{"error": "already registered"})
			return
		}
		logger.Error("registration failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.issueAndRespond(c, userID, "register", http.StatusCreated, "registered")
}

func (h *Handler) issueAndRespond(c *gin.Context, userID, method string, status int, label string) {
	issued, err := h.sessions.Issue(c.Request.Context(), userID)
	if err != nil {
		logger.Error("session issue failed", map[string]any{
			"error":   err.Error(),
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	session.SetCookie(c.Writer, issued.Token, h.cookieOptions())

	h.metrics.RecordSessionIssued(method)
	c.JSON(status, gin.H{
		"status": label,
		"session": sessionBody{
			Token:     issued.Token,
			ExpiresAt: issued.ExpiresAt,
		},
	})
}
