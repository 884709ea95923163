package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kevish-is-building/Startup-co/internal/auth"
	"github.com/kevish-is-building/Startup-co/internal/logger"
	"github.com/kevish-is-building/Startup-co/internal/session"
)

type sessionBody struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// sessionCheck reports the current session. Absent or dead credentials
// are a normal answer ({"user": null}), never an error status; only a
// store fault is a 500.
func (h *Handler) sessionCheck(c *gin.Context) {
	tok := session.TokenFromRequest(c.Request)
	if tok == "" {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	sess, err := h.sessions.Validate(c.Request.Context(), tok)
	if err != nil {
		logger.Error("session check failed", map[string]any{
			"error": err.Error(),
		})
		h.metrics.RecordSessionCheck("error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if sess == nil {
		h.metrics.RecordSessionCheck("invalid")
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	// Keep the cookie fresh on the client. The session row's expiry is
	// untouched: the token still dies at its original absolute expiry.
	session.SetCookie(c.Writer, sess.Token, h.cookieOptions())

	h.metrics.RecordSessionCheck("valid")
	c.JSON(http.StatusOK, gin.H{
		"user": profileOf(sess.User),
		"session": sessionBody{
			Token:     sess.Token,
			ExpiresAt: sess.ExpiresAt,
		},
	})
}

func (h *Handler) logout(c *gin.Context) {
	tok := session.TokenFromRequest(c.Request)
	if tok == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	err := h.sessions.RevokeByToken(c.Request.Context(), tok)
	if err == auth.ErrInvalidToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	if err != nil {
		logger.Error("logout failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	session.ClearCookie(c.Writer, h.cookieOptions())

	h.metrics.RecordLogout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
