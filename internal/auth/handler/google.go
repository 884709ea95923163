package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kevish-is-building/Startup-co/internal/auth"
	"github.com/kevish-is-building/Startup-co/internal/logger"
	"github.com/kevish-is-building/Startup-co/internal/session"
)

// Fixed vocabulary of user-facing OAuth error codes carried on the
// login redirect.
const (
	errGoogleAuthFailed    = "google_auth_failed"
	errGoogleConfigMissing = "google_config_missing"
	errNoEmail             = "no_email"
)

// loginErrorRedirect sends the browser back to the login surface.
// OAuth failures never surface as JSON: the caller is a browser mid
// navigation, not an API client.
func loginErrorRedirect(c *gin.Context, code string) {
	c.Redirect(http.StatusFound, "/login?error="+code)
}

func (h *Handler) googleLogin(c *gin.Context) {
	p, err := h.providers.Get("google")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Google OAuth not configured",
		})
		return
	}

	state := generateState(c)
	c.Redirect(http.StatusFound, p.AuthCodeURL(state))
}

func (h *Handler) googleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("google callback returned error", map[string]any{
			"error": errParam,
			"desc":  c.Query("error_description"),
		})
		loginErrorRedirect(c, errGoogleAuthFailed)
		return
	}

	code := c.Query("code")
	if code == "" {
		loginErrorRedirect(c, errGoogleAuthFailed)
		return
	}

	p, err := h.providers.Get("google")
	if err != nil {
		loginErrorRedirect(c, errGoogleConfigMissing)
		return
	}

	if !validateState(c) {
		logger.Warn("google callback state mismatch", map[string]any{
			"ip": c.ClientIP(),
		})
		loginErrorRedirect(c, errGoogleAuthFailed)
		return
	}

	start := time.Now()
	identity, err := p.ExchangeCode(c.Request.Context(), code)
	h.metrics.RecordOAuthExchange(time.Since(start))
	if err != nil {
		logger.Error("google code exchange failed", map[string]any{
			"error": err.Error(),
		})
		loginErrorRedirect(c, errGoogleAuthFailed)
		return
	}

	issued, u, err := h.linker.Login(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, auth.ErrNoEmailFromProvider) {
			loginErrorRedirect(c, errNoEmail)
			return
		}
		logger.Error("identity linking failed", map[string]any{
			"error": err.Error(),
		})
		loginErrorRedirect(c, errGoogleAuthFailed)
		return
	}

	session.SetCookie(c.Writer, issued.Token, h.cookieOptions())

	logger.Info("google login succeeded", map[string]any{
		"user_id": u.ID,
		"ip":      c.ClientIP(),
	})
	h.metrics.RecordSessionIssued("oauth_google")

	c.Redirect(http.StatusFound, "/auth/callback")
}
