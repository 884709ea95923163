package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kevish-is-building/Startup-co/internal/auth"
	"github.com/kevish-is-building/Startup-co/internal/auth/provider"
	"github.com/kevish-is-building/Startup-co/internal/metrics"
	"github.com/kevish-is-building/Startup-co/internal/session"
	"github.com/kevish-is-building/Startup-co/internal/user"
)

// IdentityLinker maps a verified external identity to a local user and
// mints a session for it.
type IdentityLinker interface {
	Login(ctx context.Context, identity *auth.Identity) (*session.Issued, *user.User, error)
}

// CredentialService is the password path: the auth core treats it as an
// external collaborator that yields a user id.
type CredentialService interface {
	Register(ctx context.Context, email, password, name string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
}

type Handler struct {
	providers   *provider.Registry
	sessions    *session.Service
	linker      IdentityLinker
	credentials CredentialService
	metrics     *metrics.Collector

	secureCookies bool
}

func NewHandler(
	registry *provider.Registry,
	sessions *session.Service,
	linker IdentityLinker,
	credentials CredentialService,
	collector *metrics.Collector,
	secureCookies bool,
) *Handler {
	return &Handler{
		providers:     registry,
		sessions:      sessions,
		linker:        linker,
		credentials:   credentials,
		metrics:       collector,
		secureCookies: secureCookies,
	}
}

// RegisterRoutes mounts the auth endpoints. credentialLimit guards the
// routes that accept or mint credentials; session check and logout stay
// unthrottled since authenticated clients poll them.
func (h *Handler) RegisterRoutes(r *gin.Engine, credentialLimit gin.HandlerFunc) {
	r.GET("/api/auth/session", h.sessionCheck)
	r.POST("/api/auth/logout", h.logout)
	r.GET("/api/auth/google", credentialLimit, h.googleLogin)
	r.GET("/api/auth/google/callback", credentialLimit, h.googleCallback)
	r.POST("/api/auth/register", credentialLimit, h.register)
	r.POST("/api/auth/login", credentialLimit, h.login)
}

func (h *Handler) cookieOptions() session.CookieOptions {
	return session.CookieOptions{
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// userProfile is the wire shape of a user across all auth endpoints.
type userProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Image         string `json:"image,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

func profileOf(u user.User) userProfile {
	return userProfile{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Image:         u.Image,
		EmailVerified: u.EmailVerified,
	}
}
