package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// bridge adapts a net/http middleware to Gin so the auth decisions stay
// framework-agnostic.
func bridge(wrap func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		wrap(next).ServeHTTP(c.Writer, c.Request)

		// If the middleware already wrote a response, stop the Gin chain.
		if c.Writer.Written() {
			c.Abort()
		}
	}
}

// GinRequireAuth adapts AuthMiddleware to Gin.
func GinRequireAuth(auth *AuthMiddleware) gin.HandlerFunc {
	return bridge(auth.RequireAuth)
}

// GinGate adapts the request gate to Gin. Register it on the router
// itself so it runs before route handling.
func GinGate(gate *Gate) gin.HandlerFunc {
	return bridge(gate.Handler)
}
