package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/sessions"
)

// SessionKey is the gin context key holding the verified session result.
const SessionKey = "session"

// SessionVerifier is the minimal interface the middleware depends on.
type SessionVerifier interface {
	Verify(ctx context.Context, r *http.Request) sessions.Result
}

// RequireSession guards admin routes: the request's session cookie must
// verify, otherwise the request is rejected with 401. The verified result is
// stored on the context for handlers that need the editor's identity.
func RequireSession(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := verifier.Verify(c.Request.Context(), c.Request)
		if !res.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(SessionKey, res)
		c.Next()
	}
}

// SessionFromContext returns the verified session set by RequireSession, or
// an unauthenticated result when the middleware did not run.
func SessionFromContext(c *gin.Context) sessions.Result {
	if v, ok := c.Get(SessionKey); ok {
		if res, ok := v.(sessions.Result); ok {
			return res
		}
	}
	return sessions.Result{}
}
