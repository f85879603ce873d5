package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/identity"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/sessions"
	"github.com/sjmedialabs/vbrlandscap-sub001/pkg/logger"
)

// IdentityService is the slice of the identity client the auth routes use;
// satisfied by *identity.Client and by test fakes.
type IdentityService interface {
	SignIn(ctx context.Context, email, password string) (*identity.Credentials, error)
	Verify(ctx context.Context, token string) (*identity.TokenInfo, error)
}

// AuthHandler owns the /api/auth routes: login, session issuance, sign-out,
// and cookie verification.
type AuthHandler struct {
	identity IdentityService
	sessions *sessions.Manager
}

func NewAuthHandler(id IdentityService, mgr *sessions.Manager) *AuthHandler {
	return &AuthHandler{identity: id, sessions: mgr}
}

// Register routes under /api/auth.
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/login", h.Login)
	a.POST("/session", h.CreateSession)
	a.DELETE("/session", h.DeleteSession)
	a.GET("/verify", h.Verify)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges an email/password pair for a session cookie holding a
// locally signed token bundle.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, validationError("email and password are required"))
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respondError(c, validationError("email and password are required"))
		return
	}
	if h.identity == nil {
		respondError(c, configurationError("authentication service not configured"))
		return
	}

	creds, err := h.identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			respondError(c, authError("invalid credentials"))
			return
		}
		logger.Errorf("auth: sign-in for %s failed: %v", req.Email, err)
		respondError(c, &APIError{Status: http.StatusInternalServerError, Message: "authentication failed"})
		return
	}
	if err := h.sessions.BundleIssuer().Issue(c.Request.Context(), c.Writer, creds); err != nil {
		logger.Errorf("auth: session issue failed: %v", err)
		respondError(c, &APIError{Status: http.StatusInternalServerError, Message: "authentication failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    gin.H{"email": creds.Email, "uid": creds.UID},
	})
}

type sessionRequest struct {
	IDToken string `json:"idToken"`
}

// CreateSession trades a fresh id token for a provider-issued session cookie.
// Used by entry points that already authenticated against the provider
// directly and only need the cookie minted.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
		respondError(c, authError("invalid token"))
		return
	}
	if h.identity == nil {
		respondError(c, configurationError("authentication service not configured"))
		return
	}

	info, err := h.identity.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, authError("invalid token"))
		return
	}
	creds := &identity.Credentials{IDToken: req.IDToken, UID: info.UID, Email: info.Email}
	if err := h.sessions.ProviderIssuer().Issue(c.Request.Context(), c.Writer, creds); err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			respondError(c, authError("invalid token"))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteSession signs the caller out. Idempotent: clearing succeeds whether
// or not a cookie was present.
func (h *AuthHandler) DeleteSession(c *gin.Context) {
	h.sessions.Clear(c.Writer)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Verify resolves the request's session cookie. Absent or invalid cookies
// answer 401 with authenticated=false rather than an error body.
func (h *AuthHandler) Verify(c *gin.Context) {
	res := h.sessions.Verify(c.Request.Context(), c.Request)
	if !res.Authenticated {
		c.JSON(http.StatusUnauthorized, sessions.Result{Authenticated: false})
		return
	}
	c.JSON(http.StatusOK, res)
}
