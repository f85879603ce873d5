// Package sessions mints and verifies the admin session cookie. Two issuance
// mechanisms exist behind one interface: a locally signed token bundle set by
// the login route, and a provider-issued session cookie set by the session
// route. Both satisfy the same cookie contract (httpOnly, Secure in
// production, SameSite Lax, path /, 5 day lifetime), so nothing downstream
// branches on which one was used.
package sessions

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/identity"
)

const (
	// BundleCookie holds the JSON token bundle from the login route.
	BundleCookie = "auth-session"
	// ProviderCookie holds the provider-signed session cookie.
	ProviderCookie = "auth-token"
)

// TokenVerifier is the slice of the identity client the session manager
// needs; satisfied by *identity.Client and by test fakes.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*identity.TokenInfo, error)
	ExchangeSessionCookie(ctx context.Context, idToken string, ttl time.Duration) (string, error)
}

// Result is what cookie verification resolves to. Verification never fails
// with an error: absent, malformed, or expired cookies all produce
// Authenticated=false.
type Result struct {
	Authenticated bool   `json:"authenticated"`
	UID           string `json:"uid,omitempty"`
	Email         string `json:"email,omitempty"`
}

// Issuer turns a successful sign-in into a session cookie on the response.
type Issuer interface {
	Issue(ctx context.Context, w http.ResponseWriter, creds *identity.Credentials) error
}

// Manager owns the session cookies: issuance, verification, and sign-out.
type Manager struct {
	verifier TokenVerifier
	secret   []byte
	ttl      time.Duration
	secure   bool
}

// NewManager builds a session manager. secret signs the bundle token and is
// required; secure toggles the Secure cookie attribute (on in production).
func NewManager(verifier TokenVerifier, secret string, ttl time.Duration, secure bool) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("session manager not configured: SESSION_SECRET is required")
	}
	if ttl <= 0 {
		ttl = 5 * 24 * time.Hour
	}
	return &Manager{verifier: verifier, secret: []byte(secret), ttl: ttl, secure: secure}, nil
}

// TTL returns the configured cookie lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// bundle is the JSON payload of the auth-session cookie: a locally signed
// token plus the provider refresh token, base64url-encoded into the cookie.
type bundle struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	UID          string `json:"uid"`
	Email        string `json:"email"`
}

type bundleIssuer struct{ m *Manager }

func (b bundleIssuer) Issue(_ context.Context, w http.ResponseWriter, creds *identity.Credentials) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   creds.UID,
		"email": creds.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(b.m.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.m.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}
	payload, err := json.Marshal(bundle{
		Token:        token,
		RefreshToken: creds.RefreshToken,
		UID:          creds.UID,
		Email:        creds.Email,
	})
	if err != nil {
		return err
	}
	b.m.setCookie(w, BundleCookie, base64.RawURLEncoding.EncodeToString(payload))
	return nil
}

type providerIssuer struct{ m *Manager }

func (p providerIssuer) Issue(ctx context.Context, w http.ResponseWriter, creds *identity.Credentials) error {
	if p.m.verifier == nil {
		return fmt.Errorf("identity service not configured")
	}
	cookie, err := p.m.verifier.ExchangeSessionCookie(ctx, creds.IDToken, p.m.ttl)
	if err != nil {
		return err
	}
	p.m.setCookie(w, ProviderCookie, cookie)
	return nil
}

// BundleIssuer returns the issuer used by the login route.
func (m *Manager) BundleIssuer() Issuer { return bundleIssuer{m} }

// ProviderIssuer returns the issuer used by the session route.
func (m *Manager) ProviderIssuer() Issuer { return providerIssuer{m} }

// Verify resolves the request's session cookie to a Result. The bundle
// cookie is checked first (local signature + expiry), then the provider
// cookie (verified against the identity service).
func (m *Manager) Verify(ctx context.Context, r *http.Request) Result {
	if c, err := r.Cookie(BundleCookie); err == nil && c.Value != "" {
		if res, ok := m.verifyBundle(c.Value); ok {
			return res
		}
	}
	if c, err := r.Cookie(ProviderCookie); err == nil && c.Value != "" && m.verifier != nil {
		info, err := m.verifier.Verify(ctx, c.Value)
		if err == nil {
			return Result{Authenticated: true, UID: info.UID, Email: info.Email}
		}
	}
	return Result{Authenticated: false}
}

func (m *Manager) verifyBundle(value string) (Result, bool) {
	payload, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Result{}, false
	}
	var b bundle
	if err := json.Unmarshal(payload, &b); err != nil {
		return Result{}, false
	}
	tok, err := jwt.Parse(b.Token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return Result{}, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Result{}, false
	}
	uid, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if uid == "" {
		return Result{}, false
	}
	return Result{Authenticated: true, UID: uid, Email: email}, true
}

// Clear deletes both session cookies. Idempotent: succeeds whether or not a
// cookie was present.
func (m *Manager) Clear(w http.ResponseWriter) {
	for _, name := range []string{BundleCookie, ProviderCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}

func (m *Manager) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})
}
