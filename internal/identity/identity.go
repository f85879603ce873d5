// Package identity talks to the remote identity service: password-grant
// sign-in, id-token verification, and the exchange of an id token for a
// provider-issued session cookie. The provider is opaque; nothing here
// persists users locally.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/config"
	"github.com/sjmedialabs/vbrlandscap-sub001/pkg/logger"
)

var (
	// ErrInvalidCredentials covers every provider rejection of an
	// email/password pair; the individual provider codes are normalized away.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken means a presented id token failed verification
	// (bad signature, expired, or revoked).
	ErrInvalidToken = errors.New("invalid token")
)

// Credentials is the provider's response to a successful password grant.
type Credentials struct {
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
	UID          string
	Email        string
}

// TokenInfo is the result of verifying an id token or session cookie.
type TokenInfo struct {
	UID   string
	Email string
}

// Client is the HTTP client for the identity service.
type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	verifier *oidc.IDTokenVerifier
}

// New builds an identity client. BaseURL and APIKey are required; a missing
// value is a configuration error, never a silent no-op. When an OIDC issuer
// is configured, id tokens are verified locally against the issuer's keys
// instead of calling the provider's lookup endpoint.
func New(ctx context.Context, cfg config.IdentityConfig) (*Client, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("identity service not configured: IDENTITY_BASE_URL and IDENTITY_API_KEY are required")
	}
	c := &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	if cfg.Issuer != "" {
		provider, err := oidc.NewProvider(ctx, cfg.Issuer)
		if err != nil {
			logger.Warnf("identity: OIDC issuer discovery failed, falling back to lookup endpoint: %v", err)
		} else {
			c.verifier = provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})
		}
	}
	return c, nil
}

// invalidCredentialCodes are the provider error codes that all mean the same
// thing to a caller: the email/password pair was rejected.
var invalidCredentialCodes = map[string]bool{
	"EMAIL_NOT_FOUND":           true,
	"INVALID_PASSWORD":          true,
	"INVALID_LOGIN_CREDENTIALS": true,
	"INVALID_EMAIL":             true,
	"USER_DISABLED":             true,
}

type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges an email/password pair for a short-lived id token and a
// refresh token via the provider's password-grant endpoint.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	var resp struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
	}
	if err := c.post(ctx, "/v1/accounts:signInWithPassword", body, &resp); err != nil {
		var pe *callError
		if errors.As(err, &pe) && invalidCredentialCodes[pe.code] {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	expires := time.Hour
	if d, err := time.ParseDuration(resp.ExpiresIn + "s"); err == nil && d > 0 {
		expires = d
	}
	return &Credentials{
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    expires,
		UID:          resp.LocalID,
		Email:        resp.Email,
	}, nil
}

// Verify checks an id token and returns the identity it asserts. Uses the
// local OIDC verifier when configured, the provider lookup endpoint
// otherwise. Invalid, expired, or revoked tokens map to ErrInvalidToken.
func (c *Client) Verify(ctx context.Context, idToken string) (*TokenInfo, error) {
	if c.verifier != nil {
		tok, err := c.verifier.Verify(ctx, idToken)
		if err != nil {
			return nil, ErrInvalidToken
		}
		var claims struct {
			Email string `json:"email"`
		}
		if err := tok.Claims(&claims); err != nil {
			return nil, ErrInvalidToken
		}
		return &TokenInfo{UID: tok.Subject, Email: claims.Email}, nil
	}

	var resp struct {
		Users []struct {
			LocalID string `json:"localId"`
			Email   string `json:"email"`
		} `json:"users"`
	}
	if err := c.post(ctx, "/v1/accounts:lookup", map[string]interface{}{"idToken": idToken}, &resp); err != nil {
		var pe *callError
		if errors.As(err, &pe) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if len(resp.Users) == 0 {
		return nil, ErrInvalidToken
	}
	return &TokenInfo{UID: resp.Users[0].LocalID, Email: resp.Users[0].Email}, nil
}

// ExchangeSessionCookie trades a fresh id token for a provider-signed
// session cookie with its own absolute lifetime.
func (c *Client) ExchangeSessionCookie(ctx context.Context, idToken string, ttl time.Duration) (string, error) {
	body := map[string]interface{}{
		"idToken":       idToken,
		"validDuration": int64(ttl.Seconds()),
	}
	var resp struct {
		SessionCookie string `json:"sessionCookie"`
	}
	if err := c.post(ctx, "/v1/sessionCookie", body, &resp); err != nil {
		var pe *callError
		if errors.As(err, &pe) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	if resp.SessionCookie == "" {
		return "", ErrInvalidToken
	}
	return resp.SessionCookie, nil
}

// callError is a non-2xx provider response with its error code extracted.
type callError struct {
	status int
	code   string
}

func (e *callError) Error() string {
	return fmt.Sprintf("identity provider returned %d: %s", e.status, e.code)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	url := c.baseURL + path + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		var pe providerError
		_ = json.Unmarshal(b, &pe)
		logger.Debugf("identity: %s returned %d (%s)", path, resp.StatusCode, pe.Error.Message)
		return &callError{status: resp.StatusCode, code: pe.Error.Message}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
