package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/identity"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/sessions"
)

// fakeIdentity satisfies both IdentityService and sessions.TokenVerifier.
type fakeIdentity struct {
	password string
	uid      string
	email    string
}

func (f *fakeIdentity) SignIn(_ context.Context, email, password string) (*identity.Credentials, error) {
	if password != f.password {
		return nil, identity.ErrInvalidCredentials
	}
	return &identity.Credentials{IDToken: "id-token", RefreshToken: "refresh", UID: f.uid, Email: email}, nil
}

func (f *fakeIdentity) Verify(_ context.Context, token string) (*identity.TokenInfo, error) {
	if token != "id-token" {
		return nil, identity.ErrInvalidToken
	}
	return &identity.TokenInfo{UID: f.uid, Email: f.email}, nil
}

func (f *fakeIdentity) ExchangeSessionCookie(_ context.Context, idToken string, _ time.Duration) (string, error) {
	if idToken != "id-token" {
		return "", identity.ErrInvalidToken
	}
	return "provider-cookie", nil
}

func newAuthRouter(t *testing.T) (*gin.Engine, *fakeIdentity) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	id := &fakeIdentity{password: "hunter2", uid: "uid-1", email: "admin@example.com"}
	mgr, err := sessions.NewManager(id, "test-secret", time.Hour, false)
	require.NoError(t, err)
	g := gin.New()
	NewAuthHandler(id, mgr).Register(g.Group("/api"))
	return g, id
}

func TestLoginMissingFields(t *testing.T) {
	g, _ := newAuthRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"a@b.c"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "required")
}

func TestLoginInvalidCredentials(t *testing.T) {
	g, _ := newAuthRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestLoginSetsSessionCookie(t *testing.T) {
	g, _ := newAuthRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"admin@example.com","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":"uid-1"`)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == sessions.BundleCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login must set the session cookie")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
}

func TestVerifyWithoutCookie(t *testing.T) {
	g, _ := newAuthRouter(t)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/api/auth/verify", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestLoginThenVerify(t *testing.T) {
	g, _ := newAuthRouter(t)
	login := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"admin@example.com","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(login, req)
	require.Equal(t, http.StatusOK, login.Code)

	verify := httptest.NewRequest("GET", "/api/auth/verify", nil)
	for _, c := range login.Result().Cookies() {
		verify.AddCookie(c)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, verify)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), `"uid":"uid-1"`)
}

func TestSignOutThenVerify(t *testing.T) {
	g, _ := newAuthRouter(t)
	login := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"admin@example.com","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(login, req)
	require.Equal(t, http.StatusOK, login.Code)

	out := httptest.NewRecorder()
	g.ServeHTTP(out, httptest.NewRequest("DELETE", "/api/auth/session", nil))
	require.Equal(t, http.StatusOK, out.Code)

	// the cleared cookie replaces the issued one
	verify := httptest.NewRequest("GET", "/api/auth/verify", nil)
	for _, c := range out.Result().Cookies() {
		verify.AddCookie(c)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, verify)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestCreateSessionInvalidToken(t *testing.T) {
	g, _ := newAuthRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/session", strings.NewReader(`{"idToken":"bogus"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestCreateSessionSetsProviderCookie(t *testing.T) {
	g, _ := newAuthRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/session", strings.NewReader(`{"idToken":"id-token"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == sessions.ProviderCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, "provider-cookie", cookie.Value)
}
