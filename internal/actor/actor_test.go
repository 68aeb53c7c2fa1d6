package actor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pins/internal/testutil"
)

var testSecret = []byte("actor-middleware-test-secret-32b!")

func newTestResolver(t *testing.T) (*Resolver, *Verifier) {
	t.Helper()
	verifier, err := NewVerifier(testSecret)
	require.NoError(t, err)
	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	return NewResolver(store, verifier, testutil.NewTestLogger(t)), verifier
}

// captureActor runs the middleware and returns the actor seen by the handler.
func captureActor(t *testing.T, res *Resolver, req *http.Request) *Actor {
	t.Helper()
	var got *Actor
	handler := res.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	ctx := WithActor(context.Background(), &Actor{ID: "alex"})
	require.NotNil(t, FromContext(ctx))
	assert.Equal(t, "alex", FromContext(ctx).ID)

	var anon *Actor
	assert.Nil(t, anon.IDPtr())
	assert.Equal(t, "alex", *FromContext(ctx).IDPtr())
}

// =============================================================================
// Tokens
// =============================================================================

func TestVerifier_RoundTrip(t *testing.T) {
	verifier, err := NewVerifier(testSecret)
	require.NoError(t, err)

	token, err := verifier.Generate("alex", time.Hour)
	require.NoError(t, err)

	a, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alex", a.ID)
}

func TestVerifier_Rejects(t *testing.T) {
	verifier, err := NewVerifier(testSecret)
	require.NoError(t, err)
	other, err := NewVerifier([]byte("a-completely-different-secret-32b"))
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alex",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString(testSecret)
	require.NoError(t, err)

	foreign, err := other.Generate("alex", time.Hour)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"iat": time.Now().Unix()}).SignedString(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"garbage", "not-a-token", ErrInvalidToken},
		{"wrong secret", foreign, ErrInvalidToken},
		{"expired", expired, ErrExpiredToken},
		{"missing subject", noSubject, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewVerifier_ShortSecret(t *testing.T) {
	_, err := NewVerifier([]byte("short"))
	assert.ErrorIs(t, err, ErrShortSecret)
}

// =============================================================================
// Middleware
// =============================================================================

func TestMiddleware_Anonymous(t *testing.T) {
	res, _ := newTestResolver(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, captureActor(t, res, req))
}

func TestMiddleware_BearerToken(t *testing.T) {
	res, verifier := newTestResolver(t)
	token, err := verifier.Generate("root", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	got := captureActor(t, res, req)
	require.NotNil(t, got)
	assert.Equal(t, "root", got.ID)
}

func TestMiddleware_BadBearerIsAnonymous(t *testing.T) {
	res, _ := newTestResolver(t)

	for _, header := range []string{"Bearer ", "Bearer nope", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		assert.Nil(t, captureActor(t, res, req), header)
	}
}

func TestLoginHandler_SetsSession(t *testing.T) {
	res, verifier := newTestResolver(t)
	token, err := verifier.Generate("alex", time.Hour)
	require.NoError(t, err)

	req := loginRequest(url.Values{"token": {token}, "next": {"/-/pins/"}})
	rec := httptest.NewRecorder()
	res.LoginHandler("/").ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/-/pins/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	follow := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		follow.AddCookie(c)
	}
	got := captureActor(t, res, follow)
	require.NotNil(t, got)
	assert.Equal(t, "alex", got.ID)
}

func TestLoginHandler_RejectsBadToken(t *testing.T) {
	res, _ := newTestResolver(t)

	req := loginRequest(url.Values{"token": {"bogus"}})
	rec := httptest.NewRecorder()
	res.LoginHandler("/").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginHandler_IgnoresQueryToken(t *testing.T) {
	res, verifier := newTestResolver(t)
	token, err := verifier.Generate("alex", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login?token="+token, nil)
	rec := httptest.NewRecorder()
	res.LoginHandler("/").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func loginRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestRedirectTarget(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/-/pins/", "/-/pins/"},
		{"", "/home"},
		{"//evil.example", "/home"},
		{"https://evil.example", "/home"},
		{"/\\evil.example", "/home"},
	}

	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/logout", nil)
			q := req.URL.Query()
			q.Set("next", tt.next)
			req.URL.RawQuery = q.Encode()
			assert.Equal(t, tt.want, redirectTarget(req, "/home"))
		})
	}
}
