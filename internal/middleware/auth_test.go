// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	subject string
	err     error
}

func (f *fakeVerifier) VerifySessionToken(
	context.Context,
	string,
) (string, error) {
	return f.subject, f.err
}

type fakeGate struct {
	allowed bool
	role    string
	err     error
}

func (f *fakeGate) VerifyAdmin(
	context.Context,
	string,
) (bool, string, error) {
	return f.allowed, f.role, f.err
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUserID(r.Context()) + "|" + GetAdminRole(r.Context())))
	})
}

func TestAuthenticatorMissingToken(t *testing.T) {
	handler := Authenticator(&fakeVerifier{subject: "u1"})(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	handler := Authenticator(&fakeVerifier{err: errors.New("expired")})(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorSetsUserID(t *testing.T) {
	handler := Authenticator(&fakeVerifier{subject: "u1"})(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1|", rec.Body.String())
}

func TestRequireAdminDeniesNonAdmin(t *testing.T) {
	auth := Authenticator(&fakeVerifier{subject: "u1"})
	gate := RequireAdmin(&fakeGate{allowed: false})
	handler := auth(gate(echoUser()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminDeniesOnLookupError(t *testing.T) {
	auth := Authenticator(&fakeVerifier{subject: "u1"})
	gate := RequireAdmin(&fakeGate{allowed: true, err: errors.New("db down")})
	handler := auth(gate(echoUser()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code,
		"gate errors must deny, not pass through")
}

func TestRequireAdminSetsRole(t *testing.T) {
	auth := Authenticator(&fakeVerifier{subject: "u1"})
	gate := RequireAdmin(&fakeGate{allowed: true, role: "super_admin"})
	handler := auth(gate(echoUser()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1|super_admin", rec.Body.String())
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc123", "abc123"},
		{"case insensitive scheme", "bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(req))
		})
	}
}
