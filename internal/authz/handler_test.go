// AngelaMos | 2026
// handler_test.go

package authz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deenhub-app/admin-backend/internal/config"
	"github.com/deenhub-app/admin-backend/internal/core"
	"github.com/deenhub-app/admin-backend/internal/identity"
)

type fakeRepo struct {
	admins map[string]*AdminUser
	err    error
}

func (f *fakeRepo) FindActiveByUserID(
	_ context.Context,
	userID string,
) (*AdminUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	if admin, ok := f.admins[userID]; ok {
		return admin, nil
	}
	return nil, core.ErrNotFound
}

type fakeProvider struct {
	session     *identity.Session
	exchangeErr error
	signedOut   []string
}

func (f *fakeProvider) CreateUser(
	context.Context,
	string,
	string,
) (*identity.AuthUser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) DeleteUser(context.Context, string) error {
	return errors.New("not implemented")
}

func (f *fakeProvider) ExchangeCode(
	context.Context,
	string,
) (*identity.Session, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.session, nil
}

func (f *fakeProvider) SignOut(_ context.Context, accessToken string) error {
	f.signedOut = append(f.signedOut, accessToken)
	return nil
}

var testAppConfig = config.AppConfig{
	DashboardURL:    "/dashboard",
	UnauthorizedURL: "/unauthorized",
	LoginURL:        "/login",
}

func newTestRouter(repo Repository, provider identity.Provider) chi.Router {
	svc := NewService(repo, provider)
	handler := NewHandler(svc, testAppConfig)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postVerifyAdmin(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(
		http.MethodPost,
		"/auth/verify-admin",
		strings.NewReader(body),
	)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestVerifyAdminAllowed(t *testing.T) {
	repo := &fakeRepo{admins: map[string]*AdminUser{
		"u1": {ID: "a1", UserID: "u1", Role: RoleSuperAdmin, IsActive: true},
	}}
	router := newTestRouter(repo, &fakeProvider{})

	rec := postVerifyAdmin(t, router, `{"userId":"u1"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp VerifyAdminResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsAdmin)
	require.NotNil(t, resp.AdminUser)
	assert.Equal(t, RoleSuperAdmin, resp.AdminUser.Role)
}

func TestVerifyAdminDeniedIsStill200(t *testing.T) {
	router := newTestRouter(&fakeRepo{}, &fakeProvider{})

	rec := postVerifyAdmin(t, router, `{"userId":"nobody"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp VerifyAdminResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsAdmin)
	assert.Nil(t, resp.AdminUser)
}

func TestVerifyAdminLookupErrorDenies(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	router := newTestRouter(repo, &fakeProvider{})

	rec := postVerifyAdmin(t, router, `{"userId":"u1"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp VerifyAdminResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsAdmin, "lookup failures deny, never error out")
}

func TestVerifyAdminMissingUserID(t *testing.T) {
	router := newTestRouter(&fakeRepo{}, &fakeProvider{})

	rec := postVerifyAdmin(t, router, `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp core.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User ID is required", resp.Error)
}

func getCallback(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCallbackWithoutCode(t *testing.T) {
	router := newTestRouter(&fakeRepo{}, &fakeProvider{})

	rec := getCallback(t, router, "/auth/callback")

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestCallbackExchangeFailure(t *testing.T) {
	provider := &fakeProvider{exchangeErr: errors.New("bad code")}
	router := newTestRouter(&fakeRepo{}, provider)

	rec := getCallback(t, router, "/auth/callback?code=abc")

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t,
		"/login?error=auth_callback_error",
		rec.Header().Get("Location"),
	)
}

func TestCallbackNonAdminIsSignedOut(t *testing.T) {
	provider := &fakeProvider{
		session: &identity.Session{
			AccessToken: "session-token",
			User:        identity.AuthUser{ID: "civilian"},
		},
	}
	router := newTestRouter(&fakeRepo{}, provider)

	rec := getCallback(t, router, "/auth/callback?code=abc")

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/unauthorized", rec.Header().Get("Location"))
	assert.Equal(t, []string{"session-token"}, provider.signedOut,
		"denied subject's fresh session must be revoked")
}

func TestCallbackAdminLandsOnDashboard(t *testing.T) {
	repo := &fakeRepo{admins: map[string]*AdminUser{
		"u1": {ID: "a1", UserID: "u1", Role: RoleAdmin, IsActive: true},
	}}
	provider := &fakeProvider{
		session: &identity.Session{
			AccessToken: "session-token",
			User:        identity.AuthUser{ID: "u1"},
		},
	}
	router := newTestRouter(repo, provider)

	rec := getCallback(t, router, "/auth/callback?code=abc")

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Empty(t, provider.signedOut)
}
