// AngelaMos | 2026
// handler_test.go

package notification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deenhub-app/admin-backend/internal/core"
)

func newTestRouter(repo TokenRepository) chi.Router {
	svc := NewService(repo, &fakePushClient{})
	handler := NewHandler(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestGetUserTokenFound(t *testing.T) {
	repo := &fakeTokenRepo{
		latestByUser: map[string]string{"u1": "device-1"},
	}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/get-user-token?user_id=u1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserTokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Token)
	assert.Equal(t, "device-1", *resp.Token)
}

func TestGetUserTokenAbsentIsStill200(t *testing.T) {
	router := newTestRouter(&fakeTokenRepo{})

	req := httptest.NewRequest(
		http.MethodGet,
		"/get-user-token?user_id=nobody",
		nil,
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserTokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success, "a user without a device is not an error")
	assert.Nil(t, resp.Token)
}

func TestGetUserTokenRequiresUserID(t *testing.T) {
	router := newTestRouter(&fakeTokenRepo{})

	req := httptest.NewRequest(http.MethodGet, "/get-user-token", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendNotificationRequiresTitleAndBody(t *testing.T) {
	router := newTestRouter(&fakeTokenRepo{})

	req := httptest.NewRequest(
		http.MethodPost,
		"/send-notification",
		strings.NewReader(`{"title":"only a title"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp core.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Title and body are required", resp.Error)
}

func TestSendNotificationBroadcast(t *testing.T) {
	repo := &fakeTokenRepo{tokens: []string{"t1", "t2"}}
	router := newTestRouter(repo)

	req := httptest.NewRequest(
		http.MethodPost,
		"/send-notification",
		strings.NewReader(`{"title":"Eid Mubarak","body":"Prayers at 8am"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Details)
	assert.Equal(t, 2, resp.Details.TotalTokens)
	assert.Equal(t, 2, resp.Details.SuccessCount)
	assert.Zero(t, resp.Details.FailureCount)
}

func TestSendSuspensionRequiresIDs(t *testing.T) {
	router := newTestRouter(&fakeTokenRepo{})

	req := httptest.NewRequest(
		http.MethodPost,
		"/send-suspension-notification",
		strings.NewReader(`{"user_id":"u1"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendSuspensionNoDeviceIs404(t *testing.T) {
	router := newTestRouter(&fakeTokenRepo{})

	req := httptest.NewRequest(
		http.MethodPost,
		"/send-suspension-notification",
		strings.NewReader(`{"user_id":"u1","admin_id":"a1","reason":"Spam"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
