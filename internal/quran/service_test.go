// AngelaMos | 2026
// service_test.go

package quran

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deenhub-app/admin-backend/internal/core"
)

type fakeRepo struct {
	requests      []Request
	created       *Request
	bulkIDs       []string
	bulkStatus    string
	bulkDelivered *time.Time
	bulkReturn    []Request
}

func (f *fakeRepo) List(
	context.Context,
	ListParams,
) ([]Request, int, error) {
	return f.requests, len(f.requests), nil
}

func (f *fakeRepo) ListAllForStats(context.Context) ([]StatsRow, error) {
	return nil, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Request, error) {
	for _, r := range f.requests {
		if r.ID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) Create(_ context.Context, request *Request) error {
	f.created = request
	return nil
}

func (f *fakeRepo) Update(context.Context, *Request) error {
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	for _, r := range f.requests {
		if r.ID == id {
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeRepo) BulkSetStatus(
	_ context.Context,
	ids []string,
	status string,
	deliveredAt *time.Time,
) ([]Request, error) {
	f.bulkIDs = ids
	f.bulkStatus = status
	f.bulkDelivered = deliveredAt
	return f.bulkReturn, nil
}

func TestCreateDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	request, err := svc.Create(context.Background(), CreateRequest{
		FullName: "Aisha Khan",
		Email:    "aisha@example.com",
		Address:  "1 Main St",
		City:     "Dearborn",
		State:    "MI",
		Country:  "USA",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusRequested, request.Status)
	assert.Equal(t, DefaultLanguage, request.PreferredLanguage)
}

func TestCreateKeepsExplicitLanguage(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	request, err := svc.Create(context.Background(), CreateRequest{
		FullName:          "Yusuf Ali",
		Email:             "yusuf@example.com",
		Address:           "2 Main St",
		City:              "Houston",
		State:             "TX",
		Country:           "USA",
		PreferredLanguage: "English",
	})
	require.NoError(t, err)

	assert.Equal(t, "English", request.PreferredLanguage)
}

func TestCreateCarriesReasonAndZipCode(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	reason := "Cannot afford a copy"
	zip := "48126"
	request, err := svc.Create(context.Background(), CreateRequest{
		FullName: "Bilal Ahmed",
		Email:    "bilal@example.com",
		Address:  "3 Elm St",
		City:     "Dearborn",
		State:    "MI",
		Country:  "USA",
		ZipCode:  &zip,
		Reason:   &reason,
	})
	require.NoError(t, err)

	require.NotNil(t, request.Reason)
	assert.Equal(t, reason, *request.Reason)
	require.NotNil(t, request.ZipCode)
	assert.Equal(t, zip, *request.ZipCode)
}

func TestUpdateAppliesReason(t *testing.T) {
	repo := &fakeRepo{
		requests: []Request{{ID: "q1", Status: StatusRequested}},
	}
	svc := NewService(repo)

	reason := "Requested a large-print edition"
	request, err := svc.Update(context.Background(), "q1", UpdateRequest{
		Reason: &reason,
	})
	require.NoError(t, err)

	require.NotNil(t, request.Reason)
	assert.Equal(t, reason, *request.Reason)
}

func TestBulkUpdateActionMapping(t *testing.T) {
	tests := []struct {
		action         string
		wantStatus     string
		wantsDelivered bool
	}{
		{"mark_processing", StatusProcessing, false},
		{"mark_sent", StatusSent, false},
		{"mark_delivered", StatusDelivered, true},
		{"mark_cancelled", StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			repo := &fakeRepo{
				bulkReturn: []Request{{ID: "q1"}, {ID: "q2"}},
			}
			svc := NewService(repo)

			resp, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
				RequestIDs: []string{"q1", "q2", "missing"},
				Action:     tt.action,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, repo.bulkStatus)
			assert.Equal(t, []string{"q1", "q2", "missing"}, repo.bulkIDs)
			if tt.wantsDelivered {
				assert.NotNil(t, repo.bulkDelivered)
			} else {
				assert.Nil(t, repo.bulkDelivered)
			}

			assert.True(t, resp.Success)
			assert.Equal(t, 2, resp.UpdatedCount,
				"count reflects rows touched, not ids submitted")
			assert.Len(t, resp.UpdatedRequests, 2)
		})
	}
}

func TestBulkUpdateRejectsUnknownAction(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.BulkUpdate(context.Background(), BulkUpdateRequest{
		RequestIDs: []string{"q1"},
		Action:     "mark_lost",
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateDeliveredStampsTimestamp(t *testing.T) {
	repo := &fakeRepo{
		requests: []Request{{ID: "q1", Status: StatusSent}},
	}
	svc := NewService(repo)

	delivered := StatusDelivered
	request, err := svc.Update(context.Background(), "q1", UpdateRequest{
		Status: &delivered,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusDelivered, request.Status)
	require.NotNil(t, request.DeliveredAt)
	assert.WithinDuration(t, time.Now().UTC(), *request.DeliveredAt, time.Minute)
}

func TestUpdateDeliveredKeepsExistingTimestamp(t *testing.T) {
	firstDelivery := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		requests: []Request{{
			ID:          "q1",
			Status:      StatusDelivered,
			DeliveredAt: &firstDelivery,
		}},
	}
	svc := NewService(repo)

	delivered := StatusDelivered
	request, err := svc.Update(context.Background(), "q1", UpdateRequest{
		Status: &delivered,
	})
	require.NoError(t, err)

	assert.Equal(t, firstDelivery, *request.DeliveredAt)
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	rows := []StatsRow{
		{Status: StatusRequested, CreatedAt: now.AddDate(0, 0, -1)},
		{Status: StatusProcessing, CreatedAt: now.AddDate(0, 0, -5)},
		{Status: StatusSent, CreatedAt: now.AddDate(0, 0, -12)},
		{Status: StatusDelivered, CreatedAt: now.AddDate(0, -3, 0)},
		{Status: StatusCancelled, CreatedAt: now.AddDate(0, -3, 0)},
	}

	stats := computeStats(rows, now)

	assert.Equal(t, 5, stats.TotalRequests)
	assert.Equal(t, 1, stats.RequestedCount)
	assert.Equal(t, 1, stats.ProcessingCount)
	assert.Equal(t, 1, stats.SentCount)
	assert.Equal(t, 1, stats.DeliveredCount)
	assert.Equal(t, 1, stats.CancelledCount)
	assert.Equal(t, 2, stats.RequestsThisWeek)
	assert.Equal(t, 3, stats.RequestsThisMonth)
}
