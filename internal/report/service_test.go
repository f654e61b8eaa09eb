// AngelaMos | 2026
// service_test.go

package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deenhub-app/admin-backend/internal/core"
)

type fakeRepo struct {
	reports      []Report
	reporters    []Reporter
	requestedIDs []string
	updated      *Report
}

func (f *fakeRepo) List(
	context.Context,
	ListParams,
) ([]Report, int, error) {
	return f.reports, len(f.reports), nil
}

func (f *fakeRepo) ListAllForStats(context.Context) ([]StatsRow, error) {
	rows := make([]StatsRow, 0, len(f.reports))
	for _, r := range f.reports {
		rows = append(rows, StatsRow{Status: r.Status, CreatedAt: r.CreatedAt})
	}
	return rows, nil
}

func (f *fakeRepo) FindReporters(
	_ context.Context,
	userIDs []string,
) ([]Reporter, error) {
	f.requestedIDs = userIDs
	return f.reporters, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Report, error) {
	for _, r := range f.reports {
		if r.ID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) Update(_ context.Context, report *Report) error {
	f.updated = report
	return nil
}

func strPtr(s string) *string { return &s }

func TestListMergesReporters(t *testing.T) {
	repo := &fakeRepo{
		reports: []Report{
			{ID: "r1", ReporterID: strPtr("u1"), Status: StatusPending},
			{ID: "r2", ReporterID: strPtr("u1"), Status: StatusPending},
			{ID: "r3", ReporterID: nil, Status: StatusResolved},
			{ID: "r4", ReporterID: strPtr("gone"), Status: StatusPending},
		},
		reporters: []Reporter{
			{UserID: "u1", Email: "u1@example.com"},
		},
	}
	svc := NewService(repo)

	resp, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, resp.Reports, 4)

	// duplicate reporter ids are fetched once
	assert.Equal(t, []string{"u1", "gone"}, repo.requestedIDs)

	require.NotNil(t, resp.Reports[0].Reporter)
	assert.Equal(t, "u1@example.com", resp.Reports[0].Reporter.Email)
	require.NotNil(t, resp.Reports[1].Reporter)

	assert.Nil(t, resp.Reports[2].Reporter, "anonymous report")
	assert.Nil(t, resp.Reports[3].Reporter, "deleted reporter profile")
}

func TestListCarriesReportedContent(t *testing.T) {
	repo := &fakeRepo{
		reports: []Report{{
			ID:          "r1",
			ReportType:  "hadith",
			Category:    "incorrect_information",
			ContentID:   strPtr("hadith-1234"),
			ContentData: json.RawMessage(`{"book_name":"Sahih Bukhari","hadith_number":"1"}`),
			ContextData: json.RawMessage(`{"session_id":"s-9"}`),
			Status:      StatusPending,
		}},
	}
	svc := NewService(repo)

	resp, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, resp.Reports, 1)

	got := resp.Reports[0]
	assert.Equal(t, "incorrect_information", got.Category)
	require.NotNil(t, got.ContentID)
	assert.Equal(t, "hadith-1234", *got.ContentID)
	assert.JSONEq(t,
		`{"book_name":"Sahih Bukhari","hadith_number":"1"}`,
		string(got.ContentData),
	)
	assert.JSONEq(t, `{"session_id":"s-9"}`, string(got.ContextData))
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	rows := []StatsRow{
		{Status: StatusPending, CreatedAt: now.AddDate(0, 0, -1)},
		{Status: StatusPending, CreatedAt: now.AddDate(0, 0, -30)},
		{Status: StatusReviewing, CreatedAt: now.AddDate(0, 0, -2)},
		{Status: StatusResolved, CreatedAt: now.AddDate(0, 0, -60)},
		{Status: StatusDismissed, CreatedAt: now.AddDate(0, 0, -3)},
	}

	stats := computeStats(rows, now)

	assert.Equal(t, 5, stats.TotalReports)
	assert.Equal(t, 2, stats.PendingReports)
	assert.Equal(t, 1, stats.ReviewingReports)
	assert.Equal(t, 1, stats.ResolvedReports)
	assert.Equal(t, 1, stats.DismissedReports)
	assert.Equal(t, 3, stats.ReportsThisWeek)
}

func TestUpdateStampsResolution(t *testing.T) {
	repo := &fakeRepo{
		reports: []Report{{ID: "r1", Status: StatusPending}},
	}
	svc := NewService(repo)

	resolved := StatusResolved
	report, err := svc.Update(context.Background(), UpdateReportRequest{
		ID:     "r1",
		Status: &resolved,
	}, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, StatusResolved, report.Status)
	require.NotNil(t, report.ResolvedAt)
	require.NotNil(t, report.ResolvedBy)
	assert.Equal(t, "admin-1", *report.ResolvedBy)
}

func TestUpdateReopenClearsStamp(t *testing.T) {
	resolvedAt := time.Now().UTC()
	repo := &fakeRepo{
		reports: []Report{{
			ID:         "r1",
			Status:     StatusResolved,
			ResolvedAt: &resolvedAt,
			ResolvedBy: strPtr("admin-1"),
		}},
	}
	svc := NewService(repo)

	pending := StatusPending
	report, err := svc.Update(context.Background(), UpdateReportRequest{
		ID:     "r1",
		Status: &pending,
	}, "admin-2")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, report.Status)
	assert.Nil(t, report.ResolvedAt)
	assert.Nil(t, report.ResolvedBy)
}

func TestUpdateMissingReport(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Update(context.Background(), UpdateReportRequest{
		ID: "ghost",
	}, "admin-1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
