// AngelaMos | 2026
// service.go

package report

import (
	"context"
	"time"

	"github.com/deenhub-app/admin-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a page of reports with each reporter's profile merged
// in. The merge is two queries, not a SQL join: fetch the page, then
// fetch the distinct reporter profiles and stitch them in memory. A
// reporter with no surviving profile simply stays nil.
func (s *Service) List(
	ctx context.Context,
	params ListParams,
) (*ListResponse, error) {
	params.Normalize()

	reports, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	merged, err := s.mergeReporters(ctx, reports)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListAllForStats(ctx)
	if err != nil {
		return nil, err
	}

	return &ListResponse{
		Reports:    merged,
		Stats:      computeStats(rows, time.Now().UTC()),
		Pagination: core.NewPagination(params.Page, params.Limit, total),
	}, nil
}

func (s *Service) mergeReporters(
	ctx context.Context,
	reports []Report,
) ([]ReportWithReporter, error) {
	seen := map[string]struct{}{}
	ids := []string{}
	for _, rep := range reports {
		if rep.ReporterID == nil {
			continue
		}
		if _, ok := seen[*rep.ReporterID]; ok {
			continue
		}
		seen[*rep.ReporterID] = struct{}{}
		ids = append(ids, *rep.ReporterID)
	}

	reporters, err := s.repo.FindReporters(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Reporter, len(reporters))
	for _, rep := range reporters {
		byID[rep.UserID] = rep
	}

	merged := make([]ReportWithReporter, 0, len(reports))
	for _, rep := range reports {
		row := ReportWithReporter{Report: rep}
		if rep.ReporterID != nil {
			if reporter, ok := byID[*rep.ReporterID]; ok {
				row.Reporter = &reporter
			}
		}
		merged = append(merged, row)
	}

	return merged, nil
}

func computeStats(rows []StatsRow, now time.Time) Stats {
	weekStart := now.AddDate(0, 0, -7)

	stats := Stats{TotalReports: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case StatusPending:
			stats.PendingReports++
		case StatusReviewing:
			stats.ReviewingReports++
		case StatusResolved:
			stats.ResolvedReports++
		case StatusDismissed:
			stats.DismissedReports++
		}
		if row.CreatedAt.After(weekStart) {
			stats.ReportsThisWeek++
		}
	}

	return stats
}

// Update applies a status or notes change. Moving into resolved or
// dismissed stamps who closed it and when; moving back out clears the
// stamp.
func (s *Service) Update(
	ctx context.Context,
	req UpdateReportRequest,
	adminID string,
) (*Report, error) {
	report, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.AdminNotes != nil {
		report.AdminNotes = req.AdminNotes
	}
	if req.Status != nil && *req.Status != report.Status {
		report.Status = *req.Status
		switch *req.Status {
		case StatusResolved, StatusDismissed:
			now := time.Now().UTC()
			report.ResolvedAt = &now
			report.ResolvedBy = &adminID
		default:
			report.ResolvedAt = nil
			report.ResolvedBy = nil
		}
	}

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}
