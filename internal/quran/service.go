// AngelaMos | 2026
// service.go

package quran

import (
	"context"
	"fmt"
	"time"

	"github.com/deenhub-app/admin-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
) (*ListResponse, error) {
	params.Normalize()

	requests, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListAllForStats(ctx)
	if err != nil {
		return nil, err
	}

	return &ListResponse{
		Requests:   requests,
		Stats:      computeStats(rows, time.Now().UTC()),
		Pagination: core.NewPagination(params.Page, params.Limit, total),
	}, nil
}

func computeStats(rows []StatsRow, now time.Time) Stats {
	weekStart := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := Stats{TotalRequests: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case StatusRequested:
			stats.RequestedCount++
		case StatusProcessing:
			stats.ProcessingCount++
		case StatusSent:
			stats.SentCount++
		case StatusDelivered:
			stats.DeliveredCount++
		case StatusCancelled:
			stats.CancelledCount++
		}
		if row.CreatedAt.After(weekStart) {
			stats.RequestsThisWeek++
		}
		if !row.CreatedAt.Before(monthStart) {
			stats.RequestsThisMonth++
		}
	}

	return stats
}

func (s *Service) Create(
	ctx context.Context,
	req CreateRequest,
) (*Request, error) {
	language := req.PreferredLanguage
	if language == "" {
		language = DefaultLanguage
	}

	request := &Request{
		UserID:            req.UserID,
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		Country:           req.Country,
		ZipCode:           req.ZipCode,
		PreferredLanguage: language,
		Reason:            req.Reason,
		Status:            StatusRequested,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateRequest,
) (*Request, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		request.FullName = *req.FullName
	}
	if req.Email != nil {
		request.Email = *req.Email
	}
	if req.Phone != nil {
		request.Phone = req.Phone
	}
	if req.Address != nil {
		request.Address = *req.Address
	}
	if req.City != nil {
		request.City = *req.City
	}
	if req.State != nil {
		request.State = *req.State
	}
	if req.Country != nil {
		request.Country = *req.Country
	}
	if req.ZipCode != nil {
		request.ZipCode = req.ZipCode
	}
	if req.PreferredLanguage != nil {
		request.PreferredLanguage = *req.PreferredLanguage
	}
	if req.Reason != nil {
		request.Reason = req.Reason
	}
	if req.AdminNotes != nil {
		request.AdminNotes = req.AdminNotes
	}
	if req.Status != nil {
		request.Status = *req.Status
		if *req.Status == StatusDelivered && request.DeliveredAt == nil {
			now := time.Now().UTC()
			request.DeliveredAt = &now
		}
	}

	if err := s.repo.Update(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// BulkUpdate moves a batch of requests to the status named by the
// action. mark_delivered also stamps delivered_at on rows that do not
// already carry one. The reply reports the rows actually touched, so
// ids that matched nothing are visible to the caller as a smaller
// updatedCount.
func (s *Service) BulkUpdate(
	ctx context.Context,
	req BulkUpdateRequest,
) (*BulkUpdateResponse, error) {
	status, ok := BulkActions[req.Action]
	if !ok {
		return nil, fmt.Errorf(
			"bulk update action %q: %w", req.Action, core.ErrInvalidInput,
		)
	}

	var deliveredAt *time.Time
	if status == StatusDelivered {
		now := time.Now().UTC()
		deliveredAt = &now
	}

	updated, err := s.repo.BulkSetStatus(ctx, req.RequestIDs, status, deliveredAt)
	if err != nil {
		return nil, err
	}

	return &BulkUpdateResponse{
		Success:         true,
		UpdatedCount:    len(updated),
		UpdatedRequests: updated,
	}, nil
}
