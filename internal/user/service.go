// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/deenhub-app/admin-backend/internal/core"
	"github.com/deenhub-app/admin-backend/internal/identity"
)

type Service struct {
	repo     Repository
	provider identity.Provider
}

func NewService(repo Repository, provider identity.Provider) *Service {
	return &Service{repo: repo, provider: provider}
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
) (*ListResponse, error) {
	params.Normalize()

	profiles, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListAllForStats(ctx)
	if err != nil {
		return nil, err
	}

	return &ListResponse{
		Users:      profiles,
		Stats:      computeStats(rows, time.Now().UTC()),
		Pagination: core.NewPagination(params.Page, params.Limit, total),
	}, nil
}

// computeStats scans every profile row once. Stats always describe the
// whole table, not the filtered page.
func computeStats(rows []StatsRow, now time.Time) Stats {
	weekStart := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := Stats{TotalUsers: len(rows)}
	for _, row := range rows {
		switch row.SubscriptionStatus {
		case TierFree:
			stats.FreeUsers++
		case TierBarakahAccess:
			stats.BarakahUsers++
		case TierQuranLite:
			stats.QuranLiteUsers++
		case TierDeenHubPro:
			stats.DeenHubProUsers++
		case TierExpired:
			stats.ExpiredUsers++
		}
		if row.CreatedAt.After(weekStart) {
			stats.NewUsersThisWeek++
		}
		if !row.CreatedAt.Before(monthStart) {
			stats.NewUsersThisMonth++
		}
	}

	return stats
}

// Add provisions the user in the external identity provider first,
// then mirrors it as a profile row. If the profile insert fails, the
// freshly created identity is deleted so the two stores do not drift.
func (s *Service) Add(
	ctx context.Context,
	req AddUserRequest,
) (*Profile, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf(
			"add user %s: %w", req.Email, core.ErrDuplicateKey,
		)
	}

	authUser, err := s.provider.CreateUser(ctx, req.Email, req.FullName)
	if err != nil {
		return nil, err
	}

	tier := req.SubscriptionStatus
	if tier == "" {
		tier = TierFree
	}

	profile := &Profile{
		UserID:             authUser.ID,
		Email:              req.Email,
		SubscriptionStatus: tier,
	}
	if req.FullName != "" {
		profile.FullName = &req.FullName
	}
	applyTier(profile, tier, time.Now().UTC())

	if err := s.repo.Create(ctx, profile); err != nil {
		if delErr := s.provider.DeleteUser(ctx, authUser.ID); delErr != nil {
			slog.Error("failed to roll back auth user after profile insert failure",
				"user_id", authUser.ID,
				"error", delErr,
			)
		}
		return nil, err
	}

	return profile, nil
}

func (s *Service) Update(
	ctx context.Context,
	req UpdateUserRequest,
) (*Profile, error) {
	profile, err := s.repo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = req.FullName
	}
	if req.SubscriptionStatus != nil {
		applyTier(profile, *req.SubscriptionStatus, time.Now().UTC())
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// applyTier keeps the derived subscription fields consistent with the
// tier: anything other than free carries an active flag and a fresh
// 30-day expiry, free clears both.
func applyTier(profile *Profile, tier string, now time.Time) {
	profile.SubscriptionStatus = tier
	if tier == TierFree {
		profile.HasSubscription = false
		profile.SubscriptionExpiry = nil
		return
	}
	expiry := now.Add(SubscriptionDuration)
	profile.HasSubscription = true
	profile.SubscriptionExpiry = &expiry
}

// Delete removes the profile row first, then the identity record. A
// provider failure after the row is gone is logged, not surfaced; the
// orphaned identity can no longer reach any profile data.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	if err := s.provider.DeleteUser(ctx, userID); err != nil {
		slog.Warn("failed to delete auth user",
			"user_id", userID,
			"error", err,
		)
	}

	return nil
}
