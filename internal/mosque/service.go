// AngelaMos | 2026
// service.go

package mosque

import (
	"context"
	"log/slog"
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

	mosques, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	merged, err := s.attachFacilities(ctx, mosques)
	if err != nil {
		return nil, err
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	return &ListResponse{
		Mosques:    merged,
		Stats:      *stats,
		Pagination: core.NewPagination(params.Page, params.Limit, total),
	}, nil
}

func (s *Service) attachFacilities(
	ctx context.Context,
	mosques []Mosque,
) ([]MosqueWithFacilities, error) {
	ids := make([]string, 0, len(mosques))
	for _, m := range mosques {
		ids = append(ids, m.ID)
	}

	facilities, err := s.repo.FacilitiesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	byMosque := map[string][]Facility{}
	for _, f := range facilities {
		byMosque[f.MosqueID] = append(byMosque[f.MosqueID], f)
	}

	merged := make([]MosqueWithFacilities, 0, len(mosques))
	for _, m := range mosques {
		row := MosqueWithFacilities{Mosque: m, Facilities: byMosque[m.ID]}
		if row.Facilities == nil {
			row.Facilities = []Facility{}
		}
		merged = append(merged, row)
	}

	return merged, nil
}

func (s *Service) computeStats(ctx context.Context) (*Stats, error) {
	rows, err := s.repo.ListAllForStats(ctx)
	if err != nil {
		return nil, err
	}

	types, err := s.repo.ListAllFacilityTypes(ctx)
	if err != nil {
		return nil, err
	}

	return buildStats(rows, types, time.Now().UTC()), nil
}

func buildStats(rows []StatsRow, facilityTypes []string, now time.Time) *Stats {
	weekStart := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := &Stats{
		TotalMosques: len(rows),
		ByTimezone:   map[string]int{},
		ByFacility:   map[string]int{},
	}

	for _, row := range rows {
		stats.ByTimezone[row.Timezone]++
		if row.CreatedAt.After(weekStart) {
			stats.MosquesThisWeek++
		}
		if !row.CreatedAt.Before(monthStart) {
			stats.MosquesThisMonth++
		}
	}

	for _, t := range facilityTypes {
		stats.ByFacility[t]++
	}

	return stats
}

// Create inserts the mosque row, then its facility rows. A facility
// insert failure is logged and the mosque kept; the record is usable
// without its facility list and the admin can re-save facilities.
func (s *Service) Create(
	ctx context.Context,
	req CreateMosqueRequest,
) (*MosqueWithFacilities, error) {
	timezone := req.Timezone
	if timezone == "" {
		timezone = DefaultTimezone
	}

	mosque := &Mosque{
		Name:           req.Name,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Timezone:       timezone,
		Phone:          req.Phone,
		Website:        req.Website,
		AdditionalInfo: req.AdditionalInfo,
	}

	if err := s.repo.Create(ctx, mosque); err != nil {
		return nil, err
	}

	if err := s.repo.AddFacilities(ctx, mosque.ID, req.Facilities); err != nil {
		slog.Error("failed to add facilities to new mosque",
			"mosque_id", mosque.ID,
			"error", err,
		)
	}

	return s.withFacilities(ctx, mosque)
}

// Update rewrites the mosque row and, when a facility list is present,
// replaces the facility set wholesale.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateMosqueRequest,
) (*MosqueWithFacilities, error) {
	mosque, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		mosque.Name = *req.Name
	}
	if req.Address != nil {
		mosque.Address = req.Address
	}
	if req.Latitude != nil {
		mosque.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		mosque.Longitude = req.Longitude
	}
	if req.Timezone != nil {
		mosque.Timezone = *req.Timezone
	}
	if req.Phone != nil {
		mosque.Phone = req.Phone
	}
	if req.Website != nil {
		mosque.Website = req.Website
	}
	if req.AdditionalInfo != nil {
		mosque.AdditionalInfo = req.AdditionalInfo
	}

	if err := s.repo.Update(ctx, mosque); err != nil {
		return nil, err
	}

	if req.Facilities != nil {
		if err := s.repo.DeleteFacilities(ctx, mosque.ID); err != nil {
			return nil, err
		}
		if err := s.repo.AddFacilities(ctx, mosque.ID, req.Facilities); err != nil {
			return nil, err
		}
	}

	return s.withFacilities(ctx, mosque)
}

func (s *Service) withFacilities(
	ctx context.Context,
	mosque *Mosque,
) (*MosqueWithFacilities, error) {
	facilities, err := s.repo.FacilitiesFor(ctx, []string{mosque.ID})
	if err != nil {
		return nil, err
	}

	return &MosqueWithFacilities{Mosque: *mosque, Facilities: facilities}, nil
}

// Delete removes facility rows first so the mosque delete never trips
// the foreign key.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeleteFacilities(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
