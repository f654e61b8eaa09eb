// AngelaMos | 2026
// dto.go

package mosque

import (
	"github.com/deenhub-app/admin-backend/internal/core"
)

type ListParams struct {
	Page     int
	Limit    int
	Search   string
	Timezone string
	Facility string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 50
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Timezone == "all" {
		p.Timezone = ""
	}
	if p.Facility == "all" {
		p.Facility = ""
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// FacilityInput is one nested facility record on a mosque write.
type FacilityInput struct {
	FacilityType string  `json:"facility_type" validate:"required,max=100"`
	Availability string  `json:"availability"  validate:"omitempty,max=100"`
	Description  *string `json:"description"   validate:"omitempty,max=1000"`
}

// Only the name is required; timezone falls back to UTC.
type CreateMosqueRequest struct {
	Name           string          `json:"name"            validate:"required,max=200"`
	Address        *string         `json:"address"         validate:"omitempty,max=500"`
	Latitude       *float64        `json:"latitude"        validate:"omitempty,latitude"`
	Longitude      *float64        `json:"longitude"       validate:"omitempty,longitude"`
	Timezone       string          `json:"timezone"        validate:"omitempty,max=64"`
	Phone          *string         `json:"phone"           validate:"omitempty,max=30"`
	Website        *string         `json:"website"         validate:"omitempty,url,max=255"`
	AdditionalInfo *string         `json:"additional_info" validate:"omitempty,max=2000"`
	Facilities     []FacilityInput `json:"facilities"      validate:"omitempty,dive"`
}

type UpdateMosqueRequest struct {
	Name           *string         `json:"name"            validate:"omitempty,max=200"`
	Address        *string         `json:"address"         validate:"omitempty,max=500"`
	Latitude       *float64        `json:"latitude"        validate:"omitempty,latitude"`
	Longitude      *float64        `json:"longitude"       validate:"omitempty,longitude"`
	Timezone       *string         `json:"timezone"        validate:"omitempty,max=64"`
	Phone          *string         `json:"phone"           validate:"omitempty,max=30"`
	Website        *string         `json:"website"         validate:"omitempty,url,max=255"`
	AdditionalInfo *string         `json:"additional_info" validate:"omitempty,max=2000"`
	Facilities     []FacilityInput `json:"facilities"      validate:"omitempty,dive"`
}

type Stats struct {
	TotalMosques     int            `json:"total_mosques"`
	MosquesThisWeek  int            `json:"mosques_this_week"`
	MosquesThisMonth int            `json:"mosques_this_month"`
	ByTimezone       map[string]int `json:"by_timezone"`
	ByFacility       map[string]int `json:"by_facility"`
}

type ListResponse struct {
	Mosques    []MosqueWithFacilities `json:"mosques"`
	Stats      Stats                  `json:"stats"`
	Pagination core.Pagination        `json:"pagination"`
}

type MutationResponse struct {
	Success bool                 `json:"success"`
	Mosque  MosqueWithFacilities `json:"mosque"`
}
