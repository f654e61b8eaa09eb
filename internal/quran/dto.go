// AngelaMos | 2026
// dto.go

package quran

import (
	"github.com/deenhub-app/admin-backend/internal/core"
)

type ListParams struct {
	Page              int
	Limit             int
	Search            string
	Status            string
	Country           string
	State             string
	PreferredLanguage string
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
	if p.Status == "all" || !ValidStatus(p.Status) {
		p.Status = ""
	}
	if p.Country == "all" {
		p.Country = ""
	}
	if p.State == "all" {
		p.State = ""
	}
	if p.PreferredLanguage == "all" {
		p.PreferredLanguage = ""
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type CreateRequest struct {
	UserID            *string `json:"user_id"`
	FullName          string  `json:"full_name"          validate:"required,max=100"`
	Email             string  `json:"email"              validate:"required,email,max=255"`
	Phone             *string `json:"phone"              validate:"omitempty,max=30"`
	Address           string  `json:"address"            validate:"required,max=255"`
	City              string  `json:"city"               validate:"required,max=100"`
	State             string  `json:"state"              validate:"required,max=100"`
	Country           string  `json:"country"            validate:"required,max=100"`
	ZipCode           *string `json:"zip_code"           validate:"omitempty,max=20"`
	PreferredLanguage string  `json:"preferred_language" validate:"omitempty,max=50"`
	Reason            *string `json:"reason"             validate:"omitempty,max=2000"`
}

type UpdateRequest struct {
	FullName          *string `json:"full_name"          validate:"omitempty,max=100"`
	Email             *string `json:"email"              validate:"omitempty,email,max=255"`
	Phone             *string `json:"phone"              validate:"omitempty,max=30"`
	Address           *string `json:"address"            validate:"omitempty,max=255"`
	City              *string `json:"city"               validate:"omitempty,max=100"`
	State             *string `json:"state"              validate:"omitempty,max=100"`
	Country           *string `json:"country"            validate:"omitempty,max=100"`
	ZipCode           *string `json:"zip_code"           validate:"omitempty,max=20"`
	PreferredLanguage *string `json:"preferred_language" validate:"omitempty,max=50"`
	Reason            *string `json:"reason"             validate:"omitempty,max=2000"`
	Status            *string `json:"status"             validate:"omitempty,oneof=requested processing sent delivered cancelled"`
	AdminNotes        *string `json:"admin_notes"        validate:"omitempty,max=2000"`
}

type BulkUpdateRequest struct {
	RequestIDs []string `json:"requestIds" validate:"required,min=1,dive,required"`
	Action     string   `json:"action"     validate:"required,oneof=mark_processing mark_sent mark_delivered mark_cancelled"`
}

type Stats struct {
	TotalRequests     int `json:"total_requests"`
	RequestedCount    int `json:"requested_count"`
	ProcessingCount   int `json:"processing_count"`
	SentCount         int `json:"sent_count"`
	DeliveredCount    int `json:"delivered_count"`
	CancelledCount    int `json:"cancelled_count"`
	RequestsThisWeek  int `json:"requests_this_week"`
	RequestsThisMonth int `json:"requests_this_month"`
}

type ListResponse struct {
	Requests   []Request       `json:"requests"`
	Stats      Stats           `json:"stats"`
	Pagination core.Pagination `json:"pagination"`
}

type MutationResponse struct {
	Success bool    `json:"success"`
	Request Request `json:"request"`
}

type BulkUpdateResponse struct {
	Success         bool      `json:"success"`
	UpdatedCount    int       `json:"updatedCount"`
	UpdatedRequests []Request `json:"updatedRequests"`
}
