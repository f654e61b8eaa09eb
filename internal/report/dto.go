// AngelaMos | 2026
// dto.go

package report

import (
	"github.com/deenhub-app/admin-backend/internal/core"
)

type ListParams struct {
	Page       int
	Limit      int
	Search     string
	Status     string
	ReportType string
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
	if p.ReportType == "all" {
		p.ReportType = ""
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type UpdateReportRequest struct {
	ID         string  `json:"id"          validate:"required"`
	Status     *string `json:"status"      validate:"omitempty,oneof=pending reviewing resolved dismissed"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=2000"`
}

type Stats struct {
	TotalReports     int `json:"total_reports"`
	PendingReports   int `json:"pending_reports"`
	ReviewingReports int `json:"reviewing_reports"`
	ResolvedReports  int `json:"resolved_reports"`
	DismissedReports int `json:"dismissed_reports"`
	ReportsThisWeek  int `json:"reports_this_week"`
}

type ListResponse struct {
	Reports    []ReportWithReporter `json:"reports"`
	Stats      Stats                `json:"stats"`
	Pagination core.Pagination      `json:"pagination"`
}

type UpdateReportResponse struct {
	Success bool   `json:"success"`
	Report  Report `json:"report"`
}
