// AngelaMos | 2026
// entity.go

package report

import (
	"encoding/json"
	"time"
)

// ContentData and ContextData are opaque payloads captured by the app
// at report time (the offending message, surah/verse, hadith text,
// session info). The admin listing passes them through untouched.
type Report struct {
	ID          string          `db:"id"           json:"id"`
	ReporterID  *string         `db:"reporter_id"  json:"reporter_id"`
	ReportType  string          `db:"report_type"  json:"report_type"`
	Category    string          `db:"category"     json:"category"`
	Title       string          `db:"title"        json:"title"`
	Description string          `db:"description"  json:"description"`
	ContentID   *string         `db:"content_id"   json:"content_id"`
	ContentData json.RawMessage `db:"content_data" json:"content_data"`
	ContextData json.RawMessage `db:"context_data" json:"context_data"`
	Status      string          `db:"status"       json:"status"`
	AdminNotes  *string         `db:"admin_notes"  json:"admin_notes"`
	ResolvedBy  *string         `db:"resolved_by"  json:"resolved_by"`
	ResolvedAt  *time.Time      `db:"resolved_at"  json:"resolved_at"`
	CreatedAt   time.Time       `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"   json:"updated_at"`
}

const (
	StatusPending   = "pending"
	StatusReviewing = "reviewing"
	StatusResolved  = "resolved"
	StatusDismissed = "dismissed"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusReviewing, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// Reporter is the slice of the user profile the report listing shows.
type Reporter struct {
	UserID   string  `db:"user_id"   json:"user_id"`
	Email    string  `db:"email"     json:"email"`
	FullName *string `db:"full_name" json:"full_name"`
}

// ReportWithReporter is a report joined with its reporter's profile.
// Reporter is nil for anonymous reports and for reporters whose
// profile has since been deleted.
type ReportWithReporter struct {
	Report
	Reporter *Reporter `json:"reporter"`
}
