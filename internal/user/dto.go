// AngelaMos | 2026
// dto.go

package user

import (
	"github.com/deenhub-app/admin-backend/internal/core"
)

type ListParams struct {
	Page               int
	Limit              int
	Search             string
	SubscriptionStatus string
	SortBy             string
	SortOrder          string
}

var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"full_name":  "full_name",
	"email":      "email",
}

// Normalize resolves the loose query parameters into a closed filter
// once, at the boundary. Unrecognized values fall back to "all".
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
	if p.SubscriptionStatus == "all" || !ValidTier(p.SubscriptionStatus) {
		p.SubscriptionStatus = ""
	}
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = "created_at"
	}
	if p.SortOrder != "asc" {
		p.SortOrder = "desc"
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type AddUserRequest struct {
	Email              string `json:"email"               validate:"required,email,max=255"`
	FullName           string `json:"full_name"           validate:"omitempty,max=100"`
	SubscriptionStatus string `json:"subscription_status" validate:"omitempty,oneof=free barakah_access quran_lite deenhub_pro expired"`
}

type UpdateUserRequest struct {
	UserID             string  `json:"user_id"             validate:"required"`
	FullName           *string `json:"full_name"           validate:"omitempty,max=100"`
	SubscriptionStatus *string `json:"subscription_status" validate:"omitempty,oneof=free barakah_access quran_lite deenhub_pro expired"`
}

type Stats struct {
	TotalUsers        int `json:"total_users"`
	FreeUsers         int `json:"free_users"`
	BarakahUsers      int `json:"barakah_access_users"`
	QuranLiteUsers    int `json:"quran_lite_users"`
	DeenHubProUsers   int `json:"deenhub_pro_users"`
	ExpiredUsers      int `json:"expired_users"`
	NewUsersThisWeek  int `json:"new_users_this_week"`
	NewUsersThisMonth int `json:"new_users_this_month"`
}

type ListResponse struct {
	Users      []Profile       `json:"users"`
	Stats      Stats           `json:"stats"`
	Pagination core.Pagination `json:"pagination"`
}

type AddUserResponse struct {
	Success bool           `json:"success"`
	User    CreatedProfile `json:"user"`
}

type CreatedProfile struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	FullName           string `json:"full_name"`
	SubscriptionStatus string `json:"subscription_status"`
}

type UpdateUserResponse struct {
	Success bool    `json:"success"`
	User    Profile `json:"user"`
}
