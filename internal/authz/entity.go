// AngelaMos | 2026
// entity.go

package authz

import (
	"encoding/json"
	"time"
)

// AdminUser is a row in admin_users. Only is_active rows authorize
// access; this table is the sole authorization predicate.
type AdminUser struct {
	ID          string          `db:"id"          json:"id"`
	UserID      string          `db:"user_id"     json:"user_id"`
	Role        string          `db:"role"        json:"role"`
	Permissions json.RawMessage `db:"permissions" json:"permissions"`
	IsActive    bool            `db:"is_active"   json:"is_active"`
	CreatedBy   *string         `db:"created_by"  json:"created_by"`
	CreatedAt   time.Time       `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"  json:"updated_at"`
}

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

func (a *AdminUser) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}
