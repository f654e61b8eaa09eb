// AngelaMos | 2026
// entity.go

package user

import (
	"encoding/json"
	"time"
)

// Profile is an application-side user record. The matching identity
// row lives in the external auth provider; user_id links the two.
type Profile struct {
	ID                 string          `db:"id"                  json:"id"`
	UserID             string          `db:"user_id"             json:"user_id"`
	Email              string          `db:"email"               json:"email"`
	FullName           *string         `db:"full_name"           json:"full_name"`
	HasSubscription    bool            `db:"has_subscription"    json:"has_subscription"`
	SubscriptionStatus string          `db:"subscription_status" json:"subscription_status"`
	SubscriptionExpiry *time.Time      `db:"subscription_expiry" json:"subscription_expiry"`
	AIUsageData        json.RawMessage `db:"ai_usage_data"       json:"ai_usage_data"`
	CreatedAt          time.Time       `db:"created_at"          json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"          json:"updated_at"`
}

const (
	TierFree          = "free"
	TierBarakahAccess = "barakah_access"
	TierQuranLite     = "quran_lite"
	TierDeenHubPro    = "deenhub_pro"
	TierExpired       = "expired"
)

// SubscriptionDuration is the fixed monthly window stamped on every
// tier change away from free.
const SubscriptionDuration = 30 * 24 * time.Hour

func ValidTier(tier string) bool {
	switch tier {
	case TierFree, TierBarakahAccess, TierQuranLite, TierDeenHubPro, TierExpired:
		return true
	}
	return false
}
