// AngelaMos | 2026
// entity.go

package quran

import "time"

// Request is one entry in the free Quran fulfillment queue.
type Request struct {
	ID                string     `db:"id"                 json:"id"`
	UserID            *string    `db:"user_id"            json:"user_id"`
	FullName          string     `db:"full_name"          json:"full_name"`
	Email             string     `db:"email"              json:"email"`
	Phone             *string    `db:"phone"              json:"phone"`
	Address           string     `db:"address"            json:"address"`
	City              string     `db:"city"               json:"city"`
	State             string     `db:"state"              json:"state"`
	Country           string     `db:"country"            json:"country"`
	ZipCode           *string    `db:"zip_code"           json:"zip_code"`
	PreferredLanguage string     `db:"preferred_language" json:"preferred_language"`
	Reason            *string    `db:"reason"             json:"reason"`
	Status            string     `db:"status"             json:"status"`
	AdminNotes        *string    `db:"admin_notes"        json:"admin_notes"`
	DeliveredAt       *time.Time `db:"delivered_at"       json:"delivered_at"`
	CreatedAt         time.Time  `db:"created_at"         json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"         json:"updated_at"`
}

const (
	StatusRequested  = "requested"
	StatusProcessing = "processing"
	StatusSent       = "sent"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusRequested, StatusProcessing, StatusSent,
		StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// DefaultLanguage is stamped on requests that do not name one.
const DefaultLanguage = "Arabic"

// BulkActions maps each bulk action to the status it assigns.
var BulkActions = map[string]string{
	"mark_processing": StatusProcessing,
	"mark_sent":       StatusSent,
	"mark_delivered":  StatusDelivered,
	"mark_cancelled":  StatusCancelled,
}
