// AngelaMos | 2026
// entity.go

package mosque

import "time"

type Mosque struct {
	ID             string    `db:"id"              json:"id"`
	Name           string    `db:"name"            json:"name"`
	Address        *string   `db:"address"         json:"address"`
	Latitude       *float64  `db:"latitude"        json:"latitude"`
	Longitude      *float64  `db:"longitude"       json:"longitude"`
	Timezone       string    `db:"timezone"        json:"timezone"`
	Phone          *string   `db:"phone"           json:"phone"`
	Website        *string   `db:"website"         json:"website"`
	AdditionalInfo *string   `db:"additional_info" json:"additional_info"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"      json:"updated_at"`
}

// DefaultTimezone is stamped on mosques created without one.
const DefaultTimezone = "UTC"

type Facility struct {
	ID           string    `db:"id"            json:"id"`
	MosqueID     string    `db:"mosque_id"     json:"mosque_id"`
	FacilityType string    `db:"facility_type" json:"facility_type"`
	Availability string    `db:"availability"  json:"availability"`
	Description  *string   `db:"description"   json:"description"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}

// MosqueWithFacilities is the listing shape: a mosque with its
// facility rows nested under it.
type MosqueWithFacilities struct {
	Mosque
	Facilities []Facility `json:"facilities"`
}
