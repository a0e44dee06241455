package entities

import (
	"github.com/google/uuid"
	"time"
)

// SharedBundle is an immutable snapshot: item fields are copied into
// SharedBundleItem rows, never referenced back to the pantry, so later
// changes to the source items cannot alter a published bundle.
type SharedBundle struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	UserName string    `json:"user_name"`
	Phone    string    `json:"phone"`
	Address  string    `json:"address"`
	Lat      *string   `json:"lat,omitempty"`
	Lon      *string   `json:"lon,omitempty"`
	SharedAt time.Time `gorm:"type:timestamp" json:"shared_at"`

	User  *User               `gorm:"foreignKey:UserID"`
	Items []*SharedBundleItem `gorm:"foreignKey:BundleID"`
	Timestamp
}

type SharedBundleItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	BundleID uuid.UUID `json:"bundle_id"`
	ItemName string    `json:"item_name"`
	Quantity string    `json:"quantity"`
	Expiry   string    `json:"expiry"`

	Bundle *SharedBundle `gorm:"foreignKey:BundleID"`
	Timestamp
}
