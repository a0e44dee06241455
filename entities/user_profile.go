package entities

import (
	"github.com/google/uuid"
)

// UserProfile is keyed by the owning user so profile writes are upserts,
// never inserts of a second row.
type UserProfile struct {
	UserID   uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone"`
	Gender   string    `json:"gender,omitempty"`

	House   string `json:"house"`
	Area    string `json:"area"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`

	// Coordinates are stored as strings the way the client captures them.
	// Either both are set or both are empty.
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
