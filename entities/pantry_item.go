package entities

import (
	"github.com/google/uuid"
	"time"
)

type PantryItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	ItemName string    `json:"item_name"`
	// Quantity is free text ("2", "500 g"); it is never used arithmetically
	// after the add-time validation.
	Quantity   string    `json:"quantity"`
	ExpiryDate time.Time `json:"expiry_date"`
	ImageURL   string    `json:"image_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
