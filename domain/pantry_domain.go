package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	ItemStatusFresh      = "Fresh"
	ItemStatusNearExpiry = "NearExpiry"
	ItemStatusExpired    = "Expired"
)

var (
	MessageSuccessAddPantryItem     = "pantry item added successfully"
	MessageSuccessGetPantryItems    = "pantry items retrieved successfully"
	MessageSuccessDeletePantryItem  = "pantry item deleted successfully"
	MessageSuccessUploadItemImage   = "item image uploaded successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedAddPantryItem     = "failed to add pantry item"
	MessageFailedGetPantryItems    = "failed to retrieve pantry items"
	MessageFailedDeletePantryItem  = "failed to delete pantry item"
	MessageFailedUploadItemImage   = "failed to upload item image"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"

	ErrItemNameRequired   = errors.New("item name must not be empty")
	ErrInvalidQuantity    = errors.New("quantity must be a positive number")
	ErrExpiryRequired     = errors.New("expiry date must not be empty")
	ErrInvalidExpiryDate  = errors.New("invalid expiry date")
	ErrExpiryNotInFuture  = errors.New("expiry date must be after today")
	ErrDuplicateItemName  = errors.New("an item with this name already exists")
	ErrPantryItemNotFound = errors.New("pantry item not found")
	ErrUnauthorizedAccess = errors.New("unauthorized access to pantry item")
)

type (
	AddPantryItemRequest struct {
		ItemName string `json:"item_name" validate:"required"`
		Quantity string `json:"quantity" validate:"required"`
		Expiry   string `json:"expiry" validate:"required"`
	}

	PantryItemResponse struct {
		ID        string    `json:"id"`
		ItemName  string    `json:"item_name"`
		Quantity  string    `json:"quantity"`
		Expiry    string    `json:"expiry"`
		Status    string    `json:"status"`
		ImageURL  string    `json:"image_url,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	UploadItemImageRequest struct {
		PantryItemID string                `json:"item_id" form:"item_id" validate:"required,uuid"`
		Image        *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	DashboardStatsResponse struct {
		TotalItems    int `json:"total_items"`
		NearExpiry    int `json:"near_expiry"`
		Expired       int `json:"expired"`
		SharedBundles int `json:"shared_bundles"`
	}
)
