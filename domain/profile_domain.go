package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetProfile  = "profile retrieved successfully"
	MessageSuccessSaveProfile = "profile saved successfully"

	MessageFailedGetProfile  = "failed to retrieve profile"
	MessageFailedSaveProfile = "failed to save profile"

	ErrPartialCoordinates = errors.New("latitude and longitude must be provided together")
)

type (
	// AddressPayload carries no required tags: saves merge into the stored
	// profile, so any field may be omitted to keep its previous value.
	AddressPayload struct {
		House     string `json:"house"`
		Area      string `json:"area"`
		City      string `json:"city"`
		State     string `json:"state"`
		Pincode   string `json:"pincode" validate:"omitempty,numeric"`
		Latitude  string `json:"latitude" validate:"omitempty,latitude"`
		Longitude string `json:"longitude" validate:"omitempty,longitude"`
	}

	SaveProfileRequest struct {
		FullName string         `json:"full_name"`
		Phone    string         `json:"phone" validate:"omitempty,e164|numeric"`
		Gender   string         `json:"gender"`
		Address  AddressPayload `json:"address"`
	}

	AddressResponse struct {
		House     string `json:"house"`
		Area      string `json:"area"`
		City      string `json:"city"`
		State     string `json:"state"`
		Pincode   string `json:"pincode"`
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	}

	ProfileResponse struct {
		UserID    string          `json:"user_id"`
		FullName  string          `json:"full_name"`
		Phone     string          `json:"phone"`
		Gender    string          `json:"gender,omitempty"`
		Address   AddressResponse `json:"address"`
		UpdatedAt time.Time       `json:"updated_at"`
	}
)
