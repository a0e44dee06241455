package profile

import (
	"context"
	"errors"
	"kitchenpal/domain"
	"kitchenpal/entities"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ProfileService interface {
		GetProfile(ctx context.Context, userID string) (*domain.ProfileResponse, error)
		SaveProfile(ctx context.Context, req domain.SaveProfileRequest, userID string) (*domain.ProfileResponse, error)
	}

	profileService struct {
		profileRepository ProfileRepository
	}
)

func NewProfileService(profileRepository ProfileRepository) ProfileService {
	return &profileService{profileRepository: profileRepository}
}

// GetProfile returns (nil, nil) when no profile exists yet. A new user
// without a profile is a valid empty state, not an error.
func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.ProfileResponse, error) {
	profile, err := s.profileRepository.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toProfileResponse(profile), nil
}

// SaveProfile upserts with merge semantics: empty request fields keep the
// previously stored values, and UpdatedAt is always stamped. Coordinates are
// all-or-nothing so a profile can never hold a latitude without a longitude.
func (s *profileService) SaveProfile(ctx context.Context, req domain.SaveProfileRequest, userID string) (*domain.ProfileResponse, error) {
	if (req.Address.Latitude == "") != (req.Address.Longitude == "") {
		return nil, domain.ErrPartialCoordinates
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	profile, err := s.profileRepository.GetProfileByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		profile = &entities.UserProfile{UserID: userUUID}
		profile.CreatedAt = time.Now()
	}

	mergeField(&profile.FullName, req.FullName)
	mergeField(&profile.Phone, req.Phone)
	mergeField(&profile.Gender, req.Gender)
	mergeField(&profile.House, req.Address.House)
	mergeField(&profile.Area, req.Address.Area)
	mergeField(&profile.City, req.Address.City)
	mergeField(&profile.State, req.Address.State)
	mergeField(&profile.Pincode, req.Address.Pincode)
	if req.Address.Latitude != "" {
		profile.Latitude = req.Address.Latitude
		profile.Longitude = req.Address.Longitude
	}
	profile.UpdatedAt = time.Now()

	if err := s.profileRepository.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	return toProfileResponse(profile), nil
}

func mergeField(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func toProfileResponse(profile *entities.UserProfile) *domain.ProfileResponse {
	return &domain.ProfileResponse{
		UserID:   profile.UserID.String(),
		FullName: profile.FullName,
		Phone:    profile.Phone,
		Gender:   profile.Gender,
		Address: domain.AddressResponse{
			House:     profile.House,
			Area:      profile.Area,
			City:      profile.City,
			State:     profile.State,
			Pincode:   profile.Pincode,
			Latitude:  profile.Latitude,
			Longitude: profile.Longitude,
		},
		UpdatedAt: profile.UpdatedAt,
	}
}
