package profile

import (
	"context"
	"kitchenpal/domain"
	"kitchenpal/entities"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProfileRepository struct {
	profiles map[string]*entities.UserProfile
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{profiles: make(map[string]*entities.UserProfile)}
}

func (r *fakeProfileRepository) GetProfileByUserID(ctx context.Context, userID string) (*entities.UserProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProfileRepository) UpsertProfile(ctx context.Context, profile *entities.UserProfile) error {
	r.profiles[profile.UserID.String()] = profile
	return nil
}

func TestGetProfileAbsentIsNotAnError(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepository())

	res, err := svc.GetProfile(context.Background(), uuid.New().String())

	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSaveProfileCreatesWhenAbsent(t *testing.T) {
	repo := newFakeProfileRepository()
	svc := NewProfileService(repo)
	userID := uuid.New()

	res, err := svc.SaveProfile(context.Background(), domain.SaveProfileRequest{
		FullName: "Asha Rao",
		Phone:    "9876543210",
		Address: domain.AddressPayload{
			House: "12B",
			Area:  "Lake View",
			City:  "Pune",
		},
	}, userID.String())

	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", res.FullName)
	assert.Equal(t, "Pune", res.Address.City)
	assert.False(t, res.UpdatedAt.IsZero())
	assert.Contains(t, repo.profiles, userID.String())
}

func TestSaveProfileMergesOverExisting(t *testing.T) {
	repo := newFakeProfileRepository()
	svc := NewProfileService(repo)
	userID := uuid.New()
	repo.profiles[userID.String()] = &entities.UserProfile{
		UserID:   userID,
		FullName: "Asha Rao",
		Phone:    "9876543210",
		City:     "Pune",
		State:    "Maharashtra",
	}

	res, err := svc.SaveProfile(context.Background(), domain.SaveProfileRequest{
		Phone:   "9000000000",
		Address: domain.AddressPayload{City: "Mumbai"},
	}, userID.String())

	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", res.FullName, "omitted field keeps the stored value")
	assert.Equal(t, "9000000000", res.Phone)
	assert.Equal(t, "Mumbai", res.Address.City)
	assert.Equal(t, "Maharashtra", res.Address.State)
}

func TestSaveProfileRejectsPartialCoordinates(t *testing.T) {
	repo := newFakeProfileRepository()
	svc := NewProfileService(repo)
	userID := uuid.New()

	_, err := svc.SaveProfile(context.Background(), domain.SaveProfileRequest{
		FullName: "Asha Rao",
		Address:  domain.AddressPayload{Latitude: "18.52"},
	}, userID.String())

	assert.ErrorIs(t, err, domain.ErrPartialCoordinates)
	assert.Empty(t, repo.profiles, "rejected save writes nothing")

	_, err = svc.SaveProfile(context.Background(), domain.SaveProfileRequest{
		FullName: "Asha Rao",
		Address:  domain.AddressPayload{Longitude: "73.85"},
	}, userID.String())

	assert.ErrorIs(t, err, domain.ErrPartialCoordinates)
}

func TestSaveProfileSetsCoordinatesTogether(t *testing.T) {
	repo := newFakeProfileRepository()
	svc := NewProfileService(repo)
	userID := uuid.New()

	res, err := svc.SaveProfile(context.Background(), domain.SaveProfileRequest{
		FullName: "Asha Rao",
		Address:  domain.AddressPayload{Latitude: "18.52", Longitude: "73.85"},
	}, userID.String())

	require.NoError(t, err)
	assert.Equal(t, "18.52", res.Address.Latitude)
	assert.Equal(t, "73.85", res.Address.Longitude)

	// A later save without coordinates keeps the stored pair.
	res, err = svc.SaveProfile(context.Background(), domain.SaveProfileRequest{
		Phone: "9000000000",
	}, userID.String())

	require.NoError(t, err)
	assert.Equal(t, "18.52", res.Address.Latitude)
	assert.Equal(t, "73.85", res.Address.Longitude)
}
