package user

import (
	"context"
	"kitchenpal/domain"
	"kitchenpal/entities"
	"kitchenpal/pkg/jwt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	byID    map[string]*entities.User
	byEmail map[string]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]*entities.User),
	}
}

func (r *fakeUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	r.byID[user.ID.String()] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeUserRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	r.byID[user.ID.String()] = user
	r.byEmail[user.Email] = user
	return nil
}

func newUserServiceUnderTest() (UserService, *fakeUserRepository) {
	repo := newFakeUserRepository()
	return NewUserService(repo, jwt.NewJWTService()), repo
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, repo := newUserServiceUnderTest()

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "asha@example.com",
		Password: "12345",
	})

	assert.ErrorIs(t, err, domain.ErrWeakPassword)
	assert.Empty(t, repo.byEmail)
}

func TestRegisterEmailAlreadyInUse(t *testing.T) {
	svc, repo := newUserServiceUnderTest()
	existing := &entities.User{ID: uuid.New(), Email: "asha@example.com"}
	repo.byID[existing.ID.String()] = existing
	repo.byEmail[existing.Email] = existing

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyInUse)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newUserServiceUnderTest()

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", res.Email)

	stored := repo.byEmail["asha@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
	assert.Equal(t, domain.RoleUser, stored.Role)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newUserServiceUnderTest()

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newUserServiceUnderTest()
	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, domain.ErrWrongPassword)
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newUserServiceUnderTest()
	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleUser, res.Role)
}

func TestMeUnknownUser(t *testing.T) {
	svc, _ := newUserServiceUnderTest()

	_, err := svc.Me(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestVerifyEmailRoundTrip(t *testing.T) {
	repo := newFakeUserRepository()
	jwtService := jwt.NewJWTService()
	svc := NewUserService(repo, jwtService)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	token, err := jwtService.GenerateTokenVerifyEmail(map[string]any{"user_id": res.ID}, time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(context.Background(), token))
	assert.True(t, repo.byEmail["asha@example.com"].IsVerified)

	err = svc.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified)
}
