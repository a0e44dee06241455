package handlers

import (
	"context"
	"fmt"
	"kitchenpal/domain"
	"kitchenpal/pkg/bundle"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBundleService struct {
	deleteErr error
}

func (s *fakeBundleService) ShareBundle(ctx context.Context, req domain.ShareBundleRequest, userID string) (*domain.BundleResponse, error) {
	return &domain.BundleResponse{}, nil
}

func (s *fakeBundleService) GetFeed(ctx context.Context, viewerID string, scope string) ([]*domain.BundleResponse, error) {
	return nil, nil
}

func (s *fakeBundleService) GetFeedSnapshot(ctx context.Context, viewerID string) (*domain.FeedResponse, error) {
	return &domain.FeedResponse{}, nil
}

func (s *fakeBundleService) DeleteBundle(ctx context.Context, id string, userID string) error {
	return s.deleteErr
}

func newBundleTestApp(svc bundle.BundleService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.New().String())
		return c.Next()
	})
	handler := NewBundleHandler(svc, validator.New())
	app.Delete("/api/v1/bundles/:id", handler.DeleteBundle)
	return app
}

func TestDeleteBundleForbiddenForNonOwner(t *testing.T) {
	svc := &fakeBundleService{
		// the sentinel may arrive wrapped; the handler must still answer 403
		deleteErr: fmt.Errorf("delete bundle: %w", domain.ErrUnauthorizedBundleAccess),
	}
	app := newBundleTestApp(svc)

	req := httptest.NewRequest(fiber.MethodDelete, "/api/v1/bundles/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteBundleOwnerSucceeds(t *testing.T) {
	app := newBundleTestApp(&fakeBundleService{})

	req := httptest.NewRequest(fiber.MethodDelete, "/api/v1/bundles/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
