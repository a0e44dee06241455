package handlers

import (
	"errors"
	"kitchenpal/domain"
	"kitchenpal/internal/api/presenters"
	"kitchenpal/pkg/bundle"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	BundleHandler interface {
		ShareBundle(c *fiber.Ctx) error
		GetFeed(c *fiber.Ctx) error
		DeleteBundle(c *fiber.Ctx) error
	}

	bundleHandler struct {
		bundleService bundle.BundleService
		validator     *validator.Validate
	}
)

func NewBundleHandler(bundleService bundle.BundleService, validator *validator.Validate) BundleHandler {
	return &bundleHandler{
		bundleService: bundleService,
		validator:     validator,
	}
}

func (h *bundleHandler) ShareBundle(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ShareBundleRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if len(req.ItemIDs) == 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareBundle, domain.ErrEmptySelection)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareBundle, err)
	}

	res, err := h.bundleService.ShareBundle(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareBundle, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessShareBundle)
}

func (h *bundleHandler) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	scope := c.Query("scope", domain.FeedScopeOthers)

	bundles, err := h.bundleService.GetFeed(c.Context(), userID, scope)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFeed, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"bundles": bundles,
	}, fiber.StatusOK, domain.MessageSuccessGetFeed)
}

func (h *bundleHandler) DeleteBundle(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	bundleID := c.Params("id")

	if bundleID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteBundle, domain.ErrBundleNotFound)
	}

	if err := h.bundleService.DeleteBundle(c.Context(), bundleID, userID); err != nil {
		if errors.Is(err, domain.ErrUnauthorizedBundleAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedDeleteBundle, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteBundle, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteBundle)
}
