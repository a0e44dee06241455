package domain

import (
	"errors"
	"time"
)

const (
	FeedScopeMine   = "mine"
	FeedScopeOthers = "others"
)

var (
	MessageSuccessShareBundle  = "bundle shared successfully"
	MessageSuccessGetFeed      = "shared bundles retrieved successfully"
	MessageSuccessDeleteBundle = "bundle deleted successfully"

	MessageFailedShareBundle  = "failed to share bundle"
	MessageFailedGetFeed      = "failed to retrieve shared bundles"
	MessageFailedDeleteBundle = "failed to delete bundle"

	ErrEmptySelection           = errors.New("select at least one item to share")
	ErrProfileRequired          = errors.New("complete your profile before sharing")
	ErrBundleNotFound           = errors.New("bundle not found")
	ErrUnauthorizedBundleAccess = errors.New("unauthorized access to bundle")
	ErrInvalidFeedScope         = errors.New("scope must be mine or others")
)

type (
	ShareBundleRequest struct {
		ItemIDs []string `json:"item_ids" validate:"required,min=1,dive,uuid"`
	}

	BundleItem struct {
		ItemName string `json:"item_name"`
		Quantity string `json:"quantity"`
		Expiry   string `json:"expiry"`
	}

	BundleResponse struct {
		ID       string        `json:"id"`
		UserID   string        `json:"user_id"`
		UserName string        `json:"user_name"`
		Phone    string        `json:"phone"`
		Address  string        `json:"address"`
		Lat      *string       `json:"lat"`
		Lon      *string       `json:"lon"`
		Items    []*BundleItem `json:"items"`
		SharedAt time.Time     `json:"shared_at"`
		Mine     bool          `json:"mine"`
	}

	FeedResponse struct {
		Mine   []*BundleResponse `json:"mine"`
		Others []*BundleResponse `json:"others"`
	}
)
