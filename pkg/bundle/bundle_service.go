package bundle

import (
	"context"
	"errors"
	"fmt"
	"kitchenpal/domain"
	"kitchenpal/entities"
	"kitchenpal/pkg/live"
	"kitchenpal/pkg/pantry"
	"kitchenpal/pkg/profile"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	BundleService interface {
		ShareBundle(ctx context.Context, req domain.ShareBundleRequest, userID string) (*domain.BundleResponse, error)
		GetFeed(ctx context.Context, viewerID string, scope string) ([]*domain.BundleResponse, error)
		GetFeedSnapshot(ctx context.Context, viewerID string) (*domain.FeedResponse, error)
		DeleteBundle(ctx context.Context, id string, userID string) error
	}

	bundleService struct {
		bundleRepository  BundleRepository
		pantryRepository  pantry.PantryRepository
		profileRepository profile.ProfileRepository
		pantryService     pantry.PantryService
		hub               live.Publisher
	}
)

func NewBundleService(
	bundleRepository BundleRepository,
	pantryRepository pantry.PantryRepository,
	profileRepository profile.ProfileRepository,
	pantryService pantry.PantryService,
	hub live.Publisher,
) BundleService {
	return &bundleService{
		bundleRepository:  bundleRepository,
		pantryRepository:  pantryRepository,
		profileRepository: profileRepository,
		pantryService:     pantryService,
		hub:               hub,
	}
}

// ShareBundle snapshots the selected items into an immutable bundle and
// removes them from the pantry. Both preconditions are checked before any
// write: a non-empty selection and a completed profile.
func (s *bundleService) ShareBundle(ctx context.Context, req domain.ShareBundleRequest, userID string) (*domain.BundleResponse, error) {
	if len(req.ItemIDs) == 0 {
		return nil, domain.ErrEmptySelection
	}

	ownerProfile, err := s.profileRepository.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileRequired
		}
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	bundleID := uuid.New()
	var bundleItems []*entities.SharedBundleItem
	var validIDs []string

	for _, itemID := range req.ItemIDs {
		item, err := s.pantryRepository.GetPantryItemByID(ctx, itemID)
		if err != nil {
			continue // skip missing items
		}
		if item.UserID.String() != userID {
			continue // skip items the sharer does not own
		}

		bundleItems = append(bundleItems, &entities.SharedBundleItem{
			ID:       uuid.New(),
			BundleID: bundleID,
			ItemName: item.ItemName,
			Quantity: orNA(item.Quantity),
			Expiry:   orNA(formatExpiry(item.ExpiryDate)),
		})
		validIDs = append(validIDs, itemID)
	}

	if len(validIDs) == 0 {
		return nil, domain.ErrEmptySelection
	}

	sharedBundle := &entities.SharedBundle{
		ID:       bundleID,
		UserID:   userUUID,
		UserName: orUnknown(ownerProfile.FullName),
		Phone:    ownerProfile.Phone,
		Address:  flattenAddress(ownerProfile.House, ownerProfile.Area, ownerProfile.City),
		Lat:      nilIfEmpty(ownerProfile.Latitude),
		Lon:      nilIfEmpty(ownerProfile.Longitude),
		SharedAt: time.Now(),
		Items:    bundleItems,
	}

	if err := s.bundleRepository.ShareBundle(ctx, sharedBundle, validIDs); err != nil {
		return nil, err
	}

	s.publishFeed(ctx)
	s.pantryService.NotifyInventoryChanged(ctx, userID)

	return toBundleResponse(sharedBundle, userID), nil
}

func (s *bundleService) GetFeed(ctx context.Context, viewerID string, scope string) ([]*domain.BundleResponse, error) {
	if scope != domain.FeedScopeMine && scope != domain.FeedScopeOthers {
		return nil, domain.ErrInvalidFeedScope
	}

	bundles, err := s.bundleRepository.GetBundles(ctx, viewerID, scope)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.BundleResponse, 0, len(bundles))
	for _, b := range bundles {
		result = append(result, toBundleResponse(b, viewerID))
	}
	return result, nil
}

func (s *bundleService) GetFeedSnapshot(ctx context.Context, viewerID string) (*domain.FeedResponse, error) {
	bundles, err := s.bundleRepository.GetAllBundles(ctx)
	if err != nil {
		return nil, err
	}
	return PartitionFeed(bundles, viewerID), nil
}

func (s *bundleService) DeleteBundle(ctx context.Context, id string, userID string) error {
	sharedBundle, err := s.bundleRepository.GetBundleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBundleNotFound
		}
		return err
	}

	// Ownership is enforced here, not only in the client UI: the delete
	// removes the bundle for every viewer.
	if sharedBundle.UserID.String() != userID {
		return domain.ErrUnauthorizedBundleAccess
	}

	if err := s.bundleRepository.DeleteBundle(ctx, id); err != nil {
		return err
	}

	s.publishFeed(ctx)
	s.pantryService.NotifyInventoryChanged(ctx, userID)

	return nil
}

func (s *bundleService) publishFeed(ctx context.Context) {
	bundles, err := s.bundleRepository.GetAllBundles(ctx)
	if err != nil {
		log.Printf("error building feed snapshot: %v", err)
		return
	}
	s.hub.PublishEach(live.TopicFeed, func(viewerID string) any {
		return PartitionFeed(bundles, viewerID)
	})
}

// PartitionFeed splits the feed for one viewer. Every bundle lands in
// exactly one of mine/others, decided solely by owner id.
func PartitionFeed(bundles []*entities.SharedBundle, viewerID string) *domain.FeedResponse {
	feed := &domain.FeedResponse{
		Mine:   []*domain.BundleResponse{},
		Others: []*domain.BundleResponse{},
	}
	for _, b := range bundles {
		res := toBundleResponse(b, viewerID)
		if res.Mine {
			feed.Mine = append(feed.Mine, res)
		} else {
			feed.Others = append(feed.Others, res)
		}
	}
	return feed
}

func toBundleResponse(b *entities.SharedBundle, viewerID string) *domain.BundleResponse {
	items := make([]*domain.BundleItem, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, &domain.BundleItem{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Expiry:   item.Expiry,
		})
	}

	return &domain.BundleResponse{
		ID:       b.ID.String(),
		UserID:   b.UserID.String(),
		UserName: b.UserName,
		Phone:    b.Phone,
		Address:  b.Address,
		Lat:      b.Lat,
		Lon:      b.Lon,
		Items:    items,
		SharedAt: b.SharedAt,
		Mine:     b.UserID.String() == viewerID,
	}
}

// flattenAddress joins house, area and city into the single-line form the
// feed displays, stripping leading and trailing separators left by empty
// parts.
func flattenAddress(house, area, city string) string {
	return strings.Trim(fmt.Sprintf("%s, %s, %s", house, area, city), ", ")
}

func formatExpiry(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

func nilIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
