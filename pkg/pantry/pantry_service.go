package pantry

import (
	"context"
	"errors"
	"fmt"
	"kitchenpal/domain"
	"kitchenpal/entities"
	"kitchenpal/internal/utils/storage"
	"kitchenpal/pkg/live"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// BundleCounter is the one bundle-side fact the dashboard needs. The
	// bundle repository satisfies it.
	BundleCounter interface {
		CountUserBundles(ctx context.Context, userID string) (int64, error)
	}

	PantryService interface {
		AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.PantryItemResponse, error)
		GetPantryItems(ctx context.Context, userID string, status string, page, limit int) ([]domain.PantryItemResponse, int64, error)
		// InventorySnapshot is the complete classified inventory, the frame
		// pushed to live subscribers. Never filtered or paginated.
		InventorySnapshot(ctx context.Context, userID string) ([]domain.PantryItemResponse, error)
		DeletePantryItem(ctx context.Context, id string, userID string) error
		UploadItemImage(ctx context.Context, req domain.UploadItemImageRequest, userID string) error
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)
		// NotifyInventoryChanged republishes the owner's inventory and
		// dashboard snapshots after a mutation made outside this service
		// (sharing deletes pantry rows from the bundle side).
		NotifyInventoryChanged(ctx context.Context, userID string)
	}

	pantryService struct {
		pantryRepository PantryRepository
		bundleCounter    BundleCounter
		hub              live.Publisher
		s3               storage.AwsS3
	}
)

func NewPantryService(pantryRepository PantryRepository, bundleCounter BundleCounter, hub live.Publisher, s3 storage.AwsS3) PantryService {
	return &pantryService{
		pantryRepository: pantryRepository,
		bundleCounter:    bundleCounter,
		hub:              hub,
		s3:               s3,
	}
}

// AddPantryItem validates in a fixed order and stops at the first failure:
// name, quantity, expiry presence, expiry in the future, duplicate name.
// The duplicate check is a pre-read, not a constraint, so two concurrent
// adds of the same name can both pass it. Accepted at this scale.
func (s *pantryService) AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.PantryItemResponse, error) {
	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return domain.PantryItemResponse{}, domain.ErrItemNameRequired
	}

	quantity := strings.TrimSpace(req.Quantity)
	if qty, err := strconv.ParseFloat(quantity, 64); err != nil || qty <= 0 {
		return domain.PantryItemResponse{}, domain.ErrInvalidQuantity
	}

	expiry := strings.TrimSpace(req.Expiry)
	if expiry == "" {
		return domain.PantryItemResponse{}, domain.ErrExpiryRequired
	}

	expiryDate, err := time.Parse(expiryDateLayout, expiry)
	if err != nil {
		return domain.PantryItemResponse{}, domain.ErrInvalidExpiryDate
	}
	if DaysUntilExpiry(time.Now(), expiryDate) <= 0 {
		return domain.PantryItemResponse{}, domain.ErrExpiryNotInFuture
	}

	exists, err := s.pantryRepository.ItemNameExists(ctx, userID, name)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}
	if exists {
		return domain.PantryItemResponse{}, domain.ErrDuplicateItemName
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.PantryItemResponse{}, domain.ErrParseUUID
	}

	item := &entities.PantryItem{
		ID:         uuid.New(),
		UserID:     userUUID,
		ItemName:   name,
		Quantity:   quantity,
		ExpiryDate: expiryDate,
	}

	if err := s.pantryRepository.AddPantryItem(ctx, item); err != nil {
		return domain.PantryItemResponse{}, err
	}

	s.publishInventory(ctx, userID)
	s.publishDashboard(ctx, userID)

	return toItemResponse(item, time.Now()), nil
}

func (s *pantryService) GetPantryItems(ctx context.Context, userID string, status string, page, limit int) ([]domain.PantryItemResponse, int64, error) {
	items, err := s.pantryRepository.GetPantryItems(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	filtered := make([]domain.PantryItemResponse, 0, len(items))
	for _, item := range items {
		res := toItemResponse(item, now)
		if status != "all" && status != "" && res.Status != status {
			continue
		}
		filtered = append(filtered, res)
	}

	count := int64(len(filtered))

	// Classification filtering happens after the read, so pagination is
	// applied to the filtered slice.
	start := (page - 1) * limit
	if start >= len(filtered) {
		return []domain.PantryItemResponse{}, count, nil
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], count, nil
}

func (s *pantryService) DeletePantryItem(ctx context.Context, id string, userID string) error {
	item, err := s.pantryRepository.GetPantryItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPantryItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if item.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(item.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	if err := s.pantryRepository.DeletePantryItem(ctx, id); err != nil {
		return err
	}

	s.publishInventory(ctx, userID)
	s.publishDashboard(ctx, userID)

	return nil
}

func (s *pantryService) UploadItemImage(ctx context.Context, req domain.UploadItemImageRequest, userID string) error {
	item, err := s.pantryRepository.GetPantryItemByID(ctx, req.PantryItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPantryItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	fileName := fmt.Sprintf("pantry-item-%s", item.ID.String())
	var objectKey string
	var uploadErr error

	if item.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(item.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "pantry-items", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "pantry-items", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	item.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.pantryRepository.UpdatePantryItem(ctx, item); err != nil {
		return err
	}

	s.publishInventory(ctx, userID)
	return nil
}

// GetDashboardStats recomputes every counter from the live rows on each
// call; nothing is cached, so the counts cannot drift from the data.
func (s *pantryService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	items, err := s.pantryRepository.GetPantryItems(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	now := time.Now()
	stats := domain.DashboardStatsResponse{TotalItems: len(items)}
	for _, item := range items {
		switch Classify(now, item.ExpiryDate) {
		case domain.ItemStatusNearExpiry:
			stats.NearExpiry++
		case domain.ItemStatusExpired:
			stats.Expired++
		}
	}

	shared, err := s.bundleCounter.CountUserBundles(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}
	stats.SharedBundles = int(shared)

	return stats, nil
}

func (s *pantryService) NotifyInventoryChanged(ctx context.Context, userID string) {
	s.publishInventory(ctx, userID)
	s.publishDashboard(ctx, userID)
}

func (s *pantryService) InventorySnapshot(ctx context.Context, userID string) ([]domain.PantryItemResponse, error) {
	items, err := s.pantryRepository.GetPantryItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	snapshot := make([]domain.PantryItemResponse, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, toItemResponse(item, now))
	}
	return snapshot, nil
}

func (s *pantryService) publishInventory(ctx context.Context, userID string) {
	snapshot, err := s.InventorySnapshot(ctx, userID)
	if err != nil {
		log.Printf("error building inventory snapshot for %s: %v", userID, err)
		return
	}
	s.hub.PublishTo(live.TopicInventory, userID, snapshot)
}

func (s *pantryService) publishDashboard(ctx context.Context, userID string) {
	stats, err := s.GetDashboardStats(ctx, userID)
	if err != nil {
		log.Printf("error building dashboard snapshot for %s: %v", userID, err)
		return
	}
	s.hub.PublishTo(live.TopicDashboard, userID, stats)
}

func toItemResponse(item *entities.PantryItem, now time.Time) domain.PantryItemResponse {
	return domain.PantryItemResponse{
		ID:        item.ID.String(),
		ItemName:  item.ItemName,
		Quantity:  item.Quantity,
		Expiry:    item.ExpiryDate.Format(expiryDateLayout),
		Status:    Classify(now, item.ExpiryDate),
		ImageURL:  item.ImageURL,
		CreatedAt: item.CreatedAt,
	}
}
