package bundle

import (
	"context"
	"kitchenpal/entities"

	"gorm.io/gorm"
)

type (
	BundleRepository interface {
		// ShareBundle publishes the bundle and removes the source pantry
		// items in one transaction: either the bundle exists and the items
		// are gone, or nothing changed.
		ShareBundle(ctx context.Context, bundle *entities.SharedBundle, itemIDs []string) error
		GetBundleByID(ctx context.Context, id string) (*entities.SharedBundle, error)
		GetBundles(ctx context.Context, viewerID string, scope string) ([]*entities.SharedBundle, error)
		GetAllBundles(ctx context.Context) ([]*entities.SharedBundle, error)
		DeleteBundle(ctx context.Context, id string) error
		CountUserBundles(ctx context.Context, userID string) (int64, error)
	}

	bundleRepository struct {
		db *gorm.DB
	}
)

func NewBundleRepository(db *gorm.DB) BundleRepository {
	return &bundleRepository{db: db}
}

func (r *bundleRepository) ShareBundle(ctx context.Context, bundle *entities.SharedBundle, itemIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bundle).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", itemIDs).Delete(&entities.PantryItem{}).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *bundleRepository) GetBundleByID(ctx context.Context, id string) (*entities.SharedBundle, error) {
	var bundle entities.SharedBundle
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&bundle).Error; err != nil {
		return nil, err
	}
	return &bundle, nil
}

// GetBundles filters ownership server-side: scope "mine" is owner-equals,
// anything else owner-not-equals. The full feed is never shipped to a
// viewer who only wants one partition.
func (r *bundleRepository) GetBundles(ctx context.Context, viewerID string, scope string) ([]*entities.SharedBundle, error) {
	query := r.db.WithContext(ctx).Preload("Items").Order("shared_at desc")
	if scope == "mine" {
		query = query.Where("user_id = ?", viewerID)
	} else {
		query = query.Where("user_id <> ?", viewerID)
	}

	var bundles []*entities.SharedBundle
	if err := query.Find(&bundles).Error; err != nil {
		return nil, err
	}
	return bundles, nil
}

func (r *bundleRepository) GetAllBundles(ctx context.Context) ([]*entities.SharedBundle, error) {
	var bundles []*entities.SharedBundle
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("shared_at desc").
		Find(&bundles).Error; err != nil {
		return nil, err
	}
	return bundles, nil
}

func (r *bundleRepository) DeleteBundle(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bundle_id = ?", id).Delete(&entities.SharedBundleItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.SharedBundle{}).Error
	})
}

func (r *bundleRepository) CountUserBundles(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.SharedBundle{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
