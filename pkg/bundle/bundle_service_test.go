package bundle

import (
	"context"
	"kitchenpal/domain"
	"kitchenpal/entities"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBundleRepository struct {
	bundles    map[string]*entities.SharedBundle
	pantryRepo *fakePantryRepository
}

func newFakeBundleRepository(pantryRepo *fakePantryRepository) *fakeBundleRepository {
	return &fakeBundleRepository{
		bundles:    make(map[string]*entities.SharedBundle),
		pantryRepo: pantryRepo,
	}
}

// ShareBundle mirrors the transactional contract: the bundle appears and
// the source items vanish together.
func (r *fakeBundleRepository) ShareBundle(ctx context.Context, bundle *entities.SharedBundle, itemIDs []string) error {
	r.bundles[bundle.ID.String()] = bundle
	for _, id := range itemIDs {
		delete(r.pantryRepo.items, id)
	}
	return nil
}

func (r *fakeBundleRepository) GetBundleByID(ctx context.Context, id string) (*entities.SharedBundle, error) {
	b, ok := r.bundles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *fakeBundleRepository) GetBundles(ctx context.Context, viewerID string, scope string) ([]*entities.SharedBundle, error) {
	var out []*entities.SharedBundle
	for _, b := range r.bundles {
		mine := b.UserID.String() == viewerID
		if (scope == domain.FeedScopeMine) == mine {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBundleRepository) GetAllBundles(ctx context.Context) ([]*entities.SharedBundle, error) {
	var out []*entities.SharedBundle
	for _, b := range r.bundles {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBundleRepository) DeleteBundle(ctx context.Context, id string) error {
	delete(r.bundles, id)
	return nil
}

func (r *fakeBundleRepository) CountUserBundles(ctx context.Context, userID string) (int64, error) {
	var n int64
	for _, b := range r.bundles {
		if b.UserID.String() == userID {
			n++
		}
	}
	return n, nil
}

type fakePantryRepository struct {
	items map[string]*entities.PantryItem
}

func newFakePantryRepository() *fakePantryRepository {
	return &fakePantryRepository{items: make(map[string]*entities.PantryItem)}
}

func (r *fakePantryRepository) AddPantryItem(ctx context.Context, item *entities.PantryItem) error {
	r.items[item.ID.String()] = item
	return nil
}

func (r *fakePantryRepository) GetPantryItemByID(ctx context.Context, id string) (*entities.PantryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *fakePantryRepository) DeletePantryItem(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakePantryRepository) GetPantryItems(ctx context.Context, userID string) ([]*entities.PantryItem, error) {
	var out []*entities.PantryItem
	for _, item := range r.items {
		if item.UserID.String() == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakePantryRepository) ItemNameExists(ctx context.Context, userID string, name string) (bool, error) {
	return false, nil
}

func (r *fakePantryRepository) UpdatePantryItem(ctx context.Context, item *entities.PantryItem) error {
	r.items[item.ID.String()] = item
	return nil
}

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

type fakePantryService struct {
	notified []string
}

func (s *fakePantryService) AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.PantryItemResponse, error) {
	return domain.PantryItemResponse{}, nil
}

func (s *fakePantryService) GetPantryItems(ctx context.Context, userID string, status string, page, limit int) ([]domain.PantryItemResponse, int64, error) {
	return nil, 0, nil
}

func (s *fakePantryService) InventorySnapshot(ctx context.Context, userID string) ([]domain.PantryItemResponse, error) {
	return nil, nil
}

func (s *fakePantryService) DeletePantryItem(ctx context.Context, id string, userID string) error {
	return nil
}

func (s *fakePantryService) UploadItemImage(ctx context.Context, req domain.UploadItemImageRequest, userID string) error {
	return nil
}

func (s *fakePantryService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	return domain.DashboardStatsResponse{}, nil
}

func (s *fakePantryService) NotifyInventoryChanged(ctx context.Context, userID string) {
	s.notified = append(s.notified, userID)
}

type fakePublisher struct {
	eachTopics []string
}

func (p *fakePublisher) PublishTo(topic, userID string, payload any) {}

func (p *fakePublisher) PublishEach(topic string, build func(viewerID string) any) {
	p.eachTopics = append(p.eachTopics, topic)
}

type bundleFixture struct {
	svc         BundleService
	bundleRepo  *fakeBundleRepository
	pantryRepo  *fakePantryRepository
	profileRepo *fakeProfileRepository
	pantrySvc   *fakePantryService
	hub         *fakePublisher
}

func newBundleFixture() *bundleFixture {
	pantryRepo := newFakePantryRepository()
	bundleRepo := newFakeBundleRepository(pantryRepo)
	profileRepo := newFakeProfileRepository()
	pantrySvc := &fakePantryService{}
	hub := &fakePublisher{}
	return &bundleFixture{
		svc:         NewBundleService(bundleRepo, pantryRepo, profileRepo, pantrySvc, hub),
		bundleRepo:  bundleRepo,
		pantryRepo:  pantryRepo,
		profileRepo: profileRepo,
		pantrySvc:   pantrySvc,
		hub:         hub,
	}
}

func (f *bundleFixture) seedProfile(userID uuid.UUID, p entities.UserProfile) {
	p.UserID = userID
	f.profileRepo.profiles[userID.String()] = &p
}

func (f *bundleFixture) seedItem(userID uuid.UUID, name, quantity string, expiry time.Time) *entities.PantryItem {
	item := &entities.PantryItem{
		ID:         uuid.New(),
		UserID:     userID,
		ItemName:   name,
		Quantity:   quantity,
		ExpiryDate: expiry,
	}
	f.pantryRepo.items[item.ID.String()] = item
	return item
}

func TestShareBundleEmptySelection(t *testing.T) {
	f := newBundleFixture()
	userID := uuid.New()
	f.seedProfile(userID, entities.UserProfile{FullName: "Asha"})

	_, err := f.svc.ShareBundle(context.Background(), domain.ShareBundleRequest{}, userID.String())

	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	assert.Empty(t, f.bundleRepo.bundles)
}

func TestShareBundleWithoutProfile(t *testing.T) {
	f := newBundleFixture()
	userID := uuid.New()
	item := f.seedItem(userID, "Milk", "2", time.Now().AddDate(0, 0, 3))

	_, err := f.svc.ShareBundle(context.Background(), domain.ShareBundleRequest{ItemIDs: []string{item.ID.String()}}, userID.String())

	assert.ErrorIs(t, err, domain.ErrProfileRequired)
	assert.Empty(t, f.bundleRepo.bundles)
	assert.Contains(t, f.pantryRepo.items, item.ID.String(), "items survive a rejected share")
}

func TestShareBundleSnapshotsItemsAndRemovesThem(t *testing.T) {
	f := newBundleFixture()
	userID := uuid.New()
	f.seedProfile(userID, entities.UserProfile{
		FullName:  "Asha Rao",
		Phone:     "9876543210",
		House:     "12B",
		Area:      "Lake View",
		City:      "Pune",
		Latitude:  "18.52",
		Longitude: "73.85",
	})
	expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	a := f.seedItem(userID, "Milk", "2", expiry)
	b := f.seedItem(userID, "Rice", "", expiry)

	res, err := f.svc.ShareBundle(context.Background(), domain.ShareBundleRequest{
		ItemIDs: []string{a.ID.String(), b.ID.String()},
	}, userID.String())

	require.NoError(t, err)
	assert.True(t, res.Mine)
	assert.Equal(t, "Asha Rao", res.UserName)
	assert.Equal(t, "12B, Lake View, Pune", res.Address)
	require.NotNil(t, res.Lat)
	assert.Equal(t, "18.52", *res.Lat)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "2", res.Items[0].Quantity)
	assert.Equal(t, "N/A", res.Items[1].Quantity, "blank quantity is published as N/A")
	assert.Equal(t, "2026-09-10", res.Items[0].Expiry)

	assert.NotContains(t, f.pantryRepo.items, a.ID.String())
	assert.NotContains(t, f.pantryRepo.items, b.ID.String())
	assert.Len(t, f.bundleRepo.bundles, 1)

	assert.Contains(t, f.hub.eachTopics, "feed")
	assert.Equal(t, []string{userID.String()}, f.pantrySvc.notified)
}

func TestShareBundleFallbacksForSparseProfile(t *testing.T) {
	f := newBundleFixture()
	userID := uuid.New()
	f.seedProfile(userID, entities.UserProfile{City: "Pune"})
	item := f.seedItem(userID, "Milk", "2", time.Now().AddDate(0, 0, 3))

	res, err := f.svc.ShareBundle(context.Background(), domain.ShareBundleRequest{ItemIDs: []string{item.ID.String()}}, userID.String())

	require.NoError(t, err)
	assert.Equal(t, "Unknown", res.UserName, "missing name falls back to Unknown")
	assert.Equal(t, "Pune", res.Address, "empty parts leave no dangling separators")
	assert.Nil(t, res.Lat)
	assert.Nil(t, res.Lon)
}

func TestShareBundleSkipsForeignAndMissingItems(t *testing.T) {
	f := newBundleFixture()
	userID := uuid.New()
	f.seedProfile(userID, entities.UserProfile{FullName: "Asha"})
	mine := f.seedItem(userID, "Milk", "2", time.Now().AddDate(0, 0, 3))
	theirs := f.seedItem(uuid.New(), "Rice", "1", time.Now().AddDate(0, 0, 3))

	res, err := f.svc.ShareBundle(context.Background(), domain.ShareBundleRequest{
		ItemIDs: []string{mine.ID.String(), theirs.ID.String(), uuid.New().String()},
	}, userID.String())

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Milk", res.Items[0].ItemName)
	assert.Contains(t, f.pantryRepo.items, theirs.ID.String(), "foreign items are untouched")
}

func TestShareBundleAllSelectionsInvalid(t *testing.T) {
	f := newBundleFixture()
	userID := uuid.New()
	f.seedProfile(userID, entities.UserProfile{FullName: "Asha"})
	theirs := f.seedItem(uuid.New(), "Rice", "1", time.Now().AddDate(0, 0, 3))

	_, err := f.svc.ShareBundle(context.Background(), domain.ShareBundleRequest{
		ItemIDs: []string{theirs.ID.String(), uuid.New().String()},
	}, userID.String())

	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	assert.Empty(t, f.bundleRepo.bundles)
}

func TestShareBundleSnapshotIsImmutable(t *testing.T) {
	f := newBundleFixture()
	userID := uuid.New()
	f.seedProfile(userID, entities.UserProfile{FullName: "Asha"})
	item := f.seedItem(userID, "Milk", "2", time.Now().AddDate(0, 0, 3))

	res, err := f.svc.ShareBundle(context.Background(), domain.ShareBundleRequest{ItemIDs: []string{item.ID.String()}}, userID.String())
	require.NoError(t, err)

	item.ItemName = "Changed"
	item.Quantity = "99"

	stored := f.bundleRepo.bundles[res.ID]
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Milk", stored.Items[0].ItemName, "bundle keeps the copy taken at share time")
	assert.Equal(t, "2", stored.Items[0].Quantity)
}

func TestPartitionFeedSplitsByOwner(t *testing.T) {
	viewer := uuid.New()
	other := uuid.New()
	bundles := []*entities.SharedBundle{
		{ID: uuid.New(), UserID: viewer, UserName: "Me"},
		{ID: uuid.New(), UserID: other, UserName: "Them"},
		{ID: uuid.New(), UserID: other, UserName: "Them"},
	}

	feed := PartitionFeed(bundles, viewer.String())

	assert.Len(t, feed.Mine, 1)
	assert.Len(t, feed.Others, 2)
	assert.Len(t, feed.Mine, len(bundles)-len(feed.Others), "every bundle lands in exactly one side")
	assert.True(t, feed.Mine[0].Mine)
	for _, b := range feed.Others {
		assert.False(t, b.Mine)
	}
}

func TestGetFeedScopeValidation(t *testing.T) {
	f := newBundleFixture()

	_, err := f.svc.GetFeed(context.Background(), uuid.New().String(), "everything")

	assert.ErrorIs(t, err, domain.ErrInvalidFeedScope)
}

func TestDeleteBundleOwnership(t *testing.T) {
	f := newBundleFixture()
	owner := uuid.New()
	stranger := uuid.New()
	b := &entities.SharedBundle{ID: uuid.New(), UserID: owner}
	f.bundleRepo.bundles[b.ID.String()] = b

	err := f.svc.DeleteBundle(context.Background(), b.ID.String(), stranger.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedBundleAccess)
	assert.Contains(t, f.bundleRepo.bundles, b.ID.String())

	err = f.svc.DeleteBundle(context.Background(), b.ID.String(), owner.String())
	require.NoError(t, err)
	assert.Empty(t, f.bundleRepo.bundles)
	assert.Contains(t, f.hub.eachTopics, "feed")
}

func TestDeleteBundleNotFound(t *testing.T) {
	f := newBundleFixture()

	err := f.svc.DeleteBundle(context.Background(), uuid.New().String(), uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrBundleNotFound)
}
