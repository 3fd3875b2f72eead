package catalog

import (
	"context"
	"runtime"
	"testing"

	"salonpos/internal/domain"
	"salonpos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// CGO-free sqlite driver, registered as "sqlite"
	_ "modernc.org/sqlite"
)

func testService(t *testing.T) (*Service, *gorm.DB) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping sqlite test on windows because CGO is disabled")
	}

	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: ":memory:"}), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.ServiceCategory{},
		&domain.Service{},
		&domain.PricingTier{},
		&domain.Product{},
		&domain.Branch{},
		&domain.Seat{},
	))

	svc := NewService(
		repository.NewCategoryRepository(db),
		repository.NewServiceRepository(db),
		repository.NewProductRepository(db),
		repository.NewSeatRepository(db),
	)
	return svc, db
}

func seedServiceWithTier(t *testing.T, svc *Service, requiredRole string) (*domain.Service, *domain.PricingTier) {
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Hair", RequiredRole: requiredRole})
	require.NoError(t, err)

	service, err := svc.CreateService(ctx, CreateServiceRequest{CategoryID: category.ID, Name: "Haircut"})
	require.NoError(t, err)

	tier, err := svc.AddTier(ctx, service.ID, CreateTierRequest{Label: "Classic", DurationMinutes: 30, Price: 500})
	require.NoError(t, err)

	return service, tier
}

func TestResolveServiceTier(t *testing.T) {
	svc, _ := testService(t)
	service, tier := seedServiceWithTier(t, svc, "stylist")

	resolved, err := svc.ResolveServiceTier(context.Background(), service.ID, tier.ID)
	require.NoError(t, err)

	assert.Equal(t, "Haircut", resolved.ServiceName)
	assert.Equal(t, "Classic", resolved.TierLabel)
	assert.Equal(t, 30, resolved.DurationMinutes)
	assert.Equal(t, 500.0, resolved.Price)
	assert.Equal(t, "stylist", resolved.RequiredRole)
}

func TestResolveServiceTier_TierFromAnotherService(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	serviceA, _ := seedServiceWithTier(t, svc, "")

	category, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Nails"})
	require.NoError(t, err)
	serviceB, err := svc.CreateService(ctx, CreateServiceRequest{CategoryID: category.ID, Name: "Manicure"})
	require.NoError(t, err)
	tierB, err := svc.AddTier(ctx, serviceB.ID, CreateTierRequest{Label: "Basic", DurationMinutes: 45, Price: 300})
	require.NoError(t, err)

	// tierB exists globally but is not in serviceA's tier list
	_, err = svc.ResolveServiceTier(ctx, serviceA.ID, tierB.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveServiceTier_UnknownService(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.ResolveServiceTier(context.Background(), 404, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveProduct(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Hair Oil", Price: 150, TotalStock: 10})
	require.NoError(t, err)

	resolved, err := svc.ResolveProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, resolved.Price)
	assert.Equal(t, 10, resolved.AvailableStock)
}

func TestResolveProduct_NotFound(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.ResolveProduct(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveSeat(t *testing.T) {
	svc, db := testService(t)
	ctx := context.Background()

	branch := &domain.Branch{Name: "Main"}
	require.NoError(t, db.Create(branch).Error)
	seat := &domain.Seat{BranchID: branch.ID, SeatNumber: 3, SeatType: domain.SeatVIP, Status: domain.SeatAvailable, HourlyRate: 250}
	require.NoError(t, db.Create(seat).Error)

	resolved, err := svc.ResolveSeat(ctx, seat.ID)
	require.NoError(t, err)
	assert.Equal(t, branch.ID, resolved.BranchID)
	assert.Equal(t, domain.SeatVIP, resolved.SeatType)
	assert.Equal(t, 250.0, resolved.HourlyRate)
}

func TestRemoveTier_WrongService(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	serviceA, tierA := seedServiceWithTier(t, svc, "")

	category, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Spa"})
	require.NoError(t, err)
	serviceB, err := svc.CreateService(ctx, CreateServiceRequest{CategoryID: category.ID, Name: "Massage"})
	require.NoError(t, err)

	err = svc.RemoveTier(ctx, serviceB.ID, tierA.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// the tier is still resolvable through its own service
	_, err = svc.ResolveServiceTier(ctx, serviceA.ID, tierA.ID)
	assert.NoError(t, err)
}
