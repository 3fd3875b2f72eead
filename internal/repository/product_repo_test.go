package repository

import (
	"context"
	"runtime"
	"testing"

	"salonpos/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// CGO-free sqlite driver, registered as "sqlite"
	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *gorm.DB {
	if runtime.GOOS == "windows" {
		t.Skip("skipping sqlite test on windows because CGO is disabled")
	}

	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: ":memory:"}), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.Product{},
		&domain.Branch{},
		&domain.Seat{},
	))

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, total, inUse int) *domain.Product {
	p := &domain.Product{Name: "Shampoo", Price: 150, TotalStock: total, InUseStock: inUse, Active: true}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestProductBook_GuardInStatement(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, 10, 2)

	// 9 > 8 available: guard rejects, row untouched
	ok, current, err := repo.Book(ctx, p.ID, 9)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 8, current.AvailableStock())

	// exactly the available amount passes
	ok, _, err = repo.Book(ctx, p.ID, 8)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.InUseStock)
	assert.Equal(t, 0, got.AvailableStock())
}

func TestProductBookRelease_RoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, 10, 2)

	ok, _, err := repo.Book(ctx, p.ID, 3)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, repo.Release(ctx, p.ID, 3))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.InUseStock)
}

func TestProductRelease_FloorsAtZero(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, 10, 2)

	require.NoError(t, repo.Release(ctx, p.ID, 100))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.InUseStock)
}

func TestProductSetInUse_Boundary(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, 10, 2)

	ok, _, err := repo.SetInUse(ctx, p.ID, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, current, err := repo.SetInUse(ctx, p.ID, 11)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 10, current.InUseStock)
}

func TestProductSetTotal_RejectsBelowInUse(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, 10, 6)

	ok, current, err := repo.SetTotal(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 6, current.InUseStock)

	// equal to in-use is fine
	ok, _, err = repo.SetTotal(ctx, p.ID, 6)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProductBook_NotFound(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)

	_, _, err := repo.Book(context.Background(), 404, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
