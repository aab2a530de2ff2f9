package queries_test

import (
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/bucketrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/productrepo"
	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory database with the service's schema. The
// read models run raw SQL, so the tests exercise the real queries against
// real rows instead of mocks.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&bucketrepo.BucketItemDTO{},
		&productrepo.ProductDTO{},
	))

	return db
}

func claimsFor(t *testing.T, userID kernel.UUID, role auth.Role) auth.Claims {
	t.Helper()
	claims, err := auth.NewClaims(userID, role)
	require.NoError(t, err)
	return claims
}

type orderSeed struct {
	id        kernel.UUID
	userID    kernel.UUID
	courierID kernel.UUID
	rating    *int16
	status    order.Status
	address   string
	createdAt time.Time
}

func seedOrder(t *testing.T, db *gorm.DB, seed orderSeed) {
	t.Helper()

	if seed.status == order.StatusUnknown {
		seed.status = order.StatusInProgress
	}
	if seed.address == "" {
		seed.address = "Baker Street 221b"
	}
	if seed.createdAt.IsZero() {
		seed.createdAt = time.Now().UTC()
	}

	require.NoError(t, db.Create(&orderrepo.OrderDTO{
		ID:        seed.id.Bytes(),
		UserID:    seed.userID.Bytes(),
		CourierID: seed.courierID.Bytes(),
		Rating:    seed.rating,
		Status:    seed.status.String(),
		Address:   seed.address,
		CreatedAt: seed.createdAt,
		UpdatedAt: seed.createdAt,
	}).Error)
}

func seedOrderItem(t *testing.T, db *gorm.DB, orderID, productID kernel.UUID, amount int) {
	t.Helper()

	require.NoError(t, db.Create(&orderrepo.OrderItemDTO{
		OrderID:   orderID.Bytes(),
		ProductID: productID.Bytes(),
		Amount:    amount,
	}).Error)
}

func seedBucketItem(t *testing.T, db *gorm.DB, userID, productID kernel.UUID, amount int, createdAt time.Time) {
	t.Helper()

	require.NoError(t, db.Create(&bucketrepo.BucketItemDTO{
		UserID:    userID.Bytes(),
		ProductID: productID.Bytes(),
		Amount:    amount,
		CreatedAt: createdAt,
	}).Error)
}

type productSeed struct {
	id          kernel.UUID
	name        string
	price       float64
	productType string
	restaurant  string
}

func seedProduct(t *testing.T, db *gorm.DB, seed productSeed) {
	t.Helper()

	now := time.Now().UTC()
	require.NoError(t, db.Create(&productrepo.ProductDTO{
		ID:          seed.id.Bytes(),
		Name:        seed.name,
		Price:       seed.price,
		ProductType: seed.productType,
		Restaurant:  seed.restaurant,
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error)
}
