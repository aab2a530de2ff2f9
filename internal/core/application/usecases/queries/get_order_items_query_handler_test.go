package queries_test

import (
	"sort"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderItemsQueryHandler_Handle(t *testing.T) {
	db := newTestDB(t)
	policyEngine := services.NewPolicyEngine()
	handler := queries.NewGetOrderItemsQueryHandler(db, &policyEngine)

	userID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	seedOrder(t, db, orderSeed{id: orderID, userID: userID, courierID: courierID})

	firstProduct := kernel.NewUUID()
	secondProduct := kernel.NewUUID()
	seedOrderItem(t, db, orderID, firstProduct, 2)
	seedOrderItem(t, db, orderID, secondProduct, 1)

	expectedOrder := []kernel.UUID{firstProduct, secondProduct}
	sort.Slice(expectedOrder, func(i, j int) bool {
		return expectedOrder[i].String() < expectedOrder[j].String()
	})

	t.Run("OwnerReadsItems", func(t *testing.T) {
		query, err := queries.NewGetOrderItemsQuery(claimsFor(t, userID, auth.RoleUser), orderID)
		require.NoError(t, err)

		items, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.True(t, items[0].ProductID.IsEqual(expectedOrder[0]))
		assert.True(t, items[1].ProductID.IsEqual(expectedOrder[1]))
		for _, item := range items {
			assert.True(t, item.OrderID.IsEqual(orderID))
		}
	})

	t.Run("CourierReadsItems", func(t *testing.T) {
		query, err := queries.NewGetOrderItemsQuery(claimsFor(t, courierID, auth.RoleCourier), orderID)
		require.NoError(t, err)

		items, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("AdminReadsAnyItems", func(t *testing.T) {
		query, err := queries.NewGetOrderItemsQuery(claimsFor(t, kernel.NewUUID(), auth.RoleAdmin), orderID)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		require.NoError(t, err)
	})

	t.Run("AnalystForbidden", func(t *testing.T) {
		// Analysts browse orders, not their contents.
		query, err := queries.NewGetOrderItemsQuery(claimsFor(t, kernel.NewUUID(), auth.RoleAnalyst), orderID)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("MissingOrderNotFound", func(t *testing.T) {
		query, err := queries.NewGetOrderItemsQuery(claimsFor(t, userID, auth.RoleUser), kernel.NewUUID())
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestGetBucketItemsQueryHandler_Handle(t *testing.T) {
	db := newTestDB(t)
	policyEngine := services.NewPolicyEngine()
	handler := queries.NewGetBucketItemsQueryHandler(db, &policyEngine)

	userID := kernel.NewUUID()
	firstProduct := kernel.NewUUID()
	secondProduct := kernel.NewUUID()

	base := time.Now().UTC().Add(-30 * time.Minute)
	seedBucketItem(t, db, userID, firstProduct, 2, base)
	seedBucketItem(t, db, userID, secondProduct, 1, base.Add(10*time.Minute))

	t.Run("OwnerReadsOldestFirst", func(t *testing.T) {
		query, err := queries.NewGetBucketItemsQuery(claimsFor(t, userID, auth.RoleUser), userID)
		require.NoError(t, err)

		items, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.True(t, items[0].ProductID.IsEqual(firstProduct))
		assert.True(t, items[1].ProductID.IsEqual(secondProduct))
	})

	t.Run("AdminReadsAnyBucket", func(t *testing.T) {
		query, err := queries.NewGetBucketItemsQuery(claimsFor(t, kernel.NewUUID(), auth.RoleAdmin), userID)
		require.NoError(t, err)

		items, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		query, err := queries.NewGetBucketItemsQuery(claimsFor(t, kernel.NewUUID(), auth.RoleUser), userID)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("EmptyBucketReturnsEmptySlice", func(t *testing.T) {
		empty := kernel.NewUUID()
		query, err := queries.NewGetBucketItemsQuery(claimsFor(t, empty, auth.RoleUser), empty)
		require.NoError(t, err)

		items, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
