package queries_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestGetProductQueryHandler_Handle(t *testing.T) {
	db := newTestDB(t)
	policyEngine := services.NewPolicyEngine()
	handler := queries.NewGetProductQueryHandler(db, &policyEngine)

	productID := kernel.NewUUID()
	seedProduct(t, db, productSeed{
		id: productID, name: "Margherita", price: 9.5,
		productType: "PIZZA", restaurant: "Luigi's",
	})

	t.Run("UserSeesMaskedProductType", func(t *testing.T) {
		query, err := queries.NewGetProductQuery(claimsFor(t, kernel.NewUUID(), auth.RoleUser), productID)
		require.NoError(t, err)

		resp, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, "Margherita", resp.Name)
		assert.Equal(t, 9.5, resp.Price)
		assert.Equal(t, "Luigi's", resp.Restaurant)
		assert.Nil(t, resp.ProductType)
	})

	t.Run("AnalystSeesProductType", func(t *testing.T) {
		query, err := queries.NewGetProductQuery(claimsFor(t, kernel.NewUUID(), auth.RoleAnalyst), productID)
		require.NoError(t, err)

		resp, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		require.NotNil(t, resp.ProductType)
		assert.Equal(t, "PIZZA", *resp.ProductType)
	})

	t.Run("MissingProductNotFound", func(t *testing.T) {
		query, err := queries.NewGetProductQuery(claimsFor(t, kernel.NewUUID(), auth.RoleUser), kernel.NewUUID())
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestListProductsQueryHandler_Handle(t *testing.T) {
	db := newTestDB(t)
	policyEngine := services.NewPolicyEngine()
	handler := queries.NewListProductsQueryHandler(db, &policyEngine)

	seedProduct(t, db, productSeed{id: kernel.NewUUID(), name: "Margherita", price: 9.5, productType: "PIZZA", restaurant: "Luigi's"})
	seedProduct(t, db, productSeed{id: kernel.NewUUID(), name: "Quattro Formaggi", price: 12, productType: "PIZZA", restaurant: "Luigi's"})
	seedProduct(t, db, productSeed{id: kernel.NewUUID(), name: "California Roll", price: 7, productType: "SUSHI", restaurant: "Sakura"})

	userClaims := claimsFor(t, kernel.NewUUID(), auth.RoleUser)
	adminClaims := claimsFor(t, kernel.NewUUID(), auth.RoleAdmin)

	t.Run("DefaultOrderIsByName", func(t *testing.T) {
		query, err := queries.NewListProductsQuery(userClaims, nil, nil, nil, queries.PriceOrderNone)
		require.NoError(t, err)

		products, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, "California Roll", products[0].Name)
		assert.Equal(t, "Margherita", products[1].Name)
		assert.Equal(t, "Quattro Formaggi", products[2].Name)
	})

	t.Run("NameSubstringFilter", func(t *testing.T) {
		query, err := queries.NewListProductsQuery(userClaims, strPtr("rghe"), nil, nil, queries.PriceOrderNone)
		require.NoError(t, err)

		products, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Margherita", products[0].Name)
	})

	t.Run("ProductTypeFilterWorksWhileMasked", func(t *testing.T) {
		// A user may filter by category even though the field never echoes
		// back to them.
		query, err := queries.NewListProductsQuery(userClaims, nil, strPtr("PIZZA"), nil, queries.PriceOrderNone)
		require.NoError(t, err)

		products, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, products, 2)
		for _, p := range products {
			assert.Nil(t, p.ProductType)
		}
	})

	t.Run("RestaurantFilter", func(t *testing.T) {
		query, err := queries.NewListProductsQuery(userClaims, nil, nil, strPtr("Sakura"), queries.PriceOrderNone)
		require.NoError(t, err)

		products, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "California Roll", products[0].Name)
	})

	t.Run("CheapFirstOrdering", func(t *testing.T) {
		query, err := queries.NewListProductsQuery(userClaims, nil, nil, nil, queries.PriceOrderCheapFirst)
		require.NoError(t, err)

		products, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, 7.0, products[0].Price)
		assert.Equal(t, 9.5, products[1].Price)
		assert.Equal(t, 12.0, products[2].Price)
	})

	t.Run("ExpensiveFirstOrdering", func(t *testing.T) {
		query, err := queries.NewListProductsQuery(userClaims, nil, nil, nil, queries.PriceOrderExpensiveFirst)
		require.NoError(t, err)

		products, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, 12.0, products[0].Price)
	})

	t.Run("AdminSeesProductTypes", func(t *testing.T) {
		query, err := queries.NewListProductsQuery(adminClaims, nil, nil, nil, queries.PriceOrderNone)
		require.NoError(t, err)

		products, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		for _, p := range products {
			require.NotNil(t, p.ProductType)
		}
	})

	t.Run("InvalidPriceOrderRejected", func(t *testing.T) {
		_, err := queries.NewListProductsQuery(userClaims, nil, nil, nil, queries.PriceOrder("RANDOM"))

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
