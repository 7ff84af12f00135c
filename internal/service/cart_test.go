package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerease/grocery-shop/internal/models"
)

func TestAddToCart_CreatesItem(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice")
	prod := seedProduct(t, r, "apples", 2.5, 10)

	item, err := svc.AddToCart(ctx, user.ID, prod.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, user.ID, item.UserID)
	assert.Equal(t, prod.ID, item.ProductID)
	assert.Equal(t, uint(3), item.Quantity)
}

func TestAddToCart_MergesQuantities(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice")
	prod := seedProduct(t, r, "apples", 2.5, 10)

	_, err := svc.AddToCart(ctx, user.ID, prod.ID, 3)
	require.NoError(t, err)
	item, err := svc.AddToCart(ctx, user.ID, prod.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, uint(7), item.Quantity)

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice")
	prod := seedProduct(t, r, "apples", 2.5, 5)

	tests := []struct {
		name string
		qty  int
	}{
		{name: "zero", qty: 0},
		{name: "negative", qty: -2},
		{name: "exceeds stock", qty: 6},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddToCart(ctx, user.ID, prod.ID, tt.qty)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidQuantity)

			var count int64
			require.NoError(t, r.DB.Model(&models.CartItem{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

func TestAddToCart_CombinedExceedsStock(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice")
	prod := seedProduct(t, r, "apples", 2.5, 5)

	_, err := svc.AddToCart(ctx, user.ID, prod.ID, 4)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, user.ID, prod.ID, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// the existing row is left as it was
	item, err := r.FindCartItem(ctx, user.ID, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(4), item.Quantity)
}

func TestAddToCart_ProductNotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}

	user := seedUser(t, r, "alice")

	_, err := svc.AddToCart(context.Background(), user.ID, 999, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFromCart_SecondRemovalNotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice")
	prod := seedProduct(t, r, "apples", 2.5, 10)

	item, err := svc.AddToCart(ctx, user.ID, prod.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromCart(ctx, user.ID, item.ID))

	err = svc.RemoveFromCart(ctx, user.ID, item.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFromCart_Forbidden(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	alice := seedUser(t, r, "alice")
	bob := seedUser(t, r, "bob")
	prod := seedProduct(t, r, "apples", 2.5, 10)

	item, err := svc.AddToCart(ctx, alice.ID, prod.ID, 2)
	require.NoError(t, err)

	err = svc.RemoveFromCart(ctx, bob.ID, item.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)

	// the row survives
	_, err = r.GetCartItem(ctx, item.ID)
	require.NoError(t, err)
}

func TestListCart_ResolvesProductsAndTotal(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "alice")
	apples := seedProduct(t, r, "apples", 2.5, 10)
	pears := seedProduct(t, r, "pears", 4.0, 10)

	_, err := svc.AddToCart(ctx, user.ID, apples.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, user.ID, pears.ID, 1)
	require.NoError(t, err)

	lines, total, err := svc.ListCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "apples", lines[0].Product.Name)
	assert.Equal(t, 5.0, lines[0].LineTotal)
	assert.Equal(t, "pears", lines[1].Product.Name)
	assert.Equal(t, 4.0, lines[1].LineTotal)
	assert.Equal(t, 9.0, total)
}
