package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/grocerease/grocery-shop/internal/logging"
	"github.com/grocerease/grocery-shop/internal/models"
	"github.com/grocerease/grocery-shop/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// CartLine is one cart row resolved to its product for display.
type CartLine struct {
	Item      models.CartItem `json:"item"`
	Product   models.Product  `json:"product"`
	LineTotal float64         `json:"line_total"`
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, qty int) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add", "user_id", userID, "product_id", productID)

	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	if qty <= 0 {
		return nil, fmt.Errorf("quantity must be greater than zero: %w", ErrInvalidQuantity)
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	existing, err := s.Repo.FindCartItem(ctx, userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var inCart uint
	if existing != nil {
		inCart = existing.Quantity
	}
	// The combined quantity must fit the current stock; on violation the
	// existing row stays untouched.
	if uint(qty)+inCart > product.QuantityAvailable {
		return nil, fmt.Errorf("quantity must be between 1 and %d: %w",
			product.QuantityAvailable, ErrInvalidQuantity)
	}

	if existing != nil {
		existing.Quantity += uint(qty)
		if err := s.Repo.SaveCartItem(ctx, existing); err != nil {
			return nil, err
		}
		l.Info("cart_item_merged", "quantity", existing.Quantity)
		return existing, nil
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  uint(qty),
	}
	if err := s.Repo.CreateCartItem(ctx, item); err != nil {
		return nil, err
	}
	l.Info("cart_item_added", "quantity", item.Quantity)
	return item, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID uint) error {
	l := logging.FromContext(ctx).With("svc", "cart.remove", "user_id", userID, "item_id", itemID)

	if userID == 0 {
		return ErrUnauthenticated
	}

	item, err := s.Repo.GetCartItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
		}
		return err
	}
	if item.UserID != userID {
		return fmt.Errorf("cart item %d belongs to another user: %w", itemID, ErrForbidden)
	}

	if err := s.Repo.DeleteCartItem(ctx, item); err != nil {
		return err
	}
	l.Info("cart_item_removed")
	return nil
}

func (s *CartService) ListCart(ctx context.Context, userID uint) ([]CartLine, float64, error) {
	if userID == 0 {
		return nil, 0, ErrUnauthenticated
	}

	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	lines := make([]CartLine, 0, len(items))
	var total float64
	for _, it := range items {
		product, err := s.Repo.GetProduct(ctx, it.ProductID)
		if err != nil {
			return nil, 0, err
		}
		lineTotal := float64(it.Quantity) * product.Price
		lines = append(lines, CartLine{Item: it, Product: *product, LineTotal: lineTotal})
		total += lineTotal
	}
	return lines, total, nil
}
