package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/grocerease/grocery-shop/internal/logging"
	"github.com/grocerease/grocery-shop/internal/models"
	"github.com/grocerease/grocery-shop/internal/repo"
)

type CheckoutService struct {
	Repo *repo.GormRepo
}

type TransactionSummary struct {
	TransactionID uint           `json:"transaction_id"`
	Total         float64        `json:"total"`
	CreatedAt     time.Time      `json:"created_at"`
	Orders        []models.Order `json:"orders"`
}

type TransactionHistory struct {
	Transaction models.Transaction `json:"transaction"`
	Orders      []models.Order     `json:"orders"`
}

// Checkout converts the user's whole cart into one transaction with its
// order lines, decrementing stock and draining the cart. It runs in two
// phases inside a single database transaction: every line is validated
// against current stock before anything is written, and the writes either
// all land or all roll back. Unit prices and the total are snapshots of the
// product prices at this moment, not at add-to-cart time.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint) (*TransactionSummary, error) {
	l := logging.FromContext(ctx).With("svc", "checkout", "user_id", userID)

	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	var summary *TransactionSummary
	err := s.Repo.Transact(ctx, func(tx *repo.GormRepo) error {
		items, err := tx.GetCart(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("nothing to check out: %w", ErrEmptyCart)
		}

		products := make(map[uint]models.Product, len(items))
		var total float64
		for _, it := range items {
			p, err := tx.GetProduct(ctx, it.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", it.ProductID, ErrNotFound)
				}
				return err
			}
			if it.Quantity > p.QuantityAvailable {
				return fmt.Errorf("product %q is out of stock: %w", p.Name, ErrOutOfStock)
			}
			products[it.ProductID] = *p
			total += float64(it.Quantity) * p.Price
		}

		trx := models.Transaction{
			UserID:    userID,
			Total:     total,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.CreateTransaction(ctx, &trx); err != nil {
			return err
		}

		orders := make([]models.Order, 0, len(items))
		for i := range items {
			it := &items[i]
			p := products[it.ProductID]

			// Guarded decrement: a concurrent checkout may have taken the
			// stock between validation and here, in which case everything
			// above rolls back.
			ok, err := tx.DecrementStock(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("product %q stock changed during checkout: %w", p.Name, ErrInsufficientStock)
			}

			order := models.Order{
				UserID:        userID,
				ProductID:     it.ProductID,
				Quantity:      it.Quantity,
				UnitPrice:     p.Price,
				TransactionID: trx.ID,
			}
			if err := tx.CreateOrder(ctx, &order); err != nil {
				return err
			}
			orders = append(orders, order)

			if err := tx.DeleteCartItem(ctx, it); err != nil {
				return err
			}
		}

		summary = &TransactionSummary{
			TransactionID: trx.ID,
			Total:         trx.Total,
			CreatedAt:     trx.CreatedAt,
			Orders:        orders,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Info("checkout_completed", "transaction_id", summary.TransactionID,
		"total", summary.Total, "lines", len(summary.Orders))
	return summary, nil
}

func (s *CheckoutService) History(ctx context.Context, userID uint, offset, limit int) (int64, []TransactionHistory, error) {
	if userID == 0 {
		return 0, nil, ErrUnauthenticated
	}

	total, trxs, err := s.Repo.ListTransactions(ctx, userID, offset, limit)
	if err != nil {
		return 0, nil, err
	}

	history := make([]TransactionHistory, 0, len(trxs))
	for _, trx := range trxs {
		orders, err := s.Repo.ListOrdersByTransaction(ctx, trx.ID)
		if err != nil {
			return 0, nil, err
		}
		history = append(history, TransactionHistory{Transaction: trx, Orders: orders})
	}
	return total, history, nil
}
