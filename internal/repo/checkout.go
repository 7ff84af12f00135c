package repo

import (
	"context"

	"github.com/grocerease/grocery-shop/internal/models"
)

func (r *GormRepo) CreateTransaction(ctx context.Context, trx *models.Transaction) error {
	return r.DB.WithContext(ctx).Create(trx).Error
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) ListTransactions(ctx context.Context, userID uint, offset, limit int) (int64, []models.Transaction, error) {
	q := r.DB.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var trxs []models.Transaction
	if err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&trxs).Error; err != nil {
		return 0, nil, err
	}
	return total, trxs, nil
}

func (r *GormRepo) ListOrdersByTransaction(ctx context.Context, transactionID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
