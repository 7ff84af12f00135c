package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/grocerease/grocery-shop/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

// DecrementStock subtracts qty from quantity_available in one guarded
// statement. The WHERE clause keeps the counter from ever going negative;
// the false return means the product had less stock than requested.
func (r *GormRepo) DecrementStock(ctx context.Context, productID uint, qty uint) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND quantity_available >= ?", productID, qty).
		Update("quantity_available", gorm.Expr("quantity_available - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
