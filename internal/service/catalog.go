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

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return cat, err
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name required: %w", ErrValidation)
	}
	cat := &models.Category{Name: name}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) RenameCategory(ctx context.Context, id uint, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name required: %w", ErrValidation)
	}
	cat, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	cat.Name = name
	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory cascades to the category's products and returns the IDs of
// the products that were deleted along with it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) ([]uint, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_category", "category_id", id)

	productIDs, err := s.Repo.DeleteCategoryCascade(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	l.Info("category_deleted", "cascaded_products", len(productIDs))
	return productIDs, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return prod, err
}

func (s *CatalogService) ListProducts(ctx context.Context, categoryID uint, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, categoryID, offset, limit)
}

func validateProduct(prod *models.Product) error {
	if prod.Name == "" {
		return fmt.Errorf("product name required: %w", ErrValidation)
	}
	if prod.Price <= 0 {
		return fmt.Errorf("price must be greater than zero: %w", ErrValidation)
	}
	if prod.QuantityAvailable == 0 {
		return fmt.Errorf("quantity must be greater than zero: %w", ErrValidation)
	}
	if prod.ManuDate.After(time.Now()) {
		return fmt.Errorf("manufacture date cannot be in the future: %w", ErrValidation)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, prod *models.Product) error {
	if err := validateProduct(prod); err != nil {
		return err
	}
	if _, err := s.Repo.GetCategory(ctx, prod.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category %d: %w", prod.CategoryID, ErrNotFound)
		}
		return err
	}
	return s.Repo.CreateProduct(ctx, prod)
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uint, apply func(*models.Product)) (*models.Product, error) {
	prod, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(prod)
	if err := validateProduct(prod); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return err
}
