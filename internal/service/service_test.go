package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/grocerease/grocery-shop/internal/models"
	"github.com/grocerease/grocery-shop/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Transaction{},
		&models.Order{},
	))

	return &repo.GormRepo{DB: db}
}

func seedCategory(t *testing.T, r *repo.GormRepo, name string) *models.Category {
	t.Helper()
	cat := &models.Category{Name: name}
	require.NoError(t, r.DB.Create(cat).Error)
	return cat
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64, qty uint) *models.Product {
	t.Helper()
	cat := seedCategory(t, r, name+" category")
	prod := &models.Product{
		Name:              name,
		Price:             price,
		CategoryID:        cat.ID,
		QuantityAvailable: qty,
		ManuDate:          time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.DB.Create(prod).Error)
	return prod
}

func seedUser(t *testing.T, r *repo.GormRepo, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", Role: "user"}
	require.NoError(t, r.DB.Create(user).Error)
	return user
}
