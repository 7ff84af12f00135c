package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Name         string `json:"name"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
}

type Product struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string    `gorm:"not null"                 json:"name"`
	Description       string    `json:"description"`
	Price             float64   `gorm:"not null"                 json:"price"`
	CategoryID        uint      `gorm:"index;not null"           json:"category_id"`
	QuantityAvailable uint      `gorm:"not null"                 json:"quantity_available"`
	ManuDate          time.Time `json:"manu_date"`
	ImagePath         string    `json:"image_path"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey"                             json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_user_product;not null"  json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_user_product;not null"  json:"product_id"`
	Quantity  uint `gorm:"check:quantity>0"                       json:"quantity"`
}

// Transaction groups the orders of one checkout. Total is frozen at
// checkout time and never recomputed from live product prices.
type Transaction struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Total     float64   `gorm:"not null"       json:"total"`
	CreatedAt time.Time `gorm:"not null"       json:"created_at"`
}

// Order is a permanent ledger line. UnitPrice is the product price at
// checkout time, decoupled from later price changes.
type Order struct {
	ID            uint    `gorm:"primaryKey"     json:"id"`
	UserID        uint    `gorm:"index;not null" json:"user_id"`
	ProductID     uint    `gorm:"not null"       json:"product_id"`
	Quantity      uint    `gorm:"not null"       json:"quantity"`
	UnitPrice     float64 `gorm:"not null"       json:"unit_price"`
	TransactionID uint    `gorm:"index;not null" json:"transaction_id"`
}
