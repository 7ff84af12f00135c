package transport

import (
	"time"

	"github.com/grocerease/grocery-shop/internal/models"
	"github.com/grocerease/grocery-shop/internal/service"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	IsAdmin bool `json:"is_admin"`
}

type UpdateProfileRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	Name            string `json:"name"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CartResponse struct {
	Items []service.CartLine `json:"items"`
	Total float64            `json:"total"`
}

type CheckoutResponse struct {
	TransactionID uint           `json:"transaction_id"`
	Total         float64        `json:"total"`
	CreatedAt     time.Time      `json:"created_at"`
	Orders        []models.Order `json:"orders"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type DeleteCategoryResponse struct {
	CategoryID        uint   `json:"category_id"`
	DeletedProductIDs []uint `json:"deleted_product_ids"`
}

type CreateProductRequest struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	CategoryID        uint    `json:"category_id"`
	QuantityAvailable uint    `json:"quantity_available"`
	ManuDate          string  `json:"manu_date"`
	ImagePath         string  `json:"image_path"`
}

type PatchProductRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Price             *float64 `json:"price"`
	CategoryID        *uint    `json:"category_id"`
	QuantityAvailable *uint    `json:"quantity_available"`
	ManuDate          *string  `json:"manu_date"`
	ImagePath         *string  `json:"image_path"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type ProductListResponse struct {
	Data []models.Product `json:"data"`
	Meta PageMeta         `json:"meta"`
}

type HistoryResponse struct {
	Data []service.TransactionHistory `json:"data"`
	Meta PageMeta                     `json:"meta"`
}
