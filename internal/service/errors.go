package service

import "errors"

var (
	ErrValidation        = errors.New("validation")         // 400
	ErrInvalidQuantity   = errors.New("invalid quantity")   // 400
	ErrEmptyCart         = errors.New("empty cart")         // 400
	ErrUnauthenticated   = errors.New("unauthenticated")    // 401
	ErrForbidden         = errors.New("forbidden")          // 403
	ErrNotFound          = errors.New("not found")          // 404
	ErrConflict          = errors.New("conflict")           // 409
	ErrOutOfStock        = errors.New("out of stock")       // 409
	ErrInsufficientStock = errors.New("insufficient stock") // 409
)
