package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrMissingID       = errors.New("product id is required")
	ErrInvalidName     = errors.New("product name is required")
	ErrInvalidPrice    = errors.New("product price must not be negative")
	ErrInvalidGrams    = errors.New("ingredient grams must not be negative")
)
