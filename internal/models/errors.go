package models

import (
	"errors"
)

var (
	ErrNoRecord        = errors.New("models: no matching record found")
	ErrProductNotFound = errors.New("models: product not found")
	ErrCartEmpty       = errors.New("models: cart is empty")
	ErrInvalidProduct  = errors.New("models: invalid product payload")
	ErrInvalidPrice    = errors.New("models: invalid price")
)
