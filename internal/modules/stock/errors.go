package stock

import "errors"

var (
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrExceedsTotalStock = errors.New("in-use stock cannot exceed total stock")
)
