package model

import "errors"

// Domain errors. Handlers map these onto HTTP statuses; everything else is a
// server fault.
var (
	ErrInvalidID         = errors.New("invalid ID format")
	ErrProductNotFound   = errors.New("product not found")
	ErrImportNotFound    = errors.New("import record not found")
	ErrInsufficientStock = errors.New("insufficient stock available")
	ErrInvalidQuantity   = errors.New("import quantity must be at least 1")
)
