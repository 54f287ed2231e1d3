package checkout

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned before any store access when there is nothing to
// check out.
var ErrEmptyCart = errors.New("cart is empty")

// ProductUnavailableError means a cart line item referenced a product that is
// missing or not approved at commit time.
type ProductUnavailableError struct {
	ProductID uint
	Name      string
}

func (e *ProductUnavailableError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("product %q is no longer available", e.Name)
	}
	return fmt.Sprintf("product %d is no longer available", e.ProductID)
}

// InsufficientStockError means the requested quantity exceeded the product's
// stock at commit time. Available is the stock read inside the same
// transaction that refused the decrement.
type InsufficientStockError struct {
	ProductID uint
	Name      string
	Requested uint
	Available uint
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %q: only %d available", e.Name, e.Available)
}
