package checkout

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/cart"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/models"
)

// Transactor converts a cart into a durable order inside a single database
// transaction. Either the whole cart commits (order header, one order item
// per line item, stock decremented by exactly the purchased quantities) or
// nothing does. It knows nothing about sessions or roles; the caller is
// responsible for clearing the cart after a successful return.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// Checkout validates and commits the cart for the given customer.
//
// Line items are processed in cart insertion order, so when several items
// are invalid the first one in insertion order is the one reported. On any
// failure the transaction is rolled back: no order, no order items, and no
// stock change survive.
func (t *Transactor) Checkout(customerID uint, crt cart.Cart, shippingAddress string) (*models.Order, error) {
	if crt.IsEmpty() {
		return nil, ErrEmptyCart
	}

	tx := t.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin checkout transaction: %w", tx.Error)
	}

	order := models.Order{
		CustomerID:      customerID,
		ShippingAddress: shippingAddress,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create order: %w", err)
	}

	for _, item := range crt.Items {
		var product models.Product
		err := tx.First(&product, item.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return nil, &ProductUnavailableError{ProductID: item.ProductID}
		}
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("load product %d: %w", item.ProductID, err)
		}
		if !product.Approved {
			tx.Rollback()
			return nil, &ProductUnavailableError{ProductID: product.ID, Name: product.Name}
		}

		// Check-and-decrement as a single conditional write: the WHERE
		// clause guards the decrement, so two checkouts racing on the same
		// product serialize on the row lock and stock can never go negative.
		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", product.ID, item.Quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
		if res.Error != nil {
			tx.Rollback()
			return nil, fmt.Errorf("decrement stock for product %d: %w", product.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			return nil, &InsufficientStockError{
				ProductID: product.ID,
				Name:      product.Name,
				Requested: item.Quantity,
				Available: product.Quantity,
			}
		}

		orderItem := models.OrderItem{
			OrderID:         order.ID,
			ProductID:       product.ID,
			Quantity:        item.Quantity,
			PriceAtPurchase: product.Price,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("create order item for product %d: %w", product.ID, err)
		}
	}

	if err := tx.Preload("Items").First(&order, order.ID).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("reload order %d: %w", order.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}

	return &order, nil
}

// Total sums quantity * price-at-purchase over a committed order's items.
func Total(order *models.Order) float64 {
	var total float64
	for _, it := range order.Items {
		total += it.PriceAtPurchase * float64(it.Quantity)
	}
	return total
}
