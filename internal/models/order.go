package models

import "time"

// Order is written exactly once, inside a committed checkout. There is no
// edit or cancel flow, so the row and its items are immutable after creation.
type Order struct {
	ID              uint `gorm:"primaryKey"`
	CustomerID      uint `gorm:"index;not null"`
	Customer        User
	ShippingAddress string `gorm:"not null"`
	CreatedAt       time.Time
	Items           []OrderItem `gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Quantity  uint `gorm:"not null"`
	// PriceAtPurchase is a snapshot of the product price at commit time;
	// later price changes never touch recorded orders.
	PriceAtPurchase float64 `gorm:"not null"`
	Product         Product
	CreatedAt       time.Time
}
