package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/cart"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/checkout"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/db"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/metrics"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/models"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/notifier"
)

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// POST /checkout
//
// Converts the session cart into a durable order via the checkout
// transactor. The cart survives every failure untouched and is cleared only
// after a successful commit; confirmation SMS and email go out on goroutines
// and never affect the response.
func Checkout(c *gin.Context) {
	custID := c.GetUint("user_id")

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shipping_address required"})
		return
	}

	var customer models.User
	if err := db.DB.First(&customer, custID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer not found"})
		return
	}

	sess := sessions.Default(c)
	crt := cart.Load(sess)

	order, err := checkout.NewTransactor(db.DB).Checkout(custID, crt, req.ShippingAddress)
	if err != nil {
		var unavailable *checkout.ProductUnavailableError
		var insufficient *checkout.InsufficientStockError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			metrics.RecordCheckout(metrics.ResultRejected)
			c.JSON(http.StatusBadRequest, gin.H{"error": "your cart is empty"})
		case errors.As(err, &unavailable):
			metrics.RecordCheckout(metrics.ResultRejected)
			c.JSON(http.StatusNotFound, gin.H{"error": unavailable.Error()})
		case errors.As(err, &insufficient):
			metrics.RecordCheckout(metrics.ResultRejected)
			c.JSON(http.StatusConflict, gin.H{"error": insufficient.Error()})
		default:
			metrics.RecordCheckout(metrics.ResultFailed)
			log.Printf("Checkout failed for customer %d: %v", custID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
		}
		return
	}

	if err := cart.Clear(sess); err != nil {
		log.Printf("Failed to clear cart for customer %d after order %d: %v", custID, order.ID, err)
	}

	total := checkout.Total(order)
	metrics.RecordCheckout(metrics.ResultSucceeded)
	metrics.ObserveOrderValue(total)

	go func(customer models.User, orderID uint, total float64) {
		if err := notifier.SendOrderSMS(customer.Phone, orderID, total); err != nil {
			log.Printf("Failed to send SMS for order %d to %s: %v", orderID, customer.Phone, err)
		}
	}(customer, order.ID, total)

	go func(customer models.User, orderID uint, total float64) {
		if err := notifier.SendOrderEmail(customer.Email, customer.Name, orderID, total); err != nil {
			log.Printf("Failed to send email for order %d to %s: %v", orderID, customer.Email, err)
		}
	}(customer, order.ID, total)

	c.JSON(http.StatusCreated, gin.H{"message": "order placed successfully", "order": order})
}

// GET /orders
func OrderHistory(c *gin.Context) {
	custID := c.GetUint("user_id")

	var orders []models.Order
	if err := db.DB.Preload("Items").Where("customer_id = ?", custID).Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
