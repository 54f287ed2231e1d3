package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/cart"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/db"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/models"
)

// GET /cart
func ViewCart(c *gin.Context) {
	sess := sessions.Default(c)
	crt := cart.Load(sess)

	productsByID := map[uint]models.Product{}
	if !crt.IsEmpty() {
		ids := make([]uint, 0, len(crt.Items))
		for _, it := range crt.Items {
			ids = append(ids, it.ProductID)
		}

		var products []models.Product
		if err := db.DB.Where("id IN ?", ids).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for _, p := range products {
			productsByID[p.ID] = p
		}
	}

	items := make([]gin.H, 0, len(crt.Items))
	for _, it := range crt.Items {
		p, ok := productsByID[it.ProductID]
		if !ok {
			continue
		}
		items = append(items, gin.H{"product": p, "quantity": it.Quantity})
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": crt.Total(productsByID).StringFixed(2),
	})
}

// POST /cart/items/:id
// Stock is not checked here; checkout validates it inside the transaction.
func AddToCart(c *gin.Context) {
	productID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if !product.Approved {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not available"})
		return
	}

	sess := sessions.Default(c)
	crt := cart.Load(sess)
	crt.Add(productID)
	if err := cart.Save(sess, crt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product added to cart", "cart": crt})
}

type SetCartQuantityRequest struct {
	// Pointer so that an explicit zero survives binding; zero and negative
	// values remove the line item.
	Quantity *int `json:"quantity" binding:"required"`
}

// PUT /cart/items/:id
func SetCartQuantity(c *gin.Context) {
	productID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req SetCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
		return
	}

	sess := sessions.Default(c)
	crt := cart.Load(sess)
	crt.SetQuantity(productID, *req.Quantity)
	if err := cart.Save(sess, crt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart updated", "cart": crt})
}

// DELETE /cart/items/:id
func RemoveFromCart(c *gin.Context) {
	productID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	sess := sessions.Default(c)
	crt := cart.Load(sess)
	crt.Remove(productID)
	if err := cart.Save(sess, crt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product removed from cart", "cart": crt})
}
