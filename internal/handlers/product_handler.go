package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	config "github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/configs"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/db"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/models"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/uploads"
)

// GET /
func ListProducts(c *gin.Context) {
	var products []models.Product
	if err := db.DB.Preload("Category").Preload("Farmer").Where("approved = ?", true).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var categories []models.Category
	if err := db.DB.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "categories": categories})
}

// GET /farmers/:id
func ViewFarmer(c *gin.Context) {
	farmerID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid farmer id"})
		return
	}

	var farmer models.User
	if err := db.DB.Preload("Role").First(&farmer, farmerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "farmer not found"})
		return
	}
	if farmer.Role.Name != models.RoleFarmer || !farmer.Approved {
		c.JSON(http.StatusNotFound, gin.H{"error": "farmer profile is not available"})
		return
	}

	var products []models.Product
	if err := db.DB.Where("farmer_id = ? AND approved = ?", farmer.ID, true).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"farmer": farmer, "products": products})
}

// GET /farmer/products
func FarmerProducts(c *gin.Context) {
	farmerID := c.GetUint("user_id")

	var products []models.Product
	if err := db.DB.Preload("Category").Where("farmer_id = ?", farmerID).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// POST /products
func CreateProduct(c *gin.Context) {
	farmerID := c.GetUint("user_id")

	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}
	quantity, err := strconv.ParseUint(c.PostForm("quantity"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
		return
	}

	product := models.Product{
		Name:        name,
		Description: c.PostForm("description"),
		Price:       price,
		Quantity:    uint(quantity),
		FarmerID:    farmerID,
	}

	if raw := c.PostForm("category_id"); raw != "" {
		categoryID, err := parseID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		var category models.Category
		if err := db.DB.First(&category, categoryID).Error; err != nil {
			errorMessage := fmt.Sprintf("Category not found with ID: %d", categoryID)
			c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
			return
		}
		product.CategoryID = &category.ID
	}

	if image, err := c.FormFile("image"); err == nil {
		cfg := config.LoadAppConfig()
		imageName, err := uploads.SaveProductImage(cfg.UploadDir, image)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		product.Image = imageName
	}

	if err := db.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "product added, awaiting admin approval", "product": product})
}

// PUT /products/:id
// Any update resets the approval flag.
func UpdateProduct(c *gin.Context) {
	farmerID := c.GetUint("user_id")

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
	if product.FarmerID != farmerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	product.Name = c.DefaultPostForm("name", product.Name)
	product.Description = c.DefaultPostForm("description", product.Description)

	if raw := c.PostForm("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		product.Price = price
	}
	if raw := c.PostForm("quantity"); raw != "" {
		quantity, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
			return
		}
		product.Quantity = uint(quantity)
	}
	if raw := c.PostForm("category_id"); raw != "" {
		categoryID, err := parseID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		var category models.Category
		if err := db.DB.First(&category, categoryID).Error; err != nil {
			errorMessage := fmt.Sprintf("Category not found with ID: %d", categoryID)
			c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
			return
		}
		product.CategoryID = &category.ID
	}

	if image, err := c.FormFile("image"); err == nil {
		cfg := config.LoadAppConfig()
		imageName, err := uploads.SaveProductImage(cfg.UploadDir, image)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		product.Image = imageName
	}

	product.Approved = false

	if err := db.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product updated, awaiting admin approval", "product": product})
}

// DELETE /products/:id
func DeleteProduct(c *gin.Context) {
	farmerID := c.GetUint("user_id")

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
	if product.FarmerID != farmerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := db.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
