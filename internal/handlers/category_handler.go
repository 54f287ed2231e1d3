package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/db"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/models"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// POST /categories (admin)
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Category
	if err := db.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
		return
	}

	category := models.Category{Name: req.Name}

	if err := db.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DELETE /categories/:id (admin)
func DeleteCategory(c *gin.Context) {
	categoryID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var category models.Category
	if err := db.DB.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	if err := db.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
