package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	config "github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/configs"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/auth"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/db"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/handlers"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/metrics"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/models"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/uploads"
)

func main() {

	cfg := config.LoadAppConfig()

	db.Init()

	if err := uploads.EnsureDirs(cfg.UploadDir); err != nil {
		log.Fatalf("Failed to create upload directories: %v", err)
	}

	r := gin.Default()

	// ── session store ──
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("farmsess", store))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/", handlers.ListProducts)
	r.GET("/farmers/:id", handlers.ViewFarmer)
	r.GET("/uploads/:kind/:filename", func(c *gin.Context) {
		uploads.Serve(c, cfg.UploadDir, c.Param("kind"), c.Param("filename"))
	})

	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/logout", auth.Logout)

	// ── any authenticated user ──
	me := r.Group("/")
	me.Use(auth.RequireAuth())
	{
		me.GET("/profile", auth.Profile)
		me.PUT("/profile", auth.UpdateProfile)
	}

	// ── customer ──
	customer := r.Group("/")
	customer.Use(auth.RequireRole(models.RoleCustomer))
	{
		customer.GET("/cart", handlers.ViewCart)
		customer.POST("/cart/items/:id", handlers.AddToCart)
		customer.PUT("/cart/items/:id", handlers.SetCartQuantity)
		customer.DELETE("/cart/items/:id", handlers.RemoveFromCart)
		customer.POST("/checkout", handlers.Checkout)
		customer.GET("/orders", handlers.OrderHistory)
	}

	// ── farmer ──
	farmer := r.Group("/")
	farmer.Use(auth.RequireRole(models.RoleFarmer))
	{
		farmer.GET("/farmer/products", handlers.FarmerProducts)
		farmer.POST("/products", handlers.CreateProduct)
		farmer.PUT("/products/:id", handlers.UpdateProduct)
		farmer.DELETE("/products/:id", handlers.DeleteProduct)
	}

	// ── admin ──
	admin := r.Group("/")
	admin.Use(auth.RequireRole(models.RoleAdmin))
	{
		admin.GET("/admin/dashboard", handlers.AdminDashboard)
		admin.POST("/admin/farmers/:id/approve", handlers.ApproveFarmer)
		admin.POST("/admin/products/:id/approve", handlers.ApproveProduct)
		admin.DELETE("/admin/products/:id", handlers.RejectProduct)
		admin.DELETE("/admin/users/:id", handlers.DeleteUser)
		admin.POST("/categories", handlers.CreateCategory)
		admin.DELETE("/categories/:id", handlers.DeleteCategory)
	}

	r.Run(":" + cfg.Port)
}
