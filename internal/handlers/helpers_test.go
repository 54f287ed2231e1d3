package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/auth"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/cart"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/db"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/handlers"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/models"
)

// setupTestRouter wires the full route surface against a named in-memory
// SQLite database. Each test file uses its own name so databases never leak
// across files.
func setupTestRouter(t *testing.T, dbName string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}

	err = testDB.AutoMigrate(&models.Role{}, &models.User{}, &models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{})
	if err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	if err := db.SeedDefaults(testDB); err != nil {
		t.Fatalf("failed to seed defaults: %v", err)
	}

	originalDB := db.DB
	db.SetTestDB(testDB)
	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	r := gin.New()
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte("test-secret-key"))
	r.Use(sessions.Sessions("farmsess", store))

	r.GET("/", handlers.ListProducts)
	r.GET("/farmers/:id", handlers.ViewFarmer)

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

	farmer := r.Group("/")
	farmer.Use(auth.RequireRole(models.RoleFarmer))
	{
		farmer.GET("/farmer/products", handlers.FarmerProducts)
		farmer.POST("/products", handlers.CreateProduct)
		farmer.PUT("/products/:id", handlers.UpdateProduct)
		farmer.DELETE("/products/:id", handlers.DeleteProduct)
	}

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

	return r, testDB
}

func roleByName(t *testing.T, testDB *gorm.DB, name string) models.Role {
	t.Helper()

	var role models.Role
	if err := testDB.Where("name = ?", name).First(&role).Error; err != nil {
		t.Fatalf("role %q not seeded: %v", name, err)
	}
	return role
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field %q: %v", k, err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// sessionCookie builds a session cookie carrying the given values, using the
// same store secret as the router, so requests can impersonate any login
// state.
func sessionCookie(vals map[string]interface{}) string {
	tempW := httptest.NewRecorder()
	tempC, _ := gin.CreateTestContext(tempW)
	tempC.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	store := cookie.NewStore([]byte("test-secret-key"))
	sessions.Sessions("farmsess", store)(tempC)

	session := sessions.Default(tempC)
	for k, v := range vals {
		session.Set(k, v)
	}
	session.Save()

	return tempW.Header().Get("Set-Cookie")
}

func performRequest(router *gin.Engine, req *http.Request, sessVals map[string]interface{}) *httptest.ResponseRecorder {
	if sessVals != nil {
		req.Header.Set("Cookie", sessionCookie(sessVals))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func customerSession(userID uint) map[string]interface{} {
	return map[string]interface{}{"user_id": userID, "role": models.RoleCustomer}
}

func farmerSession(userID uint) map[string]interface{} {
	return map[string]interface{}{"user_id": userID, "role": models.RoleFarmer}
}

func adminSession(userID uint) map[string]interface{} {
	return map[string]interface{}{"user_id": userID, "role": models.RoleAdmin}
}

func cartJSON(t *testing.T, c cart.Cart) string {
	t.Helper()

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("failed to marshal cart: %v", err)
	}
	return string(data)
}
