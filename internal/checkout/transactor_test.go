package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/cart"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/checkout"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/models"
)

// Each test gets its own named in-memory database so state never leaks
// between tests.
func setupCheckoutDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	testDB, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}

	err = testDB.AutoMigrate(&models.Role{}, &models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{})
	if err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	return testDB
}

func seedCustomer(t *testing.T, testDB *gorm.DB) models.User {
	t.Helper()

	role := models.Role{Name: models.RoleCustomer}
	testDB.Create(&role)
	customer := models.User{Name: "Test Customer", Email: "customer@example.com", Password: "x", RoleID: role.ID, Approved: true}
	testDB.Create(&customer)
	return customer
}

func seedProduct(t *testing.T, testDB *gorm.DB, name string, price float64, stock uint, approved bool) models.Product {
	t.Helper()

	product := models.Product{Name: name, Price: price, Quantity: stock, Approved: approved, FarmerID: 1}
	testDB.Create(&product)
	return product
}

func stockOf(t *testing.T, testDB *gorm.DB, productID uint) uint {
	t.Helper()

	var product models.Product
	assert.NoError(t, testDB.First(&product, productID).Error)
	return product.Quantity
}

func countRows(t *testing.T, testDB *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	assert.NoError(t, testDB.Model(model).Count(&count).Error)
	return count
}

func TestCheckoutCommitsWholeCart(t *testing.T) {
	testDB := setupCheckoutDB(t, "checkout_commit")
	customer := seedCustomer(t, testDB)
	p1 := seedProduct(t, testDB, "Fresh Milk", 10.0, 5, true)
	p2 := seedProduct(t, testDB, "Paneer", 20.0, 1, true)

	var crt cart.Cart
	crt.SetQuantity(p1.ID, 2)
	crt.SetQuantity(p2.ID, 1)

	order, err := checkout.NewTransactor(testDB).Checkout(customer.ID, crt, "12 Dairy Lane")
	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, customer.ID, order.CustomerID)
	assert.Equal(t, "12 Dairy Lane", order.ShippingAddress)

	assert.Len(t, order.Items, 2)
	assert.Equal(t, p1.ID, order.Items[0].ProductID)
	assert.Equal(t, uint(2), order.Items[0].Quantity)
	assert.Equal(t, 10.0, order.Items[0].PriceAtPurchase)
	assert.Equal(t, p2.ID, order.Items[1].ProductID)
	assert.Equal(t, uint(1), order.Items[1].Quantity)
	assert.Equal(t, 20.0, order.Items[1].PriceAtPurchase)

	assert.Equal(t, uint(3), stockOf(t, testDB, p1.ID))
	assert.Equal(t, uint(0), stockOf(t, testDB, p2.ID))

	assert.Equal(t, 70.0, checkout.Total(order))
}

func TestCheckoutEmptyCart(t *testing.T) {
	testDB := setupCheckoutDB(t, "checkout_empty")
	customer := seedCustomer(t, testDB)

	order, err := checkout.NewTransactor(testDB).Checkout(customer.ID, cart.Cart{}, "12 Dairy Lane")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)

	assert.Equal(t, int64(0), countRows(t, testDB, &models.Order{}))
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	testDB := setupCheckoutDB(t, "checkout_insufficient")
	customer := seedCustomer(t, testDB)
	p := seedProduct(t, testDB, "Ghee", 30.0, 2, true)

	var crt cart.Cart
	crt.SetQuantity(p.ID, 3)

	order, err := checkout.NewTransactor(testDB).Checkout(customer.ID, crt, "12 Dairy Lane")
	assert.Nil(t, order)

	var insufficient *checkout.InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, p.ID, insufficient.ProductID)
	assert.Equal(t, "Ghee", insufficient.Name)
	assert.Equal(t, uint(3), insufficient.Requested)
	assert.Equal(t, uint(2), insufficient.Available)

	assert.Equal(t, uint(2), stockOf(t, testDB, p.ID))
	assert.Equal(t, int64(0), countRows(t, testDB, &models.Order{}))
	assert.Equal(t, int64(0), countRows(t, testDB, &models.OrderItem{}))
}

func TestCheckoutAllOrNothingAcrossItems(t *testing.T) {
	testDB := setupCheckoutDB(t, "checkout_all_or_nothing")
	customer := seedCustomer(t, testDB)
	satisfiable := seedProduct(t, testDB, "Butter", 15.0, 10, true)
	shortStocked := seedProduct(t, testDB, "Cheese", 25.0, 1, true)

	var crt cart.Cart
	crt.SetQuantity(satisfiable.ID, 2)
	crt.SetQuantity(shortStocked.ID, 5)

	order, err := checkout.NewTransactor(testDB).Checkout(customer.ID, crt, "12 Dairy Lane")
	assert.Nil(t, order)

	var insufficient *checkout.InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, shortStocked.ID, insufficient.ProductID)

	// Neither item's stock changed, and nothing durable exists.
	assert.Equal(t, uint(10), stockOf(t, testDB, satisfiable.ID))
	assert.Equal(t, uint(1), stockOf(t, testDB, shortStocked.ID))
	assert.Equal(t, int64(0), countRows(t, testDB, &models.Order{}))
	assert.Equal(t, int64(0), countRows(t, testDB, &models.OrderItem{}))
}

func TestCheckoutUnapprovedProduct(t *testing.T) {
	testDB := setupCheckoutDB(t, "checkout_unapproved")
	customer := seedCustomer(t, testDB)
	p := seedProduct(t, testDB, "Curd", 12.0, 5, false)

	var crt cart.Cart
	crt.SetQuantity(p.ID, 1)

	order, err := checkout.NewTransactor(testDB).Checkout(customer.ID, crt, "12 Dairy Lane")
	assert.Nil(t, order)

	var unavailable *checkout.ProductUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "Curd", unavailable.Name)

	assert.Equal(t, uint(5), stockOf(t, testDB, p.ID))
	assert.Equal(t, int64(0), countRows(t, testDB, &models.Order{}))
}

func TestCheckoutMissingProduct(t *testing.T) {
	testDB := setupCheckoutDB(t, "checkout_missing")
	customer := seedCustomer(t, testDB)

	var crt cart.Cart
	crt.SetQuantity(9999, 1)

	order, err := checkout.NewTransactor(testDB).Checkout(customer.ID, crt, "12 Dairy Lane")
	assert.Nil(t, order)

	var unavailable *checkout.ProductUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, uint(9999), unavailable.ProductID)

	assert.Equal(t, int64(0), countRows(t, testDB, &models.Order{}))
}

func TestCheckoutReportsFirstInvalidItemInInsertionOrder(t *testing.T) {
	testDB := setupCheckoutDB(t, "checkout_first_invalid")
	customer := seedCustomer(t, testDB)
	firstBad := seedProduct(t, testDB, "Malai", 8.0, 0, true)
	secondBad := seedProduct(t, testDB, "Khoa", 18.0, 0, true)

	var crt cart.Cart
	crt.SetQuantity(firstBad.ID, 1)
	crt.SetQuantity(secondBad.ID, 1)

	_, err := checkout.NewTransactor(testDB).Checkout(customer.ID, crt, "12 Dairy Lane")

	var insufficient *checkout.InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, firstBad.ID, insufficient.ProductID)
}

func TestPriceSnapshotImmutable(t *testing.T) {
	testDB := setupCheckoutDB(t, "checkout_snapshot")
	customer := seedCustomer(t, testDB)
	p := seedProduct(t, testDB, "Fresh Milk", 10.0, 5, true)

	var crt cart.Cart
	crt.SetQuantity(p.ID, 1)

	order, err := checkout.NewTransactor(testDB).Checkout(customer.ID, crt, "12 Dairy Lane")
	assert.NoError(t, err)

	// A later price change must not touch the recorded snapshot.
	assert.NoError(t, testDB.Model(&models.Product{}).Where("id = ?", p.ID).Update("price", 99.0).Error)

	var item models.OrderItem
	assert.NoError(t, testDB.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, 10.0, item.PriceAtPurchase)
}

func TestLastUnitContention(t *testing.T) {
	testDB := setupCheckoutDB(t, "checkout_last_unit")
	customer := seedCustomer(t, testDB)
	p := seedProduct(t, testDB, "Paneer", 20.0, 1, true)

	// Both carts were filled while stock was still 1; the conditional
	// decrement lets exactly one of them win.
	var first, second cart.Cart
	first.SetQuantity(p.ID, 1)
	second.SetQuantity(p.ID, 1)

	transactor := checkout.NewTransactor(testDB)

	order, err := transactor.Checkout(customer.ID, first, "12 Dairy Lane")
	assert.NoError(t, err)
	assert.NotNil(t, order)

	loser, err := transactor.Checkout(customer.ID, second, "12 Dairy Lane")
	assert.Nil(t, loser)

	var insufficient *checkout.InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, uint(0), insufficient.Available)

	assert.Equal(t, uint(0), stockOf(t, testDB, p.ID))
	assert.Equal(t, int64(1), countRows(t, testDB, &models.Order{}))
	assert.Equal(t, int64(1), countRows(t, testDB, &models.OrderItem{}))
}
