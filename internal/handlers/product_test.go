// internal/handlers/product_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/safariverse/safarimart-backend/internal/config"
	"github.com/safariverse/safarimart-backend/internal/ledger"
	"github.com/safariverse/safarimart-backend/internal/models"
	"github.com/safariverse/safarimart-backend/internal/services"
)

type ProductHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	creator *models.User
	buyer   *models.User
}

func (suite *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Product{},
		&models.Purchase{},
		&models.LedgerSettings{},
		&models.JournalEntry{},
	))
	suite.db = db

	suite.creator = suite.createUser("handler_creator", models.UserTypeCreator, 0)
	suite.buyer = suite.createUser("handler_buyer", models.UserTypeBuyer, 100000)

	suite.Require().NoError(db.Create(&models.LedgerSettings{
		ID:             1,
		PlatformFeeBps: 250,
		FeeRecipientID: suite.creator.ID,
		UpdatedBy:      suite.creator.ID,
	}).Error)

	journalService := services.NewJournalService(db)
	walletService := services.NewWalletService(db)
	feeService := services.NewFeeService(db, journalService)
	productService := services.NewProductService(db, journalService)
	purchaseService := services.NewPurchaseService(db, feeService, walletService, journalService, config.LedgerConfig{
		PaymentPolicy: ledger.PaymentPolicyMinimum,
	})
	storageService, err := services.NewStorageService(&config.Config{})
	suite.Require().NoError(err)

	productHandler := NewProductHandler(productService, storageService, journalService)
	purchaseHandler := NewPurchaseHandler(purchaseService)

	suite.router = gin.New()
	suite.router.GET("/products/:id", productHandler.GetProduct)
	suite.router.GET("/products/active", productHandler.GetAllActiveProducts)
	suite.router.POST("/products", suite.asUser(suite.creator), productHandler.ListProduct)
	suite.router.PUT("/products/:id", suite.asUser(suite.buyer), productHandler.UpdateProduct)
	suite.router.POST("/products/:id/purchase", suite.asUser(suite.buyer), purchaseHandler.PurchaseProduct)
}

func (suite *ProductHandlerTestSuite) createUser(username string, userType models.UserType, balance int64) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@test.safarimart.io",
		PasswordHash: "x",
		UserType:     userType,
		Status:       models.UserStatusActive,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	suite.Require().NoError(suite.db.Create(&models.Wallet{UserID: user.ID, Balance: balance}).Error)
	return user
}

// asUser stands in for the JWT middleware.
func (suite *ProductHandlerTestSuite) asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", user.ID.String())
		c.Set("username", user.Username)
		c.Set("user_type", string(user.UserType))
		c.Next()
	}
}

func (suite *ProductHandlerTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ProductHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *ProductHandlerTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	response := suite.decode(w)
	errObj, ok := response["error"].(map[string]interface{})
	suite.Require().True(ok, "expected error payload")
	return errObj["code"].(string)
}

func (suite *ProductHandlerTestSuite) TestListProduct() {
	w := suite.request("POST", "/products", map[string]interface{}{
		"title":    "Acacia Scene",
		"category": "3d",
		"price":    1500,
	})

	suite.Equal(http.StatusCreated, w.Code)

	response := suite.decode(w)
	suite.True(response["success"].(bool))

	data := response["data"].(map[string]interface{})
	product := data["product"].(map[string]interface{})
	suite.Equal(float64(1), product["id"])
	suite.Equal("Acacia Scene", product["title"])
}

func (suite *ProductHandlerTestSuite) TestListProductInvalidPrice() {
	w := suite.request("POST", "/products", map[string]interface{}{
		"title": "Worthless",
		"price": 0,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProductHandlerTestSuite) TestGetProductNotFound() {
	w := suite.request("GET", "/products/42", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", suite.errorCode(w))
}

func (suite *ProductHandlerTestSuite) TestUpdateProductForbiddenForNonOwner() {
	created := suite.request("POST", "/products", map[string]interface{}{
		"title": "Baobab Kit",
		"price": 1000,
	})
	suite.Require().Equal(http.StatusCreated, created.Code)

	// The update route authenticates as the buyer, not the creator
	w := suite.request("PUT", "/products/1", map[string]interface{}{
		"price": 2000,
	})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("FORBIDDEN", suite.errorCode(w))
}

func (suite *ProductHandlerTestSuite) TestPurchaseProduct() {
	created := suite.request("POST", "/products", map[string]interface{}{
		"title": "Kudu Model",
		"price": 1000,
	})
	suite.Require().Equal(http.StatusCreated, created.Code)

	w := suite.request("POST", "/products/1/purchase", map[string]interface{}{
		"payment": 1000,
	})

	suite.Equal(http.StatusCreated, w.Code)

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	purchase := data["purchase"].(map[string]interface{})
	suite.Equal(float64(1), purchase["id"])
	suite.Equal(float64(1000), purchase["price_paid"])
}

func (suite *ProductHandlerTestSuite) TestPurchaseInsufficientPayment() {
	created := suite.request("POST", "/products", map[string]interface{}{
		"title": "Leopard Rig",
		"price": 1000,
	})
	suite.Require().Equal(http.StatusCreated, created.Code)

	w := suite.request("POST", "/products/1/purchase", map[string]interface{}{
		"payment": 500,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProductHandlerTestSuite) TestPurchaseInactiveProductConflict() {
	created := suite.request("POST", "/products", map[string]interface{}{
		"title": "Retired Asset",
		"price": 1000,
	})
	suite.Require().Equal(http.StatusCreated, created.Code)

	suite.Require().NoError(suite.db.Model(&models.Product{}).
		Where("id = ?", 1).
		Update("is_active", false).Error)

	w := suite.request("POST", "/products/1/purchase", map[string]interface{}{
		"payment": 1000,
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("CONFLICT", suite.errorCode(w))
}

func (suite *ProductHandlerTestSuite) TestActiveCatalog() {
	for _, title := range []string{"One", "Two"} {
		w := suite.request("POST", "/products", map[string]interface{}{
			"title": title,
			"price": 1000,
		})
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	w := suite.request("GET", "/products/active", nil)
	suite.Equal(http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	suite.Equal(float64(2), data["count"])
}

func TestProductHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}
