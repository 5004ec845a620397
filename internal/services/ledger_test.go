// internal/services/ledger_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/safariverse/safarimart-backend/internal/config"
	"github.com/safariverse/safarimart-backend/internal/ledger"
	"github.com/safariverse/safarimart-backend/internal/models"
)

type LedgerTestSuite struct {
	suite.Suite
	db *gorm.DB

	journalService  *JournalService
	walletService   *WalletService
	feeService      *FeeService
	productService  *ProductService
	purchaseService *PurchaseService

	platform *models.User
	creator  *models.User
	buyer    *models.User
}

func (suite *LedgerTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Product{},
		&models.Purchase{},
		&models.TopUp{},
		&models.LedgerSettings{},
		&models.JournalEntry{},
	))

	suite.db = db
	suite.journalService = NewJournalService(db)
	suite.walletService = NewWalletService(db)
	suite.feeService = NewFeeService(db, suite.journalService)
	suite.productService = NewProductService(db, suite.journalService)
	suite.purchaseService = NewPurchaseService(db, suite.feeService, suite.walletService, suite.journalService, config.LedgerConfig{
		PaymentPolicy:     ledger.PaymentPolicyMinimum,
		AllowSelfPurchase: false,
	})

	suite.platform = suite.createUser("platform", models.UserTypeAdmin, 0)
	suite.creator = suite.createUser("mara_creator", models.UserTypeCreator, 0)
	suite.buyer = suite.createUser("tembo_buyer", models.UserTypeBuyer, 100000)

	suite.Require().NoError(db.Create(&models.LedgerSettings{
		ID:             1,
		PlatformFeeBps: 250,
		FeeRecipientID: suite.platform.ID,
		UpdatedBy:      suite.platform.ID,
	}).Error)
}

func (suite *LedgerTestSuite) createUser(username string, userType models.UserType, balance int64) *models.User {
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

func (suite *LedgerTestSuite) listProduct(price int64) *models.Product {
	product, err := suite.productService.ListProduct(suite.creator.ID, &ListProductRequest{
		Title:    "Savanna Skin Pack",
		Category: "3d",
		Price:    price,
	})
	suite.Require().NoError(err)
	return product
}

func (suite *LedgerTestSuite) balance(userID uuid.UUID) int64 {
	wallet, err := suite.walletService.GetWallet(userID)
	suite.Require().NoError(err)
	return wallet.Balance
}

func (suite *LedgerTestSuite) TestListProductRejectsNonPositivePrice() {
	for _, price := range []int64{0, -100} {
		_, err := suite.productService.ListProduct(suite.creator.ID, &ListProductRequest{
			Title: "Free Stuff",
			Price: price,
		})
		suite.ErrorIs(err, ledger.ErrInvalidPrice)
	}
}

func (suite *LedgerTestSuite) TestProductIDsAreSequentialFromOne() {
	for want := int64(1); want <= 3; want++ {
		product := suite.listProduct(1000)
		suite.Equal(want, product.ID)
	}
}

func (suite *LedgerTestSuite) TestGetProductNotFound() {
	_, err := suite.productService.GetProduct(42)
	suite.ErrorIs(err, ledger.ErrNotFound)
}

func (suite *LedgerTestSuite) TestUpdateProductAuthorization() {
	product := suite.listProduct(1000)

	_, err := suite.productService.UpdateProduct(product.ID, suite.buyer.ID, &UpdateProductRequest{})
	suite.ErrorIs(err, ledger.ErrUnauthorized)

	_, err = suite.productService.UpdateProduct(999, suite.creator.ID, &UpdateProductRequest{})
	suite.ErrorIs(err, ledger.ErrNotFound)
}

func (suite *LedgerTestSuite) TestUpdateProductPartialFields() {
	product := suite.listProduct(1000)

	newPrice := int64(2000)
	updated, err := suite.productService.UpdateProduct(product.ID, suite.creator.ID, &UpdateProductRequest{
		Price: &newPrice,
	})
	suite.Require().NoError(err)

	suite.Equal(int64(2000), updated.Price)
	suite.Equal(product.Title, updated.Title)
	suite.True(updated.IsActive)

	invalid := int64(-1)
	_, err = suite.productService.UpdateProduct(product.ID, suite.creator.ID, &UpdateProductRequest{
		Price: &invalid,
	})
	suite.ErrorIs(err, ledger.ErrInvalidPrice)
}

func (suite *LedgerTestSuite) TestPurchaseSplitsPayment() {
	product := suite.listProduct(1000)

	purchase, err := suite.purchaseService.PurchaseProduct(product.ID, suite.buyer.ID, 1000)
	suite.Require().NoError(err)

	suite.Equal(int64(1), purchase.ID)
	suite.Equal(int64(1000), purchase.PricePaid)

	// 250 bps of 1000 is 25; the creator keeps the rest
	suite.Equal(int64(100000-1000), suite.balance(suite.buyer.ID))
	suite.Equal(int64(975), suite.balance(suite.creator.ID))
	suite.Equal(int64(25), suite.balance(suite.platform.ID))

	reloaded, err := suite.productService.GetProduct(product.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), reloaded.TotalSales)
	suite.Equal(int64(1000), reloaded.TotalRevenue)
}

func (suite *LedgerTestSuite) TestPurchaseRejectsInsufficientPayment() {
	product := suite.listProduct(1000)

	_, err := suite.purchaseService.PurchaseProduct(product.ID, suite.buyer.ID, 999)
	suite.ErrorIs(err, ledger.ErrInsufficientPayment)

	_, err = suite.purchaseService.PurchaseProduct(product.ID, suite.buyer.ID, -1)
	suite.ErrorIs(err, ledger.ErrInsufficientPayment)
}

func (suite *LedgerTestSuite) TestPurchaseAcceptsOverpayment() {
	product := suite.listProduct(1000)

	purchase, err := suite.purchaseService.PurchaseProduct(product.ID, suite.buyer.ID, 1500)
	suite.Require().NoError(err)

	// The whole attached payment is recorded and split, no refund
	suite.Equal(int64(1500), purchase.PricePaid)
	suite.Equal(int64(1500-37), suite.balance(suite.creator.ID))
	suite.Equal(int64(37), suite.balance(suite.platform.ID))

	reloaded, err := suite.productService.GetProduct(product.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1500), reloaded.TotalRevenue)
}

func (suite *LedgerTestSuite) TestSelfPurchaseBlockedByDefault() {
	product := suite.listProduct(1000)
	suite.Require().NoError(suite.db.Model(&models.Wallet{}).
		Where("user_id = ?", suite.creator.ID).
		Update("balance", 5000).Error)

	_, err := suite.purchaseService.PurchaseProduct(product.ID, suite.creator.ID, 1000)
	suite.ErrorIs(err, ledger.ErrSelfPurchase)

	permissive := NewPurchaseService(suite.db, suite.feeService, suite.walletService, suite.journalService, config.LedgerConfig{
		PaymentPolicy:     ledger.PaymentPolicyMinimum,
		AllowSelfPurchase: true,
	})
	_, err = permissive.PurchaseProduct(product.ID, suite.creator.ID, 1000)
	suite.NoError(err)
}

func (suite *LedgerTestSuite) TestPurchaseInactiveProduct() {
	product := suite.listProduct(1000)

	inactive := false
	_, err := suite.productService.UpdateProduct(product.ID, suite.creator.ID, &UpdateProductRequest{
		IsActive: &inactive,
	})
	suite.Require().NoError(err)

	_, err = suite.purchaseService.PurchaseProduct(product.ID, suite.buyer.ID, 1000)
	suite.ErrorIs(err, ledger.ErrInactive)
}

func (suite *LedgerTestSuite) TestPurchaseUnknownProduct() {
	_, err := suite.purchaseService.PurchaseProduct(42, suite.buyer.ID, 1000)
	suite.ErrorIs(err, ledger.ErrNotFound)
}

func (suite *LedgerTestSuite) TestPurchaseRollsBackOnInsufficientBalance() {
	product := suite.listProduct(50000)
	suite.Require().NoError(suite.db.Model(&models.Wallet{}).
		Where("user_id = ?", suite.buyer.ID).
		Update("balance", 100).Error)

	_, err := suite.purchaseService.PurchaseProduct(product.ID, suite.buyer.ID, 50000)
	suite.ErrorIs(err, ledger.ErrTransferFailed)

	// Nothing moved and nothing was recorded
	var count int64
	suite.db.Model(&models.Purchase{}).Count(&count)
	suite.Equal(int64(0), count)

	suite.Equal(int64(100), suite.balance(suite.buyer.ID))
	suite.Equal(int64(0), suite.balance(suite.creator.ID))

	reloaded, err := suite.productService.GetProduct(product.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), reloaded.TotalSales)
	suite.Equal(int64(0), reloaded.TotalRevenue)
}

func (suite *LedgerTestSuite) TestFeeChangeAppliesProspectively() {
	product := suite.listProduct(1000)

	_, err := suite.purchaseService.PurchaseProduct(product.ID, suite.buyer.ID, 1000)
	suite.Require().NoError(err)
	suite.Equal(int64(25), suite.balance(suite.platform.ID))

	_, err = suite.feeService.SetPlatformFeeBps(suite.platform.ID, 1000)
	suite.Require().NoError(err)

	_, err = suite.purchaseService.PurchaseProduct(product.ID, suite.buyer.ID, 1000)
	suite.Require().NoError(err)

	// First purchase keeps its 2.5% split, second pays 10%
	suite.Equal(int64(25+100), suite.balance(suite.platform.ID))
	suite.Equal(int64(975+900), suite.balance(suite.creator.ID))
}

func (suite *LedgerTestSuite) TestSetPlatformFeeBpsValidation() {
	_, err := suite.feeService.SetPlatformFeeBps(suite.platform.ID, ledger.FeeDenominator+1)
	suite.ErrorIs(err, ledger.ErrInvalidFeeBps)

	_, err = suite.feeService.SetPlatformFeeBps(suite.platform.ID, -1)
	suite.ErrorIs(err, ledger.ErrInvalidFeeBps)
}

func (suite *LedgerTestSuite) TestSetFeeRecipient() {
	treasurer := suite.createUser("treasurer", models.UserTypeAdmin, 0)

	_, err := suite.feeService.SetFeeRecipient(suite.platform.ID, uuid.New())
	suite.ErrorIs(err, ledger.ErrNotFound)

	settings, err := suite.feeService.SetFeeRecipient(suite.platform.ID, treasurer.ID)
	suite.Require().NoError(err)
	suite.Equal(treasurer.ID, settings.FeeRecipientID)

	product := suite.listProduct(1000)
	_, err = suite.purchaseService.PurchaseProduct(product.ID, suite.buyer.ID, 1000)
	suite.Require().NoError(err)

	suite.Equal(int64(25), suite.balance(treasurer.ID))
	suite.Equal(int64(0), suite.balance(suite.platform.ID))
}

func (suite *LedgerTestSuite) TestPaymentPolicyNoneSkipsValidation() {
	relaxed := NewPurchaseService(suite.db, suite.feeService, suite.walletService, suite.journalService, config.LedgerConfig{
		PaymentPolicy:     ledger.PaymentPolicyNone,
		AllowSelfPurchase: false,
	})

	product := suite.listProduct(1000)

	purchase, err := relaxed.PurchaseProduct(product.ID, suite.buyer.ID, 0)
	suite.Require().NoError(err)

	// Zero payment moves no value but the purchase is still recorded
	suite.Equal(int64(0), purchase.PricePaid)
	suite.Equal(int64(100000), suite.balance(suite.buyer.ID))

	reloaded, err := suite.productService.GetProduct(product.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), reloaded.TotalSales)
	suite.Equal(int64(0), reloaded.TotalRevenue)
}

func (suite *LedgerTestSuite) TestHasPurchasedAndHistory() {
	first := suite.listProduct(1000)
	second := suite.listProduct(2000)

	purchased, err := suite.purchaseService.HasPurchased(suite.buyer.ID, first.ID)
	suite.Require().NoError(err)
	suite.False(purchased)

	_, err = suite.purchaseService.PurchaseProduct(first.ID, suite.buyer.ID, 1000)
	suite.Require().NoError(err)
	_, err = suite.purchaseService.PurchaseProduct(second.ID, suite.buyer.ID, 2000)
	suite.Require().NoError(err)

	purchased, err = suite.purchaseService.HasPurchased(suite.buyer.ID, first.ID)
	suite.Require().NoError(err)
	suite.True(purchased)

	purchases, products, err := suite.purchaseService.GetPurchaseHistoryWithDetails(suite.buyer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(purchases, 2)
	suite.Require().Len(products, 2)

	// Oldest first, products aligned with their purchases
	suite.Equal(first.ID, purchases[0].ProductID)
	suite.Equal(first.ID, products[0].ID)
	suite.Equal(second.ID, purchases[1].ProductID)
	suite.Equal(second.ID, products[1].ID)
}

func (suite *LedgerTestSuite) TestJournalChainVerifies() {
	product := suite.listProduct(1000)

	_, err := suite.purchaseService.PurchaseProduct(product.ID, suite.buyer.ID, 1000)
	suite.Require().NoError(err)

	_, err = suite.feeService.SetPlatformFeeBps(suite.platform.ID, 500)
	suite.Require().NoError(err)

	valid, err := suite.journalService.VerifyChain()
	suite.Require().NoError(err)
	suite.True(valid)

	trail, err := suite.journalService.ProductTrail(product.ID)
	suite.Require().NoError(err)
	suite.Len(trail, 2)

	// Tampering with a recorded entry breaks the chain
	suite.Require().NoError(suite.db.Model(&models.JournalEntry{}).
		Where("id = ?", 1).
		Update("data", models.JSONB{"forged": true}).Error)

	valid, err = suite.journalService.VerifyChain()
	suite.Require().NoError(err)
	suite.False(valid)
}

func (suite *LedgerTestSuite) TestWalletImplicitZeroBalance() {
	wallet, err := suite.walletService.GetWallet(uuid.New())
	suite.Require().NoError(err)
	suite.Equal(int64(0), wallet.Balance)
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
