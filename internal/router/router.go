// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/safariverse/safarimart-backend/internal/config"
	"github.com/safariverse/safarimart-backend/internal/handlers"
	"github.com/safariverse/safarimart-backend/internal/middleware"
	"github.com/safariverse/safarimart-backend/internal/services"
	"github.com/safariverse/safarimart-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	journalService := services.NewJournalService(db)
	walletService := services.NewWalletService(db)
	feeService := services.NewFeeService(db, journalService)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db, journalService)
	purchaseService := services.NewPurchaseService(db, feeService, walletService, journalService, cfg.Ledger)
	paymentService := services.NewPaymentService(db, walletService, cfg)
	adminService := services.NewAdminService(db, feeService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, storageService, journalService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	walletHandler := handlers.NewWalletHandler(walletService, paymentService)
	adminHandler := handlers.NewAdminHandler(adminService, feeService, journalService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Product registry routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.SearchProducts)
			products.GET("/active", productHandler.GetAllActiveProducts)
			products.GET("/category/:category", productHandler.GetProductsByCategory)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/journal", productHandler.GetProductJournal)

			// Authenticated routes
			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", productHandler.ListProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.POST("/:id/purchase", middleware.PurchaseRateLimit(), purchaseHandler.PurchaseProduct)
				protected.POST("/upload", middleware.UploadRateLimit(), productHandler.UploadFile)
			}
		}

		// Creator catalog routes
		creators := v1.Group("/creators")
		{
			creators.GET("/:id/products", productHandler.GetProductsByCreator)
		}

		// Purchase ledger routes
		purchases := v1.Group("/purchases")
		purchases.Use(middleware.AuthRequired())
		{
			purchases.GET("/history", purchaseHandler.GetPurchaseHistory)
			purchases.GET("/check/:productId", purchaseHandler.HasPurchased)
			purchases.GET("/:id", purchaseHandler.GetPurchase)
		}

		// Wallet routes
		wallet := v1.Group("/wallet")
		wallet.Use(middleware.AuthRequired())
		{
			wallet.GET("", walletHandler.GetWallet)
			wallet.POST("/topup", walletHandler.CreateTopUp)
			wallet.POST("/topup/confirm", walletHandler.ConfirmTopUp)
			wallet.GET("/topups", walletHandler.GetTopUpHistory)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/fees", adminHandler.GetFeeSettings)
			admin.PUT("/fees", adminHandler.SetPlatformFee)
			admin.PUT("/fees/recipient", adminHandler.SetFeeRecipient)
			admin.GET("/purchases", adminHandler.GetPurchases)
			admin.GET("/journal/verify", adminHandler.VerifyJournal)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
