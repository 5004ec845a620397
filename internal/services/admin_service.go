// internal/services/admin_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/safariverse/safarimart-backend/internal/models"
)

type AdminService struct {
	db         *gorm.DB
	feeService *FeeService
}

type AdminDashboardStats struct {
	TotalUsers           int64 `json:"total_users"`
	ActiveUsers          int64 `json:"active_users"`
	TotalProducts        int64 `json:"total_products"`
	ActiveProducts       int64 `json:"active_products"`
	TotalPurchases       int64 `json:"total_purchases"`
	TotalVolume          int64 `json:"total_volume"`
	PurchasesThisMonth   int64 `json:"purchases_this_month"`
	VolumeThisMonth      int64 `json:"volume_this_month"`
	FeesCollectedBalance int64 `json:"fees_collected_balance"`
	PlatformFeeBps       int64 `json:"platform_fee_bps"`
}

func NewAdminService(db *gorm.DB, feeService *FeeService) *AdminService {
	return &AdminService{
		db:         db,
		feeService: feeService,
	}
}

func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}

	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&stats.ActiveUsers)
	s.db.Model(&models.Product{}).Count(&stats.TotalProducts)
	s.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&stats.ActiveProducts)
	s.db.Model(&models.Purchase{}).Count(&stats.TotalPurchases)
	s.db.Model(&models.Purchase{}).Select("COALESCE(SUM(price_paid), 0)").Scan(&stats.TotalVolume)

	monthStart := time.Now().AddDate(0, 0, -30)
	s.db.Model(&models.Purchase{}).Where("purchased_at >= ?", monthStart).Count(&stats.PurchasesThisMonth)
	s.db.Model(&models.Purchase{}).Where("purchased_at >= ?", monthStart).
		Select("COALESCE(SUM(price_paid), 0)").Scan(&stats.VolumeThisMonth)

	settings, err := s.feeService.GetSettings()
	if err != nil {
		return nil, err
	}
	stats.PlatformFeeBps = settings.PlatformFeeBps

	// The fee recipient wallet balance is the collected-and-unspent fee total
	var wallet models.Wallet
	if err := s.db.Where("user_id = ?", settings.FeeRecipientID).First(&wallet).Error; err == nil {
		stats.FeesCollectedBalance = wallet.Balance
	}

	return stats, nil
}

func (s *AdminService) GetPurchases(params AdminPurchaseFilter) ([]models.Purchase, int64, error) {
	query := s.db.Model(&models.Purchase{}).Preload("Product")

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	query = query.Order("id DESC").
		Offset((params.Page - 1) * params.Limit).Limit(params.Limit)

	var purchases []models.Purchase
	if err := query.Find(&purchases).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch purchases: %w", err)
	}

	return purchases, total, nil
}

type AdminPurchaseFilter struct {
	Page      int
	Limit     int
	ProductID *int64
}

func NewAdminPurchaseFilter(page, limit int, productID *int64) AdminPurchaseFilter {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return AdminPurchaseFilter{Page: page, Limit: limit, ProductID: productID}
}
