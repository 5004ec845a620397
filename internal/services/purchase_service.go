// internal/services/purchase_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safariverse/safarimart-backend/internal/config"
	"github.com/safariverse/safarimart-backend/internal/ledger"
	"github.com/safariverse/safarimart-backend/internal/models"
)

// PurchaseService is the purchase ledger. A purchase validates payment
// against the listing, records a write-once Purchase row, bumps the product
// counters, and moves value buyer -> creator/platform — all in one database
// transaction, so any failure leaves no partial state behind.
type PurchaseService struct {
	db             *gorm.DB
	feeService     *FeeService
	walletService  *WalletService
	journalService *JournalService
	policy         ledger.PaymentPolicy
	allowSelf      bool
}

func NewPurchaseService(db *gorm.DB, feeService *FeeService, walletService *WalletService, journalService *JournalService, cfg config.LedgerConfig) *PurchaseService {
	return &PurchaseService{
		db:             db,
		feeService:     feeService,
		walletService:  walletService,
		journalService: journalService,
		policy:         cfg.PaymentPolicy,
		allowSelf:      cfg.AllowSelfPurchase,
	}
}

func (s *PurchaseService) PurchaseProduct(productID int64, buyerID uuid.UUID, payment int64) (*models.Purchase, error) {
	if payment < 0 {
		return nil, ledger.ErrInsufficientPayment
	}

	var purchase *models.Purchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock and get product
		var product models.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !product.IsActive {
			return ledger.ErrInactive
		}

		if !s.allowSelf && product.CreatorID == buyerID {
			return ledger.ErrSelfPurchase
		}

		// Verify buyer exists and is active
		var buyer models.User
		if err := tx.First(&buyer, "id = ?", buyerID).Error; err != nil {
			return fmt.Errorf("buyer not found: %w", err)
		}
		if buyer.Status != models.UserStatusActive {
			return errors.New("buyer account is not active")
		}

		if s.policy == ledger.PaymentPolicyMinimum && payment < product.Price {
			return ledger.ErrInsufficientPayment
		}

		settings, err := s.feeService.Current(tx)
		if err != nil {
			return err
		}

		creatorShare, fee := ledger.SplitPayment(payment, settings.PlatformFeeBps)

		// Move value: debit the whole payment, credit the split. The fee
		// truncation remainder stays in the creator share by construction.
		if payment > 0 {
			if err := s.walletService.Debit(tx, buyerID, payment); err != nil {
				return err
			}
			if err := s.walletService.Credit(tx, product.CreatorID, creatorShare); err != nil {
				return err
			}
			if err := s.walletService.Credit(tx, settings.FeeRecipientID, fee); err != nil {
				return err
			}
		}

		purchase = &models.Purchase{
			ProductID:   product.ID,
			BuyerID:     buyerID,
			PricePaid:   payment,
			PurchasedAt: time.Now(),
		}
		if err := tx.Create(purchase).Error; err != nil {
			return fmt.Errorf("failed to create purchase: %w", err)
		}

		// Update aggregate counters
		if err := tx.Model(&product).UpdateColumns(map[string]interface{}{
			"total_sales":   gorm.Expr("total_sales + ?", 1),
			"total_revenue": gorm.Expr("total_revenue + ?", payment),
		}).Error; err != nil {
			return fmt.Errorf("failed to update sales counters: %w", err)
		}

		_, err = s.journalService.Record(tx, models.JournalEventProductPurchased, buyerID, &product.ID, &purchase.ID, models.JSONB{
			"product_id":    product.ID,
			"purchase_id":   purchase.ID,
			"buyer_id":      buyerID.String(),
			"price_paid":    payment,
			"platform_fee":  fee,
			"creator_share": creatorShare,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

func (s *PurchaseService) GetPurchase(id int64) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := s.db.Preload("Product").First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &purchase, nil
}

func (s *PurchaseService) HasPurchased(buyerID uuid.UUID, productID int64) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Purchase{}).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

// GetPurchaseHistoryWithDetails returns a buyer's purchases oldest first,
// with the product for each purchase aligned index-wise.
func (s *PurchaseService) GetPurchaseHistoryWithDetails(buyerID uuid.UUID) ([]models.Purchase, []models.Product, error) {
	var purchases []models.Purchase
	if err := s.db.Where("buyer_id = ?", buyerID).
		Order("id ASC").Find(&purchases).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch purchases: %w", err)
	}

	products := make([]models.Product, 0, len(purchases))
	for _, purchase := range purchases {
		var product models.Product
		if err := s.db.First(&product, purchase.ProductID).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to fetch product %d: %w", purchase.ProductID, err)
		}
		products = append(products, product)
	}

	return purchases, products, nil
}
