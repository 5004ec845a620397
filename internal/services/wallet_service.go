// internal/services/wallet_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safariverse/safarimart-backend/internal/ledger"
	"github.com/safariverse/safarimart-backend/internal/models"
)

// WalletService owns balance movement. Credits and debits run inside the
// caller's transaction so a failed purchase rolls the wallet back with
// everything else.
type WalletService struct {
	db *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

func (s *WalletService) GetWallet(userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A user without movement has an implicit zero balance
			return &models.Wallet{UserID: userID}, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &wallet, nil
}

func (s *WalletService) Credit(tx *gorm.DB, userID uuid.UUID, amount int64) error {
	if amount < 0 {
		return ledger.ErrTransferFailed
	}
	if amount == 0 {
		return nil
	}

	result := tx.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit wallet: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		if err := tx.Create(&models.Wallet{UserID: userID, Balance: amount}).Error; err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}
	}

	return nil
}

func (s *WalletService) Debit(tx *gorm.DB, userID uuid.UUID, amount int64) error {
	if amount < 0 {
		return ledger.ErrTransferFailed
	}
	if amount == 0 {
		return nil
	}

	// Guarded decrement: no row moves below zero
	result := tx.Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit wallet: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ledger.ErrTransferFailed
	}

	return nil
}
