// internal/services/fee_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safariverse/safarimart-backend/internal/ledger"
	"github.com/safariverse/safarimart-backend/internal/models"
)

// FeeService owns the platform fee policy: the basis-point rate and the
// account receiving the platform cut. Changes take effect only for purchases
// made after the change; recorded purchases are never re-split.
type FeeService struct {
	db             *gorm.DB
	journalService *JournalService
}

func NewFeeService(db *gorm.DB, journalService *JournalService) *FeeService {
	return &FeeService{
		db:             db,
		journalService: journalService,
	}
}

// Current loads the settings row inside the given transaction so the purchase
// that reads it and the split it produces see the same policy.
func (s *FeeService) Current(tx *gorm.DB) (*models.LedgerSettings, error) {
	var settings models.LedgerSettings
	if err := tx.First(&settings, 1).Error; err != nil {
		return nil, fmt.Errorf("ledger settings missing: %w", err)
	}
	return &settings, nil
}

func (s *FeeService) GetSettings() (*models.LedgerSettings, error) {
	return s.Current(s.db)
}

func (s *FeeService) SetPlatformFeeBps(adminID uuid.UUID, bps int64) (*models.LedgerSettings, error) {
	if !ledger.ValidFeeBps(bps) {
		return nil, ledger.ErrInvalidFeeBps
	}

	var settings *models.LedgerSettings
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		settings, err = s.Current(tx)
		if err != nil {
			return err
		}

		oldBps := settings.PlatformFeeBps
		settings.PlatformFeeBps = bps
		settings.UpdatedBy = adminID
		if err := tx.Save(settings).Error; err != nil {
			return fmt.Errorf("failed to update fee policy: %w", err)
		}

		_, err = s.journalService.Record(tx, models.JournalEventFeePolicyChanged, adminID, nil, nil, models.JSONB{
			"field": "platform_fee_bps",
			"old":   oldBps,
			"new":   bps,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return settings, nil
}

func (s *FeeService) SetFeeRecipient(adminID uuid.UUID, recipientID uuid.UUID) (*models.LedgerSettings, error) {
	var settings *models.LedgerSettings
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var recipient models.User
		if err := tx.First(&recipient, "id = ?", recipientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var err error
		settings, err = s.Current(tx)
		if err != nil {
			return err
		}

		oldRecipient := settings.FeeRecipientID
		settings.FeeRecipientID = recipientID
		settings.UpdatedBy = adminID
		if err := tx.Save(settings).Error; err != nil {
			return fmt.Errorf("failed to update fee recipient: %w", err)
		}

		_, err = s.journalService.Record(tx, models.JournalEventFeePolicyChanged, adminID, nil, nil, models.JSONB{
			"field": "fee_recipient",
			"old":   oldRecipient.String(),
			"new":   recipientID.String(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return settings, nil
}
