// internal/database/seed.go
package database

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/safariverse/safarimart-backend/internal/config"
	"github.com/safariverse/safarimart-backend/internal/models"
	"github.com/safariverse/safarimart-backend/internal/utils"
)

// Seed makes sure the platform account, its wallet, and the ledger settings
// row exist. The platform account is the default fee recipient and the only
// admin until more are promoted.
func Seed(db *gorm.DB, cfg *config.Config) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var platform models.User
		err := tx.Where("username = ?", cfg.Ledger.PlatformUsername).First(&platform).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			platform = models.User{
				Username: cfg.Ledger.PlatformUsername,
				Email:    cfg.Ledger.PlatformEmail,
				UserType: models.UserTypeAdmin,
				Status:   models.UserStatusActive,
			}

			password := cfg.Ledger.PlatformPassword
			if password == "" {
				password, err = utils.GenerateRandomString(32)
				if err != nil {
					return fmt.Errorf("failed to generate platform password: %w", err)
				}
				logrus.Warn("LEDGER_PLATFORM_PASSWORD not set, platform account created with a random password")
			}
			if err := platform.SetPassword(password); err != nil {
				return fmt.Errorf("failed to hash platform password: %w", err)
			}

			if err := tx.Create(&platform).Error; err != nil {
				return fmt.Errorf("failed to create platform account: %w", err)
			}

			if err := tx.Create(&models.Wallet{UserID: platform.ID}).Error; err != nil {
				return fmt.Errorf("failed to create platform wallet: %w", err)
			}

			logrus.WithField("user_id", platform.ID).Info("Platform account created")
		} else if err != nil {
			return fmt.Errorf("failed to look up platform account: %w", err)
		}

		var settings models.LedgerSettings
		err = tx.First(&settings, 1).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = models.LedgerSettings{
				ID:             1,
				PlatformFeeBps: cfg.Ledger.PlatformFeeBps,
				FeeRecipientID: platform.ID,
				UpdatedBy:      platform.ID,
			}
			if err := tx.Create(&settings).Error; err != nil {
				return fmt.Errorf("failed to create ledger settings: %w", err)
			}
			logrus.WithField("platform_fee_bps", settings.PlatformFeeBps).Info("Ledger settings seeded")
		} else if err != nil {
			return fmt.Errorf("failed to look up ledger settings: %w", err)
		}

		return nil
	})
}
