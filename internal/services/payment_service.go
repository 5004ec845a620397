// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/safariverse/safarimart-backend/internal/config"
	"github.com/safariverse/safarimart-backend/internal/models"
	"github.com/safariverse/safarimart-backend/internal/utils"
)

// PaymentService funds wallets through Stripe. A top-up is created pending
// with a PaymentIntent, then confirmed once Stripe reports the intent
// succeeded; only confirmation credits the wallet.
type PaymentService struct {
	db            *gorm.DB
	walletService *WalletService
	cfg           *config.Config
}

type CreateTopUpRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type TopUpIntentResponse struct {
	TopUpID      uuid.UUID `json:"topup_id"`
	ClientSecret string    `json:"client_secret"`
	PaymentID    string    `json:"payment_id"`
	Status       string    `json:"status"`
}

type ConfirmTopUpRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

func NewPaymentService(db *gorm.DB, walletService *WalletService, cfg *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PaymentService{
		db:            db,
		walletService: walletService,
		cfg:           cfg,
	}
}

func (s *PaymentService) CreateTopUpIntent(userID uuid.UUID, req *CreateTopUpRequest) (*TopUpIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Amount < s.cfg.Payment.MinimumTopUp {
		return nil, fmt.Errorf("minimum top-up amount is %d", s.cfg.Payment.MinimumTopUp)
	}

	// Amounts are already in the smallest currency unit, Stripe takes them as-is
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(s.cfg.Payment.Currency),
	}
	params.AddMetadata("user_id", userID.String())
	params.AddMetadata("purpose", "wallet_topup")

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	topUp := &models.TopUp{
		UserID:           userID,
		Amount:           req.Amount,
		Currency:         s.cfg.Payment.Currency,
		PaymentReference: pi.ID,
		Status:           models.TopUpStatusPending,
	}
	if err := s.db.Create(topUp).Error; err != nil {
		return nil, fmt.Errorf("failed to record top-up: %w", err)
	}

	return &TopUpIntentResponse{
		TopUpID:      topUp.ID,
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

func (s *PaymentService) ConfirmTopUp(userID uuid.UUID, req *ConfirmTopUpRequest) (*models.TopUp, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var topUp models.TopUp
	if err := s.db.Where("payment_reference = ? AND user_id = ?", req.PaymentIntentID, userID).
		First(&topUp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("top-up not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if topUp.Status == models.TopUpStatusCompleted {
		// Already credited, confirming again is a no-op
		return &topUp, nil
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		err = s.db.Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			topUp.Status = models.TopUpStatusCompleted
			topUp.ConfirmedAt = &now
			if err := tx.Save(&topUp).Error; err != nil {
				return fmt.Errorf("failed to update top-up: %w", err)
			}
			return s.walletService.Credit(tx, userID, topUp.Amount)
		})
		if err != nil {
			return nil, err
		}

	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresPaymentMethod, stripe.PaymentIntentStatusProcessing:
		return nil, errors.New("payment has not completed yet")

	default:
		topUp.Status = models.TopUpStatusFailed
		s.db.Save(&topUp)
		return nil, errors.New("payment failed")
	}

	return &topUp, nil
}

func (s *PaymentService) GetTopUpHistory(userID uuid.UUID, params utils.PaginationParams) ([]models.TopUp, int64, error) {
	query := s.db.Model(&models.TopUp{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count top-ups: %w", err)
	}

	allowedSortFields := []string{"created_at", "amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var topUps []models.TopUp
	if err := query.Find(&topUps).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch top-ups: %w", err)
	}

	return topUps, total, nil
}
