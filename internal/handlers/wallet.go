// internal/handlers/wallet.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/safariverse/safarimart-backend/internal/i18n"
	"github.com/safariverse/safarimart-backend/internal/services"
	"github.com/safariverse/safarimart-backend/internal/utils"
)

type WalletHandler struct {
	walletService  *services.WalletService
	paymentService *services.PaymentService
}

func NewWalletHandler(walletService *services.WalletService, paymentService *services.PaymentService) *WalletHandler {
	return &WalletHandler{
		walletService:  walletService,
		paymentService: paymentService,
	}
}

// GET /wallet
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	wallet, err := h.walletService.GetWallet(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"wallet": wallet,
	})
}

// POST /wallet/topup
func (h *WalletHandler) CreateTopUp(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.CreateTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	intent, err := h.paymentService.CreateTopUpIntent(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWalletTopUpCreated),
		"intent":  intent,
	})
}

// POST /wallet/topup/confirm
func (h *WalletHandler) ConfirmTopUp(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.ConfirmTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	topUp, err := h.paymentService.ConfirmTopUp(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWalletTopUpConfirmed),
		"topup":   topUp,
	})
}

// GET /wallet/topups
func (h *WalletHandler) GetTopUpHistory(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	topUps, total, err := h.paymentService.GetTopUpHistory(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(topUps, total, params))
}
