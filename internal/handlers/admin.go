// internal/handlers/admin.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/safariverse/safarimart-backend/internal/i18n"
	"github.com/safariverse/safarimart-backend/internal/services"
	"github.com/safariverse/safarimart-backend/internal/utils"
)

type AdminHandler struct {
	adminService   *services.AdminService
	feeService     *services.FeeService
	journalService *services.JournalService
}

type setFeeRequest struct {
	FeeBps int64 `json:"fee_bps"`
}

type setRecipientRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
}

func NewAdminHandler(adminService *services.AdminService, feeService *services.FeeService, journalService *services.JournalService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		feeService:     feeService,
		journalService: journalService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/fees
func (h *AdminHandler) GetFeeSettings(c *gin.Context) {
	settings, err := h.feeService.GetSettings()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"settings": settings,
	})
}

// PUT /admin/fees — set the platform fee in basis points
func (h *AdminHandler) SetPlatformFee(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	adminID, ok := callerID(c)
	if !ok {
		return
	}

	var req setFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	settings, err := h.feeService.SetPlatformFeeBps(adminID, req.FeeBps)
	if err != nil {
		respondLedgerError(c, err, "admin")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyAdminFeeUpdated),
		"settings": settings,
	})
}

// PUT /admin/fees/recipient — set the account receiving platform fees
func (h *AdminHandler) SetFeeRecipient(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	adminID, ok := callerID(c)
	if !ok {
		return
	}

	var req setRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid recipient ID", nil)
		return
	}

	settings, err := h.feeService.SetFeeRecipient(adminID, recipientID)
	if err != nil {
		respondLedgerError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyAdminRecipientSet),
		"settings": settings,
	})
}

// GET /admin/purchases
func (h *AdminHandler) GetPurchases(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var productID *int64
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid product ID", nil)
			return
		}
		productID = &id
	}

	filter := services.NewAdminPurchaseFilter(page, limit, productID)
	purchases, total, err := h.adminService.GetPurchases(filter)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{
		"purchases": purchases,
	}, gin.H{
		"pagination": gin.H{
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
		},
	})
}

// GET /admin/journal/verify — recompute the journal hash chain
func (h *AdminHandler) VerifyJournal(c *gin.Context) {
	valid, err := h.journalService.VerifyChain()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"valid": valid,
	})
}
