// internal/handlers/purchase.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/safariverse/safarimart-backend/internal/i18n"
	"github.com/safariverse/safarimart-backend/internal/models"
	"github.com/safariverse/safarimart-backend/internal/services"
	"github.com/safariverse/safarimart-backend/internal/utils"
)

type PurchaseHandler struct {
	purchaseService *services.PurchaseService
}

type purchaseRequest struct {
	Payment int64 `json:"payment"`
}

// purchaseHistoryItem pairs a purchase with its product so clients get the
// full history in one call.
type purchaseHistoryItem struct {
	Purchase models.Purchase `json:"purchase"`
	Product  models.Product  `json:"product"`
}

func NewPurchaseHandler(purchaseService *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// POST /products/:id/purchase
func (h *PurchaseHandler) PurchaseProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := callerID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	purchase, err := h.purchaseService.PurchaseProduct(productID, buyerID, req.Payment)
	if err != nil {
		respondLedgerError(c, err, "product")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyPurchaseCompleted),
		"purchase": purchase,
	})
}

// GET /purchases/:id
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid purchase ID", nil)
		return
	}

	purchase, err := h.purchaseService.GetPurchase(id)
	if err != nil {
		respondLedgerError(c, err, "purchase")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"purchase": purchase,
	})
}

// GET /purchases/check/:productId — has the caller bought this product
func (h *PurchaseHandler) HasPurchased(c *gin.Context) {
	buyerID, ok := callerID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	purchased, err := h.purchaseService.HasPurchased(buyerID, productID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_id": productID,
		"purchased":  purchased,
	})
}

// GET /purchases/history — the caller's purchases with product details,
// oldest first
func (h *PurchaseHandler) GetPurchaseHistory(c *gin.Context) {
	buyerID, ok := callerID(c)
	if !ok {
		return
	}

	purchases, products, err := h.purchaseService.GetPurchaseHistoryWithDetails(buyerID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	items := make([]purchaseHistoryItem, 0, len(purchases))
	for i := range purchases {
		items = append(items, purchaseHistoryItem{
			Purchase: purchases[i],
			Product:  products[i],
		})
	}

	utils.SuccessResponse(c, gin.H{
		"history": items,
		"count":   len(items),
	})
}
