// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/safariverse/safarimart-backend/internal/i18n"
	"github.com/safariverse/safarimart-backend/internal/ledger"
	"github.com/safariverse/safarimart-backend/internal/utils"
)

// respondLedgerError maps the ledger error taxonomy onto HTTP responses.
// Anything unmatched is treated as a bad request with the raw message,
// matching how failed operations surface their revert reason.
func respondLedgerError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, ledger.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, ledger.ErrUnauthorized):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyProductUnauthorized))
	case errors.Is(err, ledger.ErrInvalidPrice):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductInvalidPrice), nil)
	case errors.Is(err, ledger.ErrInactive):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyProductInactive))
	case errors.Is(err, ledger.ErrInsufficientPayment):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPurchaseInsufficientPayment), nil)
	case errors.Is(err, ledger.ErrSelfPurchase):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPurchaseSelfPurchase), nil)
	case errors.Is(err, ledger.ErrTransferFailed):
		utils.PaymentRequiredResponse(c, "")
	case errors.Is(err, ledger.ErrInvalidFeeBps):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}
