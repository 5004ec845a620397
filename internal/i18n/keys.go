// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Products
	KeyProductListed       = "product.listed"
	KeyProductUpdated      = "product.updated"
	KeyProductNotFound     = "product.not_found"
	KeyProductInactive     = "product.inactive"
	KeyProductInvalidPrice = "product.invalid_price"
	KeyProductUnauthorized = "product.unauthorized"

	// Purchases
	KeyPurchaseCompleted           = "purchase.completed"
	KeyPurchaseNotFound            = "purchase.not_found"
	KeyPurchaseInsufficientPayment = "purchase.insufficient_payment"
	KeyPurchaseSelfPurchase        = "purchase.self_purchase"

	// Wallet
	KeyWalletTopUpCreated   = "wallet.topup_created"
	KeyWalletTopUpConfirmed = "wallet.topup_confirmed"
	KeyWalletTransferFailed = "wallet.transfer_failed"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"
	KeyAdminFeeUpdated   = "admin.fee_updated"
	KeyAdminRecipientSet = "admin.recipient_set"

	// Users
	KeyUserNotFound = "user.not_found"

	// Files
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileUploaded     = "file.uploaded"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)
