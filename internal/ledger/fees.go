// internal/ledger/fees.go
package ledger

// FeeDenominator is the basis-point scale: a fee of 250 bps is 2.5%.
const FeeDenominator = 10000

// PaymentPolicy controls how purchaseProduct validates the attached payment.
type PaymentPolicy string

const (
	// PaymentPolicyMinimum rejects any payment below the listed price.
	// Overpayment is accepted and absorbed into the split, no refund.
	PaymentPolicyMinimum PaymentPolicy = "minimum"
	// PaymentPolicyNone skips payment validation entirely. Kept for
	// parity with the zero-value MVP deployments.
	PaymentPolicyNone PaymentPolicy = "none"
)

func (p PaymentPolicy) Valid() bool {
	return p == PaymentPolicyMinimum || p == PaymentPolicyNone
}

// SplitPayment divides a payment between the creator and the platform.
// The fee truncates toward zero and the creator share is computed by
// subtraction, so the two always sum exactly to the payment and the
// truncation remainder stays with the creator.
func SplitPayment(payment, feeBps int64) (creatorShare, fee int64) {
	fee = payment * feeBps / FeeDenominator
	creatorShare = payment - fee
	return creatorShare, fee
}

// ValidFeeBps reports whether a basis-point rate is within [0, 10000].
func ValidFeeBps(bps int64) bool {
	return bps >= 0 && bps <= FeeDenominator
}
