// internal/ledger/fees_test.go
package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPayment(t *testing.T) {
	tests := []struct {
		name         string
		payment      int64
		feeBps       int64
		creatorShare int64
		fee          int64
	}{
		{"typical split", 10000, 250, 9750, 250},
		{"truncates toward zero", 999, 250, 975, 24},
		{"zero fee", 10000, 0, 10000, 0},
		{"full fee", 10000, FeeDenominator, 0, 10000},
		{"zero payment", 0, 250, 0, 0},
		{"tiny payment keeps remainder with creator", 1, 9999, 1, 0},
		{"one bps", 10000, 1, 9999, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creatorShare, fee := SplitPayment(tt.payment, tt.feeBps)
			assert.Equal(t, tt.creatorShare, creatorShare)
			assert.Equal(t, tt.fee, fee)
			// The split must always reconstruct the payment exactly
			assert.Equal(t, tt.payment, creatorShare+fee)
		})
	}
}

func TestValidFeeBps(t *testing.T) {
	assert.True(t, ValidFeeBps(0))
	assert.True(t, ValidFeeBps(250))
	assert.True(t, ValidFeeBps(FeeDenominator))
	assert.False(t, ValidFeeBps(-1))
	assert.False(t, ValidFeeBps(FeeDenominator+1))
}

func TestPaymentPolicyValid(t *testing.T) {
	assert.True(t, PaymentPolicyMinimum.Valid())
	assert.True(t, PaymentPolicyNone.Valid())
	assert.False(t, PaymentPolicy("").Valid())
	assert.False(t, PaymentPolicy("strict").Valid())
}
