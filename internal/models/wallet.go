// internal/models/wallet.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds a user's balance in the smallest currency unit. Balances only
// move through the purchase transaction and confirmed top-ups.
type Wallet struct {
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	Balance   int64     `json:"balance" gorm:"type:bigint;not null;default:0"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TopUp records a Stripe-funded wallet deposit. PaymentReference is the
// Stripe PaymentIntent id used to confirm the deposit.
type TopUp struct {
	BaseModel
	UserID           uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Amount           int64       `json:"amount" gorm:"type:bigint;not null"`
	Currency         string      `json:"currency" gorm:"size:10;not null"`
	PaymentReference string      `json:"payment_reference" gorm:"size:255;index"`
	Status           TopUpStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ConfirmedAt      *time.Time  `json:"confirmed_at"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
