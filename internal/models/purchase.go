// internal/models/purchase.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Purchase is a write-once record of one buyer paying for one product.
// PricePaid captures the amount actually transferred, which may exceed the
// listed price at the time of purchase. No update or delete path exists.
type Purchase struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID   int64     `json:"product_id" gorm:"not null;index"`
	BuyerID     uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;index"`
	PricePaid   int64     `json:"price_paid" gorm:"type:bigint;not null"`
	PurchasedAt time.Time `json:"purchased_at" gorm:"not null"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Buyer   User     `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
}
